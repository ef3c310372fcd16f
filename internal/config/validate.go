package config

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Validate checks the loaded configuration. Load calls it automatically.
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Database.DSN) == "" {
		errs = append(errs, errors.New("database.dsn (DB_URL) is required"))
	}
	if c.Database.MinConns > c.Database.MaxConns {
		errs = append(errs, fmt.Errorf("database.min_conns (%d) must not exceed max_conns (%d)", c.Database.MinConns, c.Database.MaxConns))
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port))
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level must be one of debug, info, warn, error (got %q)", c.Log.Level))
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("log.format must be json or text (got %q)", c.Log.Format))
	}

	if c.Auth.BcryptCost < bcrypt.MinCost || c.Auth.BcryptCost > bcrypt.MaxCost {
		errs = append(errs, fmt.Errorf("auth.bcrypt_cost must be in %d..%d (got %d)", bcrypt.MinCost, bcrypt.MaxCost, c.Auth.BcryptCost))
	}
	if c.Auth.TokenCacheTTL < 0 {
		errs = append(errs, fmt.Errorf("auth.token_cache_ttl must be >= 0 (got %s)", c.Auth.TokenCacheTTL))
	}

	if err := c.Tracker.validate(); err != nil {
		errs = append(errs, fmt.Errorf("tracker: %w", err))
	}

	return errors.Join(errs...)
}

func (t *TrackerConfig) validate() error {
	checks := []struct {
		name  string
		value int
	}{
		{"water_goal_glasses", t.WaterGoalGlasses},
		{"default_steps_goal", t.DefaultStepsGoal},
		{"maintenance_band", t.MaintenanceBand},
		{"goal_balance_kcal", t.GoalBalanceKcal},
	}
	for _, c := range checks {
		if c.value <= 0 {
			return fmt.Errorf("%s must be > 0 (got %d)", c.name, c.value)
		}
	}
	if t.RecalcTimeout <= 0 {
		return fmt.Errorf("recalc_timeout must be > 0 (got %s)", t.RecalcTimeout)
	}
	return nil
}
