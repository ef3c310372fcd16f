// Package config loads server configuration from an optional YAML file,
// environment variables and defaults.
package config

import (
	"net"
	"strconv"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	Auth     AuthConfig     `yaml:"auth"`
	Tracker  TrackerConfig  `yaml:"tracker"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"localhost"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"3000"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DB_URL"`
	MaxConns        int32         `yaml:"max_conns"          env:"DB_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DB_MIN_CONNS"          env-default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DB_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DB_MAX_CONN_IDLE_TIME" env-default:"4m"`
	// SimpleProtocol avoids "cached plan must not change result type" errors
	// from poolers that keep server-side prepared statements across schema changes.
	SimpleProtocol bool `yaml:"simple_protocol" env:"DB_SIMPLE_PROTOCOL" env-default:"true"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// AuthConfig holds session token settings.
type AuthConfig struct {
	TokenCacheTTL time.Duration `yaml:"token_cache_ttl" env:"AUTH_TOKEN_CACHE_TTL" env-default:"5m"`
	BcryptCost    int           `yaml:"bcrypt_cost"     env:"AUTH_BCRYPT_COST"     env-default:"10"`
}

// TrackerConfig holds thresholds used by summaries and goal recalculation.
type TrackerConfig struct {
	WaterGoalGlasses int           `yaml:"water_goal_glasses" env:"TRACKER_WATER_GOAL_GLASSES" env-default:"8"`
	DefaultStepsGoal int           `yaml:"default_steps_goal" env:"TRACKER_DEFAULT_STEPS_GOAL" env-default:"10000"`
	MaintenanceBand  int           `yaml:"maintenance_band"   env:"TRACKER_MAINTENANCE_BAND"   env-default:"200"`
	GoalBalanceKcal  int           `yaml:"goal_balance_kcal"  env:"TRACKER_GOAL_BALANCE_KCAL"  env-default:"300"`
	RecalcTimeout    time.Duration `yaml:"recalc_timeout"     env:"TRACKER_RECALC_TIMEOUT"     env-default:"10s"`
}

// Addr is the host:port the HTTP server listens on.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}
