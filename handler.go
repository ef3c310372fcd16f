package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"

	"lg/wellness-go-api/internal/observability"
	"lg/wellness-go-api/internal/tracker"
)

// dataStore is the persistence surface the handlers use directly. Writes that
// affect derived figures go through the tracker service instead.
type dataStore interface {
	GetUser(ctx context.Context, userID int) (tracker.User, error)
	GetUserByUsername(ctx context.Context, username string) (tracker.User, error)
	GetUserIDByToken(ctx context.Context, token string) (int, error)
	CreateUser(ctx context.Context, u tracker.User) (tracker.User, error)
	UpdateAuthToken(ctx context.Context, userID int, token string) error
	UpdateProfile(ctx context.Context, userID int, p tracker.ProfilePatch) (tracker.User, error)

	ListGoals(ctx context.Context, userID int) ([]tracker.Goal, error)
	GetDailyEntry(ctx context.Context, userID int, date time.Time) (tracker.DailyEntry, error)
	ListWeightEntries(ctx context.Context, userID int, start, end time.Time) ([]tracker.DailyEntry, error)

	ListFoodLogs(ctx context.Context, userID int, start, end time.Time) ([]tracker.FoodLog, error)
	GetFoodLog(ctx context.Context, userID, id int) (tracker.FoodLog, error)
	CreateFoodLog(ctx context.Context, f tracker.FoodLog) (tracker.FoodLog, error)
	UpdateFoodLog(ctx context.Context, f tracker.FoodLog) (tracker.FoodLog, error)
	DeleteFoodLog(ctx context.Context, userID, id int) (tracker.FoodLog, error)

	ListGymLogs(ctx context.Context, userID int, start, end time.Time) ([]tracker.GymLog, error)
	GetGymLog(ctx context.Context, userID, id int) (tracker.GymLog, error)
	CreateGymLog(ctx context.Context, g tracker.GymLog) (tracker.GymLog, error)
	UpdateGymLog(ctx context.Context, g tracker.GymLog) (tracker.GymLog, error)
	DeleteGymLog(ctx context.Context, userID, id int) (tracker.GymLog, error)

	ListStepsLogs(ctx context.Context, userID int, start, end time.Time) ([]tracker.StepsLog, error)
	UpsertSteps(ctx context.Context, userID int, date time.Time, steps int, add bool) (tracker.StepsLog, error)
	ListSkincareLogs(ctx context.Context, userID int, date time.Time) ([]tracker.SkincareLog, error)
	UpsertSkincareLog(ctx context.Context, l tracker.SkincareLog) (tracker.SkincareLog, error)
}

// Handler holds shared dependencies for all route handlers.
type Handler struct {
	store   dataStore
	svc     *tracker.Service
	log     *slog.Logger
	metrics *observability.Metrics
	hub     *realtimeHub
	ping    func(ctx context.Context) error

	// tokens caches bearer token -> user id lookups.
	tokens     *cache.Cache
	bcryptCost int

	defaultStepsGoal int
	waterGoal        int
}

/* ─── Response helpers ────────────────────────────────────────────────── */

// apiError returns a consistent JSON error response: {"error": "message"}.
func apiError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// serviceError maps a store or service error to a response. Validation errors
// carry their field list; anything unrecognized is logged and becomes a 500
// with failMsg.
func (h *Handler) serviceError(c *gin.Context, err error, notFoundMsg, failMsg string) {
	var vErr *tracker.ValidationError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error(), "fields": vErr.Errors})
	case errors.Is(err, tracker.ErrNotFound):
		apiError(c, http.StatusNotFound, notFoundMsg)
	case errors.Is(err, tracker.ErrConflict):
		apiError(c, http.StatusConflict, "conflicting change, please retry")
	case errors.Is(err, tracker.ErrValidation):
		apiError(c, http.StatusBadRequest, "invalid value")
	default:
		h.log.ErrorContext(c, failMsg,
			slog.String("route", c.FullPath()),
			slog.Int("user_id", c.GetInt("user_id")),
			slog.String("error", err.Error()))
		apiError(c, http.StatusInternalServerError, failMsg)
	}
}

// parseDate validates a YYYY-MM-DD value. It writes the 400 itself and
// reports false on failure.
func parseDate(c *gin.Context, value, name string) (time.Time, bool) {
	if value == "" {
		apiError(c, http.StatusBadRequest, name+" is required")
		return time.Time{}, false
	}
	d, err := tracker.ParseDay(value)
	if err != nil {
		apiError(c, http.StatusBadRequest, "invalid "+name+", expected YYYY-MM-DD")
		return time.Time{}, false
	}
	return d, true
}

// parseRange reads the required start and end query params.
func parseRange(c *gin.Context) (start, end time.Time, ok bool) {
	if c.Query("start") == "" || c.Query("end") == "" {
		apiError(c, http.StatusBadRequest, "start and end query params are required")
		return
	}
	if start, ok = parseDate(c, c.Query("start"), "start"); !ok {
		return
	}
	if end, ok = parseDate(c, c.Query("end"), "end"); !ok {
		return
	}
	if start.After(end) {
		apiError(c, http.StatusBadRequest, "start must not be after end")
		return start, end, false
	}
	return start, end, true
}

// pathID parses the :id route param.
func pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		apiError(c, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

// today is the server's current calendar day.
func today() time.Time {
	return tracker.Day(time.Now())
}

/* ─── Middleware ──────────────────────────────────────────────────────── */

// requestLogger logs every request and records it in the HTTP metrics.
func (h *Handler) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		elapsed := time.Since(start)
		status := c.Writer.Status()
		h.metrics.ObserveRequest(c.Request.Method, c.FullPath(), status, elapsed)

		level := slog.LevelInfo
		if status >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		h.log.Log(c, level, "request",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", status),
			slog.Duration("elapsed", elapsed),
			slog.Int("user_id", c.GetInt("user_id")))
	}
}

/* ─── Routes ──────────────────────────────────────────────────────────── */

// healthz reports whether the database is reachable.
// GET /healthz (public).
func (h *Handler) healthz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c, 2*time.Second)
	defer cancel()
	if err := h.ping(ctx); err != nil {
		h.log.WarnContext(c, "health check failed", slog.String("error", err.Error()))
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// registerRoutes registers all API routes on the router.
func (h *Handler) registerRoutes(router *gin.Engine) {
	router.Use(h.requestLogger())

	// Public routes
	router.GET("/healthz", h.healthz)
	router.GET("/metrics", gin.WrapH(h.metrics.Handler()))
	router.POST("/api/signup", h.signup)
	router.POST("/api/login", h.login)

	// Authenticated routes
	api := router.Group("/api", h.authMiddleware())
	api.POST("/logout", h.logout)
	api.GET("/ws", h.serveWS)

	api.GET("/profile", h.getProfile)
	api.PATCH("/profile", h.patchProfile)

	api.GET("/goals", h.listGoals)
	api.POST("/goals", h.saveGoal)
	api.GET("/goals/active", h.getActiveGoal)
	api.GET("/goals/progress", h.getGoalProgress)
	api.POST("/goals/recalculate", h.recalculateGoal)

	api.GET("/daily-entries/:date", h.getDailyEntry)

	api.GET("/food-logs", h.listFoodLogs)
	api.POST("/food-logs", h.createFoodLog)
	api.PUT("/food-logs/:id", h.updateFoodLog)
	api.DELETE("/food-logs/:id", h.deleteFoodLog)

	api.GET("/gym-logs", h.listGymLogs)
	api.POST("/gym-logs", h.createGymLog)
	api.PUT("/gym-logs/:id", h.updateGymLog)
	api.DELETE("/gym-logs/:id", h.deleteGymLog)

	api.GET("/weight-log", h.getWeightLog)
	api.POST("/weight-log", h.recordWeight)
	api.DELETE("/weight-log/:date", h.clearWeight)

	api.GET("/water/:date", h.getWater)
	api.PUT("/water/:date", h.setWater)
	api.POST("/water/:date/increment", h.incrementWater)

	api.GET("/steps", h.listSteps)
	api.POST("/steps", h.logSteps)
	api.PUT("/steps/goal", h.setStepsGoal)

	api.GET("/skincare", h.getSkincare)
	api.PUT("/skincare", h.upsertSkincare)

	api.GET("/summary/week", h.getWeekSummary)
}
