package main

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"lg/wellness-go-api/internal/tracker"
)

// listFoodLogs returns the food logs for one date.
// GET /api/food-logs?date=YYYY-MM-DD (defaults to today).
func (h *Handler) listFoodLogs(c *gin.Context) {
	userID := c.GetInt("user_id")
	d, ok := parseDate(c, c.DefaultQuery("date", today().Format(tracker.DateLayout)), "date")
	if !ok {
		return
	}

	logs, err := h.store.ListFoodLogs(c, userID, d, d)
	if err != nil {
		h.serviceError(c, err, "", "failed to fetch food logs")
		return
	}
	c.JSON(http.StatusOK, logs)
}

// createFoodLog logs a meal and refreshes that day's totals.
// POST /api/food-logs.
func (h *Handler) createFoodLog(c *gin.Context) {
	userID := c.GetInt("user_id")

	var body foodLogRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	f, err := body.validate(userID)
	if err != nil {
		apiError(c, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.store.CreateFoodLog(c, f)
	if err != nil {
		h.serviceError(c, err, "", "failed to create food log")
		return
	}
	h.syncDates(c, userID, created.Date.Time)

	c.JSON(http.StatusCreated, created)
}

// updateFoodLog replaces a food log. When the date changes both the old and
// the new day are resynced.
// PUT /api/food-logs/:id.
func (h *Handler) updateFoodLog(c *gin.Context) {
	userID := c.GetInt("user_id")
	id, ok := pathID(c)
	if !ok {
		return
	}

	var body foodLogRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	f, err := body.validate(userID)
	if err != nil {
		apiError(c, http.StatusBadRequest, err.Error())
		return
	}

	existing, err := h.store.GetFoodLog(c, userID, id)
	if err != nil {
		h.serviceError(c, err, "food log not found", "failed to update food log")
		return
	}

	f.ID = id
	updated, err := h.store.UpdateFoodLog(c, f)
	if err != nil {
		h.serviceError(c, err, "food log not found", "failed to update food log")
		return
	}
	h.syncDates(c, userID, existing.Date.Time, updated.Date.Time)

	c.JSON(http.StatusOK, updated)
}

// deleteFoodLog removes a food log and resyncs its day.
// DELETE /api/food-logs/:id. Returns 204 on success, 404 if not found.
func (h *Handler) deleteFoodLog(c *gin.Context) {
	userID := c.GetInt("user_id")
	id, ok := pathID(c)
	if !ok {
		return
	}

	deleted, err := h.store.DeleteFoodLog(c, userID, id)
	if err != nil {
		h.serviceError(c, err, "food log not found", "failed to delete food log")
		return
	}
	h.syncDates(c, userID, deleted.Date.Time)

	c.Status(http.StatusNoContent)
}

// syncDates reruns the daily totals for each distinct date. The log change
// already succeeded, so a failed sync is logged rather than returned.
func (h *Handler) syncDates(c *gin.Context, userID int, dates ...time.Time) {
	seen := make(map[time.Time]bool, len(dates))
	for _, d := range dates {
		d = tracker.Day(d)
		if seen[d] {
			continue
		}
		seen[d] = true
		if _, err := h.svc.SyncDailyTotals(c, userID, d); err != nil {
			h.log.ErrorContext(c, "daily totals sync failed",
				slog.Int("user_id", userID),
				slog.String("date", d.Format(tracker.DateLayout)),
				slog.String("error", err.Error()))
		}
	}
}
