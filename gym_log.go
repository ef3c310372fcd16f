package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lg/wellness-go-api/internal/tracker"
)

// listGymLogs returns the gym logs for one date.
// GET /api/gym-logs?date=YYYY-MM-DD (defaults to today).
func (h *Handler) listGymLogs(c *gin.Context) {
	userID := c.GetInt("user_id")
	d, ok := parseDate(c, c.DefaultQuery("date", today().Format(tracker.DateLayout)), "date")
	if !ok {
		return
	}

	logs, err := h.store.ListGymLogs(c, userID, d, d)
	if err != nil {
		h.serviceError(c, err, "", "failed to fetch gym logs")
		return
	}
	c.JSON(http.StatusOK, logs)
}

// createGymLog logs a workout and refreshes that day's totals.
// POST /api/gym-logs.
func (h *Handler) createGymLog(c *gin.Context) {
	userID := c.GetInt("user_id")

	var body gymLogRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	g, err := body.validate(userID)
	if err != nil {
		apiError(c, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.store.CreateGymLog(c, g)
	if err != nil {
		h.serviceError(c, err, "", "failed to create gym log")
		return
	}
	h.syncDates(c, userID, created.Date.Time)

	c.JSON(http.StatusCreated, created)
}

// updateGymLog replaces a gym log. When the date changes both the old and
// the new day are resynced.
// PUT /api/gym-logs/:id.
func (h *Handler) updateGymLog(c *gin.Context) {
	userID := c.GetInt("user_id")
	id, ok := pathID(c)
	if !ok {
		return
	}

	var body gymLogRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	g, err := body.validate(userID)
	if err != nil {
		apiError(c, http.StatusBadRequest, err.Error())
		return
	}

	existing, err := h.store.GetGymLog(c, userID, id)
	if err != nil {
		h.serviceError(c, err, "gym log not found", "failed to update gym log")
		return
	}

	g.ID = id
	updated, err := h.store.UpdateGymLog(c, g)
	if err != nil {
		h.serviceError(c, err, "gym log not found", "failed to update gym log")
		return
	}
	h.syncDates(c, userID, existing.Date.Time, updated.Date.Time)

	c.JSON(http.StatusOK, updated)
}

// deleteGymLog removes a gym log and resyncs its day.
// DELETE /api/gym-logs/:id. Returns 204 on success, 404 if not found.
func (h *Handler) deleteGymLog(c *gin.Context) {
	userID := c.GetInt("user_id")
	id, ok := pathID(c)
	if !ok {
		return
	}

	deleted, err := h.store.DeleteGymLog(c, userID, id)
	if err != nil {
		h.serviceError(c, err, "gym log not found", "failed to delete gym log")
		return
	}
	h.syncDates(c, userID, deleted.Date.Time)

	c.Status(http.StatusNoContent)
}
