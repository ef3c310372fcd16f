package main

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"lg/wellness-go-api/internal/tracker"
)

// getWeightLog returns daily entries with a recorded weight within [start, end].
// GET /api/weight-log?start=YYYY-MM-DD&end=YYYY-MM-DD. Both params required.
// Returns an empty array (not null) if no entries exist in the range.
func (h *Handler) getWeightLog(c *gin.Context) {
	userID := c.GetInt("user_id")
	start, end, ok := parseRange(c)
	if !ok {
		return
	}

	entries, err := h.store.ListWeightEntries(c, userID, start, end)
	if err != nil {
		h.serviceError(c, err, "", "failed to fetch weight log")
		return
	}
	c.JSON(http.StatusOK, entries)
}

// recordWeight sets the weight for a date, recomputing that day's BMR and
// balance and then the active goal.
// POST /api/weight-log. Body: { "date": "YYYY-MM-DD", "weight_kg": 82.5 }.
// Posting the same date again overwrites the weight in place.
func (h *Handler) recordWeight(c *gin.Context) {
	userID := c.GetInt("user_id")

	var body weightRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	d, ok := parseDate(c, body.Date, "date")
	if !ok {
		return
	}
	if body.WeightKg <= 0 || body.WeightKg > tracker.MaxWeightKg {
		apiError(c, http.StatusBadRequest, fmt.Sprintf("weight_kg must be between 0 and %d", tracker.MaxWeightKg))
		return
	}

	entry, err := h.svc.RecordWeight(c, userID, d, body.WeightKg)
	if err != nil {
		h.serviceError(c, err, "user not found", "failed to record weight")
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// clearWeight removes the weight (and with it BMR and balance) from a date.
// DELETE /api/weight-log/:date. Returns 404 if the date has no entry.
func (h *Handler) clearWeight(c *gin.Context) {
	userID := c.GetInt("user_id")
	d, ok := parseDate(c, c.Param("date"), "date")
	if !ok {
		return
	}

	entry, err := h.svc.ClearWeight(c, userID, d)
	if err != nil {
		h.serviceError(c, err, "weight entry not found", "failed to clear weight")
		return
	}
	c.JSON(http.StatusOK, entry)
}
