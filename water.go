package main

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"lg/wellness-go-api/internal/tracker"
)

// getWater returns the glass count for a date, 0 if nothing was logged.
// GET /api/water/:date.
func (h *Handler) getWater(c *gin.Context) {
	d, ok := parseDate(c, c.Param("date"), "date")
	if !ok {
		return
	}

	glasses := 0
	entry, err := h.store.GetDailyEntry(c, c.GetInt("user_id"), d)
	switch {
	case err == nil:
		glasses = entry.WaterGlasses
	case !errors.Is(err, tracker.ErrNotFound):
		h.serviceError(c, err, "", "failed to fetch water")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":    d.Format(tracker.DateLayout),
		"glasses": glasses,
		"goal":    h.waterGoal,
	})
}

// setWater sets the glass count for a date.
// PUT /api/water/:date. Body: { "glasses": 6 }.
func (h *Handler) setWater(c *gin.Context) {
	d, ok := parseDate(c, c.Param("date"), "date")
	if !ok {
		return
	}
	var body waterRequest
	if err := c.ShouldBindJSON(&body); err != nil || body.Glasses == nil {
		apiError(c, http.StatusBadRequest, "glasses is required")
		return
	}

	entry, err := h.svc.SetWater(c, c.GetInt("user_id"), d, *body.Glasses)
	if err != nil {
		h.serviceError(c, err, "", "failed to update water")
		return
	}
	c.JSON(http.StatusOK, entry)
}

// incrementWater adds delta glasses (default 1, may be negative) and clamps
// the result to the valid range.
// POST /api/water/:date/increment. Body: { "delta"? }.
func (h *Handler) incrementWater(c *gin.Context) {
	d, ok := parseDate(c, c.Param("date"), "date")
	if !ok {
		return
	}
	var body waterIncrementRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			apiError(c, http.StatusBadRequest, "invalid request body")
			return
		}
	}
	delta := 1
	if body.Delta != nil {
		delta = *body.Delta
	}
	if delta < -tracker.MaxWaterGlasses || delta > tracker.MaxWaterGlasses {
		apiError(c, http.StatusBadRequest, fmt.Sprintf("delta must be between %d and %d", -tracker.MaxWaterGlasses, tracker.MaxWaterGlasses))
		return
	}

	entry, err := h.svc.IncrementWater(c, c.GetInt("user_id"), d, delta)
	if err != nil {
		h.serviceError(c, err, "", "failed to update water")
		return
	}
	c.JSON(http.StatusOK, entry)
}
