package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lg/wellness-go-api/internal/tracker"
)

// getWeekSummary returns the seven-day summary ending on end.
// GET /api/summary/week?end=YYYY-MM-DD (defaults to today).
func (h *Handler) getWeekSummary(c *gin.Context) {
	end, ok := parseDate(c, c.DefaultQuery("end", today().Format(tracker.DateLayout)), "end")
	if !ok {
		return
	}

	s, err := h.svc.WeeklySummary(c, c.GetInt("user_id"), end)
	if err != nil {
		h.serviceError(c, err, "", "failed to build weekly summary")
		return
	}
	c.JSON(http.StatusOK, s)
}
