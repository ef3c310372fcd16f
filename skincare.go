package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lg/wellness-go-api/internal/tracker"
)

// getSkincare returns the skincare routines logged for a date.
// GET /api/skincare?date=YYYY-MM-DD (defaults to today).
func (h *Handler) getSkincare(c *gin.Context) {
	d, ok := parseDate(c, c.DefaultQuery("date", today().Format(tracker.DateLayout)), "date")
	if !ok {
		return
	}

	logs, err := h.store.ListSkincareLogs(c, c.GetInt("user_id"), d)
	if err != nil {
		h.serviceError(c, err, "", "failed to fetch skincare")
		return
	}
	c.JSON(http.StatusOK, logs)
}

// upsertSkincare saves the step toggles for one routine of a day.
// PUT /api/skincare. The (date, time_of_day) pair identifies the row.
func (h *Handler) upsertSkincare(c *gin.Context) {
	var body skincareRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	d, ok := parseDate(c, body.Date, "date")
	if !ok {
		return
	}
	if !tracker.ValidSkincareTimes[body.TimeOfDay] {
		apiError(c, http.StatusBadRequest, "time_of_day must be one of: pre_gym, post_shower, bedtime")
		return
	}

	l, err := h.store.UpsertSkincareLog(c, tracker.SkincareLog{
		UserID:          c.GetInt("user_id"),
		Date:            tracker.NewDate(d),
		TimeOfDay:       body.TimeOfDay,
		CleansingDone:   body.CleansingDone,
		SerumDone:       body.SerumDone,
		MoisturizerDone: body.MoisturizerDone,
		GuaShaDone:      body.GuaShaDone,
	})
	if err != nil {
		h.serviceError(c, err, "", "failed to save skincare")
		return
	}
	c.JSON(http.StatusOK, l)
}
