package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lg/wellness-go-api/internal/tracker"
)

const maxDailySteps = 200000

// listSteps returns steps logs within [start, end] and the user's daily goal.
// GET /api/steps?start=YYYY-MM-DD&end=YYYY-MM-DD.
func (h *Handler) listSteps(c *gin.Context) {
	userID := c.GetInt("user_id")
	start, end, ok := parseRange(c)
	if !ok {
		return
	}

	logs, err := h.store.ListStepsLogs(c, userID, start, end)
	if err != nil {
		h.serviceError(c, err, "", "failed to fetch steps")
		return
	}
	u, err := h.store.GetUser(c, userID)
	if err != nil {
		h.serviceError(c, err, "user not found", "failed to fetch steps")
		return
	}

	c.JSON(http.StatusOK, gin.H{"goal": u.StepsGoal, "logs": logs})
}

// logSteps records steps for a date.
// POST /api/steps. Body: { "date", "steps", "mode": "set" | "add" }.
func (h *Handler) logSteps(c *gin.Context) {
	var body stepsRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	d, ok := parseDate(c, body.Date, "date")
	if !ok {
		return
	}
	if body.Steps < 0 || body.Steps > maxDailySteps {
		apiError(c, http.StatusBadRequest, "steps must be between 0 and 200000")
		return
	}
	var add bool
	switch body.Mode {
	case "", "set":
	case "add":
		add = true
	default:
		apiError(c, http.StatusBadRequest, "mode must be one of: set, add")
		return
	}

	l, err := h.store.UpsertSteps(c, c.GetInt("user_id"), d, body.Steps, add)
	if err != nil {
		h.serviceError(c, err, "", "failed to log steps")
		return
	}
	c.JSON(http.StatusOK, l)
}

// setStepsGoal changes the user's daily steps goal.
// PUT /api/steps/goal. Body: { "steps_goal": 8000 }.
func (h *Handler) setStepsGoal(c *gin.Context) {
	var body struct {
		StepsGoal *int `json:"steps_goal"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.StepsGoal == nil {
		apiError(c, http.StatusBadRequest, "steps_goal is required")
		return
	}
	patch := tracker.ProfilePatch{StepsGoal: body.StepsGoal}
	if err := patch.Validate(); err != nil {
		h.serviceError(c, err, "", "failed to update steps goal")
		return
	}

	u, err := h.store.UpdateProfile(c, c.GetInt("user_id"), patch)
	if err != nil {
		h.serviceError(c, err, "user not found", "failed to update steps goal")
		return
	}
	c.JSON(http.StatusOK, gin.H{"steps_goal": u.StepsGoal})
}
