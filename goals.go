package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lg/wellness-go-api/internal/tracker"
)

// listGoals returns the user's goal history, newest first.
// GET /api/goals.
func (h *Handler) listGoals(c *gin.Context) {
	goals, err := h.store.ListGoals(c, c.GetInt("user_id"))
	if err != nil {
		h.serviceError(c, err, "", "failed to fetch goals")
		return
	}
	c.JSON(http.StatusOK, goals)
}

// saveGoal replaces the active goal and returns it with cumulative figures
// rebuilt from existing entries.
// POST /api/goals. Body: { "goal_type", "start_date"?, "start_weight_kg", "goal_weight_kg" }.
func (h *Handler) saveGoal(c *gin.Context) {
	var body tracker.SaveGoalInput
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	goal, err := h.svc.SaveGoal(c, c.GetInt("user_id"), body)
	if err != nil {
		h.serviceError(c, err, "user not found", "failed to save goal")
		return
	}
	c.JSON(http.StatusCreated, goal)
}

// getActiveGoal returns the active goal.
// GET /api/goals/active. 404 when the user has none.
func (h *Handler) getActiveGoal(c *gin.Context) {
	goal, err := h.svc.ActiveGoal(c, c.GetInt("user_id"))
	if err != nil {
		h.serviceError(c, err, "no active goal", "failed to fetch goal")
		return
	}
	c.JSON(http.StatusOK, goal)
}

// getGoalProgress returns the derived progress view of the active goal.
// GET /api/goals/progress. 404 when the user has none.
func (h *Handler) getGoalProgress(c *gin.Context) {
	p, err := h.svc.GoalProgress(c, c.GetInt("user_id"))
	if err != nil {
		h.serviceError(c, err, "no active goal", "failed to compute progress")
		return
	}
	c.JSON(http.StatusOK, p)
}

// recalculateGoal rebuilds the active goal's cumulative figures on demand.
// POST /api/goals/recalculate. 404 when the user has no active goal.
func (h *Handler) recalculateGoal(c *gin.Context) {
	goal, err := h.svc.RecalculateGoalCumulatives(c, c.GetInt("user_id"))
	if err != nil {
		h.serviceError(c, err, "no active goal", "failed to recalculate goal")
		return
	}
	if goal == nil {
		apiError(c, http.StatusNotFound, "no active goal")
		return
	}
	c.JSON(http.StatusOK, goal)
}

// getDailyEntry returns a day's entry rated against the active goal.
// GET /api/daily-entries/:date. Days without an entry return zero totals.
func (h *Handler) getDailyEntry(c *gin.Context) {
	d, ok := parseDate(c, c.Param("date"), "date")
	if !ok {
		return
	}

	balance, err := h.svc.DailyBalance(c, c.GetInt("user_id"), d)
	if err != nil {
		h.serviceError(c, err, "daily entry not found", "failed to fetch daily entry")
		return
	}
	c.JSON(http.StatusOK, balance)
}
