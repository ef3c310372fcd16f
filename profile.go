package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lg/wellness-go-api/internal/tracker"
)

// getProfile returns the authenticated user's profile.
// GET /api/profile.
func (h *Handler) getProfile(c *gin.Context) {
	u, err := h.store.GetUser(c, c.GetInt("user_id"))
	if err != nil {
		h.serviceError(c, err, "user not found", "failed to fetch profile")
		return
	}
	c.JSON(http.StatusOK, u)
}

// patchProfile updates only the provided profile fields.
// PATCH /api/profile. Uses pointer fields in the request body to distinguish
// "not provided" from zero. Onboarding posts the same body.
//
// Height, age and gender feed BMR, but stored BMRs are not rewritten: they
// are recomputed the next time a weight is recorded for that day.
func (h *Handler) patchProfile(c *gin.Context) {
	var body tracker.ProfilePatch
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := body.Validate(); err != nil {
		h.serviceError(c, err, "", "failed to update profile")
		return
	}

	u, err := h.store.UpdateProfile(c, c.GetInt("user_id"), body)
	if err != nil {
		h.serviceError(c, err, "user not found", "failed to update profile")
		return
	}
	c.JSON(http.StatusOK, u)
}
