package main

import (
	"errors"
	"log/slog"
	"net/http"
	"net/mail"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"golang.org/x/crypto/bcrypt"

	"lg/wellness-go-api/internal/tracker"
)

// dummyHash is a pre-computed bcrypt hash used when a login username isn't found.
// Running bcrypt against it (instead of returning early) keeps response time
// constant, preventing timing-based username enumeration.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("dummy"), bcrypt.DefaultCost)

const minPasswordLen = 8

// signup creates an account and returns its auth token.
// POST /api/signup (public). Body: { "username", "email", "password", "name"? }.
func (h *Handler) signup(c *gin.Context) {
	var body signupRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	body.Username = strings.TrimSpace(body.Username)
	body.Email = strings.TrimSpace(body.Email)

	if body.Username == "" || len(body.Username) > 50 {
		apiError(c, http.StatusBadRequest, "username must be 1-50 characters")
		return
	}
	if _, err := mail.ParseAddress(body.Email); err != nil {
		apiError(c, http.StatusBadRequest, "invalid email")
		return
	}
	if len(body.Password) < minPasswordLen {
		apiError(c, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), h.bcryptCost)
	if err != nil {
		h.serviceError(c, err, "", "failed to create account")
		return
	}

	u, err := h.store.CreateUser(c, tracker.User{
		Username:  body.Username,
		Email:     body.Email,
		Name:      body.Name,
		AuthToken: uuid.NewString(),
		Password:  string(hash),
		StepsGoal: h.defaultStepsGoal,
	})
	if errors.Is(err, tracker.ErrConflict) {
		apiError(c, http.StatusConflict, "username or email already taken")
		return
	}
	if err != nil {
		h.serviceError(c, err, "", "failed to create account")
		return
	}

	h.log.InfoContext(c, "user signed up", slog.Int("user_id", u.ID))
	c.JSON(http.StatusCreated, gin.H{"token": u.AuthToken, "user_id": u.ID})
}

// login verifies username/password and returns the user's auth token.
// POST /api/login (public — no auth required).
func (h *Handler) login(c *gin.Context) {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	u, lookupErr := h.store.GetUserByUsername(c, body.Username)

	// Always run bcrypt to keep response time constant regardless of whether the
	// username was found — prevents timing-based username enumeration.
	hashToCheck := string(dummyHash)
	if lookupErr == nil {
		hashToCheck = u.Password
	}
	compareErr := bcrypt.CompareHashAndPassword([]byte(hashToCheck), []byte(body.Password))

	if lookupErr != nil && !errors.Is(lookupErr, tracker.ErrNotFound) {
		h.serviceError(c, lookupErr, "", "failed to log in")
		return
	}
	if lookupErr != nil || compareErr != nil {
		apiError(c, http.StatusUnauthorized, "invalid credentials")
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": u.AuthToken, "user_id": u.ID})
}

// logout rotates the caller's token so the old one stops working everywhere.
// POST /api/logout.
func (h *Handler) logout(c *gin.Context) {
	userID := c.GetInt("user_id")

	if err := h.store.UpdateAuthToken(c, userID, uuid.NewString()); err != nil {
		h.serviceError(c, err, "user not found", "failed to log out")
		return
	}
	if h.tokens != nil {
		h.tokens.Delete(c.GetString("auth_token"))
	}

	c.Status(http.StatusNoContent)
}

// authMiddleware validates the Bearer token and sets user_id on the context.
// Browsers cannot set headers on websocket upgrades, so /api/ws may pass the
// token as ?token= instead.
func (h *Handler) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			apiError(c, http.StatusUnauthorized, "missing or invalid authorization header")
			c.Abort()
			return
		}

		userID, err := h.lookupToken(c, token)
		if err != nil {
			if !errors.Is(err, tracker.ErrNotFound) {
				h.log.ErrorContext(c, "token lookup failed", slog.String("error", err.Error()))
			}
			apiError(c, http.StatusUnauthorized, "invalid token")
			c.Abort()
			return
		}

		c.Set("user_id", userID)
		c.Set("auth_token", token)
		c.Next()
	}
}

// lookupToken resolves token through the cache. A nil cache disables caching.
func (h *Handler) lookupToken(c *gin.Context, token string) (int, error) {
	if h.tokens != nil {
		if id, ok := h.tokens.Get(token); ok {
			return id.(int), nil
		}
	}
	id, err := h.store.GetUserIDByToken(c, token)
	if err != nil {
		return 0, err
	}
	if h.tokens != nil {
		h.tokens.Set(token, id, cache.DefaultExpiration)
	}
	return id, nil
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		token := strings.TrimPrefix(header, "Bearer ")
		return token, token != ""
	}
	if strings.HasSuffix(c.Request.URL.Path, "/ws") {
		if token := c.Query("token"); token != "" {
			return token, true
		}
	}
	return "", false
}
