package handlers

import (
	"errors"
	"net/http"

	"laptop-ledger/internal/apperrors"
	"laptop-ledger/internal/auth"
	"laptop-ledger/internal/metrics"
	"laptop-ledger/internal/middleware"
	"laptop-ledger/internal/models"

	"github.com/gin-gonic/gin"
)

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Name     string `json:"name"`
	Password string `json:"password" binding:"required"`
}

func userView(u *models.User) gin.H {
	return gin.H{"id": u.ID, "username": u.Username, "name": u.Name}
}

// --- POST: /api/auth/login ---
func (h *Handler) Login(c *gin.Context) {
	var input LoginRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		badInput(c)
		return
	}

	user, err := h.Services.Users.Authenticate(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			metrics.LoginAttempts.WithLabelValues("rejected").Inc()
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		fail(c, err, "Login failed")
		return
	}

	token, err := h.Tokens.GenerateToken(user.ID, user.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}
	metrics.LoginAttempts.WithLabelValues("accepted").Inc()

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.CookieName, token, int(h.Tokens.TTL().Seconds()), "/", "", h.Config.CookieSecure, true)
	c.JSON(http.StatusOK, gin.H{"success": true, "user": userView(user)})
}

// --- POST: /api/auth/logout ---
func (h *Handler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.CookieName, "", -1, "/", "", h.Config.CookieSecure, true)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// --- GET: /api/auth/me ---
func (h *Handler) Me(c *gin.Context) {
	user, err := h.Services.Users.Get(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Token outlived its account.
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		fail(c, err, "Failed to fetch user")
		return
	}
	c.JSON(http.StatusOK, userView(user))
}

// --- POST: /api/auth/register --- (only routed when ALLOW_REGISTRATION=true)
func (h *Handler) Register(c *gin.Context) {
	var input RegisterRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		badInput(c)
		return
	}

	user, err := h.Services.Users.Register(c.Request.Context(), input.Username, input.Name, input.Password)
	if err != nil {
		fail(c, err, "Failed to create user")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User created successfully!", "user": userView(user)})
}
