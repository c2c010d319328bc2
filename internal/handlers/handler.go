package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"laptop-ledger/internal/ai"
	"laptop-ledger/internal/apperrors"
	"laptop-ledger/internal/auth"
	"laptop-ledger/internal/config"
	"laptop-ledger/internal/repository"
	"laptop-ledger/internal/services"

	"github.com/gin-gonic/gin"
)

// Handler holds what the HTTP handlers need.
type Handler struct {
	Services  *services.Services
	Repos     *repository.Repositories
	Tokens    *auth.Tokens
	Config    *config.Config
	Assistant *ai.Assistant // nil when GEMINI_API_KEY is not set
	Now       func() time.Time
}

func (h *Handler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// fail answers with the status that matches err. Storage failures are
// logged and reported with the generic message only.
func fail(c *gin.Context, err error, message string) {
	status := apperrors.Status(err)
	if status == http.StatusInternalServerError {
		log.Printf("❌ %s %s: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(status, gin.H{"error": message})
		return
	}
	if errors.Is(err, apperrors.ErrUnauthorized) {
		c.JSON(status, gin.H{"error": "Unauthorized"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func badInput(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
}
