package handlers

import (
	"net/http"

	"laptop-ledger/internal/services"

	"github.com/gin-gonic/gin"
)

// --- GET: /api/clients ---
func (h *Handler) GetClients(c *gin.Context) {
	clients, err := h.Services.Clients.List(c.Request.Context())
	if err != nil {
		fail(c, err, "Failed to fetch clients")
		return
	}
	c.JSON(http.StatusOK, clients)
}

// --- POST: /api/clients ---
func (h *Handler) AddClient(c *gin.Context) {
	var input services.ClientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badInput(c)
		return
	}

	client, err := h.Services.Clients.Create(c.Request.Context(), input)
	if err != nil {
		fail(c, err, "Failed to save client")
		return
	}
	c.JSON(http.StatusCreated, client)
}

// --- GET: /api/expenses ---
func (h *Handler) GetExpenses(c *gin.Context) {
	expenses, err := h.Services.Expenses.List(c.Request.Context())
	if err != nil {
		fail(c, err, "Failed to fetch expenses")
		return
	}
	c.JSON(http.StatusOK, expenses)
}

// --- POST: /api/expenses ---
func (h *Handler) AddExpense(c *gin.Context) {
	var input services.ExpenseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badInput(c)
		return
	}

	expense, err := h.Services.Expenses.Create(c.Request.Context(), input)
	if err != nil {
		fail(c, err, "Failed to save expense")
		return
	}
	c.JSON(http.StatusCreated, expense)
}
