package handlers

import (
	"net/http"

	"laptop-ledger/internal/models"
	"laptop-ledger/internal/services"

	"github.com/gin-gonic/gin"
)

// --- GET: /api/sales ---
func (h *Handler) GetSales(c *gin.Context) {
	sales, err := h.Services.Sales.List(c.Request.Context())
	if err != nil {
		fail(c, err, "Failed to fetch sales")
		return
	}
	c.JSON(http.StatusOK, sales)
}

// --- POST: /api/sales ---
// Records the sale, takes one unit out of stock and books the commission
// in a single commit.
func (h *Handler) ProcessSale(c *gin.Context) {
	// 1. Parse JSON Input
	var input services.SaleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badInput(c)
		return
	}

	// 2. Run the workflow
	sale, err := h.Services.Sales.RecordSale(c.Request.Context(), input)
	if err != nil {
		fail(c, err, "Failed to record sale")
		return
	}

	// 3. Success
	c.JSON(http.StatusCreated, sale)
}

// --- GET: /api/commissions ---
func (h *Handler) GetCommissions(c *gin.Context) {
	commissions, err := h.Services.Commissions.List(c.Request.Context())
	if err != nil {
		fail(c, err, "Failed to fetch commissions")
		return
	}
	c.JSON(http.StatusOK, commissions)
}

// --- POST: /api/commissions ---
func (h *Handler) AddCommission(c *gin.Context) {
	var input services.CommissionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badInput(c)
		return
	}

	commission, err := h.Services.Commissions.Create(c.Request.Context(), input)
	if err != nil {
		fail(c, err, "Failed to save commission")
		return
	}
	c.JSON(http.StatusCreated, commission)
}

// --- PATCH: /api/commissions/:id ---
func (h *Handler) UpdateCommission(c *gin.Context) {
	var input services.CommissionUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		badInput(c)
		return
	}

	ctx := c.Request.Context()
	id := c.Param("id")

	var (
		commission *models.Commission
		err        error
	)
	if input.PaymentStatus != nil && *input.PaymentStatus == models.CommissionPaid && input.PayoutDate == nil {
		// Marked paid without a date: settle it today.
		commission, err = h.Services.Commissions.MarkPaid(ctx, id, "")
	} else {
		commission, err = h.Services.Commissions.Update(ctx, id, input)
	}
	if err != nil {
		fail(c, err, "Failed to update commission")
		return
	}
	c.JSON(http.StatusOK, commission)
}
