package handlers

import (
	"net/http"

	"laptop-ledger/internal/services"

	"github.com/gin-gonic/gin"
)

// --- GET: /api/laptops ---
func (h *Handler) GetLaptops(c *gin.Context) {
	laptops, err := h.Services.Laptops.List(c.Request.Context())
	if err != nil {
		fail(c, err, "Failed to fetch laptops")
		return
	}
	c.JSON(http.StatusOK, laptops)
}

// --- POST: /api/laptops ---
func (h *Handler) AddLaptop(c *gin.Context) {
	var input services.LaptopInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badInput(c)
		return
	}

	laptop, err := h.Services.Laptops.Create(c.Request.Context(), input)
	if err != nil {
		fail(c, err, "Failed to save laptop")
		return
	}
	c.JSON(http.StatusCreated, laptop)
}

// --- PATCH: /api/laptops/:id ---
func (h *Handler) UpdateLaptop(c *gin.Context) {
	var input services.LaptopUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		badInput(c)
		return
	}

	laptop, err := h.Services.Laptops.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		fail(c, err, "Failed to update laptop")
		return
	}
	c.JSON(http.StatusOK, laptop)
}
