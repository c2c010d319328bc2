package handlers

import (
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"laptop-ledger/internal/metrics"
	"laptop-ledger/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Router wires every route onto a fresh engine.
func (h *Handler) Router() *gin.Engine {
	r := gin.Default()
	r.Use(metrics.Middleware())

	// --- CORS CONFIG ---
	r.Use(cors.New(cors.Config{
		AllowOrigins:     h.Config.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "shop": h.Config.Shop.Name})
	})
	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api")
	{
		// Public routes
		api.POST("/auth/login", h.Login)
		api.POST("/auth/logout", h.Logout)
		if h.Config.AllowRegistration {
			api.POST("/auth/register", h.Register)
		}

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(h.Tokens))
		{
			protected.GET("/auth/me", h.Me)

			protected.GET("/laptops", h.GetLaptops)
			protected.POST("/laptops", h.AddLaptop)
			protected.PATCH("/laptops/:id", h.UpdateLaptop)

			protected.GET("/clients", h.GetClients)
			protected.POST("/clients", h.AddClient)

			protected.GET("/expenses", h.GetExpenses)
			protected.POST("/expenses", h.AddExpense)

			protected.GET("/sales", h.GetSales)
			protected.POST("/sales", h.ProcessSale)

			protected.GET("/commissions", h.GetCommissions)
			protected.POST("/commissions", h.AddCommission)
			protected.PATCH("/commissions/:id", h.UpdateCommission)

			protected.GET("/reports/summary", h.GetSummary)
			protected.GET("/reports/dashboard", h.GetDashboard)
			protected.GET("/reports/sales", h.GetSalesReport)
			protected.GET("/reports/valuation", h.GetStockValuation)

			protected.GET("/export/sales.xlsx", h.ExportSales)
			protected.GET("/export/commissions.xlsx", h.ExportCommissions)
			protected.GET("/export/report.xlsx", h.ExportReport)

			if h.Assistant != nil {
				protected.POST("/ask", h.AskAI)
			}
		}
	}

	h.serveFrontend(r)
	return r
}

// serveFrontend serves the built SPA. Unknown non-API paths fall back to
// index.html so client-side routing works on reload.
func (h *Handler) serveFrontend(r *gin.Engine) {
	dir := h.Config.WebDir
	if dir == "" {
		return
	}
	r.Static("/assets", filepath.Join(dir, "assets"))
	r.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		c.File(filepath.Join(dir, "index.html"))
	})
}
