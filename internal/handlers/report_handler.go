package handlers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"laptop-ledger/internal/reports"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (h *Handler) snapshot(c *gin.Context) (*reports.Snapshot, bool) {
	snap, err := reports.Load(c.Request.Context(), h.Repos)
	if err != nil {
		fail(c, err, "Failed to load report data")
		return nil, false
	}
	return snap, true
}

// --- GET: /api/reports/summary ---
func (h *Handler) GetSummary(c *gin.Context) {
	snap, ok := h.snapshot(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, reports.BuildSummary(snap, h.now()))
}

// --- GET: /api/reports/dashboard ---
func (h *Handler) GetDashboard(c *gin.Context) {
	snap, ok := h.snapshot(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, reports.BuildDashboard(snap, h.now()))
}

// --- GET: /api/reports/sales?start=YYYY-MM-DD&end=YYYY-MM-DD ---
// Without parameters the range is the current month up to today.
func (h *Handler) GetSalesReport(c *gin.Context) {
	now := h.now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := now

	if s := c.Query("start"); s != "" {
		t, err := time.Parse(time.DateOnly, s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "start must be YYYY-MM-DD"})
			return
		}
		start = t
	}
	if e := c.Query("end"); e != "" {
		t, err := time.Parse(time.DateOnly, e)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "end must be YYYY-MM-DD"})
			return
		}
		end = t
	}
	if end.Before(start) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end is before start"})
		return
	}

	snap, ok := h.snapshot(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, reports.SalesBetween(snap, start, end))
}

// --- GET: /api/reports/valuation ---
func (h *Handler) GetStockValuation(c *gin.Context) {
	laptops, err := h.Services.Laptops.List(c.Request.Context())
	if err != nil {
		fail(c, err, "Failed to value stock")
		return
	}
	c.JSON(http.StatusOK, reports.StockValuation(laptops))
}

// --- GET: /api/export/sales.xlsx ---
func (h *Handler) ExportSales(c *gin.Context) {
	h.export(c, "sales", func(s *reports.Snapshot) (*excelize.File, error) {
		return reports.SalesWorkbook(s)
	})
}

// --- GET: /api/export/commissions.xlsx ---
func (h *Handler) ExportCommissions(c *gin.Context) {
	h.export(c, "commissions", func(s *reports.Snapshot) (*excelize.File, error) {
		return reports.CommissionsWorkbook(s)
	})
}

// --- GET: /api/export/report.xlsx ---
func (h *Handler) ExportReport(c *gin.Context) {
	now := h.now()
	h.export(c, "business_report", func(s *reports.Snapshot) (*excelize.File, error) {
		return reports.ReportWorkbook(s, now)
	})
}

func (h *Handler) export(c *gin.Context, name string, build func(*reports.Snapshot) (*excelize.File, error)) {
	snap, ok := h.snapshot(c)
	if !ok {
		return
	}
	f, err := build(snap)
	if err != nil {
		log.Printf("❌ Export %s failed: %v", name, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build spreadsheet"})
		return
	}
	defer f.Close()

	filename := fmt.Sprintf("%s_%s.xlsx", name, h.now().Format(time.DateOnly))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Header("Content-Type", xlsxContentType)
	c.Status(http.StatusOK)
	if err := f.Write(c.Writer); err != nil {
		// Headers are already sent.
		log.Printf("⚠️ Export %s interrupted: %v", name, err)
	}
}
