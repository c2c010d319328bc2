// Package reports computes the figures shown on the dashboard and the
// reports page. Everything is a linear pass over a snapshot of the
// collections; money is summed as decimals to avoid float drift.
package reports

import (
	"context"
	"sort"
	"time"

	"laptop-ledger/internal/models"
	"laptop-ledger/internal/repository"
	"laptop-ledger/internal/store"

	"github.com/shopspring/decimal"
)

// LowStockThreshold is the quantity at or below which an available laptop
// counts as low stock on the dashboard.
const LowStockThreshold = 2

// Snapshot is a consistent read of every collection a report needs.
type Snapshot struct {
	Laptops     []models.Laptop
	Sales       []models.Sale
	Clients     []models.Client
	Expenses    []models.Expense
	Commissions []models.Commission
}

// Load reads all report inputs inside one read transaction.
func Load(ctx context.Context, repos *repository.Repositories) (*Snapshot, error) {
	var snap Snapshot
	err := repos.View(ctx, func(tx store.Tx) error {
		var err error
		if snap.Laptops, err = repos.Laptops.Load(tx); err != nil {
			return err
		}
		if snap.Sales, err = repos.Sales.Load(tx); err != nil {
			return err
		}
		if snap.Clients, err = repos.Clients.Load(tx); err != nil {
			return err
		}
		if snap.Expenses, err = repos.Expenses.Load(tx); err != nil {
			return err
		}
		snap.Commissions, err = repos.Commissions.Load(tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

// LaptopByID indexes laptops for joins.
func (s *Snapshot) LaptopByID() map[string]models.Laptop {
	m := make(map[string]models.Laptop, len(s.Laptops))
	for _, l := range s.Laptops {
		m[l.ID] = l
	}
	return m
}

// ClientByID indexes clients for joins.
func (s *Snapshot) ClientByID() map[string]models.Client {
	m := make(map[string]models.Client, len(s.Clients))
	for _, c := range s.Clients {
		m[c.ID] = c
	}
	return m
}

// SaleByID indexes sales for joins.
func (s *Snapshot) SaleByID() map[string]models.Sale {
	m := make(map[string]models.Sale, len(s.Sales))
	for _, sale := range s.Sales {
		m[sale.ID] = sale
	}
	return m
}

// Summary is the reports page headline.
type Summary struct {
	TotalRevenue       float64 `json:"totalRevenue"`
	TotalExpenses      float64 `json:"totalExpenses"`
	TotalCommissions   float64 `json:"totalCommissions"`
	NetProfit          float64 `json:"netProfit"`
	ThisMonthRevenue   float64 `json:"thisMonthRevenue"`
	ThisMonthExpenses  float64 `json:"thisMonthExpenses"`
	ThisMonthSales     int     `json:"thisMonthSales"`
	AvailableStock     int     `json:"availableStock"`
	SoldLaptops        int     `json:"soldLaptops"`
	TotalClients       int     `json:"totalClients"`
	PendingCommissions int     `json:"pendingCommissions"`
}

func BuildSummary(s *Snapshot, now time.Time) Summary {
	revenue, monthRevenue := decimal.Zero, decimal.Zero
	monthSales := 0
	for _, sale := range s.Sales {
		revenue = revenue.Add(decimal.NewFromFloat(sale.SalePrice))
		if sameMonth(sale.SaleDate, now) {
			monthRevenue = monthRevenue.Add(decimal.NewFromFloat(sale.SalePrice))
			monthSales++
		}
	}

	expenses, monthExpenses := decimal.Zero, decimal.Zero
	for _, e := range s.Expenses {
		expenses = expenses.Add(decimal.NewFromFloat(e.Amount))
		if sameMonth(e.Date, now) {
			monthExpenses = monthExpenses.Add(decimal.NewFromFloat(e.Amount))
		}
	}

	commissions := decimal.Zero
	pending := 0
	for _, c := range s.Commissions {
		commissions = commissions.Add(decimal.NewFromFloat(c.Amount))
		if c.PaymentStatus == models.CommissionPending {
			pending++
		}
	}

	soldLaptops := 0
	for _, l := range s.Laptops {
		if l.Status == models.LaptopSold {
			soldLaptops++
		}
	}

	return Summary{
		TotalRevenue:       money(revenue),
		TotalExpenses:      money(expenses),
		TotalCommissions:   money(commissions),
		NetProfit:          money(revenue.Sub(expenses).Sub(commissions)),
		ThisMonthRevenue:   money(monthRevenue),
		ThisMonthExpenses:  money(monthExpenses),
		ThisMonthSales:     monthSales,
		AvailableStock:     availableStock(s.Laptops),
		SoldLaptops:        soldLaptops,
		TotalClients:       len(s.Clients),
		PendingCommissions: pending,
	}
}

// Dashboard holds the tiles of the landing page. Net profit here ignores
// commissions, as the dashboard always has.
type Dashboard struct {
	AvailableStock         int     `json:"availableStock"`
	SoldThisMonth          int     `json:"soldThisMonth"`
	TotalClients           int     `json:"totalClients"`
	NetProfit              float64 `json:"netProfit"`
	OutstandingCommissions float64 `json:"outstandingCommissions"`
	LowStockItems          int     `json:"lowStockItems"`
}

func BuildDashboard(s *Snapshot, now time.Time) Dashboard {
	var d Dashboard
	revenue, expenses, outstanding := decimal.Zero, decimal.Zero, decimal.Zero
	for _, sale := range s.Sales {
		revenue = revenue.Add(decimal.NewFromFloat(sale.SalePrice))
		if sameMonth(sale.SaleDate, now) {
			d.SoldThisMonth++
		}
	}
	for _, e := range s.Expenses {
		expenses = expenses.Add(decimal.NewFromFloat(e.Amount))
	}
	for _, c := range s.Commissions {
		if c.PaymentStatus == models.CommissionPending {
			outstanding = outstanding.Add(decimal.NewFromFloat(c.Amount))
		}
	}
	for _, l := range s.Laptops {
		if l.Status == models.LaptopAvailable && l.Quantity <= LowStockThreshold {
			d.LowStockItems++
		}
	}
	d.AvailableStock = availableStock(s.Laptops)
	d.TotalClients = len(s.Clients)
	d.NetProfit = money(revenue.Sub(expenses))
	d.OutstandingCommissions = money(outstanding)
	return d
}

// SalesReportResult is revenue and count for a date range.
type SalesReportResult struct {
	Start        string  `json:"start"`
	End          string  `json:"end"`
	TotalRevenue float64 `json:"totalRevenue"`
	TotalCount   int     `json:"totalCount"`
}

// SalesBetween sums sales whose saleDate falls in [start, end], both days
// inclusive. Sales with an unparseable date are skipped.
func SalesBetween(s *Snapshot, start, end time.Time) SalesReportResult {
	from := truncateDay(start)
	to := truncateDay(end).AddDate(0, 0, 1)
	revenue := decimal.Zero
	count := 0
	for _, sale := range s.Sales {
		d, ok := ParseDate(sale.SaleDate)
		if !ok || d.Before(from) || !d.Before(to) {
			continue
		}
		revenue = revenue.Add(decimal.NewFromFloat(sale.SalePrice))
		count++
	}
	return SalesReportResult{
		Start:        start.Format(time.DateOnly),
		End:          end.Format(time.DateOnly),
		TotalRevenue: money(revenue),
		TotalCount:   count,
	}
}

// ValuationItem is one stock line valued at purchase price.
type ValuationItem struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	CostPrice float64 `json:"costPrice"`
	TotalCost float64 `json:"totalCost"`
}

// BrandGroup is one table of the valuation report.
type BrandGroup struct {
	Brand    string          `json:"brand"`
	Items    []ValuationItem `json:"items"`
	Subtotal float64         `json:"subtotal"`
}

type Valuation struct {
	Brands     []BrandGroup `json:"brands"`
	GrandTotal float64      `json:"grandTotal"`
}

// StockValuation values laptops still in stock (quantity > 0, not sold),
// grouped by corporate brand in alphabetical order.
func StockValuation(laptops []models.Laptop) Valuation {
	groups := make(map[string]*BrandGroup)
	subtotals := make(map[string]decimal.Decimal)
	grand := decimal.Zero

	for _, l := range laptops {
		if l.Quantity <= 0 || l.Status == models.LaptopSold {
			continue
		}
		brand := l.CorporateBrand
		if brand == "" {
			brand = "Unbranded"
		}
		if _, ok := groups[brand]; !ok {
			groups[brand] = &BrandGroup{Brand: brand, Items: []ValuationItem{}}
		}
		cost := decimal.NewFromFloat(l.PurchasePrice)
		total := cost.Mul(decimal.NewFromInt(int64(l.Quantity)))
		groups[brand].Items = append(groups[brand].Items, ValuationItem{
			ID:        l.ID,
			Name:      l.Label(),
			Quantity:  l.Quantity,
			CostPrice: l.PurchasePrice,
			TotalCost: money(total),
		})
		subtotals[brand] = subtotals[brand].Add(total)
		grand = grand.Add(total)
	}

	v := Valuation{Brands: []BrandGroup{}, GrandTotal: money(grand)}
	for brand, g := range groups {
		g.Subtotal = money(subtotals[brand])
		v.Brands = append(v.Brands, *g)
	}
	sort.Slice(v.Brands, func(i, j int) bool { return v.Brands[i].Brand < v.Brands[j].Brand })
	return v
}

func availableStock(laptops []models.Laptop) int {
	n := 0
	for _, l := range laptops {
		if l.Status == models.LaptopAvailable {
			n += l.Quantity
		}
	}
	return n
}

// ParseDate accepts the date formats found in the data files.
func ParseDate(s string) (time.Time, bool) {
	for _, layout := range []string{time.DateOnly, time.RFC3339Nano, "2006-01-02T15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func sameMonth(date string, now time.Time) bool {
	d, ok := ParseDate(date)
	return ok && d.Year() == now.Year() && d.Month() == now.Month()
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
