package ai

import (
	"context"
	"fmt"
	"time"

	"laptop-ledger/internal/models"
	"laptop-ledger/internal/reports"
	"laptop-ledger/internal/repository"

	"github.com/google/generative-ai-go/genai"
)

// Tool names the model can call. None of them write.
const (
	ToolCheckInventory     = "check_inventory"
	ToolSalesReport        = "get_sales_report"
	ToolBusinessSummary    = "get_business_summary"
	ToolPendingCommissions = "list_pending_commissions"
)

// Tools runs the assistant's function calls against the shop data.
type Tools struct {
	repos *repository.Repositories
	now   func() time.Time
}

func NewTools(repos *repository.Repositories, now func() time.Time) *Tools {
	if now == nil {
		now = time.Now
	}
	return &Tools{repos: repos, now: now}
}

func declarations() []*genai.Tool {
	return []*genai.Tool{{
		FunctionDeclarations: []*genai.FunctionDeclaration{
			{
				Name:        ToolCheckInventory,
				Description: "Get every laptop in stock. Use this for ANY question about a laptop's brand, tier, purchase price, quantity or status.",
			},
			{
				Name:        ToolSalesReport,
				Description: "Get total sales revenue and number of sales for a date range.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"start_date": {Type: genai.TypeString, Description: "Start date (YYYY-MM-DD)"},
						"end_date":   {Type: genai.TypeString, Description: "End date (YYYY-MM-DD)"},
					},
					Required: []string{"start_date", "end_date"},
				},
			},
			{
				Name:        ToolBusinessSummary,
				Description: "Get revenue, expenses, commissions and net profit, overall and for this month.",
			},
			{
				Name:        ToolPendingCommissions,
				Description: "List commissions that have not been paid out yet.",
			},
		},
	}}
}

type inventoryItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Tier     string  `json:"tier"`
	Cost     float64 `json:"cost"`
	Quantity int     `json:"quantity"`
	Status   string  `json:"status"`
}

type pendingCommission struct {
	ID     string  `json:"id"`
	SaleID string  `json:"saleId"`
	Earner string  `json:"earner"`
	Amount float64 `json:"amount"`
}

// Call executes one function call. Bad arguments come back as an "error"
// entry so the model can correct itself; only storage failures are errors.
func (t *Tools) Call(ctx context.Context, name string, args map[string]any) (map[string]any, error) {
	switch name {
	case ToolCheckInventory:
		laptops, err := t.repos.Laptops.GetAll(ctx)
		if err != nil {
			return nil, err
		}
		items := make([]inventoryItem, 0, len(laptops))
		for _, l := range laptops {
			items = append(items, inventoryItem{
				ID:       l.ID,
				Name:     l.Label(),
				Tier:     l.PerformanceTier,
				Cost:     l.PurchasePrice,
				Quantity: l.Quantity,
				Status:   l.Status,
			})
		}
		return map[string]any{"inventory": items}, nil

	case ToolSalesReport:
		start, ok1 := dateArg(args, "start_date")
		end, ok2 := dateArg(args, "end_date")
		if !ok1 || !ok2 {
			return map[string]any{"error": "Dates must be in YYYY-MM-DD format."}, nil
		}
		snap, err := reports.Load(ctx, t.repos)
		if err != nil {
			return nil, err
		}
		report := reports.SalesBetween(snap, start, end)
		return map[string]any{"revenue": report.TotalRevenue, "sales_count": report.TotalCount}, nil

	case ToolBusinessSummary:
		snap, err := reports.Load(ctx, t.repos)
		if err != nil {
			return nil, err
		}
		return map[string]any{"summary": reports.BuildSummary(snap, t.now())}, nil

	case ToolPendingCommissions:
		commissions, err := t.repos.Commissions.GetAll(ctx)
		if err != nil {
			return nil, err
		}
		pending := []pendingCommission{}
		for _, c := range commissions {
			if c.PaymentStatus == models.CommissionPending {
				pending = append(pending, pendingCommission{ID: c.ID, SaleID: c.SaleID, Earner: c.EarnerName, Amount: c.Amount})
			}
		}
		return map[string]any{"pending": pending}, nil
	}
	return map[string]any{"error": fmt.Sprintf("unknown tool %q", name)}, nil
}

func dateArg(args map[string]any, key string) (time.Time, bool) {
	s, ok := args[key].(string)
	if !ok {
		return time.Time{}, false
	}
	t, err := time.Parse(time.DateOnly, s)
	return t, err == nil
}
