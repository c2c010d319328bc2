package reports

import (
	"context"
	"testing"
	"time"

	"laptop-ledger/internal/models"
	"laptop-ledger/internal/repository"
	"laptop-ledger/internal/store"
)

var now = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

func fixture() *Snapshot {
	return &Snapshot{
		Laptops: []models.Laptop{
			{ID: "L1", CorporateBrand: "Dell", ProductBrand: "Latitude", SKU: "A", PurchasePrice: 100.10, Quantity: 3, Status: models.LaptopAvailable},
			{ID: "L2", CorporateBrand: "HP", ProductBrand: "EliteBook", SKU: "B", PurchasePrice: 200, Quantity: 0, Status: models.LaptopSold},
			{ID: "L3", CorporateBrand: "Dell", ProductBrand: "XPS", SKU: "C", PurchasePrice: 300.20, Quantity: 5, Status: models.LaptopAvailable},
			{ID: "L4", CorporateBrand: "Apple", ProductBrand: "MacBook", SKU: "D", PurchasePrice: 500, Quantity: 1, Status: models.LaptopReserved},
		},
		Sales: []models.Sale{
			{ID: "S1", LaptopID: "L2", SalePrice: 0.1, SaleDate: "2024-03-01"},
			{ID: "S2", LaptopID: "L1", SalePrice: 0.2, SaleDate: "2024-03-31"},
			{ID: "S3", LaptopID: "L1", SalePrice: 1000, SaleDate: "2024-02-28"},
			{ID: "S4", LaptopID: "L1", SalePrice: 50, SaleDate: "not a date"},
		},
		Clients: []models.Client{{ID: "C1"}, {ID: "C2"}},
		Expenses: []models.Expense{
			{ID: "E1", Date: "2024-03-02", Amount: 10},
			{ID: "E2", Date: "2023-03-02", Amount: 5},
		},
		Commissions: []models.Commission{
			{ID: "K1", Amount: 20, PaymentStatus: models.CommissionPending},
			{ID: "K2", Amount: 30, PaymentStatus: models.CommissionPaid},
		},
	}
}

func TestBuildSummary(t *testing.T) {
	got := BuildSummary(fixture(), now)
	want := Summary{
		TotalRevenue:       1050.3,
		TotalExpenses:      15,
		TotalCommissions:   50,
		NetProfit:          985.3,
		ThisMonthRevenue:   0.3,
		ThisMonthExpenses:  10,
		ThisMonthSales:     2,
		AvailableStock:     8,
		SoldLaptops:        1,
		TotalClients:       2,
		PendingCommissions: 1,
	}
	if got != want {
		t.Errorf("BuildSummary =\n %+v\nwant\n %+v", got, want)
	}
}

func TestBuildDashboard(t *testing.T) {
	got := BuildDashboard(fixture(), now)
	want := Dashboard{
		AvailableStock:         8,
		SoldThisMonth:          2,
		TotalClients:           2,
		NetProfit:              1035.3,
		OutstandingCommissions: 20,
		LowStockItems:          0,
	}
	if got != want {
		t.Errorf("BuildDashboard = %+v, want %+v", got, want)
	}
}

func TestSalesBetween(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
		count      int
		revenue    float64
	}{
		{"march inclusive", "2024-03-01", "2024-03-31", 2, 0.3},
		{"single day", "2024-02-28", "2024-02-28", 1, 1000},
		{"everything", "2024-01-01", "2024-12-31", 3, 1000.3},
		{"empty range", "2025-01-01", "2025-01-31", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, _ := ParseDate(tt.start)
			end, _ := ParseDate(tt.end)
			got := SalesBetween(fixture(), start, end)
			if got.TotalCount != tt.count || got.TotalRevenue != tt.revenue {
				t.Errorf("got count=%d revenue=%v, want %d %v", got.TotalCount, got.TotalRevenue, tt.count, tt.revenue)
			}
		})
	}
}

func TestStockValuation(t *testing.T) {
	v := StockValuation(fixture().Laptops)
	if len(v.Brands) != 2 {
		t.Fatalf("expected 2 brands, got %+v", v.Brands)
	}
	if v.Brands[0].Brand != "Apple" || v.Brands[1].Brand != "Dell" {
		t.Errorf("brands not sorted: %s, %s", v.Brands[0].Brand, v.Brands[1].Brand)
	}
	dell := v.Brands[1]
	if len(dell.Items) != 2 || dell.Subtotal != 1801.3 {
		t.Errorf("dell group = %+v", dell)
	}
	if dell.Items[0].Name != "Dell Latitude A" || dell.Items[0].TotalCost != 300.3 {
		t.Errorf("dell item = %+v", dell.Items[0])
	}
	if v.GrandTotal != 2301.3 {
		t.Errorf("grand total = %v, want 2301.3", v.GrandTotal)
	}
}

func TestLoadSnapshot(t *testing.T) {
	s, err := store.OpenFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	repos := repository.NewRepositories(s)
	ctx := context.Background()
	if err := repos.Clients.Save(ctx, []models.Client{{ID: "C1"}}); err != nil {
		t.Fatal(err)
	}
	snap, err := Load(ctx, repos)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(snap.Clients) != 1 || len(snap.Laptops) != 0 || snap.Sales == nil {
		t.Errorf("unexpected snapshot %+v", snap)
	}
}
