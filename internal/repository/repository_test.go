package repository

import (
	"context"
	"reflect"
	"testing"

	"laptop-ledger/internal/models"
	"laptop-ledger/internal/store"
)

func newRepos(t *testing.T) *Repositories {
	t.Helper()
	s, err := store.OpenFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return NewRepositories(s)
}

func TestLaptopsRoundTrip(t *testing.T) {
	repos := newRepos(t)
	ctx := context.Background()

	want := []models.Laptop{
		{ID: "L1", CorporateBrand: "Dell", ProductBrand: "Latitude", PerformanceTier: models.TierI5,
			Generation: "8th", SKU: "DL-5490", PurchasePrice: 3200, Quantity: 2,
			Status: models.LaptopAvailable, PurchaseDate: "2024-01-01", CreatedAt: "2024-01-01T10:00:00Z"},
		{ID: "L2", CorporateBrand: "HP", ProductBrand: "EliteBook", PerformanceTier: models.TierI7,
			Generation: "10th", SKU: "HP-840", PurchasePrice: 4100, ConditionNotes: "scratched lid",
			Quantity: 0, Status: models.LaptopSold, PurchaseDate: "2024-01-02", CreatedAt: "2024-01-02T10:00:00Z"},
	}
	if err := repos.Laptops.Save(ctx, want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := repos.Laptops.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("GetAll = %#v, want %#v", got, want)
	}
}

func TestAppendKeepsOrder(t *testing.T) {
	repos := newRepos(t)
	ctx := context.Background()
	for _, id := range []string{"E1", "E2", "E3"} {
		if err := repos.Expenses.Append(ctx, models.Expense{ID: id, Category: models.ExpenseFood}); err != nil {
			t.Fatalf("Append %s: %v", id, err)
		}
	}
	got, err := repos.Expenses.GetAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 || got[0].ID != "E1" || got[2].ID != "E3" {
		t.Errorf("unexpected order: %v", got)
	}
}

func TestOptionalFieldsOmitted(t *testing.T) {
	repos := newRepos(t)
	ctx := context.Background()
	if err := repos.Sales.Append(ctx, models.Sale{ID: "S1", SalePrice: 5000}); err != nil {
		t.Fatal(err)
	}
	var raw []map[string]any
	err := repos.View(ctx, func(tx store.Tx) error {
		var err error
		raw, err = store.Load[map[string]any](tx, store.Sales)
		return err
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := raw[0]["commissionEarner"]; ok {
		t.Error("commissionEarner should be omitted when empty")
	}
	if _, ok := raw[0]["laptopId"]; !ok {
		t.Error("laptopId should always be written")
	}
}

func TestUpdateSpansRepositories(t *testing.T) {
	repos := newRepos(t)
	ctx := context.Background()
	err := repos.Update(ctx, func(tx store.Tx) error {
		if err := repos.Sales.Put(tx, []models.Sale{{ID: "S1"}}); err != nil {
			return err
		}
		return repos.Commissions.Put(tx, []models.Commission{{ID: "K1", SaleID: "S1"}})
	})
	if err != nil {
		t.Fatal(err)
	}
	comms, _ := repos.Commissions.GetAll(ctx)
	if len(comms) != 1 || comms[0].SaleID != "S1" {
		t.Errorf("unexpected commissions: %v", comms)
	}
}
