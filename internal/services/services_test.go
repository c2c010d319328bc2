package services

import (
	"context"
	"errors"
	"testing"

	"laptop-ledger/internal/apperrors"
	"laptop-ledger/internal/models"
)

func TestCreateLaptop(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	l, err := svc.Laptops.Create(ctx, LaptopInput{
		CorporateBrand: "Dell", ProductBrand: "Latitude", PerformanceTier: models.TierI5,
		Generation: "8th", SKU: "DL-5490", PurchasePrice: 3200, Quantity: 4, PurchaseDate: "2024-01-01",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if l.Status != models.LaptopAvailable || l.Quantity != 4 || l.ID == "" {
		t.Errorf("unexpected laptop %+v", l)
	}

	bad := []LaptopInput{
		{CorporateBrand: "Dell", PerformanceTier: "i9"},
		{CorporateBrand: "", PerformanceTier: models.TierI3},
		{CorporateBrand: "HP", PerformanceTier: models.TierI3, Quantity: -1},
		{CorporateBrand: "HP", PerformanceTier: models.TierI3, PurchasePrice: -10},
	}
	for _, in := range bad {
		if _, err := svc.Laptops.Create(ctx, in); !errors.Is(err, apperrors.ErrInvalidInput) {
			t.Errorf("Create(%+v): expected ErrInvalidInput, got %v", in, err)
		}
	}

	all, _ := svc.Laptops.List(ctx)
	if len(all) != 1 {
		t.Errorf("expected 1 laptop stored, got %d", len(all))
	}
}

func TestUpdateLaptopManualReserve(t *testing.T) {
	svc, repos := setup(t)
	seedLaptop(t, repos, models.Laptop{ID: "L1", Quantity: 2, Status: models.LaptopAvailable, SKU: "X1"})
	ctx := context.Background()

	reserved := models.LaptopReserved
	l, err := svc.Laptops.Update(ctx, "L1", LaptopUpdate{Status: &reserved})
	if err != nil {
		t.Fatal(err)
	}
	if l.Status != models.LaptopReserved || l.Quantity != 2 || l.SKU != "X1" {
		t.Errorf("unexpected laptop %+v", l)
	}

	// A reserved laptop cannot be sold until it is made available again.
	if _, err := svc.Sales.RecordSale(ctx, saleFor("L1")); !errors.Is(err, apperrors.ErrInvalidState) {
		t.Errorf("expected ErrInvalidState, got %v", err)
	}

	if _, err := svc.Laptops.Update(ctx, "L404", LaptopUpdate{Status: &reserved}); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	neg := -3
	if _, err := svc.Laptops.Update(ctx, "L1", LaptopUpdate{Quantity: &neg}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestCreateClient(t *testing.T) {
	svc, _ := setup(t)
	c, err := svc.Clients.Create(context.Background(), ClientInput{Name: " Amina ", Phone: "0700 000 000"})
	if err != nil {
		t.Fatal(err)
	}
	if c.Name != "Amina" || c.PurchaseHistory == nil || c.SupportTickets == nil {
		t.Errorf("unexpected client %+v", c)
	}
	if _, err := svc.Clients.Create(context.Background(), ClientInput{Phone: "1"}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestCreateExpense(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()
	e, err := svc.Expenses.Create(ctx, ExpenseInput{
		Date: "2024-01-05", Category: models.ExpenseParts, Description: "keyboard", Amount: 45, TripBatch: "B7",
	})
	if err != nil {
		t.Fatal(err)
	}
	if e.Category != "Replacement parts" || e.TripBatch != "B7" {
		t.Errorf("unexpected expense %+v", e)
	}

	tests := []ExpenseInput{
		{Date: "2024-01-05", Category: "Rent", Amount: 1},
		{Date: "2024-01-05", Category: models.ExpenseFood, Amount: -1},
		{Category: models.ExpenseFood, Amount: 1},
	}
	for _, in := range tests {
		if _, err := svc.Expenses.Create(ctx, in); !errors.Is(err, apperrors.ErrInvalidInput) {
			t.Errorf("Create(%+v): expected ErrInvalidInput, got %v", in, err)
		}
	}
}

func TestRegisterAndAuthenticate(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	u, err := svc.Users.Register(ctx, "admin", "Shop Admin", "s3cret-pass")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if u.PasswordHash == "" || u.PasswordHash == "s3cret-pass" {
		t.Error("password must be stored hashed")
	}

	got, err := svc.Users.Authenticate(ctx, "admin", "s3cret-pass")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if got.ID != u.ID {
		t.Errorf("authenticated %q, want %q", got.ID, u.ID)
	}

	for _, tc := range []struct{ user, pass string }{
		{"admin", "wrong"},
		{"nobody", "s3cret-pass"},
	} {
		if _, err := svc.Users.Authenticate(ctx, tc.user, tc.pass); !errors.Is(err, apperrors.ErrUnauthorized) {
			t.Errorf("Authenticate(%q): expected ErrUnauthorized, got %v", tc.user, err)
		}
	}

	if _, err := svc.Users.Register(ctx, "admin", "Again", "another-pass"); !errors.Is(err, apperrors.ErrConflict) {
		t.Errorf("expected ErrConflict, got %v", err)
	}
	if _, err := svc.Users.Register(ctx, "clerk", "Clerk", "123"); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for short password, got %v", err)
	}
}

func TestAuthenticateUpgradesLegacyPassword(t *testing.T) {
	svc, repos := setup(t)
	ctx := context.Background()
	legacy := models.User{ID: "1", Username: "admin", Name: "Admin", Password: "admin123", CreatedAt: "2024-01-01T00:00:00.000Z"}
	if err := repos.Users.Save(ctx, []models.User{legacy}); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Users.Authenticate(ctx, "admin", "admin123"); err != nil {
		t.Fatalf("legacy login: %v", err)
	}

	users, _ := repos.Users.GetAll(ctx)
	if users[0].Password != "" {
		t.Error("plaintext password was not removed")
	}
	if users[0].PasswordHash == "" {
		t.Fatal("password hash was not written")
	}
	if _, err := svc.Users.Authenticate(ctx, "admin", "admin123"); err != nil {
		t.Errorf("login after upgrade: %v", err)
	}
	if _, err := svc.Users.Authenticate(ctx, "admin", "admin124"); !errors.Is(err, apperrors.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
}

func TestGetUser(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()
	u, err := svc.Users.Register(ctx, "clerk", "Clerk", "clerk-pass")
	if err != nil {
		t.Fatal(err)
	}
	got, err := svc.Users.Get(ctx, u.ID)
	if err != nil || got.Username != "clerk" {
		t.Errorf("Get = %+v, %v", got, err)
	}
	if _, err := svc.Users.Get(ctx, "missing"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateLaptopWithoutUnitsIsSoldOut(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	l, err := svc.Laptops.Create(ctx, LaptopInput{
		CorporateBrand: "HP", ProductBrand: "EliteBook", PerformanceTier: models.TierI7, Quantity: 0,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if l.Status != models.LaptopSold {
		t.Errorf("status = %q, want %q", l.Status, models.LaptopSold)
	}
	if _, err := svc.Sales.RecordSale(ctx, saleFor(l.ID)); !errors.Is(err, apperrors.ErrInvalidState) {
		t.Errorf("sale of a laptop with no units: expected ErrInvalidState, got %v", err)
	}
}
