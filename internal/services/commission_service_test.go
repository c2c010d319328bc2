package services

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"laptop-ledger/internal/apperrors"
	"laptop-ledger/internal/models"
)

func seedCommission(t *testing.T, svc *Services) models.Commission {
	t.Helper()
	c := models.Commission{
		ID: "K1", SaleID: "S1", EarnerName: "Jane", EarnerContact: "+254700000000",
		Amount: 500, PaymentStatus: models.CommissionPending, CreatedAt: "2024-01-01T10:00:00.000Z",
	}
	if err := svc.Commissions.repos.Commissions.Append(context.Background(), c); err != nil {
		t.Fatal(err)
	}
	return c
}

func TestMarkPaidPreservesOtherFields(t *testing.T) {
	svc, _ := setup(t)
	orig := seedCommission(t, svc)

	got, err := svc.Commissions.MarkPaid(context.Background(), "K1", "2024-02-01")
	if err != nil {
		t.Fatalf("MarkPaid: %v", err)
	}
	want := orig
	want.PaymentStatus = models.CommissionPaid
	want.PayoutDate = "2024-02-01"
	if *got != want {
		t.Errorf("MarkPaid = %+v, want %+v", *got, want)
	}

	stored, _ := svc.Commissions.List(context.Background())
	if len(stored) != 1 || stored[0] != want {
		t.Errorf("stored = %+v", stored)
	}
}

func TestMarkPaidDefaultsPayoutDate(t *testing.T) {
	svc, _ := setup(t)
	seedCommission(t, svc)
	got, err := svc.Commissions.MarkPaid(context.Background(), "K1", "")
	if err != nil {
		t.Fatal(err)
	}
	if got.PayoutDate != "2024-01-01" {
		t.Errorf("payoutDate = %q, want 2024-01-01", got.PayoutDate)
	}
}

func TestUpdateCommissionNotFound(t *testing.T) {
	svc, _ := setup(t)
	seedCommission(t, svc)
	before, _ := svc.Commissions.List(context.Background())

	_, err := svc.Commissions.MarkPaid(context.Background(), "nope", "2024-02-01")
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	after, _ := svc.Commissions.List(context.Background())
	if !reflect.DeepEqual(before, after) {
		t.Errorf("collection changed: %+v", after)
	}
}

func TestUpdateCommissionPartial(t *testing.T) {
	svc, _ := setup(t)
	seedCommission(t, svc)
	date := "2024-03-03"
	got, err := svc.Commissions.Update(context.Background(), "K1", CommissionUpdate{PayoutDate: &date})
	if err != nil {
		t.Fatal(err)
	}
	if got.PaymentStatus != models.CommissionPending || got.PayoutDate != date {
		t.Errorf("unexpected commission %+v", got)
	}

	bad := "partial"
	if _, err := svc.Commissions.Update(context.Background(), "K1", CommissionUpdate{PaymentStatus: &bad}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestCreateCommission(t *testing.T) {
	svc, repos := setup(t)
	ctx := context.Background()
	if err := repos.Sales.Append(ctx, models.Sale{ID: "S1"}); err != nil {
		t.Fatal(err)
	}

	c, err := svc.Commissions.Create(ctx, CommissionInput{SaleID: "S1", EarnerName: "Otieno", EarnerContact: "otieno@example.com", Amount: 300})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if c.PaymentStatus != models.CommissionPending || c.ID == "" || c.CreatedAt == "" {
		t.Errorf("unexpected commission %+v", c)
	}

	if _, err := svc.Commissions.Create(ctx, CommissionInput{SaleID: "S404", EarnerName: "Otieno", Amount: 1}); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown sale, got %v", err)
	}
	if _, err := svc.Commissions.Create(ctx, CommissionInput{SaleID: "S1", Amount: 1}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput without earner, got %v", err)
	}
}
