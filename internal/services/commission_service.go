package services

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"laptop-ledger/internal/apperrors"
	"laptop-ledger/internal/metrics"
	"laptop-ledger/internal/models"
	"laptop-ledger/internal/store"
)

// CommissionInput is the body of POST /api/commissions.
type CommissionInput struct {
	SaleID        string  `json:"saleId"`
	EarnerName    string  `json:"earnerName"`
	EarnerContact string  `json:"earnerContact"`
	Amount        float64 `json:"amount"`
}

// CommissionUpdate is the body of PATCH /api/commissions/:id.
// Only these fields can change after creation.
type CommissionUpdate struct {
	PaymentStatus *string `json:"paymentStatus"`
	PayoutDate    *string `json:"payoutDate"`
}

type CommissionService struct {
	*env
}

func (s *CommissionService) List(ctx context.Context) ([]models.Commission, error) {
	commissions, err := s.repos.Commissions.GetAll(ctx)
	return commissions, storageError("list commissions", err)
}

// Create opens a pending commission for an existing sale.
func (s *CommissionService) Create(ctx context.Context, in CommissionInput) (*models.Commission, error) {
	if err := required("saleId", in.SaleID); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.EarnerName)
	if err := required("earnerName", name); err != nil {
		return nil, err
	}
	if err := nonNegative("amount", in.Amount); err != nil {
		return nil, err
	}

	commission := models.Commission{
		ID:            s.newID(),
		SaleID:        in.SaleID,
		EarnerName:    name,
		EarnerContact: strings.TrimSpace(in.EarnerContact),
		Amount:        in.Amount,
		PaymentStatus: models.CommissionPending,
		CreatedAt:     s.timestamp(),
	}
	err := s.repos.Update(ctx, func(tx store.Tx) error {
		sales, err := s.repos.Sales.Load(tx)
		if err != nil {
			return err
		}
		if !slices.ContainsFunc(sales, func(sale models.Sale) bool { return sale.ID == in.SaleID }) {
			return fmt.Errorf("%w: sale %s", apperrors.ErrNotFound, in.SaleID)
		}
		commissions, err := s.repos.Commissions.Load(tx)
		if err != nil {
			return err
		}
		return s.repos.Commissions.Put(tx, append(commissions, commission))
	})
	if err != nil {
		return nil, storageError("create commission", err)
	}
	metrics.CommissionsCreated.Inc()
	return &commission, nil
}

// Update merges the given fields into an existing commission.
func (s *CommissionService) Update(ctx context.Context, id string, in CommissionUpdate) (*models.Commission, error) {
	if in.PaymentStatus != nil {
		if err := oneOf("paymentStatus", *in.PaymentStatus, models.CommissionPending, models.CommissionPaid); err != nil {
			return nil, err
		}
	}

	var updated models.Commission
	err := s.repos.Update(ctx, func(tx store.Tx) error {
		commissions, err := s.repos.Commissions.Load(tx)
		if err != nil {
			return err
		}
		i := slices.IndexFunc(commissions, func(c models.Commission) bool { return c.ID == id })
		if i < 0 {
			return fmt.Errorf("%w: commission %s", apperrors.ErrNotFound, id)
		}
		c := &commissions[i]
		if in.PaymentStatus != nil {
			c.PaymentStatus = *in.PaymentStatus
		}
		if in.PayoutDate != nil {
			c.PayoutDate = *in.PayoutDate
		}
		updated = *c
		return s.repos.Commissions.Put(tx, commissions)
	})
	if err != nil {
		return nil, storageError("update commission", err)
	}
	return &updated, nil
}

// MarkPaid settles a commission. An empty payoutDate means today.
func (s *CommissionService) MarkPaid(ctx context.Context, id, payoutDate string) (*models.Commission, error) {
	if payoutDate == "" {
		payoutDate = s.today()
	}
	status := models.CommissionPaid
	return s.Update(ctx, id, CommissionUpdate{PaymentStatus: &status, PayoutDate: &payoutDate})
}
