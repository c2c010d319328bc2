package services

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"laptop-ledger/internal/apperrors"
	"laptop-ledger/internal/models"
	"laptop-ledger/internal/store"
)

// LaptopInput is the body of POST /api/laptops.
type LaptopInput struct {
	CorporateBrand  string  `json:"corporateBrand"`
	ProductBrand    string  `json:"productBrand"`
	PerformanceTier string  `json:"performanceTier"`
	Generation      string  `json:"generation"`
	SKU             string  `json:"sku"`
	PurchasePrice   float64 `json:"purchasePrice"`
	ConditionNotes  string  `json:"conditionNotes"`
	Quantity        int     `json:"quantity"`
	PurchaseDate    string  `json:"purchaseDate"`
}

func (in LaptopInput) validate() error {
	if err := required("corporateBrand", strings.TrimSpace(in.CorporateBrand)); err != nil {
		return err
	}
	if err := oneOf("performanceTier", in.PerformanceTier, models.TierI3, models.TierI5, models.TierI7); err != nil {
		return err
	}
	if err := nonNegative("purchasePrice", in.PurchasePrice); err != nil {
		return err
	}
	if in.Quantity < 0 {
		return invalid("quantity must not be negative")
	}
	return nil
}

// LaptopUpdate is a manual stock correction. Nil fields are left alone.
// Status and quantity are not reconciled here: an operator may reserve a
// laptop that still has units.
type LaptopUpdate struct {
	Quantity       *int     `json:"quantity"`
	Status         *string  `json:"status"`
	ConditionNotes *string  `json:"conditionNotes"`
	PurchasePrice  *float64 `json:"purchasePrice"`
}

type LaptopService struct {
	*env
}

func (s *LaptopService) List(ctx context.Context) ([]models.Laptop, error) {
	laptops, err := s.repos.Laptops.GetAll(ctx)
	return laptops, storageError("list laptops", err)
}

// Create adds a stock line. It is available unless it arrives with no
// units, in which case it is already sold out.
func (s *LaptopService) Create(ctx context.Context, in LaptopInput) (*models.Laptop, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	status := models.LaptopAvailable
	if in.Quantity == 0 {
		status = models.LaptopSold
	}
	laptop := models.Laptop{
		ID:              s.newID(),
		CorporateBrand:  strings.TrimSpace(in.CorporateBrand),
		ProductBrand:    strings.TrimSpace(in.ProductBrand),
		PerformanceTier: in.PerformanceTier,
		Generation:      in.Generation,
		SKU:             strings.TrimSpace(in.SKU),
		PurchasePrice:   in.PurchasePrice,
		ConditionNotes:  in.ConditionNotes,
		Quantity:        in.Quantity,
		Status:          status,
		PurchaseDate:    in.PurchaseDate,
		CreatedAt:       s.timestamp(),
	}
	if err := s.repos.Laptops.Append(ctx, laptop); err != nil {
		return nil, storageError("create laptop", err)
	}
	return &laptop, nil
}

func (s *LaptopService) Update(ctx context.Context, id string, in LaptopUpdate) (*models.Laptop, error) {
	if in.Quantity != nil && *in.Quantity < 0 {
		return nil, invalid("quantity must not be negative")
	}
	if in.Status != nil {
		if err := oneOf("status", *in.Status, models.LaptopAvailable, models.LaptopReserved, models.LaptopSold); err != nil {
			return nil, err
		}
	}
	if in.PurchasePrice != nil {
		if err := nonNegative("purchasePrice", *in.PurchasePrice); err != nil {
			return nil, err
		}
	}

	var updated models.Laptop
	err := s.repos.Update(ctx, func(tx store.Tx) error {
		laptops, err := s.repos.Laptops.Load(tx)
		if err != nil {
			return err
		}
		i := slices.IndexFunc(laptops, func(l models.Laptop) bool { return l.ID == id })
		if i < 0 {
			return fmt.Errorf("%w: laptop %s", apperrors.ErrNotFound, id)
		}
		l := &laptops[i]
		if in.Quantity != nil {
			l.Quantity = *in.Quantity
		}
		if in.Status != nil {
			l.Status = *in.Status
		}
		if in.ConditionNotes != nil {
			l.ConditionNotes = *in.ConditionNotes
		}
		if in.PurchasePrice != nil {
			l.PurchasePrice = *in.PurchasePrice
		}
		updated = *l
		return s.repos.Laptops.Put(tx, laptops)
	})
	if err != nil {
		return nil, storageError("update laptop", err)
	}
	return &updated, nil
}
