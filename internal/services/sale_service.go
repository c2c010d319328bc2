package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"
	"strings"

	"laptop-ledger/internal/apperrors"
	"laptop-ledger/internal/metrics"
	"laptop-ledger/internal/models"
	"laptop-ledger/internal/store"
)

// SaleInput is the body of POST /api/sales.
type SaleInput struct {
	LaptopID         string  `json:"laptopId"`
	ClientID         string  `json:"clientId"`
	SalePrice        float64 `json:"salePrice"`
	PaymentStatus    string  `json:"paymentStatus"`
	PaymentMethod    string  `json:"paymentMethod"`
	SaleDate         string  `json:"saleDate"`
	CommissionEarner string  `json:"commissionEarner"`
	CommissionAmount float64 `json:"commissionAmount"`
	// CommissionContact defaults to the earner's name.
	CommissionContact string `json:"commissionContact"`
}

func (in SaleInput) validate() error {
	if err := required("laptopId", in.LaptopID); err != nil {
		return err
	}
	if err := required("clientId", in.ClientID); err != nil {
		return err
	}
	if err := nonNegative("salePrice", in.SalePrice); err != nil {
		return err
	}
	if err := oneOf("paymentStatus", in.PaymentStatus,
		models.PaymentPending, models.PaymentPartial, models.PaymentPaid); err != nil {
		return err
	}
	if err := oneOf("paymentMethod", in.PaymentMethod,
		models.MethodCash, models.MethodTransfer, models.MethodCard); err != nil {
		return err
	}
	return nonNegative("commissionAmount", in.CommissionAmount)
}

// earnsCommission is true when both the earner and a non-zero amount are given.
func (in SaleInput) earnsCommission() bool {
	return strings.TrimSpace(in.CommissionEarner) != "" && in.CommissionAmount != 0
}

type SaleService struct {
	*env
}

func (s *SaleService) List(ctx context.Context) ([]models.Sale, error) {
	sales, err := s.repos.Sales.GetAll(ctx)
	return sales, storageError("list sales", err)
}

// RecordSale sells one unit of a laptop. In a single commit it appends the
// sale, takes the unit out of stock (marking the laptop sold when the last
// unit goes) and, when an earner is named, opens a pending commission.
// Either all of it is persisted or none of it is.
func (s *SaleService) RecordSale(ctx context.Context, in SaleInput) (*models.Sale, error) {
	if err := in.validate(); err != nil {
		metrics.SalesRejected.WithLabelValues("invalid_input").Inc()
		return nil, err
	}

	var sale models.Sale
	var commission *models.Commission
	err := s.repos.Update(ctx, func(tx store.Tx) error {
		laptops, err := s.repos.Laptops.Load(tx)
		if err != nil {
			return err
		}
		i := slices.IndexFunc(laptops, func(l models.Laptop) bool { return l.ID == in.LaptopID })
		if i < 0 {
			return fmt.Errorf("%w: laptop %s", apperrors.ErrNotFound, in.LaptopID)
		}
		laptop := &laptops[i]
		if laptop.Status != models.LaptopAvailable || laptop.Quantity <= 0 {
			return fmt.Errorf("%w: laptop not available for sale", apperrors.ErrInvalidState)
		}

		sales, err := s.repos.Sales.Load(tx)
		if err != nil {
			return err
		}
		sale = models.Sale{
			ID:               s.newID(),
			LaptopID:         in.LaptopID,
			ClientID:         in.ClientID,
			SalePrice:        in.SalePrice,
			PaymentStatus:    in.PaymentStatus,
			PaymentMethod:    in.PaymentMethod,
			SaleDate:         in.SaleDate,
			CommissionEarner: strings.TrimSpace(in.CommissionEarner),
			CommissionAmount: in.CommissionAmount,
			CreatedAt:        s.timestamp(),
		}

		// Status is only forced when the last unit goes; otherwise it stays.
		laptop.Quantity--
		if laptop.Quantity == 0 {
			laptop.Status = models.LaptopSold
		}

		if in.earnsCommission() {
			commissions, err := s.repos.Commissions.Load(tx)
			if err != nil {
				return err
			}
			contact := strings.TrimSpace(in.CommissionContact)
			if contact == "" {
				contact = sale.CommissionEarner
			}
			commission = &models.Commission{
				ID:            s.newID(),
				SaleID:        sale.ID,
				EarnerName:    sale.CommissionEarner,
				EarnerContact: contact,
				Amount:        in.CommissionAmount,
				PaymentStatus: models.CommissionPending,
				CreatedAt:     s.timestamp(),
			}
			if err := s.repos.Commissions.Put(tx, append(commissions, *commission)); err != nil {
				return err
			}
		}

		if err := s.repos.Sales.Put(tx, append(sales, sale)); err != nil {
			return err
		}
		return s.repos.Laptops.Put(tx, laptops)
	})
	if err != nil {
		metrics.SalesRejected.WithLabelValues(rejectReason(err)).Inc()
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrInvalidState) {
			log.Printf("❌ record sale for laptop %s: %v", in.LaptopID, err)
		}
		return nil, storageError("record sale", err)
	}

	metrics.SalesRecorded.Inc()
	metrics.SaleRevenue.Add(sale.SalePrice)
	if commission != nil {
		metrics.CommissionsCreated.Inc()
	}
	return &sale, nil
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return "not_found"
	case errors.Is(err, apperrors.ErrInvalidState):
		return "unavailable"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "storage"
	}
}
