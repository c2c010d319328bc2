package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"laptop-ledger/internal/apperrors"
	"laptop-ledger/internal/repository"

	"github.com/google/uuid"
)

// timestampLayout matches the ISO strings already stored in createdAt.
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// dateLayout is used for business dates such as payout dates.
const dateLayout = "2006-01-02"

// Services is everything the HTTP layer and the CLI call into.
type Services struct {
	Laptops     *LaptopService
	Clients     *ClientService
	Expenses    *ExpenseService
	Sales       *SaleService
	Commissions *CommissionService
	Users       *UserService
}

// Option tweaks the shared environment, mostly for tests.
type Option func(*env)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(e *env) { e.now = now }
}

// WithIDs replaces the UUID generator.
func WithIDs(newID func() string) Option {
	return func(e *env) { e.newID = newID }
}

func New(repos *repository.Repositories, opts ...Option) *Services {
	e := &env{repos: repos, now: time.Now, newID: uuid.NewString}
	for _, opt := range opts {
		opt(e)
	}
	return &Services{
		Laptops:     &LaptopService{env: e},
		Clients:     &ClientService{env: e},
		Expenses:    &ExpenseService{env: e},
		Sales:       &SaleService{env: e},
		Commissions: &CommissionService{env: e},
		Users:       &UserService{env: e},
	}
}

type env struct {
	repos *repository.Repositories
	now   func() time.Time
	newID func() string
}

func (e *env) timestamp() string {
	return e.now().UTC().Format(timestampLayout)
}

func (e *env) today() string {
	return e.now().Format(dateLayout)
}

// storageError passes classified errors through and marks everything else
// coming out of the store as a storage failure.
func storageError(op string, err error) error {
	if err == nil {
		return nil
	}
	for _, known := range []error{
		apperrors.ErrNotFound,
		apperrors.ErrInvalidInput,
		apperrors.ErrInvalidState,
		apperrors.ErrUnauthorized,
		apperrors.ErrConflict,
		apperrors.ErrStorage,
		context.Canceled,
		context.DeadlineExceeded,
	} {
		if errors.Is(err, known) {
			return err
		}
	}
	return fmt.Errorf("%w: %s: %w", apperrors.ErrStorage, op, err)
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{apperrors.ErrInvalidInput}, args...)...)
}

func oneOf(field, value string, allowed ...string) error {
	if !slices.Contains(allowed, value) {
		return invalid("%s must be one of %v", field, allowed)
	}
	return nil
}

func required(field, value string) error {
	if value == "" {
		return invalid("%s is required", field)
	}
	return nil
}

func nonNegative(field string, value float64) error {
	if value < 0 {
		return invalid("%s must not be negative", field)
	}
	return nil
}
