package services

import (
	"context"

	"laptop-ledger/internal/models"
)

type ExpenseInput struct {
	Date        string  `json:"date"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	TripBatch   string  `json:"tripBatch"`
}

type ExpenseService struct {
	*env
}

func (s *ExpenseService) List(ctx context.Context) ([]models.Expense, error) {
	expenses, err := s.repos.Expenses.GetAll(ctx)
	return expenses, storageError("list expenses", err)
}

func (s *ExpenseService) Create(ctx context.Context, in ExpenseInput) (*models.Expense, error) {
	if err := oneOf("category", in.Category,
		models.ExpenseTransport, models.ExpenseFood, models.ExpenseParts, models.ExpenseMisc); err != nil {
		return nil, err
	}
	if err := nonNegative("amount", in.Amount); err != nil {
		return nil, err
	}
	if err := required("date", in.Date); err != nil {
		return nil, err
	}
	expense := models.Expense{
		ID:          s.newID(),
		Date:        in.Date,
		Category:    in.Category,
		Description: in.Description,
		Amount:      in.Amount,
		TripBatch:   in.TripBatch,
		CreatedAt:   s.timestamp(),
	}
	if err := s.repos.Expenses.Append(ctx, expense); err != nil {
		return nil, storageError("create expense", err)
	}
	return &expense, nil
}
