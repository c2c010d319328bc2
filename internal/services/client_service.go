package services

import (
	"context"
	"strings"

	"laptop-ledger/internal/models"
)

type ClientInput struct {
	Name           string `json:"name"`
	Phone          string `json:"phone"`
	Email          string `json:"email"`
	ReferralSource string `json:"referralSource"`
}

type ClientService struct {
	*env
}

func (s *ClientService) List(ctx context.Context) ([]models.Client, error) {
	clients, err := s.repos.Clients.GetAll(ctx)
	return clients, storageError("list clients", err)
}

// Create registers a client with empty purchase and ticket history.
func (s *ClientService) Create(ctx context.Context, in ClientInput) (*models.Client, error) {
	name := strings.TrimSpace(in.Name)
	if err := required("name", name); err != nil {
		return nil, err
	}
	client := models.Client{
		ID:              s.newID(),
		Name:            name,
		Phone:           strings.TrimSpace(in.Phone),
		Email:           strings.TrimSpace(in.Email),
		ReferralSource:  in.ReferralSource,
		PurchaseHistory: []string{},
		SupportTickets:  []string{},
		CreatedAt:       s.timestamp(),
	}
	if err := s.repos.Clients.Append(ctx, client); err != nil {
		return nil, storageError("create client", err)
	}
	return &client, nil
}
