package repository

import (
	"context"

	"laptop-ledger/internal/models"
	"laptop-ledger/internal/store"
)

// Repository gives typed access to one collection. It does no filtering;
// callers scan the returned slice.
type Repository[T any] struct {
	store store.Store
	name  store.Collection
}

func New[T any](s store.Store, name store.Collection) *Repository[T] {
	return &Repository[T]{store: s, name: name}
}

// Name of the underlying collection.
func (r *Repository[T]) Name() store.Collection { return r.name }

// GetAll returns every record in stored order.
func (r *Repository[T]) GetAll(ctx context.Context) ([]T, error) {
	return store.ReadAll[T](ctx, r.store, r.name)
}

// Save replaces the whole collection.
func (r *Repository[T]) Save(ctx context.Context, records []T) error {
	return store.WriteAll(ctx, r.store, r.name, records)
}

// Append adds one record at the end of the collection.
func (r *Repository[T]) Append(ctx context.Context, record T) error {
	return r.store.Update(ctx, func(tx store.Tx) error {
		records, err := r.Load(tx)
		if err != nil {
			return err
		}
		return r.Put(tx, append(records, record))
	})
}

// Load reads the collection inside a caller's transaction.
func (r *Repository[T]) Load(tx store.Tx) ([]T, error) {
	return store.Load[T](tx, r.name)
}

// Put stages the collection inside a caller's transaction.
func (r *Repository[T]) Put(tx store.Tx, records []T) error {
	return store.Save(tx, r.name, records)
}

// Repositories bundles the typed repositories over one store.
type Repositories struct {
	Store       store.Store
	Users       *Repository[models.User]
	Laptops     *Repository[models.Laptop]
	Clients     *Repository[models.Client]
	Expenses    *Repository[models.Expense]
	Sales       *Repository[models.Sale]
	Commissions *Repository[models.Commission]
}

func NewRepositories(s store.Store) *Repositories {
	return &Repositories{
		Store:       s,
		Users:       New[models.User](s, store.Users),
		Laptops:     New[models.Laptop](s, store.Laptops),
		Clients:     New[models.Client](s, store.Clients),
		Expenses:    New[models.Expense](s, store.Expenses),
		Sales:       New[models.Sale](s, store.Sales),
		Commissions: New[models.Commission](s, store.Commissions),
	}
}

// Update runs fn as one unit of work across any of the repositories.
func (r *Repositories) Update(ctx context.Context, fn func(tx store.Tx) error) error {
	return r.Store.Update(ctx, fn)
}

// View runs fn against a consistent read-only snapshot.
func (r *Repositories) View(ctx context.Context, fn func(tx store.Tx) error) error {
	return r.Store.View(ctx, fn)
}
