// Package store persists collections of JSON records.
//
// A collection is always read and written whole. Mutations go through
// Update, which runs a read-modify-write cycle while holding the store's
// write lock and commits every collection it touched in one step.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Collection names one persisted entity kind.
type Collection string

const (
	Users       Collection = "users"
	Laptops     Collection = "laptops"
	Clients     Collection = "clients"
	Expenses    Collection = "expenses"
	Sales       Collection = "sales"
	Commissions Collection = "commissions"
)

// All lists every collection the application knows about.
var All = []Collection{Users, Laptops, Clients, Expenses, Sales, Commissions}

var (
	// ErrCorrupt means a collection exists but cannot be decoded.
	ErrCorrupt = errors.New("store: collection is corrupt")
	// ErrReadOnly is returned by Put inside View.
	ErrReadOnly = errors.New("store: read-only transaction")
)

// Tx gives access to raw collection documents inside View or Update.
type Tx interface {
	// Get returns the encoded collection, or nil when it has never been written.
	Get(name Collection) ([]byte, error)
	// Put stages a new encoded collection. Nothing is visible to other
	// callers until the surrounding Update returns nil.
	Put(name Collection, data []byte) error
}

// Store is implemented by the file and SQL backends.
type Store interface {
	View(ctx context.Context, fn func(tx Tx) error) error
	Update(ctx context.Context, fn func(tx Tx) error) error
	Close() error
}

// Load decodes a collection. A collection that was never written is empty;
// one that fails to decode is an error, never silently empty.
func Load[T any](tx Tx, name Collection) ([]T, error) {
	data, err := tx.Get(name)
	if err != nil {
		return nil, err
	}
	records := []T{}
	if len(bytes.TrimSpace(data)) == 0 {
		return records, nil
	}
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, name, err)
	}
	if records == nil {
		records = []T{}
	}
	return records, nil
}

// Save encodes a collection and stages it on tx.
func Save[T any](tx Tx, name Collection, records []T) error {
	if records == nil {
		records = []T{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", name, err)
	}
	return tx.Put(name, data)
}

// ReadAll loads one collection outside of any caller transaction.
func ReadAll[T any](ctx context.Context, s Store, name Collection) ([]T, error) {
	var records []T
	err := s.View(ctx, func(tx Tx) error {
		var err error
		records, err = Load[T](tx, name)
		return err
	})
	return records, err
}

// WriteAll replaces one collection.
func WriteAll[T any](ctx context.Context, s Store, name Collection, records []T) error {
	return s.Update(ctx, func(tx Tx) error {
		return Save(tx, name, records)
	})
}

// staging keeps the documents an Update has written so far, in write order.
type staging struct {
	docs  map[Collection][]byte
	order []Collection
}

func (s *staging) get(name Collection) ([]byte, bool) {
	data, ok := s.docs[name]
	if !ok {
		return nil, false
	}
	return bytes.Clone(data), true
}

func (s *staging) put(name Collection, data []byte) {
	if s.docs == nil {
		s.docs = make(map[Collection][]byte)
	}
	if _, ok := s.docs[name]; !ok {
		s.order = append(s.order, name)
	}
	s.docs[name] = bytes.Clone(data)
}
