package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// collectionRow holds a whole collection as one JSON document.
type collectionRow struct {
	Name      string `gorm:"primaryKey;size:64"`
	Data      string `gorm:"type:longtext"`
	UpdatedAt time.Time
}

func (collectionRow) TableName() string { return "collections" }

// SQLStore keeps collections in a gorm database (MySQL in production,
// SQLite for single-machine installs and tests).
type SQLStore struct {
	db *gorm.DB
	mu sync.RWMutex
}

var _ Store = (*SQLStore)(nil)

// NewSQLStore creates the collections table if needed.
func NewSQLStore(db *gorm.DB) (*SQLStore, error) {
	if err := db.AutoMigrate(&collectionRow{}); err != nil {
		return nil, fmt.Errorf("store: migrate collections table: %w", err)
	}
	return &SQLStore{db: db}, nil
}

// View runs fn inside one database transaction so every Get sees the same
// snapshot, also when other processes write to a shared MySQL database.
func (s *SQLStore) View(ctx context.Context, fn func(tx Tx) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	var opts []*sql.TxOptions
	if s.db.Dialector.Name() == "mysql" {
		// The sqlite driver has no read-only transactions.
		opts = append(opts, &sql.TxOptions{ReadOnly: true})
	}
	return s.db.WithContext(ctx).Transaction(func(db *gorm.DB) error {
		return fn(&sqlTx{db: db})
	}, opts...)
}

// Update runs fn inside one database transaction. The in-process lock keeps
// writers of this process in line; on MySQL the rows are also read with
// SELECT ... FOR UPDATE so several processes sharing a database agree too.
func (s *SQLStore) Update(ctx context.Context, fn func(tx Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(db *gorm.DB) error {
		tx := &sqlTx{
			db:       db,
			writable: true,
			lock:     db.Dialector.Name() == "mysql",
		}
		if err := fn(tx); err != nil {
			return err
		}
		for _, name := range tx.staged.order {
			row := collectionRow{
				Name:      string(name),
				Data:      string(tx.staged.docs[name]),
				UpdatedAt: time.Now().UTC(),
			}
			err := db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&row).Error
			if err != nil {
				return fmt.Errorf("store: write %s: %w", name, err)
			}
		}
		return nil
	})
}

func (s *SQLStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

type sqlTx struct {
	db       *gorm.DB
	staged   staging
	writable bool
	lock     bool
}

func (tx *sqlTx) Get(name Collection) ([]byte, error) {
	if data, ok := tx.staged.get(name); ok {
		return data, nil
	}
	q := tx.db
	if tx.lock {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var row collectionRow
	err := q.Where("name = ?", string(name)).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: read %s: %w", name, err)
	}
	return []byte(row.Data), nil
}

func (tx *sqlTx) Put(name Collection, data []byte) error {
	if !tx.writable {
		return ErrReadOnly
	}
	tx.staged.put(name, data)
	return nil
}
