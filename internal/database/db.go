package database

import (
	"fmt"
	"log"
	"time"

	"laptop-ledger/internal/store"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Store drivers accepted by STORE_DRIVER.
const (
	DriverFile   = "file"
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

// Connect opens a gorm connection, retrying while the database comes up.
func Connect(driver, dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("DB_DSN is required for the %s store", driver)
	}

	var dialector gorm.Dialector
	switch driver {
	case DriverMySQL:
		dialector = mysql.Open(dsn)
	case DriverSQLite:
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unknown database driver %q", driver)
	}

	var db *gorm.DB
	var err error
	for i := 0; i < 5; i++ {
		db, err = gorm.Open(dialector, &gorm.Config{
			Logger: logger.Default.LogMode(logger.Warn),
		})
		if err == nil {
			break
		}
		log.Printf("Failed to connect to database. Retrying in 2 seconds... (%d/5)", i+1)
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("connect to %s after 5 attempts: %w", driver, err)
	}

	log.Printf("✅ Successfully connected to %s!", driver)
	return db, nil
}

// OpenStore builds the record store selected by driver. The file store
// lives in dataDir; the SQL stores use dsn.
func OpenStore(driver, dataDir, dsn string) (store.Store, error) {
	if driver == "" || driver == DriverFile {
		s, err := store.OpenFileStore(dataDir)
		if err != nil {
			return nil, err
		}
		log.Printf("✅ Using JSON data directory %s", dataDir)
		return s, nil
	}

	db, err := Connect(driver, dsn)
	if err != nil {
		return nil, err
	}
	s, err := store.NewSQLStore(db)
	if err != nil {
		return nil, err
	}
	log.Println("✅ Database Schema Synced!")
	return s, nil
}
