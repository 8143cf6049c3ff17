package db

import (
	"context"
	"fmt"

	"briefly/briefly/config"
	"briefly/briefly/sources/db/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type Database struct {
	DB *gorm.DB
}

// NewDatabase opens the backend named by cfg.DB and migrates the schema.
// The backend choice is made exactly once, here; nothing downstream ever
// branches on the environment.
func NewDatabase(ctx context.Context, cfg config.Config) (*Database, error) {
	var dialector gorm.Dialector
	switch cfg.DB.Backend {
	case config.BackendSQLite:
		dialector = sqlite.Open(cfg.DB.Path)
	case config.BackendPostgres:
		connStr := fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			cfg.DB.Host,
			cfg.DB.Port,
			cfg.DB.User,
			cfg.DB.Password,
			cfg.DB.Name,
		)
		dialector = postgres.Open(connStr)
	default:
		return nil, fmt.Errorf("unknown db backend: %q", cfg.DB.Backend)
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := gdb.WithContext(ctx).AutoMigrate(
		&models.User{},
		&models.Summary{},
	); err != nil {
		return nil, fmt.Errorf("failed to auto-migrate: %w", err)
	}

	return &Database{DB: gdb}, nil
}

func (db *Database) Close() {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return
	}
	sqlDB.Close()
}
