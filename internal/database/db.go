package database

import (
	"invoicing-backend/internal/model"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewConnection initializes a new connection pool using GORM
func NewConnection(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		zap.L().Warn("failed to auto-migrate models", zap.Error(err))
	}

	return db, nil
}

// Migrate auto-migrates every persisted model.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Company{},
		&model.Category{},
		&model.Product{},
		&model.SaleOrder{},
		&model.SaleOrderItem{},
		&model.SequenceCounter{},
		&model.Invoice{},
	)
}
