package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/buchfink-dev/buchfink/internal/model"
)

// AutoMigrate creates or updates all tables the core needs.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Konto{},
		&model.Geschaeftspartner{},
		&model.Beleg{},
		&model.Buchungssatz{},
		&model.EURMapping{},
		&model.EURBerechnung{},
		&model.Sequenz{},
	); err != nil {
		return fmt.Errorf("migrating schema: %w", err)
	}
	return nil
}
