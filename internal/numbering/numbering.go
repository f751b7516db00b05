package numbering

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/buchfink-dev/buchfink/internal/model"
)

// Known sequence scopes.
const (
	BereichKunde    = "kunde"
	BereichRechnung = "rechnung"
	BereichBeleg    = "beleg"
)

// Service hands out sequential numbers per scope. The counter row is
// read under a row lock inside one transaction, so two concurrent
// callers can never observe the same value.
type Service struct {
	db *gorm.DB
}

// NewService creates a numbering Service.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Next returns the next number for a scope, starting at 1.
func (s *Service) Next(bereich string) (int, error) {
	var next int
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var seq model.Sequenz
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("bereich = ?", bereich).
			First(&seq).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			seq = model.Sequenz{Bereich: bereich, Zaehler: 0}
			if cerr := tx.Create(&seq).Error; cerr != nil {
				return fmt.Errorf("creating sequence %s: %w", bereich, cerr)
			}
		case err != nil:
			return fmt.Errorf("locking sequence %s: %w", bereich, err)
		}

		seq.Zaehler++
		if err := tx.Save(&seq).Error; err != nil {
			return fmt.Errorf("advancing sequence %s: %w", bereich, err)
		}
		next = seq.Zaehler
		return nil
	})
	if err != nil {
		return 0, err
	}
	return next, nil
}

// Formatted returns the next number rendered like "RE-000042".
func (s *Service) Formatted(bereich, prefix string, width int) (string, error) {
	n, err := s.Next(bereich)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%0*d", prefix, width, n), nil
}
