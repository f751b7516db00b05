package accounts

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/buchfink-dev/buchfink/internal/logger"
	"github.com/buchfink-dev/buchfink/internal/model"
)

// Service is the chart-of-accounts registry.
type Service struct {
	db  *gorm.DB
	log zerolog.Logger
}

// NewService creates an account registry backed by db.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db, log: logger.WithComponent("accounts")}
}

// CreateOrUpdate upserts an account by number after validating the
// SKR03 number-range/category consistency.
func (s *Service) CreateOrUpdate(nummer, name string, kategorie model.Kontokategorie, typ model.Kontotyp) (*model.Konto, error) {
	if err := PruefeNummerKategorie(nummer, kategorie); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, model.Validierungsfehler("name", "kontoname darf nicht leer sein")
	}

	var konto model.Konto
	err := s.db.Where("nummer = ?", nummer).First(&konto).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		konto = model.Konto{Nummer: nummer, Name: name, Kategorie: kategorie, Typ: typ, Aktiv: true}
		if err := s.db.Create(&konto).Error; err != nil {
			return nil, fmt.Errorf("creating konto %s: %w", nummer, err)
		}
		s.log.Debug().Str("nummer", nummer).Str("name", name).Msg("konto angelegt")
	case err != nil:
		return nil, fmt.Errorf("looking up konto %s: %w", nummer, err)
	default:
		konto.Name = name
		konto.Kategorie = kategorie
		konto.Typ = typ
		if err := s.db.Save(&konto).Error; err != nil {
			return nil, fmt.Errorf("updating konto %s: %w", nummer, err)
		}
	}
	return &konto, nil
}

// Get returns an account by number.
func (s *Service) Get(nummer string) (*model.Konto, error) {
	var konto model.Konto
	err := s.db.Where("nummer = ?", nummer).First(&konto).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("konto %s: %w", nummer, model.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("looking up konto %s: %w", nummer, err)
	}
	return &konto, nil
}

// Exists reports whether an account number is in the registry.
func (s *Service) Exists(nummer string) bool {
	var n int64
	s.db.Model(&model.Konto{}).Where("nummer = ?", nummer).Count(&n)
	return n > 0
}

// ByKategorie returns all accounts of a category, ordered by number.
func (s *Service) ByKategorie(kategorie model.Kontokategorie) ([]model.Konto, error) {
	var konten []model.Konto
	if err := s.db.Where("kategorie = ?", kategorie).Order("nummer").Find(&konten).Error; err != nil {
		return nil, fmt.Errorf("listing konten by kategorie: %w", err)
	}
	return konten, nil
}

// Deactivate marks an account inactive. Accounts referenced by
// bookings are never deleted, only deactivated.
func (s *Service) Deactivate(nummer string) error {
	konto, err := s.Get(nummer)
	if err != nil {
		return err
	}
	konto.Aktiv = false
	if err := s.db.Save(konto).Error; err != nil {
		return fmt.Errorf("deactivating konto %s: %w", nummer, err)
	}
	return nil
}

// SeedDefaultChart loads the SKR03 default chart. Existing accounts
// are left untouched unless overwrite is set.
func (s *Service) SeedDefaultChart(overwrite bool) (int, error) {
	seeded := 0
	for _, k := range DefaultChart() {
		var existing model.Konto
		err := s.db.Where("nummer = ?", k.Nummer).First(&existing).Error
		if err == nil && !overwrite {
			continue
		}
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return seeded, fmt.Errorf("looking up konto %s: %w", k.Nummer, err)
		}
		if _, err := s.CreateOrUpdate(k.Nummer, k.Name, k.Kategorie, k.Typ); err != nil {
			return seeded, err
		}
		seeded++
	}
	s.log.Info().Int("seeded", seeded).Bool("overwrite", overwrite).Msg("SKR03 kontenrahmen geladen")
	return seeded, nil
}
