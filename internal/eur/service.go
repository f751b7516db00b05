package eur

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/buchfink-dev/buchfink/internal/logger"
	"github.com/buchfink-dev/buchfink/internal/model"
)

// ErrBerechnungFinal reports an attempt to overwrite a finalized
// year snapshot without force.
var ErrBerechnungFinal = errors.New("eur-berechnung ist final")

// Zeile is one computed report line.
type Zeile struct {
	Zeile        string          `json:"zeile"`
	Bezeichnung  string          `json:"bezeichnung"`
	Betrag       decimal.Decimal `json:"betrag"`
	Kontonummern []string        `json:"kontonummern"`
	MappingID    uint            `json:"mapping_id"`
}

// Berechnung is the in-memory result of Compute, the sole export
// contract toward the formatting layer.
type Berechnung struct {
	Jahr      int
	Einnahmen []Zeile
	Ausgaben  []Zeile
	// Sonder carries the informational lines (Entnahmen/Einlagen); they
	// never enter SummeEinnahmen, SummeAusgaben or Ergebnis.
	Sonder         []Zeile
	SummeEinnahmen decimal.Decimal
	SummeAusgaben  decimal.Decimal
	Ergebnis       decimal.Decimal
	IsGewinn       bool
	IsVerlust      bool
}

// Posten is one transaction-level drill-down row for a report line.
type Posten struct {
	Datum      time.Time
	Betrag     decimal.Decimal
	Text       string
	Sollkonto  string
	Habenkonto string
	Partner    string
	BelegRef   string
}

// Service aggregates one fiscal year's bookings into the official
// report lines. The window is fixed to Jan 1 .. Dec 31 of Jahr.
type Service struct {
	db   *gorm.DB
	jahr int
	von  time.Time
	bis  time.Time
	log  zerolog.Logger
}

// NewService creates an aggregation service for a fiscal year.
func NewService(db *gorm.DB, jahr int) *Service {
	return &Service{
		db:   db,
		jahr: jahr,
		von:  time.Date(jahr, time.January, 1, 0, 0, 0, 0, time.UTC),
		bis:  time.Date(jahr, time.December, 31, 23, 59, 59, 0, time.UTC),
		log:  logger.WithComponent("eur"),
	}
}

// Compute rolls the year's bookings up into report lines. Income
// mappings sum bookings by their credit (Haben) account number,
// expense mappings by their debit (Soll) number — the side is decided
// by the mapping category alone, never inferred from the account.
// Sonder mappings are reported as their own section and stay out of
// the totals. Account matching is string equality on the number.
func (s *Service) Compute() (*Berechnung, error) {
	var mappings []model.EURMapping
	if err := s.db.Where("aktiv = ?", true).Order("sortierung").Find(&mappings).Error; err != nil {
		return nil, fmt.Errorf("loading eur mappings: %w", err)
	}

	entries, err := s.jahresBuchungen()
	if err != nil {
		return nil, err
	}

	res := &Berechnung{
		Jahr:           s.jahr,
		SummeEinnahmen: decimal.Zero,
		SummeAusgaben:  decimal.Zero,
	}

	for _, m := range mappings {
		betrag := decimal.Zero
		for _, e := range entries {
			if mappingMatches(m, e) {
				betrag = betrag.Add(e.Betrag)
			}
		}

		zeile := Zeile{
			Zeile:        m.Zeile,
			Bezeichnung:  m.Bezeichnung,
			Betrag:       betrag,
			Kontonummern: m.Kontonummern,
			MappingID:    m.ID,
		}
		switch m.Kategorie {
		case model.EURKategorieEinnahmen:
			res.Einnahmen = append(res.Einnahmen, zeile)
			res.SummeEinnahmen = res.SummeEinnahmen.Add(betrag)
		case model.EURKategorieAusgaben:
			res.Ausgaben = append(res.Ausgaben, zeile)
			res.SummeAusgaben = res.SummeAusgaben.Add(betrag)
		case model.EURKategorieSonder:
			res.Sonder = append(res.Sonder, zeile)
		}
	}

	res.Ergebnis = res.SummeEinnahmen.Sub(res.SummeAusgaben)
	res.IsGewinn = res.Ergebnis.IsPositive()
	res.IsVerlust = res.Ergebnis.IsNegative()

	s.log.Debug().Int("jahr", s.jahr).
		Str("einnahmen", res.SummeEinnahmen.StringFixed(2)).
		Str("ausgaben", res.SummeAusgaben.StringFixed(2)).
		Msg("eur berechnet")
	return res, nil
}

// mappingMatches selects the booking side by mapping category.
func mappingMatches(m model.EURMapping, e model.Buchungssatz) bool {
	switch m.Kategorie {
	case model.EURKategorieEinnahmen:
		return m.Kontonummern.Contains(e.Habenkonto.Nummer)
	case model.EURKategorieAusgaben, model.EURKategorieSonder:
		return m.Kontonummern.Contains(e.Sollkonto.Nummer)
	default:
		return false
	}
}

func (s *Service) jahresBuchungen() ([]model.Buchungssatz, error) {
	var entries []model.Buchungssatz
	err := s.db.Preload("Sollkonto").Preload("Habenkonto").
		Preload("Geschaeftspartner").Preload("Beleg").
		Where("datum >= ? AND datum <= ?", s.von, s.bis).
		Order("datum").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("loading bookings for %d: %w", s.jahr, err)
	}
	return entries, nil
}

// Persist upserts the year snapshot. A snapshot marked final is never
// silently overwritten; callers must pass force to replace it.
func (s *Service) Persist(b *Berechnung, final, force bool) (*model.EURBerechnung, error) {
	einnahmen, err := json.Marshal(b.Einnahmen)
	if err != nil {
		return nil, fmt.Errorf("marshaling einnahmen details: %w", err)
	}
	ausgaben, err := json.Marshal(b.Ausgaben)
	if err != nil {
		return nil, fmt.Errorf("marshaling ausgaben details: %w", err)
	}

	var saved model.EURBerechnung
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var existing model.EURBerechnung
		ferr := tx.Where("jahr = ?", b.Jahr).First(&existing).Error
		switch {
		case errors.Is(ferr, gorm.ErrRecordNotFound):
			existing = model.EURBerechnung{Jahr: b.Jahr}
		case ferr != nil:
			return fmt.Errorf("looking up eur-berechnung %d: %w", b.Jahr, ferr)
		case existing.Final && !force:
			return fmt.Errorf("jahr %d: %w", b.Jahr, ErrBerechnungFinal)
		}

		existing.SummeEinnahmen = b.SummeEinnahmen
		existing.SummeAusgaben = b.SummeAusgaben
		// Ergebnis is derived, never taken from the caller.
		existing.Ergebnis = b.SummeEinnahmen.Sub(b.SummeAusgaben)
		existing.EinnahmenDetails = string(einnahmen)
		existing.AusgabenDetails = string(ausgaben)
		existing.Final = final

		if err := tx.Save(&existing).Error; err != nil {
			return fmt.Errorf("saving eur-berechnung %d: %w", b.Jahr, err)
		}
		saved = existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

// AvailableYears lists the years from the earliest booking through the
// current year. With no bookings it is just the current year.
func AvailableYears(db *gorm.DB) ([]int, error) {
	current := time.Now().Year()

	var earliest model.Buchungssatz
	err := db.Order("datum").First(&earliest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return []int{current}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding earliest booking: %w", err)
	}

	start := earliest.Datum.Year()
	if start > current {
		start = current
	}
	years := make([]int, 0, current-start+1)
	for y := start; y <= current; y++ {
		years = append(years, y)
	}
	return years, nil
}

// LineItemDetail returns the transaction-level breakdown for one
// report line, side selected the same way as in Compute.
func (s *Service) LineItemDetail(mappingID uint) ([]Posten, error) {
	var mapping model.EURMapping
	err := s.db.First(&mapping, mappingID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("eur mapping %d: %w", mappingID, model.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("loading eur mapping %d: %w", mappingID, err)
	}

	entries, err := s.jahresBuchungen()
	if err != nil {
		return nil, err
	}

	var posten []Posten
	for _, e := range entries {
		if !mappingMatches(mapping, e) {
			continue
		}
		p := Posten{
			Datum:      e.Datum,
			Betrag:     e.Betrag,
			Text:       e.Buchungstext,
			Sollkonto:  e.Sollkonto.String(),
			Habenkonto: e.Habenkonto.String(),
		}
		if e.Geschaeftspartner != nil {
			p.Partner = e.Geschaeftspartner.Name
		}
		if e.Beleg != nil {
			p.BelegRef = e.Beleg.Nummer
		}
		posten = append(posten, p)
	}
	return posten, nil
}
