package extraction

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/buchfink-dev/buchfink/internal/kontierung"
	"github.com/buchfink-dev/buchfink/internal/logger"
	"github.com/buchfink-dev/buchfink/internal/model"
)

// BelegDaten is the structured record the OCR/extraction collaborator
// hands over. All fields are optional; the core does no file I/O.
type BelegDaten struct {
	Rechnungsdatum  *time.Time
	Rechnungsnummer string
	Gesamtbetrag    *decimal.Decimal
	Partnername     string
}

// Entwurf is a draft booking proposal built from extracted data. It is
// not persisted as a booking; the caller completes and confirms it.
type Entwurf struct {
	Beleg     model.Beleg
	Datum     time.Time
	Text      string
	Betrag    decimal.Decimal
	Vorschlag kontierung.Vorschlag
}

// Intake turns extraction records into draft booking proposals.
type Intake struct {
	db      *gorm.DB
	advisor *kontierung.Advisor
	log     zerolog.Logger
}

// NewIntake creates an extraction intake.
func NewIntake(db *gorm.DB, advisor *kontierung.Advisor) *Intake {
	return &Intake{db: db, advisor: advisor, log: logger.WithComponent("extraction")}
}

// Propose stores a Beleg row for the document and builds a draft
// booking with a kontierung suggestion.
func (i *Intake) Propose(daten BelegDaten) (*Entwurf, error) {
	beleg := model.Beleg{
		DokumentID:     uuid.NewString(),
		Nummer:         daten.Rechnungsnummer,
		Rechnungsdatum: daten.Rechnungsdatum,
	}
	if err := i.db.Create(&beleg).Error; err != nil {
		return nil, fmt.Errorf("creating beleg: %w", err)
	}

	text := buchungstext(daten)
	vorschlag := i.advisor.Suggest(text, daten.Gesamtbetrag)

	datum := time.Now().Truncate(24 * time.Hour)
	if daten.Rechnungsdatum != nil {
		datum = *daten.Rechnungsdatum
	}

	betrag := decimal.Zero
	if daten.Gesamtbetrag != nil {
		betrag = daten.Gesamtbetrag.Abs()
	}

	i.log.Debug().
		Str("dokument", beleg.DokumentID).
		Str("methode", vorschlag.Methode).
		Float64("confidence", vorschlag.Confidence).
		Msg("belegentwurf erstellt")

	return &Entwurf{
		Beleg:     beleg,
		Datum:     datum,
		Text:      text,
		Betrag:    betrag,
		Vorschlag: vorschlag,
	}, nil
}

func buchungstext(daten BelegDaten) string {
	parts := make([]string, 0, 2)
	if daten.Partnername != "" {
		parts = append(parts, daten.Partnername)
	}
	if daten.Rechnungsnummer != "" {
		parts = append(parts, "Rechnung "+daten.Rechnungsnummer)
	}
	if len(parts) == 0 {
		return "Beleg ohne Angaben"
	}
	return strings.Join(parts, ", ")
}
