package booking

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/buchfink-dev/buchfink/internal/logger"
	"github.com/buchfink-dev/buchfink/internal/model"
)

// ErrUnbekannterBuchungstyp reports a quick-booking type outside the
// four recognized values.
var ErrUnbekannterBuchungstyp = errors.New("unbekannter buchungstyp")

// MissingAccountPolicy decides what CreateQuick does when a fallback
// account number cannot be resolved.
type MissingAccountPolicy string

const (
	// MissingAccountFail aborts the quick booking with an error.
	MissingAccountFail MissingAccountPolicy = "fail"
	// MissingAccountPartial returns an unpersisted draft with the
	// unresolved side left empty, for manual completion.
	MissingAccountPartial MissingAccountPolicy = "partial"
)

// ParsePolicy maps a config string to a policy, defaulting to fail.
func ParsePolicy(s string) MissingAccountPolicy {
	if s == string(MissingAccountPartial) {
		return MissingAccountPartial
	}
	return MissingAccountFail
}

// Service creates, validates and queries double-entry bookings.
type Service struct {
	db     *gorm.DB
	policy MissingAccountPolicy
	log    zerolog.Logger
}

// NewService creates a booking Service.
func NewService(db *gorm.DB, policy MissingAccountPolicy) *Service {
	return &Service{db: db, policy: policy, log: logger.WithComponent("booking")}
}

// CreateParams holds parameters for creating a booking entry.
type CreateParams struct {
	Datum               time.Time
	Buchungstext        string
	Betrag              decimal.Decimal
	Sollkonto           string // account number
	Habenkonto          string // account number
	GeschaeftspartnerID *uint
	BelegID             *uint
	Referenz            string
	Notizen             string
	AutomatischErstellt bool
	Validiert           bool
}

// Create validates and persists one booking entry. Account lookup and
// insert run in one transaction so a concurrent Deactivate cannot slip
// between the active check and the insert. No compensating entry is
// ever created automatically.
func (s *Service) Create(p CreateParams) (*model.Buchungssatz, error) {
	var entry *model.Buchungssatz
	err := s.db.Transaction(func(tx *gorm.DB) error {
		soll, haben, err := s.resolvePair(tx, p)
		if err != nil {
			return err
		}
		entry = &model.Buchungssatz{
			Datum:               p.Datum,
			Buchungstext:        p.Buchungstext,
			Betrag:              p.Betrag,
			SollkontoID:         soll.ID,
			Sollkonto:           *soll,
			HabenkontoID:        haben.ID,
			Habenkonto:          *haben,
			GeschaeftspartnerID: p.GeschaeftspartnerID,
			BelegID:             p.BelegID,
			Referenz:            p.Referenz,
			Notizen:             p.Notizen,
			AutomatischErstellt: p.AutomatischErstellt,
			Validiert:           p.Validiert,
		}
		if err := tx.Omit("Sollkonto", "Habenkonto", "Geschaeftspartner", "Beleg").Create(entry).Error; err != nil {
			return fmt.Errorf("creating buchungssatz: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Debug().
		Str("soll", entry.Sollkonto.Nummer).
		Str("haben", entry.Habenkonto.Nummer).
		Str("betrag", p.Betrag.StringFixed(2)).
		Msg("buchung angelegt")
	return entry, nil
}

// resolvePair validates the params and loads both accounts through db,
// which is the enclosing transaction when called from Create.
func (s *Service) resolvePair(db *gorm.DB, p CreateParams) (soll, haben *model.Konto, err error) {
	if !p.Betrag.IsPositive() {
		return nil, nil, model.Validierungsfehler("betrag", "betrag muss positiv sein, war %s", p.Betrag)
	}
	if p.Buchungstext == "" {
		return nil, nil, model.Validierungsfehler("buchungstext", "buchungstext darf nicht leer sein")
	}
	if p.Sollkonto == p.Habenkonto {
		return nil, nil, model.Validierungsfehler("habenkonto", "sollkonto und habenkonto muessen sich unterscheiden")
	}

	soll, err = s.konto(db, p.Sollkonto)
	if err != nil {
		return nil, nil, err
	}
	haben, err = s.konto(db, p.Habenkonto)
	if err != nil {
		return nil, nil, err
	}
	if !soll.Aktiv {
		return nil, nil, model.Validierungsfehler("sollkonto", "konto %s ist inaktiv", soll.Nummer)
	}
	if !haben.Aktiv {
		return nil, nil, model.Validierungsfehler("habenkonto", "konto %s ist inaktiv", haben.Nummer)
	}
	return soll, haben, nil
}

func (s *Service) konto(db *gorm.DB, nummer string) (*model.Konto, error) {
	var k model.Konto
	err := db.Where("nummer = ?", nummer).First(&k).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("konto %s: %w", nummer, model.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("looking up konto %s: %w", nummer, err)
	}
	return &k, nil
}

// QuickParams holds parameters for CreateQuick.
type QuickParams struct {
	Typ      model.Buchungstyp
	Betrag   decimal.Decimal
	Text     string
	Datum    time.Time // zero value = today
	Referenz string
	// Standardkontierungen are the calling user's configured per-type
	// defaults; nil falls through to the fixed fallback table.
	Standardkontierungen model.Standardkontierungen
}

// CreateQuick books one of the four shortcut types, resolving the
// account pair from the user's defaults or the fallback table.
func (s *Service) CreateQuick(p QuickParams) (*model.Buchungssatz, error) {
	fallback, ok := model.FallbackKontierung[p.Typ]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnbekannterBuchungstyp, p.Typ)
	}

	paar := fallback
	if benutzer, ok := p.Standardkontierungen[p.Typ]; ok {
		paar = benutzer
	}

	datum := p.Datum
	if datum.IsZero() {
		datum = time.Now().Truncate(24 * time.Hour)
	}

	params := CreateParams{
		Datum:        datum,
		Buchungstext: p.Text,
		Betrag:       p.Betrag,
		Sollkonto:    paar.Soll,
		Habenkonto:   paar.Haben,
		Referenz:     p.Referenz,
	}

	entry, err := s.Create(params)
	if err == nil {
		return entry, nil
	}

	// Unresolvable account numbers are policy-controlled; every other
	// failure propagates.
	if !errors.Is(err, model.ErrNotFound) || s.policy == MissingAccountFail {
		return nil, err
	}

	s.log.Warn().Str("typ", string(p.Typ)).Err(err).
		Msg("konto fuer schnellbuchung nicht aufloesbar, entwurf wird zurueckgegeben")
	draft := &model.Buchungssatz{
		Datum:        datum,
		Buchungstext: p.Text,
		Betrag:       p.Betrag,
		Referenz:     p.Referenz,
		Validiert:    false,
	}
	if soll, kerr := s.konto(s.db, paar.Soll); kerr == nil {
		draft.SollkontoID = soll.ID
		draft.Sollkonto = *soll
	}
	if haben, kerr := s.konto(s.db, paar.Haben); kerr == nil {
		draft.HabenkontoID = haben.ID
		draft.Habenkonto = *haben
	}
	return draft, nil
}

// Validate re-runs the full validation on an existing entry. On
// success the Validiert flag is set and persisted. A failing entry is
// logged and reported as false rather than raising.
func (s *Service) Validate(entry *model.Buchungssatz) bool {
	_, _, err := s.resolvePair(s.db, CreateParams{
		Datum:        entry.Datum,
		Buchungstext: entry.Buchungstext,
		Betrag:       entry.Betrag,
		Sollkonto:    entry.Sollkonto.Nummer,
		Habenkonto:   entry.Habenkonto.Nummer,
	})
	if err != nil {
		s.log.Warn().Uint("id", entry.ID).Err(err).Msg("buchung nicht validierbar")
		return false
	}

	entry.Validiert = true
	if err := s.db.Model(entry).Update("validiert", true).Error; err != nil {
		s.log.Warn().Uint("id", entry.ID).Err(err).Msg("validierung nicht speicherbar")
		return false
	}
	return true
}

// Get loads one entry with both accounts preloaded.
func (s *Service) Get(id uint) (*model.Buchungssatz, error) {
	var entry model.Buchungssatz
	err := s.db.Preload("Sollkonto").Preload("Habenkonto").
		Preload("Geschaeftspartner").Preload("Beleg").
		First(&entry, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("buchungssatz %d: %w", id, model.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("loading buchungssatz %d: %w", id, err)
	}
	return &entry, nil
}

// FindSimilar returns up to limit entries sharing the (soll, haben)
// pair of entry, narrowed to its partner when set, with an amount
// within ±10%, newest first.
func (s *Service) FindSimilar(entry *model.Buchungssatz, limit int) ([]model.Buchungssatz, error) {
	if limit <= 0 {
		limit = 5
	}

	unten := entry.Betrag.Mul(decimal.NewFromFloat(0.9))
	oben := entry.Betrag.Mul(decimal.NewFromFloat(1.1))

	q := s.db.Preload("Sollkonto").Preload("Habenkonto").
		Where("sollkonto_id = ? AND habenkonto_id = ?", entry.SollkontoID, entry.HabenkontoID).
		Where("id <> ?", entry.ID).
		Where("betrag >= ? AND betrag <= ?", unten, oben)
	if entry.GeschaeftspartnerID != nil {
		q = q.Where("geschaeftspartner_id = ?", *entry.GeschaeftspartnerID)
	}

	var similar []model.Buchungssatz
	if err := q.Order("datum DESC").Limit(limit).Find(&similar).Error; err != nil {
		return nil, fmt.Errorf("finding similar bookings: %w", err)
	}
	return similar, nil
}

// Stats is the aggregate view over a set of bookings.
type Stats struct {
	Anzahl              int64
	Summe               decimal.Decimal
	Validiert           int64
	NichtValidiert      int64
	AutomatischErstellt int64
	Manuell             int64
}

// Statistics aggregates bookings, optionally restricted to [von, bis].
func (s *Service) Statistics(von, bis *time.Time) (*Stats, error) {
	q := s.db.Model(&model.Buchungssatz{})
	if von != nil {
		q = q.Where("datum >= ?", *von)
	}
	if bis != nil {
		q = q.Where("datum <= ?", *bis)
	}

	var entries []model.Buchungssatz
	if err := q.Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("loading bookings for statistics: %w", err)
	}

	stats := &Stats{Summe: decimal.Zero}
	for _, e := range entries {
		stats.Anzahl++
		stats.Summe = stats.Summe.Add(e.Betrag)
		if e.Validiert {
			stats.Validiert++
		} else {
			stats.NichtValidiert++
		}
		if e.AutomatischErstellt {
			stats.AutomatischErstellt++
		} else {
			stats.Manuell++
		}
	}
	return stats, nil
}
