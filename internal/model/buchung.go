package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Buchungstyp names the four quick-booking shortcuts.
type Buchungstyp string

const (
	TypEinnahme       Buchungstyp = "einnahme"
	TypAusgabe        Buchungstyp = "ausgabe"
	TypPrivatentnahme Buchungstyp = "privatentnahme"
	TypPrivateinlage  Buchungstyp = "privateinlage"
)

// Geschaeftspartner is a customer or vendor attached to bookings.
type Geschaeftspartner struct {
	ID        uint   `gorm:"primaryKey"`
	Nummer    string `gorm:"size:16;uniqueIndex"`
	Name      string `gorm:"size:128;not null"`
	Ort       string `gorm:"size:64"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Beleg is a receipt/document reference. DokumentID is assigned by the
// extraction intake; the file itself lives outside this system.
type Beleg struct {
	ID             uint   `gorm:"primaryKey"`
	DokumentID     string `gorm:"size:36;uniqueIndex;not null"`
	Nummer         string `gorm:"size:32"`
	Rechnungsdatum *time.Time
	CreatedAt      time.Time
}

// Buchungssatz is a single double-entry posting: one debit account
// (Sollkonto), one credit account (Habenkonto), one positive amount.
// Amount and accounts are never updated after creation; only the
// Validiert flag is toggled.
type Buchungssatz struct {
	ID                  uint            `gorm:"primaryKey"`
	Datum               time.Time       `gorm:"index;not null"`
	Buchungstext        string          `gorm:"size:255;not null"`
	Betrag              decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	SollkontoID         uint            `gorm:"index;not null"`
	Sollkonto           Konto           `gorm:"foreignKey:SollkontoID;constraint:OnDelete:RESTRICT"`
	HabenkontoID        uint            `gorm:"index;not null"`
	Habenkonto          Konto           `gorm:"foreignKey:HabenkontoID;constraint:OnDelete:RESTRICT"`
	GeschaeftspartnerID *uint           `gorm:"index"`
	Geschaeftspartner   *Geschaeftspartner
	BelegID             *uint `gorm:"index"`
	Beleg               *Beleg
	Referenz            string `gorm:"size:64"`
	Notizen             string `gorm:"size:255"`
	Validiert           bool   `gorm:"not null;default:false"`
	AutomatischErstellt bool   `gorm:"not null;default:false"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
