package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// EURKategorie classifies official EÜR form lines.
type EURKategorie string

const (
	EURKategorieEinnahmen EURKategorie = "einnahmen"
	EURKategorieAusgaben  EURKategorie = "ausgaben"
	EURKategorieSonder    EURKategorie = "sonder"
)

// Kontonummern is an ordered list of SKR03 account numbers stored as a
// JSON text column.
type Kontonummern []string

// Value implements driver.Valuer.
func (k Kontonummern) Value() (driver.Value, error) {
	if k == nil {
		k = Kontonummern{}
	}
	b, err := json.Marshal(k)
	if err != nil {
		return nil, fmt.Errorf("marshaling kontonummern: %w", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (k *Kontonummern) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*k = nil
		return nil
	case string:
		return json.Unmarshal([]byte(v), k)
	case []byte:
		return json.Unmarshal(v, k)
	default:
		return fmt.Errorf("unsupported kontonummern source type %T", src)
	}
}

// Contains reports whether nummer is in the list (string equality).
func (k Kontonummern) Contains(nummer string) bool {
	for _, n := range k {
		if n == nummer {
			return true
		}
	}
	return false
}

// EURMapping maps one official EÜR form line to a set of account numbers.
type EURMapping struct {
	ID           uint         `gorm:"primaryKey"`
	Zeile        string       `gorm:"size:8;uniqueIndex;not null"`
	Bezeichnung  string       `gorm:"size:255;not null"`
	Kategorie    EURKategorie `gorm:"size:16;not null"`
	Kontonummern Kontonummern `gorm:"type:text;not null"`
	Aktiv        bool         `gorm:"not null;default:true"`
	Sortierung   int          `gorm:"not null;default:0"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// EURBerechnung is the persisted snapshot of one fiscal year's
// cash-basis profit/loss computation. Ergebnis is always derived from
// the two sums, never set independently.
type EURBerechnung struct {
	ID               uint            `gorm:"primaryKey"`
	Jahr             int             `gorm:"uniqueIndex;not null"`
	SummeEinnahmen   decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	SummeAusgaben    decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Ergebnis         decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	EinnahmenDetails string          `gorm:"type:text"`
	AusgabenDetails  string          `gorm:"type:text"`
	Final            bool            `gorm:"not null;default:false"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
