package model

import "time"

// Kontokategorie classifies accounts in the SKR03 chart of accounts.
type Kontokategorie string

const (
	KategorieAktiv        Kontokategorie = "aktivkonto"
	KategoriePassiv       Kontokategorie = "passivkonto"
	KategorieAufwand      Kontokategorie = "aufwand"
	KategorieErtrag       Kontokategorie = "ertrag"
	KategorieEigenkapital Kontokategorie = "eigenkapital"
	KategorieErloes       Kontokategorie = "erloes"
)

// Kontotyp is the finer classification below Kontokategorie.
type Kontotyp string

const (
	TypBank             Kontotyp = "bank"
	TypKasse            Kontotyp = "kasse"
	TypForderungen      Kontotyp = "forderungen"
	TypVerbindlichkeit  Kontotyp = "verbindlichkeit"
	TypBetriebsausgabe  Kontotyp = "betriebsausgabe"
	TypBetriebseinnahme Kontotyp = "betriebseinnahme"
	TypPrivat           Kontotyp = "privat"
	TypSonstige         Kontotyp = "sonstige"
)

// Konto is one row in the chart of accounts. The Nummer is the 4-digit
// SKR03 account number and stays a string: matching elsewhere is string
// equality, never numeric.
type Konto struct {
	ID        uint           `gorm:"primaryKey"`
	Nummer    string         `gorm:"size:4;uniqueIndex;not null"`
	Name      string         `gorm:"size:128;not null"`
	Kategorie Kontokategorie `gorm:"size:16;not null"`
	Typ       Kontotyp       `gorm:"size:24;not null"`
	Aktiv     bool           `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (k Konto) String() string {
	return k.Nummer + " " + k.Name
}
