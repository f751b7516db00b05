package eur

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/buchfink-dev/buchfink/internal/model"
)

// OfficialMappings returns the fixed list of official EÜR form lines
// with their SKR03 account sets. Line numbers follow the Anlage EÜR.
func OfficialMappings() []model.EURMapping {
	return []model.EURMapping{
		{Zeile: "14", Bezeichnung: "Umsatzsteuerpflichtige Betriebseinnahmen", Kategorie: model.EURKategorieEinnahmen, Kontonummern: model.Kontonummern{"8400", "8300"}, Aktiv: true, Sortierung: 10},
		{Zeile: "15", Bezeichnung: "Umsatzsteuerfreie, nicht umsatzsteuerbare Betriebseinnahmen", Kategorie: model.EURKategorieEinnahmen, Kontonummern: model.Kontonummern{"8120", "8125"}, Aktiv: true, Sortierung: 20},
		{Zeile: "16", Bezeichnung: "Vereinnahmte Umsatzsteuer", Kategorie: model.EURKategorieEinnahmen, Kontonummern: model.Kontonummern{"1776"}, Aktiv: true, Sortierung: 30},
		{Zeile: "18", Bezeichnung: "Veraeusserung oder Entnahme von Anlagevermoegen", Kategorie: model.EURKategorieEinnahmen, Kontonummern: model.Kontonummern{"8820"}, Aktiv: true, Sortierung: 40},
		{Zeile: "19", Bezeichnung: "Private Kfz-Nutzung", Kategorie: model.EURKategorieEinnahmen, Kontonummern: model.Kontonummern{"8921"}, Aktiv: true, Sortierung: 50},
		{Zeile: "20", Bezeichnung: "Sonstige Sach-, Nutzungs- und Leistungsentnahmen", Kategorie: model.EURKategorieEinnahmen, Kontonummern: model.Kontonummern{"8905"}, Aktiv: true, Sortierung: 60},
		{Zeile: "25", Bezeichnung: "Waren, Rohstoffe und Hilfsstoffe", Kategorie: model.EURKategorieAusgaben, Kontonummern: model.Kontonummern{"3200", "3400"}, Aktiv: true, Sortierung: 110},
		{Zeile: "26", Bezeichnung: "Bezogene Fremdleistungen", Kategorie: model.EURKategorieAusgaben, Kontonummern: model.Kontonummern{"3100"}, Aktiv: true, Sortierung: 120},
		{Zeile: "27", Bezeichnung: "Ausgaben fuer eigenes Personal", Kategorie: model.EURKategorieAusgaben, Kontonummern: model.Kontonummern{"4110", "4120", "4130"}, Aktiv: true, Sortierung: 130},
		{Zeile: "29", Bezeichnung: "AfA auf bewegliche Wirtschaftsgueter", Kategorie: model.EURKategorieAusgaben, Kontonummern: model.Kontonummern{"4830", "4832"}, Aktiv: true, Sortierung: 140},
		{Zeile: "31", Bezeichnung: "Miete und Pacht fuer Geschaeftsraeume", Kategorie: model.EURKategorieAusgaben, Kontonummern: model.Kontonummern{"4210", "4228"}, Aktiv: true, Sortierung: 150},
		{Zeile: "32", Bezeichnung: "Aufwendungen fuer Telekommunikation", Kategorie: model.EURKategorieAusgaben, Kontonummern: model.Kontonummern{"4920", "4925"}, Aktiv: true, Sortierung: 160},
		{Zeile: "33", Bezeichnung: "Uebernachtungs- und Reisekosten", Kategorie: model.EURKategorieAusgaben, Kontonummern: model.Kontonummern{"4660", "4670"}, Aktiv: true, Sortierung: 170},
		{Zeile: "36", Bezeichnung: "Kfz-Kosten", Kategorie: model.EURKategorieAusgaben, Kontonummern: model.Kontonummern{"4530", "4540", "4550"}, Aktiv: true, Sortierung: 180},
		{Zeile: "44", Bezeichnung: "Abziehbare Vorsteuerbetraege", Kategorie: model.EURKategorieAusgaben, Kontonummern: model.Kontonummern{"1576"}, Aktiv: true, Sortierung: 190},
		{Zeile: "52", Bezeichnung: "Uebrige Betriebsausgaben", Kategorie: model.EURKategorieAusgaben, Kontonummern: model.Kontonummern{"4980", "4930", "4950"}, Aktiv: true, Sortierung: 200},
		{Zeile: "96", Bezeichnung: "Entnahmen", Kategorie: model.EURKategorieSonder, Kontonummern: model.Kontonummern{"1800"}, Aktiv: true, Sortierung: 300},
		{Zeile: "97", Bezeichnung: "Einlagen", Kategorie: model.EURKategorieSonder, Kontonummern: model.Kontonummern{"1890"}, Aktiv: true, Sortierung: 310},
	}
}

// SeedOfficialMappings upserts the official line list keyed by Zeile.
// Existing rows are only touched when force is set. Idempotent.
func SeedOfficialMappings(db *gorm.DB, force bool) (int, error) {
	seeded := 0
	for _, m := range OfficialMappings() {
		if m.Aktiv && len(m.Kontonummern) == 0 {
			return seeded, model.Validierungsfehler("kontonummern",
				"aktives mapping %s braucht mindestens eine kontonummer", m.Zeile)
		}

		var existing model.EURMapping
		err := db.Where("zeile = ?", m.Zeile).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := db.Create(&m).Error; err != nil {
				return seeded, fmt.Errorf("creating mapping %s: %w", m.Zeile, err)
			}
			seeded++
		case err != nil:
			return seeded, fmt.Errorf("looking up mapping %s: %w", m.Zeile, err)
		case force:
			existing.Bezeichnung = m.Bezeichnung
			existing.Kategorie = m.Kategorie
			existing.Kontonummern = m.Kontonummern
			existing.Aktiv = m.Aktiv
			existing.Sortierung = m.Sortierung
			if err := db.Save(&existing).Error; err != nil {
				return seeded, fmt.Errorf("updating mapping %s: %w", m.Zeile, err)
			}
			seeded++
		}
	}
	return seeded, nil
}
