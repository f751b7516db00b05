package accounts

import (
	"strconv"

	"github.com/buchfink-dev/buchfink/internal/model"
)

// nummernBereich binds an SKR03 number range to its admissible
// categories. Ranges outside every band are unconstrained.
type nummernBereich struct {
	von, bis   int
	kategorien []model.Kontokategorie
}

var skr03Bereiche = []nummernBereich{
	{1000, 1299, []model.Kontokategorie{model.KategorieAktiv}},
	{1800, 1899, []model.Kontokategorie{model.KategorieAktiv, model.KategorieEigenkapital}},
	{2000, 2199, []model.Kontokategorie{model.KategorieAktiv}},
	{2600, 2999, []model.Kontokategorie{model.KategorieErtrag, model.KategorieErloes}},
	{3000, 4999, []model.Kontokategorie{model.KategorieAufwand}},
}

// PruefeNummerKategorie validates that a 4-digit account number is
// consistent with the declared category per the SKR03 bands.
func PruefeNummerKategorie(nummer string, kategorie model.Kontokategorie) error {
	if len(nummer) != 4 {
		return model.Validierungsfehler("nummer", "kontonummer %q muss genau 4 Ziffern haben", nummer)
	}
	n, err := strconv.Atoi(nummer)
	if err != nil {
		return model.Validierungsfehler("nummer", "kontonummer %q ist nicht numerisch", nummer)
	}

	for _, b := range skr03Bereiche {
		if n < b.von || n > b.bis {
			continue
		}
		for _, k := range b.kategorien {
			if kategorie == k {
				return nil
			}
		}
		return model.Validierungsfehler("kategorie",
			"konto %s liegt im Bereich %d-%d und vertraegt die Kategorie %s nicht",
			nummer, b.von, b.bis, kategorie)
	}
	return nil
}

// DefaultChart returns the SKR03 accounts seeded by `buchfink init`.
// It is the subset a small cash-basis business actually books against,
// not the full official chart.
func DefaultChart() []model.Konto {
	return []model.Konto{
		{Nummer: "0800", Name: "Gezeichnetes Kapital", Kategorie: model.KategorieEigenkapital, Typ: model.TypSonstige, Aktiv: true},
		{Nummer: "1000", Name: "Kasse", Kategorie: model.KategorieAktiv, Typ: model.TypKasse, Aktiv: true},
		{Nummer: "1200", Name: "Bank", Kategorie: model.KategorieAktiv, Typ: model.TypBank, Aktiv: true},
		{Nummer: "1400", Name: "Forderungen aus Lieferungen und Leistungen", Kategorie: model.KategorieAktiv, Typ: model.TypForderungen, Aktiv: true},
		{Nummer: "1800", Name: "Privatentnahmen", Kategorie: model.KategorieEigenkapital, Typ: model.TypPrivat, Aktiv: true},
		{Nummer: "1890", Name: "Privateinlagen", Kategorie: model.KategorieEigenkapital, Typ: model.TypPrivat, Aktiv: true},
		{Nummer: "2650", Name: "Zinsertraege", Kategorie: model.KategorieErtrag, Typ: model.TypBetriebseinnahme, Aktiv: true},
		{Nummer: "3100", Name: "Fremdleistungen", Kategorie: model.KategorieAufwand, Typ: model.TypBetriebsausgabe, Aktiv: true},
		{Nummer: "4110", Name: "Loehne und Gehaelter", Kategorie: model.KategorieAufwand, Typ: model.TypBetriebsausgabe, Aktiv: true},
		{Nummer: "4210", Name: "Miete", Kategorie: model.KategorieAufwand, Typ: model.TypBetriebsausgabe, Aktiv: true},
		{Nummer: "4530", Name: "Kfz-Kosten", Kategorie: model.KategorieAufwand, Typ: model.TypBetriebsausgabe, Aktiv: true},
		{Nummer: "4830", Name: "Abschreibungen", Kategorie: model.KategorieAufwand, Typ: model.TypBetriebsausgabe, Aktiv: true},
		{Nummer: "4930", Name: "Buerobedarf", Kategorie: model.KategorieAufwand, Typ: model.TypBetriebsausgabe, Aktiv: true},
		{Nummer: "4980", Name: "Sonstige betriebliche Aufwendungen", Kategorie: model.KategorieAufwand, Typ: model.TypBetriebsausgabe, Aktiv: true},
		{Nummer: "8300", Name: "Erloese 7% USt", Kategorie: model.KategorieErloes, Typ: model.TypBetriebseinnahme, Aktiv: true},
		{Nummer: "8400", Name: "Erloese 19% USt", Kategorie: model.KategorieErloes, Typ: model.TypBetriebseinnahme, Aktiv: true},
	}
}
