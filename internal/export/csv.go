package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/buchfink-dev/buchfink/internal/eur"
)

// WriteCSV renders a computed EÜR to CSV. Pure formatting: the
// Berechnung is consumed read-only.
func WriteCSV(w io.Writer, b *eur.Berechnung) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	rows := [][]string{
		{"Einnahmen-Ueberschuss-Rechnung", fmt.Sprintf("%d", b.Jahr)},
		{},
		{"Zeile", "Bezeichnung", "Betrag EUR"},
	}
	for _, z := range b.Einnahmen {
		rows = append(rows, []string{z.Zeile, z.Bezeichnung, z.Betrag.StringFixed(2)})
	}
	rows = append(rows, []string{"", "Summe Betriebseinnahmen", b.SummeEinnahmen.StringFixed(2)}, []string{})
	for _, z := range b.Ausgaben {
		rows = append(rows, []string{z.Zeile, z.Bezeichnung, z.Betrag.StringFixed(2)})
	}
	rows = append(rows,
		[]string{"", "Summe Betriebsausgaben", b.SummeAusgaben.StringFixed(2)},
		[]string{},
		[]string{"", "Gewinn/Verlust", b.Ergebnis.StringFixed(2)},
	)
	if len(b.Sonder) > 0 {
		rows = append(rows, []string{}, []string{"", "Sonderposten (nachrichtlich)", ""})
		for _, z := range b.Sonder {
			rows = append(rows, []string{z.Zeile, z.Bezeichnung, z.Betrag.StringFixed(2)})
		}
	}

	for i, row := range rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}
	return cw.Error()
}
