package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/buchfink-dev/buchfink/internal/eur"
)

// WriteXLSX renders a computed EÜR as an Excel workbook.
func WriteXLSX(w io.Writer, b *eur.Berechnung) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := fmt.Sprintf("EUER %d", b.Jahr)
	index, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}
	f.SetActiveSheet(index)
	_ = f.DeleteSheet("Sheet1")

	set := func(row int, col rune, value any) {
		cell := fmt.Sprintf("%c%d", col, row)
		_ = f.SetCellValue(sheet, cell, value)
	}

	row := 1
	set(row, 'A', fmt.Sprintf("Einnahmen-Ueberschuss-Rechnung %d", b.Jahr))
	row += 2

	set(row, 'A', "Zeile")
	set(row, 'B', "Bezeichnung")
	set(row, 'C', "Betrag EUR")
	row++

	for _, z := range b.Einnahmen {
		set(row, 'A', z.Zeile)
		set(row, 'B', z.Bezeichnung)
		set(row, 'C', z.Betrag.StringFixed(2))
		row++
	}
	set(row, 'B', "Summe Betriebseinnahmen")
	set(row, 'C', b.SummeEinnahmen.StringFixed(2))
	row += 2

	for _, z := range b.Ausgaben {
		set(row, 'A', z.Zeile)
		set(row, 'B', z.Bezeichnung)
		set(row, 'C', z.Betrag.StringFixed(2))
		row++
	}
	set(row, 'B', "Summe Betriebsausgaben")
	set(row, 'C', b.SummeAusgaben.StringFixed(2))
	row += 2

	set(row, 'B', "Gewinn/Verlust")
	set(row, 'C', b.Ergebnis.StringFixed(2))

	if len(b.Sonder) > 0 {
		row += 2
		set(row, 'B', "Sonderposten (nachrichtlich)")
		row++
		for _, z := range b.Sonder {
			set(row, 'A', z.Zeile)
			set(row, 'B', z.Bezeichnung)
			set(row, 'C', z.Betrag.StringFixed(2))
			row++
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}
