package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/buchfink-dev/buchfink/internal/eur"
)

func beispielBerechnung() *eur.Berechnung {
	return &eur.Berechnung{
		Jahr: 2025,
		Einnahmen: []eur.Zeile{
			{Zeile: "14", Bezeichnung: "Betriebseinnahmen", Betrag: decimal.RequireFromString("1000.00"), Kontonummern: []string{"8400"}},
		},
		Ausgaben: []eur.Zeile{
			{Zeile: "52", Bezeichnung: "Uebrige Betriebsausgaben", Betrag: decimal.RequireFromString("200.00"), Kontonummern: []string{"4980"}},
		},
		Sonder: []eur.Zeile{
			{Zeile: "96", Bezeichnung: "Entnahmen", Betrag: decimal.RequireFromString("300.00"), Kontonummern: []string{"1800"}},
		},
		SummeEinnahmen: decimal.RequireFromString("1000.00"),
		SummeAusgaben:  decimal.RequireFromString("200.00"),
		Ergebnis:       decimal.RequireFromString("800.00"),
		IsGewinn:       true,
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, beispielBerechnung()))

	cr := csv.NewReader(bytes.NewReader(buf.Bytes()))
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	require.NoError(t, err)

	flat := buf.String()
	assert.Contains(t, flat, "Betriebseinnahmen")
	assert.Contains(t, flat, "1000.00")
	assert.Contains(t, flat, "Gewinn/Verlust,800.00")
	assert.Contains(t, flat, "Sonderposten (nachrichtlich)")
	assert.Contains(t, flat, "Entnahmen,300.00")
	assert.GreaterOrEqual(t, len(rows), 7)
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, beispielBerechnung()))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("EUER 2025")
	require.NoError(t, err)
	require.NotEmpty(t, rows)

	flat := ""
	for _, row := range rows {
		for _, cell := range row {
			flat += cell + "|"
		}
	}
	assert.Contains(t, flat, "Betriebseinnahmen")
	assert.Contains(t, flat, "800.00")
}
