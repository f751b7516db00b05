package booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/buchfink-dev/buchfink/internal/model"
)

// Column mapping field names understood by ImportCSV.
const (
	FeldDatum    = "datum"
	FeldBetrag   = "betrag"
	FeldText     = "text"
	FeldReferenz = "referenz"
)

var importDateFormats = []string{"2006-01-02", "02.01.2006", "02/01/2006"}

// ImportCSV books a batch of bank CSV rows. columnMapping maps a
// 0-based column index to one of the Feld* names; Betrag is required
// per row, Datum and Text are optional. A row naming einzahlung/
// eingang books the income pair, lastschrift/ausgang the expense
// pair, everything else the supplied default pair. Failing rows are
// collected (1-based index) and the batch continues.
func (s *Service) ImportCSV(rows [][]string, columnMapping map[int]string, defaultSoll, defaultHaben string) (int, []string) {
	success := 0
	var errs []string

	for i, row := range rows {
		if err := s.importRow(row, columnMapping, defaultSoll, defaultHaben); err != nil {
			errs = append(errs, fmt.Sprintf("zeile %d: %v", i+1, err))
			continue
		}
		success++
	}

	s.log.Info().Int("erfolgreich", success).Int("fehler", len(errs)).Msg("csv-import abgeschlossen")
	return success, errs
}

func (s *Service) importRow(row []string, columnMapping map[int]string, defaultSoll, defaultHaben string) error {
	var betragRaw, datumRaw, text, referenz string
	for idx, feld := range columnMapping {
		if idx < 0 || idx >= len(row) {
			continue
		}
		switch feld {
		case FeldBetrag:
			betragRaw = strings.TrimSpace(row[idx])
		case FeldDatum:
			datumRaw = strings.TrimSpace(row[idx])
		case FeldText:
			text = strings.TrimSpace(row[idx])
		case FeldReferenz:
			referenz = strings.TrimSpace(row[idx])
		}
	}

	if betragRaw == "" {
		return fmt.Errorf("betrag fehlt")
	}
	betrag, err := parseBetrag(betragRaw)
	if err != nil {
		return err
	}

	datum := time.Now().Truncate(24 * time.Hour)
	if datumRaw != "" {
		d, err := parseDatum(datumRaw)
		if err != nil {
			return err
		}
		datum = d
	}

	if text == "" {
		text = "Import"
	}

	soll, haben := kontenFuerText(text, defaultSoll, defaultHaben)

	_, err = s.Create(CreateParams{
		Datum:               datum,
		Buchungstext:        text,
		Betrag:              betrag.Abs(),
		Sollkonto:           soll,
		Habenkonto:          haben,
		Referenz:            referenz,
		AutomatischErstellt: true,
	})
	return err
}

// kontenFuerText is the best-effort side heuristic for imported rows.
func kontenFuerText(text, defaultSoll, defaultHaben string) (soll, haben string) {
	t := strings.ToLower(text)
	switch {
	case strings.Contains(t, "einzahlung") || strings.Contains(t, "eingang"):
		paar := model.FallbackKontierung[model.TypEinnahme]
		return paar.Soll, paar.Haben
	case strings.Contains(t, "lastschrift") || strings.Contains(t, "ausgang"):
		paar := model.FallbackKontierung[model.TypAusgabe]
		return paar.Soll, paar.Haben
	default:
		return defaultSoll, defaultHaben
	}
}

// parseBetrag handles both 1234.56 and the German 1.234,56 form.
func parseBetrag(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimSuffix(s, "€")
	s = strings.TrimSpace(s)
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	betrag, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("betrag %q nicht lesbar", raw)
	}
	return betrag, nil
}

func parseDatum(raw string) (time.Time, error) {
	for _, layout := range importDateFormats {
		if d, err := time.Parse(layout, raw); err == nil {
			return d, nil
		}
	}
	return time.Time{}, fmt.Errorf("datum %q nicht lesbar", raw)
}
