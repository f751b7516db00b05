package kontierung

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Header aliases tried when extracting fields from loosely-named
// import rows.
var (
	textAliases   = []string{"text", "buchungstext", "verwendungszweck", "beschreibung", "description"}
	betragAliases = []string{"betrag", "amount", "summe", "wert"}
	datumAliases  = []string{"datum", "date", "buchungsdatum", "wertstellung"}
)

// BatchResult pairs one input row with its suggestion.
type BatchResult struct {
	Row       map[string]string
	Text      string
	Betrag    *decimal.Decimal
	Datum     string
	Vorschlag Vorschlag
}

// AnalyzeBatch attaches a suggestion to every row. Input rows are not
// mutated; each result carries its own copy.
func (a *Advisor) AnalyzeBatch(rows []map[string]string) []BatchResult {
	results := make([]BatchResult, 0, len(rows))
	for _, row := range rows {
		copied := make(map[string]string, len(row))
		for k, v := range row {
			copied[k] = v
		}

		text := firstAlias(row, textAliases)
		datum := firstAlias(row, datumAliases)

		var betrag *decimal.Decimal
		if raw := firstAlias(row, betragAliases); raw != "" {
			s := strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
			if d, err := decimal.NewFromString(s); err == nil {
				betrag = &d
			}
		}

		results = append(results, BatchResult{
			Row:       copied,
			Text:      text,
			Betrag:    betrag,
			Datum:     datum,
			Vorschlag: a.Suggest(text, betrag),
		})
	}
	return results
}

func firstAlias(row map[string]string, aliases []string) string {
	for key, value := range row {
		lk := strings.ToLower(strings.TrimSpace(key))
		for _, alias := range aliases {
			if lk == alias && strings.TrimSpace(value) != "" {
				return strings.TrimSpace(value)
			}
		}
	}
	return ""
}
