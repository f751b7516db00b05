package kontierung

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/buchfink-dev/buchfink/internal/logger"
	"github.com/buchfink-dev/buchfink/internal/model"
)

// Suggestion methods.
const (
	MethodeStandardkontierung = "benutzer_standardkontierung"
	MethodeTextmuster         = "textmuster"
	MethodeBetrag             = "betrag_heuristik"
	MethodeKeinVorschlag      = "kein_vorschlag"
)

// fallbackConfidence is used when neither text nor user defaults give
// a better signal than the amount's sign.
const fallbackConfidence = 0.3

// KontoResolver looks up accounts by number.
type KontoResolver interface {
	Get(nummer string) (*model.Konto, error)
}

// Vorschlag is one kontierung suggestion.
type Vorschlag struct {
	Sollkonto   *model.Konto
	Habenkonto  *model.Konto
	Kategorie   model.Buchungstyp
	Confidence  float64 // always within [0, 1]
	Methode     string
	Begruendung string
}

// Advisor proposes account pairs for free-form booking texts. The
// per-user default mappings are fixed at construction; there is no
// ambient request state.
type Advisor struct {
	rules    []compiledRule
	defaults model.Standardkontierungen
	konten   KontoResolver
	log      zerolog.Logger
}

// NewAdvisor creates an Advisor over a rule set. A nil rules slice
// uses the built-in defaults.
func NewAdvisor(rules []Rule, defaults model.Standardkontierungen, konten KontoResolver) (*Advisor, error) {
	if rules == nil {
		rules = DefaultRules()
	}
	compiled, err := compileRules(rules)
	if err != nil {
		return nil, err
	}
	return &Advisor{
		rules:    compiled,
		defaults: defaults,
		konten:   konten,
		log:      logger.WithComponent("kontierung"),
	}, nil
}

// Suggest proposes a (soll, haben) pair for a booking text. betrag may
// be nil when no amount is known yet.
func (a *Advisor) Suggest(text string, betrag *decimal.Decimal) Vorschlag {
	lower := strings.ToLower(text)

	bestScore := 0.0
	var bestKategorie model.Buchungstyp
	var bestHits []string
	for _, r := range a.rules {
		score, hits := r.score(lower)
		if score > bestScore {
			bestScore = score
			bestKategorie = r.Kategorie
			bestHits = hits
		}
	}

	// A text match combined with a configured user mapping wins.
	if bestScore > 0 {
		if paar, ok := a.defaults[bestKategorie]; ok {
			if v, err := a.resolve(paar, bestKategorie, bestScore, MethodeStandardkontierung, bestHits); err == nil {
				return v
			}
		}
	}

	// Without a configured mapping only the amount's sign picks the
	// pair; a partial text match merely lifts the confidence.
	if betrag != nil {
		kategorie := model.TypAusgabe
		if betrag.IsPositive() {
			kategorie = model.TypEinnahme
		}
		confidence := fallbackConfidence
		methode := MethodeBetrag
		hits := []string{fmt.Sprintf("vorzeichen:%s", betrag.StringFixed(2))}
		if bestScore > confidence {
			confidence = bestScore
			methode = MethodeTextmuster
			hits = append(bestHits, hits...)
		}
		if v, err := a.resolve(model.FallbackKontierung[kategorie], kategorie, confidence, methode, hits); err == nil {
			return v
		}
	}

	a.log.Debug().Str("text", text).Msg("kein kontierungsvorschlag moeglich")
	return Vorschlag{
		Methode:     MethodeKeinVorschlag,
		Confidence:  0.0,
		Begruendung: "weder textmuster noch betrag ergeben eine kontierung",
	}
}

func (a *Advisor) resolve(paar model.Kontenpaar, kategorie model.Buchungstyp, confidence float64, methode string, hits []string) (Vorschlag, error) {
	soll, err := a.konten.Get(paar.Soll)
	if err != nil {
		return Vorschlag{}, err
	}
	haben, err := a.konten.Get(paar.Haben)
	if err != nil {
		return Vorschlag{}, err
	}
	if confidence > 1.0 {
		confidence = 1.0
	}
	return Vorschlag{
		Sollkonto:   soll,
		Habenkonto:  haben,
		Kategorie:   kategorie,
		Confidence:  confidence,
		Methode:     methode,
		Begruendung: strings.Join(hits, ", "),
	}, nil
}
