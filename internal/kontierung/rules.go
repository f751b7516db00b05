package kontierung

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/buchfink-dev/buchfink/internal/model"
)

// Weight caps for the scorer. Keyword hits accumulate up to
// maxKeywordScore, pattern hits up to maxPatternScore; the per-category
// total never exceeds 1.
const (
	maxKeywordScore = 0.8
	maxPatternScore = 0.6
)

// Rule is one category's keyword/pattern set. Rules are plain data so
// they can live in a YAML file and be tested independently of the
// scoring algorithm.
type Rule struct {
	Kategorie     model.Buchungstyp `yaml:"kategorie"`
	Keywords      []string          `yaml:"keywords"`
	Patterns      []string          `yaml:"patterns"`
	KeywordWeight float64           `yaml:"keyword_weight"`
	PatternWeight float64           `yaml:"pattern_weight"`
}

type rulesFile struct {
	Rules []Rule `yaml:"rules"`
}

// compiledRule carries the pre-compiled regexes for one Rule.
type compiledRule struct {
	Rule
	patterns []*regexp.Regexp
}

// compileRules validates and compiles a rule set.
func compileRules(rules []Rule) ([]compiledRule, error) {
	compiled := make([]compiledRule, 0, len(rules))
	for _, r := range rules {
		if r.Kategorie == "" {
			return nil, fmt.Errorf("rule without kategorie")
		}
		if r.KeywordWeight <= 0 {
			r.KeywordWeight = 0.4
		}
		if r.PatternWeight <= 0 {
			r.PatternWeight = 0.3
		}
		cr := compiledRule{Rule: r}
		for _, p := range r.Patterns {
			re, err := regexp.Compile(p)
			if err != nil {
				return nil, fmt.Errorf("compiling pattern %q for %s: %w", p, r.Kategorie, err)
			}
			cr.patterns = append(cr.patterns, re)
		}
		compiled = append(compiled, cr)
	}
	return compiled, nil
}

// LoadRules reads a rule set from a YAML file.
func LoadRules(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rules file: %w", err)
	}
	var f rulesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing rules file: %w", err)
	}
	if len(f.Rules) == 0 {
		return nil, fmt.Errorf("rules file %s contains no rules", path)
	}
	return f.Rules, nil
}

// DefaultRules returns the built-in rule set for the four booking
// types.
func DefaultRules() []Rule {
	return []Rule{
		{
			Kategorie: model.TypEinnahme,
			Keywords: []string{
				"einzahlung", "eingang", "gutschrift", "honorar",
				"erloes", "rechnung bezahlt", "zahlungseingang",
			},
			Patterns: []string{
				`(?i)\beinnahme`,
				`(?i)re-?\d{3,}`,
				`(?i)ueberweisung.*eingang`,
			},
		},
		{
			Kategorie: model.TypAusgabe,
			Keywords: []string{
				"lastschrift", "ausgang", "amazon", "einkauf",
				"miete", "telekom", "tankstelle", "versicherung",
			},
			Patterns: []string{
				`(?i)lastschrift`,
				`(?i)sepa[- ]?lastschrift`,
				`(?i)kartenzahlung`,
			},
		},
		{
			Kategorie: model.TypPrivatentnahme,
			Keywords:  []string{"privatentnahme", "entnahme", "bar abgehoben"},
			Patterns:  []string{`(?i)privat.*entnahme`},
		},
		{
			Kategorie: model.TypPrivateinlage,
			Keywords:  []string{"privateinlage", "einlage"},
			Patterns:  []string{`(?i)privat.*einlage`},
		},
	}
}

// score rates text against one rule. Matching is case-insensitive;
// text is expected lower-cased by the caller.
func (r compiledRule) score(text string) (float64, []string) {
	var hits []string

	keywordScore := 0.0
	for _, kw := range r.Keywords {
		if strings.Contains(text, kw) {
			keywordScore += r.KeywordWeight
			hits = append(hits, "keyword:"+kw)
		}
	}
	if keywordScore > maxKeywordScore {
		keywordScore = maxKeywordScore
	}

	patternScore := 0.0
	for _, re := range r.patterns {
		if re.MatchString(text) {
			patternScore += r.PatternWeight
			hits = append(hits, "pattern:"+re.String())
		}
	}
	if patternScore > maxPatternScore {
		patternScore = maxPatternScore
	}

	total := keywordScore + patternScore
	if total > 1.0 {
		total = 1.0
	}
	return total, hits
}
