package sentiment

import (
	"strings"
	"unicode"
)

// Analyzer scores free text to a polarity in [-1, 1] using a fixed
// finance-oriented lexicon. Scoring is pure and deterministic: identical
// input always yields the identical score, and no input is an error.
type Analyzer struct {
	positive map[string]bool
	negative map[string]bool
	negators map[string]bool
}

func New() *Analyzer {
	return &Analyzer{
		positive: loadPositiveWords(),
		negative: loadNegativeWords(),
		negators: loadNegators(),
	}
}

// Score returns the polarity of text. Empty text scores 0 (neutral).
// A preceding negator ("not strong") flips the polarity of the next hit.
func (a *Analyzer) Score(text string) float64 {
	if text == "" {
		return 0
	}

	words := tokenize(strings.ToLower(text))
	if len(words) == 0 {
		return 0
	}

	var pos, neg float64
	negated := false
	for _, w := range words {
		switch {
		case a.negators[w]:
			negated = true
			continue
		case a.positive[w]:
			if negated {
				neg++
			} else {
				pos++
			}
		case a.negative[w]:
			if negated {
				pos++
			} else {
				neg++
			}
		}
		negated = false
	}

	hits := pos + neg
	if hits == 0 {
		return 0
	}

	score := (pos - neg) / hits
	if score > 1 {
		score = 1
	}
	if score < -1 {
		score = -1
	}
	return score
}

func tokenize(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}
