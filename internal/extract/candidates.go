package extract

import (
	"context"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ppiankov/pickwise/internal/catalog"
	"go.uber.org/zap"
)

// ModelExtractor is an external capability that lists product model names in a text
type ModelExtractor interface {
	ExtractModels(ctx context.Context, text string) ([]string, error)
}

// CandidateExtractor turns a text unit into raw candidate names
type CandidateExtractor struct {
	nlp ModelExtractor // nil when no capability is configured
}

// NewCandidateExtractor creates an extractor; nlp may be nil
func NewCandidateExtractor(nlp ModelExtractor) *CandidateExtractor {
	return &CandidateExtractor{nlp: nlp}
}

// Extract returns candidate names for the text. It asks the NLP capability
// first and falls back to the category pattern table when the capability is
// absent, fails, or finds nothing. Never returns nil.
func (e *CandidateExtractor) Extract(ctx context.Context, text string, productType string) []string {
	if strings.TrimSpace(text) == "" {
		return []string{}
	}

	if e.nlp != nil {
		names, err := e.nlp.ExtractModels(ctx, text)
		if err != nil {
			zap.L().Debug("model extraction unavailable, using patterns", zap.Error(err))
		} else if cleaned := cleanNames(names); len(cleaned) > 0 {
			return cleaned
		}
	}

	return FallbackCandidates(text, productType)
}

// FallbackCandidates runs the deterministic extraction: the first category
// pattern with any match wins; otherwise capitalized phrases near the first
// mention of the product type are used.
func FallbackCandidates(text string, productType string) []string {
	for _, re := range catalog.PatternsFor(productType) {
		if matches := re.FindAllString(text, -1); len(matches) > 0 {
			return cleanNames(matches)
		}
	}

	if phrase := phraseNearKeyword(text, productType); phrase != "" {
		return []string{phrase}
	}
	return []string{}
}

var capitalizedPhrase = regexp.MustCompile(`[A-Z][a-zA-Z0-9]+(?:\s+[A-Z0-9][a-zA-Z0-9]+){1,3}`)

const (
	keywordLookBehind = 30
	keywordLookAhead  = 50
)

func phraseNearKeyword(text string, productType string) string {
	keyword := strings.TrimSpace(productType)
	if keyword == "" {
		return ""
	}
	loc := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(keyword)).FindStringIndex(text)
	if loc == nil {
		return ""
	}

	start := runeFloor(text, loc[0]-keywordLookBehind)
	end := runeFloor(text, loc[0]+keywordLookAhead)
	return strings.TrimSpace(capitalizedPhrase.FindString(text[start:end]))
}

// runeFloor clamps i into [0, len(s)] and moves it back to a rune boundary
func runeFloor(s string, i int) int {
	if i <= 0 {
		return 0
	}
	if i >= len(s) {
		return len(s)
	}
	for i > 0 && !utf8.RuneStart(s[i]) {
		i--
	}
	return i
}

// cleanNames trims quotes and whitespace, drops empties and exact duplicates
func cleanNames(names []string) []string {
	seen := make(map[string]bool)
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.Trim(strings.TrimSpace(n), `"'`)
		n = strings.TrimSpace(n)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}
