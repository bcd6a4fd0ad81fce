package validate

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/ppiankov/pickwise/internal/catalog"
	"github.com/ppiankov/pickwise/internal/model"
)

const (
	minNameLength     = 6
	ownershipLookback = 50
)

var (
	hasLetter      = regexp.MustCompile(`[a-zA-Z]`)
	hasDigit       = regexp.MustCompile(`\d`)
	capitalizedWrd = regexp.MustCompile(`[A-Z][a-z]+`)

	gpuModel    = regexp.MustCompile(`(?:rtx|gtx|radeon rx|arc)\s*[a-b]?\d{3,4}`)
	nvidiaModel = regexp.MustCompile(`(?:rtx|gtx)\s*(\d{4})`)
	arcModel    = regexp.MustCompile(`arc\s*([a-z])?(\d{3})`)
	amdModel    = regexp.MustCompile(`(?:radeon rx|rx)\s*(\d{4})`)
)

var ownershipTerms = []string{"i bought", "i own", "i use", "i have", "purchased", "using"}

var recommendTerms = []string{"recommend", "suggested", "best", "top", "great", "excellent"}

// Scorer estimates whether a candidate name is a real, complete product model.
// Every check adds or subtracts points and records why.
type Scorer struct {
	policy    model.Policy
	arcModels map[int]bool
}

// NewScorer creates a validity scorer with the given policy
func NewScorer(policy model.Policy) *Scorer {
	arc := make(map[int]bool, len(policy.ArcModels))
	for _, m := range policy.ArcModels {
		arc[m] = true
	}
	return &Scorer{policy: policy, arcModels: arc}
}

// tally accumulates points and reasons
type tally struct {
	score   int
	reasons []string
}

func (t *tally) add(points int, reason string) {
	t.score += points
	t.reasons = append(t.reasons, reason)
}

// Score rates name in the light of its surrounding text and the requested category
func (s *Scorer) Score(name string, contextText string, productType string) model.ValidityResult {
	t := &tally{}

	s.checkLength(t, name)
	s.checkAlphanumeric(t, name)
	s.checkBrand(t, name)

	switch catalog.RuleFor(productType) {
	case catalog.RuleGPU:
		s.checkGPU(t, strings.ToLower(name))
	case catalog.RuleSystem:
		s.checkSystem(t, name)
	}

	s.checkContext(t, name, contextText)

	return model.ValidityResult{
		IsValid: t.score >= s.policy.ValidThreshold,
		Score:   t.score,
		Reasons: t.reasons,
	}
}

func (s *Scorer) checkLength(t *tally, name string) {
	if utf8.RuneCountInString(name) < minNameLength {
		t.add(-3, "Too short for a complete product name")
		return
	}
	t.add(1, "Reasonable name length")
}

func (s *Scorer) checkAlphanumeric(t *tally, name string) {
	letters := hasLetter.MatchString(name)
	digits := hasDigit.MatchString(name)
	switch {
	case letters && digits:
		t.add(2, "Contains both letters and numbers")
	case !digits:
		t.add(-1, "Missing model numbers")
	}
}

func (s *Scorer) checkBrand(t *tally, name string) {
	switch {
	case catalog.HasKnownBrand(name):
		t.add(2, "Contains known brand name")
	case capitalizedWrd.MatchString(name):
		t.add(1, "Contains capitalized brand-like words")
	default:
		t.add(-1, "No identifiable brand")
	}
}

// checkGPU validates graphics card model numbers against the current generations
func (s *Scorer) checkGPU(t *tally, lower string) {
	if !gpuModel.MatchString(lower) {
		return
	}

	if m := nvidiaModel.FindStringSubmatch(lower); m != nil {
		n, _ := strconv.Atoi(m[1])
		if n >= s.policy.NvidiaCutoff {
			t.add(-3, fmt.Sprintf("Likely future/non-existent NVIDIA GPU model: %d", n))
		} else {
			t.add(2, "Valid NVIDIA GPU model number range")
		}
	}

	if m := arcModel.FindStringSubmatch(lower); m != nil {
		series := strings.ToUpper(m[1])
		switch {
		case series != "" && series != "A":
			t.add(-3, fmt.Sprintf("Likely non-existent Intel Arc series: %s-series", series))
		case series == "":
			t.add(-1, "Missing Intel Arc series letter (should be A-series)")
		default:
			n, _ := strconv.Atoi(m[2])
			if s.arcModels[n] {
				t.add(2, "Valid Intel Arc GPU model")
			} else {
				t.add(-2, fmt.Sprintf("Unusual Intel Arc model number: %d", n))
			}
		}
	}

	if m := amdModel.FindStringSubmatch(lower); m != nil {
		n, _ := strconv.Atoi(m[1])
		if n >= s.policy.AMDCutoff {
			t.add(-3, fmt.Sprintf("Likely future/non-existent AMD GPU model: %d", n))
		} else {
			t.add(2, "Valid AMD GPU model number range")
		}
	}

	if strings.Contains(lower, "gb") {
		t.add(1, "Includes memory specification")
	}
}

// checkSystem rewards complete systems and penalizes bare components
func (s *Scorer) checkSystem(t *tally, name string) {
	if catalog.HasSystemTerm(name) {
		t.add(2, "Contains system-level terms")
	}
	if catalog.HasPrebuiltBrand(name) {
		t.add(3, "Known prebuilt system brand")
	}

	signals := catalog.Components(name)
	if signals.BareGPU {
		t.add(-3, "Appears to be just a GPU, not a complete system")
	}
	if signals.BareComponent {
		t.add(-2, "Appears to be just a component, not a complete system")
	}
}

// checkContext looks for ownership language just before the name and
// recommendation language anywhere in the text
func (s *Scorer) checkContext(t *tally, name string, contextText string) {
	if contextText == "" {
		return
	}
	lower := strings.ToLower(contextText)

	if loc := indexFold(contextText, name); loc >= 0 {
		start := loc - ownershipLookback
		if start < 0 {
			start = 0
		}
		for start > 0 && !utf8.RuneStart(contextText[start]) {
			start--
		}
		preceding := strings.ToLower(contextText[start:loc])
		if containsAny(preceding, ownershipTerms) {
			t.add(3, "Product mentioned in ownership context")
		}
	}

	if containsAny(lower, recommendTerms) {
		t.add(1, "Product mentioned in recommendation context")
	}
}

// indexFold finds name in text ignoring case, returning a byte offset into text
func indexFold(text string, name string) int {
	if name == "" {
		return -1
	}
	loc := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(name)).FindStringIndex(text)
	if loc == nil {
		return -1
	}
	return loc[0]
}

func containsAny(s string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
