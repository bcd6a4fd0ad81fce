// Package catalog holds the category lookup table used by extraction,
// validation and filtering. New categories are added by extending the table.
package catalog

import (
	"regexp"
	"strings"
)

// Rule selects the category-specific validity checks
type Rule int

const (
	RuleNone   Rule = iota // No category-specific checks
	RuleGPU                // Graphics card model plausibility
	RuleSystem             // Complete system vs bare component
)

func (r Rule) String() string {
	switch r {
	case RuleGPU:
		return "gpu"
	case RuleSystem:
		return "system"
	default:
		return "none"
	}
}

// Profile describes one product category
type Profile struct {
	Name     string
	Keywords []string         // Matched as substrings of the lowercased product type
	Patterns []*regexp.Regexp // Fallback extraction patterns, tried in order
	Rule     Rule
}

// Matches reports whether the product type names this category
func (p *Profile) Matches(productType string) bool {
	lower := strings.ToLower(productType)
	for _, kw := range p.Keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func ci(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		out[i] = regexp.MustCompile(`(?i)` + p)
	}
	return out
}

// profiles is ordered for pattern lookup: headphone precedes phone so
// "headphones" does not pick up smartphone patterns.
var profiles = []*Profile{
	{
		Name:     "headphone",
		Keywords: []string{"headphone", "earbud"},
		Patterns: ci(
			`Sony WH-\d+XM\d+`,
			`Bose QuietComfort \d+`,
			`Apple AirPods(?: Pro| Max)?`,
			`Sennheiser (?:HD|Momentum) \d+(?:[- ]\w+)*`,
			`Jabra Elite \d+[tT]?`,
			`Audio-Technica ATH-\w+`,
			`Beats(?: By Dre)? \w+(?:[- ]\w+)*`,
		),
	},
	{
		Name:     "phone",
		Keywords: []string{"phone", "smartphone"},
		Patterns: ci(
			`iPhone \d+(?:\s+Pro)?(?:\s+Max)?`,
			`Samsung Galaxy S\d+(?:\s+Ultra)?`,
			`Google Pixel \d+(?:\s+Pro)?`,
			`OnePlus \d+(?:\s+Pro)?`,
			`Xiaomi Mi \d+`,
			`Motorola \w+ \d+`,
		),
	},
	{
		Name:     "vacuum",
		Keywords: []string{"vacuum"},
		Patterns: ci(
			`Dyson V\d+(?:\s+\w+)?`,
			`Shark Navigator(?:\s+\w+)*`,
			`Miele Complete(?:\s+\w+)*`,
			`Bissell \w+(?:\s+\w+){0,3}`,
			`Hoover \w+(?:\s+\w+){0,3}`,
			`Tineco \w+(?:\s+\w+){0,3}`,
			`Eureka \w+(?:\s+\w+){0,3}`,
		),
	},
	{
		Name:     "laptop",
		Keywords: []string{"laptop", "notebook"},
		Patterns: ci(
			`MacBook (?:Air|Pro)(?: \d+)?(?:-inch)?`,
			`Dell XPS \d+`,
			`HP (?:Spectre|Envy|Pavilion|EliteBook) \w+(?:[- ]\w+)*`,
			`Lenovo (?:ThinkPad|Yoga|Legion|IdeaPad) \w+(?:[- ]\w+)*`,
			`ASUS (?:ZenBook|VivoBook|ROG|TUF) \w+(?:[- ]\w+)*`,
			`Acer (?:Aspire|Predator|Swift|Nitro) \w+(?:[- ]\w+)*`,
			`Microsoft Surface (?:Laptop|Book|Pro) \d+`,
		),
		Rule: RuleSystem,
	},
	{
		Name:     "monitor",
		Keywords: []string{"monitor"},
		Patterns: ci(
			`LG (?:UltraGear|UltraWide) \w+(?:[- ]\w+)*`,
			`Samsung (?:Odyssey|ViewFinity) \w+(?:[- ]\w+)*`,
			`ASUS (?:ROG|ProArt|TUF) \w+(?:[- ]\w+)*`,
			`Dell (?:Alienware|UltraSharp) \w+(?:[- ]\w+)*`,
			`BenQ \w+(?:[- ]\w+){0,3}`,
			`Acer (?:Predator|Nitro) \w+(?:[- ]\w+)*`,
			`MSI \w+(?:[- ]\w+){0,3}`,
			`ViewSonic \w+(?:[- ]\w+){0,3}`,
		),
	},
	{
		Name:     "gpu",
		Keywords: []string{"graphics", "gpu", "gaming"},
		Rule:     RuleGPU,
	},
	{
		Name:     "system",
		Keywords: []string{"computer", "pc", "desktop", "system"},
		Rule:     RuleSystem,
	},
}

// genericPattern is the brand + model shape used when no category patterns apply.
// It stays case-sensitive: the capital letters are the signal.
var genericPattern = regexp.MustCompile(`[A-Z][a-zA-Z0-9]+ [A-Z0-9][a-zA-Z0-9]+(?:[- ][A-Z0-9][a-zA-Z0-9]+){0,3}`)

// PatternsFor returns the extraction patterns for a product type:
// the first matching profile that carries patterns, else the generic pattern.
func PatternsFor(productType string) []*regexp.Regexp {
	for _, p := range profiles {
		if len(p.Patterns) > 0 && p.Matches(productType) {
			return p.Patterns
		}
	}
	return []*regexp.Regexp{genericPattern}
}

// ruleOrder ranks validity rules independently of pattern order, so a
// "gaming laptop" is validated as a graphics search, not a system search
var ruleOrder = []Rule{RuleGPU, RuleSystem}

// RuleFor returns the highest-ranked validity rule among the matching profiles
func RuleFor(productType string) Rule {
	for _, rule := range ruleOrder {
		for _, p := range profiles {
			if p.Rule == rule && p.Matches(productType) {
				return rule
			}
		}
	}
	return RuleNone
}

var systemCategoryTerms = []string{"computer", "pc", "desktop", "gaming pc", "laptop"}

// IsSystemCategory reports whether the product type asks for a complete system
func IsSystemCategory(productType string) bool {
	return containsAny(strings.ToLower(productType), systemCategoryTerms)
}

func containsAny(s string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
