package extract

import (
	"regexp"
	"strings"
)

var productContextTerms = []string{
	// ownership
	"bought", "purchased", "own", "owned", "got", "received", "acquired",
	"using", "use", "used", "tried", "tested", "had",
	// recommendation
	"recommend", "recommendation", "suggested", "suggest", "pick", "choice",
	"go with", "go for", "consider", "check out", "look at",
	// review and quality
	"review", "quality", "experience", "performance", "rating",
	"excellent", "amazing", "fantastic", "great", "good", "decent",
	"poor", "terrible", "bad", "worst", "disappointing",
	// product
	"model", "brand", "version", "product", "make", "manufacturer",
	// value
	"expensive", "cheap", "price", "affordable", "worth", "value",
	"cost", "overpriced", "deal", "budget", "premium",
	// features
	"feature", "functionality", "battery", "specs", "specifications",
	"interface", "design", "build", "durability", "reliable", "works",
}

var modelLikePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\w+\s+\d+`),
	regexp.MustCompile(`model\s+[a-z0-9]+`),
	regexp.MustCompile(`the\s+[a-z0-9]+`),
}

// HasProductContext reports whether a comment plausibly talks about a
// product: a whole-word review or ownership term, or a model-like phrase.
func HasProductContext(text string) bool {
	lower := strings.ToLower(text)
	padded := " " + lower + " "
	for _, term := range productContextTerms {
		if strings.Contains(padded, " "+term+" ") {
			return true
		}
	}
	for _, re := range modelLikePatterns {
		if re.MatchString(lower) {
			return true
		}
	}
	return false
}
