package llm

import (
	"fmt"
	"strings"
)

const (
	extractSystem   = "You extract specific product model names from text and return them as a JSON array."
	sentimentSystem = "You analyze sentiment and return a score between 0 and 1."
	describeSystem  = "You are a product description writer who creates concise, informative descriptions."
)

// BuildExtractPrompt asks for the specific models named in text
func BuildExtractPrompt(text string) string {
	return fmt.Sprintf(`Given the following text, extract the names of specific product models mentioned (e.g., Dyson V15 Detect, iPhone 14, Sony WH-1000XM5).
Ignore vague mentions like 'Apple' or 'Dyson'.
Return only the product model names as a JSON array.

Text: %s`, text)
}

// BuildSentimentPrompt asks for a single score between 0 and 1
func BuildSentimentPrompt(text string) string {
	return fmt.Sprintf(`Analyze the sentiment of this text regarding a product. Score between 0 and 1:
0 = extremely negative
0.5 = neutral
1 = extremely positive

Return only a single number between 0 and 1.

Text: %s`, text)
}

// BuildDescribePrompt asks for a short recommendation blurb grounded in the raw excerpt
func BuildDescribePrompt(name, rawDescription, productType string, attributes []string) string {
	attrs := "high quality"
	if len(attributes) > 0 {
		attrs = strings.Join(attributes, ", ")
	}

	return fmt.Sprintf(`Create a concise but compelling product description for the %s, which is a %s.
The description should focus on why this product is recommended and highlight these key attributes: %s.

Use these user comments/reviews as context, but write a cohesive paragraph, not just quoting them:
"%s"

The description should be factual, professional, informative, and 2-3 sentences long.`, name, productType, attrs, rawDescription)
}
