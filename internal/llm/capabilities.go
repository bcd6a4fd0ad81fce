package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	jsonArray   = regexp.MustCompile(`(?s)\[.*\]`)
	firstNumber = regexp.MustCompile(`\d+\.\d+|\d+`)
)

// Capabilities exposes model extraction, sentiment and description
// synthesis on top of a Provider. A nil provider makes every call
// return ErrUnavailable.
type Capabilities struct {
	provider Provider
}

// NewCapabilities creates the capability layer; provider may be nil
func NewCapabilities(provider Provider) *Capabilities {
	return &Capabilities{provider: provider}
}

// Enabled reports whether a provider is configured
func (c *Capabilities) Enabled() bool {
	return c != nil && c.provider != nil
}

// ProviderName returns the configured provider name, or "none"
func (c *Capabilities) ProviderName() string {
	if !c.Enabled() {
		return "none"
	}
	return c.provider.Name()
}

func (c *Capabilities) complete(ctx context.Context, req CompletionRequest) (string, error) {
	if !c.Enabled() {
		return "", ErrUnavailable
	}
	resp, err := c.provider.Complete(ctx, req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return resp.Text, nil
}

// ExtractModels returns the product model names the model finds in text
func (c *Capabilities) ExtractModels(ctx context.Context, text string) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return []string{}, nil
	}

	out, err := c.complete(ctx, CompletionRequest{
		System: extractSystem,
		Prompt: BuildExtractPrompt(text),
	})
	if err != nil {
		return nil, err
	}

	names, ok := ParseModelList(out)
	if !ok {
		return nil, fmt.Errorf("%w: no model list in response", ErrUnavailable)
	}
	return names, nil
}

// Sentiment returns a score in [0,1] for text
func (c *Capabilities) Sentiment(ctx context.Context, text string) (float64, error) {
	out, err := c.complete(ctx, CompletionRequest{
		System: sentimentSystem,
		Prompt: BuildSentimentPrompt(text),
	})
	if err != nil {
		return 0, err
	}

	score, ok := ParseScore(out)
	if !ok {
		return 0, fmt.Errorf("%w: no score in response %q", ErrUnavailable, out)
	}
	return score, nil
}

// Describe rewrites a raw excerpt into a short product description
func (c *Capabilities) Describe(ctx context.Context, name, rawDescription, productType string, attributes []string) (string, error) {
	out, err := c.complete(ctx, CompletionRequest{
		System:      describeSystem,
		Prompt:      BuildDescribePrompt(name, rawDescription, productType, attributes),
		MaxTokens:   150,
		Temperature: 0.7,
	})
	if err != nil {
		return "", err
	}

	out = strings.TrimSpace(out)
	if out == "" {
		return "", fmt.Errorf("%w: empty description", ErrUnavailable)
	}
	return out, nil
}

// ParseModelList reads a JSON array of names from a model reply. It accepts
// bare JSON, JSON embedded in prose, and loosely quoted bracket lists.
func ParseModelList(content string) ([]string, bool) {
	content = strings.TrimSpace(content)

	var names []string
	if err := json.Unmarshal([]byte(content), &names); err == nil {
		return names, true
	}

	if m := jsonArray.FindString(content); m != "" {
		if err := json.Unmarshal([]byte(m), &names); err == nil {
			return names, true
		}
	}

	open := strings.Index(content, "[")
	if open < 0 {
		return nil, false
	}
	end := strings.Index(content[open:], "]")
	if end < 0 {
		return nil, false
	}

	names = []string{}
	for _, item := range strings.Split(content[open+1:open+end], ",") {
		item = strings.Trim(strings.TrimSpace(item), `"'`)
		if item != "" {
			names = append(names, item)
		}
	}
	return names, true
}

// ParseScore reads the first number in a reply and clamps it to [0,1]
func ParseScore(content string) (float64, bool) {
	m := firstNumber.FindString(content)
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	switch {
	case v < 0:
		return 0, true
	case v > 1:
		return 1, true
	}
	return v, true
}
