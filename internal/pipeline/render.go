package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/ppiankov/pickwise/internal/model"
)

// Renderer writes results as JSON or Markdown
type Renderer struct{}

// NewRenderer creates a renderer
func NewRenderer() *Renderer {
	return &Renderer{}
}

// RenderJSON writes the result in the API response shape
func (r *Renderer) RenderJSON(w io.Writer, result *model.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return nil
}

// RenderMarkdown writes a human-readable summary of both streams
func (r *Renderer) RenderMarkdown(w io.Writer, req model.Request, result *model.Result) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# Recommendations: %s\n\n", req.Product)
	if len(req.Attributes) > 0 {
		fmt.Fprintf(&b, "**Wanted:** %s\n\n", strings.Join(req.Attributes, ", "))
	}

	if result == nil || result.Empty() {
		b.WriteString("No results found.\n")
	} else {
		writeRecommendation(&b, "Reddit pick", result.Forum)
		writeRecommendation(&b, "YouTube pick", result.Video)
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}
	return nil
}

func writeRecommendation(b *strings.Builder, heading string, rec *model.Recommendation) {
	fmt.Fprintf(b, "## %s\n\n", heading)
	if rec == nil {
		b.WriteString("_No qualifying product._\n\n")
		return
	}

	fmt.Fprintf(b, "### %s\n\n", rec.Product)
	if rec.Description != "" {
		fmt.Fprintf(b, "%s\n\n", rec.Description)
	}
	fmt.Fprintf(b, "- Validity score: %d\n", rec.ValidityScore)
	if len(rec.Attributes) > 0 {
		fmt.Fprintf(b, "- Attributes: %s\n", strings.Join(rec.Attributes, ", "))
	}
	fmt.Fprintf(b, "- [Buy](%s)\n", rec.BuyLink)
	b.WriteString("- Sources:\n")
	for _, s := range rec.Sources {
		fmt.Fprintf(b, "  - %s\n", s)
	}
	b.WriteString("\n")
}

// RenderSummary prints a short line per stream
func (r *Renderer) RenderSummary(w io.Writer, req model.Request, result *model.Result) {
	if result == nil || result.Empty() {
		fmt.Fprintf(w, "No results found for %q\n", req.Product)
		return
	}
	for _, s := range []struct {
		label string
		rec   *model.Recommendation
	}{
		{"reddit", result.Forum},
		{"youtube", result.Video},
	} {
		if s.rec == nil {
			fmt.Fprintf(w, "%-8s -\n", s.label)
			continue
		}
		fmt.Fprintf(w, "%-8s %s (validity %d)\n", s.label, s.rec.Product, s.rec.ValidityScore)
	}
}
