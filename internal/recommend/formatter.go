package recommend

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/ppiankov/pickwise/internal/model"
)

var unsafeNameChars = regexp.MustCompile(`[^\p{L}\p{N}\s-]`)

// Describer synthesizes a recommendation blurb; implementations return an
// error when the capability is unavailable
type Describer interface {
	Describe(ctx context.Context, name, rawDescription, productType string, attributes []string) (string, error)
}

// Formatter turns the ranked, filtered mentions of one stream into a Recommendation
type Formatter struct {
	describer Describer // nil when no capability is configured
	policy    model.Policy
}

// NewFormatter creates a formatter; describer may be nil
func NewFormatter(describer Describer, policy model.Policy) *Formatter {
	return &Formatter{describer: describer, policy: policy}
}

// Format picks the first mention as the winner. It returns nil when there
// are no mentions or the winner's name does not survive sanitizing.
func (f *Formatter) Format(ctx context.Context, kind model.SourceKind, mentions []model.Mention) *model.Recommendation {
	if len(mentions) == 0 {
		return nil
	}

	winner := mentions[0]
	name := Sanitize(winner.Product)
	if len([]rune(name)) < f.policy.MinNameLength {
		zap.L().Debug("winner name too short after sanitizing",
			zap.String("stream", string(kind)), zap.String("product", winner.Product))
		return nil
	}

	description := f.describe(ctx, name, winner)

	rec := &model.Recommendation{
		Product:       name,
		Description:   description,
		Sources:       f.sources(kind, mentions),
		BuyLink:       fillTemplate(f.policy.BuyLinkTemplate, name),
		ImageURL:      fillTemplate(f.policy.ImageURLTemplate, name),
		ValidityScore: winner.ValidityScore,
		Attributes:    append([]string{}, winner.Attributes...),
	}

	zap.L().Info("recommendation selected",
		zap.String("stream", string(kind)),
		zap.String("product", rec.Product),
		zap.Float64("rank_score", winner.RankScore),
		zap.Int("validity", winner.ValidityScore))
	return rec
}

func (f *Formatter) describe(ctx context.Context, name string, winner model.Mention) string {
	if f.describer == nil {
		return winner.Description
	}

	text, err := f.describer.Describe(ctx, name, winner.Description, winner.ProductType, DeriveAttributes(winner))
	if err != nil || strings.TrimSpace(text) == "" {
		zap.L().Warn("description capability unavailable, using excerpt", zap.String("product", name), zap.Error(err))
		return winner.Description
	}
	return strings.TrimSpace(text)
}

// sources collects unique origin URLs from the winner and the mentions right after it
func (f *Formatter) sources(kind model.SourceKind, mentions []model.Mention) []string {
	out := make([]string, 0, f.policy.MaxSources)
	seen := make(map[string]bool)

	add := func(url string) {
		if url == "" || seen[url] || len(out) >= f.policy.MaxSources {
			return
		}
		seen[url] = true
		out = append(out, url)
	}

	add(mentions[0].Source)
	end := 1 + f.policy.SourceScanWindow
	if end > len(mentions) {
		end = len(mentions)
	}
	for _, m := range mentions[1:end] {
		add(m.Source)
	}

	if len(out) == 0 {
		out = append(out, f.policy.DefaultSourceURL(kind))
	}
	return out
}

// Sanitize keeps letters, digits, whitespace and hyphens, then collapses whitespace
func Sanitize(name string) string {
	name = unsafeNameChars.ReplaceAllString(name, "")
	return strings.Join(strings.Fields(name), " ")
}

// DeriveAttributes treats every word of a multi-word product type after the
// first as an implied attribute, followed by the mention's explicit attributes
func DeriveAttributes(m model.Mention) []string {
	var attrs []string
	if words := strings.Fields(m.ProductType); len(words) > 1 {
		attrs = append(attrs, words[1:]...)
	}
	return append(attrs, m.Attributes...)
}

func fillTemplate(template, name string) string {
	if template == "" {
		return ""
	}
	return fmt.Sprintf(template, strings.ReplaceAll(name, " ", "+"))
}
