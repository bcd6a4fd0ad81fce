package pipeline

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/ppiankov/pickwise/internal/extract"
	"github.com/ppiankov/pickwise/internal/model"
	"github.com/ppiankov/pickwise/internal/validate"
)

// MentionBuilder turns text units into validated mentions
type MentionBuilder struct {
	extractor *extract.CandidateExtractor
	validity  *validate.Scorer
	sentiment *extract.SentimentScorer
	policy    model.Policy
}

// NewMentionBuilder creates a builder; nlp and sentiment may be nil
func NewMentionBuilder(nlp extract.ModelExtractor, sentiment extract.SentimentAnalyzer, policy model.Policy) *MentionBuilder {
	return &MentionBuilder{
		extractor: extract.NewCandidateExtractor(nlp),
		validity:  validate.NewScorer(policy),
		sentiment: extract.NewSentimentScorer(sentiment),
		policy:    policy,
	}
}

// Build extracts candidates from the unit and keeps those that pass the validity floor
func (b *MentionBuilder) Build(ctx context.Context, unit model.TextUnit, kind model.SourceKind, req model.Request) []model.Mention {
	names := b.extractor.Extract(ctx, unit.Text, req.Product)
	return b.build(ctx, unit, kind, req, names)
}

func (b *MentionBuilder) build(ctx context.Context, unit model.TextUnit, kind model.SourceKind, req model.Request, names []string) []model.Mention {
	var (
		mentions  []model.Mention
		sentiment float64
		scored    bool
	)

	for _, name := range names {
		v := b.validity.Score(name, unit.Text, req.Product)
		if v.Score < b.policy.RejectBelow {
			zap.L().Debug("rejected candidate",
				zap.String("candidate", name),
				zap.Int("validity", v.Score),
				zap.Strings("reasons", v.Reasons))
			continue
		}

		// One sentiment call per unit, shared by its mentions
		if !scored {
			sentiment = b.sentiment.Score(ctx, unit.Text)
			scored = true
		}

		m := model.Mention{
			Product:        name,
			Engagement:     unit.Engagement,
			Sentiment:      sentiment,
			Source:         unit.OriginURL,
			Description:    extract.Excerpt(unit.Text, name, req.Attributes),
			ValidityScore:  v.Score,
			ValidityReason: strings.Join(v.Reasons, "; "),
			ProductType:    req.Product,
			Attributes:     append([]string{}, req.Attributes...),
		}
		if kind == model.SourceVideo {
			m.Title = unit.Title
		}
		mentions = append(mentions, m)
	}
	return mentions
}

// SecondaryPass runs the single-model pattern extraction over units and
// adds names not already present, compared case-insensitively
func (b *MentionBuilder) SecondaryPass(ctx context.Context, units []model.TextUnit, kind model.SourceKind, req model.Request, mentions []model.Mention) []model.Mention {
	seen := make(map[string]bool, len(mentions))
	for _, m := range mentions {
		seen[strings.ToLower(m.Product)] = true
	}

	for _, u := range units {
		names := extract.FallbackCandidates(u.Text, req.Product)
		if len(names) == 0 || seen[strings.ToLower(names[0])] {
			continue
		}
		added := b.build(ctx, u, kind, req, names[:1])
		for _, m := range added {
			seen[strings.ToLower(m.Product)] = true
		}
		mentions = append(mentions, added...)
	}
	return mentions
}
