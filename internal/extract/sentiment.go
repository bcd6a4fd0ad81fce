package extract

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// SentimentAnalyzer is an external capability scoring text sentiment in [0,1]
type SentimentAnalyzer interface {
	Sentiment(ctx context.Context, text string) (float64, error)
}

// NeutralSentiment is used for empty text or text without sentiment terms
const NeutralSentiment = 0.5

var positiveTerms = []string{
	"good", "great", "excellent", "best", "love", "recommend", "amazing", "fantastic",
	"worth", "quality", "reliable", "impressive", "perfect", "awesome", "satisfied",
}

var negativeTerms = []string{
	"bad", "poor", "terrible", "worst", "hate", "avoid", "disappointing", "broken",
	"waste", "regret", "awful", "horrible", "useless", "failed", "cheap", "overpriced",
}

// SentimentScorer asks the capability and falls back to keyword counting
type SentimentScorer struct {
	analyzer SentimentAnalyzer // nil when no capability is configured
}

// NewSentimentScorer creates a scorer; analyzer may be nil
func NewSentimentScorer(analyzer SentimentAnalyzer) *SentimentScorer {
	return &SentimentScorer{analyzer: analyzer}
}

// Score returns a sentiment value in [0,1]
func (s *SentimentScorer) Score(ctx context.Context, text string) float64 {
	if strings.TrimSpace(text) == "" {
		return NeutralSentiment
	}
	if s.analyzer != nil {
		v, err := s.analyzer.Sentiment(ctx, text)
		if err == nil {
			return clamp01(v)
		}
		zap.L().Debug("sentiment capability unavailable, using keywords", zap.Error(err))
	}
	return BasicSentiment(text)
}

// BasicSentiment is positiveHits / (positiveHits + negativeHits), where each
// term counts once no matter how often it occurs.
func BasicSentiment(text string) float64 {
	lower := strings.ToLower(text)

	positive := 0
	for _, term := range positiveTerms {
		if strings.Contains(lower, term) {
			positive++
		}
	}
	negative := 0
	for _, term := range negativeTerms {
		if strings.Contains(lower, term) {
			negative++
		}
	}

	if positive+negative == 0 {
		return NeutralSentiment
	}
	return float64(positive) / float64(positive+negative)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
