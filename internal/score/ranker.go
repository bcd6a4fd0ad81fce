package score

import (
	"math"
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/ppiankov/pickwise/internal/model"
)

const (
	longNameLength = 8 // names longer than this earn the forum length bonus
	titleBonus     = 3.0
)

var nonAlnum = regexp.MustCompile(`[^\p{L}\p{N}]`)

// Ranker computes composite rank scores, deduplicates and orders mentions
type Ranker struct {
	policy model.Policy
}

// NewRanker creates a ranker with the given policy
func NewRanker(policy model.Policy) *Ranker {
	return &Ranker{policy: policy}
}

// Rank scores every mention for the given stream kind, keeps the best
// mention per normalized name and returns them sorted best first.
// The input slice is not modified.
func (r *Ranker) Rank(kind model.SourceKind, mentions []model.Mention) []model.Mention {
	scored := make([]model.Mention, len(mentions))
	copy(scored, mentions)

	for i := range scored {
		m := &scored[i]
		if kind == model.SourceVideo {
			m.RankScore = r.videoScore(*m)
		} else {
			m.RankScore = r.forumScore(*m)
		}
		zap.L().Debug("ranked mention",
			zap.String("stream", string(kind)),
			zap.String("product", m.Product),
			zap.Float64("rank_score", m.RankScore),
			zap.Int("validity", m.ValidityScore))
	}

	deduped := Dedupe(scored)
	SortMentions(kind, deduped)
	return deduped
}

// forumScore weighs sentiment, upvotes and validity
func (r *Ranker) forumScore(m model.Mention) float64 {
	score := m.Sentiment*5 +
		math.Min(5, float64(m.Engagement.Upvotes)/10) +
		r.validityPoints(m.ValidityScore) +
		queryTermBonus(m)

	if utf8.RuneCountInString(m.Product) > longNameLength {
		score++
	}
	return score
}

// videoScore weighs sentiment, likes, views, validity and title presence
func (r *Ranker) videoScore(m model.Mention) float64 {
	score := m.Sentiment*3 +
		math.Min(3, float64(m.Engagement.Likes)/100) +
		math.Min(4, float64(m.Engagement.Views)/10000) +
		r.validityPoints(m.ValidityScore) +
		queryTermBonus(m)

	if m.Title != "" && strings.Contains(strings.ToLower(m.Title), strings.ToLower(m.Product)) {
		score += titleBonus
	}
	return score
}

func (r *Ranker) validityPoints(validity int) float64 {
	clamped := validity
	if clamped < 0 {
		clamped = 0
	}
	if clamped > r.policy.ValidityCap {
		clamped = r.policy.ValidityCap
	}
	return r.policy.ValidityWeight * float64(clamped)
}

// queryTermBonus adds a point for the product type and each attribute found in the name
func queryTermBonus(m model.Mention) float64 {
	name := strings.ToLower(m.Product)
	req := model.Request{Product: m.ProductType, Attributes: m.Attributes}

	var bonus float64
	for _, term := range req.QueryTerms() {
		if term != "" && strings.Contains(name, term) {
			bonus++
		}
	}
	return bonus
}

// NormalizeName reduces a product name to its dedup key: accents folded,
// everything but letters and digits stripped, case folded
func NormalizeName(name string) string {
	// Transformers and casers carry state; build them per call
	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if folded, _, err := transform.String(stripMarks, name); err == nil {
		name = folded
	}
	return cases.Fold().String(nonAlnum.ReplaceAllString(name, ""))
}

// Dedupe keeps the highest-scoring mention per normalized name.
// Ties keep the first mention seen; keys stay in first-seen order.
func Dedupe(mentions []model.Mention) []model.Mention {
	index := make(map[string]int, len(mentions))
	var out []model.Mention

	for _, m := range mentions {
		key := NormalizeName(m.Product)
		if i, ok := index[key]; ok {
			if m.RankScore > out[i].RankScore {
				out[i] = m
			}
			continue
		}
		index[key] = len(out)
		out = append(out, m)
	}
	return out
}

// SortMentions orders mentions best first. Forum mentions break rank ties
// by sentiment and then upvotes; video mentions use the rank score alone.
func SortMentions(kind model.SourceKind, mentions []model.Mention) {
	sort.SliceStable(mentions, func(i, j int) bool {
		a, b := mentions[i], mentions[j]
		if a.RankScore != b.RankScore || kind == model.SourceVideo {
			return a.RankScore > b.RankScore
		}
		if a.Sentiment != b.Sentiment {
			return a.Sentiment > b.Sentiment
		}
		return a.Engagement.Upvotes > b.Engagement.Upvotes
	})
}
