package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ppiankov/pickwise/internal/extract"
	"github.com/ppiankov/pickwise/internal/model"
	"github.com/ppiankov/pickwise/internal/recommend"
	"github.com/ppiankov/pickwise/internal/score"
)

// ForumSource retrieves discussion threads for a request
type ForumSource interface {
	Threads(ctx context.Context, req model.Request) ([]model.ForumThread, error)
}

// VideoSource retrieves review videos for a request
type VideoSource interface {
	Videos(ctx context.Context, req model.Request) ([]model.Video, error)
}

// Capabilities groups the optional language-model capabilities
type Capabilities interface {
	extract.ModelExtractor
	extract.SentimentAnalyzer
	recommend.Describer
}

// minForumMentions triggers the forum secondary pass when fewer mentions were found
const minForumMentions = 2

// Pipeline turns evidence for a request into at most one recommendation per stream
type Pipeline struct {
	forum     ForumSource
	video     VideoSource
	builder   *MentionBuilder
	ranker    *score.Ranker
	filter    *score.CategoryFilter
	formatter *recommend.Formatter
	policy    model.Policy
}

// NewPipeline creates a pipeline. caps, forum and video may each be nil:
// without capabilities every step uses its deterministic fallback, and a
// missing source contributes empty evidence.
func NewPipeline(policy model.Policy, caps Capabilities, forum ForumSource, video VideoSource) *Pipeline {
	var (
		nlp       extract.ModelExtractor
		sentiment extract.SentimentAnalyzer
		describer recommend.Describer
	)
	if caps != nil {
		nlp, sentiment, describer = caps, caps, caps
	}

	return &Pipeline{
		forum:     forum,
		video:     video,
		builder:   NewMentionBuilder(nlp, sentiment, policy),
		ranker:    score.NewRanker(policy),
		filter:    score.NewCategoryFilter(policy),
		formatter: recommend.NewFormatter(describer, policy),
		policy:    policy,
	}
}

// Recommend gathers evidence from both sources and runs the pipeline on it
func (p *Pipeline) Recommend(ctx context.Context, req model.Request) (*model.Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return p.Run(ctx, req, p.Gather(ctx, req))
}

// Gather fetches both streams in parallel, each under the stream timeout.
// A failing stream is logged and contributes no evidence.
func (p *Pipeline) Gather(ctx context.Context, req model.Request) model.Evidence {
	var (
		ev model.Evidence
		g  errgroup.Group
	)

	if p.forum != nil {
		g.Go(func() error {
			sctx, cancel := p.streamContext(ctx)
			defer cancel()

			threads, err := p.forum.Threads(sctx, req)
			if err != nil {
				zap.L().Warn("forum evidence unavailable", zap.String("product", req.Product), zap.Error(err))
				return nil
			}
			ev.Threads = threads
			return nil
		})
	}

	if p.video != nil {
		g.Go(func() error {
			sctx, cancel := p.streamContext(ctx)
			defer cancel()

			videos, err := p.video.Videos(sctx, req)
			if err != nil {
				zap.L().Warn("video evidence unavailable", zap.String("product", req.Product), zap.Error(err))
				return nil
			}
			ev.Videos = videos
			return nil
		})
	}

	_ = g.Wait()
	return ev
}

func (p *Pipeline) streamContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if p.policy.StreamTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, p.policy.StreamTimeout)
}

// Run processes already gathered evidence. The two streams share nothing
// and are processed concurrently.
func (p *Pipeline) Run(ctx context.Context, req model.Request, ev model.Evidence) (*model.Result, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}

	result := &model.Result{}
	var g errgroup.Group

	g.Go(func() error {
		mentions := p.ForumMentions(ctx, req, ev.Threads)
		result.Forum = p.selectWinner(ctx, model.SourceForum, req, mentions)
		return nil
	})
	g.Go(func() error {
		mentions := p.VideoMentions(ctx, req, ev.Videos)
		result.Video = p.selectWinner(ctx, model.SourceVideo, req, mentions)
		return nil
	})

	_ = g.Wait()

	if result.Empty() {
		zap.L().Info("no results found", zap.String("product", req.Product))
	}
	return result, nil
}

// ForumMentions builds mentions from every comment, thread by thread.
// While fewer than two mentions exist, each thread also gets the
// single-model pattern pass.
func (p *Pipeline) ForumMentions(ctx context.Context, req model.Request, threads []model.ForumThread) []model.Mention {
	var mentions []model.Mention
	for _, th := range threads {
		units := th.TextUnits()
		for _, u := range units {
			mentions = append(mentions, p.builder.Build(ctx, u, model.SourceForum, req)...)
		}
		if len(mentions) < minForumMentions {
			mentions = p.builder.SecondaryPass(ctx, units, model.SourceForum, req, mentions)
		}
	}
	return mentions
}

// VideoMentions builds mentions from every video transcript
func (p *Pipeline) VideoMentions(ctx context.Context, req model.Request, videos []model.Video) []model.Mention {
	var mentions []model.Mention
	for _, v := range videos {
		mentions = append(mentions, p.builder.Build(ctx, v.TextUnit(), model.SourceVideo, req)...)
	}
	return mentions
}

// selectWinner ranks, filters and formats one stream
func (p *Pipeline) selectWinner(ctx context.Context, kind model.SourceKind, req model.Request, mentions []model.Mention) *model.Recommendation {
	if len(mentions) == 0 {
		return nil
	}
	ranked := p.ranker.Rank(kind, mentions)
	selected := p.filter.Apply(ranked, req.Product)
	return p.formatter.Format(ctx, kind, selected)
}
