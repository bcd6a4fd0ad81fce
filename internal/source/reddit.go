package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/ppiankov/pickwise/internal/extract"
	"github.com/ppiankov/pickwise/internal/model"
)

const minCommentLength = 20

// RedditSource retrieves discussion threads through Reddit's public JSON endpoints
type RedditSource struct {
	fetcher *Fetcher
	cfg     model.RedditConfig
}

// NewRedditSource creates a Reddit evidence source
func NewRedditSource(fetcher *Fetcher, cfg model.RedditConfig) *RedditSource {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://www.reddit.com"
	}
	cfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	if cfg.MaxThreads <= 0 {
		cfg.MaxThreads = 3
	}
	if cfg.CommentsPerThread <= 0 {
		cfg.CommentsPerThread = 5
	}
	return &RedditSource{fetcher: fetcher, cfg: cfg}
}

// Listing wire types, reduced to the fields used here
type redditListing struct {
	Kind string `json:"kind"`
	Data struct {
		Children []redditThing `json:"children"`
	} `json:"data"`
}

type redditThing struct {
	Kind string     `json:"kind"`
	Data redditData `json:"data"`
}

type redditData struct {
	Title     string `json:"title"`
	Permalink string `json:"permalink"`
	Body      string `json:"body"`
	BodyHTML  string `json:"body_html"`
	Ups       int    `json:"ups"`
	// Replies is an empty string when there are none, a listing otherwise
	Replies json.RawMessage `json:"replies"`
}

// Threads searches for recommendation threads and collects their relevant comments
func (s *RedditSource) Threads(ctx context.Context, req model.Request) ([]model.ForumThread, error) {
	searchURL := s.searchURL(req)

	var search redditListing
	if err := s.fetcher.GetJSON(ctx, searchURL, &search); err != nil {
		return nil, fmt.Errorf("reddit search: %w", err)
	}

	var threads []model.ForumThread
	for _, child := range search.Data.Children {
		if len(threads) >= s.cfg.MaxThreads {
			break
		}
		if child.Kind != "t3" || !strings.Contains(child.Data.Permalink, "/comments/") {
			continue
		}

		thread, err := s.thread(ctx, child.Data)
		if err != nil {
			zap.L().Warn("skipping reddit thread", zap.String("permalink", child.Data.Permalink), zap.Error(err))
			continue
		}
		if len(thread.Comments) > 0 {
			threads = append(threads, thread)
		}
	}

	zap.L().Info("reddit evidence gathered", zap.String("query", req.Product), zap.Int("threads", len(threads)))
	return threads, nil
}

func (s *RedditSource) searchURL(req model.Request) string {
	terms := append([]string{req.Product}, req.Attributes...)
	terms = append(terms, "recommendation")

	q := url.Values{}
	q.Set("q", strings.Join(terms, " "))
	q.Set("sort", "relevance")
	q.Set("type", "link")
	q.Set("limit", fmt.Sprintf("%d", s.cfg.MaxThreads*3))
	return s.cfg.BaseURL + "/search.json?" + q.Encode()
}

func (s *RedditSource) permalinkURL(permalink string) string {
	if !strings.HasPrefix(permalink, "/") {
		permalink = "/" + permalink
	}
	return s.cfg.BaseURL + permalink
}

// thread fetches one thread and keeps its most upvoted product-related comments
func (s *RedditSource) thread(ctx context.Context, post redditData) (model.ForumThread, error) {
	threadURL := s.permalinkURL(post.Permalink)
	jsonURL := strings.TrimSuffix(threadURL, "/") + "/.json"

	// [0] is the post, [1] the comment tree
	var listings []redditListing
	if err := s.fetcher.GetJSON(ctx, jsonURL, &listings); err != nil {
		return model.ForumThread{}, err
	}

	thread := model.ForumThread{Title: post.Title, URL: threadURL}
	if len(listings) < 2 {
		return thread, nil
	}

	var comments []model.Comment
	for _, c := range listings[1].Data.Children {
		if c.Kind != "t1" {
			continue
		}
		comments = s.appendComment(comments, c.Data, threadURL)

		// First-level replies only
		for _, r := range replies(c.Data.Replies) {
			if r.Kind == "t1" {
				comments = s.appendComment(comments, r.Data, threadURL)
			}
		}
	}

	sort.SliceStable(comments, func(i, j int) bool {
		return comments[i].Upvotes > comments[j].Upvotes
	})
	if len(comments) > s.cfg.CommentsPerThread {
		comments = comments[:s.cfg.CommentsPerThread]
	}
	thread.Comments = comments
	return thread, nil
}

func (s *RedditSource) appendComment(comments []model.Comment, d redditData, threadURL string) []model.Comment {
	text := HTMLToText(d.BodyHTML)
	if text == "" {
		text = strings.TrimSpace(d.Body)
	}
	if len([]rune(text)) < minCommentLength || !extract.HasProductContext(text) {
		return comments
	}

	c := model.Comment{Text: text, Upvotes: d.Ups}
	if d.Permalink != "" {
		if link := s.permalinkURL(d.Permalink); link != threadURL {
			c.SourceURL = link
		}
	}
	return append(comments, c)
}

// replies decodes the loosely typed "replies" field
func replies(raw json.RawMessage) []redditThing {
	if len(raw) == 0 || raw[0] != '{' {
		return nil
	}
	var listing redditListing
	if err := json.Unmarshal(raw, &listing); err != nil {
		return nil
	}
	return listing.Data.Children
}
