package source

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/ppiankov/pickwise/internal/model"
)

// ErrMissingAPIKey is returned when the YouTube source has no API key
var ErrMissingAPIKey = errors.New("youtube API key not configured")

const minDescriptionLength = 50

var comparisonTerms = []string{
	"best", "top", "vs", "comparison", "review", "ranked", "list", "guide",
	"worth buying", "buying guide",
}

// YouTubeSource retrieves review videos through the YouTube Data API v3
type YouTubeSource struct {
	fetcher *Fetcher
	cfg     model.YouTubeConfig
	now     func() time.Time
}

// NewYouTubeSource creates a YouTube evidence source
func NewYouTubeSource(fetcher *Fetcher, cfg model.YouTubeConfig) *YouTubeSource {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://www.googleapis.com/youtube/v3"
	}
	cfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = 5
	}
	return &YouTubeSource{fetcher: fetcher, cfg: cfg, now: time.Now}
}

type ytSearchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet struct {
			Title string `json:"title"`
		} `json:"snippet"`
	} `json:"items"`
}

type ytVideosResponse struct {
	Items []struct {
		ID      string `json:"id"`
		Snippet struct {
			Title       string `json:"title"`
			Description string `json:"description"`
		} `json:"snippet"`
		Statistics struct {
			ViewCount string `json:"viewCount"`
			LikeCount string `json:"likeCount"`
		} `json:"statistics"`
	} `json:"items"`
}

// Videos searches for recent review videos and returns those with enough engagement
func (s *YouTubeSource) Videos(ctx context.Context, req model.Request) ([]model.Video, error) {
	if s.cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	var search ytSearchResponse
	if err := s.fetcher.GetJSON(ctx, s.searchURL(req), &search); err != nil {
		return nil, fmt.Errorf("youtube search: %w", err)
	}

	var ids []string
	for _, item := range search.Items {
		title := html.UnescapeString(item.Snippet.Title)
		if item.ID.VideoID != "" && relevantTitle(title, req) {
			ids = append(ids, item.ID.VideoID)
		}
	}
	if len(ids) == 0 {
		zap.L().Info("no relevant youtube videos", zap.String("query", req.Product))
		return nil, nil
	}

	var details ytVideosResponse
	if err := s.fetcher.GetJSON(ctx, s.videosURL(ids), &details); err != nil {
		return nil, fmt.Errorf("youtube videos: %w", err)
	}

	type ranked struct {
		video model.Video
		ratio float64
	}
	var videos []ranked
	for _, item := range details.Items {
		views, _ := strconv.Atoi(item.Statistics.ViewCount)
		likes, _ := strconv.Atoi(item.Statistics.LikeCount)

		var ratio float64
		if views > 0 {
			ratio = float64(likes) / float64(views)
		}
		if views <= 1000 && likes <= 50 && ratio <= 0.01 {
			continue
		}

		title := html.UnescapeString(item.Snippet.Title)
		videos = append(videos, ranked{
			video: model.Video{
				Title:      title,
				URL:        "https://youtube.com/watch?v=" + item.ID,
				Transcript: transcript(item.Snippet.Description, title, req.Product),
				Views:      views,
				Likes:      likes,
			},
			ratio: ratio,
		})
	}

	sort.SliceStable(videos, func(i, j int) bool { return videos[i].ratio > videos[j].ratio })

	out := make([]model.Video, len(videos))
	for i, v := range videos {
		out[i] = v.video
	}
	zap.L().Info("youtube evidence gathered", zap.String("query", req.Product), zap.Int("videos", len(out)))
	return out, nil
}

func (s *YouTubeSource) searchURL(req model.Request) string {
	year := s.now().Year()
	terms := append([]string{"best", req.Product}, req.Attributes...)
	terms = append(terms, strconv.Itoa(year), "review", "comparison")

	q := url.Values{}
	q.Set("key", s.cfg.APIKey)
	q.Set("q", strings.Join(terms, " "))
	q.Set("part", "snippet")
	q.Set("type", "video")
	q.Set("maxResults", strconv.Itoa(s.cfg.MaxResults))
	q.Set("relevanceLanguage", "en")
	q.Set("order", "relevance")
	q.Set("publishedAfter", fmt.Sprintf("%d-01-01T00:00:00Z", year-1))
	return s.cfg.BaseURL + "/search?" + q.Encode()
}

func (s *YouTubeSource) videosURL(ids []string) string {
	q := url.Values{}
	q.Set("key", s.cfg.APIKey)
	q.Set("id", strings.Join(ids, ","))
	q.Set("part", "snippet,statistics")
	return s.cfg.BaseURL + "/videos?" + q.Encode()
}

// relevantTitle keeps comparison or review videos that mention the product or an attribute
func relevantTitle(title string, req model.Request) bool {
	lower := strings.ToLower(title)

	comparison := false
	for _, term := range comparisonTerms {
		if strings.Contains(lower, term) {
			comparison = true
			break
		}
	}
	if !comparison {
		return false
	}

	if strings.Contains(lower, strings.ToLower(req.Product)) {
		return true
	}
	if len(req.Attributes) == 0 {
		return true
	}
	for _, a := range req.Attributes {
		if strings.Contains(lower, strings.ToLower(a)) {
			return true
		}
	}
	return false
}

// transcript uses the video description as a stand-in for captions
func transcript(description, title, product string) string {
	description = strings.Join(strings.Fields(description), " ")
	if len([]rune(description)) > minDescriptionLength {
		return description
	}
	return fmt.Sprintf("This video discusses %s and provides reviews and comparisons based on its title: %s", product, title)
}
