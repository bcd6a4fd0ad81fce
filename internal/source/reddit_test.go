package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ppiankov/pickwise/internal/model"
)

const redditSearchJSON = `{
  "kind": "Listing",
  "data": {"children": [
    {"kind": "t3", "data": {"title": "Best headphones?", "permalink": "/r/headphones/comments/abc/best_headphones/"}},
    {"kind": "t3", "data": {"title": "External link", "permalink": "/r/headphones/wiki/"}},
    {"kind": "t5", "data": {"title": "A subreddit"}}
  ]}
}`

const redditThreadJSON = `[
  {"kind": "Listing", "data": {"children": [{"kind": "t3", "data": {"title": "Best headphones?"}}]}},
  {"kind": "Listing", "data": {"children": [
    {"kind": "t1", "data": {
      "body": "I bought the Sony WH-1000XM5 and love it",
      "body_html": "&lt;div class=\"md\"&gt;&lt;p&gt;I bought the Sony WH-1000XM5 and love it&lt;/p&gt;&lt;/div&gt;",
      "ups": 40,
      "permalink": "/r/headphones/comments/abc/best_headphones/c1/",
      "replies": {"kind": "Listing", "data": {"children": [
        {"kind": "t1", "data": {"body": "The Bose QC45 is great for travel too", "ups": 60, "replies": ""}},
        {"kind": "more", "data": {}}
      ]}}
    }},
    {"kind": "t1", "data": {"body": "lol same", "ups": 100, "replies": ""}},
    {"kind": "more", "data": {}}
  ]}}
]`

func TestRedditSource_Threads(t *testing.T) {
	var searchQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/search.json":
			searchQuery = r.URL.Query().Get("q")
			_, _ = w.Write([]byte(redditSearchJSON))
		case "/r/headphones/comments/abc/best_headphones/.json":
			_, _ = w.Write([]byte(redditThreadJSON))
		default:
			t.Errorf("unexpected request %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	src := NewRedditSource(testFetcher(false), model.RedditConfig{BaseURL: server.URL + "/"})
	threads, err := src.Threads(context.Background(), model.Request{Product: "headphones", Attributes: []string{"wireless"}})
	if err != nil {
		t.Fatalf("Threads failed: %v", err)
	}

	if searchQuery != "headphones wireless recommendation" {
		t.Errorf("unexpected search query %q", searchQuery)
	}
	if len(threads) != 1 {
		t.Fatalf("expected 1 thread, got %d", len(threads))
	}

	th := threads[0]
	if th.Title != "Best headphones?" {
		t.Errorf("unexpected title %q", th.Title)
	}
	if th.URL != server.URL+"/r/headphones/comments/abc/best_headphones/" {
		t.Errorf("unexpected thread URL %q", th.URL)
	}
	if len(th.Comments) != 2 {
		t.Fatalf("expected 2 comments, got %d: %+v", len(th.Comments), th.Comments)
	}

	// Sorted by upvotes; the short comment is dropped
	if !strings.Contains(th.Comments[0].Text, "Bose QC45") || th.Comments[0].Upvotes != 60 {
		t.Errorf("unexpected first comment %+v", th.Comments[0])
	}
	if th.Comments[1].Text != "I bought the Sony WH-1000XM5 and love it" {
		t.Errorf("expected HTML body to be flattened, got %q", th.Comments[1].Text)
	}
	if th.Comments[1].SourceURL != server.URL+"/r/headphones/comments/abc/best_headphones/c1/" {
		t.Errorf("unexpected comment permalink %q", th.Comments[1].SourceURL)
	}
	if th.Comments[0].SourceURL != "" {
		t.Errorf("reply without permalink should use the thread URL, got %q", th.Comments[0].SourceURL)
	}
}

func TestRedditSource_CommentCap(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/search.json" {
			_, _ = w.Write([]byte(redditSearchJSON))
			return
		}
		_, _ = w.Write([]byte(redditThreadJSON))
	}))
	defer server.Close()

	src := NewRedditSource(testFetcher(false), model.RedditConfig{BaseURL: server.URL, CommentsPerThread: 1})
	threads, err := src.Threads(context.Background(), model.Request{Product: "headphones"})
	if err != nil {
		t.Fatalf("Threads failed: %v", err)
	}
	if len(threads) != 1 || len(threads[0].Comments) != 1 {
		t.Fatalf("expected one thread with one comment, got %+v", threads)
	}
	if threads[0].Comments[0].Upvotes != 60 {
		t.Errorf("expected the top comment to survive the cap, got %+v", threads[0].Comments[0])
	}
}

func TestRedditSource_SearchFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	src := NewRedditSource(testFetcher(false), model.RedditConfig{BaseURL: server.URL})
	if _, err := src.Threads(context.Background(), model.Request{Product: "headphones"}); err == nil {
		t.Error("expected search failure to surface")
	}
}

func TestReplies(t *testing.T) {
	if got := replies([]byte(`""`)); got != nil {
		t.Errorf("expected nil for empty string, got %v", got)
	}
	if got := replies(nil); got != nil {
		t.Errorf("expected nil for missing field, got %v", got)
	}
	got := replies([]byte(`{"kind":"Listing","data":{"children":[{"kind":"t1","data":{"body":"x"}}]}}`))
	if len(got) != 1 || got[0].Data.Body != "x" {
		t.Errorf("unexpected replies %+v", got)
	}
}
