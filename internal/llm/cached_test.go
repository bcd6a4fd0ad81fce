package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ppiankov/pickwise/internal/cache"
	"github.com/ppiankov/pickwise/internal/model"
	"github.com/ppiankov/pickwise/internal/worker"
)

func TestCachedProvider_ReusesResponses(t *testing.T) {
	mock := &MockProvider{name: "mock", response: "0.9"}
	p := NewCachedProvider(mock, cache.NewMemoryCache(time.Minute, time.Minute), time.Minute)

	req := CompletionRequest{System: sentimentSystem, Prompt: BuildSentimentPrompt("great")}
	for i := 0; i < 3; i++ {
		resp, err := p.Complete(context.Background(), req)
		if err != nil {
			t.Fatalf("Complete failed: %v", err)
		}
		if resp.Text != "0.9" {
			t.Errorf("unexpected text %q", resp.Text)
		}
	}

	if mock.calls != 1 {
		t.Errorf("expected 1 provider call, got %d", mock.calls)
	}

	if _, err := p.Complete(context.Background(), CompletionRequest{Prompt: "other"}); err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if mock.calls != 2 {
		t.Errorf("different prompt should miss the cache, got %d calls", mock.calls)
	}
}

func TestCachedProvider_DoesNotCacheErrors(t *testing.T) {
	mock := &MockProvider{name: "mock", err: errors.New("down")}
	p := NewCachedProvider(mock, cache.NewMemoryCache(time.Minute, time.Minute), time.Minute)

	for i := 0; i < 2; i++ {
		if _, err := p.Complete(context.Background(), CompletionRequest{Prompt: "x"}); err == nil {
			t.Fatal("expected error")
		}
	}
	if mock.calls != 2 {
		t.Errorf("expected 2 provider calls, got %d", mock.calls)
	}
}

func TestRateLimitedProvider_CancelledContext(t *testing.T) {
	mock := &MockProvider{name: "mock", response: "ok"}
	p := NewRateLimitedProvider(mock, worker.NewLimiter(0.001, 1))

	if _, err := p.Complete(context.Background(), CompletionRequest{Prompt: "first"}); err != nil {
		t.Fatalf("first call should pass the burst: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := p.Complete(ctx, CompletionRequest{Prompt: "second"}); err == nil {
		t.Error("expected rate limit wait to fail")
	}
	if mock.calls != 1 {
		t.Errorf("expected 1 provider call, got %d", mock.calls)
	}
}

func TestNewProvider(t *testing.T) {
	tests := []struct {
		name     string
		config   Config
		wantName string
		wantNil  bool
		wantErr  bool
	}{
		{"disabled", Config{}, "", true, false},
		{"none", Config{Provider: "none"}, "", true, false},
		{"openai", Config{Provider: "OpenAI", APIKey: "k"}, "openai", false, false},
		{"claude alias", Config{Provider: "claude", APIKey: "k"}, "anthropic", false, false},
		{"ollama", Config{Provider: "ollama", Model: "mistral"}, "ollama", false, false},
		{"openai without key", Config{Provider: "openai"}, "", true, true},
		{"unknown", Config{Provider: "gemini"}, "", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProvider(tt.config)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantNil {
				if p != nil && !tt.wantErr {
					t.Errorf("expected nil provider, got %s", p.Name())
				}
				return
			}
			if p.Name() != tt.wantName {
				t.Errorf("Name = %s, want %s", p.Name(), tt.wantName)
			}
		})
	}
}

func TestBuild(t *testing.T) {
	cfg := model.DefaultConfig()
	p, err := Build(cfg, nil, nil)
	if err != nil || p != nil {
		t.Fatalf("disabled provider: got %v, %v", p, err)
	}

	cfg.LLM.Provider = "ollama"
	cfg.LLM.Model = "mistral"
	p, err = Build(cfg, cache.NewMemoryCache(time.Minute, time.Minute), worker.NewLimiter(1, 1))
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if _, ok := p.(*CachedProvider); !ok {
		t.Errorf("expected cached provider on the outside, got %T", p)
	}
	if p.Name() != "ollama" {
		t.Errorf("Name = %s, want ollama", p.Name())
	}

	cfg.LLM.Provider = "gemini"
	if _, err := Build(cfg, nil, nil); err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestConfigFromModel(t *testing.T) {
	cfg := ConfigFromModel(model.LLMConfig{Provider: "openai", APIKey: "sk"}, model.HTTPConfig{HTTPSProxy: "http://proxy:3128"})
	if cfg.Timeout != 30 || cfg.MaxTokens != 300 {
		t.Errorf("expected package defaults for zero values, got timeout=%d max_tokens=%d", cfg.Timeout, cfg.MaxTokens)
	}
	if cfg.Provider != "openai" || cfg.APIKey != "sk" || cfg.HTTPSProxy != "http://proxy:3128" {
		t.Errorf("fields not copied: %+v", cfg)
	}

	cfg = ConfigFromModel(model.LLMConfig{Timeout: 5, MaxTokens: 50}, model.HTTPConfig{})
	if cfg.Timeout != 5 || cfg.MaxTokens != 50 {
		t.Errorf("expected overrides, got timeout=%d max_tokens=%d", cfg.Timeout, cfg.MaxTokens)
	}
}
