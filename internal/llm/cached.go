package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/ppiankov/pickwise/internal/cache"
)

// CachedProvider answers repeated prompts from a cache
type CachedProvider struct {
	inner Provider
	cache cache.Cache
	ttl   time.Duration
}

// NewCachedProvider wraps inner with cache lookups keyed by the full request
func NewCachedProvider(inner Provider, c cache.Cache, ttl time.Duration) *CachedProvider {
	return &CachedProvider{inner: inner, cache: c, ttl: ttl}
}

// Name returns the wrapped provider name
func (p *CachedProvider) Name() string {
	return p.inner.Name()
}

// IsAvailable delegates to the wrapped provider
func (p *CachedProvider) IsAvailable(ctx context.Context) bool {
	return p.inner.IsAvailable(ctx)
}

// Complete returns a cached response when one exists, otherwise asks the
// wrapped provider and stores the answer. Errors are never cached.
func (p *CachedProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	key := cache.CacheKey(p.inner.Name(), req.Model, req.System, req.Prompt,
		strconv.Itoa(req.MaxTokens), strconv.FormatFloat(req.Temperature, 'f', -1, 64))

	if data, ok := p.cache.Get(key); ok {
		var resp CompletionResponse
		if err := json.Unmarshal(data, &resp); err == nil {
			return &resp, nil
		}
		_ = p.cache.Delete(key)
	}

	resp, err := p.inner.Complete(ctx, req)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(resp)
	if err != nil {
		return nil, fmt.Errorf("marshal response: %w", err)
	}
	if err := p.cache.Set(key, data, p.ttl); err != nil {
		zap.L().Debug("cache write failed", zap.Error(err))
	}
	return resp, nil
}
