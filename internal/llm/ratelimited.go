package llm

import (
	"context"
	"fmt"

	"github.com/ppiankov/pickwise/internal/worker"
)

// RateLimitedProvider spaces out calls to the wrapped provider
type RateLimitedProvider struct {
	inner   Provider
	limiter *worker.Limiter
	key     string
}

// NewRateLimitedProvider throttles inner through limiter, one bucket per provider name
func NewRateLimitedProvider(inner Provider, limiter *worker.Limiter) *RateLimitedProvider {
	return &RateLimitedProvider{
		inner:   inner,
		limiter: limiter,
		key:     "llm://" + inner.Name(),
	}
}

func (p *RateLimitedProvider) host() string {
	return p.inner.Name()
}

// Name returns the wrapped provider name
func (p *RateLimitedProvider) Name() string {
	return p.inner.Name()
}

// IsAvailable delegates to the wrapped provider
func (p *RateLimitedProvider) IsAvailable(ctx context.Context) bool {
	return p.inner.IsAvailable(ctx)
}

// Complete waits for limiter clearance, then calls the wrapped provider
func (p *RateLimitedProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	if err := p.limiter.Wait(ctx, p.key); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}
	return p.inner.Complete(ctx, req)
}
