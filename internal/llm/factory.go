package llm

import (
	"fmt"
	"strings"

	"github.com/ppiankov/pickwise/internal/cache"
	"github.com/ppiankov/pickwise/internal/model"
	"github.com/ppiankov/pickwise/internal/worker"
)

// NewProvider creates a new LLM provider based on configuration.
// An empty provider name disables the model and returns nil.
func NewProvider(config Config) (Provider, error) {
	var (
		provider Provider
		err      error
	)

	switch strings.ToLower(config.Provider) {
	case "openai":
		provider, err = NewOpenAIProvider(config)

	case "anthropic", "claude":
		provider, err = NewAnthropicProvider(config)

	case "ollama":
		provider, err = NewOllamaProvider(config)

	case "", "none":
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: openai, anthropic, ollama)", config.Provider)
	}

	// Keep a failed constructor's typed nil out of the interface
	if err != nil {
		return nil, err
	}
	return provider, nil
}

// ConfigFromModel converts model.LLMConfig to llm.Config; zero timeouts
// and token limits keep the package defaults
func ConfigFromModel(llmConfig model.LLMConfig, httpConfig model.HTTPConfig) Config {
	config := DefaultConfig()
	config.Provider = llmConfig.Provider
	config.Model = llmConfig.Model
	config.APIKey = llmConfig.APIKey
	config.BaseURL = llmConfig.BaseURL
	if llmConfig.Timeout > 0 {
		config.Timeout = llmConfig.Timeout
	}
	if llmConfig.MaxTokens > 0 {
		config.MaxTokens = llmConfig.MaxTokens
	}
	config.HTTPProxy = httpConfig.HTTPProxy
	config.HTTPSProxy = httpConfig.HTTPSProxy
	config.NoProxy = httpConfig.NoProxy
	return config
}

// Build creates the configured provider wrapped with rate limiting and,
// when c is non-nil, response caching. The provider gets its own bucket
// in limiter, paced at cfg.LLM.RateLimit. Returns nil when no provider is configured.
func Build(cfg *model.Config, c cache.Cache, limiter *worker.Limiter) (Provider, error) {
	provider, err := NewProvider(ConfigFromModel(cfg.LLM, cfg.HTTP))
	if err != nil {
		return nil, fmt.Errorf("create LLM provider: %w", err)
	}
	if provider == nil {
		return nil, nil
	}

	if limiter != nil {
		rl := NewRateLimitedProvider(provider, limiter)
		if cfg.LLM.RateLimit > 0 {
			limiter.SetHostRate(rl.host(), cfg.LLM.RateLimit, 0)
		}
		provider = rl
	}
	if c != nil {
		provider = NewCachedProvider(provider, c, cfg.Cache.DiskTTL)
	}
	return provider, nil
}
