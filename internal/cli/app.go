package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ppiankov/pickwise/internal/cache"
	"github.com/ppiankov/pickwise/internal/llm"
	"github.com/ppiankov/pickwise/internal/model"
	"github.com/ppiankov/pickwise/internal/pipeline"
	"github.com/ppiankov/pickwise/internal/source"
	"github.com/ppiankov/pickwise/internal/worker"
)

// registerDefaults makes every overridable key known to viper so that
// PICKWISE_* variables are picked up by Unmarshal
func registerDefaults() {
	d := model.DefaultConfig()

	viper.SetDefault("http.timeout", d.HTTP.Timeout)
	viper.SetDefault("http.user_agent", d.HTTP.UserAgent)
	viper.SetDefault("http.max_body_bytes", d.HTTP.MaxBodyBytes)
	viper.SetDefault("http.http_proxy", "")
	viper.SetDefault("http.https_proxy", "")
	viper.SetDefault("http.no_proxy", "")
	viper.SetDefault("http.respect_robots", d.HTTP.RespectRobots)

	viper.SetDefault("cache.enabled", d.Cache.Enabled)
	viper.SetDefault("cache.dir", d.Cache.Dir)
	viper.SetDefault("cache.memory_ttl", d.Cache.MemoryTTL)
	viper.SetDefault("cache.disk_ttl", d.Cache.DiskTTL)

	viper.SetDefault("concurrency.workers", d.Concurrency.Workers)
	viper.SetDefault("rate_limiting.requests_per_second", d.RateLimiting.RequestsPerSecond)
	viper.SetDefault("rate_limiting.burst_size", d.RateLimiting.BurstSize)

	viper.SetDefault("llm.provider", d.LLM.Provider)
	viper.SetDefault("llm.model", d.LLM.Model)
	viper.SetDefault("llm.api_key", "")
	viper.SetDefault("llm.base_url", "")
	viper.SetDefault("llm.timeout", d.LLM.Timeout)
	viper.SetDefault("llm.max_tokens", d.LLM.MaxTokens)
	viper.SetDefault("llm.rate_limit", d.LLM.RateLimit)

	viper.SetDefault("sources.reddit.enabled", d.Sources.Reddit.Enabled)
	viper.SetDefault("sources.youtube.enabled", d.Sources.YouTube.Enabled)
	viper.SetDefault("sources.youtube.api_key", "")

	viper.SetDefault("policy.stream_timeout", d.Policy.StreamTimeout)
}

// loadConfig merges defaults, the config file, PICKWISE_* variables and
// bound flags, then fills API keys from their conventional variables
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if viper.IsSet("policy.arc_models") {
		cfg.Policy.ArcModels = viper.GetIntSlice("policy.arc_models")
	}
	applyEnvKeys(cfg)
	return cfg, nil
}

func applyEnvKeys(cfg *model.Config) {
	if cfg.LLM.APIKey == "" {
		switch strings.ToLower(cfg.LLM.Provider) {
		case "openai":
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		case "anthropic", "claude":
			cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		}
	}
	if strings.EqualFold(cfg.LLM.Provider, "ollama") && cfg.LLM.BaseURL == "" {
		cfg.LLM.BaseURL = os.Getenv("OLLAMA_BASE_URL")
	}
	if cfg.Sources.YouTube.APIKey == "" {
		cfg.Sources.YouTube.APIKey = os.Getenv("YOUTUBE_API_KEY")
	}
}

// buildPipeline wires capabilities and evidence sources. With evidencePath
// set, both streams are served from that file instead of the network.
func buildPipeline(cfg *model.Config, evidencePath string) (*pipeline.Pipeline, error) {
	limiter := worker.NewLimiter(cfg.RateLimiting.RequestsPerSecond, cfg.RateLimiting.BurstSize)

	provider, err := llm.Build(cfg, cache.New(cfg.Cache), limiter)
	if err != nil {
		return nil, err
	}

	var caps pipeline.Capabilities
	if provider != nil {
		caps = llm.NewCapabilities(provider)
		zap.L().Info("language model enabled", zap.String("provider", provider.Name()))
	}

	var (
		forum pipeline.ForumSource
		video pipeline.VideoSource
	)
	if evidencePath != "" {
		fs, err := source.LoadFile(evidencePath)
		if err != nil {
			return nil, err
		}
		forum, video = fs, fs
	} else {
		fetcher := source.NewFetcher(cfg.HTTP, limiter)
		if cfg.Sources.Reddit.Enabled {
			forum = source.NewRedditSource(fetcher, cfg.Sources.Reddit)
		}
		if cfg.Sources.YouTube.Enabled {
			if cfg.Sources.YouTube.APIKey == "" {
				zap.L().Warn("YOUTUBE_API_KEY not set, video stream disabled")
			} else {
				video = source.NewYouTubeSource(fetcher, cfg.Sources.YouTube)
			}
		}
	}

	return pipeline.NewPipeline(cfg.Policy, caps, forum, video), nil
}

// writeOutput writes to path, or to stdout when path is empty or "-"
func writeOutput(path string, write func(io.Writer) error) (err error) {
	if path == "" || path == "-" {
		return write(os.Stdout)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, closeErr)
		}
	}()
	return write(f)
}
