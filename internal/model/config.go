package model

import "time"

// Config is the complete runtime configuration
type Config struct {
	HTTP         HTTPConfig         `yaml:"http" mapstructure:"http"`
	Cache        CacheConfig        `yaml:"cache" mapstructure:"cache"`
	Concurrency  ConcurrencyConfig  `yaml:"concurrency" mapstructure:"concurrency"`
	RateLimiting RateLimitingConfig `yaml:"rate_limiting" mapstructure:"rate_limiting"`
	LLM          LLMConfig          `yaml:"llm" mapstructure:"llm"`
	Sources      SourcesConfig      `yaml:"sources" mapstructure:"sources"`
	Policy       Policy             `yaml:"policy" mapstructure:"policy"`
	Output       OutputConfig       `yaml:"output" mapstructure:"output"`
}

// HTTPConfig controls outbound requests made by evidence sources
type HTTPConfig struct {
	Timeout       time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent     string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes  int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	HTTPProxy     string        `yaml:"http_proxy,omitempty" mapstructure:"http_proxy"`
	HTTPSProxy    string        `yaml:"https_proxy,omitempty" mapstructure:"https_proxy"`
	NoProxy       string        `yaml:"no_proxy,omitempty" mapstructure:"no_proxy"`
	RespectRobots bool          `yaml:"respect_robots" mapstructure:"respect_robots"`
}

// CacheConfig controls caching of capability responses
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir" mapstructure:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// ConcurrencyConfig controls batch parallelism
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// RateLimitingConfig controls per-host request pacing
type RateLimitingConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	BurstSize         int     `yaml:"burst_size" mapstructure:"burst_size"`
}

// LLMConfig configures the optional language-model capabilities
type LLMConfig struct {
	Provider  string  `yaml:"provider" mapstructure:"provider"` // openai, anthropic, ollama, "" (disabled)
	Model     string  `yaml:"model" mapstructure:"model"`
	APIKey    string  `yaml:"-" mapstructure:"api_key"`
	BaseURL   string  `yaml:"base_url,omitempty" mapstructure:"base_url"`
	Timeout   int     `yaml:"timeout" mapstructure:"timeout"` // seconds
	MaxTokens int     `yaml:"max_tokens" mapstructure:"max_tokens"`
	RateLimit float64 `yaml:"rate_limit" mapstructure:"rate_limit"` // requests per second to the provider
}

// SourcesConfig configures the evidence collaborators
type SourcesConfig struct {
	Reddit  RedditConfig  `yaml:"reddit" mapstructure:"reddit"`
	YouTube YouTubeConfig `yaml:"youtube" mapstructure:"youtube"`
}

// RedditConfig configures forum evidence retrieval
type RedditConfig struct {
	Enabled           bool   `yaml:"enabled" mapstructure:"enabled"`
	BaseURL           string `yaml:"base_url" mapstructure:"base_url"`
	MaxThreads        int    `yaml:"max_threads" mapstructure:"max_threads"`
	CommentsPerThread int    `yaml:"comments_per_thread" mapstructure:"comments_per_thread"`
}

// YouTubeConfig configures video evidence retrieval
type YouTubeConfig struct {
	Enabled    bool   `yaml:"enabled" mapstructure:"enabled"`
	APIKey     string `yaml:"-" mapstructure:"api_key"`
	BaseURL    string `yaml:"base_url" mapstructure:"base_url"`
	MaxResults int    `yaml:"max_results" mapstructure:"max_results"`
}

// OutputConfig controls rendering
type OutputConfig struct {
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`
}

// Policy holds the tunable thresholds of the ranking model
type Policy struct {
	ValidThreshold   int           `yaml:"valid_threshold" mapstructure:"valid_threshold"`       // isValid and filter preference bar
	RejectBelow      int           `yaml:"reject_below" mapstructure:"reject_below"`             // validity below this never becomes a mention
	ValidityCap      int           `yaml:"validity_cap" mapstructure:"validity_cap"`             // clamp(validity, 0, cap) in rank score
	ValidityWeight   float64       `yaml:"validity_weight" mapstructure:"validity_weight"`       // multiplier on the clamped validity
	MaxSources       int           `yaml:"max_sources" mapstructure:"max_sources"`               // unique URLs per recommendation
	SourceScanWindow int           `yaml:"source_scan_window" mapstructure:"source_scan_window"` // mentions after the winner scanned for sources
	MinNameLength    int           `yaml:"min_name_length" mapstructure:"min_name_length"`
	NvidiaCutoff     int           `yaml:"nvidia_cutoff" mapstructure:"nvidia_cutoff"` // first implausible RTX/GTX model number
	AMDCutoff        int           `yaml:"amd_cutoff" mapstructure:"amd_cutoff"`       // first implausible Radeon RX model number
	ArcModels        []int         `yaml:"arc_models" mapstructure:"arc_models"`       // known Intel Arc A-series numbers
	BuyLinkTemplate  string        `yaml:"buy_link_template" mapstructure:"buy_link_template"`
	ImageURLTemplate string        `yaml:"image_url_template" mapstructure:"image_url_template"`
	ForumDefaultURL  string        `yaml:"forum_default_url" mapstructure:"forum_default_url"`
	VideoDefaultURL  string        `yaml:"video_default_url" mapstructure:"video_default_url"`
	StreamTimeout    time.Duration `yaml:"stream_timeout" mapstructure:"stream_timeout"`
}

// DefaultPolicy returns the calibrated ranking thresholds
func DefaultPolicy() Policy {
	return Policy{
		ValidThreshold:   3,
		RejectBelow:      0,
		ValidityCap:      5,
		ValidityWeight:   2,
		MaxSources:       3,
		SourceScanWindow: 4,
		MinNameLength:    3,
		NvidiaCutoff:     5000,
		AMDCutoff:        8000,
		ArcModels:        []int{770, 750, 580, 380, 350, 325, 310},
		BuyLinkTemplate:  "https://www.amazon.com/s?k=%s",
		ImageURLTemplate: "https://placehold.co/400x400/f5f5f5/333?text=%s",
		ForumDefaultURL:  "https://www.reddit.com",
		VideoDefaultURL:  "https://www.youtube.com",
		StreamTimeout:    30 * time.Second,
	}
}

// DefaultSourceURL returns the fallback source link for a stream
func (p Policy) DefaultSourceURL(kind SourceKind) string {
	if kind == SourceVideo {
		return p.VideoDefaultURL
	}
	return p.ForumDefaultURL
}

// DefaultConfig returns the configuration used when nothing is overridden
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:       15 * time.Second,
			UserAgent:     "Pickwise/0.1 (+https://github.com/ppiankov/pickwise)",
			MaxBodyBytes:  5_000_000,
			RespectRobots: true,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       ".pickwise-cache",
			MemoryTTL: time.Hour,
			DiskTTL:   7 * 24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		RateLimiting: RateLimitingConfig{
			RequestsPerSecond: 1,
			BurstSize:         2,
		},
		LLM: LLMConfig{
			Provider:  "",
			Model:     "",
			Timeout:   30,
			MaxTokens: 300,
			RateLimit: 5,
		},
		Sources: SourcesConfig{
			Reddit: RedditConfig{
				Enabled:           true,
				BaseURL:           "https://www.reddit.com",
				MaxThreads:        3,
				CommentsPerThread: 5,
			},
			YouTube: YouTubeConfig{
				Enabled:    true,
				BaseURL:    "https://www.googleapis.com/youtube/v3",
				MaxResults: 5,
			},
		},
		Policy: DefaultPolicy(),
		Output: OutputConfig{
			Verbose: false,
		},
	}
}
