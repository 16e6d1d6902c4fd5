package model

import "time"

// Config is the complete veridoc configuration tree
type Config struct {
	LLM         LLMConfig         `yaml:"llm" mapstructure:"llm"`
	Search      SearchConfig      `yaml:"search" mapstructure:"search"`
	Extract     ExtractConfig     `yaml:"extract" mapstructure:"extract"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Validation  ValidationConfig  `yaml:"validation" mapstructure:"validation"`
	HTTP        HTTPConfig        `yaml:"http" mapstructure:"http"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
}

// LLMConfig configures the model provider used for claim extraction and verdict synthesis
type LLMConfig struct {
	Provider    string        `yaml:"provider" mapstructure:"provider"` // openai, anthropic, ollama
	Model       string        `yaml:"model" mapstructure:"model"`
	APIKey      string        `yaml:"-" mapstructure:"-"` // From environment only, never persisted
	BaseURL     string        `yaml:"base_url,omitempty" mapstructure:"base_url"`
	Timeout     time.Duration `yaml:"timeout" mapstructure:"timeout"` // Per model call
	MaxTokens   int           `yaml:"max_tokens" mapstructure:"max_tokens"`
	Temperature float32       `yaml:"temperature" mapstructure:"temperature"`
}

// SearchConfig configures the web search provider used for evidence retrieval
type SearchConfig struct {
	Provider   string        `yaml:"provider" mapstructure:"provider"` // tavily, brave, serper
	APIKey     string        `yaml:"-" mapstructure:"-"`               // From environment only
	MaxResults int           `yaml:"max_results" mapstructure:"max_results"`
	Timeout    time.Duration `yaml:"timeout" mapstructure:"timeout"`       // Per search call
	RateLimit  float64       `yaml:"rate_limit" mapstructure:"rate_limit"` // Requests/sec per provider host
	RateBurst  int           `yaml:"rate_burst" mapstructure:"rate_burst"`
}

// ExtractConfig bounds text and claim extraction
type ExtractConfig struct {
	MaxClaims    int           `yaml:"max_claims" mapstructure:"max_claims"`         // Cap on extracted claims per document
	MaxTextBytes int           `yaml:"max_text_bytes" mapstructure:"max_text_bytes"` // Cap on document text sent to the model
	Timeout      time.Duration `yaml:"timeout" mapstructure:"timeout"`               // Claim extraction call
}

// ConcurrencyConfig bounds per-claim verification parallelism
type ConcurrencyConfig struct {
	VerifyWorkers int `yaml:"verify_workers" mapstructure:"verify_workers"` // 1 = sequential reference model
}

// CacheConfig configures search response caching
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir,omitempty" mapstructure:"dir"` // Non-empty enables the disk layer
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// ValidationConfig configures the optional evidence link accessibility check
type ValidationConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	Workers int           `yaml:"workers" mapstructure:"workers"`
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// HTTPConfig holds shared HTTP client settings
type HTTPConfig struct {
	UserAgent  string `yaml:"user_agent" mapstructure:"user_agent"`
	HTTPProxy  string `yaml:"http_proxy,omitempty" mapstructure:"http_proxy"`
	HTTPSProxy string `yaml:"https_proxy,omitempty" mapstructure:"https_proxy"`
	NoProxy    string `yaml:"no_proxy,omitempty" mapstructure:"no_proxy"`
}

// OutputConfig controls rendering
type OutputConfig struct {
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider:    "openai",
			Model:       "", // Provider default
			Timeout:     60 * time.Second,
			MaxTokens:   2000,
			Temperature: 0, // Deterministic as the model allows; claim sets still vary between runs
		},
		Search: SearchConfig{
			Provider:   "tavily",
			MaxResults: 5,
			Timeout:    20 * time.Second,
			RateLimit:  2,
			RateBurst:  5,
		},
		Extract: ExtractConfig{
			MaxClaims:    25,
			MaxTextBytes: 200_000,
			Timeout:      90 * time.Second,
		},
		Concurrency: ConcurrencyConfig{
			VerifyWorkers: 4,
		},
		Cache: CacheConfig{
			Enabled:   true,
			MemoryTTL: 15 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Validation: ValidationConfig{
			Enabled: false,
			Workers: 10,
			Timeout: 10 * time.Second,
		},
		HTTP: HTTPConfig{
			UserAgent: "Veridoc/0.1 (+https://github.com/veridoc/veridoc)",
		},
	}
}
