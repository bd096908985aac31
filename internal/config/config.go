// Package config assembles the service configuration.
//
// Values are layered: built-in defaults, then an optional YAML file named by
// CONFIG_FILE, then environment variables. API keys and the Redis password
// are read from the environment only and never from the file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"docsummarizer/internal/infra/summarizer"
	"docsummarizer/internal/observability/logging"
	envconfig "docsummarizer/pkg/config"
)

// Session store backends.
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the complete service configuration.
type Config struct {
	Version    string           `yaml:"version"`
	HTTP       HTTPConfig       `yaml:"http"`
	Log        LogConfig        `yaml:"log"`
	Summarizer SummarizerConfig `yaml:"summarizer"`
	Session    SessionConfig    `yaml:"session"`
	Upload     UploadConfig     `yaml:"upload"`
	Security   SecurityConfig   `yaml:"security"`
	Tracing    TracingConfig    `yaml:"tracing"`
}

// HTTPConfig configures the listener.
type HTTPConfig struct {
	Addr              string        `yaml:"addr"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout"`
}

// LogConfig configures the process logger.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// SummarizerConfig selects and tunes the summarization provider.
type SummarizerConfig struct {
	Provider  string        `yaml:"provider"`
	Model     string        `yaml:"model"`
	BaseURL   string        `yaml:"base_url"`
	MaxTokens int           `yaml:"max_tokens"`
	Timeout   time.Duration `yaml:"timeout"`

	// RatePerMinute bounds summary requests per session; 0 disables the limit.
	RatePerMinute int `yaml:"rate_per_minute"`

	GoogleAPIKey    string `yaml:"-"`
	AnthropicAPIKey string `yaml:"-"`
	OpenAIAPIKey    string `yaml:"-"`
}

// SessionConfig selects the session store.
type SessionConfig struct {
	Store           string        `yaml:"store"`
	TTL             time.Duration `yaml:"ttl"`
	CleanupInterval time.Duration `yaml:"cleanup_interval"`
	CookieSecure    bool          `yaml:"cookie_secure"`
	RedisAddr       string        `yaml:"redis_addr"`
	RedisDB         int           `yaml:"redis_db"`
	RedisPassword   string        `yaml:"-"`
}

// UploadConfig bounds uploaded files.
type UploadConfig struct {
	MaxBytes int64 `yaml:"max_bytes"`
}

// SecurityConfig toggles the Content-Security-Policy header.
type SecurityConfig struct {
	CSPEnabled    bool `yaml:"csp_enabled"`
	CSPReportOnly bool `yaml:"csp_report_only"`
}

// TracingConfig toggles OpenTelemetry span sampling.
type TracingConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Version: "dev",
		HTTP: HTTPConfig{
			Addr:              ":8080",
			ReadHeaderTimeout: 10 * time.Second,
			ShutdownTimeout:   10 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: string(logging.FormatJSON),
		},
		Summarizer: SummarizerConfig{
			Provider: summarizer.ProviderGemini,
		},
		Session: SessionConfig{
			Store:           StoreMemory,
			TTL:             24 * time.Hour,
			CleanupInterval: 10 * time.Minute,
			RedisAddr:       "localhost:6379",
		},
		Upload: UploadConfig{
			MaxBytes: 20 << 20,
		},
		Security: SecurityConfig{
			CSPEnabled: true,
		},
	}
}

// Load builds the configuration from defaults, CONFIG_FILE and the environment.
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// mergeFile overlays the YAML document at path. Keys absent from the file
// keep their current values.
func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Version = envconfig.GetEnvString("APP_VERSION", c.Version)

	c.HTTP.Addr = envconfig.GetEnvString("HTTP_ADDR", c.HTTP.Addr)
	c.HTTP.ShutdownTimeout = envconfig.GetEnvDuration("HTTP_SHUTDOWN_TIMEOUT", c.HTTP.ShutdownTimeout)

	c.Log.Level = envconfig.GetEnvString("LOG_LEVEL", c.Log.Level)
	c.Log.Format = envconfig.GetEnvString("LOG_FORMAT", c.Log.Format)

	s := &c.Summarizer
	s.Provider = envconfig.GetEnvString("SUMMARIZER_PROVIDER", s.Provider)
	s.Model = envconfig.GetEnvString("SUMMARIZER_MODEL", s.Model)
	if s.Provider == summarizer.ProviderGemini {
		s.Model = envconfig.GetEnvString("GEMINI_MODEL", s.Model)
	}
	s.BaseURL = envconfig.GetEnvString("SUMMARIZER_BASE_URL", s.BaseURL)
	s.MaxTokens = envconfig.GetEnvInt("SUMMARIZER_MAX_TOKENS", s.MaxTokens)
	s.Timeout = envconfig.GetEnvDuration("SUMMARIZER_TIMEOUT", s.Timeout)
	s.RatePerMinute = envconfig.GetEnvInt("SUMMARIZE_RATE_PER_MIN", s.RatePerMinute)
	s.GoogleAPIKey = envconfig.GetEnvString("GOOGLE_API_KEY", s.GoogleAPIKey)
	s.AnthropicAPIKey = envconfig.GetEnvString("ANTHROPIC_API_KEY", s.AnthropicAPIKey)
	s.OpenAIAPIKey = envconfig.GetEnvString("OPENAI_API_KEY", s.OpenAIAPIKey)

	c.Session.Store = envconfig.GetEnvString("SESSION_STORE", c.Session.Store)
	c.Session.TTL = envconfig.GetEnvDuration("SESSION_TTL", c.Session.TTL)
	c.Session.CookieSecure = envconfig.GetEnvBool("SESSION_COOKIE_SECURE", c.Session.CookieSecure)
	c.Session.RedisAddr = envconfig.GetEnvString("REDIS_ADDR", c.Session.RedisAddr)
	c.Session.RedisDB = envconfig.GetEnvInt("REDIS_DB", c.Session.RedisDB)
	c.Session.RedisPassword = envconfig.GetEnvString("REDIS_PASSWORD", c.Session.RedisPassword)

	c.Upload.MaxBytes = envconfig.GetEnvInt64("UPLOAD_MAX_BYTES", c.Upload.MaxBytes)

	c.Security.CSPEnabled = envconfig.GetEnvBool("CSP_ENABLED", c.Security.CSPEnabled)
	c.Security.CSPReportOnly = envconfig.GetEnvBool("CSP_REPORT_ONLY", c.Security.CSPReportOnly)

	c.Tracing.Enabled = envconfig.GetEnvBool("TRACING_ENABLED", c.Tracing.Enabled)
}

// Validate reports the first invalid setting, wrapped in ErrInvalidConfig.
func (c *Config) Validate() error {
	if c.HTTP.Addr == "" {
		return fmt.Errorf("%w: HTTP_ADDR cannot be empty", ErrInvalidConfig)
	}
	if err := envconfig.ValidatePositiveDuration(c.HTTP.ShutdownTimeout); err != nil {
		return fmt.Errorf("%w: HTTP_SHUTDOWN_TIMEOUT: %w", ErrInvalidConfig, err)
	}
	if err := envconfig.ValidatePositiveDuration(c.HTTP.ReadHeaderTimeout); err != nil {
		return fmt.Errorf("%w: http.read_header_timeout: %w", ErrInvalidConfig, err)
	}
	switch logging.Format(c.Log.Format) {
	case logging.FormatJSON, logging.FormatText:
	default:
		return fmt.Errorf("%w: LOG_FORMAT must be json or text, got %q", ErrInvalidConfig, c.Log.Format)
	}

	if err := c.SummarizerSettings().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Summarizer.RatePerMinute < 0 {
		return fmt.Errorf("%w: SUMMARIZE_RATE_PER_MIN cannot be negative", ErrInvalidConfig)
	}

	switch c.Session.Store {
	case StoreMemory:
	case StoreRedis:
		if c.Session.RedisAddr == "" {
			return fmt.Errorf("%w: REDIS_ADDR is required for the redis session store", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: SESSION_STORE must be memory or redis, got %q", ErrInvalidConfig, c.Session.Store)
	}
	if err := envconfig.ValidatePositiveDuration(c.Session.TTL); err != nil {
		return fmt.Errorf("%w: SESSION_TTL: %w", ErrInvalidConfig, err)
	}
	if err := envconfig.ValidatePositiveDuration(c.Session.CleanupInterval); err != nil {
		return fmt.Errorf("%w: session.cleanup_interval: %w", ErrInvalidConfig, err)
	}

	if c.Upload.MaxBytes <= 0 {
		return fmt.Errorf("%w: UPLOAD_MAX_BYTES must be positive", ErrInvalidConfig)
	}
	return nil
}

// SummarizerSettings converts the summarizer section into the adapter
// configuration, picking the API key that belongs to the provider.
func (c *Config) SummarizerSettings() summarizer.Config {
	s := c.Summarizer
	cfg := summarizer.Config{
		Provider:  s.Provider,
		Model:     s.Model,
		BaseURL:   s.BaseURL,
		MaxTokens: s.MaxTokens,
		Timeout:   s.Timeout,
	}
	switch s.Provider {
	case summarizer.ProviderGemini:
		cfg.APIKey = s.GoogleAPIKey
	case summarizer.ProviderClaude:
		cfg.APIKey = s.AnthropicAPIKey
	case summarizer.ProviderOpenAI:
		cfg.APIKey = s.OpenAIAPIKey
	}
	return cfg
}
