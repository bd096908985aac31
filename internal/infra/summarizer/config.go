package summarizer

import (
	"errors"
	"fmt"
	"time"
)

// Supported summarization providers.
const (
	ProviderGemini = "gemini"
	ProviderClaude = "claude"
	ProviderOpenAI = "openai"
	ProviderNoOp   = "noop"
)

var (
	// ErrUnknownProvider is returned when the configured provider is not supported.
	ErrUnknownProvider = errors.New("unknown summarization provider")

	// ErrMissingAPIKey is returned when a hosted provider is configured without credentials.
	ErrMissingAPIKey = errors.New("summarization provider API key is required")
)

// Config holds the settings shared by all summarization adapters.
type Config struct {
	// Provider selects the adapter: gemini, claude, openai or noop.
	Provider string

	// APIKey is the credential for the selected hosted provider.
	APIKey string

	// Model overrides the provider's default model when set.
	Model string

	// BaseURL overrides the provider endpoint. Used for proxies and tests.
	BaseURL string

	// MaxTokens bounds the response length for providers that require it.
	MaxTokens int

	// Timeout bounds a single remote call. Zero means the call is bounded
	// only by the caller's context.
	Timeout time.Duration
}

// DefaultModel returns the model used when Config.Model is empty.
func DefaultModel(provider string) string {
	switch provider {
	case ProviderGemini:
		return "gemini-2.5-flash"
	case ProviderClaude:
		return "claude-sonnet-4-5-20250929"
	case ProviderOpenAI:
		return "gpt-4o-mini"
	default:
		return ""
	}
}

// Validate checks that the configuration can build an adapter.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderGemini, ProviderClaude, ProviderOpenAI, ProviderNoOp:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownProvider, c.Provider)
	}
	if c.MaxTokens < 0 {
		return fmt.Errorf("max tokens must not be negative, got %d", c.MaxTokens)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %v", c.Timeout)
	}
	if c.Provider != ProviderNoOp && c.APIKey == "" {
		return fmt.Errorf("%w: provider %s", ErrMissingAPIKey, c.Provider)
	}
	return nil
}

func (c Config) model() string {
	if c.Model != "" {
		return c.Model
	}
	return DefaultModel(c.Provider)
}

// defaultMaxTokens is the response cap for providers whose API requires one
// (Claude). It leaves room for the multi-paragraph "detailed" preset.
const defaultMaxTokens = 8192

func (c Config) maxTokens() int {
	if c.MaxTokens > 0 {
		return c.MaxTokens
	}
	return defaultMaxTokens
}
