package summarizer_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docsummarizer/internal/infra/summarizer"
)

func TestNew_SelectsProvider(t *testing.T) {
	tests := []struct {
		provider string
		want     any
	}{
		{provider: summarizer.ProviderGemini, want: &summarizer.Gemini{}},
		{provider: summarizer.ProviderClaude, want: &summarizer.Claude{}},
		{provider: summarizer.ProviderOpenAI, want: &summarizer.OpenAI{}},
		{provider: summarizer.ProviderNoOp, want: &summarizer.NoOp{}},
	}

	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			g, err := summarizer.New(context.Background(), summarizer.Config{
				Provider: tt.provider,
				APIKey:   "test-key",
			}, summarizer.WithMetricsRecorder(&mockMetrics{}))

			require.NoError(t, err)
			assert.IsType(t, tt.want, g)
			assert.Equal(t, tt.provider, g.Provider())
			assert.False(t, g.CircuitOpen())
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     summarizer.Config
		wantErr bool
		is      error
	}{
		{name: "noop without key", cfg: summarizer.Config{Provider: "noop"}},
		{name: "gemini with key", cfg: summarizer.Config{Provider: "gemini", APIKey: "k"}},
		{name: "unknown provider", cfg: summarizer.Config{Provider: "palm", APIKey: "k"}, wantErr: true, is: summarizer.ErrUnknownProvider},
		{name: "empty provider", cfg: summarizer.Config{}, wantErr: true, is: summarizer.ErrUnknownProvider},
		{name: "claude without key", cfg: summarizer.Config{Provider: "claude"}, wantErr: true, is: summarizer.ErrMissingAPIKey},
		{name: "negative timeout", cfg: summarizer.Config{Provider: "openai", APIKey: "k", Timeout: -time.Second}, wantErr: true},
		{name: "negative max tokens", cfg: summarizer.Config{Provider: "claude", APIKey: "k", MaxTokens: -1}, wantErr: true},
		{name: "noop negative timeout", cfg: summarizer.Config{Provider: "noop", Timeout: -time.Second}, wantErr: true},
		{name: "noop negative max tokens", cfg: summarizer.Config{Provider: "noop", MaxTokens: -1}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			if tt.is != nil {
				assert.ErrorIs(t, err, tt.is)
			}
		})
	}
}

func TestDefaultModel(t *testing.T) {
	assert.Equal(t, "gemini-2.5-flash", summarizer.DefaultModel(summarizer.ProviderGemini))
	assert.NotEmpty(t, summarizer.DefaultModel(summarizer.ProviderClaude))
	assert.NotEmpty(t, summarizer.DefaultModel(summarizer.ProviderOpenAI))
	assert.Empty(t, summarizer.DefaultModel(summarizer.ProviderNoOp))
}

func TestNoOp_Generate(t *testing.T) {
	n := summarizer.NewNoOp()

	short, err := n.Generate(context.Background(), "short text", "ignored")
	require.NoError(t, err)
	assert.Equal(t, "short text", short)

	long, err := n.Generate(context.Background(), strings.Repeat("ü", 600), "ignored")
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("ü", 500)+"...", long)
}
