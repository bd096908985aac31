package summarizer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"docsummarizer/internal/usecase/summary"
)

// Claude implements summary.Generator using Anthropic's Claude API.
type Claude struct {
	*invoker
	client    anthropic.Client
	model     string
	maxTokens int
}

// NewClaude creates a Claude summarizer from cfg. SDK retries are disabled.
func NewClaude(cfg Config, opts ...Option) (*Claude, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: provider %s", ErrMissingAPIKey, ProviderClaude)
	}

	clientOpts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(cfg.BaseURL))
	}

	cfg.Provider = ProviderClaude
	c := &Claude{
		invoker:   newInvoker(ProviderClaude, cfg.Timeout, opts),
		client:    anthropic.NewClient(clientOpts...),
		model:     cfg.model(),
		maxTokens: cfg.maxTokens(),
	}

	slog.Info("Initialized Claude summarizer",
		slog.String("model", c.model),
		slog.Int("max_tokens", c.maxTokens))
	return c, nil
}

// Generate sends one summarization request to Claude.
func (c *Claude) Generate(ctx context.Context, inputText, instruction string) (string, error) {
	prompt := summary.BuildPrompt(inputText, instruction)
	return c.run(ctx, inputText, func(ctx context.Context) (reply, error) {
		message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
			Model:     anthropic.Model(c.model),
			MaxTokens: int64(c.maxTokens),
			Messages: []anthropic.MessageParam{
				anthropic.NewUserMessage(
					anthropic.NewTextBlock(prompt),
				),
			},
		})
		if err != nil {
			return reply{}, fmt.Errorf("claude api error: %w", err)
		}

		var sb strings.Builder
		for _, block := range message.Content {
			if textBlock, ok := block.AsAny().(anthropic.TextBlock); ok {
				sb.WriteString(textBlock.Text)
			}
		}
		if sb.Len() > 0 {
			return reply{Text: sb.String()}, nil
		}
		if raw := message.RawJSON(); raw != "" {
			return reply{Text: raw, Fallback: true}, nil
		}
		return reply{Text: stringify(message), Fallback: true}, nil
	})
}
