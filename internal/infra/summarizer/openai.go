package summarizer

import (
	"context"
	"fmt"
	"log/slog"

	openai "github.com/sashabaranov/go-openai"

	"docsummarizer/internal/usecase/summary"
)

// OpenAI implements summary.Generator using OpenAI's chat completion API.
type OpenAI struct {
	*invoker
	client *openai.Client
	model  string
}

// NewOpenAI creates an OpenAI summarizer from cfg.
func NewOpenAI(cfg Config, opts ...Option) (*OpenAI, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: provider %s", ErrMissingAPIKey, ProviderOpenAI)
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	cfg.Provider = ProviderOpenAI
	o := &OpenAI{
		invoker: newInvoker(ProviderOpenAI, cfg.Timeout, opts),
		client:  openai.NewClientWithConfig(clientConfig),
		model:   cfg.model(),
	}

	slog.Info("Initialized OpenAI summarizer",
		slog.String("model", o.model))
	return o, nil
}

// Generate sends one summarization request to OpenAI.
func (o *OpenAI) Generate(ctx context.Context, inputText, instruction string) (string, error) {
	prompt := summary.BuildPrompt(inputText, instruction)
	return o.run(ctx, inputText, func(ctx context.Context) (reply, error) {
		resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model: o.model,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleUser, Content: prompt},
			},
		})
		if err != nil {
			return reply{}, fmt.Errorf("openai api error: %w", err)
		}
		if len(resp.Choices) > 0 && resp.Choices[0].Message.Content != "" {
			return reply{Text: resp.Choices[0].Message.Content}, nil
		}
		return reply{Text: stringify(resp), Fallback: true}, nil
	})
}
