package summarizer

import (
	"context"
	"fmt"
	"log/slog"

	"google.golang.org/genai"

	"docsummarizer/internal/usecase/summary"
)

// Gemini implements summary.Generator using Google's Gemini API.
type Gemini struct {
	*invoker
	client *genai.Client
	model  string
}

// NewGemini creates a Gemini summarizer from cfg.
func NewGemini(ctx context.Context, cfg Config, opts ...Option) (*Gemini, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: provider %s", ErrMissingAPIKey, ProviderGemini)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      cfg.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: cfg.BaseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	cfg.Provider = ProviderGemini
	g := &Gemini{
		invoker: newInvoker(ProviderGemini, cfg.Timeout, opts),
		client:  client,
		model:   cfg.model(),
	}

	slog.Info("Initialized Gemini summarizer",
		slog.String("model", g.model))
	return g, nil
}

// Generate sends one summarization request to Gemini.
func (g *Gemini) Generate(ctx context.Context, inputText, instruction string) (string, error) {
	prompt := summary.BuildPrompt(inputText, instruction)
	return g.run(ctx, inputText, func(ctx context.Context) (reply, error) {
		resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
		if err != nil {
			return reply{}, fmt.Errorf("gemini api error: %w", err)
		}
		if out := resp.Text(); out != "" {
			return reply{Text: out}, nil
		}
		return reply{Text: stringify(resp), Fallback: true}, nil
	})
}
