package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"docsummarizer/internal/usecase/summary"
)

// Extractor turns an uploaded file into plain text.
type Extractor interface {
	Extract(ctx context.Context, filename string, r io.Reader) (string, error)
}

// Summarizer produces a summary of text at the requested length.
type Summarizer interface {
	Summarize(ctx context.Context, text string, preset summary.Preset) (string, error)
}

// Composer renders a summary into PDF bytes.
type Composer interface {
	Compose(ctx context.Context, text string) ([]byte, error)
}

// Service implements the interactive session use cases.
// Each operation loads the session, applies one user action and saves it.
type Service struct {
	Store      Store
	Extractor  Extractor
	Summarizer Summarizer
	Composer   Composer

	// Now stamps State.UpdatedAt. Defaults to time.Now.
	Now func() time.Time
}

// Current returns the state of session id. Unknown sessions yield a fresh state.
func (s *Service) Current(ctx context.Context, id string) (*State, error) {
	state, err := s.Store.Load(ctx, id)
	if errors.Is(err, ErrSessionNotFound) {
		return newState(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("current session: %w", err)
	}
	return state, nil
}

// SwitchMode selects the input mode. Selecting a different mode clears the
// source text and the summary; selecting the current mode keeps them.
func (s *Service) SwitchMode(ctx context.Context, id string, mode Mode) (*State, error) {
	if mode != ModeUpload && mode != ModeManual {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMode, mode)
	}
	state, err := s.Current(ctx, id)
	if err != nil {
		return nil, err
	}
	if state.Mode != mode {
		state.clearContent()
	}
	state.Mode = mode
	return s.save(ctx, id, state)
}

// Upload extracts text from an uploaded file and makes it the source text.
// A file that cannot be read leaves the session unchanged and yields an
// error wrapping ErrExtraction.
func (s *Service) Upload(ctx context.Context, id, filename string, r io.Reader) (*State, error) {
	state, err := s.Current(ctx, id)
	if err != nil {
		return nil, err
	}
	if state.Mode != ModeUpload {
		return nil, ErrWrongMode
	}

	extracted, err := s.Extractor.Extract(ctx, filename, r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExtraction, err)
	}
	state.SourceText = extracted
	state.SourceName = filename
	return s.save(ctx, id, state)
}

// EnterText makes manually entered text the source text.
func (s *Service) EnterText(ctx context.Context, id, text string) (*State, error) {
	state, err := s.Current(ctx, id)
	if err != nil {
		return nil, err
	}
	if state.Mode != ModeManual {
		return nil, ErrWrongMode
	}
	state.SourceText = text
	state.SourceName = ""
	return s.save(ctx, id, state)
}

// Generate summarizes the source text with preset and stores the result.
// A failed summarization keeps the previous summary.
func (s *Service) Generate(ctx context.Context, id string, preset summary.Preset) (*State, error) {
	state, err := s.Current(ctx, id)
	if err != nil {
		return nil, err
	}
	if !state.HasSourceText() {
		return nil, ErrNoSourceText
	}

	result, err := s.Summarizer.Summarize(ctx, state.SourceText, preset)
	if errors.Is(err, summary.ErrEmptyText) {
		return nil, ErrNoSourceText
	}
	if err != nil {
		return nil, fmt.Errorf("generate summary: %w", err)
	}
	state.Summary = result
	state.Preset = preset
	return s.save(ctx, id, state)
}

// Download renders the current summary as a PDF document.
func (s *Service) Download(ctx context.Context, id string) ([]byte, error) {
	state, err := s.Current(ctx, id)
	if err != nil {
		return nil, err
	}
	if !state.HasSummary() {
		return nil, ErrNoSummary
	}

	doc, err := s.Composer.Compose(ctx, state.Summary)
	if err != nil {
		return nil, fmt.Errorf("compose summary document: %w", err)
	}
	slog.DebugContext(ctx, "summary document rendered",
		slog.Int("bytes", len(doc)))
	return doc, nil
}

func (s *Service) save(ctx context.Context, id string, state *State) (*State, error) {
	state.UpdatedAt = s.now()
	if err := s.Store.Save(ctx, id, state); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return state, nil
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
