package session

import (
	"fmt"
	"time"

	"docsummarizer/internal/usecase/summary"
)

// Mode is the input mode selected for a session.
type Mode string

// Input modes. The zero value means no mode has been chosen yet.
const (
	ModeNone   Mode = ""
	ModeUpload Mode = "upload"
	ModeManual Mode = "manual"
)

// ParseMode converts a form value into a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeUpload, ModeManual:
		return Mode(s), nil
	default:
		return ModeNone, fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
}

// State is everything the shell remembers about one visitor.
type State struct {
	Mode       Mode           `json:"mode"`
	SourceText string         `json:"source_text"`
	SourceName string         `json:"source_name,omitempty"`
	Summary    string         `json:"summary"`
	Preset     summary.Preset `json:"preset"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// newState returns the state of a session that has not done anything yet.
func newState() *State {
	return &State{Preset: summary.DefaultPreset}
}

// HasSourceText reports whether a summary can be generated.
func (s *State) HasSourceText() bool {
	return s.SourceText != ""
}

// HasSummary reports whether a summary can be copied or downloaded.
func (s *State) HasSummary() bool {
	return s.Summary != ""
}

// clearContent drops the source text and the summary.
func (s *State) clearContent() {
	s.SourceText = ""
	s.SourceName = ""
	s.Summary = ""
}
