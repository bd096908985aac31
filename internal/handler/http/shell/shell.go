// Package shell serves the browser UI of the summarizer: input mode
// selection, file upload or manual entry, summary generation with a length
// preset, copy to clipboard and PDF download.
//
// Every form posts to its own route and redirects back to the page
// (post/redirect/get). Outcomes that need the user's attention travel as a
// notice code in the redirect URL.
package shell

import (
	"context"
	"embed"
	"html/template"
	"io"
	"io/fs"

	"docsummarizer/internal/usecase/session"
	"docsummarizer/internal/usecase/summary"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// UploadEnvelope is the room a request body gets beyond MaxUploadBytes for
// the multipart framing around the uploaded file.
const UploadEnvelope = 1 << 20

// SessionService is the part of session.Service the shell drives.
type SessionService interface {
	Current(ctx context.Context, id string) (*session.State, error)
	SwitchMode(ctx context.Context, id string, mode session.Mode) (*session.State, error)
	Upload(ctx context.Context, id, filename string, r io.Reader) (*session.State, error)
	EnterText(ctx context.Context, id, text string) (*session.State, error)
	Generate(ctx context.Context, id string, preset summary.Preset) (*session.State, error)
	Download(ctx context.Context, id string) ([]byte, error)
}

// Handler serves the shell routes.
type Handler struct {
	Svc SessionService

	// Limiter bounds summary generations per session. Nil disables it.
	Limiter *SummarizeLimiter

	// MaxUploadBytes bounds the size of the uploaded file part. The request
	// body may be UploadEnvelope bytes larger.
	MaxUploadBytes int64

	// Formats lists the accepted file extensions without dots.
	Formats []string

	page *template.Template
}

// NewHandler parses the embedded page template.
func NewHandler(svc SessionService, limiter *SummarizeLimiter, maxUploadBytes int64, formats []string) (*Handler, error) {
	page, err := template.New("index.gohtml").Funcs(templateFuncs).ParseFS(templateFS, "templates/index.gohtml")
	if err != nil {
		return nil, err
	}
	return &Handler{
		Svc:            svc,
		Limiter:        limiter,
		MaxUploadBytes: maxUploadBytes,
		Formats:        formats,
		page:           page,
	}, nil
}

func staticFiles() fs.FS {
	return staticFS
}
