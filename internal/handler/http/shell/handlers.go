package shell

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"docsummarizer/internal/handler/http/respond"
	"docsummarizer/internal/infra/extractor"
	"docsummarizer/internal/usecase/session"
	"docsummarizer/internal/usecase/summary"
)

// downloadFilename is the name offered for the summary document.
const downloadFilename = "summary.pdf"

var templateFuncs = template.FuncMap{
	"base64": func(s string) string {
		return base64.StdEncoding.EncodeToString([]byte(s))
	},
}

type presetOption struct {
	Value    string
	Selected bool
}

type pageData struct {
	State       *session.State
	Notice      string
	Presets     []presetOption
	Accept      string
	MaxUploadMB string
}

// Index renders the page for the current session.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	state, err := h.Svc.Current(r.Context(), id)
	if err != nil {
		h.internalError(w, r, err)
		return
	}

	data := pageData{
		State:       state,
		Notice:      noticeMessage(r.URL.Query().Get("notice")),
		Presets:     presetOptions(state.Preset),
		Accept:      acceptAttr(h.Formats),
		MaxUploadMB: strconv.FormatInt(h.MaxUploadBytes/(1<<20), 10),
	}

	var buf bytes.Buffer
	if err := h.page.Execute(&buf, data); err != nil {
		h.internalError(w, r, fmt.Errorf("render page: %w", err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// SwitchMode handles the upload/manual mode buttons.
func (h *Handler) SwitchMode(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	mode, err := session.ParseMode(r.PostFormValue("mode"))
	if err != nil {
		redirectHome(w, r, noticeInvalidMode)
		return
	}
	if _, err := h.Svc.SwitchMode(r.Context(), id, mode); err != nil {
		h.internalError(w, r, err)
		return
	}
	redirectHome(w, r, "")
}

// Upload reads an uploaded file into the session.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	if h.MaxUploadBytes > 0 {
		limit := h.MaxUploadBytes + UploadEnvelope
		if r.ContentLength > limit {
			redirectHome(w, r, noticeTooLarge)
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, limit)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			redirectHome(w, r, noticeTooLarge)
		default:
			redirectHome(w, r, noticeNoFile)
		}
		return
	}
	defer func() { _ = file.Close() }()
	if h.MaxUploadBytes > 0 && header.Size > h.MaxUploadBytes {
		redirectHome(w, r, noticeTooLarge)
		return
	}

	_, err = h.Svc.Upload(r.Context(), id, header.Filename, file)
	switch {
	case err == nil:
		redirectHome(w, r, "")
	case errors.Is(err, session.ErrWrongMode):
		redirectHome(w, r, noticeWrongMode)
	case errors.Is(err, extractor.ErrUnsupportedFormat):
		redirectHome(w, r, noticeUnsupported)
	case errors.Is(err, session.ErrExtraction):
		slog.WarnContext(r.Context(), "uploaded file could not be read",
			slog.String("filename", header.Filename),
			slog.String("error", respond.SanitizeError(err)))
		redirectHome(w, r, noticeReadFailed)
	default:
		h.internalError(w, r, err)
	}
}

// EnterText stores manually entered text.
func (h *Handler) EnterText(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	_, err := h.Svc.EnterText(r.Context(), id, r.PostFormValue("text"))
	switch {
	case err == nil:
		redirectHome(w, r, "")
	case errors.Is(err, session.ErrWrongMode):
		redirectHome(w, r, noticeWrongMode)
	default:
		h.internalError(w, r, err)
	}
}

// Summarize generates a summary with the selected length preset.
func (h *Handler) Summarize(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	preset, err := summary.ParsePreset(r.PostFormValue("preset"))
	if err != nil {
		redirectHome(w, r, noticeInvalidPreset)
		return
	}
	if !h.Limiter.Allow(id) {
		slog.WarnContext(r.Context(), "summary request rate limited",
			slog.String("session_id", id))
		redirectHome(w, r, noticeRateLimited)
		return
	}

	_, err = h.Svc.Generate(r.Context(), id, preset)
	switch {
	case err == nil:
		redirectHome(w, r, "")
	case errors.Is(err, session.ErrNoSourceText):
		redirectHome(w, r, noticeNoText)
	default:
		slog.ErrorContext(r.Context(), "summary generation failed",
			slog.String("preset", preset.String()),
			slog.String("error", respond.SanitizeError(err)))
		redirectHome(w, r, noticeSummarizeFailed)
	}
}

// Download serves the current summary as a PDF attachment.
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	doc, err := h.Svc.Download(r.Context(), id)
	switch {
	case errors.Is(err, session.ErrNoSummary):
		redirectHome(w, r, noticeNoSummary)
		return
	case err != nil:
		h.internalError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+downloadFilename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(doc)))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc)
}

func (h *Handler) sessionID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := SessionIDFromContext(r.Context())
	if !ok {
		h.internalError(w, r, errors.New("session middleware not installed"))
	}
	return id, ok
}

func (h *Handler) internalError(w http.ResponseWriter, _ *http.Request, err error) {
	respond.SafeErrorV2(w, http.StatusInternalServerError,
		respond.NewAppError(http.StatusInternalServerError, "something went wrong, please reload the page", err))
}

// redirectHome sends the browser back to the page with an optional notice.
func redirectHome(w http.ResponseWriter, r *http.Request, notice string) {
	target := "/"
	if notice != "" {
		target += "?" + url.Values{"notice": {notice}}.Encode()
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func presetOptions(current summary.Preset) []presetOption {
	if current == "" {
		current = summary.DefaultPreset
	}
	presets := summary.Presets()
	options := make([]presetOption, 0, len(presets))
	for _, p := range presets {
		options = append(options, presetOption{Value: p.String(), Selected: p == current})
	}
	return options
}

func acceptAttr(formats []string) string {
	exts := make([]string, 0, len(formats))
	for _, f := range formats {
		exts = append(exts, "."+f)
	}
	return strings.Join(exts, ",")
}
