package shell_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docsummarizer/internal/handler/http/shell"
	"docsummarizer/internal/infra/document"
	"docsummarizer/internal/infra/extractor"
	"docsummarizer/internal/usecase/session"
	"docsummarizer/internal/usecase/summary"
)

type stubSummarizer struct {
	mu      sync.Mutex
	err     error
	presets []summary.Preset
}

func (s *stubSummarizer) Summarize(_ context.Context, text string, preset summary.Preset) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.presets = append(s.presets, preset)
	if s.err != nil {
		return "", s.err
	}
	return "Summary: " + text, nil
}

type testApp struct {
	server     *httptest.Server
	client     *http.Client
	summarizer *stubSummarizer
}

func newTestApp(t *testing.T, maxUpload int64, ratePerMinute int) *testApp {
	t.Helper()

	composer, err := document.NewComposer(document.LetterGeometry())
	require.NoError(t, err)
	registry := extractor.NewDefaultRegistry()
	sum := &stubSummarizer{}

	svc := &session.Service{
		Store:      session.NewMemoryStore(time.Hour),
		Extractor:  registry,
		Summarizer: sum,
		Composer:   composer,
	}
	h, err := shell.NewHandler(svc, shell.NewSummarizeLimiter(ratePerMinute), maxUpload, registry.SupportedFormats())
	require.NoError(t, err)

	mux := http.NewServeMux()
	shell.Register(mux, h, shell.SessionCookies{MaxAge: time.Hour})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &testApp{
		server:     server,
		client:     &http.Client{Jar: jar},
		summarizer: sum,
	}
}

func (a *testApp) get(t *testing.T, path string) (*http.Response, string) {
	t.Helper()
	resp, err := a.client.Get(a.server.URL + path)
	require.NoError(t, err)
	return resp, readBody(t, resp)
}

func (a *testApp) postForm(t *testing.T, path string, values url.Values) (*http.Response, string) {
	t.Helper()
	resp, err := a.client.PostForm(a.server.URL+path, values)
	require.NoError(t, err)
	return resp, readBody(t, resp)
}

func (a *testApp) upload(t *testing.T, filename string, content []byte) (*http.Response, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	resp, err := a.client.Post(a.server.URL+"/upload", mw.FormDataContentType(), &buf)
	require.NoError(t, err)
	return resp, readBody(t, resp)
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(raw)
}

func TestIndex_IssuesSessionCookie(t *testing.T) {
	app := newTestApp(t, 1<<20, 0)

	resp, body := app.get(t, "/")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assert.Contains(t, body, "Upload a File")
	assert.Contains(t, body, "Enter Text Manually")
	assert.NotContains(t, body, "Generate Summary")

	u, err := url.Parse(app.server.URL)
	require.NoError(t, err)
	cookies := app.client.Jar.Cookies(u)
	require.Len(t, cookies, 1)
	assert.Equal(t, shell.CookieName, cookies[0].Name)
}

func TestManualFlow(t *testing.T) {
	app := newTestApp(t, 1<<20, 0)

	_, body := app.postForm(t, "/mode", url.Values{"mode": {"manual"}})
	assert.Contains(t, body, `name="text"`)

	_, body = app.postForm(t, "/text", url.Values{"text": {"The quick brown fox."}})
	assert.Contains(t, body, "Generate Summary")
	assert.Contains(t, body, `<option value="Medium" selected>`)

	_, body = app.postForm(t, "/summarize", url.Values{"preset": {"Detailed"}})
	assert.Contains(t, body, "Summary: The quick brown fox.")
	assert.Contains(t, body, `id="copy-summary"`)
	assert.Contains(t, body, `href="/summary.pdf"`)
	assert.Contains(t, body, `<option value="Detailed" selected>`)
	assert.Equal(t, []summary.Preset{summary.PresetDetailed}, app.summarizer.presets)

	resp, pdf := app.get(t, "/summary.pdf")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Equal(t, `attachment; filename="summary.pdf"`, resp.Header.Get("Content-Disposition"))
	assert.True(t, strings.HasPrefix(pdf, "%PDF-"))
}

func TestUploadFlow(t *testing.T) {
	app := newTestApp(t, 1<<20, 0)

	_, body := app.postForm(t, "/mode", url.Values{"mode": {"upload"}})
	assert.Contains(t, body, `accept=".docx,.pdf,.txt"`)

	_, body = app.upload(t, "notes.txt", []byte("Uploaded plain text."))
	assert.Contains(t, body, "Loaded: notes.txt")
	assert.Contains(t, body, "Generate Summary")

	_, body = app.postForm(t, "/summarize", url.Values{"preset": {"Short (1-2 sentences)"}})
	assert.Contains(t, body, "Summary: Uploaded plain text.")
}

func TestUpload_Notices(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		content  []byte
		want     string
	}{
		{name: "unsupported", filename: "image.png", content: []byte("png"), want: "Unsupported file type"},
		{name: "corrupt", filename: "broken.docx", content: []byte("not a zip"), want: "Failed to read the file"},
		{name: "too large", filename: "big.txt", content: bytes.Repeat([]byte("a"), 4096), want: "The file is too large."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t, 1024, 0)
			app.postForm(t, "/mode", url.Values{"mode": {"upload"}})

			resp, body := app.upload(t, tt.filename, tt.content)

			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Contains(t, body, tt.want)
			assert.NotContains(t, body, "Generate Summary")
		})
	}
}

func TestUpload_SizeLimitAppliesToFilePart(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		wantErr bool
	}{
		{name: "just under limit", size: 900},
		{name: "exactly at limit", size: 1000},
		{name: "one byte over", size: 1001, wantErr: true},
		{name: "over request envelope", size: 1000 + shell.UploadEnvelope + 1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t, 1000, 0)
			app.postForm(t, "/mode", url.Values{"mode": {"upload"}})

			resp, body := app.upload(t, "a.txt", bytes.Repeat([]byte("a"), tt.size))

			assert.Equal(t, http.StatusOK, resp.StatusCode)
			if tt.wantErr {
				assert.Contains(t, body, "The file is too large.")
				assert.NotContains(t, body, "Loaded: a.txt")
				return
			}
			assert.NotContains(t, body, "The file is too large.")
			assert.Contains(t, body, "Loaded: a.txt")
		})
	}
}

func TestUpload_WrongMode(t *testing.T) {
	app := newTestApp(t, 1<<20, 0)
	app.postForm(t, "/mode", url.Values{"mode": {"manual"}})

	_, body := app.upload(t, "notes.txt", []byte("text"))

	assert.Contains(t, body, "Please select the matching input mode first.")
}

func TestModeSwitch_ClearsContent(t *testing.T) {
	app := newTestApp(t, 1<<20, 0)
	app.postForm(t, "/mode", url.Values{"mode": {"manual"}})
	app.postForm(t, "/text", url.Values{"text": {"Some text."}})
	_, body := app.postForm(t, "/summarize", url.Values{"preset": {"Medium"}})
	require.Contains(t, body, "Summary: Some text.")

	_, body = app.postForm(t, "/mode", url.Values{"mode": {"upload"}})

	assert.NotContains(t, body, "Summary: Some text.")
	assert.NotContains(t, body, "Generate Summary")

	_, body = app.get(t, "/summary.pdf")
	assert.Contains(t, body, "Generate a summary before downloading it.")
}

func TestSummarize_Failures(t *testing.T) {
	t.Run("no text", func(t *testing.T) {
		app := newTestApp(t, 1<<20, 0)
		_, body := app.postForm(t, "/summarize", url.Values{"preset": {"Medium"}})
		assert.Contains(t, body, "Please provide some text to summarize.")
	})

	t.Run("invalid preset", func(t *testing.T) {
		app := newTestApp(t, 1<<20, 0)
		_, body := app.postForm(t, "/summarize", url.Values{"preset": {"Epic"}})
		assert.Contains(t, body, "Unknown summary length.")
	})

	t.Run("remote failure is generic", func(t *testing.T) {
		app := newTestApp(t, 1<<20, 0)
		app.summarizer.err = &summary.RemoteServiceError{Provider: "gemini", Err: errors.New("quota exceeded for key AIzaSecret")}
		app.postForm(t, "/mode", url.Values{"mode": {"manual"}})
		app.postForm(t, "/text", url.Values{"text": {"text"}})

		_, body := app.postForm(t, "/summarize", url.Values{"preset": {"Medium"}})

		assert.Contains(t, body, "The summary could not be generated.")
		assert.NotContains(t, body, "quota")
	})
}

func TestSummarize_RateLimited(t *testing.T) {
	app := newTestApp(t, 1<<20, 1)
	app.postForm(t, "/mode", url.Values{"mode": {"manual"}})
	app.postForm(t, "/text", url.Values{"text": {"text"}})

	_, body := app.postForm(t, "/summarize", url.Values{"preset": {"Medium"}})
	require.Contains(t, body, "Summary: text")

	_, body = app.postForm(t, "/summarize", url.Values{"preset": {"Medium"}})
	assert.Contains(t, body, "Too many summary requests.")
	assert.Len(t, app.summarizer.presets, 1)
}

func TestSessionsAreIsolated(t *testing.T) {
	app := newTestApp(t, 1<<20, 0)
	app.postForm(t, "/mode", url.Values{"mode": {"manual"}})
	app.postForm(t, "/text", url.Values{"text": {"Private draft."}})

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	other := &testApp{server: app.server, client: &http.Client{Jar: jar}}

	_, body := other.get(t, "/")

	assert.NotContains(t, body, "Private draft.")
	assert.NotContains(t, body, "Generate Summary")
}

func TestStaticAssets(t *testing.T) {
	app := newTestApp(t, 1<<20, 0)

	resp, body := app.get(t, "/static/shell.js")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "navigator.clipboard.writeText")
}

func TestUnknownNoticeIsIgnored(t *testing.T) {
	app := newTestApp(t, 1<<20, 0)

	_, body := app.get(t, "/?notice=bogus")

	assert.NotContains(t, body, `role="alert"`)
}
