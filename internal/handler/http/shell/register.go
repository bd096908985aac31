package shell

import (
	"net/http"
)

// Register registers the shell routes with the given mux. All routes run
// behind the session cookie middleware.
func Register(mux *http.ServeMux, h *Handler, cookies SessionCookies) {
	mux.Handle("GET /{$}", cookies.Middleware(http.HandlerFunc(h.Index)))
	mux.Handle("POST /mode", cookies.Middleware(http.HandlerFunc(h.SwitchMode)))
	mux.Handle("POST /upload", cookies.Middleware(http.HandlerFunc(h.Upload)))
	mux.Handle("POST /text", cookies.Middleware(http.HandlerFunc(h.EnterText)))
	mux.Handle("POST /summarize", cookies.Middleware(http.HandlerFunc(h.Summarize)))
	mux.Handle("GET /summary.pdf", cookies.Middleware(http.HandlerFunc(h.Download)))

	mux.Handle("GET /static/", http.FileServerFS(staticFiles()))
}
