// Package site serves the embedded landing page and the root redirect.
package site

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"net/http"
	"time"
)

// IndexPath is where GET / sends browsers.
const IndexPath = "/static/index.html"

// ErrIndexMissing is reported when the landing page is absent from the build.
var ErrIndexMissing = errors.New("landing page not embedded")

// Register attaches the root redirect and the /static/ asset routes to mux.
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}

	mux.HandleFunc("GET /{$}", NewRootHandler().HandleRoot)
	// http.FileServer redirects any */index.html request to its directory,
	// so the page the root redirects to is served on its own route.
	mux.HandleFunc("GET "+IndexPath, HandleIndex)
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(FS())))
}

// HandleIndex serves the embedded landing page.
func HandleIndex(w http.ResponseWriter, r *http.Request) {
	page, err := fs.ReadFile(staticFS, "static/index.html")
	if err != nil {
		http.Error(w, ErrIndexMissing.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	http.ServeContent(w, r, "index.html", time.Time{}, bytes.NewReader(page))
}

// RootHandler handles root path requests.
type RootHandler struct {
	target string
}

// NewRootHandler creates a root handler redirecting to the landing page.
func NewRootHandler() *RootHandler {
	return &RootHandler{target: IndexPath}
}

// HandleRoot answers GET / with a temporary redirect to the landing page.
func (h *RootHandler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, h.target, http.StatusTemporaryRedirect)
}
