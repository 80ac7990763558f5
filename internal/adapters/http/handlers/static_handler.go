package handlers

import (
	"net/http"
)

// IndexPath is where GET / redirects.
const IndexPath = "/index.html"

// StaticHandler serves the browser client's files.
type StaticHandler struct {
	dir   http.Dir
	files http.Handler
}

// NewStaticHandler serves files from dir. An empty dir serves nothing but
// the root redirect.
func NewStaticHandler(dir string) *StaticHandler {
	h := &StaticHandler{dir: http.Dir(dir)}
	if dir != "" {
		h.files = http.FileServer(h.dir)
	}
	return h
}

// Root handles GET / with a permanent redirect to the index page.
func (h *StaticHandler) Root(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, IndexPath, http.StatusMovedPermanently)
}

// Files serves any other path from the static directory.
func (h *StaticHandler) Files(w http.ResponseWriter, r *http.Request) {
	if h.files == nil {
		http.NotFound(w, r)
		return
	}
	// http.FileServer redirects /index.html back to /, which would loop.
	if r.URL.Path == IndexPath {
		h.serveIndex(w, r)
		return
	}
	h.files.ServeHTTP(w, r)
}

func (h *StaticHandler) serveIndex(w http.ResponseWriter, r *http.Request) {
	f, err := h.dir.Open(IndexPath)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		http.NotFound(w, r)
		return
	}
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}
