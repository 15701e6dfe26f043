package web

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"

	"github.com/nao1215/calcsite/internal/site"
	"github.com/nao1215/calcsite/internal/sitemap"
)

// handlePage serves a rendered page, or the 404 page for unknown paths.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	page, err := s.renderer.Render(r.URL.Path)
	if errors.Is(err, site.ErrNotFound) {
		page, err = s.renderer.RenderNotFound(r.URL.Path)
	}
	if err != nil {
		s.logger.Error("failed to render page", "path", r.URL.Path, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	s.serveBody(w, r, page.Status, "text/html; charset=utf-8", page.HTML)
}

func (s *Server) handleSitemap(w http.ResponseWriter, r *http.Request) {
	set := sitemap.Build(s.catalog, s.site.BaseURL, s.now(), sitemap.Options{Exclude: s.site.Pages.NoIndex})
	var buf bytes.Buffer
	if err := sitemap.Write(&buf, set); err != nil {
		s.logger.Error("failed to write sitemap", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	s.serveBody(w, r, http.StatusOK, "application/xml; charset=utf-8", buf.Bytes())
}

func (s *Server) handleRobots(w http.ResponseWriter, r *http.Request) {
	s.serveBody(w, r, http.StatusOK, "text/plain; charset=utf-8", []byte(sitemap.Robots(s.site.BaseURL)))
}

// serveBody writes body with an ETag and answers matching conditional
// requests with 304. Error statuses carry no ETag.
func (s *Server) serveBody(w http.ResponseWriter, r *http.Request, status int, contentType string, body []byte) {
	h := w.Header()
	h.Set("Content-Type", contentType)

	if status == http.StatusOK {
		etag := site.ETag(body)
		h.Set("ETag", etag)
		h.Set("Cache-Control", "public, max-age=300")
		if match := r.Header.Get("If-None-Match"); match != "" && match == etag {
			w.WriteHeader(http.StatusNotModified)
			return
		}
	}

	h.Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(status)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(body) //nolint:errcheck // client went away
}
