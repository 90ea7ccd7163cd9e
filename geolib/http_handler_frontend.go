package geolib

import (
	"bytes"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/afero"
)

// mapsKeyPlaceholder is replaced at serve time so the key stays in
// environment variables only, never in the checked-in frontend files.
const mapsKeyPlaceholder = "__GOOGLE_MAPS_API_KEY__"

func (h httpHandler) mountFrontend(router chi.Router) {
	router.Get("/", h.handleIndex)
	router.Get("/manifest.json", h.serveFrontendFile("manifest.json", "application/manifest+json"))

	// The service worker has to be served from the root path, a
	// /static prefix would shrink its scope.
	router.Get("/service-worker.js", h.serveFrontendFile("service-worker.js", "application/javascript"))

	staticServer := http.FileServer(afero.NewHttpFs(h.frontend.Fs).Dir(h.frontend.Directory))
	router.Handle("/static/*", http.StripPrefix("/static/", staticServer))
}

func (h httpHandler) handleIndex(w http.ResponseWriter, req *http.Request) {
	html, err := afero.ReadFile(h.frontend.Fs,
		filepath.Join(h.frontend.Directory, "index.html"))
	if err != nil {
		h.sendError(w, err, "Cannot read index.html", http.StatusNotFound)

		return
	}

	html = bytes.ReplaceAll(html,
		[]byte(mapsKeyPlaceholder), []byte(h.frontend.MapsAPIKey))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(html) // nolint: errcheck
}

func (h httpHandler) serveFrontendFile(name, contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		content, err := afero.ReadFile(h.frontend.Fs,
			filepath.Join(h.frontend.Directory, name))
		if err != nil {
			h.sendError(w, err, "Cannot read "+name, http.StatusNotFound)

			return
		}

		w.Header().Set("Content-Type", contentType)
		w.Write(content) // nolint: errcheck
	}
}
