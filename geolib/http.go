package geolib

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/afero"
)

const (
	defaultWindowHours = 24
	minWindowHours     = 1
	maxWindowHours     = 720
)

// FrontendConfig describes the static shell served next to the API.
// An empty or missing directory disables the frontend routes but not
// the API ones.
type FrontendConfig struct {
	Fs         afero.Fs
	Directory  string
	MapsAPIKey string
}

type httpHandler struct {
	dash     *Dashboard
	frontend FrontendConfig
}

func NewHTTPHandler(dash *Dashboard, frontend FrontendConfig) http.Handler {
	handler := httpHandler{
		dash:     dash,
		frontend: frontend,
	}

	router := chi.NewRouter()

	router.Use(middleware.StripSlashes)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	}))

	router.Get("/api/geodata", handler.handleGeoData)
	router.Get("/api/stats", handler.handleStats)

	if ok, _ := afero.DirExists(frontend.Fs, frontend.Directory); ok {
		handler.mountFrontend(router)
	}

	return router
}

// parseHours validates the time window before anything upstream is
// called. Out-of-range values are rejected, not clamped.
func parseHours(req *http.Request) (int, error) {
	raw := req.URL.Query().Get("hours")
	if raw == "" {
		return defaultWindowHours, nil
	}

	hours, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("cannot parse hours: %w", err)
	}

	if hours < minWindowHours || hours > maxWindowHours {
		return 0, fmt.Errorf("hours must be within [%d, %d], got %d",
			minWindowHours, maxWindowHours, hours)
	}

	return hours, nil
}

func (h httpHandler) encodeJSON(w http.ResponseWriter, data interface{}) {
	encoder := json.NewEncoder(w)

	w.Header().Set("Content-Type", "application/json")
	encoder.SetEscapeHTML(false)
	encoder.Encode(data) // nolint: errcheck
}

func (h httpHandler) sendError(w http.ResponseWriter, err error, message string, statusCode int) {
	e := &httpError{
		message:    message,
		statusCode: statusCode,
		err:        err,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode())

	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	encoder.Encode(e) // nolint: errcheck
}
