package geolib

import (
	"net/http"
)

func (h httpHandler) handleStats(w http.ResponseWriter, req *http.Request) {
	hours, err := parseHours(req)
	if err != nil {
		h.sendError(w, err, "Incorrect hours parameter", http.StatusBadRequest)

		return
	}

	stats, err := h.dash.Stats(req.Context(), hours)
	if err != nil {
		h.sendError(w, err, "Cannot fetch stats", http.StatusBadGateway)

		return
	}

	h.encodeJSON(w, stats)
}
