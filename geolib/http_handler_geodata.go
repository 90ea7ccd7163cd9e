package geolib

import (
	"net/http"
)

func (h httpHandler) handleGeoData(w http.ResponseWriter, req *http.Request) {
	hours, err := parseHours(req)
	if err != nil {
		h.sendError(w, err, "Incorrect hours parameter", http.StatusBadRequest)

		return
	}

	merged, err := h.dash.GeoData(req.Context(), hours)
	if err != nil {
		h.sendError(w, err, "Cannot fetch geodata", http.StatusBadGateway)

		return
	}

	h.encodeJSON(w, merged)
}
