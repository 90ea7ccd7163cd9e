package geolib

const (
	// UnknownName substitutes a missing city or country name so the
	// frontend never has to deal with empty strings.
	UnknownName = "Unknown"

	// UnknownCountryCode substitutes a missing ISO country code.
	UnknownCountryCode = "??"
)

// CountRecord is one row of the per-IP request histogram the analytics
// backend returns, ordered by descending request count.
type CountRecord struct {
	IP           string `json:"ip"`
	RequestCount int64  `json:"request_count"`
}

// GeoRecord is a successfully resolved location of a single address.
// City and Country are never empty: absent source data is replaced
// with UnknownName/UnknownCountryCode.
type GeoRecord struct {
	IP          string  `json:"ip"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	City        string  `json:"city"`
	Country     string  `json:"country"`
	CountryCode string  `json:"country_code"`
}

// MergedRecord is the unit served to the map frontend: a GeoRecord
// joined with the request count of the same address.
type MergedRecord struct {
	GeoRecord
	RequestCount int64 `json:"request_count"`
}

type EndpointHits struct {
	URL  string `json:"url"`
	Hits int64  `json:"hits"`
}

type StatusCount struct {
	Status int64 `json:"status"`
	Count  int64 `json:"count"`
}

// StatsResult aggregates the two secondary dashboard queries.
type StatsResult struct {
	TopEndpoints []EndpointHits `json:"top_endpoints"`
	StatusCodes  []StatusCount  `json:"status_codes"`
}
