package resolvers

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/audimeta/geodash/geolib"
)

const NameIPWhois = "ipwhois"

type ipwhoisResponse struct {
	Success     bool    `json:"success"`
	Message     string  `json:"message"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	City        string  `json:"city"`
	Country     string  `json:"country"`
	CountryCode string  `json:"country_code"`
}

type ipwhoisResolver struct {
	client geolib.HTTPClient
}

func (i ipwhoisResolver) Name() string {
	return NameIPWhois
}

func (i ipwhoisResolver) Lookup(ctx context.Context, ip string) (geolib.GeoRecord, error) {
	rv := geolib.GeoRecord{}

	req, err := http.NewRequestWithContext(ctx,
		http.MethodGet, "https://ipwho.is/"+ip, nil)
	if err != nil {
		return rv, fmt.Errorf("cannot build a request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := i.client.Do(req)
	if err != nil {
		return rv, fmt.Errorf("cannot send a request: %w", err)
	}

	defer flushResponse(resp.Body)

	jsonResponse := ipwhoisResponse{}

	if err := json.NewDecoder(bufio.NewReader(resp.Body)).Decode(&jsonResponse); err != nil {
		return rv, fmt.Errorf("cannot parse a response: %w", err)
	}

	// The service answers 200 for addresses it will not resolve and
	// flags the failure in the payload instead.
	if !jsonResponse.Success {
		return rv, fmt.Errorf("%w: %s", ErrNotSuccessful, jsonResponse.Message)
	}

	rv.IP = ip
	rv.Lat = jsonResponse.Latitude
	rv.Lng = jsonResponse.Longitude
	rv.City = orUnknown(jsonResponse.City)
	rv.Country = orUnknown(jsonResponse.Country)
	rv.CountryCode = orUnknownCode(jsonResponse.CountryCode)

	return rv, nil
}

// NewIPWhois resolves addresses through the free ipwho.is API, one
// GET per address. Courtesy pacing between calls comes from the rate
// limiter of the supplied client, so the caller decides how hard the
// service is allowed to be hit.
func NewIPWhois(client geolib.HTTPClient) geolib.Resolver {
	return ipwhoisResolver{
		client: client,
	}
}
