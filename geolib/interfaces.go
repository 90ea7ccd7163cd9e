package geolib

import (
	"context"
	"net/http"
)

// Resolver maps a single IP address to an approximate location. A
// returned error means this address contributes nothing to the batch;
// it is never a reason to fail the whole request.
type Resolver interface {
	Name() string
	Lookup(ctx context.Context, ip string) (GeoRecord, error)
}

// AnalyticsClient queries the log analytics backend over a trailing
// time window given in hours.
type AnalyticsClient interface {
	QueryIPCounts(ctx context.Context, hours int) ([]CountRecord, error)
	QueryStats(ctx context.Context, hours int) (StatsResult, error)
}

type Logger interface {
	LookupError(name string, ip string, err error)
}

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}
