package geolib

import (
	"context"
	"fmt"
)

// Dashboard glues the analytics backend and the geolocation resolver
// together. It owns no state of its own: every call rebuilds its
// result from scratch, so instances are safe for concurrent use as
// long as their collaborators are.
type Dashboard struct {
	analytics AnalyticsClient
	resolver  Resolver
	logger    Logger
}

// GeoData returns per-IP request counts enriched with approximate
// locations. Addresses that fail to geocode are dropped, never
// null-filled. Ordering follows the analytics ordering (descending
// request count); it is not re-sorted by any geo attribute.
func (d *Dashboard) GeoData(ctx context.Context, hours int) ([]MergedRecord, error) {
	counts, err := d.analytics.QueryIPCounts(ctx, hours)
	if err != nil {
		return nil, fmt.Errorf("cannot query ip counts: %w", err)
	}

	// Nothing to geocode. Skipping the resolver entirely matters on
	// the remote fallback path where every lookup costs a round trip.
	if len(counts) == 0 {
		return []MergedRecord{}, nil
	}

	geoIndex := map[string]GeoRecord{}

	for _, rec := range d.geocodeIPs(ctx, uniqueIPs(counts)) {
		geoIndex[rec.IP] = rec
	}

	merged := make([]MergedRecord, 0, len(counts))

	for _, count := range counts {
		geo, ok := geoIndex[count.IP]
		if !ok {
			continue
		}

		merged = append(merged, MergedRecord{
			GeoRecord:    geo,
			RequestCount: count.RequestCount,
		})
	}

	return merged, nil
}

// Stats passes the secondary statistics queries through unchanged.
func (d *Dashboard) Stats(ctx context.Context, hours int) (StatsResult, error) {
	return d.analytics.QueryStats(ctx, hours)
}

// geocodeIPs resolves a batch one address at a time, in input order.
// The resolver decides its own pacing; lookups must stay sequential or
// the remote fallback would blow through its rate limit.
func (d *Dashboard) geocodeIPs(ctx context.Context, ips []string) []GeoRecord {
	rv := make([]GeoRecord, 0, len(ips))

	for _, ip := range ips {
		rec, err := d.resolver.Lookup(ctx, ip)
		if err != nil {
			d.logger.LookupError(d.resolver.Name(), ip, err)

			continue
		}

		rv = append(rv, rec)
	}

	return rv
}

func uniqueIPs(counts []CountRecord) []string {
	seen := make(map[string]struct{}, len(counts))
	rv := make([]string, 0, len(counts))

	for _, count := range counts {
		if count.IP == "" {
			continue
		}

		if _, ok := seen[count.IP]; ok {
			continue
		}

		seen[count.IP] = struct{}{}
		rv = append(rv, count.IP)
	}

	return rv
}

func NewDashboard(analytics AnalyticsClient, resolver Resolver, logger Logger) *Dashboard {
	return &Dashboard{
		analytics: analytics,
		resolver:  resolver,
		logger:    logger,
	}
}
