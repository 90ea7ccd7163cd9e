package axiom

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/audimeta/geodash/geolib"
)

const (
	// DefaultAPIURL is the APL query endpoint in tabular mode.
	DefaultAPIURL = "https://api.axiom.co/v1/datasets/_apl?format=tabular"

	// DefaultTimeout caps a single query round trip.
	DefaultTimeout = 30 * time.Second

	ipCountsLimit     = 500
	topEndpointsLimit = 20
)

type queryRequest struct {
	APL       string `json:"apl"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// Client runs APL queries against one dataset. The zero value is not
// usable, use NewClient.
type Client struct {
	client  geolib.HTTPClient
	apiURL  string
	token   string
	dataset string
}

// QueryIPCounts returns the per-IP request histogram of the last
// given hours: grouped by IP, empty IPs filtered out, descending by
// count, capped at 500 rows.
func (c *Client) QueryIPCounts(ctx context.Context, hours int) ([]geolib.CountRecord, error) {
	apl := fmt.Sprintf(`['%s']
| where _time >= ago(%dh)
| where isnotnull(ip) and ip != ""
| summarize request_count = count() by ip
| order by request_count desc
| take %d`,
		c.dataset, hours, ipCountsLimit)

	startTime, endTime := queryWindow(hours)

	rows, err := c.query(ctx, apl, startTime, endTime)
	if err != nil {
		return nil, err
	}

	counts := make([]geolib.CountRecord, 0, len(rows))

	for _, row := range rows {
		ip := asString(row["ip"])
		if ip == "" {
			continue
		}

		counts = append(counts, geolib.CountRecord{
			IP:           ip,
			RequestCount: asInt64(row["request_count"]),
		})
	}

	return counts, nil
}

// QueryStats runs the top-URLs and status-code queries concurrently so
// the caller pays for one round trip, not two. If either query fails,
// the whole call fails.
func (c *Client) QueryStats(ctx context.Context, hours int) (geolib.StatsResult, error) {
	aplEndpoints := fmt.Sprintf(`['%s']
| where _time >= ago(%dh)
| summarize hits = count() by url
| order by hits desc
| take %d`,
		c.dataset, hours, topEndpointsLimit)

	aplStatuses := fmt.Sprintf(`['%s']
| where _time >= ago(%dh)
| where isnotnull(status)
| summarize count = count() by status
| order by count desc`,
		c.dataset, hours)

	startTime, endTime := queryWindow(hours)

	var (
		endpointRows, statusRows []Row
		endpointErr, statusErr   error
	)

	wg := &sync.WaitGroup{}

	wg.Add(2)

	go func() {
		defer wg.Done()

		endpointRows, endpointErr = c.query(ctx, aplEndpoints, startTime, endTime)
	}()

	go func() {
		defer wg.Done()

		statusRows, statusErr = c.query(ctx, aplStatuses, startTime, endTime)
	}()

	wg.Wait()

	rv := geolib.StatsResult{}

	if endpointErr != nil {
		return rv, fmt.Errorf("cannot query top endpoints: %w", endpointErr)
	}

	if statusErr != nil {
		return rv, fmt.Errorf("cannot query status codes: %w", statusErr)
	}

	rv.TopEndpoints = make([]geolib.EndpointHits, 0, len(endpointRows))
	for _, row := range endpointRows {
		rv.TopEndpoints = append(rv.TopEndpoints, geolib.EndpointHits{
			URL:  asString(row["url"]),
			Hits: asInt64(row["hits"]),
		})
	}

	rv.StatusCodes = make([]geolib.StatusCount, 0, len(statusRows))
	for _, row := range statusRows {
		rv.StatusCodes = append(rv.StatusCodes, geolib.StatusCount{
			Status: asInt64(row["status"]),
			Count:  asInt64(row["count"]),
		})
	}

	return rv, nil
}

func (c *Client) query(ctx context.Context, apl, startTime, endTime string) ([]Row, error) {
	body, err := json.Marshal(queryRequest{
		APL:       apl,
		StartTime: startTime,
		EndTime:   endTime,
	})
	if err != nil {
		return nil, fmt.Errorf("cannot marshal a query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx,
		http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("cannot build a request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cannot send a request: %w", err)
	}

	defer func() {
		io.Copy(io.Discard, resp.Body) // nolint: errcheck
		resp.Body.Close()
	}()

	parsed := tabularResponse{}

	if err := json.NewDecoder(bufio.NewReader(resp.Body)).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("cannot parse a response: %w", err)
	}

	return parsed.Rows(), nil
}

// queryWindow builds the explicit ISO-8601 pair the API expects next
// to the query text. Both have to agree with the query's own ago()
// filter.
func queryWindow(hours int) (string, string) {
	now := time.Now().UTC()

	return now.Add(-time.Duration(hours) * time.Hour).Format(time.RFC3339),
		now.Format(time.RFC3339)
}

func NewClient(client geolib.HTTPClient, token, dataset string) *Client {
	return &Client{
		client:  client,
		apiURL:  DefaultAPIURL,
		token:   token,
		dataset: dataset,
	}
}
