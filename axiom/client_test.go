package axiom_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/suite"

	"github.com/audimeta/geodash/axiom"
	"github.com/audimeta/geodash/geolib"
)

type capturedQuery struct {
	APL       string `json:"apl"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

type ClientTestSuite struct {
	suite.Suite

	client *axiom.Client
}

func (suite *ClientTestSuite) SetupSuite() {
	httpmock.Activate()
}

func (suite *ClientTestSuite) TearDownSuite() {
	httpmock.DeactivateAndReset()
}

func (suite *ClientTestSuite) SetupTest() {
	suite.client = axiom.NewClient(
		geolib.NewHTTPClient(&http.Client{}, "test-agent", 0, 1),
		"test-token",
		"audimeta")
}

func (suite *ClientTestSuite) TearDownTest() {
	httpmock.Reset()
}

func (suite *ClientTestSuite) TestQueryIPCountsOK() {
	var captured capturedQuery
	var authHeader string

	httpmock.RegisterResponder(http.MethodPost, axiom.DefaultAPIURL,
		func(req *http.Request) (*http.Response, error) {
			authHeader = req.Header.Get("Authorization")

			body, _ := io.ReadAll(req.Body)
			if err := json.Unmarshal(body, &captured); err != nil {
				return nil, err
			}

			return httpmock.NewStringResponse(http.StatusOK, `{
                "tables": [{
                    "fields": [{"name": "ip"}, {"name": "request_count"}],
                    "columns": [["1.2.3.4", "", "5.6.7.8"], [100, 7, 50]]
                }]
            }`), nil
		})

	counts, err := suite.client.QueryIPCounts(context.Background(), 24)

	suite.NoError(err)
	suite.Equal([]geolib.CountRecord{
		{IP: "1.2.3.4", RequestCount: 100},
		{IP: "5.6.7.8", RequestCount: 50},
	}, counts)

	suite.Equal("Bearer test-token", authHeader)
	suite.Contains(captured.APL, "['audimeta']")
	suite.Contains(captured.APL, "ago(24h)")
	suite.Contains(captured.APL, "take 500")

	startTime, err := time.Parse(time.RFC3339, captured.StartTime)
	suite.NoError(err)

	endTime, err := time.Parse(time.RFC3339, captured.EndTime)
	suite.NoError(err)

	suite.WithinDuration(endTime.Add(-24*time.Hour), startTime, time.Minute)
}

func (suite *ClientTestSuite) TestQueryIPCountsBadStatus() {
	httpmock.RegisterResponder(http.MethodPost, axiom.DefaultAPIURL,
		httpmock.NewStringResponder(http.StatusUnauthorized, ""))

	_, err := suite.client.QueryIPCounts(context.Background(), 24)

	suite.Error(err)
}

func (suite *ClientTestSuite) TestQueryIPCountsBadJSON() {
	httpmock.RegisterResponder(http.MethodPost, axiom.DefaultAPIURL,
		httpmock.NewStringResponder(http.StatusOK, "{["))

	_, err := suite.client.QueryIPCounts(context.Background(), 24)

	suite.Error(err)
}

func (suite *ClientTestSuite) TestQueryIPCountsEmptyTables() {
	httpmock.RegisterResponder(http.MethodPost, axiom.DefaultAPIURL,
		httpmock.NewStringResponder(http.StatusOK, `{"tables": []}`))

	counts, err := suite.client.QueryIPCounts(context.Background(), 24)

	suite.NoError(err)
	suite.Empty(counts)
}

func (suite *ClientTestSuite) registerStatsResponder(delay time.Duration, failStatuses bool) {
	httpmock.RegisterResponder(http.MethodPost, axiom.DefaultAPIURL,
		func(req *http.Request) (*http.Response, error) {
			body, _ := io.ReadAll(req.Body)

			captured := capturedQuery{}
			if err := json.Unmarshal(body, &captured); err != nil {
				return nil, err
			}

			time.Sleep(delay)

			if strings.Contains(captured.APL, "by url") {
				return httpmock.NewStringResponse(http.StatusOK, `{
                    "tables": [{
                        "fields": [{"name": "url"}, {"name": "hits"}],
                        "columns": [["/v1/meta", "/v1/ping"], [320, 12]]
                    }]
                }`), nil
			}

			if failStatuses {
				return httpmock.NewStringResponse(http.StatusInternalServerError, ""), nil
			}

			return httpmock.NewStringResponse(http.StatusOK, `{
                "tables": [{
                    "fields": [{"name": "status"}, {"name": "count"}],
                    "columns": [[200, "404"], [250, 82]]
                }]
            }`), nil
		})
}

func (suite *ClientTestSuite) TestQueryStatsOK() {
	suite.registerStatsResponder(0, false)

	stats, err := suite.client.QueryStats(context.Background(), 24)

	suite.NoError(err)
	suite.Equal([]geolib.EndpointHits{
		{URL: "/v1/meta", Hits: 320},
		{URL: "/v1/ping", Hits: 12},
	}, stats.TopEndpoints)
	suite.Equal([]geolib.StatusCount{
		{Status: 200, Count: 250},
		{Status: 404, Count: 82},
	}, stats.StatusCodes)
}

func (suite *ClientTestSuite) TestQueryStatsRunsConcurrently() {
	suite.registerStatsResponder(200*time.Millisecond, false)

	started := time.Now()

	_, err := suite.client.QueryStats(context.Background(), 24)

	elapsed := time.Since(started)

	suite.NoError(err)
	suite.GreaterOrEqual(elapsed, 200*time.Millisecond)
	suite.Less(elapsed, 350*time.Millisecond)
}

func (suite *ClientTestSuite) TestQueryStatsFailsTogether() {
	suite.registerStatsResponder(0, true)

	_, err := suite.client.QueryStats(context.Background(), 24)

	suite.Error(err)
}

func TestClient(t *testing.T) {
	suite.Run(t, &ClientTestSuite{})
}
