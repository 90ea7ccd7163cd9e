package resolvers_test

import (
	"net/http"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/suite"

	"github.com/audimeta/geodash/geolib"
)

type ResolverTestSuite struct {
	suite.Suite

	http geolib.HTTPClient
	prov geolib.Resolver
}

func (suite *ResolverTestSuite) SetupTest() {
	suite.http = geolib.NewHTTPClient(&http.Client{},
		"test-agent",
		time.Millisecond,
		100)
}

type MockedResolverTestSuite struct {
	ResolverTestSuite
}

func (suite *MockedResolverTestSuite) SetupSuite() {
	httpmock.Activate()
}

func (suite *MockedResolverTestSuite) TearDownSuite() {
	httpmock.DeactivateAndReset()
}

func (suite *MockedResolverTestSuite) TearDownTest() {
	httpmock.Reset()
}
