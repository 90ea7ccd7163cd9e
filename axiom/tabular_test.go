package axiom_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/audimeta/geodash/axiom"
)

type ParseTabularTestSuite struct {
	suite.Suite
}

func (suite *ParseTabularTestSuite) TestBadJSON() {
	_, err := axiom.ParseTabular([]byte("{["))

	suite.Error(err)
}

func (suite *ParseTabularTestSuite) TestEmptyTables() {
	rows, err := axiom.ParseTabular([]byte(`{"tables": []}`))

	suite.NoError(err)
	suite.Empty(rows)
}

func (suite *ParseTabularTestSuite) TestNoFields() {
	rows, err := axiom.ParseTabular(
		[]byte(`{"tables": [{"fields": [], "columns": []}]}`))

	suite.NoError(err)
	suite.Empty(rows)
}

func (suite *ParseTabularTestSuite) TestNoColumns() {
	rows, err := axiom.ParseTabular(
		[]byte(`{"tables": [{"fields": [{"name": "ip"}], "columns": []}]}`))

	suite.NoError(err)
	suite.Empty(rows)
}

func (suite *ParseTabularTestSuite) TestTranspose() {
	rows, err := axiom.ParseTabular([]byte(`{
        "tables": [{
            "fields": [{"name": "ip"}, {"name": "request_count"}],
            "columns": [["1.2.3.4", "5.6.7.8"], [100, 50]]
        }]
    }`))

	suite.NoError(err)
	suite.Require().Len(rows, 2)
	suite.Equal("1.2.3.4", rows[0]["ip"])
	suite.Equal(float64(100), rows[0]["request_count"])
	suite.Equal("5.6.7.8", rows[1]["ip"])
	suite.Equal(float64(50), rows[1]["request_count"])
}

func (suite *ParseTabularTestSuite) TestFieldsAttachPositionally() {
	rows, err := axiom.ParseTabular([]byte(`{
        "tables": [{
            "fields": [{"name": "request_count"}, {"name": "ip"}],
            "columns": [[100], ["1.2.3.4"]]
        }]
    }`))

	suite.NoError(err)
	suite.Require().Len(rows, 1)
	suite.Equal("1.2.3.4", rows[0]["ip"])
	suite.Equal(float64(100), rows[0]["request_count"])
}

func (suite *ParseTabularTestSuite) TestLaterTablesAreIgnored() {
	rows, err := axiom.ParseTabular([]byte(`{
        "tables": [
            {"fields": [{"name": "ip"}], "columns": [["1.2.3.4"]]},
            {"fields": [{"name": "url"}], "columns": [["/v1/ping"]]}
        ]
    }`))

	suite.NoError(err)
	suite.Require().Len(rows, 1)
	suite.Equal("1.2.3.4", rows[0]["ip"])
	suite.NotContains(rows[0], "url")
}

func (suite *ParseTabularTestSuite) TestRaggedColumns() {
	rows, err := axiom.ParseTabular([]byte(`{
        "tables": [{
            "fields": [{"name": "ip"}, {"name": "request_count"}],
            "columns": [["1.2.3.4", "5.6.7.8"], [100]]
        }]
    }`))

	suite.NoError(err)
	suite.Require().Len(rows, 2)
	suite.Equal(float64(100), rows[0]["request_count"])
	suite.NotContains(rows[1], "request_count")
}

func TestParseTabular(t *testing.T) {
	suite.Run(t, &ParseTabularTestSuite{})
}
