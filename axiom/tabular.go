package axiom

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Row is one transposed record of a tabular response.
type Row map[string]interface{}

// The APL endpoint in tabular mode answers column-major: a list of
// field descriptors plus one value array per field, in field order.
type tabularResponse struct {
	Tables []tabularTable `json:"tables"`
}

type tabularTable struct {
	Fields  []tabularField  `json:"fields"`
	Columns [][]interface{} `json:"columns"`
}

type tabularField struct {
	Name string `json:"name"`
}

// Rows transposes the first table back into row-major records. Column
// j holds the values of fields[j]; row order is the order the service
// returned the values in. Later tables, if any, are ignored. A
// response without tables, fields or columns transposes to an empty
// slice, not an error.
func (t tabularResponse) Rows() []Row {
	if len(t.Tables) == 0 {
		return []Row{}
	}

	table := t.Tables[0]
	if len(table.Fields) == 0 || len(table.Columns) == 0 {
		return []Row{}
	}

	numRows := len(table.Columns[0])
	rows := make([]Row, 0, numRows)

	for i := 0; i < numRows; i++ {
		row := make(Row, len(table.Fields))

		for j, field := range table.Fields {
			if j < len(table.Columns) && i < len(table.Columns[j]) {
				row[field.Name] = table.Columns[j][i]
			}
		}

		rows = append(rows, row)
	}

	return rows
}

// ParseTabular decodes a raw tabular response body into row records.
func ParseTabular(data []byte) ([]Row, error) {
	parsed := tabularResponse{}

	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("cannot parse a tabular response: %w", err)
	}

	return parsed.Rows(), nil
}

// asInt64 coerces the numeric values of a decoded row. Counts arrive
// as JSON numbers but status codes may have been ingested as strings.
func asInt64(value interface{}) int64 {
	switch v := value.(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	case int:
		return int64(v)
	case json.Number:
		parsed, _ := v.Int64()

		return parsed
	case string:
		parsed, _ := strconv.ParseInt(v, 10, 64)

		return parsed
	}

	return 0
}

func asString(value interface{}) string {
	parsed, _ := value.(string)

	return parsed
}
