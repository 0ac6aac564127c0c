package nba

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fortuna/courtside/internal/clean"
)

// Response is the provider's row-oriented query payload.
type Response struct {
	Resource   string      `json:"resource"`
	ResultSets []ResultSet `json:"resultSets"`
}

// ResultSet is one named table inside a provider response.
type ResultSet struct {
	Name    string   `json:"name"`
	Headers []string `json:"headers"`
	RowSet  [][]any  `json:"rowSet"`
}

// Set returns the result set with the given name, or the first one when
// name is empty.
func (r *Response) Set(name string) (*ResultSet, error) {
	if name == "" {
		return &r.ResultSets[0], nil
	}
	for i := range r.ResultSets {
		if r.ResultSets[i].Name == name {
			return &r.ResultSets[i], nil
		}
	}
	return nil, fmt.Errorf("result set %q not present", name)
}

// columns resolves header names to indices. A renamed or dropped provider
// column surfaces here as a MissingColumnError instead of failing deep in
// a later computation.
func (rs *ResultSet) columns(names ...string) (map[string]int, error) {
	idx := make(map[string]int, len(rs.Headers))
	for i, h := range rs.Headers {
		idx[strings.ToUpper(h)] = i
	}
	out := make(map[string]int, len(names))
	for _, n := range names {
		i, ok := idx[strings.ToUpper(n)]
		if !ok {
			return nil, &clean.MissingColumnError{Column: n, Table: rs.Name}
		}
		out[n] = i
	}
	return out, nil
}

// Cell accessors. Provider rows mix strings, numbers and nulls; absent or
// mistyped values decay to zero values, matching the fill-with-zero
// cleaning policy for numerics. Rows shorter than the header list read
// as all-null past their end.

func cellString(row []any, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	switch v := row[i].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

func cellFloat(row []any, i int) float64 {
	if i < 0 || i >= len(row) {
		return 0
	}
	switch v := row[i].(type) {
	case float64:
		return v
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

func cellInt(row []any, i int) int {
	return int(cellFloat(row, i))
}
