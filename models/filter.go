package models

import (
	"maps"
	"net/url"
	"slices"
	"strings"
)

// IssueFilter is an equality filter over issue documents keyed by field name.
// A key holding several values matches a document equal to any of them.
// Keys outside the issue schema are kept; they match no stored document.
// Operator keys (leading "$") are rejected.
type IssueFilter map[string][]any

// ParseIssueFilter casts query-string values to the types of the issue
// fields they name: open to bool, created_on and updated_on to timestamps,
// everything else to string.
func ParseIssueFilter(query url.Values) (IssueFilter, error) {
	filter := IssueFilter{}
	for key, raw := range query {
		if strings.HasPrefix(key, "$") {
			return nil, &CastError{Field: key, Value: raw}
		}
		values := make([]any, 0, len(raw))
		for _, s := range raw {
			v, err := castFilterValue(key, s)
			if err != nil {
				return nil, err
			}
			values = append(values, v)
		}
		if len(values) > 0 {
			filter[key] = values
		}
	}
	return filter, nil
}

// Keys returns the filter's field names in sorted order.
func (f IssueFilter) Keys() []string {
	return slices.Sorted(maps.Keys(f))
}

func castFilterValue(key, s string) (any, error) {
	switch key {
	case FieldOpen:
		return ParseOpen(s)
	case FieldCreatedOn, FieldUpdatedOn:
		return parseTimestamp(key, s)
	default:
		return s, nil
	}
}
