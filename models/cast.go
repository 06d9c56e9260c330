package models

import (
	"fmt"
	"strings"
	"time"
)

// CastError reports a request value that cannot be converted to the type of
// the issue field it targets.
type CastError struct {
	Field string
	Value any
}

func (e *CastError) Error() string {
	return fmt.Sprintf("cast failed for value %q at path %q", fmt.Sprint(e.Value), e.Field)
}

// ParseOpen converts a request value to the open flag. It accepts booleans,
// the numbers 0 and 1, and the strings true/false, 1/0 and yes/no.
func ParseOpen(v any) (bool, error) {
	switch val := v.(type) {
	case bool:
		return val, nil
	case float64:
		switch val {
		case 1:
			return true, nil
		case 0:
			return false, nil
		}
	case string:
		switch strings.ToLower(strings.TrimSpace(val)) {
		case "true", "1", "yes":
			return true, nil
		case "false", "0", "no":
			return false, nil
		}
	}
	return false, &CastError{Field: FieldOpen, Value: v}
}

func parseTimestamp(field, s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, &CastError{Field: field, Value: s}
	}
	return t.UTC(), nil
}
