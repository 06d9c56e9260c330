package handlers

import (
	"bytes"
	"fmt"
	"issuetracker/models"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// readBody decodes a JSON or urlencoded request body into a field map so
// handlers can tell an absent field from an empty one. Form values keep
// the first occurrence of a key. Non-POST form bodies are not parsed by
// net/http, hence the manual decoding.
func readBody(c *gin.Context) (map[string]any, error) {
	raw, err := c.GetRawData()
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}

	body := map[string]any{}
	if len(bytes.TrimSpace(raw)) == 0 {
		return body, nil
	}

	if c.ContentType() == binding.MIMEJSON {
		if err := binding.JSON.BindBody(raw, &body); err != nil {
			return nil, fmt.Errorf("failed to decode JSON body: %w", err)
		}
		return body, nil
	}

	values, err := url.ParseQuery(string(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to decode form body: %w", err)
	}
	for key, vs := range values {
		if len(vs) > 0 {
			body[key] = vs[0]
		}
	}
	return body, nil
}

// sent reports whether a body field was supplied with anything other than
// the empty string. null counts as sent.
func sent(body map[string]any, key string) bool {
	v, ok := body[key]
	return ok && v != ""
}

// stringField reads a string issue field from the body. Truthy scalars are
// converted, falsy values report false, and objects or arrays fail to cast.
func stringField(body map[string]any, key string) (string, bool, error) {
	switch v := body[key].(type) {
	case map[string]any, []any:
		return "", false, &models.CastError{Field: key, Value: v}
	default:
		s, ok := truthyString(v)
		return s, ok, nil
	}
}

// createRequest collects the POST fields. ok is false when a required field
// is falsy; err is set when a field holds an object or array.
func createRequest(body map[string]any) (req models.CreateIssueRequest, ok bool, err error) {
	fields := []struct {
		key      string
		target   *string
		required bool
	}{
		{models.FieldIssueTitle, &req.IssueTitle, true},
		{models.FieldIssueText, &req.IssueText, true},
		{models.FieldCreatedBy, &req.CreatedBy, true},
		{models.FieldAssignedTo, &req.AssignedTo, false},
		{models.FieldStatusText, &req.StatusText, false},
	}

	ok = true
	for _, f := range fields {
		s, truthy, castErr := stringField(body, f.key)
		if castErr != nil && err == nil {
			err = castErr
		}
		if truthy {
			*f.target = s
		} else if f.required && castErr == nil {
			ok = false
		}
	}
	return req, ok, err
}

// truthyString converts a body value to a string when it is truthy: a
// non-empty string, a non-zero number or true.
func truthyString(v any) (string, bool) {
	switch val := v.(type) {
	case string:
		return val, val != ""
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), val != 0
	case bool:
		return "true", val
	default:
		return "", false
	}
}
