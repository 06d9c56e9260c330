package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func setupRouter(store *memStore) *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	RegisterRoutes(r, store)
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body == nil {
		reader = bytes.NewReader(nil)
	} else {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func doForm(t *testing.T, r http.Handler, method, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()

	req, err := http.NewRequest(method, path, strings.NewReader(form.Encode()))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func decodeObject(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var out map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out), rr.Body.String())
	return out
}

func decodeArray(t *testing.T, rr *httptest.ResponseRecorder) []map[string]any {
	t.Helper()

	var out []map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out), rr.Body.String())
	return out
}

// postIssue files an issue and returns the decoded response.
func postIssue(t *testing.T, r http.Handler, project string, body map[string]any) map[string]any {
	t.Helper()

	rr := doJSON(t, r, http.MethodPost, "/issues/"+project, body)
	require.Equal(t, http.StatusOK, rr.Code)

	issue := decodeObject(t, rr)
	require.NotContains(t, issue, "error")
	return issue
}

func validIssue() map[string]any {
	return map[string]any{
		"issue_title": "bug",
		"issue_text":  "desc",
		"created_by":  "alice",
	}
}
