package handlers

import (
	"bytes"
	"errors"
	"issuetracker/middleware"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandlerLogsCarryRequestID(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	store := newMemStore()
	store.errFindProject = errors.New("connection refused")

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.RequestID())
	RegisterRoutes(r, store)

	req, err := http.NewRequest(http.MethodGet, "/issues/demo", nil)
	require.NoError(t, err)
	req.Header.Set(middleware.HeaderRequestID, "trace-42")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, map[string]any{"error": "could not get issues"}, decodeObject(t, rr))
	assert.Contains(t, buf.String(), "[req] id=trace-42 ListIssues database error: connection refused")
	assert.Contains(t, buf.String(), "[req] id=trace-42 method=GET path=/issues/demo")
}
