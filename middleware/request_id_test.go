package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RequestID())
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"gin": c.GetString("request_id"),
			"ctx": GetRequestID(c.Request.Context()),
		})
	})
	return r
}

func TestRequestID_Generated(t *testing.T) {
	r := setupRouter()

	req, err := http.NewRequest(http.MethodGet, "/ping", nil)
	require.NoError(t, err)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	rid := rr.Header().Get(HeaderRequestID)
	assert.NotEmpty(t, rid)
	assert.JSONEq(t, `{"gin":"`+rid+`","ctx":"`+rid+`"}`, rr.Body.String())
}

func TestRequestID_Propagated(t *testing.T) {
	r := setupRouter()

	req, err := http.NewRequest(http.MethodGet, "/ping", nil)
	require.NoError(t, err)
	req.Header.Set(HeaderRequestID, "abc-123")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, "abc-123", rr.Header().Get(HeaderRequestID))
	assert.JSONEq(t, `{"gin":"abc-123","ctx":"abc-123"}`, rr.Body.String())
}

func TestGetRequestID_Missing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	assert.Equal(t, "", GetRequestID(req.Context()))
}
