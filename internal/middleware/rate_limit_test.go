package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/foodai/festival-guide/backend/internal/testhelpers"
)

func limitedRouter(rl *RateLimiter) *gin.Engine {
	router := gin.New()
	router.Use(ClientID())
	router.POST("/ingest", rl.RateLimitMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusAccepted)
	})
	return router
}

func post(router *gin.Engine, clientID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/ingest", nil)
	req.Header.Set(ClientIDHeader, clientID)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestRateLimitPerClient(t *testing.T) {
	_, client := testhelpers.NewMiniredis(t)

	rl := NewIngestRateLimiter(client, 2, zaptest.NewLogger(t))
	now := time.Date(2025, 10, 3, 12, 30, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }
	router := limitedRouter(rl)

	rr := post(router, "a")
	assert.Equal(t, http.StatusAccepted, rr.Code)
	assert.Equal(t, "2", rr.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", rr.Header().Get("X-RateLimit-Remaining"))

	assert.Equal(t, http.StatusAccepted, post(router, "a").Code)

	rr = post(router, "a")
	require.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Contains(t, rr.Body.String(), "rate limit exceeded")
	assert.Contains(t, rr.Body.String(), `"retry_after":1800`)

	assert.Equal(t, http.StatusAccepted, post(router, "b").Code, "other clients keep their quota")

	now = now.Add(time.Hour)
	assert.Equal(t, http.StatusAccepted, post(router, "a").Code, "new window")
}

func TestRateLimitFailsOpen(t *testing.T) {
	mr, client := testhelpers.NewMiniredis(t)
	mr.Close()

	rr := post(limitedRouter(NewIngestRateLimiter(client, 1, zaptest.NewLogger(t))), "a")
	assert.Equal(t, http.StatusAccepted, rr.Code)
	assert.Equal(t, "rate limit check failed", rr.Header().Get("X-RateLimit-Error"))
}

func TestRateLimitDisabled(t *testing.T) {
	rr := post(limitedRouter(NewIngestRateLimiter(nil, 5, zaptest.NewLogger(t))), "a")
	assert.Equal(t, http.StatusAccepted, rr.Code)
	assert.Empty(t, rr.Header().Get("X-RateLimit-Limit"))
}
