package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/foodai/festival-guide/backend/internal/metrics"
)

func TestAccessLog(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	router := gin.New()
	router.Use(ClientID(), AccessLog(zap.New(core)))
	router.GET("/booths/:id", func(c *gin.Context) {
		c.Status(http.StatusNotFound)
	})

	before := testutil.CollectAndCount(metrics.HTTPRequestDuration)
	req := httptest.NewRequest(http.MethodGet, "/booths/B99", nil)
	req.Header.Set(ClientIDHeader, "visitor-1")
	router.ServeHTTP(httptest.NewRecorder(), req)

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		e := entries[0]
		assert.Equal(t, zapcore.WarnLevel, e.Level)
		fields := e.ContextMap()
		assert.Equal(t, "/booths/B99", fields["path"])
		assert.Equal(t, int64(http.StatusNotFound), fields["status"])
		assert.Equal(t, "visitor-1", fields["client_id"])
	}
	assert.Equal(t, before+1, testutil.CollectAndCount(metrics.HTTPRequestDuration), "one new route series")
}
