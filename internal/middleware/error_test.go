package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestErrorHandler(t *testing.T) {
	router := gin.New()
	router.Use(ErrorHandler(zaptest.NewLogger(t)))
	router.GET("/fail", func(c *gin.Context) {
		c.Status(http.StatusBadGateway)
		_ = c.Error(errors.New("Test error"))
	})
	router.GET("/unset", func(c *gin.Context) {
		_ = c.Error(errors.New("no status"))
	})
	router.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})
	router.GET("/written", func(c *gin.Context) {
		_ = c.Error(errors.New("ignored"))
		c.JSON(http.StatusConflict, gin.H{"error": "handler body"})
	})

	tests := []struct {
		path   string
		status int
		body   string
	}{
		{"/fail", http.StatusBadGateway, `{"error":"Test error"}`},
		{"/unset", http.StatusInternalServerError, `{"error":"no status"}`},
		{"/panic", http.StatusInternalServerError, `{"error":"Internal Server Error"}`},
		{"/written", http.StatusConflict, `{"error":"handler body"}`},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.status, rr.Code)
			assert.JSONEq(t, tt.body, rr.Body.String())
		})
	}
}
