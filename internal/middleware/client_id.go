package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// ClientIDHeader carries the opaque visitor ID that keys stored profiles.
	ClientIDHeader = "X-Client-ID"

	clientIDKey    = "client_id"
	maxClientIDLen = 128
)

// ClientID reads the visitor ID from the request header, issuing a new one
// when it is missing or unusable. The ID is echoed back so the frontend
// can keep it.
func ClientID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(ClientIDHeader))
		if id == "" || len(id) > maxClientIDLen {
			id = uuid.New().String()
		}
		c.Set(clientIDKey, id)
		c.Header(ClientIDHeader, id)
		c.Next()
	}
}

// GetClientID returns the ID set by ClientID, or "" outside that middleware.
func GetClientID(c *gin.Context) string {
	return c.GetString(clientIDKey)
}
