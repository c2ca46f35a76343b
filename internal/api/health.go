package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/foodai/festival-guide/backend/internal/catalog"
	"github.com/foodai/festival-guide/backend/internal/types"
)

const Version = "v1.0.0"

// HealthHandler reports liveness with catalog and Redis status
type HealthHandler struct {
	catalog *catalog.Catalog
	redis   *redis.Client
}

// NewHealthHandler creates a health handler. redisClient may be nil when
// profiles are kept in memory.
func NewHealthHandler(cat *catalog.Catalog, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{
		catalog: cat,
		redis:   redisClient,
	}
}

func (h *HealthHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/health", h.Health)
	router.GET("/api/health", h.Health)
}

// Health always answers 200 while the process serves requests; a Redis
// outage only degrades profile storage.
func (h *HealthHandler) Health(c *gin.Context) {
	resp := types.HealthResponse{
		Status:  "healthy",
		Booths:  h.catalog.BoothCount(),
		Items:   h.catalog.ItemCount(),
		Redis:   "disabled",
		Version: Version,
	}
	if h.redis != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.redis.Ping(ctx).Err(); err != nil {
			resp.Status = "degraded"
			resp.Redis = "unavailable"
		} else {
			resp.Redis = "ok"
		}
	}
	c.JSON(http.StatusOK, resp)
}
