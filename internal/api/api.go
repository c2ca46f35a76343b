package api

import "github.com/gin-gonic/gin"

// Handlers groups every handler the HTTP server mounts.
type Handlers struct {
	Health  *HealthHandler
	Profile *ProfileHandler
	Guide   *GuideHandler
	Admin   *AdminHandler
}

// RegisterRoutes mounts the health endpoints at the root and everything else
// under /api/v1.
func RegisterRoutes(router *gin.Engine, h Handlers) {
	h.Health.RegisterRoutes(router)

	v1 := router.Group("/api/v1")
	h.Profile.RegisterRoutes(v1)
	h.Guide.RegisterRoutes(v1)
	h.Admin.RegisterRoutes(v1)
}
