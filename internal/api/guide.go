package api

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/foodai/festival-guide/backend/internal/catalog"
	"github.com/foodai/festival-guide/backend/internal/dietary"
	"github.com/foodai/festival-guide/backend/internal/middleware"
	"github.com/foodai/festival-guide/backend/internal/service"
	"github.com/foodai/festival-guide/backend/internal/types"
)

// GuideHandler serves the map and menu views with verdicts for the caller
type GuideHandler struct {
	guide service.IGuideService
}

func NewGuideHandler(guide service.IGuideService) *GuideHandler {
	return &GuideHandler{guide: guide}
}

func (h *GuideHandler) RegisterRoutes(router *gin.RouterGroup) {
	booths := router.Group("/booths")
	{
		booths.GET("", h.ListBooths)
		booths.GET("/:boothId", h.GetBooth)
		booths.GET("/:boothId/menu/:menuId", h.GetMenuItem)
	}
	router.GET("/recommendations", h.Recommendations)
	router.POST("/evaluate", h.Evaluate)
}

func (h *GuideHandler) ListBooths(c *gin.Context) {
	allowedOnly := false
	if v := c.Query("allowed"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "allowed must be a boolean"})
			return
		}
		allowedOnly = b
	}

	results := h.guide.Booths(c.Request.Context(), middleware.GetClientID(c), allowedOnly)
	c.JSON(http.StatusOK, gin.H{"booths": results})
}

func (h *GuideHandler) GetBooth(c *gin.Context) {
	detail, err := h.guide.Booth(c.Request.Context(), middleware.GetClientID(c), c.Param("boothId"))
	if err != nil {
		notFoundOrError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *GuideHandler) GetMenuItem(c *gin.Context) {
	result, err := h.guide.MenuItem(c.Request.Context(), middleware.GetClientID(c), c.Param("boothId"), c.Param("menuId"))
	if err != nil {
		notFoundOrError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *GuideHandler) Recommendations(c *gin.Context) {
	limit := 0
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		limit = n
	}

	results := h.guide.Recommendations(c.Request.Context(), middleware.GetClientID(c), limit)
	c.JSON(http.StatusOK, gin.H{"items": results})
}

// Evaluate runs the supplied items against the supplied profile without
// touching stored state. A null or absent profile evaluates permissively.
func (h *GuideHandler) Evaluate(c *gin.Context) {
	var req types.EvaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	var profile *dietary.Profile
	raw := bytes.TrimSpace(req.Profile)
	if len(raw) > 0 && !bytes.Equal(raw, []byte("null")) {
		if !isJSONObject(raw) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "profile must be a JSON object or null"})
			return
		}
		p := dietary.Normalize(raw)
		profile = &p
	}

	results := h.guide.Evaluate(profile, req.Items)
	c.JSON(http.StatusOK, gin.H{"results": results})
}

func notFoundOrError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, catalog.ErrBoothNotFound), errors.Is(err, catalog.ErrMenuNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.Status(http.StatusInternalServerError)
		_ = c.Error(err)
	}
}
