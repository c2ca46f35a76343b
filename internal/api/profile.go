package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/foodai/festival-guide/backend/internal/middleware"
	"github.com/foodai/festival-guide/backend/internal/service"
	"github.com/foodai/festival-guide/backend/internal/types"
)

// maxProfileBytes bounds survey payloads.
const maxProfileBytes = 64 << 10

type ProfileHandler struct {
	profiles service.IProfileService
	logger   *zap.Logger
}

func NewProfileHandler(profiles service.IProfileService, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		profiles: profiles,
		logger:   logger,
	}
}

func (h *ProfileHandler) RegisterRoutes(router *gin.RouterGroup) {
	profile := router.Group("/profile")
	{
		profile.GET("", h.GetProfile)
		profile.PUT("", h.UpdateProfile)
		profile.DELETE("", h.DeleteProfile)
		profile.POST("/scan", h.Scan)
	}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	profile := h.profiles.Get(c.Request.Context(), middleware.GetClientID(c))
	c.JSON(http.StatusOK, types.ProfileResponse{Profile: profile})
}

// UpdateProfile accepts any survey object. Unknown fields are ignored and
// missing ones take defaults.
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	raw, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxProfileBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "profile too large"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}
	if !isJSONObject(raw) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "profile must be a JSON object"})
		return
	}

	profile, err := h.profiles.Put(c.Request.Context(), middleware.GetClientID(c), raw)
	if err != nil {
		h.logger.Error("failed to save profile", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "failed to save profile"})
		return
	}

	c.JSON(http.StatusOK, types.ProfileResponse{Profile: &profile})
}

func (h *ProfileHandler) DeleteProfile(c *gin.Context) {
	if err := h.profiles.Delete(c.Request.Context(), middleware.GetClientID(c)); err != nil {
		h.logger.Error("failed to delete profile", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "failed to delete profile"})
		return
	}
	c.Status(http.StatusNoContent)
}

// Scan stores the scanned booth code exactly as received.
func (h *ProfileHandler) Scan(c *gin.Context) {
	var req types.ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "code is required"})
		return
	}

	profile, err := h.profiles.Scan(c.Request.Context(), middleware.GetClientID(c), req.Code)
	if err != nil {
		h.logger.Error("failed to record scan", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "failed to save profile"})
		return
	}

	c.JSON(http.StatusOK, types.ProfileResponse{Profile: &profile})
}

func isJSONObject(raw []byte) bool {
	var m map[string]any
	return json.Unmarshal(raw, &m) == nil && m != nil
}
