package api

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/foodai/festival-guide/backend/internal/ingest"
	"github.com/foodai/festival-guide/backend/internal/middleware"
	"github.com/foodai/festival-guide/backend/internal/service"
	"github.com/foodai/festival-guide/backend/internal/types"
)

// AdminHandler serves menu ingestion and review for booth operators
type AdminHandler struct {
	ingest  service.IIngestService
	limiter *middleware.RateLimiter
	logger  *zap.Logger
}

// NewAdminHandler creates the admin handler. limiter may be nil.
func NewAdminHandler(ingestService service.IIngestService, limiter *middleware.RateLimiter, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		ingest:  ingestService,
		limiter: limiter,
		logger:  logger,
	}
}

func (h *AdminHandler) RegisterRoutes(router *gin.RouterGroup) {
	admin := router.Group("/admin")
	{
		if h.limiter != nil {
			admin.POST("/ingest", h.limiter.RateLimitMiddleware(), h.Ingest)
		} else {
			admin.POST("/ingest", h.Ingest)
		}
		admin.GET("/ingest/last", h.LastBatch)
		admin.POST("/review", h.Review)
	}
}

// Ingest accepts multipart files under "files[]" (or "files") and an
// optional "defaultBooth" field.
func (h *AdminHandler) Ingest(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil && !errors.Is(err, http.ErrNotMultipart) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid multipart form"})
		return
	}

	var headers []*multipart.FileHeader
	defaultBooth := ""
	if form != nil {
		headers = append(form.File["files[]"], form.File["files"]...)
		if v := form.Value["defaultBooth"]; len(v) > 0 {
			defaultBooth = v[0]
		}
	}

	uploads := make([]service.Upload, len(headers))
	for i, fh := range headers {
		uploads[i] = service.Upload{
			FileMeta: ingest.FileMeta{
				Name:        fh.Filename,
				ContentType: fh.Header.Get("Content-Type"),
				Size:        fh.Size,
			},
			Open: func() (io.ReadCloser, error) { return fh.Open() },
		}
	}

	result, err := h.ingest.Ingest(c.Request.Context(), middleware.GetClientID(c), uploads, defaultBooth)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, result)
	case errors.Is(err, service.ErrNoFiles), errors.Is(err, service.ErrTooManyFiles):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, ingest.ErrUnsupportedFile):
		c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": err.Error()})
	default:
		c.Status(http.StatusInternalServerError)
		_ = c.Error(err)
	}
}

// LastBatch returns the caller's most recent drafts. An unreadable batch
// store reads as no batch.
func (h *AdminHandler) LastBatch(c *gin.Context) {
	drafts, err := h.ingest.LastBatch(c.Request.Context(), middleware.GetClientID(c))
	if err != nil {
		h.logger.Warn("failed to load last ingest batch", zap.Error(err))
	}
	if drafts == nil {
		drafts = []ingest.Draft{}
	}
	c.JSON(http.StatusOK, gin.H{"drafts": drafts})
}

func (h *AdminHandler) Review(c *gin.Context) {
	var req types.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "drafts are required"})
		return
	}

	result, err := h.ingest.Review(req.Drafts)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}
