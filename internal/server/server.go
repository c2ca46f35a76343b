package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/foodai/festival-guide/backend/config"
	"github.com/foodai/festival-guide/backend/internal/api"
	"github.com/foodai/festival-guide/backend/internal/catalog"
	"github.com/foodai/festival-guide/backend/internal/database"
	"github.com/foodai/festival-guide/backend/internal/ingest"
	"github.com/foodai/festival-guide/backend/internal/middleware"
	"github.com/foodai/festival-guide/backend/internal/router"
	"github.com/foodai/festival-guide/backend/internal/service"
)

// Server represents the HTTP server and the connections it owns
type Server struct {
	cfg    *config.Config
	router *gin.Engine
	http   *http.Server
	logger *zap.Logger
	redis  *redis.Client
	db     *gorm.DB
}

// New loads the catalog, connects storage and wires every handler.
// Outside production an unreachable Redis falls back to in-memory stores.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Server, error) {
	s := &Server{cfg: cfg, logger: logger}

	if cfg.CatalogSource == string(catalog.SourceDatabase) {
		db, err := database.Open(cfg, logger)
		if err != nil {
			return nil, err
		}
		s.db = db
	}

	cat, err := catalog.Load(ctx, catalog.Options{
		Source: catalog.Source(cfg.CatalogSource),
		Path:   cfg.CatalogPath,
		DB:     s.db,
	}, logger)
	if err != nil {
		s.close()
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	if cfg.RedisEnabled() {
		client, err := database.NewRedisClient(cfg, logger)
		switch {
		case err == nil:
			s.redis = client
		case cfg.Environment == config.Production:
			s.close()
			return nil, err
		default:
			logger.Warn("Redis unavailable, keeping profiles in memory", zap.Error(err))
		}
	}

	var (
		profiles service.ProfileRepository
		batches  service.BlobStore
	)
	if s.redis != nil {
		profiles = service.NewRedisProfileRepository(s.redis, cfg.ProfileTTL)
		batches = service.NewRedisStore(s.redis, service.BatchKeyPrefix, service.BatchTTL)
	} else {
		profiles = service.NewMemoryStore(cfg.ProfileTTL)
		batches = service.NewMemoryStore(service.BatchTTL)
	}

	var objects service.ObjectStore
	if cfg.S3Enabled() {
		s3cfg, err := config.NewS3Config(ctx, cfg)
		if err != nil {
			s.close()
			return nil, fmt.Errorf("failed to initialize S3: %w", err)
		}
		objects = s3cfg
		logger.Info("storing menu uploads in S3", zap.String("bucket", s3cfg.BucketName))
	}

	seed := cfg.IngestSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	profileService := service.NewProfileService(profiles, logger)
	guideService := service.NewGuideService(cat, profileService, logger)
	ingestService := service.NewIngestService(ingest.NewSynthesizer(seed), batches, objects, service.IngestConfig{
		MaxFiles:      cfg.IngestMaxFiles,
		DefaultBooth:  cfg.IngestDefaultBooth,
		PublicBaseURL: cfg.PublicBaseURL,
	}, logger)

	var limiter *middleware.RateLimiter
	if s.redis != nil {
		limiter = middleware.NewIngestRateLimiter(s.redis, cfg.IngestRateLimit, logger)
	}

	s.router = router.SetupRouter(cfg.CORSAllowedOrigins, logger, api.Handlers{
		Health:  api.NewHealthHandler(cat, s.redis),
		Profile: api.NewProfileHandler(profileService, logger),
		Guide:   api.NewGuideHandler(guideService),
		Admin:   api.NewAdminHandler(ingestService, limiter, logger),
	})
	s.http = &http.Server{
		Addr:              cfg.Addr(),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s, nil
}

// Handler returns the configured router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves HTTP until the server is shut down
func (s *Server) Start() error {
	s.logger.Info("starting server", zap.String("addr", s.http.Addr), zap.String("environment", string(s.cfg.Environment)))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server and releases connections
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.http.Shutdown(ctx)
	s.close()
	return err
}

func (s *Server) close() {
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Warn("failed to close Redis client", zap.Error(err))
		}
	}
	if s.db != nil {
		if sqlDB, err := s.db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
}
