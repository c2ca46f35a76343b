package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/foodai/festival-guide/backend/internal/ingest"
	"github.com/foodai/festival-guide/backend/internal/metrics"
	"github.com/foodai/festival-guide/backend/internal/types"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrNoFiles       = errors.New("no files uploaded")
	ErrTooManyFiles  = errors.New("too many files")
	ErrNoReviewItems = errors.New("no drafts to review")
)

// ImageURLExpiry is the lifetime of presigned links to uploaded files.
const ImageURLExpiry = 24 * time.Hour

// Upload is one file from an ingestion request.
type Upload struct {
	ingest.FileMeta
	Open func() (io.ReadCloser, error)
}

// IngestConfig holds the ingestion limits and link settings
type IngestConfig struct {
	MaxFiles      int
	DefaultBooth  string
	PublicBaseURL string
}

// IngestService turns uploaded menu files into reviewable drafts
type IngestService struct {
	source  ingest.Source
	batches BlobStore
	objects ObjectStore
	config  IngestConfig
	logger  *zap.Logger
}

var _ IIngestService = (*IngestService)(nil)

// NewIngestService creates a new IngestService instance. objects may be nil,
// in which case file contents are discarded after their metadata is read.
func NewIngestService(source ingest.Source, batches BlobStore, objects ObjectStore, cfg IngestConfig, logger *zap.Logger) *IngestService {
	return &IngestService{
		source:  source,
		batches: batches,
		objects: objects,
		config:  cfg,
		logger:  logger,
	}
}

// Ingest validates the uploads, synthesizes drafts and keeps them as the
// client's last batch.
func (s *IngestService) Ingest(ctx context.Context, clientID string, uploads []Upload, defaultBooth string) (*types.IngestResult, error) {
	if len(uploads) == 0 {
		return nil, ErrNoFiles
	}
	if len(uploads) > s.config.MaxFiles {
		return nil, fmt.Errorf("%w: %d uploaded, at most %d allowed", ErrTooManyFiles, len(uploads), s.config.MaxFiles)
	}

	for _, u := range uploads {
		if err := ingest.ValidateFile(u.FileMeta); err != nil {
			return nil, err
		}
	}

	defaultBooth = strings.TrimSpace(defaultBooth)
	if defaultBooth == "" {
		defaultBooth = s.config.DefaultBooth
	}

	var links []string
	if s.objects != nil {
		links = s.store(ctx, uploads, defaultBooth)
	}

	// one file at a time, so each draft can be tied to its upload even when
	// two uploads share a file name
	var drafts []ingest.Draft
	for i, u := range uploads {
		fileDrafts := s.source.Drafts([]ingest.FileMeta{u.FileMeta}, defaultBooth)
		if links != nil {
			for j := range fileDrafts {
				fileDrafts[j].ImageURL = links[i]
			}
		}
		drafts = append(drafts, fileDrafts...)
	}
	metrics.IngestedDrafts.Add(float64(len(drafts)))

	if data, err := json.Marshal(drafts); err != nil {
		s.logger.Error("failed to marshal ingest batch", zap.Error(err))
	} else if err := s.batches.Save(ctx, clientID, data); err != nil {
		s.logger.Warn("failed to keep ingest batch",
			zap.String("client_id", clientID),
			zap.Error(err),
		)
	}

	s.logger.Info("menu files ingested",
		zap.String("client_id", clientID),
		zap.Int("files", len(uploads)),
		zap.Int("drafts", len(drafts)),
	)

	return &types.IngestResult{
		Files:  len(uploads),
		Drafts: drafts,
	}, nil
}

// store uploads each file and returns presigned links indexed like uploads.
// Files that fail to upload get an empty link.
func (s *IngestService) store(ctx context.Context, uploads []Upload, defaultBooth string) []string {
	links := make([]string, len(uploads))
	for i, u := range uploads {
		key := ObjectKey(ingest.BoothCode(u.Name, defaultBooth), u.Name)
		if err := s.upload(ctx, key, u); err != nil {
			s.logger.Warn("failed to store menu file",
				zap.String("file", u.Name),
				zap.String("key", key),
				zap.Error(err),
			)
			continue
		}
		link, err := s.objects.GeneratePresignedURL(ctx, key, ImageURLExpiry)
		if err != nil {
			s.logger.Warn("failed to presign menu file", zap.String("key", key), zap.Error(err))
			continue
		}
		links[i] = link
	}
	return links
}

func (s *IngestService) upload(ctx context.Context, key string, u Upload) error {
	if u.Open == nil {
		return errors.New("upload has no content")
	}
	body, err := u.Open()
	if err != nil {
		return fmt.Errorf("failed to open upload: %w", err)
	}
	defer body.Close()
	return s.objects.Upload(ctx, key, u.ContentType, body)
}

// ObjectKey is the storage key for an uploaded menu file:
// menus/<booth>/<uuid><ext>.
func ObjectKey(booth, fileName string) string {
	return fmt.Sprintf("menus/%s/%s%s", booth, uuid.New().String(), strings.ToLower(path.Ext(fileName)))
}

// LastBatch returns the client's most recent drafts, or nil when none are
// kept.
func (s *IngestService) LastBatch(ctx context.Context, clientID string) ([]ingest.Draft, error) {
	data, err := s.batches.Load(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}
	var drafts []ingest.Draft
	if err := json.Unmarshal(data, &drafts); err != nil {
		return nil, fmt.Errorf("failed to unmarshal ingest batch: %w", err)
	}
	return drafts, nil
}

// Review validates edited drafts into menu items. Each accepted item gets a
// fresh ID and the deep link for its booth page. Rejected drafts are
// reported by index and do not stop the rest.
func (s *IngestService) Review(drafts []ingest.Draft) (*types.ReviewResult, error) {
	if len(drafts) == 0 {
		return nil, ErrNoReviewItems
	}
	result := &types.ReviewResult{
		Items:  []types.ReviewedItem{},
		Errors: []types.ReviewError{},
	}
	for i, d := range drafts {
		item, err := d.ToMenuItem(uuid.New().String())
		if err != nil {
			result.Errors = append(result.Errors, types.ReviewError{Index: i, Error: err.Error()})
			continue
		}
		result.Items = append(result.Items, types.ReviewedItem{
			Item:     item,
			DeepLink: DeepLink(s.config.PublicBaseURL, item.BoothID, item.ID),
		})
	}
	return result, nil
}

// DeepLink is the page URL for one menu item: <base>/map/<booth>/menu/<menu>.
func DeepLink(baseURL, boothID, menuID string) string {
	return fmt.Sprintf("%s/map/%s/menu/%s",
		strings.TrimRight(baseURL, "/"),
		url.PathEscape(boothID),
		url.PathEscape(menuID),
	)
}
