package service

import (
	"context"
	"io"
	"time"

	"github.com/foodai/festival-guide/backend/internal/dietary"
	"github.com/foodai/festival-guide/backend/internal/ingest"
	"github.com/foodai/festival-guide/backend/internal/models"
	"github.com/foodai/festival-guide/backend/internal/types"
)

// BlobStore keeps opaque byte blobs per client. Load returns nil data and
// a nil error when nothing is stored.
type BlobStore interface {
	Load(ctx context.Context, clientID string) ([]byte, error)
	Save(ctx context.Context, clientID string, data []byte) error
	Delete(ctx context.Context, clientID string) error
}

// ProfileRepository persists raw survey blobs. The blob is normalized on
// every load, so older or partial payloads stay readable.
type ProfileRepository interface {
	BlobStore
}

// ObjectStore keeps uploaded menu files. config.S3Config implements it.
type ObjectStore interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) error
	GeneratePresignedURL(ctx context.Context, objectKey string, expiration time.Duration) (string, error)
}

// IProfileService defines the interface for visitor profile operations
type IProfileService interface {
	Get(ctx context.Context, clientID string) *dietary.Profile
	Put(ctx context.Context, clientID string, raw []byte) (dietary.Profile, error)
	Delete(ctx context.Context, clientID string) error
	Scan(ctx context.Context, clientID, code string) (dietary.Profile, error)
}

// IGuideService defines the interface for catalog browsing with verdicts
type IGuideService interface {
	Booths(ctx context.Context, clientID string, allowedOnly bool) []dietary.BoothResult
	Booth(ctx context.Context, clientID, boothID string) (*types.BoothDetail, error)
	MenuItem(ctx context.Context, clientID, boothID, menuID string) (*dietary.Result, error)
	Recommendations(ctx context.Context, clientID string, limit int) []dietary.Result
	Evaluate(profile *dietary.Profile, items []models.MenuItem) []dietary.Result
}

// IIngestService defines the interface for menu upload ingestion and review
type IIngestService interface {
	Ingest(ctx context.Context, clientID string, uploads []Upload, defaultBooth string) (*types.IngestResult, error)
	LastBatch(ctx context.Context, clientID string) ([]ingest.Draft, error)
	Review(drafts []ingest.Draft) (*types.ReviewResult, error)
}
