package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/foodai/festival-guide/backend/internal/ingest"
	"github.com/foodai/festival-guide/backend/internal/service"
	"github.com/foodai/festival-guide/backend/internal/types"
)

// MockIngestService is a mock implementation of the IIngestService interface
type MockIngestService struct {
	mock.Mock
}

var _ service.IIngestService = (*MockIngestService)(nil)

func (m *MockIngestService) Ingest(ctx context.Context, clientID string, uploads []service.Upload, defaultBooth string) (*types.IngestResult, error) {
	args := m.Called(ctx, clientID, uploads, defaultBooth)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.IngestResult), args.Error(1)
}

func (m *MockIngestService) LastBatch(ctx context.Context, clientID string) ([]ingest.Draft, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ingest.Draft), args.Error(1)
}

func (m *MockIngestService) Review(drafts []ingest.Draft) (*types.ReviewResult, error) {
	args := m.Called(drafts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.ReviewResult), args.Error(1)
}
