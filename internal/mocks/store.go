package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/foodai/festival-guide/backend/internal/service"
)

// MockBlobStore is a mock implementation of service.BlobStore, usable
// wherever a ProfileRepository is expected.
type MockBlobStore struct {
	mock.Mock
}

var _ service.ProfileRepository = (*MockBlobStore)(nil)

func (m *MockBlobStore) Load(ctx context.Context, clientID string) ([]byte, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockBlobStore) Save(ctx context.Context, clientID string, data []byte) error {
	args := m.Called(ctx, clientID, data)
	return args.Error(0)
}

func (m *MockBlobStore) Delete(ctx context.Context, clientID string) error {
	args := m.Called(ctx, clientID)
	return args.Error(0)
}
