package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/foodai/festival-guide/backend/internal/dietary"
	"github.com/foodai/festival-guide/backend/internal/service"
)

// MockProfileService is a mock implementation of the IProfileService interface
type MockProfileService struct {
	mock.Mock
}

var _ service.IProfileService = (*MockProfileService)(nil)

func (m *MockProfileService) Get(ctx context.Context, clientID string) *dietary.Profile {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*dietary.Profile)
}

func (m *MockProfileService) Put(ctx context.Context, clientID string, raw []byte) (dietary.Profile, error) {
	args := m.Called(ctx, clientID, raw)
	return args.Get(0).(dietary.Profile), args.Error(1)
}

func (m *MockProfileService) Delete(ctx context.Context, clientID string) error {
	args := m.Called(ctx, clientID)
	return args.Error(0)
}

func (m *MockProfileService) Scan(ctx context.Context, clientID, code string) (dietary.Profile, error) {
	args := m.Called(ctx, clientID, code)
	return args.Get(0).(dietary.Profile), args.Error(1)
}
