package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/foodai/festival-guide/backend/internal/dietary"
	"github.com/foodai/festival-guide/backend/internal/metrics"
	"go.uber.org/zap"
)

// ProfileService handles visitor survey profiles
type ProfileService struct {
	repo   ProfileRepository
	logger *zap.Logger
}

// Ensure ProfileService implements IProfileService
var _ IProfileService = (*ProfileService)(nil)

// NewProfileService creates a new ProfileService instance
func NewProfileService(repo ProfileRepository, logger *zap.Logger) *ProfileService {
	return &ProfileService{
		repo:   repo,
		logger: logger,
	}
}

// Get returns the normalized stored profile, or nil when the client has
// none. Repository failures are logged and read as "no profile".
func (s *ProfileService) Get(ctx context.Context, clientID string) *dietary.Profile {
	data, err := s.repo.Load(ctx, clientID)
	if err != nil {
		metrics.ProfileStoreErrors.WithLabelValues("load").Inc()
		s.logger.Warn("profile load failed, evaluating without profile",
			zap.String("client_id", clientID),
			zap.Error(err),
		)
		return nil
	}
	return dietary.ParseStored(data)
}

// Put normalizes raw and stores the result. A payload without a scanned
// code keeps the one already stored.
func (s *ProfileService) Put(ctx context.Context, clientID string, raw []byte) (dietary.Profile, error) {
	profile := dietary.Normalize(raw)
	if profile.LastScannedCode == "" {
		if prev := s.Get(ctx, clientID); prev != nil {
			profile.LastScannedCode = prev.LastScannedCode
		}
	}
	if err := s.save(ctx, clientID, profile); err != nil {
		return dietary.Profile{}, err
	}
	return profile, nil
}

// Delete clears the stored profile, returning the client to permissive
// evaluation.
func (s *ProfileService) Delete(ctx context.Context, clientID string) error {
	if err := s.repo.Delete(ctx, clientID); err != nil {
		metrics.ProfileStoreErrors.WithLabelValues("delete").Inc()
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	return nil
}

// Scan records a scanned booth code verbatim. A client without a profile
// gets the default one.
func (s *ProfileService) Scan(ctx context.Context, clientID, code string) (dietary.Profile, error) {
	profile := dietary.DefaultProfile()
	if prev := s.Get(ctx, clientID); prev != nil {
		profile = *prev
	}
	profile.LastScannedCode = code
	if err := s.save(ctx, clientID, profile); err != nil {
		return dietary.Profile{}, err
	}
	return profile, nil
}

func (s *ProfileService) save(ctx context.Context, clientID string, profile dietary.Profile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}
	if err := s.repo.Save(ctx, clientID, data); err != nil {
		metrics.ProfileStoreErrors.WithLabelValues("save").Inc()
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}
