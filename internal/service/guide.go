package service

import (
	"context"

	"github.com/foodai/festival-guide/backend/internal/catalog"
	"github.com/foodai/festival-guide/backend/internal/dietary"
	"github.com/foodai/festival-guide/backend/internal/metrics"
	"github.com/foodai/festival-guide/backend/internal/models"
	"github.com/foodai/festival-guide/backend/internal/types"
	"go.uber.org/zap"
)

// GuideService evaluates the festival catalog against the caller's stored
// profile.
type GuideService struct {
	catalog  *catalog.Catalog
	profiles IProfileService
	logger   *zap.Logger
}

var _ IGuideService = (*GuideService)(nil)

// NewGuideService creates a new GuideService instance
func NewGuideService(cat *catalog.Catalog, profiles IProfileService, logger *zap.Logger) *GuideService {
	return &GuideService{
		catalog:  cat,
		profiles: profiles,
		logger:   logger,
	}
}

// Booths returns every booth with its verdict in catalog order, or only the
// allowed ones.
func (s *GuideService) Booths(ctx context.Context, clientID string, allowedOnly bool) []dietary.BoothResult {
	profile := s.profiles.Get(ctx, clientID)

	var results []dietary.BoothResult
	if allowedOnly {
		results = dietary.FilterBooths(profile, s.catalog.Booths())
	} else {
		results = dietary.EvaluateBooths(profile, s.catalog.Booths())
	}
	for _, r := range results {
		observe(metrics.SubjectBooth, r.Verdict)
	}
	return results
}

// Booth returns one booth and every item on its menu, each with a verdict.
func (s *GuideService) Booth(ctx context.Context, clientID, boothID string) (*types.BoothDetail, error) {
	booth, err := s.catalog.Booth(boothID)
	if err != nil {
		return nil, err
	}
	menu, err := s.catalog.Menu(boothID)
	if err != nil {
		return nil, err
	}

	profile := s.profiles.Get(ctx, clientID)
	detail := &types.BoothDetail{
		Booth:   booth,
		Verdict: dietary.EvaluateBooth(profile, booth),
		Menu:    dietary.EvaluateCatalog(profile, menu),
	}

	observe(metrics.SubjectBooth, detail.Verdict)
	for _, r := range detail.Menu {
		observe(metrics.SubjectItem, r.Verdict)
	}
	return detail, nil
}

// MenuItem returns one item with its verdict.
func (s *GuideService) MenuItem(ctx context.Context, clientID, boothID, menuID string) (*dietary.Result, error) {
	item, err := s.catalog.MenuItem(boothID, menuID)
	if err != nil {
		return nil, err
	}
	result := &dietary.Result{
		Item:    item,
		Verdict: dietary.EvaluateMenuItem(s.profiles.Get(ctx, clientID), item),
	}
	observe(metrics.SubjectItem, result.Verdict)
	return result, nil
}

// Recommendations ranks allowed items across the whole catalog. A limit of
// zero or less returns all of them.
func (s *GuideService) Recommendations(ctx context.Context, clientID string, limit int) []dietary.Result {
	results := dietary.FilterCatalog(s.profiles.Get(ctx, clientID), s.catalog.Items())
	for _, r := range results {
		observe(metrics.SubjectItem, r.Verdict)
	}
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

// Evaluate runs caller-supplied items against a caller-supplied profile in
// input order. Nothing is loaded or stored.
func (s *GuideService) Evaluate(profile *dietary.Profile, items []models.MenuItem) []dietary.Result {
	results := dietary.EvaluateCatalog(profile, items)
	for _, r := range results {
		observe(metrics.SubjectItem, r.Verdict)
	}
	return results
}

func observe(subject string, v dietary.Verdict) {
	reasons := make([]string, len(v.Reasons))
	for i, r := range v.Reasons {
		reasons[i] = string(r)
	}
	metrics.ObserveVerdict(subject, v.Allowed, reasons)
}
