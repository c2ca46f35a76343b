package types

import (
	"github.com/foodai/festival-guide/backend/internal/dietary"
	"github.com/foodai/festival-guide/backend/internal/ingest"
	"github.com/foodai/festival-guide/backend/internal/models"
)

// ProfileResponse wraps the normalized profile. Profile is null when the
// client has not completed the survey.
type ProfileResponse struct {
	Profile *dietary.Profile `json:"profile"`
}

// BoothDetail is a booth with its own verdict and a verdict per menu item
type BoothDetail struct {
	Booth   models.Booth     `json:"booth"`
	Verdict dietary.Verdict  `json:"verdict"`
	Menu    []dietary.Result `json:"menu"`
}

// IngestResult is the synthesized batch for one upload request
type IngestResult struct {
	Files  int            `json:"files"`
	Drafts []ingest.Draft `json:"drafts"`
}

// ReviewedItem is a validated menu item with the link an external renderer
// encodes into the booth QR code.
type ReviewedItem struct {
	Item     models.MenuItem `json:"item"`
	DeepLink string          `json:"deepLink"`
}

// ReviewError reports why the draft at Index was rejected
type ReviewError struct {
	Index int    `json:"index"`
	Error string `json:"error"`
}

type ReviewResult struct {
	Items  []ReviewedItem `json:"items"`
	Errors []ReviewError  `json:"errors"`
}

// HealthResponse is the liveness payload
type HealthResponse struct {
	Status  string `json:"status"`
	Booths  int    `json:"booths"`
	Items   int    `json:"items"`
	Redis   string `json:"redis"`
	Version string `json:"version,omitempty"`
}
