package types

import (
	"encoding/json"

	"github.com/foodai/festival-guide/backend/internal/ingest"
	"github.com/foodai/festival-guide/backend/internal/models"
)

// ScanRequest represents the request body for recording a scanned booth code
type ScanRequest struct {
	Code string `json:"code" binding:"required"`
}

// EvaluateRequest is a stateless evaluation. Profile may be any survey
// shape or null; null evaluates permissively.
type EvaluateRequest struct {
	Profile json.RawMessage   `json:"profile"`
	Items   []models.MenuItem `json:"items"`
}

// ReviewRequest carries drafts edited by an operator
type ReviewRequest struct {
	Drafts []ingest.Draft `json:"drafts" binding:"required"`
}
