package dietary

import (
	"sort"

	"github.com/foodai/festival-guide/backend/internal/models"
)

// Result pairs a menu item with its verdict.
type Result struct {
	Item    models.MenuItem `json:"item"`
	Verdict Verdict         `json:"verdict"`
}

// BoothResult pairs a booth with its verdict.
type BoothResult struct {
	Booth   models.Booth `json:"booth"`
	Verdict Verdict      `json:"verdict"`
}

// EvaluateCatalog returns one result per item, allowed or not, in catalog
// order.
func EvaluateCatalog(p *Profile, items []models.MenuItem) []Result {
	out := make([]Result, len(items))
	for i, item := range items {
		out[i] = Result{Item: item, Verdict: EvaluateMenuItem(p, item)}
	}
	return out
}

// FilterCatalog returns the allowed items ordered by score, highest first.
// Ties keep catalog order.
func FilterCatalog(p *Profile, items []models.MenuItem) []Result {
	out := allowedResults(EvaluateCatalog(p, items))
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Verdict.Score > out[j].Verdict.Score
	})
	return out
}

// EvaluateBooths returns one result per booth in catalog order.
func EvaluateBooths(p *Profile, booths []models.Booth) []BoothResult {
	out := make([]BoothResult, len(booths))
	for i, b := range booths {
		out[i] = BoothResult{Booth: b, Verdict: EvaluateBooth(p, b)}
	}
	return out
}

// FilterBooths returns the allowed booths in catalog order.
func FilterBooths(p *Profile, booths []models.Booth) []BoothResult {
	all := EvaluateBooths(p, booths)
	out := make([]BoothResult, 0, len(all))
	for _, r := range all {
		if r.Verdict.Allowed {
			out = append(out, r)
		}
	}
	return out
}

func allowedResults(all []Result) []Result {
	out := make([]Result, 0, len(all))
	for _, r := range all {
		if r.Verdict.Allowed {
			out = append(out, r)
		}
	}
	return out
}
