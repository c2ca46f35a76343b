package dietary

import (
	"math"

	"github.com/foodai/festival-guide/backend/internal/models"
)

// Scoring constants. The score is a relative ranking signal with no
// absolute meaning.
const (
	BaseScore       = 1000.0
	SpicePenalty    = 50.0
	PriceGapCap     = 20000.0
	PriceGapDivisor = 20.0
)

// Score ranks an allowed item: closer spice and price matches score higher.
func Score(p Profile, item models.MenuItem) float64 {
	return score(p, item.Spiciness, item.Price)
}

// ScoreBooth ranks a booth by its spice ceiling and average price.
func ScoreBooth(p Profile, b models.Booth) float64 {
	return score(p, b.SpicinessMax, b.AvgPrice)
}

func score(p Profile, spiciness int, price float64) float64 {
	spiceGap := math.Abs(float64(p.SpiceTolerance - spiciness))
	priceGap := math.Min(math.Abs(p.Budget-price), PriceGapCap)
	return BaseScore - SpicePenalty*spiceGap - priceGap/PriceGapDivisor
}
