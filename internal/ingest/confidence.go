package ingest

import "math"

// Confidence scores how well a draft agrees with its file-name hints, in
// [0,1] rounded to two decimals. It says nothing about how well the item
// fits a visitor.
func Confidence(d Draft, kw Keywords) float64 {
	sc := 0.4
	if kw.Halal && d.HalalCertified {
		sc += 0.15
	}
	if kw.Alcohol == d.ContainsAlcohol {
		sc += 0.1
	}
	if kw.Pork == d.ContainsPork {
		sc += 0.1
	}
	if kw.Beef == d.ContainsBeef {
		sc += 0.08
	}
	if kw.Shellfish == d.ContainsShellfish {
		sc += 0.08
	}
	if len(d.Allergens) > 0 {
		sc += 0.05
	}
	if d.Price >= 4000 && d.Price <= 16000 {
		sc += 0.06
	}
	// spiciness is always estimated
	sc += 0.05

	sc = math.Round(sc*100) / 100
	return math.Max(0, math.Min(1, sc))
}
