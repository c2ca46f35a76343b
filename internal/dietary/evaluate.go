package dietary

import (
	"strings"

	"github.com/foodai/festival-guide/backend/internal/models"
)

// Reason is a machine-readable exclusion code.
type Reason string

const (
	ReasonNotHalalCertified Reason = "NOT_HALAL_CERTIFIED"
	ReasonContainsPork      Reason = "CONTAINS_PORK"
	ReasonContainsAlcohol   Reason = "CONTAINS_ALCOHOL"
	ReasonContainsBeef      Reason = "CONTAINS_BEEF"
	ReasonContainsShellfish Reason = "CONTAINS_SHELLFISH"
	ReasonSpiceExceeded     Reason = "SPICE_EXCEEDED"
	ReasonBudgetExceeded    Reason = "BUDGET_EXCEEDED"
	ReasonCuisineMismatch   Reason = "CUISINE_MISMATCH"

	allergenMatchPrefix = "ALLERGEN_MATCH:"
)

// AllergenMatch returns the reason code for a matched allergen tag.
func AllergenMatch(tag Allergen) Reason {
	return Reason(allergenMatchPrefix + string(tag))
}

// IsAllergenMatch reports whether r is an ALLERGEN_MATCH code and returns
// its tag.
func (r Reason) IsAllergenMatch() (Allergen, bool) {
	s := string(r)
	if !strings.HasPrefix(s, allergenMatchPrefix) {
		return "", false
	}
	return Allergen(strings.TrimPrefix(s, allergenMatchPrefix)), true
}

// Verdict is the outcome of evaluating one booth or menu item. Reasons is
// empty exactly when Allowed is true. Score is only set for allowed entries.
type Verdict struct {
	Allowed bool     `json:"allowed"`
	Reasons []Reason `json:"reasons"`
	Score   float64  `json:"score"`
}

// Excludes reports whether the verdict carries reason r.
func (v Verdict) Excludes(r Reason) bool {
	for _, have := range v.Reasons {
		if have == r {
			return true
		}
	}
	return false
}

// compliance is the flag shape shared by booths and menu items, so both
// run through the same rule family.
type compliance struct {
	halalCertified bool
	pork           bool
	alcohol        bool
	beef           bool
	shellfish      bool
	spiciness      int
	price          float64
	allergens      []string
}

func itemCompliance(item models.MenuItem) compliance {
	return compliance{
		halalCertified: item.HalalCertified,
		pork:           item.ContainsPork,
		alcohol:        item.ContainsAlcohol,
		beef:           item.ContainsBeef,
		shellfish:      item.ContainsShellfish,
		spiciness:      item.Spiciness,
		price:          item.Price,
		allergens:      item.Allergens,
	}
}

func boothCompliance(b models.Booth) compliance {
	return compliance{
		halalCertified: b.HalalCertified,
		pork:           b.HasPork,
		alcohol:        b.HasAlcohol,
		beef:           b.HasBeef,
		shellfish:      b.HasShellfish,
		spiciness:      b.SpicinessMax,
		price:          b.AvgPrice,
	}
}

// reasons collects codes in evaluation order. Halal-gate and avoid-flag
// codes for the same ingredient are kept separately.
type reasons []Reason

func (rs *reasons) add(r Reason) {
	*rs = append(*rs, r)
}

func (p *Profile) check(c compliance) reasons {
	rs := reasons{}

	if p.HalalMode == HalalRequired {
		if !c.halalCertified {
			rs.add(ReasonNotHalalCertified)
		}
		if c.pork {
			rs.add(ReasonContainsPork)
		}
		if c.alcohol {
			rs.add(ReasonContainsAlcohol)
		}
	}

	if p.Avoid.Pork && c.pork {
		rs.add(ReasonContainsPork)
	}
	if p.Avoid.Alcohol && c.alcohol {
		rs.add(ReasonContainsAlcohol)
	}
	if p.Avoid.Beef && c.beef {
		rs.add(ReasonContainsBeef)
	}
	if p.Avoid.Shellfish && c.shellfish {
		rs.add(ReasonContainsShellfish)
	}

	if c.spiciness > p.SpiceTolerance {
		rs.add(ReasonSpiceExceeded)
	}
	if c.price > p.Budget {
		rs.add(ReasonBudgetExceeded)
	}

	for _, tag := range Allergens {
		if p.Allergies.Has(tag) && containsTag(c.allergens, tag) {
			rs.add(AllergenMatch(tag))
		}
	}

	return rs
}

func containsTag(list []string, tag Allergen) bool {
	for _, s := range list {
		if strings.EqualFold(strings.TrimSpace(s), string(tag)) {
			return true
		}
	}
	return false
}

func permissive() Verdict {
	return Verdict{Allowed: true, Reasons: []Reason{}, Score: BaseScore}
}

// EvaluateMenuItem decides whether item fits the profile. A nil profile
// means no survey was completed and allows everything.
func EvaluateMenuItem(p *Profile, item models.MenuItem) Verdict {
	if p == nil {
		return permissive()
	}
	rs := p.check(itemCompliance(item))
	if len(rs) > 0 {
		return Verdict{Allowed: false, Reasons: rs}
	}
	return Verdict{Allowed: true, Reasons: []Reason{}, Score: Score(*p, item)}
}

// EvaluateBooth applies the item rules to the booth's aggregate flags,
// using AvgPrice and SpicinessMax for the ceilings, then the cuisine
// overlap gate. It is an approximation for map-level filtering; item
// verdicts are authoritative.
func EvaluateBooth(p *Profile, b models.Booth) Verdict {
	if p == nil {
		return permissive()
	}
	rs := p.check(boothCompliance(b))
	if !p.PrefersCuisine(b.Cuisines) {
		rs.add(ReasonCuisineMismatch)
	}
	if len(rs) > 0 {
		return Verdict{Allowed: false, Reasons: rs}
	}
	return Verdict{Allowed: true, Reasons: []Reason{}, Score: ScoreBooth(*p, b)}
}
