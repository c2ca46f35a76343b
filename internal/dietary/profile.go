// Package dietary decides whether booths and menu items fit a visitor's
// dietary profile and ranks the ones that do.
//
// Everything in this package is pure: no I/O, no shared mutable state.
// Callers may evaluate concurrently without coordination.
package dietary

import "strings"

// HalalMode is the strictness of halal checks for a profile.
type HalalMode string

const (
	HalalRequired HalalMode = "REQUIRED"
	HalalFlexible HalalMode = "FLEXIBLE"
	HalalNone     HalalMode = "NONE"
)

// ParseHalalMode matches s case-insensitively against the known modes.
func ParseHalalMode(s string) (HalalMode, bool) {
	switch HalalMode(strings.ToUpper(strings.TrimSpace(s))) {
	case HalalRequired:
		return HalalRequired, true
	case HalalFlexible:
		return HalalFlexible, true
	case HalalNone:
		return HalalNone, true
	}
	return "", false
}

// Allergen is a tag from the fixed allergen vocabulary shared by profiles
// and menu items.
type Allergen string

const (
	AllergenNuts    Allergen = "nuts"
	AllergenDairy   Allergen = "dairy"
	AllergenGluten  Allergen = "gluten"
	AllergenEgg     Allergen = "egg"
	AllergenSoy     Allergen = "soy"
	AllergenSeafood Allergen = "seafood"
)

// Allergens lists the vocabulary in evaluation order.
var Allergens = []Allergen{
	AllergenNuts,
	AllergenDairy,
	AllergenGluten,
	AllergenEgg,
	AllergenSoy,
	AllergenSeafood,
}

// AvoidFlags are hard per-category exclusions, independent of halal mode.
type AvoidFlags struct {
	Pork      bool `json:"pork"`
	Alcohol   bool `json:"alcohol"`
	Beef      bool `json:"beef"`
	Shellfish bool `json:"shellfish"`
}

// AllergyFlags marks which vocabulary allergens the visitor reacts to.
type AllergyFlags struct {
	Nuts    bool `json:"nuts"`
	Dairy   bool `json:"dairy"`
	Gluten  bool `json:"gluten"`
	Egg     bool `json:"egg"`
	Soy     bool `json:"soy"`
	Seafood bool `json:"seafood"`
}

// Has reports whether the flag for tag is set.
func (a AllergyFlags) Has(tag Allergen) bool {
	switch tag {
	case AllergenNuts:
		return a.Nuts
	case AllergenDairy:
		return a.Dairy
	case AllergenGluten:
		return a.Gluten
	case AllergenEgg:
		return a.Egg
	case AllergenSoy:
		return a.Soy
	case AllergenSeafood:
		return a.Seafood
	}
	return false
}

func (a *AllergyFlags) set(tag Allergen, v bool) {
	switch tag {
	case AllergenNuts:
		a.Nuts = v
	case AllergenDairy:
		a.Dairy = v
	case AllergenGluten:
		a.Gluten = v
	case AllergenEgg:
		a.Egg = v
	case AllergenSoy:
		a.Soy = v
	case AllergenSeafood:
		a.Seafood = v
	}
}

// Profile is the canonical, fully populated survey result. Build one with
// Normalize or DefaultProfile; the zero value is not a valid profile.
type Profile struct {
	HalalMode         HalalMode    `json:"halalMode"`
	Avoid             AvoidFlags   `json:"avoid"`
	Allergies         AllergyFlags `json:"allergies"`
	OtherAllergies    []string     `json:"otherAllergies"`
	SpiceTolerance    int          `json:"spiceTolerance"`
	Budget            float64      `json:"budget"`
	PreferredCuisines []string     `json:"preferredCuisines"`
	LastScannedCode   string       `json:"lastScannedCode"`
	Notes             string       `json:"notes"`
}

const (
	MinSpice = 0
	MaxSpice = 4

	DefaultSpiceTolerance = 2
	DefaultBudget         = 10000
)

// DefaultProfile returns the profile used for every absent field.
func DefaultProfile() Profile {
	return Profile{
		HalalMode:         HalalFlexible,
		Avoid:             AvoidFlags{Alcohol: true},
		Allergies:         AllergyFlags{},
		OtherAllergies:    []string{},
		SpiceTolerance:    DefaultSpiceTolerance,
		Budget:            DefaultBudget,
		PreferredCuisines: []string{},
		LastScannedCode:   "",
		Notes:             "",
	}
}

// PrefersCuisine reports whether the profile has no cuisine preference or
// shares at least one tag with cuisines.
func (p Profile) PrefersCuisine(cuisines []string) bool {
	if len(p.PreferredCuisines) == 0 {
		return true
	}
	for _, want := range p.PreferredCuisines {
		for _, have := range cuisines {
			if strings.EqualFold(want, strings.TrimSpace(have)) {
				return true
			}
		}
	}
	return false
}
