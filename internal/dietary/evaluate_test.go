package dietary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodai/festival-guide/backend/internal/models"
)

func profileWith(mutate func(p *Profile)) *Profile {
	p := DefaultProfile()
	mutate(&p)
	return &p
}

func sampleItems() []models.MenuItem {
	return []models.MenuItem{
		{ID: "M01", BoothID: "B01", Name: "Chicken Kebab", Price: 12000, Spiciness: 2, HalalCertified: true},
		{ID: "M05", BoothID: "B02", Name: "Tteokbokki", Price: 5000, Spiciness: 4, Allergens: models.StringArray{"gluten"}},
		{ID: "M11", BoothID: "B03", Name: "Pork Bun", Price: 8000, Spiciness: 1, ContainsPork: true, Allergens: models.StringArray{"gluten", "soy"}},
		{ID: "M24", BoothID: "B06", Name: "Shrimp Tempura", Price: 11000, Spiciness: 0, ContainsShellfish: true, Allergens: models.StringArray{"seafood", "egg"}},
		{ID: "M32", BoothID: "B08", Name: "Local Festival Set", Price: 15000, Spiciness: 2, ContainsAlcohol: true},
		{},
	}
}

func TestPermissiveWithoutProfile(t *testing.T) {
	for _, item := range sampleItems() {
		v := EvaluateMenuItem(nil, item)
		assert.True(t, v.Allowed, item.ID)
		assert.Empty(t, v.Reasons, item.ID)
		assert.NotNil(t, v.Reasons, item.ID)
	}

	v := EvaluateBooth(nil, models.Booth{ID: "B08", HasAlcohol: true, HasPork: true})
	assert.True(t, v.Allowed)
	assert.Empty(t, v.Reasons)
}

func TestHalalGateCollectsEveryViolation(t *testing.T) {
	p := profileWith(func(p *Profile) {
		p.HalalMode = HalalRequired
		p.Avoid = AvoidFlags{}
		p.Budget = 50000
		p.SpiceTolerance = MaxSpice
	})
	item := models.MenuItem{ID: "X", Price: 1000, ContainsPork: true, ContainsAlcohol: true}

	v := EvaluateMenuItem(p, item)

	assert.False(t, v.Allowed)
	assert.Equal(t, []Reason{ReasonNotHalalCertified, ReasonContainsPork, ReasonContainsAlcohol}, v.Reasons)
	assert.Zero(t, v.Score)
}

func TestHalalGateInactiveUnlessRequired(t *testing.T) {
	item := models.MenuItem{ID: "X", Price: 1000, ContainsPork: true, ContainsAlcohol: true}
	for _, mode := range []HalalMode{HalalFlexible, HalalNone} {
		p := profileWith(func(p *Profile) {
			p.HalalMode = mode
			p.Avoid = AvoidFlags{}
		})
		v := EvaluateMenuItem(p, item)
		assert.True(t, v.Allowed, string(mode))
	}
}

func TestHalalAndAvoidAreAdditive(t *testing.T) {
	p := profileWith(func(p *Profile) {
		p.HalalMode = HalalRequired
		p.Avoid = AvoidFlags{Pork: true, Alcohol: true, Beef: true}
	})
	item := models.MenuItem{ID: "X", Price: 1000, ContainsPork: true, ContainsAlcohol: true, ContainsBeef: true}

	v := EvaluateMenuItem(p, item)

	assert.Equal(t, []Reason{
		ReasonNotHalalCertified,
		ReasonContainsPork,
		ReasonContainsAlcohol,
		ReasonContainsPork,
		ReasonContainsAlcohol,
		ReasonContainsBeef,
	}, v.Reasons)
}

func TestDefaultAvoidAlcoholStacksOnHalalGate(t *testing.T) {
	p := Normalize(map[string]any{"halalMode": "REQUIRED", "avoid": map[string]any{"pork": true}})
	item := models.MenuItem{ID: "X", HalalCertified: true, ContainsPork: true, ContainsAlcohol: true}

	v := EvaluateMenuItem(&p, item)

	assert.False(t, v.Allowed)
	assert.Equal(t, []Reason{
		ReasonContainsPork,
		ReasonContainsAlcohol,
		ReasonContainsPork,
		ReasonContainsAlcohol,
	}, v.Reasons)
	assert.True(t, v.Excludes(ReasonContainsAlcohol))
}

func TestAvoidFlags(t *testing.T) {
	tests := []struct {
		name  string
		avoid AvoidFlags
		item  models.MenuItem
		want  []Reason
	}{
		{"pork", AvoidFlags{Pork: true}, models.MenuItem{ContainsPork: true}, []Reason{ReasonContainsPork}},
		{"alcohol", AvoidFlags{Alcohol: true}, models.MenuItem{ContainsAlcohol: true}, []Reason{ReasonContainsAlcohol}},
		{"beef", AvoidFlags{Beef: true}, models.MenuItem{ContainsBeef: true}, []Reason{ReasonContainsBeef}},
		{"shellfish", AvoidFlags{Shellfish: true}, models.MenuItem{ContainsShellfish: true}, []Reason{ReasonContainsShellfish}},
		{"flag off", AvoidFlags{}, models.MenuItem{ContainsBeef: true, ContainsShellfish: true}, []Reason{}},
		{
			"all four in order",
			AvoidFlags{Pork: true, Alcohol: true, Beef: true, Shellfish: true},
			models.MenuItem{ContainsShellfish: true, ContainsBeef: true, ContainsAlcohol: true, ContainsPork: true},
			[]Reason{ReasonContainsPork, ReasonContainsAlcohol, ReasonContainsBeef, ReasonContainsShellfish},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := profileWith(func(p *Profile) { p.Avoid = tt.avoid })
			v := EvaluateMenuItem(p, tt.item)
			assert.Equal(t, tt.want, v.Reasons)
			assert.Equal(t, len(tt.want) == 0, v.Allowed)
		})
	}
}

func TestCeilingsAllowEquality(t *testing.T) {
	p := profileWith(func(p *Profile) {
		p.SpiceTolerance = 3
		p.Budget = 9000
	})

	v := EvaluateMenuItem(p, models.MenuItem{Spiciness: 3, Price: 9000})
	assert.True(t, v.Allowed)

	v = EvaluateMenuItem(p, models.MenuItem{Spiciness: 4, Price: 9000.5})
	assert.Equal(t, []Reason{ReasonSpiceExceeded, ReasonBudgetExceeded}, v.Reasons)
}

func TestAllergenEnumeration(t *testing.T) {
	p := profileWith(func(p *Profile) {
		p.Allergies = AllergyFlags{Nuts: true, Dairy: true, Soy: true}
	})
	item := models.MenuItem{Allergens: models.StringArray{"dairy", "nuts", "gluten"}}

	v := EvaluateMenuItem(p, item)

	assert.False(t, v.Allowed)
	assert.Equal(t, []Reason{AllergenMatch(AllergenNuts), AllergenMatch(AllergenDairy)}, v.Reasons)

	tag, ok := v.Reasons[0].IsAllergenMatch()
	assert.True(t, ok)
	assert.Equal(t, AllergenNuts, tag)
	_, ok = ReasonBudgetExceeded.IsAllergenMatch()
	assert.False(t, ok)
}

func TestUnknownAllergenTagsIgnored(t *testing.T) {
	p := profileWith(func(p *Profile) { p.Allergies = AllergyFlags{Egg: true} })
	v := EvaluateMenuItem(p, models.MenuItem{Allergens: models.StringArray{"kiwi", " EGG "}})
	assert.Equal(t, []Reason{AllergenMatch(AllergenEgg)}, v.Reasons)
}

func TestEvaluateIsIdempotent(t *testing.T) {
	p := profileWith(func(p *Profile) {
		p.HalalMode = HalalRequired
		p.Allergies = AllergyFlags{Gluten: true, Soy: true}
	})
	for _, item := range sampleItems() {
		first := EvaluateMenuItem(p, item)
		for i := 0; i < 5; i++ {
			assert.Equal(t, first, EvaluateMenuItem(p, item))
		}
	}
}

func TestEvaluateDoesNotMutateInputs(t *testing.T) {
	p := profileWith(func(p *Profile) { p.Allergies = AllergyFlags{Seafood: true} })
	before := *p
	item := sampleItems()[3]
	allergens := append(models.StringArray(nil), item.Allergens...)

	EvaluateMenuItem(p, item)

	assert.Equal(t, before, *p)
	assert.Equal(t, allergens, item.Allergens)
}

func TestScenarioBudgetOnly(t *testing.T) {
	p := Normalize(map[string]any{"halalMode": "REQUIRED", "budget": 10000.0, "spiceTolerance": 2.0})
	item := models.MenuItem{Price: 12000, Spiciness: 2, HalalCertified: true}

	v := EvaluateMenuItem(&p, item)

	assert.False(t, v.Allowed)
	assert.Equal(t, []Reason{ReasonBudgetExceeded}, v.Reasons)
}

func TestScenarioFestivalSetAlcohol(t *testing.T) {
	p := Normalize(map[string]any{
		"halalMode":      "FLEXIBLE",
		"avoid":          map[string]any{"alcohol": true},
		"budget":         20000.0,
		"spiceTolerance": 4.0,
	})
	item := models.MenuItem{Name: "Local Festival Set", Price: 15000, Spiciness: 2, ContainsAlcohol: true}

	v := EvaluateMenuItem(&p, item)

	assert.False(t, v.Allowed)
	assert.Equal(t, []Reason{ReasonContainsAlcohol}, v.Reasons)
}

func TestScenarioBeefAllowedAndScored(t *testing.T) {
	p := Normalize(map[string]any{
		"halalMode":      "NONE",
		"budget":         10000.0,
		"spiceTolerance": 4.0,
		"allergies":      map[string]any{},
	})
	hot := models.MenuItem{Price: 9000, Spiciness: 4, ContainsBeef: true}
	mild := models.MenuItem{Price: 9000, Spiciness: 0, ContainsBeef: true}

	vHot := EvaluateMenuItem(&p, hot)
	vMild := EvaluateMenuItem(&p, mild)

	require.True(t, vHot.Allowed)
	require.True(t, vMild.Allowed)
	assert.Empty(t, vHot.Reasons)
	assert.Greater(t, vHot.Score, vMild.Score)
}

func TestBoothRules(t *testing.T) {
	kebab := models.Booth{
		ID: "B01", Name: "Halal Kebab House", AvgPrice: 12000, SpicinessMax: 2,
		Cuisines: models.StringArray{"middleeast"}, HalalCertified: true,
	}
	pub := models.Booth{
		ID: "B08", Name: "Local Pub", AvgPrice: 9000, SpicinessMax: 1,
		Cuisines: models.StringArray{"korean"}, HasPork: true, HasAlcohol: true, HasBeef: true,
	}
	tempura := models.Booth{
		ID: "B06", Name: "Seafood Tempura", AvgPrice: 11000, SpicinessMax: 0,
		Cuisines: models.StringArray{"japanese"}, HasShellfish: true,
	}

	t.Run("halal required gate", func(t *testing.T) {
		p := profileWith(func(p *Profile) {
			p.HalalMode = HalalRequired
			p.Avoid = AvoidFlags{}
			p.Budget = 20000
		})
		assert.True(t, EvaluateBooth(p, kebab).Allowed)
		assert.Equal(t,
			[]Reason{ReasonNotHalalCertified, ReasonContainsPork, ReasonContainsAlcohol},
			EvaluateBooth(p, pub).Reasons)
	})

	t.Run("ceilings use avg price and max spice", func(t *testing.T) {
		p := profileWith(func(p *Profile) {
			p.SpiceTolerance = 1
			p.Budget = 10000
		})
		assert.Equal(t, []Reason{ReasonSpiceExceeded, ReasonBudgetExceeded}, EvaluateBooth(p, kebab).Reasons)
	})

	t.Run("explicit beef and shellfish flags", func(t *testing.T) {
		p := profileWith(func(p *Profile) {
			p.Avoid = AvoidFlags{Beef: true, Shellfish: true}
			p.Budget = 20000
		})
		assert.Equal(t, []Reason{ReasonContainsBeef}, EvaluateBooth(p, pub).Reasons)
		assert.Equal(t, []Reason{ReasonContainsShellfish}, EvaluateBooth(p, tempura).Reasons)
	})

	t.Run("cuisine mismatch", func(t *testing.T) {
		p := profileWith(func(p *Profile) {
			p.PreferredCuisines = []string{"korean"}
			p.Budget = 20000
		})
		v := EvaluateBooth(p, kebab)
		assert.False(t, v.Allowed)
		assert.Equal(t, []Reason{ReasonCuisineMismatch}, v.Reasons)
	})

	t.Run("cuisine match is case-insensitive", func(t *testing.T) {
		p := profileWith(func(p *Profile) {
			p.PreferredCuisines = []string{"japanese"}
			p.Budget = 20000
		})
		b := tempura
		b.Cuisines = models.StringArray{"Japanese"}
		assert.True(t, EvaluateBooth(p, b).Allowed)
	})
}
