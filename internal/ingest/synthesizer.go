package ingest

import (
	"math"
	"math/rand"
	"regexp"
	"strings"
	"sync"
)

const (
	MinDraftsPerFile = 12
	MaxDraftsPerFile = 18

	MinPrice = 3000
	MaxPrice = 18000

	maxNameLen = 60
)

type category string

const (
	catKorean     category = "korean"
	catMiddleEast category = "middleeast"
	catIndian     category = "indian"
	catChinese    category = "chinese"
	catJapanese   category = "japanese"
	catLocal      category = "local"
	catDrinks     category = "drinks"
)

var adjectives = []string{
	"Spicy", "Classic", "Premium", "Street", "Fusion", "Herb",
	"Charcoal", "Crispy", "Home-style", "Seoul", "Chef",
}

var dishes = map[category][]string{
	catKorean:     {"Tteokbokki", "Bulgogi", "Dak-galbi", "Kimchi Fried Rice", "Bibimbap", "Japchae", "Sundubu Stew"},
	catMiddleEast: {"Chicken Shawarma", "Beef Kebab", "Lamb Kebab", "Falafel", "Hummus Plate", "Tabbouleh", "Kofta"},
	catIndian:     {"Butter Chicken", "Chicken Biryani", "Lamb Curry", "Chana Masala", "Paneer Tikka", "Curry & Naan"},
	catChinese:    {"Mapo Tofu", "Kung Pao Chicken", "BBQ Pork Bun", "Wonton Soup", "Fried Rice", "Chow Mein"},
	catJapanese:   {"Udon", "Curry Rice", "Karaage", "Shrimp Tempura", "Onigiri", "Takoyaki"},
	catLocal:      {"Festival Platter", "Grilled Skewers", "Seafood Pancake", "Corn Dog", "Cheese Balls"},
	catDrinks:     {"Mint Lemonade", "Virgin Mojito", "Iced Barley Tea", "Mango Lassi", "Local Beer", "Soda"},
}

var basePrice = map[category]float64{
	catKorean:     8000,
	catMiddleEast: 11000,
	catIndian:     11000,
	catChinese:    9000,
	catJapanese:   10000,
	catLocal:      9000,
	catDrinks:     5000,
}

var spiceBias = map[category]float64{
	catKorean:  2.5,
	catIndian:  2.2,
	catChinese: 1.6,
}

const defaultSpiceBias = 0.6

var (
	rePork      = regexp.MustCompile(`pork|삼겹|베이컨|돼지`)
	rePorkBun   = regexp.MustCompile(`bbq pork|bun`)
	reBeef      = regexp.MustCompile(`beef|bulgogi|lamb`)
	reShellfish = regexp.MustCompile(`shrimp|tempura|takoyaki|seafood|pancake`)
	reAlcohol   = regexp.MustCompile(`beer|sake|soju|wine`)

	reGluten  = regexp.MustCompile(`bun|udon|fried rice|noodle|naan|bread|pancake`)
	reDairy   = regexp.MustCompile(`paneer|butter|cheese|lassi|cream|milk`)
	reEgg     = regexp.MustCompile(`egg|mayo|bun`)
	reSoy     = regexp.MustCompile(`soy|tofu|mapo|udon`)
	reSeafood = regexp.MustCompile(`shrimp|octopus|squid|seafood`)
	reNuts    = regexp.MustCompile(`nuts|peanut|almond|walnut`)
)

// Synthesizer generates plausible drafts from file-name hints using
// dish dictionaries and tagging rules. It is safe for concurrent use.
type Synthesizer struct {
	mu  sync.Mutex
	rng *rand.Rand
}

var _ Source = (*Synthesizer)(nil)

// NewSynthesizer returns a synthesizer whose output is fully determined by
// seed.
func NewSynthesizer(seed int64) *Synthesizer {
	return &Synthesizer{rng: rand.New(rand.NewSource(seed))}
}

// Drafts returns 12 to 18 drafts per file. Files are processed in order.
func (s *Synthesizer) Drafts(files []FileMeta, defaultBooth string) []Draft {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []Draft
	for _, f := range files {
		booth := BoothCode(f.Name, defaultBooth)
		kw := ExtractKeywords(f.Name)

		count := clampInt(int(math.Round(s.gauss(15, 2.8))), MinDraftsPerFile, MaxDraftsPerFile)
		for i := 0; i < count; i++ {
			d := s.synthesize(kw)
			d.BoothCode = booth
			d.SourceFile = f.Name
			d.Confidence = Confidence(d, kw)
			out = append(out, d)
		}
	}
	return out
}

func (s *Synthesizer) synthesize(kw Keywords) Draft {
	cat := s.pickCategory(kw)

	core := s.pick(dishes[cat])
	if cat != catDrinks && s.rng.Float64() > 0.6 {
		core += " with Rice"
	}
	name := truncate(s.pick(adjectives)+" "+core, maxNameLen)

	price := basePrice[cat] + math.Round((s.rng.Float64()-0.5)*4000)
	bias, ok := spiceBias[cat]
	if !ok {
		bias = defaultSpiceBias
	}
	spiciness := clampInt(int(math.Round(s.gauss(bias, 1.2))), 0, 4)

	text := strings.ToLower(name)
	pork := rePork.MatchString(text) || (cat == catChinese && rePorkBun.MatchString(text))
	beef := reBeef.MatchString(text) && !pork
	shellfish := reShellfish.MatchString(text)
	alcohol := kw.Alcohol || reAlcohol.MatchString(text)
	halal := kw.Halal || (cat == catMiddleEast && !pork && !alcohol)

	return Draft{
		Name:              name,
		Price:             math.Min(math.Max(price, MinPrice), MaxPrice),
		Spiciness:         spiciness,
		HalalCertified:    halal,
		ContainsPork:      pork,
		ContainsBeef:      beef,
		ContainsAlcohol:   alcohol,
		ContainsShellfish: shellfish,
		Allergens:         allergensFor(text, cat, shellfish),
	}
}

func allergensFor(text string, cat category, shellfish bool) []string {
	out := []string{}
	if reGluten.MatchString(text) || cat == catJapanese || cat == catChinese {
		out = append(out, "gluten")
	}
	if reDairy.MatchString(text) {
		out = append(out, "dairy")
	}
	if reEgg.MatchString(text) {
		out = append(out, "egg")
	}
	if reSoy.MatchString(text) {
		out = append(out, "soy")
	}
	if shellfish || reSeafood.MatchString(text) {
		out = append(out, "seafood")
	}
	if reNuts.MatchString(text) {
		out = append(out, "nuts")
	}
	return out
}

type weighted struct {
	cat    category
	weight float64
}

func (s *Synthesizer) pickCategory(kw Keywords) category {
	choices := []weighted{
		{catKorean, weightIf(kw.Korean, 3)},
		{catMiddleEast, weightIf(kw.Halal, 4)},
		{catIndian, weightIf(kw.Curry, 3)},
		{catChinese, weightIf(kw.Chinese, 2)},
		{catJapanese, weightIf(kw.Japanese, 2)},
		{catLocal, 1.2},
		{catDrinks, weightIf(kw.Alcohol, 2)},
	}

	var total float64
	for _, c := range choices {
		total += c.weight
	}
	r := s.rng.Float64() * total
	var acc float64
	for _, c := range choices {
		acc += c.weight
		if r < acc {
			return c.cat
		}
	}
	return choices[0].cat
}

func weightIf(hit bool, w float64) float64 {
	if hit {
		return w
	}
	return 1
}

func (s *Synthesizer) pick(list []string) string {
	return list[s.rng.Intn(len(list))]
}

func (s *Synthesizer) gauss(mean, sd float64) float64 {
	return mean + s.rng.NormFloat64()*sd
}

func clampInt(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
