package ingest

import (
	"regexp"
	"strings"
)

// Keywords are tagging hints read from an upload's file name.
type Keywords struct {
	Halal     bool
	Alcohol   bool
	Pork      bool
	Beef      bool
	Shellfish bool
	Korean    bool
	Japanese  bool
	Chinese   bool
	Curry     bool
}

var (
	kwHalal     = regexp.MustCompile(`\bhalal|حلال|할랄`)
	kwAlcohol   = regexp.MustCompile(`\bbeer|wine|soju|sake|막걸리|alcohol|알코올`)
	kwPork      = regexp.MustCompile(`\bpork|돼지|삼겹|베이컨`)
	kwBeef      = regexp.MustCompile(`\bbeef|소고기|bulgogi`)
	kwShellfish = regexp.MustCompile(`\bshrimp|crab|shell|새우|게|조개|홍합|갑각`)
	kwKorean    = regexp.MustCompile(`tteok|korean|bulgogi|kimchi|bibimbap`)
	kwJapanese  = regexp.MustCompile(`japan|udon|tempura|onigiri|sushi|ramen`)
	kwChinese   = regexp.MustCompile(`china|chinese|mapo|wonton|bao|dumpling|noodle`)
	kwCurry     = regexp.MustCompile(`curry|masala|biryani|tikka|naan|indian`)

	boothCodePattern = regexp.MustCompile(`b\d{2}`)
)

// ExtractKeywords scans a file name for dish and compliance hints.
func ExtractKeywords(fileName string) Keywords {
	s := strings.ToLower(fileName)
	return Keywords{
		Halal:     kwHalal.MatchString(s),
		Alcohol:   kwAlcohol.MatchString(s),
		Pork:      kwPork.MatchString(s),
		Beef:      kwBeef.MatchString(s),
		Shellfish: kwShellfish.MatchString(s),
		Korean:    kwKorean.MatchString(s),
		Japanese:  kwJapanese.MatchString(s),
		Chinese:   kwChinese.MatchString(s),
		Curry:     kwCurry.MatchString(s),
	}
}

// BoothCode takes the first b<NN> in the file name, e.g. "menu_b03.jpg"
// gives "B03". Without one the default is used.
func BoothCode(fileName, defaultBooth string) string {
	if code := boothCodePattern.FindString(strings.ToLower(fileName)); code != "" {
		return strings.ToUpper(code)
	}
	return strings.ToUpper(strings.TrimSpace(defaultBooth))
}
