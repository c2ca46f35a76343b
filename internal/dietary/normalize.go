package dietary

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
)

// Normalize turns an arbitrary decoded survey blob into a complete profile.
// It never fails: any field that is missing or of the wrong type takes its
// default, and the nested avoid/allergies objects are merged field by field.
// Unknown fields are ignored.
//
// raw is usually the map produced by encoding/json. A []byte or
// json.RawMessage is decoded first, and a Profile is re-sanitized.
func Normalize(raw any) Profile {
	switch v := raw.(type) {
	case map[string]any:
		return normalizeMap(v)
	case []byte:
		return normalizeBytes(v)
	case json.RawMessage:
		return normalizeBytes(v)
	case Profile:
		return sanitize(v)
	case *Profile:
		if v == nil {
			return DefaultProfile()
		}
		return sanitize(*v)
	}
	return DefaultProfile()
}

// ParseStored decodes a profile blob read from client storage. It returns nil
// when the blob is empty or is not a JSON object, which callers treat as "no
// survey completed".
func ParseStored(data []byte) *Profile {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil || m == nil {
		return nil
	}
	p := normalizeMap(m)
	return &p
}

func normalizeBytes(data []byte) Profile {
	if p := ParseStored(data); p != nil {
		return *p
	}
	return DefaultProfile()
}

func normalizeMap(m map[string]any) Profile {
	p := DefaultProfile()

	if s, ok := asString(lookup(m, "halalMode", "halal")); ok {
		if mode, ok := ParseHalalMode(s); ok {
			p.HalalMode = mode
		}
	}

	if avoid, ok := m["avoid"].(map[string]any); ok {
		mergeBool(avoid, "pork", &p.Avoid.Pork)
		mergeBool(avoid, "alcohol", &p.Avoid.Alcohol)
		mergeBool(avoid, "beef", &p.Avoid.Beef)
		mergeBool(avoid, "shellfish", &p.Avoid.Shellfish)
	}

	allergies, _ := m["allergies"].(map[string]any)
	for _, tag := range Allergens {
		if b, ok := allergies[string(tag)].(bool); ok {
			p.Allergies.set(tag, b)
		}
	}

	if others, ok := asStringList(lookup(m, "otherAllergies")); ok {
		p.OtherAllergies = others
	} else if others, ok := asStringList(lookup(allergies, "otherAllergies", "other")); ok {
		p.OtherAllergies = others
	}

	if n, ok := asNumber(lookup(m, "spiceTolerance", "spice")); ok {
		p.SpiceTolerance = clampSpice(n)
	}

	if n, ok := asNumber(m["budget"]); ok && n >= 0 {
		p.Budget = n
	}

	if cuisines, ok := asStringList(lookup(m, "preferredCuisines", "cuisines")); ok {
		p.PreferredCuisines = tags(cuisines)
	}

	if s, ok := asString(lookup(m, "lastScannedCode", "lastBoothQR")); ok {
		p.LastScannedCode = s
	}

	if s, ok := asString(m["notes"]); ok {
		p.Notes = s
	}

	return p
}

// sanitize re-applies the range rules to a profile built in Go code.
func sanitize(p Profile) Profile {
	out := p
	if mode, ok := ParseHalalMode(string(p.HalalMode)); ok {
		out.HalalMode = mode
	} else {
		out.HalalMode = HalalFlexible
	}
	out.SpiceTolerance = clampSpice(float64(p.SpiceTolerance))
	if p.Budget < 0 || math.IsNaN(p.Budget) || math.IsInf(p.Budget, 0) {
		out.Budget = DefaultBudget
	}
	out.OtherAllergies = cleanList(p.OtherAllergies)
	out.PreferredCuisines = tags(p.PreferredCuisines)
	return out
}

// lookup returns the value of the first key present in m.
func lookup(m map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			return v
		}
	}
	return nil
}

func mergeBool(m map[string]any, key string, dst *bool) {
	if b, ok := m[key].(bool); ok {
		*dst = b
	}
}

func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func asNumber(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// asStringList accepts a JSON array of strings (non-strings are skipped) or
// a comma-separated string, the shape the onboarding form stores.
func asStringList(v any) ([]string, bool) {
	switch list := v.(type) {
	case []any:
		out := make([]string, 0, len(list))
		for _, e := range list {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return cleanList(out), true
	case []string:
		return cleanList(list), true
	case string:
		return cleanList(strings.Split(list, ",")), true
	}
	return nil, false
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// tags lowercases and de-duplicates a cuisine list, keeping first-seen order.
func tags(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range cleanList(in) {
		s = strings.ToLower(s)
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func clampSpice(n float64) int {
	v := int(math.Floor(n))
	if v < MinSpice {
		return MinSpice
	}
	if v > MaxSpice {
		return MaxSpice
	}
	return v
}
