// Package roles normalizes role names and matches them against job titles.
package roles

import "strings"

// synonyms maps a normalized base role to the normalized title fragments that
// identify it. A job title matches a base role when any synonym appears as a
// substring of the normalized title.
var synonyms = map[string][]string{
	"forklift_driver": {"forklift_driver", "forklift_operator", "forklift", "lift_driver", "lift_operator"},
	"picker":          {"picker", "order_picker", "picking"},
	"lumper":          {"lumper", "unloader"},
	"receiver":        {"receiver", "receiving"},
	"staff":           {"staff", "warehouse_associate", "associate", "general_labor", "laborer"},
}

// Normalize lowercases a role name, collapses internal whitespace to
// underscores, and strips a single trailing plural "s".
func Normalize(role string) string {
	normalized := strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(role))), "_")
	return strings.TrimSuffix(normalized, "s")
}

// BaseRole strips the leading operation segment from a composite role key:
// "inbound_forklift_driver" becomes "forklift_driver". A key with no
// separator is returned unchanged.
func BaseRole(key string) string {
	if _, rest, found := strings.Cut(key, "_"); found {
		return rest
	}
	return key
}

// Synonyms returns the normalized title fragments for a base role. Unknown
// roles fall back to their own normalized form.
func Synonyms(base string) []string {
	normalized := Normalize(base)
	if s, ok := synonyms[normalized]; ok {
		return s
	}
	return []string{normalized}
}

// TitleMatches reports whether a job title identifies a base role.
func TitleMatches(base, title string) bool {
	normalizedTitle := Normalize(title)
	for _, synonym := range Synonyms(base) {
		if strings.Contains(normalizedTitle, synonym) {
			return true
		}
	}
	return false
}
