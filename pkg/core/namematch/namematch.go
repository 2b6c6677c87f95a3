// Package namematch resolves free-text names against stored name variations
// using Levenshtein edit distance.
package namematch

import (
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// MaxDistanceRatio caps the accepted edit distance at this fraction of the
// query length.
const MaxDistanceRatio = 0.3

// Candidate is one matchable entity: an ID plus every known spelling of its
// name. An empty variation list falls back to matching the ID itself.
type Candidate struct {
	ID         string
	Variations []string
}

// FindBestMatch returns the ID of the candidate whose closest name variation
// has the smallest edit distance to the query, provided that distance is
// within MaxDistanceRatio of the query length. A case-insensitive exact match
// wins immediately. Ties keep the earliest candidate. An empty string means
// no candidate was close enough.
func FindBestMatch(query string, candidates []Candidate) string {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return ""
	}

	bestID := ""
	// The distance is measured in runes, so the budget must be too.
	bestDistance := int(MaxDistanceRatio*float64(utf8.RuneCountInString(q))) + 1

	for _, candidate := range candidates {
		variations := candidate.Variations
		if len(variations) == 0 {
			variations = []string{candidate.ID}
		}
		for _, variation := range variations {
			v := strings.ToLower(strings.TrimSpace(variation))
			if v == q {
				return candidate.ID
			}
			if distance := levenshtein.ComputeDistance(q, v); distance < bestDistance {
				bestDistance = distance
				bestID = candidate.ID
			}
		}
	}

	return bestID
}
