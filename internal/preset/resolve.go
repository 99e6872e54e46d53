package preset

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// maxResolveDistance bounds how far a misspelled choice may be from its
// correction. Anything farther is treated as a different word, not a typo.
const maxResolveDistance = 3

// ResolveChoice maps a raw string onto one of the known choices: exact
// case-insensitive match first, then the unique nearest choice by edit
// distance within maxResolveDistance. Reports false when nothing is close
// enough or two choices tie.
func ResolveChoice(choices []string, raw string) (string, bool) {
	q := strings.ToLower(strings.TrimSpace(raw))
	if q == "" {
		return "", false
	}
	for _, c := range choices {
		if strings.ToLower(c) == q {
			return c, true
		}
	}

	best := ""
	bestDist := maxResolveDistance + 1
	tied := false
	for _, c := range choices {
		dist := levenshtein.ComputeDistance(strings.ToLower(c), q)
		switch {
		case dist < bestDist:
			best, bestDist, tied = c, dist, false
		case dist == bestDist:
			tied = true
		}
	}
	if best == "" || tied {
		return "", false
	}
	return best, true
}
