package models

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Suggest returns the catalog name closest to name by edit distance, for
// "did you mean" hints under item names the marketplace could not resolve.
// The empty string means nothing was close enough.
func (c *Catalog) Suggest(name string) string {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return ""
	}

	// Allow roughly one edit per three characters, never less than two
	maxDist := len(needle) / 3
	if maxDist < 2 {
		maxDist = 2
	}

	dmp := diffmatchpatch.New()
	best, bestDist := "", maxDist+1

	for _, candidate := range c.Names(DefaultAllowedTypes...) {
		lc := strings.ToLower(candidate)
		if lc == needle {
			return candidate
		}
		// Cheap length gate before running a diff
		if abs(len(lc)-len(needle)) > maxDist {
			continue
		}
		dist := dmp.DiffLevenshtein(dmp.DiffMain(needle, lc, false))
		if dist < bestDist {
			best, bestDist = candidate, dist
		}
	}

	return best
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
