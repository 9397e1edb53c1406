package keywords

import (
	"sort"
	"strings"
)

// Pack greedily joins candidates into a comma-separated string of at most
// limit characters, commas included.
//
// Candidates are taken in (score descending, extraction order ascending)
// order. A candidate that alone exceeds the budget is skipped outright,
// never truncated; packing stops at the first remaining candidate that does
// not fit the room left. Stopping (rather than skipping and continuing)
// keeps the result at budget B a prefix of the result at any larger budget.
func Pack(cands []Candidate, limit int) Result {
	ordered := make([]Candidate, len(cands))
	copy(ordered, cands)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Score != ordered[j].Score {
			return ordered[i].Score > ordered[j].Score
		}
		return ordered[i].ordinal < ordered[j].ordinal
	})

	var parts []string
	used := 0
	for _, c := range ordered {
		n := len(c.Token)
		if n > limit {
			continue
		}
		if len(parts) > 0 {
			n++ // joining comma
		}
		if used+n > limit {
			break
		}
		parts = append(parts, c.Token)
		used += n
	}

	if len(parts) == 0 {
		return Result{Empty: true}
	}
	return Result{Keywords: strings.Join(parts, ",")}
}
