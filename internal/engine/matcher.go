package engine

import (
	"sort"
	"strings"
	"unicode"

	"nkrane/internal/domain"
)

type candidate struct {
	start int
	end   int
	order int
}

// FindMatches returns non-overlapping whole-word occurrences of entries in
// text, sorted by start. Matching folds case. When candidates overlap the
// longer one wins, then the earlier one, then the entry listed first.
func FindMatches(text string, entries []domain.Entry) []domain.Match {
	if text == "" || len(entries) == 0 {
		return nil
	}

	runes := []rune(text)
	var candidates []candidate

	for order, entry := range entries {
		term := []rune(strings.TrimSpace(entry.Term))
		if len(term) == 0 {
			continue
		}

		for start := 0; start+len(term) <= len(runes); start++ {
			end := start + len(term)
			if !isBoundary(runes, start-1) || !isBoundary(runes, end) {
				continue
			}
			if foldEqual(runes[start:end], term) {
				candidates = append(candidates, candidate{start: start, end: end, order: order})
			}
		}
	}

	if len(candidates) == 0 {
		return nil
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		li := candidates[i].end - candidates[i].start
		lj := candidates[j].end - candidates[j].start
		if li != lj {
			return li > lj
		}
		if candidates[i].start != candidates[j].start {
			return candidates[i].start < candidates[j].start
		}
		return candidates[i].order < candidates[j].order
	})

	// taken marks consumed runes
	taken := make([]bool, len(runes))
	var matches []domain.Match

	for _, c := range candidates {
		if anyTaken(taken, c.start, c.end) {
			continue
		}
		for i := c.start; i < c.end; i++ {
			taken[i] = true
		}
		matches = append(matches, domain.Match{
			Start:   c.start,
			End:     c.end,
			Entry:   entries[c.order],
			Surface: string(runes[c.start:c.end]),
		})
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Start < matches[j].Start
	})

	return matches
}

// isBoundary reports whether position i is outside the text or holds a
// rune that is neither a letter nor a digit
func isBoundary(runes []rune, i int) bool {
	if i < 0 || i >= len(runes) {
		return true
	}
	r := runes[i]
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

func anyTaken(taken []bool, start, end int) bool {
	for i := start; i < end; i++ {
		if taken[i] {
			return true
		}
	}
	return false
}

func foldEqual(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !runeFoldEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

// runeFoldEqual walks the simple folding orbit, same as strings.EqualFold
func runeFoldEqual(r1, r2 rune) bool {
	if r1 == r2 {
		return true
	}
	if r2 < r1 {
		r1, r2 = r2, r1
	}
	r := unicode.SimpleFold(r1)
	for r != r1 && r < r2 {
		r = unicode.SimpleFold(r)
	}
	return r == r2
}
