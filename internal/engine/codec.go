package engine

import (
	"strconv"
	"strings"

	"nkrane/internal/domain"
)

// Token markers. Tokens are <open><index><close>: upper-case letters around a
// decimal index, nothing a translator would trim, split or translate. The
// close marker keeps any token from being a substring of another.
const (
	tokenOpen   = "NKRZ"
	tokenClose  = "ZQX"
	tokenExtend = "Q"
)

// Preprocess finds entries in text and replaces them with placeholder tokens
func Preprocess(text string, entries []domain.Entry) (string, domain.PlaceholderMap) {
	return Protect(text, FindMatches(text, entries))
}

// Protect replaces every match with a unique token. matches must be sorted
// and non-overlapping, as FindMatches returns them; others are skipped.
// Text without matches is returned unchanged with an empty map.
func Protect(text string, matches []domain.Match) (string, domain.PlaceholderMap) {
	if len(matches) == 0 {
		return text, nil
	}

	open := openMarker(text)
	runes := []rune(text)
	placeholders := make(domain.PlaceholderMap, 0, len(matches))

	var b strings.Builder
	last := 0

	for _, m := range matches {
		if m.Start < last || m.End > len(runes) || m.Start >= m.End {
			continue
		}

		token := open + strconv.Itoa(len(placeholders)) + tokenClose

		b.WriteString(string(runes[last:m.Start]))
		b.WriteString(token)
		last = m.End

		placeholders = append(placeholders, domain.Placeholder{
			Token: token,
			Match: m,
			Case:  DetectCase(m.Surface),
		})
	}
	b.WriteString(string(runes[last:]))

	if len(placeholders) == 0 {
		return text, nil
	}
	return b.String(), placeholders
}

// openMarker extends the open marker until the text does not contain it,
// so no generated token can collide with existing text
func openMarker(text string) string {
	upper := strings.ToUpper(text)
	open := tokenOpen
	for strings.Contains(upper, open) {
		open += tokenExtend
	}
	return open
}
