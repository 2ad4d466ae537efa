package domain

// Match is an occurrence of a terminology entry in a text.
// Start and End are rune offsets, End is exclusive.
type Match struct {
	Start   int
	End     int
	Entry   Entry
	Surface string
}

// Len returns match length in runes
func (m Match) Len() int {
	return m.End - m.Start
}

// Overlaps reports whether two matches share at least one rune
func (m Match) Overlaps(o Match) bool {
	return m.Start < o.End && o.Start < m.End
}

// CasePattern is the capitalization style of a matched surface
type CasePattern int

const (
	// CaseMixed covers any surface that is not one of the other patterns,
	// including surfaces without cased letters
	CaseMixed CasePattern = iota
	CaseLower
	CaseUpper
	CaseCapitalized
	// CaseTitle is a multi-word surface where every word starts upper-case
	CaseTitle
)

func (p CasePattern) String() string {
	switch p {
	case CaseLower:
		return "lower"
	case CaseUpper:
		return "upper"
	case CaseCapitalized:
		return "capitalized"
	case CaseTitle:
		return "title"
	default:
		return "mixed"
	}
}

// Placeholder links a generated token to the match it replaced
type Placeholder struct {
	Token string
	Match Match
	Case  CasePattern
}

// PlaceholderMap is an ordered token -> placeholder mapping.
// Order follows the matches, left to right.
type PlaceholderMap []Placeholder

// Lookup finds the placeholder for token
func (m PlaceholderMap) Lookup(token string) (Placeholder, bool) {
	for _, p := range m {
		if p.Token == token {
			return p, true
		}
	}
	return Placeholder{}, false
}

// Tokens returns tokens in order
func (m PlaceholderMap) Tokens() []string {
	tokens := make([]string, len(m))
	for i, p := range m {
		tokens[i] = p.Token
	}
	return tokens
}

// Terms returns the source terms of the replaced entries in order
func (m PlaceholderMap) Terms() []string {
	terms := make([]string, len(m))
	for i, p := range m {
		terms[i] = p.Match.Entry.Term
	}
	return terms
}

// RestorationAnomaly records a token that the external translator dropped
// or corrupted. It is reported, never raised.
type RestorationAnomaly struct {
	Token string `json:"token"`
	Term  string `json:"term"`
}
