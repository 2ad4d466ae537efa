package domain

import "strings"

// Origin tells where a terminology entry was loaded from
type Origin string

const (
	OriginBuiltin Origin = "builtin"
	OriginUser    Origin = "user"
)

// Entry is a single terminology entry: a source term and the target term
// it must be rendered as, scoped to a domain and a target language
type Entry struct {
	ID          string `json:"id" yaml:"id"`
	Term        string `json:"term" yaml:"term"`
	Translation string `json:"translation" yaml:"translation"`
	Domain      string `json:"-" yaml:"-"`
	Language    string `json:"-" yaml:"-"`
	Origin      Origin `json:"-" yaml:"-"`
}

// Key returns the case-insensitive identity of the entry's source term
func (e Entry) Key() string {
	return TermKey(e.Term)
}

// Scope returns the (domain, language) pair the entry belongs to
func (e Entry) Scope() Scope {
	return NewScope(e.Domain, e.Language)
}

// TermKey normalizes a source term for uniqueness checks
func TermKey(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}

// Scope identifies a terminology set
type Scope struct {
	Domain   string `json:"domain"`
	Language string `json:"language"`
}

// NewScope builds a normalized scope. The empty domain is the general scope.
func NewScope(domain, language string) Scope {
	return Scope{
		Domain:   NormalizeDomain(domain),
		Language: NormalizeLanguage(language),
	}
}

// String returns scope in domain/language form
func (s Scope) String() string {
	return DomainName(s.Domain) + "/" + s.Language
}

// GeneralDomain is the display name of the empty domain
const GeneralDomain = "general"

// NormalizeDomain lower-cases a domain name; "general" maps to the empty domain
func NormalizeDomain(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == GeneralDomain {
		return ""
	}
	return name
}

// DomainName returns the display name of a normalized domain
func DomainName(name string) string {
	if name == "" {
		return GeneralDomain
	}
	return name
}

// NormalizeLanguage lower-cases and trims a language code
func NormalizeLanguage(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}

// Stats holds terminology counts per origin
type Stats struct {
	Total   int `json:"total"`
	Builtin int `json:"builtin"`
	User    int `json:"user"`
}
