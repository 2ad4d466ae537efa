package terminology

import (
	"fmt"
	"sort"

	"nkrane/internal/domain"

	"go.uber.org/zap"
)

// Store is the read-only terminology of a session. It is safe for
// concurrent readers; nothing mutates it after Build.
type Store struct {
	scopes map[domain.Scope][]domain.Entry
	stats  domain.Stats
}

// Entries returns a copy of the entries for domain and language, nil when
// the pair has no terminology
func (s *Store) Entries(domainName, language string) []domain.Entry {
	entries := s.scopes[domain.NewScope(domainName, language)]
	if len(entries) == 0 {
		return nil
	}
	out := make([]domain.Entry, len(entries))
	copy(out, entries)
	return out
}

// Lookup returns entries for domain and language or a *domain.LookupError
func (s *Store) Lookup(domainName, language string) ([]domain.Entry, error) {
	entries := s.Entries(domainName, language)
	if len(entries) == 0 {
		scope := domain.NewScope(domainName, language)
		return nil, &domain.LookupError{Domain: scope.Domain, Language: scope.Language}
	}
	return entries, nil
}

// Has reports whether scope holds terminology
func (s *Store) Has(scope domain.Scope) bool {
	return len(s.scopes[scope]) > 0
}

// Domains returns sorted display names of populated domains
func (s *Store) Domains() []string {
	seen := make(map[string]bool)
	for scope := range s.scopes {
		seen[domain.DomainName(scope.Domain)] = true
	}
	return sortedKeys(seen)
}

// Languages returns sorted populated language codes
func (s *Store) Languages() []string {
	seen := make(map[string]bool)
	for scope := range s.scopes {
		seen[scope.Language] = true
	}
	return sortedKeys(seen)
}

// Pairs returns populated scopes sorted by domain, then language
func (s *Store) Pairs() []domain.Scope {
	pairs := make([]domain.Scope, 0, len(s.scopes))
	for scope := range s.scopes {
		pairs = append(pairs, scope)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Domain != pairs[j].Domain {
			return pairs[i].Domain < pairs[j].Domain
		}
		return pairs[i].Language < pairs[j].Language
	})
	return pairs
}

// DomainsWithLanguages groups populated languages by domain display name
func (s *Store) DomainsWithLanguages() map[string][]string {
	grouped := make(map[string][]string)
	for _, scope := range s.Pairs() {
		name := domain.DomainName(scope.Domain)
		grouped[name] = append(grouped[name], scope.Language)
	}
	return grouped
}

// Stats returns term counts by origin
func (s *Store) Stats() domain.Stats {
	return s.stats
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Builder merges terminology sources into a Store. User entries override
// built-in entries with the same term in the same scope; a later source of
// the same origin overrides an earlier one. An override keeps the ID of the
// entry it replaces, and ids that still clash within a scope are re-keyed
// with the origin as prefix.
type Builder struct {
	scopes map[domain.Scope]*scopeSet
	logger *zap.Logger
}

type scopeSet struct {
	entries []domain.Entry
	index   map[string]int
}

// NewBuilder creates an empty builder
func NewBuilder(logger *zap.Logger) *Builder {
	return &Builder{
		scopes: make(map[domain.Scope]*scopeSet),
		logger: logger,
	}
}

// Add merges entries into the builder
func (b *Builder) Add(entries ...domain.Entry) {
	for _, e := range entries {
		scope := domain.NewScope(e.Domain, e.Language)
		e.Domain, e.Language = scope.Domain, scope.Language

		set, ok := b.scopes[scope]
		if !ok {
			set = &scopeSet{index: make(map[string]int)}
			b.scopes[scope] = set
		}

		i, exists := set.index[e.Key()]
		if !exists {
			set.index[e.Key()] = len(set.entries)
			set.entries = append(set.entries, e)
			continue
		}

		current := set.entries[i]
		if current.Origin == domain.OriginUser && e.Origin == domain.OriginBuiltin {
			continue
		}

		b.logger.Debug("Terminology entry overridden",
			zap.String("scope", scope.String()),
			zap.String("term", e.Term),
			zap.String("from", string(current.Origin)),
			zap.String("to", string(e.Origin)),
		)
		e.ID = current.ID
		set.entries[i] = e
	}
}

// Build returns an immutable store of everything added so far
func (b *Builder) Build() *Store {
	store := &Store{scopes: make(map[domain.Scope][]domain.Entry, len(b.scopes))}

	for scope, set := range b.scopes {
		entries := make([]domain.Entry, len(set.entries))
		copy(entries, set.entries)
		b.uniqueIDs(scope, entries)
		store.scopes[scope] = entries

		for _, e := range entries {
			store.stats.Total++
			if e.Origin == domain.OriginUser {
				store.stats.User++
			} else {
				store.stats.Builtin++
			}
		}
	}

	return store
}

// uniqueIDs re-keys entries whose id is already held by an earlier entry
// of the scope
func (b *Builder) uniqueIDs(scope domain.Scope, entries []domain.Entry) {
	taken := make(map[string]bool, len(entries))
	for _, e := range entries {
		taken[e.ID] = true
	}

	held := make(map[string]bool, len(entries))
	for i, e := range entries {
		if !held[e.ID] {
			held[e.ID] = true
			continue
		}

		id := string(e.Origin) + "-" + e.ID
		for n := 2; taken[id]; n++ {
			id = fmt.Sprintf("%s-%s-%d", e.Origin, e.ID, n)
		}

		b.logger.Debug("Terminology id re-keyed",
			zap.String("scope", scope.String()),
			zap.String("term", e.Term),
			zap.String("from", e.ID),
			zap.String("to", id),
		)
		taken[id] = true
		held[id] = true
		entries[i].ID = id
	}
}
