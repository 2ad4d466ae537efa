package service

import (
	"fmt"

	"nkrane/internal/config"
	"nkrane/internal/domain"
	"nkrane/internal/repository"
	"nkrane/internal/terminology"

	"go.uber.org/zap"
)

// LoadStore builds the terminology store of a process from the built-in
// terms, the configured directory, extra files and the user terms kept in
// the database. termRepo may be nil.
func LoadStore(
	cfg config.TerminologyConfig,
	files []terminology.FileSource,
	termRepo repository.TermRepository,
	logger *zap.Logger,
) (*terminology.Store, error) {
	opts := terminology.Options{
		UseBuiltin: cfg.UseBuiltin,
		Dir:        cfg.Dir,
		Files:      files,
	}

	if termRepo != nil {
		entries, err := termRepo.ListTerms()
		if err != nil {
			return nil, fmt.Errorf("failed to load user terminology: %w", err)
		}
		opts.Extra = entries
	}

	return terminology.Load(opts, logger)
}

// TerminologyService lists, exports, validates and imports terminology
type TerminologyService struct {
	store    *terminology.Store
	termRepo repository.TermRepository
	logger   *zap.Logger
}

// NewTerminologyService creates a new terminology service. termRepo may be
// nil when no database is configured; Import then fails.
func NewTerminologyService(store *terminology.Store, termRepo repository.TermRepository, logger *zap.Logger) *TerminologyService {
	return &TerminologyService{
		store:    store,
		termRepo: termRepo,
		logger:   logger,
	}
}

// Store returns the loaded terminology
func (s *TerminologyService) Store() *terminology.Store {
	return s.store
}

// Domains returns populated domains with their languages
func (s *TerminologyService) Domains() map[string][]string {
	return s.store.DomainsWithLanguages()
}

// Languages returns the languages populated for domainName
func (s *TerminologyService) Languages(domainName string) []string {
	return s.store.DomainsWithLanguages()[domain.DomainName(domain.NormalizeDomain(domainName))]
}

// Stats returns term counts by origin
func (s *TerminologyService) Stats() domain.Stats {
	return s.store.Stats()
}

// Export renders the terminology of a scope
func (s *TerminologyService) Export(domainName, language string, format terminology.Format) ([]byte, error) {
	return terminology.Export(s.store, domainName, language, format)
}

// Validate checks a terminology file without loading it
func (s *TerminologyService) Validate(path string) terminology.Report {
	return terminology.ValidateFile(path)
}

// Import validates path and stores it as the user terminology of the scope,
// replacing what was imported before. It returns the number of terms.
// The running store is not changed; terms apply on next load.
func (s *TerminologyService) Import(path, domainName, language string) (int, error) {
	if s.termRepo == nil {
		return 0, fmt.Errorf("import requires a database")
	}

	scope := domain.NewScope(domainName, language)
	if scope.Language == "" {
		return 0, fmt.Errorf("target language is required")
	}

	entries, err := terminology.ParseFile(path, scope, domain.OriginUser)
	if err != nil {
		return 0, err
	}

	if err := s.termRepo.ReplaceScope(scope, entries); err != nil {
		return 0, err
	}

	s.logger.Info("Terminology imported",
		zap.String("path", path),
		zap.String("scope", scope.String()),
		zap.Int("terms", len(entries)),
	)

	return len(entries), nil
}

// Remove deletes the imported terminology of a scope
func (s *TerminologyService) Remove(domainName, language string) (int64, error) {
	if s.termRepo == nil {
		return 0, fmt.Errorf("remove requires a database")
	}
	return s.termRepo.DeleteScope(domain.NewScope(domainName, language))
}
