package repository

import (
	"nkrane/internal/domain"
)

// UserRepository defines user data operations
type UserRepository interface {
	IsAuthorized(userID int64) (bool, error)
	AuthorizeUser(userID int64) error
	EnsureUserExists(userID int64) error
}

// TermRepository defines user terminology operations
type TermRepository interface {
	ReplaceScope(scope domain.Scope, entries []domain.Entry) error
	ListTerms() ([]domain.Entry, error)
	DeleteScope(scope domain.Scope) (int64, error)
}

// HistoryRepository defines translation history operations
type HistoryRepository interface {
	SaveTranslation(record domain.HistoryRecord) error
	GetRecentTranslations(userID int64, limit, offset int) ([]domain.HistoryRecord, error)
	GetTotalTranslationsCount(userID int64) (int, error)
	CleanOldTranslations(days int) error
}
