package postgres

import (
	"database/sql"
	"fmt"

	"nkrane/internal/domain"
)

// HistoryRepo implements repository.HistoryRepository
type HistoryRepo struct {
	db *sql.DB
}

// NewHistoryRepo creates a new history repository
func NewHistoryRepo(db *sql.DB) *HistoryRepo {
	return &HistoryRepo{db: db}
}

// SaveTranslation stores a finished translation
func (r *HistoryRepo) SaveTranslation(record domain.HistoryRecord) error {
	query := `
		INSERT INTO translations (user_id, domain, source, target, original, text, replacements)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.Exec(query,
		record.UserID, record.Domain, record.Source, record.Target,
		record.Original, record.Text, record.Replacements,
	)
	if err != nil {
		return fmt.Errorf("failed to save translation: %w", err)
	}
	return nil
}

// GetRecentTranslations returns a page of the user's translations, newest
// first, limited to the retention window
func (r *HistoryRepo) GetRecentTranslations(userID int64, limit, offset int) ([]domain.HistoryRecord, error) {
	query := `
		SELECT id, user_id, domain, source, target, original, text, replacements, created_at
		FROM translations
		WHERE user_id = $1
			AND created_at >= NOW() - INTERVAL '60 days'
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query translations: %w", err)
	}
	defer rows.Close()

	var records []domain.HistoryRecord
	for rows.Next() {
		var h domain.HistoryRecord
		if err := rows.Scan(
			&h.ID, &h.UserID, &h.Domain, &h.Source, &h.Target,
			&h.Original, &h.Text, &h.Replacements, &h.CreatedAt,
		); err != nil {
			return nil, err
		}
		records = append(records, h)
	}

	return records, rows.Err()
}

// GetTotalTranslationsCount returns the number of translations in the
// retention window
func (r *HistoryRepo) GetTotalTranslationsCount(userID int64) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM translations
		WHERE user_id = $1
			AND created_at >= NOW() - INTERVAL '60 days'
	`

	var count int
	err := r.db.QueryRow(query, userID).Scan(&count)
	return count, err
}

// CleanOldTranslations deletes translations older than specified days
func (r *HistoryRepo) CleanOldTranslations(days int) error {
	query := `
		DELETE FROM translations
		WHERE created_at < NOW() - INTERVAL '1 day' * $1
	`
	_, err := r.db.Exec(query, days)
	return err
}
