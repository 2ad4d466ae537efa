package postgres

import (
	"database/sql"
	"fmt"

	"nkrane/internal/domain"
)

// TermRepo implements repository.TermRepository. It stores user
// terminology imported through the CLI; rows are merged over the built-in
// terminology when a store is loaded.
type TermRepo struct {
	db *sql.DB
}

// NewTermRepo creates a new terminology repository
func NewTermRepo(db *sql.DB) *TermRepo {
	return &TermRepo{db: db}
}

// ReplaceScope swaps all terms of scope for entries in one transaction
func (r *TermRepo) ReplaceScope(scope domain.Scope, entries []domain.Entry) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`DELETE FROM user_terms WHERE domain = $1 AND language = $2`,
		scope.Domain, scope.Language,
	); err != nil {
		return fmt.Errorf("failed to clear terms of %s: %w", scope, err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO user_terms (domain, language, term_id, term, translation, position)
		VALUES ($1, $2, $3, $4, $5, $6)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, e := range entries {
		if _, err := stmt.Exec(scope.Domain, scope.Language, e.ID, e.Term, e.Translation, i); err != nil {
			return fmt.Errorf("failed to insert term %q: %w", e.Term, err)
		}
	}

	return tx.Commit()
}

// ListTerms returns all user terms ordered by scope and import position
func (r *TermRepo) ListTerms() ([]domain.Entry, error) {
	query := `
		SELECT term_id, term, translation, domain, language
		FROM user_terms
		ORDER BY domain, language, position
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list terms: %w", err)
	}
	defer rows.Close()

	var entries []domain.Entry
	for rows.Next() {
		e := domain.Entry{Origin: domain.OriginUser}
		if err := rows.Scan(&e.ID, &e.Term, &e.Translation, &e.Domain, &e.Language); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// DeleteScope removes the user terms of scope and returns how many were removed
func (r *TermRepo) DeleteScope(scope domain.Scope) (int64, error) {
	res, err := r.db.Exec(
		`DELETE FROM user_terms WHERE domain = $1 AND language = $2`,
		scope.Domain, scope.Language,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to delete terms of %s: %w", scope, err)
	}
	return res.RowsAffected()
}
