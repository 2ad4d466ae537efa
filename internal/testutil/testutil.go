package testutil

import (
	"time"

	"nkrane/internal/domain"
	"nkrane/internal/terminology"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestStore builds a store holding entries as built-in terms
func NewTestStore(entries ...domain.Entry) *terminology.Store {
	b := terminology.NewBuilder(zap.NewNop())
	for i := range entries {
		if entries[i].Origin == "" {
			entries[i].Origin = domain.OriginBuiltin
		}
	}
	b.Add(entries...)
	return b.Build()
}

// NewTestEntry creates an entry of domainName/language
func NewTestEntry(id, term, translation, domainName, language string) domain.Entry {
	return domain.Entry{
		ID:          id,
		Term:        term,
		Translation: translation,
		Domain:      domainName,
		Language:    language,
	}
}

// PoliticsStore returns a small English to Greek politics store
func PoliticsStore() *terminology.Store {
	return NewTestStore(
		NewTestEntry("1", "Parliament", "Βουλή", "politics", "el"),
		NewTestEntry("2", "Prime Minister", "Πρωθυπουργός", "politics", "el"),
		NewTestEntry("3", "minister", "υπουργός", "politics", "el"),
	)
}

// NewTestRecord creates a history record created at createdAt
func NewTestRecord(id int, userID int64, original, text string, createdAt time.Time) domain.HistoryRecord {
	return domain.HistoryRecord{
		ID:        id,
		UserID:    userID,
		Domain:    "politics",
		Source:    "en",
		Target:    "el",
		Original:  original,
		Text:      text,
		CreatedAt: createdAt,
	}
}
