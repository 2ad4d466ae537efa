package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHistoryRecord_DateString(t *testing.T) {
	tests := []struct {
		name     string
		date     time.Time
		expected string
	}{
		{
			name:     "date 2024-12-12",
			date:     time.Date(2024, 12, 12, 10, 0, 0, 0, time.UTC),
			expected: "20241212",
		},
		{
			name:     "date 2024-01-01",
			date:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			expected: "20240101",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := HistoryRecord{CreatedAt: tt.date}
			assert.Equal(t, tt.expected, record.DateString())
		})
	}
}

func TestHistoryRecord_DisplayDate(t *testing.T) {
	now := time.Now()
	twoDaysAgo := now.AddDate(0, 0, -2)

	tests := []struct {
		name     string
		date     time.Time
		expected string
	}{
		{name: "today", date: now, expected: "Today"},
		{name: "yesterday", date: now.AddDate(0, 0, -1), expected: "Yesterday"},
		{name: "two days ago", date: twoDaysAgo, expected: twoDaysAgo.Format("2 Jan 2006")},
		{name: "specific date", date: time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), expected: "15 Jun 2024"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := HistoryRecord{CreatedAt: tt.date}
			assert.Equal(t, tt.expected, record.DisplayDate())
		})
	}
}

func TestHistoryRecord_Label(t *testing.T) {
	record := HistoryRecord{Source: "en", Target: "el", Replacements: 2}
	assert.Equal(t, "general · en→el · 2 term(s)", record.Label())

	record.Domain = "politics"
	assert.Equal(t, "politics · en→el · 2 term(s)", record.Label())
}

func TestNewScope(t *testing.T) {
	scope := NewScope("  Politics ", " EL")
	assert.Equal(t, Scope{Domain: "politics", Language: "el"}, scope)
	assert.Equal(t, "politics/el", scope.String())
	assert.Equal(t, "general/ak", NewScope("", "ak").String())
	assert.Equal(t, Scope{Language: "ak"}, NewScope("General", "AK"))
	assert.Equal(t, "general", DomainName(""))
}

func TestErrors(t *testing.T) {
	lookup := &LookupError{Domain: "politics", Language: "fr"}
	assert.ErrorIs(t, lookup, ErrNoTerminology)
	assert.Contains(t, lookup.Error(), "politics/fr")

	validation := &ValidationError{Source: "terms.csv", Reason: "Duplicate IDs found"}
	assert.Equal(t, "invalid terminology terms.csv: Duplicate IDs found", validation.Error())

	timeout := &TimeoutError{Provider: "openai", Timeout: 30 * time.Second}
	assert.Equal(t, "translation provider openai timed out after 30s", timeout.Error())
}
