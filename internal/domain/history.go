package domain

import (
	"fmt"
	"time"
)

// HistoryRecord is a persisted translation
type HistoryRecord struct {
	ID           int
	UserID       int64
	Domain       string
	Source       string
	Target       string
	Original     string
	Text         string
	Replacements int
	CreatedAt    time.Time
}

// NewHistoryRecord builds a record from a translation result
func NewHistoryRecord(userID int64, r *TranslationResult) HistoryRecord {
	return HistoryRecord{
		UserID:       userID,
		Domain:       r.Domain,
		Source:       r.Source,
		Target:       r.Target,
		Original:     r.Original,
		Text:         r.Text,
		Replacements: r.ReplacementsCount,
	}
}

// DateString returns date in YYYYMMDD format
func (h HistoryRecord) DateString() string {
	return h.CreatedAt.Format("20060102")
}

// DisplayDate returns user-friendly date string
func (h HistoryRecord) DisplayDate() string {
	now := time.Now()
	date := h.CreatedAt

	if date.Year() == now.Year() && date.Month() == now.Month() && date.Day() == now.Day() {
		return "Today"
	}

	yesterday := now.AddDate(0, 0, -1)
	if date.Year() == yesterday.Year() && date.Month() == yesterday.Month() && date.Day() == yesterday.Day() {
		return "Yesterday"
	}

	return date.Format("2 Jan 2006")
}

// Label returns a short one-line description for lists
func (h HistoryRecord) Label() string {
	return fmt.Sprintf("%s · %s→%s · %d term(s)", DomainName(h.Domain), h.Source, h.Target, h.Replacements)
}
