package handler

import (
	"fmt"
	"sort"
	"strings"

	"nkrane/internal/domain"
)

const (
	previewLength   = 80
	historyPageSize = 5
)

// formatResult renders a translation for a chat reply
func formatResult(r *domain.TranslationResult) string {
	var b strings.Builder
	b.WriteString(r.Text)

	var notes []string
	if r.ReplacementsCount > 0 {
		notes = append(notes, fmt.Sprintf("📌 %d term(s) enforced: %s", r.ReplacementsCount, strings.Join(r.ReplacedTerms, ", ")))
	}
	if len(r.Anomalies) > 0 {
		lost := make([]string, 0, len(r.Anomalies))
		for _, a := range r.Anomalies {
			lost = append(lost, a.Term)
		}
		notes = append(notes, "⚠️ Not enforced: "+strings.Join(lost, ", "))
	}
	if len(notes) > 0 {
		b.WriteString("\n\n" + strings.Join(notes, "\n"))
	}
	return b.String()
}

// formatDomains lists domains with their languages
func formatDomains(grouped map[string][]string, stats domain.Stats) string {
	if len(grouped) == 0 {
		return "No terminology is loaded."
	}

	var b strings.Builder
	b.WriteString("📚 Terminology\n\n")
	for _, name := range sortedDomainNames(grouped) {
		fmt.Fprintf(&b, "📁 %s: %s\n", name, strings.Join(grouped[name], ", "))
	}
	fmt.Fprintf(&b, "\n%d term(s): %d builtin, %d user", stats.Total, stats.Builtin, stats.User)
	return b.String()
}

// formatHistory renders one page of translation history
func formatHistory(records []domain.HistoryRecord, page, totalPages int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🕘 Your translations (page %d/%d):\n\n", page, totalPages)
	for i, r := range records {
		fmt.Fprintf(&b, "%d. %s · %s\n", (page-1)*historyPageSize+i+1, r.DisplayDate(), r.Label())
		fmt.Fprintf(&b, "%s\n→ %s\n\n", truncate(r.Original, previewLength), truncate(r.Text, previewLength))
	}
	return strings.TrimRight(b.String(), "\n")
}

func sortedDomainNames(grouped map[string][]string) []string {
	names := make([]string, 0, len(grouped))
	for name := range grouped {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "…"
}
