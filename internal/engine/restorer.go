package engine

import (
	"strings"

	"nkrane/internal/domain"
)

// Restore replaces placeholder tokens in translated text with the target
// terms, cased like the original surfaces. Tokens missing from text are
// reported as anomalies and their slots are left as the translator returned
// them. lang is the target language, used for case rules. Restoring text
// that holds no tokens is a no-op.
func Restore(text string, placeholders domain.PlaceholderMap, lang string) (string, []domain.RestorationAnomaly) {
	if len(placeholders) == 0 {
		return text, nil
	}

	var anomalies []domain.RestorationAnomaly
	pairs := make([]string, 0, 2*len(placeholders))

	for _, p := range placeholders {
		if !strings.Contains(text, p.Token) {
			anomalies = append(anomalies, domain.RestorationAnomaly{
				Token: p.Token,
				Term:  p.Match.Entry.Term,
			})
			continue
		}
		pairs = append(pairs, p.Token, ApplyCase(p.Case, p.Match.Entry.Translation, lang))
	}

	if len(pairs) == 0 {
		return text, anomalies
	}

	// single pass: inserted terms are never rescanned for tokens
	return strings.NewReplacer(pairs...).Replace(text), anomalies
}
