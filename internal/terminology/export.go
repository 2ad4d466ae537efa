package terminology

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"nkrane/internal/domain"
)

type exportedEntry struct {
	ID          string `json:"id"`
	Term        string `json:"term"`
	Translation string `json:"translation"`
}

// Export renders the terminology of domain and language as JSON or CSV.
// A pair without terminology is a *domain.LookupError.
func Export(store *Store, domainName, language string, format Format) ([]byte, error) {
	entries, err := store.Lookup(domainName, language)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := WriteEntries(&buf, entries, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteEntries writes entries as a JSON array or a CSV table with an
// id,term,translation header
func WriteEntries(w io.Writer, entries []domain.Entry, format Format) error {
	switch format {
	case FormatJSON:
		out := make([]exportedEntry, len(entries))
		for i, e := range entries {
			out[i] = exportedEntry{ID: e.ID, Term: e.Term, Translation: e.Translation}
		}
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(out)

	case FormatCSV:
		cw := csv.NewWriter(w)
		if err := cw.Write(requiredFields); err != nil {
			return err
		}
		for _, e := range entries {
			if err := cw.Write([]string{e.ID, e.Term, e.Translation}); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	}

	return fmt.Errorf("unsupported export format %q", format)
}
