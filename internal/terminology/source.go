// Package terminology loads, validates, merges and exports terminology
// entries scoped by domain and target language.
package terminology

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"nkrane/internal/domain"

	"gopkg.in/yaml.v3"
)

// Format is a terminology source format
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Required source fields
const (
	FieldID          = "id"
	FieldTerm        = "term"
	FieldTranslation = "translation"
)

var requiredFields = []string{FieldID, FieldTerm, FieldTranslation}

// ParseFormat maps a format name or file extension to a Format
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unsupported terminology format %q", name)
}

// FormatFromPath detects the format from a file extension
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

// Report is the outcome of validating a terminology source
type Report struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason"`
}

// Validate checks a terminology source for required fields and duplicate
// ids or terms
func Validate(r io.Reader, format Format) Report {
	if _, err := ParseSource(r, format, "", domain.Scope{}, domain.OriginUser); err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			return Report{Valid: false, Reason: verr.Reason}
		}
		return Report{Valid: false, Reason: err.Error()}
	}
	return Report{Valid: true, Reason: "File is valid"}
}

// ValidateFile validates a terminology file, detecting format by extension
func ValidateFile(path string) Report {
	format, err := FormatFromPath(path)
	if err != nil {
		return Report{Valid: false, Reason: err.Error()}
	}

	f, err := os.Open(path)
	if err != nil {
		return Report{Valid: false, Reason: fmt.Sprintf("Error reading file: %v", err)}
	}
	defer f.Close()

	return Validate(f, format)
}

// ParseSource reads entries for scope from r. Malformed sources return a
// *domain.ValidationError naming source.
func ParseSource(r io.Reader, format Format, source string, scope domain.Scope, origin domain.Origin) ([]domain.Entry, error) {
	rows, columns, err := readRows(r, format)
	if err != nil {
		return nil, &domain.ValidationError{Source: source, Reason: fmt.Sprintf("Error reading file: %v", err)}
	}

	for _, field := range requiredFields {
		if !columns[field] {
			return nil, &domain.ValidationError{
				Source: source,
				Reason: fmt.Sprintf("Missing required columns. Required: %s", strings.Join(requiredFields, ", ")),
			}
		}
	}

	ids := make(map[string]bool, len(rows))
	terms := make(map[string]bool, len(rows))
	entries := make([]domain.Entry, 0, len(rows))

	for i, row := range rows {
		e := domain.Entry{
			ID:          strings.TrimSpace(row[FieldID]),
			Term:        strings.TrimSpace(row[FieldTerm]),
			Translation: strings.TrimSpace(row[FieldTranslation]),
			Domain:      scope.Domain,
			Language:    scope.Language,
			Origin:      origin,
		}

		if e.ID == "" || e.Term == "" || e.Translation == "" {
			return nil, &domain.ValidationError{Source: source, Reason: fmt.Sprintf("Missing value in record %d", i+1)}
		}
		if ids[e.ID] {
			return nil, &domain.ValidationError{Source: source, Reason: fmt.Sprintf("Duplicate IDs found: %s", e.ID)}
		}
		if terms[e.Key()] {
			return nil, &domain.ValidationError{Source: source, Reason: fmt.Sprintf("Duplicate terms found: %s", e.Term)}
		}

		ids[e.ID] = true
		terms[e.Key()] = true
		entries = append(entries, e)
	}

	return entries, nil
}

// ParseFile reads a terminology file for scope
func ParseFile(path string, scope domain.Scope, origin domain.Origin) ([]domain.Entry, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open terminology file: %w", err)
	}
	defer f.Close()

	return ParseSource(f, format, path, scope, origin)
}

// readRows returns records as field maps plus the set of columns present
// in every record (CSV: the header)
func readRows(r io.Reader, format Format) ([]map[string]string, map[string]bool, error) {
	switch format {
	case FormatCSV:
		return readCSV(r)
	case FormatJSON:
		var records []map[string]any
		dec := json.NewDecoder(r)
		dec.UseNumber()
		if err := dec.Decode(&records); err != nil {
			return nil, nil, err
		}
		rows, columns := normalizeRecords(records)
		return rows, columns, nil
	case FormatYAML:
		var records []map[string]any
		if err := yaml.NewDecoder(r).Decode(&records); err != nil && !errors.Is(err, io.EOF) {
			return nil, nil, err
		}
		rows, columns := normalizeRecords(records)
		return rows, columns, nil
	}
	return nil, nil, fmt.Errorf("unsupported terminology format %q", format)
}

func readCSV(r io.Reader) ([]map[string]string, map[string]bool, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, map[string]bool{}, nil
	}
	if err != nil {
		return nil, nil, err
	}

	columns := make(map[string]bool, len(header))
	for i, name := range header {
		header[i] = normalizeColumn(name)
		columns[header[i]] = true
	}

	var rows []map[string]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, err
		}

		row := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(record) {
				row[name] = record[i]
			}
		}
		rows = append(rows, row)
	}

	return rows, columns, nil
}

func normalizeRecords(records []map[string]any) ([]map[string]string, map[string]bool) {
	rows := make([]map[string]string, 0, len(records))
	counts := make(map[string]int)

	for _, record := range records {
		row := make(map[string]string, len(record))
		for key, value := range record {
			name := normalizeColumn(key)
			counts[name]++
			if value != nil {
				row[name] = formatValue(value)
			}
		}
		rows = append(rows, row)
	}

	columns := make(map[string]bool, len(counts))
	for name, n := range counts {
		if n == len(records) {
			columns[name] = true
		}
	}
	return rows, columns
}

// formatValue renders a decoded scalar the way it was written. Numbers never
// use exponent form.
func formatValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

func normalizeColumn(name string) string {
	return strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
}
