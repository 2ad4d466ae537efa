package terminology

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"nkrane/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func exportStore() *Store {
	b := NewBuilder(zap.NewNop())
	b.Add(
		builtinEntry("1", "Parliament", "Βουλή", "politics", "el"),
		builtinEntry("2", "bill, draft", "νομοσχέδιο", "politics", "el"),
	)
	return b.Build()
}

func TestExport_JSON(t *testing.T) {
	out, err := Export(exportStore(), "politics", "el", FormatJSON)
	require.NoError(t, err)

	assert.Contains(t, string(out), "Βουλή")
	assert.Contains(t, string(out), "\n  {\n    \"id\": \"1\"")

	var decoded []map[string]string
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, []map[string]string{
		{"id": "1", "term": "Parliament", "translation": "Βουλή"},
		{"id": "2", "term": "bill, draft", "translation": "νομοσχέδιο"},
	}, decoded)
}

func TestExport_CSV(t *testing.T) {
	out, err := Export(exportStore(), "politics", "el", FormatCSV)
	require.NoError(t, err)

	expected := "id,term,translation\n1,Parliament,Βουλή\n2,\"bill, draft\",νομοσχέδιο\n"
	assert.Equal(t, expected, string(out))
}

func TestExport_RoundTripsThroughValidation(t *testing.T) {
	for _, format := range []Format{FormatJSON, FormatCSV} {
		out, err := Export(exportStore(), "politics", "el", format)
		require.NoError(t, err)

		report := Validate(bytes.NewReader(out), format)
		assert.True(t, report.Valid, string(format))
	}
}

func TestExport_MissingScope(t *testing.T) {
	_, err := Export(exportStore(), "medicine", "el", FormatJSON)

	var lerr *domain.LookupError
	assert.True(t, errors.As(err, &lerr))
}

func TestExport_UnsupportedFormat(t *testing.T) {
	_, err := Export(exportStore(), "politics", "el", Format("xml"))
	assert.Error(t, err)
}
