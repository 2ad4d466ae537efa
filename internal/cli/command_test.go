package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"nkrane/internal/domain"
	"nkrane/internal/queue"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

// execute runs the root command offline with the identity provider
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	return executeApp(t, &app{flags: NewFlags()}, stdin, args...)
}

func executeApp(t *testing.T, a *app, stdin string, args ...string) (string, error) {
	t.Helper()

	t.Setenv("TRANSLATOR_PROVIDER", "identity")
	t.Setenv("TERMINOLOGY_DIR", "")
	t.Setenv("USE_BUILTIN", "")
	t.Setenv("SOURCE_LANG", "")
	t.Setenv("BATCH_DELAY", "1ms")

	cmd := newRootCommand(a)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCreateRootCommand(t *testing.T) {
	cmd := CreateRootCommand(NewFlags())

	assert.Equal(t, "nkrane", cmd.Use)

	for _, name := range []string{"translate", "batch", "list", "export", "validate", "import", "remove"} {
		t.Run("command_"+name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}

	for _, name := range []string{"verbose", "provider", "terms-dir", "no-builtin", "db", "migrations"} {
		t.Run("flag_"+name, func(t *testing.T) {
			assert.NotNil(t, cmd.PersistentFlags().Lookup(name))
		})
	}
}

func TestTranslateCommand(t *testing.T) {
	out, err := execute(t, "", "translate", "--domain", "politics", "--dest", "el", "The Parliament voted.")
	require.NoError(t, err)

	var result domain.TranslationResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))

	assert.Equal(t, "The Parliament voted.", result.Original)
	assert.Equal(t, "The Βουλή voted.", result.Text)
	assert.Equal(t, "en", result.Source)
	assert.Equal(t, "el", result.Target)
	assert.Equal(t, 1, result.ReplacementsCount)
	assert.Equal(t, []string{"Parliament"}, result.ReplacedTerms)
	assert.Contains(t, out, `"replaced_terms"`)
}

func TestTranslateCommand_StdinTextOnly(t *testing.T) {
	out, err := execute(t, "the prime minister\n", "translate", "--domain", "politics", "--dest", "el", "--text-only")
	require.NoError(t, err)

	assert.Equal(t, "the Πρωθυπουργός\n", out)
}

func TestTranslateCommand_TermsFile(t *testing.T) {
	terms := writeFile(t, "terms.csv", "id,term,translation\n1,vote,ψηφοφορία\n")

	out, err := execute(t, "", "translate", "--domain", "politics", "--dest", "el", "--terms", terms, "--text-only", "the vote in Parliament")
	require.NoError(t, err)

	assert.Equal(t, "the ψηφοφορία in Βουλή\n", out)
}

func TestTranslateCommand_RequiresDest(t *testing.T) {
	_, err := execute(t, "", "translate", "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dest")
}

func TestBatchCommand(t *testing.T) {
	input := writeFile(t, "texts.txt", "The Parliament voted.\n\n  The minister resigned.  \n")

	out, err := execute(t, "", "batch", "--domain", "politics", "--dest", "el", input)
	require.NoError(t, err)

	var result queue.JobResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))

	assert.NotEmpty(t, result.JobID)
	assert.Equal(t, queue.StatusCompleted, result.Status)
	require.Len(t, result.Items, 2)
	assert.Equal(t, "The Βουλή voted.", result.Items[0].Result.Text)
	assert.Equal(t, "The υπουργός resigned.", result.Items[1].Result.Text)
}

func TestBatchCommand_Errors(t *testing.T) {
	empty := writeFile(t, "empty.txt", "\n\n")
	texts := writeFile(t, "texts.txt", "hello\n")
	terms := writeFile(t, "terms.csv", "id,term,translation\n1,hello,γεια\n")

	t.Setenv("AMQP_URL", "")

	tests := []struct {
		name     string
		args     []string
		contains string
	}{
		{"no texts", []string{"batch", "--dest", "el", empty}, "no texts"},
		{"missing file", []string{"batch", "--dest", "el", filepath.Join(t.TempDir(), "nope.txt")}, "failed to open"},
		{"enqueue with terms", []string{"batch", "--dest", "el", "--enqueue", "--terms", terms, texts}, "--terms"},
		{"enqueue without queue", []string{"batch", "--dest", "el", "--enqueue", texts}, "AMQP_URL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, "", tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestListCommand(t *testing.T) {
	out, err := execute(t, "", "list")
	require.NoError(t, err)

	assert.Contains(t, out, "politics: el, es, fr\n")
	assert.Contains(t, out, "medicine: es, fr\n")
	assert.Contains(t, out, "terms: ")

	out, err = execute(t, "", "list", "--json")
	require.NoError(t, err)

	var decoded listing
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, []string{"el", "es", "fr"}, decoded.Domains["politics"])
	assert.Equal(t, decoded.Stats.Total, decoded.Stats.Builtin)
}

func TestListCommand_NoBuiltin(t *testing.T) {
	out, err := execute(t, "", "list", "--no-builtin")
	require.NoError(t, err)
	assert.Equal(t, "terms: 0 (builtin 0, user 0)\n", out)
}

func TestExportCommand(t *testing.T) {
	out, err := execute(t, "", "export", "politics", "el", "--format", "csv")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "id,term,translation\n1,Parliament,Βουλή\n"))

	path := filepath.Join(t.TempDir(), "politics_el.json")
	_, err = execute(t, "", "export", "politics", "el", "-o", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"translation": "Βουλή"`)
}

func TestExportCommand_MissingScope(t *testing.T) {
	_, err := execute(t, "", "export", "politics", "de")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNoTerminology)
}

func TestValidateCommand(t *testing.T) {
	valid := writeFile(t, "valid.csv", "id,term,translation\n1,vote,ψηφοφορία\n")
	invalid := writeFile(t, "invalid.csv", "id,term,translation\n5,vote,ψηφοφορία\n5,bill,νομοσχέδιο\n")

	out, err := execute(t, "", "validate", valid)
	require.NoError(t, err)
	assert.Equal(t, valid+": valid\n", out)

	out, err = execute(t, "", "validate", valid, invalid)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 files are invalid")
	assert.Contains(t, out, invalid+": invalid: ")
	assert.Contains(t, out, "Duplicate IDs found: 5")
}

func TestImportCommand_RequiresDatabase(t *testing.T) {
	t.Setenv("DB_PASSWORD", "")
	terms := writeFile(t, "terms.csv", "id,term,translation\n1,vote,ψηφοφορία\n")

	_, err := execute(t, "", "import", terms, "--domain", "politics", "--lang", "el")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PASSWORD")

	_, err = execute(t, "", "remove", "politics", "el")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PASSWORD")
}

func TestRootCommand_ReleasesDatabase(t *testing.T) {
	valid := writeFile(t, "terms.csv", "id,term,translation\n1,cat,gato\n")

	tests := []struct {
		name    string
		args    []string
		wantErr bool
	}{
		{name: "success", args: []string{"validate", valid}},
		{name: "invalid file", args: []string{"validate", filepath.Join(t.TempDir(), "missing.csv")}, wantErr: true},
		{name: "missing scope", args: []string{"export", "politics", "xx"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, dbMock, err := sqlmock.New()
			require.NoError(t, err)
			dbMock.ExpectClose()

			a := &app{flags: NewFlags(), db: db}
			_, err = executeApp(t, a, "", tt.args...)

			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Nil(t, a.db)
			assert.NoError(t, dbMock.ExpectationsWereMet())
		})
	}
}

func TestReadLines(t *testing.T) {
	lines, err := readLines(strings.NewReader("a\r\n\n b \n"), "-")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, lines)
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(false)
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))

	logger, err = NewLogger(true)
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
}
