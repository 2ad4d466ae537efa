package cli

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"nkrane/internal/config"
	"nkrane/internal/repository"
	"nkrane/internal/repository/postgres"
	"nkrane/internal/service"
	"nkrane/internal/terminology"
	"nkrane/internal/translator"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Flags holds the global command line flags
type Flags struct {
	Verbose    bool
	Provider   string
	TermsDir   string
	NoBuiltin  bool
	WithDB     bool
	Migrations string
}

// NewFlags creates flags with default values
func NewFlags() *Flags {
	return &Flags{
		Migrations: postgres.MigrationsURL,
	}
}

// app carries what every subcommand needs once flags are parsed
type app struct {
	flags  *Flags
	cfg    *config.Config
	logger *zap.Logger
	db     *sql.DB
}

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	return newRootCommand(&app{flags: flags})
}

func newRootCommand(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "nkrane",
		Short: "Terminology-controlled machine translation",
		Long: `nkrane translates text through an external provider while enforcing
domain terminology: known terms are protected before translation and
replaced by their approved target terms afterwards.

Examples:
  nkrane translate --domain politics --dest el "The Parliament voted."
  nkrane batch --domain medicine --dest fr texts.txt
  nkrane list
  nkrane export politics el --format csv
  nkrane validate my_terms.csv`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
	}

	setupFlags(rootCmd, a.flags)

	rootCmd.AddCommand(
		newTranslateCommand(a),
		newBatchCommand(a),
		newListCommand(a),
		newExportCommand(a),
		newValidateCommand(a),
		newImportCommand(a),
		newRemoveCommand(a),
	)

	// cobra skips post-run hooks when RunE fails
	for _, sub := range rootCmd.Commands() {
		run := sub.RunE
		if run == nil {
			continue
		}
		sub.RunE = func(cmd *cobra.Command, args []string) error {
			defer a.close()
			return run(cmd, args)
		}
	}

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	cmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Verbose logging")
	cmd.PersistentFlags().StringVar(&flags.Provider, "provider", "", "Translation provider: openai, gemini or identity (default from TRANSLATOR_PROVIDER)")
	cmd.PersistentFlags().StringVar(&flags.TermsDir, "terms-dir", "", "User terminology directory laid out as <domain>/<language>.<csv|json|yaml>")
	cmd.PersistentFlags().BoolVar(&flags.NoBuiltin, "no-builtin", false, "Do not load built-in terminology")
	cmd.PersistentFlags().BoolVar(&flags.WithDB, "db", false, "Merge terminology imported into the database")
	cmd.PersistentFlags().StringVar(&flags.Migrations, "migrations", flags.Migrations, "Schema migrations location")
}

// NewLogger builds the CLI logger: development output when verbose,
// warnings and errors only otherwise
func NewLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}

func (a *app) init() error {
	logger, err := NewLogger(a.flags.Verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.logger = logger

	cfg, err := config.Load()
	if err != nil {
		a.close()
		return err
	}

	if a.flags.Provider != "" {
		cfg.Translator.Provider = strings.ToLower(a.flags.Provider)
	}
	if a.flags.TermsDir != "" {
		cfg.Terminology.Dir = a.flags.TermsDir
	}
	if a.flags.NoBuiltin {
		cfg.Terminology.UseBuiltin = false
	}
	a.cfg = cfg

	return nil
}

func (a *app) close() {
	if a.db != nil {
		a.db.Close()
		a.db = nil
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// database connects to PostgreSQL and applies migrations once
func (a *app) database() (*sql.DB, error) {
	if a.db != nil {
		return a.db, nil
	}
	if err := a.cfg.RequireDatabase(); err != nil {
		return nil, err
	}

	db, err := postgres.Connect(a.cfg.DSN(), 3, time.Second, a.logger)
	if err != nil {
		return nil, err
	}
	if err := postgres.Migrate(db, a.flags.Migrations, a.logger); err != nil {
		db.Close()
		return nil, err
	}

	a.db = db
	return db, nil
}

func (a *app) termRepo() (repository.TermRepository, error) {
	db, err := a.database()
	if err != nil {
		return nil, err
	}
	return postgres.NewTermRepo(db), nil
}

// loadStore builds the terminology store, merging database terms with --db
func (a *app) loadStore(files []terminology.FileSource) (*terminology.Store, error) {
	var repo repository.TermRepository
	if a.flags.WithDB {
		r, err := a.termRepo()
		if err != nil {
			return nil, err
		}
		repo = r
	}
	return service.LoadStore(a.cfg.Terminology, files, repo, a.logger)
}

func (a *app) translationService(ctx context.Context, files []terminology.FileSource) (*service.TranslationService, error) {
	store, err := a.loadStore(files)
	if err != nil {
		return nil, err
	}

	tr, err := translator.New(ctx, a.cfg.Translator, a.logger)
	if err != nil {
		return nil, err
	}

	return service.NewTranslationService(store, tr, service.OptionsFromConfig(a.cfg), a.logger), nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
