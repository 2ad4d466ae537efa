package cli

import (
	"fmt"
	"os"
	"strings"

	"nkrane/internal/domain"
	"nkrane/internal/service"
	"nkrane/internal/terminology"

	"github.com/spf13/cobra"
)

// listing is the JSON form of nkrane list
type listing struct {
	Domains map[string][]string `json:"domains"`
	Stats   domain.Stats        `json:"stats"`
}

func newListCommand(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List terminology domains and languages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.loadStore(nil)
			if err != nil {
				return err
			}

			out := listing{Domains: store.DomainsWithLanguages(), Stats: store.Stats()}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), out)
			}

			w := cmd.OutOrStdout()
			for _, name := range store.Domains() {
				fmt.Fprintf(w, "%s: %s\n", name, strings.Join(out.Domains[name], ", "))
			}
			_, err = fmt.Fprintf(w, "terms: %d (builtin %d, user %d)\n", out.Stats.Total, out.Stats.Builtin, out.Stats.User)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print as JSON")
	return cmd
}

func newExportCommand(a *app) *cobra.Command {
	var formatName, output string

	cmd := &cobra.Command{
		Use:   "export DOMAIN LANGUAGE",
		Short: "Export the terminology of a domain and language",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := terminology.ParseFormat(formatName)
			if err != nil {
				return err
			}

			store, err := a.loadStore(nil)
			if err != nil {
				return err
			}

			data, err := terminology.Export(store, args[0], args[1], format)
			if err != nil {
				return err
			}

			if output == "" || output == "-" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Exported %s/%s to %s\n", args[0], args[1], output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&formatName, "format", "f", string(terminology.FormatJSON), "Output format: json or csv")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default standard output)")
	return cmd
}

func newValidateCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE...",
		Short: "Validate terminology files",
		Long: `Validate terminology files (CSV, JSON or YAML) without loading them.
Required fields are id, term and translation; ids and terms must be unique.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			invalid := 0
			for _, path := range args {
				report := terminology.ValidateFile(path)
				if report.Valid {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: valid\n", path)
					continue
				}
				invalid++
				fmt.Fprintf(cmd.OutOrStdout(), "%s: invalid: %s\n", path, report.Reason)
			}
			if invalid > 0 {
				return fmt.Errorf("%d of %d files are invalid", invalid, len(args))
			}
			return nil
		},
	}
}

func newImportCommand(a *app) *cobra.Command {
	var domainName, language string

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import a terminology file into the database",
		Long: `Validate FILE and store it as the user terminology of a domain and
language, replacing what was imported there before. Imported terms
override built-in terms in the bot, the worker and with --db.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.terminologyService()
			if err != nil {
				return err
			}

			n, err := svc.Import(args[0], domainName, language)
			if err != nil {
				return err
			}

			scope := domain.NewScope(domainName, language)
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Imported %d terms into %s\n", n, scope)
			return err
		},
	}

	cmd.Flags().StringVarP(&domainName, "domain", "d", "", "Terminology domain (empty for general)")
	cmd.Flags().StringVar(&language, "lang", "", "Target language")
	_ = cmd.MarkFlagRequired("lang")
	return cmd
}

func newRemoveCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove DOMAIN LANGUAGE",
		Short: "Remove imported terminology of a domain and language",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.terminologyService()
			if err != nil {
				return err
			}

			n, err := svc.Remove(args[0], args[1])
			if err != nil {
				return err
			}

			scope := domain.NewScope(args[0], args[1])
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Removed %d terms from %s\n", n, scope)
			return err
		},
	}
}

// terminologyService builds a service backed by the database
func (a *app) terminologyService() (*service.TerminologyService, error) {
	repo, err := a.termRepo()
	if err != nil {
		return nil, err
	}
	return service.NewTerminologyService(nil, repo, a.logger), nil
}
