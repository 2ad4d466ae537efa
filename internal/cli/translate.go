package cli

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"nkrane/internal/domain"
	"nkrane/internal/terminology"

	"github.com/spf13/cobra"
)

// scopeFlags select the terminology scope and languages of a translation
type scopeFlags struct {
	Domain string
	Source string
	Target string
	Terms  string
}

func addScopeFlags(cmd *cobra.Command, f *scopeFlags) {
	cmd.Flags().StringVarP(&f.Domain, "domain", "d", "", "Terminology domain (empty for general)")
	cmd.Flags().StringVar(&f.Source, "src", "", "Source language (default from SOURCE_LANG)")
	cmd.Flags().StringVar(&f.Target, "dest", "", "Target language")
	cmd.Flags().StringVar(&f.Terms, "terms", "", "Extra terminology file for the domain and target language")
	_ = cmd.MarkFlagRequired("dest")
}

// files returns the --terms file as a source of the selected scope
func (f *scopeFlags) files() []terminology.FileSource {
	if f.Terms == "" {
		return nil
	}
	return []terminology.FileSource{{Path: f.Terms, Domain: f.Domain, Language: f.Target}}
}

func newTranslateCommand(a *app) *cobra.Command {
	f := &scopeFlags{}
	var textOnly bool

	cmd := &cobra.Command{
		Use:   "translate [text]",
		Short: "Translate text with terminology control",
		Long: `Translate text with terminology control. The text is read from the
arguments, or from standard input when none are given. The result is
printed as JSON unless --text-only is set.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			if len(args) == 0 {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("failed to read standard input: %w", err)
				}
				text = strings.TrimRight(string(data), "\r\n")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			svc, err := a.translationService(ctx, f.files())
			if err != nil {
				return err
			}

			result, err := svc.Translate(ctx, domain.TranslationRequest{
				Text:   text,
				Source: f.Source,
				Target: f.Target,
				Domain: f.Domain,
			})
			if err != nil {
				return err
			}

			if textOnly {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), result.Text)
				return err
			}
			return writeJSON(cmd.OutOrStdout(), result)
		},
	}

	addScopeFlags(cmd, f)
	cmd.Flags().BoolVar(&textOnly, "text-only", false, "Print only the translated text")

	return cmd
}
