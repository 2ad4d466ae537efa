package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"nkrane/internal/queue"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newBatchCommand(a *app) *cobra.Command {
	f := &scopeFlags{}
	var enqueue bool

	cmd := &cobra.Command{
		Use:   "batch FILE",
		Short: "Translate every line of a file",
		Long: `Translate every non-empty line of FILE ("-" for standard input).
Lines are translated concurrently and the job result is printed as JSON.
With --enqueue the job is published to the command queue instead and
its id is printed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			texts, err := readLines(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			if len(texts) == 0 {
				return fmt.Errorf("no texts to translate in %s", args[0])
			}

			job := queue.NewJob(f.Domain, f.Source, f.Target, texts)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if enqueue {
				if f.Terms != "" {
					return fmt.Errorf("--terms cannot be used with --enqueue")
				}
				return a.enqueue(ctx, cmd.OutOrStdout(), job)
			}

			svc, err := a.translationService(ctx, f.files())
			if err != nil {
				return err
			}

			batchCtx, cancel := context.WithTimeout(ctx, svc.BatchTimeout(len(texts)))
			defer cancel()

			result := queue.NewJobResult(job.JobID, svc.BatchTranslate(batchCtx, job.Requests()))
			if err := writeJSON(cmd.OutOrStdout(), result); err != nil {
				return err
			}
			if result.Status == queue.StatusFailed {
				return fmt.Errorf("all %d texts failed", len(texts))
			}
			return nil
		},
	}

	addScopeFlags(cmd, f)
	cmd.Flags().BoolVar(&enqueue, "enqueue", false, "Publish the job to the command queue instead of translating")

	return cmd
}

// enqueue publishes job to the worker's command queue
func (a *app) enqueue(ctx context.Context, w io.Writer, job queue.TranslationJob) error {
	if err := a.cfg.RequireQueue(); err != nil {
		return err
	}

	producer, err := queue.NewProducer(a.cfg.Queue.URL)
	if err != nil {
		return err
	}
	defer producer.Close()

	body, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to encode job: %w", err)
	}

	if err := producer.Publish(ctx, a.cfg.Queue.CommandQueue, body); err != nil {
		return err
	}

	a.logger.Info("Job enqueued",
		zap.String("job_id", job.JobID),
		zap.String("queue", a.cfg.Queue.CommandQueue),
		zap.Int("texts", len(job.Texts)),
	)

	_, err = fmt.Fprintln(w, job.JobID)
	return err
}

// readLines returns the non-empty lines of path, or of stdin for "-"
func readLines(stdin io.Reader, path string) ([]string, error) {
	r := stdin
	if path != "-" {
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", path, err)
		}
		defer file.Close()
		r = file
	}

	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return lines, nil
}
