package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"nkrane/internal/domain"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// ErrMalformedJob marks a message that can never be processed
var ErrMalformedJob = errors.New("malformed translation job")

// BatchTranslator runs a batch of terminology-controlled translations
type BatchTranslator interface {
	BatchTranslate(ctx context.Context, reqs []domain.TranslationRequest) []domain.BatchItem
	BatchTimeout(n int) time.Duration
}

// Processor turns translation jobs into published job results
type Processor struct {
	translator  BatchTranslator
	publisher   Publisher
	resultQueue string
	logger      *zap.Logger
}

// NewProcessor creates a new job processor
func NewProcessor(translator BatchTranslator, publisher Publisher, resultQueue string, logger *zap.Logger) *Processor {
	return &Processor{
		translator:  translator,
		publisher:   publisher,
		resultQueue: resultQueue,
		logger:      logger,
	}
}

// ProcessMessage handles one job message. Bodies that are not a job return
// ErrMalformedJob; jobs with invalid fields get a failed result.
func (p *Processor) ProcessMessage(ctx context.Context, body []byte) error {
	var job TranslationJob
	if err := json.Unmarshal(body, &job); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedJob, err)
	}
	if job.JobID == "" {
		job.JobID = uuid.New().String()
	}

	logger := p.logger.With(zap.String("job_id", job.JobID))

	if reason := validateJob(job); reason != "" {
		logger.Warn("Rejecting translation job", zap.String("reason", reason))
		return p.publish(ctx, JobResult{JobID: job.JobID, Status: StatusFailed, Error: reason, Items: []JobItem{}})
	}

	logger.Info("Processing translation job",
		zap.String("domain", domain.DomainName(domain.NormalizeDomain(job.Domain))),
		zap.String("target", job.Target),
		zap.Int("texts", len(job.Texts)),
	)

	batchCtx, cancel := context.WithTimeout(ctx, p.translator.BatchTimeout(len(job.Texts)))
	defer cancel()

	items := p.translator.BatchTranslate(batchCtx, job.Requests())
	if err := ctx.Err(); err != nil {
		// shutting down: leave the job for another worker
		return err
	}
	result := NewJobResult(job.JobID, items)

	logger.Info("Translation job finished", zap.String("status", result.Status))
	return p.publish(ctx, result)
}

func (p *Processor) publish(ctx context.Context, result JobResult) error {
	body, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode job result: %w", err)
	}
	return p.publisher.Publish(ctx, p.resultQueue, body)
}

func validateJob(job TranslationJob) string {
	if strings.TrimSpace(job.Target) == "" {
		return "target language is required"
	}
	if len(job.Texts) == 0 {
		return "no texts to translate"
	}
	return ""
}

// Serve processes deliveries until ctx is done or the channel closes.
// Malformed messages are rejected without requeue; publish failures are
// requeued.
func (p *Processor) Serve(ctx context.Context, deliveries <-chan amqp.Delivery) {
	for {
		select {
		case <-ctx.Done():
			p.logger.Info("Job consumer stopped")
			return
		case d, ok := <-deliveries:
			if !ok {
				p.logger.Warn("Delivery channel closed")
				return
			}
			p.handle(ctx, d)
		}
	}
}

func (p *Processor) handle(ctx context.Context, d amqp.Delivery) {
	p.logger.Debug("Job received", zap.Int("bytes", len(d.Body)))

	err := p.ProcessMessage(ctx, d.Body)
	switch {
	case err == nil:
		if ackErr := d.Ack(false); ackErr != nil {
			p.logger.Error("Failed to ack job", zap.Error(ackErr))
		}
	case errors.Is(err, ErrMalformedJob):
		p.logger.Error("Dropping malformed job", zap.Error(err))
		if nackErr := d.Nack(false, false); nackErr != nil {
			p.logger.Error("Failed to reject job", zap.Error(nackErr))
		}
	default:
		p.logger.Error("Failed to process job, requeueing", zap.Error(err))
		if nackErr := d.Nack(false, true); nackErr != nil {
			p.logger.Error("Failed to requeue job", zap.Error(nackErr))
		}
	}
}
