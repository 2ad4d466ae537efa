package queue

import (
	"nkrane/internal/domain"

	"github.com/google/uuid"
)

// Job statuses
const (
	StatusCompleted = "completed"
	StatusPartial   = "partial"
	StatusFailed    = "failed"
)

// TranslationJob is a batch translation command read from the command queue
type TranslationJob struct {
	JobID  string   `json:"job_id"`
	Domain string   `json:"domain,omitempty"`
	Source string   `json:"source,omitempty"`
	Target string   `json:"target"`
	Texts  []string `json:"texts"`
}

// NewJob creates a job with a fresh id
func NewJob(domainName, source, target string, texts []string) TranslationJob {
	return TranslationJob{
		JobID:  uuid.New().String(),
		Domain: domainName,
		Source: source,
		Target: target,
		Texts:  texts,
	}
}

// Requests expands the job into one request per text
func (j TranslationJob) Requests() []domain.TranslationRequest {
	reqs := make([]domain.TranslationRequest, len(j.Texts))
	for i, text := range j.Texts {
		reqs[i] = domain.TranslationRequest{
			Text:   text,
			Source: j.Source,
			Target: j.Target,
			Domain: j.Domain,
		}
	}
	return reqs
}

// JobResult is published to the result queue once a job is done
type JobResult struct {
	JobID  string    `json:"job_id"`
	Status string    `json:"status"`
	Error  string    `json:"error,omitempty"`
	Items  []JobItem `json:"items"`
}

// JobItem is the outcome of one text of a job
type JobItem struct {
	Index  int                       `json:"index"`
	Result *domain.TranslationResult `json:"result,omitempty"`
	Error  string                    `json:"error,omitempty"`
}

// NewJobResult collects batch items into a result. The status is partial
// when only some items failed.
func NewJobResult(jobID string, items []domain.BatchItem) JobResult {
	res := JobResult{JobID: jobID, Items: make([]JobItem, len(items))}

	failed := 0
	for i, it := range items {
		res.Items[i] = JobItem{Index: it.Index, Result: it.Result}
		if it.Err != nil {
			res.Items[i].Error = it.Err.Error()
			failed++
		}
	}

	switch {
	case failed == 0:
		res.Status = StatusCompleted
	case failed == len(items):
		res.Status = StatusFailed
	default:
		res.Status = StatusPartial
	}
	return res
}
