package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"nkrane/internal/config"
	"nkrane/internal/domain"
	"nkrane/internal/engine"
	"nkrane/internal/terminology"
	"nkrane/internal/translator"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// TranslationOptions tunes external calls of TranslationService
type TranslationOptions struct {
	// Timeout bounds a single external call. Zero disables it.
	Timeout time.Duration
	// MaxRetries is the number of extra attempts after a transport error
	MaxRetries   int
	RetryBackoff time.Duration

	// Concurrency caps in-flight external calls of a batch
	Concurrency int
	// Delay is the minimum gap between two external calls of a batch
	Delay time.Duration

	// DefaultSource is used when a request names no source language
	DefaultSource string
}

// DefaultTranslationOptions returns the stock limits
func DefaultTranslationOptions() TranslationOptions {
	return TranslationOptions{
		Timeout:       30 * time.Second,
		MaxRetries:    2,
		RetryBackoff:  500 * time.Millisecond,
		Concurrency:   4,
		Delay:         100 * time.Millisecond,
		DefaultSource: "en",
	}
}

// OptionsFromConfig maps configuration onto TranslationOptions
func OptionsFromConfig(cfg *config.Config) TranslationOptions {
	return TranslationOptions{
		Timeout:       cfg.Translator.Timeout,
		MaxRetries:    cfg.Translator.MaxRetries,
		RetryBackoff:  cfg.Translator.RetryBackoff,
		Concurrency:   cfg.Batch.Concurrency,
		Delay:         cfg.Batch.Delay,
		DefaultSource: cfg.Terminology.SourceLanguage,
	}
}

// TranslationService runs terminology-controlled translations: terms are
// protected with placeholders, the text goes through the external
// translator, then placeholders are restored to the target terms.
type TranslationService struct {
	store      *terminology.Store
	translator translator.Translator
	opts       TranslationOptions
	logger     *zap.Logger
}

// NewTranslationService creates a new translation service
func NewTranslationService(
	store *terminology.Store,
	tr translator.Translator,
	opts TranslationOptions,
	logger *zap.Logger,
) *TranslationService {
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}
	return &TranslationService{
		store:      store,
		translator: tr,
		opts:       opts,
		logger:     logger,
	}
}

// Translate translates a single text. A (domain, target) pair without
// terminology is not an error: the text is translated without substitutions.
func (s *TranslationService) Translate(ctx context.Context, req domain.TranslationRequest) (*domain.TranslationResult, error) {
	return s.translate(ctx, ctx, req)
}

// translate issues external calls on callCtx. stop ends the retry loop
// early; for batches it is the batch context while callCtx is detached.
func (s *TranslationService) translate(callCtx, stop context.Context, req domain.TranslationRequest) (*domain.TranslationResult, error) {
	if err := stop.Err(); err != nil {
		return nil, err
	}

	source := domain.NormalizeLanguage(req.Source)
	if source == "" {
		source = s.opts.DefaultSource
	}
	scope := req.Scope()
	if scope.Language == "" {
		return nil, fmt.Errorf("target language is required")
	}

	entries, err := s.store.Lookup(scope.Domain, scope.Language)
	if err != nil {
		s.logger.Debug("Translating without terminology",
			zap.String("scope", scope.String()),
			zap.Error(err),
		)
	}

	preprocessed, placeholders := engine.Preprocess(req.Text, entries)

	result := &domain.TranslationResult{
		Original:      req.Text,
		Preprocessed:  preprocessed,
		Source:        source,
		Target:        scope.Language,
		Domain:        scope.Domain,
		ReplacedTerms: []string{},
	}

	if strings.TrimSpace(preprocessed) == "" {
		result.Text = req.Text
		return result, nil
	}

	translated, err := s.call(callCtx, stop, preprocessed, source, scope.Language)
	if err != nil {
		return nil, err
	}
	result.ExternalTranslation = translated

	text, anomalies := engine.Restore(translated, placeholders, scope.Language)
	for _, a := range anomalies {
		s.logger.Warn("Placeholder lost in translation",
			zap.String("token", a.Token),
			zap.String("term", a.Term),
			zap.String("scope", scope.String()),
			zap.String("provider", s.translator.Name()),
		)
	}

	result.Text = text
	result.Anomalies = anomalies
	result.ReplacedTerms = restoredTerms(placeholders, anomalies)
	result.ReplacementsCount = len(result.ReplacedTerms)
	return result, nil
}

// restoredTerms lists the source terms of placeholders that made it back
// into the translation, in text order
func restoredTerms(placeholders domain.PlaceholderMap, anomalies []domain.RestorationAnomaly) []string {
	lost := make(map[string]bool, len(anomalies))
	for _, a := range anomalies {
		lost[a.Token] = true
	}

	terms := make([]string, 0, len(placeholders))
	for _, p := range placeholders {
		if !lost[p.Token] {
			terms = append(terms, p.Match.Entry.Term)
		}
	}
	return terms
}

// call retries transport errors with exponential backoff. Timeouts and
// cancellations are returned at once.
func (s *TranslationService) call(callCtx, stop context.Context, text, source, target string) (string, error) {
	backoff := s.opts.RetryBackoff

	for attempt := 0; ; attempt++ {
		out, err := s.attempt(callCtx, text, source, target)
		if err == nil {
			return out, nil
		}

		var terr *domain.TransportError
		if !errors.As(err, &terr) || attempt >= s.opts.MaxRetries {
			return "", err
		}

		s.logger.Warn("Translation attempt failed, retrying",
			zap.Int("attempt", attempt+1),
			zap.Duration("backoff", backoff),
			zap.Error(err),
		)

		if waitErr := sleep(stop, backoff); waitErr != nil {
			return "", err
		}
		backoff *= 2
	}
}

// attempt makes one external call and classifies its failure
func (s *TranslationService) attempt(ctx context.Context, text, source, target string) (string, error) {
	callCtx := ctx
	if s.opts.Timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.opts.Timeout)
		defer cancel()
	}

	out, err := s.translator.Translate(callCtx, text, source, target)
	if err == nil {
		return out, nil
	}

	if errors.Is(ctx.Err(), context.Canceled) {
		return "", ctx.Err()
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(callCtx.Err(), context.DeadlineExceeded) {
		return "", &domain.TimeoutError{Provider: s.translator.Name(), Timeout: s.opts.Timeout}
	}

	var terr *domain.TransportError
	if errors.As(err, &terr) {
		return "", err
	}
	return "", &domain.TransportError{Provider: s.translator.Name(), Err: err}
}

// BatchTranslate translates every request with bounded concurrency and a
// minimum delay between external calls. Items fail independently.
// Cancelling ctx stops new calls: requests not yet started get the context
// error, calls already in flight end on their own timeout.
func (s *TranslationService) BatchTranslate(ctx context.Context, reqs []domain.TranslationRequest) []domain.BatchItem {
	items := make([]domain.BatchItem, len(reqs))
	for i := range items {
		items[i].Index = i
	}

	var limiter *rate.Limiter
	if s.opts.Delay > 0 {
		limiter = rate.NewLimiter(rate.Every(s.opts.Delay), 1)
	}

	sem := make(chan struct{}, s.opts.Concurrency)
	detached := context.WithoutCancel(ctx)
	var wg sync.WaitGroup

	for i, req := range reqs {
		if err := s.acquire(ctx, sem, limiter); err != nil {
			for j := i; j < len(reqs); j++ {
				items[j].Err = err
			}
			s.logger.Info("Batch stopped before completion",
				zap.Int("started", i),
				zap.Int("total", len(reqs)),
				zap.Error(err),
			)
			break
		}

		wg.Add(1)
		go func(i int, req domain.TranslationRequest) {
			defer wg.Done()
			defer func() { <-sem }()

			res, err := s.translate(detached, ctx, req)
			if err != nil {
				items[i].Err = err
				return
			}
			items[i].Result = res
		}(i, req)
	}

	wg.Wait()

	failed := 0
	for _, it := range items {
		if it.Err != nil {
			failed++
		}
	}
	s.logger.Info("Batch translated",
		zap.Int("total", len(reqs)),
		zap.Int("failed", failed),
	)

	return items
}

// acquire takes a concurrency slot and waits for the rate limiter
func (s *TranslationService) acquire(ctx context.Context, sem chan struct{}, limiter *rate.Limiter) error {
	select {
	case sem <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}

	if err := ctx.Err(); err != nil {
		<-sem
		return err
	}

	if limiter != nil {
		if err := limiter.Wait(ctx); err != nil {
			<-sem
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			return err
		}
	}
	return nil
}

// BatchTimeout returns a deadline for a batch of n texts: one call timeout
// per wave of concurrent calls plus the pacing delay
func (s *TranslationService) BatchTimeout(n int) time.Duration {
	if n < 1 {
		n = 1
	}
	waves := (n + s.opts.Concurrency - 1) / s.opts.Concurrency
	return time.Duration(waves)*s.opts.Timeout + time.Duration(n)*s.opts.Delay
}

// ProviderName returns the name of the external translator
func (s *TranslationService) ProviderName() string {
	return s.translator.Name()
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
