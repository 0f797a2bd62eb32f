// Package intake implements the URL intake and classification pipeline: the
// one-way sequence validate → fetch → classify → coerce → sanitize that turns
// a raw submitted URL into a proposed resource record. The pipeline never
// persists; callers hand the result to the record store.
package intake

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"vibeshelf/internal/classifier"
	"vibeshelf/internal/domain"
	"vibeshelf/internal/fetcher"
	"vibeshelf/internal/sanitize"
	"vibeshelf/internal/validate"
)

// classifyAttempts bounds the inline retry on rate limiting: one initial
// call plus exactly one retry. The loop is explicit so tests can assert the
// attempt count.
const classifyAttempts = 2

// defaultRetryDelay is the pause before the single rate-limit retry.
const defaultRetryDelay = 2 * time.Second

// Pipeline orchestrates one intake run. Each run allocates fresh values and
// shares no mutable state with concurrent runs, so a single Pipeline is safe
// for concurrent use.
type Pipeline struct {
	fetcher    fetcher.Fetcher
	classifier classifier.Classifier
	taxonomy   domain.Taxonomy
	retryDelay time.Duration
	log        logrus.FieldLogger
}

// NewPipeline wires the pipeline's collaborators.
func NewPipeline(f fetcher.Fetcher, c classifier.Classifier, taxonomy domain.Taxonomy, logger logrus.FieldLogger) *Pipeline {
	return &Pipeline{
		fetcher:    f,
		classifier: c,
		taxonomy:   taxonomy,
		retryDelay: defaultRetryDelay,
		log:        logger.WithField("component", "intake"),
	}
}

// Run takes a raw submitted URL through the full intake sequence and returns
// a ProposedResource whose invariants all hold, or one of the domain error
// taxonomy values. ErrInvalidClassification never escapes; it surfaces as
// ErrAnalysisFailed.
func (p *Pipeline) Run(ctx context.Context, rawURL string) (domain.ProposedResource, error) {
	normalized, err := validate.ValidateURL(rawURL)
	if err != nil {
		return domain.ProposedResource{}, err
	}
	log := p.log.WithField("url", normalized)

	content, err := p.fetcher.Fetch(ctx, normalized)
	if err != nil {
		log.WithError(err).Warn("Content fetch failed")
		return domain.ProposedResource{}, fmt.Errorf("%w: %v", domain.ErrContentUnavailable, err)
	}

	result, err := p.classify(ctx, content, log)
	if err != nil {
		return domain.ProposedResource{}, err
	}

	proposed, err := Coerce(result, content, p.taxonomy)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidClassification) {
			log.WithError(err).Warn("Classification produced no usable categories")
			return domain.ProposedResource{}, fmt.Errorf("%w: %v", domain.ErrAnalysisFailed, err)
		}
		return domain.ProposedResource{}, err
	}

	// Defense in depth: coercion filtered enumerations, but free text from
	// the classifier gets sanitized once more before leaving the pipeline.
	proposed.Title = sanitize.Sanitize(proposed.Title)
	proposed.Summary = sanitize.Sanitize(proposed.Summary)

	log.WithFields(logrus.Fields{
		"title":      proposed.Title,
		"categories": proposed.Categories,
	}).Info("Intake pipeline completed")
	return proposed, nil
}

// classify calls the classifier with the bounded rate-limit retry. Repeated
// rate limiting surfaces as ErrAnalysisFailed per the error taxonomy.
func (p *Pipeline) classify(ctx context.Context, content *fetcher.Content, log logrus.FieldLogger) (*classifier.Result, error) {
	var result *classifier.Result
	var err error

	for attempt := 1; attempt <= classifyAttempts; attempt++ {
		result, err = p.classifier.Classify(ctx, content)
		if err == nil {
			return result, nil
		}
		if !errors.Is(err, domain.ErrRateLimited) || attempt == classifyAttempts {
			break
		}

		log.WithField("attempt", attempt).Warn("Classifier rate limited, retrying once")
		select {
		case <-time.After(p.retryDelay):
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", domain.ErrAnalysisFailed, ctx.Err())
		}
	}

	log.WithError(err).Warn("Classification failed")
	if errors.Is(err, domain.ErrRateLimited) {
		return nil, fmt.Errorf("%w: rate limited after retry", domain.ErrAnalysisFailed)
	}
	if errors.Is(err, domain.ErrAnalysisFailed) {
		return nil, err
	}
	return nil, fmt.Errorf("%w: %v", domain.ErrAnalysisFailed, err)
}
