package classifier

import (
	"context"
	"strings"

	"dompet/categorizer/internal/logging"
	"dompet/categorizer/internal/models"
)

// Dispatcher arbitrates between the statistical and keyword classifiers. It
// tries the statistical path first and falls back to keywords when the model
// is unavailable or insufficiently confident. Every branch terminates in a
// concrete result: Categorize cannot fail.
type Dispatcher struct {
	statistical Strategy
	keyword     Strategy
	// threshold is the confidence a statistical prediction must strictly
	// exceed to override the curated lexicon.
	threshold float64
	logger    logging.Logger
}

// NewDispatcher wires the dispatcher with its strategies and the
// statistical-confidence threshold. Both strategies are held immutably for
// the process lifetime.
func NewDispatcher(statistical, keyword Strategy, threshold float64, logger logging.Logger) *Dispatcher {
	return &Dispatcher{
		statistical: statistical,
		keyword:     keyword,
		threshold:   threshold,
		logger:      logger,
	}
}

// Categorize classifies a single description.
//
// Empty input short-circuits to the catch-all without touching the
// statistical path. A statistical result wins only when the model is
// available and its confidence strictly exceeds the threshold; otherwise
// the keyword result is returned as-is, whatever its confidence.
func (d *Dispatcher) Categorize(ctx context.Context, description string) models.ClassificationResult {
	if strings.TrimSpace(description) == "" {
		return models.ClassificationResult{
			Category:   models.CategoryOther,
			Confidence: 0,
			Method:     models.MethodKeyword,
		}
	}

	result, ok, err := d.statistical.Classify(ctx, description)
	if err != nil {
		// Strategies absorb their own failures; an error here is a
		// programming mistake, logged and treated as unavailable.
		d.logger.WithError(err).WithField(logging.FieldStrategy, d.statistical.Name()).
			Warn("Statistical strategy returned an error")
		ok = false
	}
	if ok && result.Confidence > d.threshold {
		d.logger.WithFields(
			logging.Field{Key: logging.FieldCategory, Value: result.Category},
			logging.Field{Key: logging.FieldConfidence, Value: result.Confidence},
			logging.Field{Key: logging.FieldMethod, Value: result.Method},
		).Debug("Statistical prediction accepted")
		return result
	}

	fallback, _, err := d.keyword.Classify(ctx, description)
	if err != nil {
		d.logger.WithError(err).WithField(logging.FieldStrategy, d.keyword.Name()).
			Warn("Keyword strategy returned an error")
		return models.ClassificationResult{
			Category:   models.CategoryOther,
			Confidence: 0,
			Method:     models.MethodKeyword,
		}
	}
	return fallback
}

// CategorizeBatch classifies descriptions sequentially. There is no shared
// mutable state between iterations.
func (d *Dispatcher) CategorizeBatch(ctx context.Context, descriptions []string) []models.ClassificationResult {
	results := make([]models.ClassificationResult, len(descriptions))
	for i, description := range descriptions {
		results[i] = d.Categorize(ctx, description)
	}
	return results
}
