package classifier

import (
	"context"

	"dompet/categorizer/internal/logging"
	"dompet/categorizer/internal/ml"
	"dompet/categorizer/internal/models"
	"dompet/categorizer/internal/textutil"
)

// StatisticalClassifier wraps a trained vectorizer/model artifact. It is
// stateless across calls: the artifact is loaded once at startup and never
// mutated. A nil artifact means the statistical path is not configured.
type StatisticalClassifier struct {
	artifact *ml.Artifact
	logger   logging.Logger
}

// NewStatisticalClassifier creates a StatisticalClassifier. artifact may be
// nil, in which case every Classify call reports unavailable.
func NewStatisticalClassifier(artifact *ml.Artifact, logger logging.Logger) *StatisticalClassifier {
	return &StatisticalClassifier{
		artifact: artifact,
		logger:   logger,
	}
}

// Name returns the name of this strategy for logging and debugging.
func (c *StatisticalClassifier) Name() string {
	return "Statistical"
}

// Available reports whether a model artifact is loaded.
func (c *StatisticalClassifier) Available() bool {
	return c.artifact != nil && c.artifact.Vectorizer != nil && c.artifact.Model != nil
}

// Metadata returns the training metadata of the loaded artifact, or nil.
func (c *StatisticalClassifier) Metadata() *models.Metadata {
	if c.artifact == nil {
		return nil
	}
	return c.artifact.Meta
}

// Classify predicts a category with the trained model. The description is
// normalized exactly as at training time. Any transform or predict failure
// is converted to unavailable with zero confidence, never surfaced as an
// error: the dispatcher's control flow must not depend on model internals.
func (c *StatisticalClassifier) Classify(ctx context.Context, description string) (models.ClassificationResult, bool, error) {
	if !c.Available() {
		return models.ClassificationResult{}, false, nil
	}

	normalized := textutil.Normalize(description)

	features, err := c.artifact.Vectorizer.Transform(normalized)
	if err != nil {
		c.logger.WithError(err).WithField(logging.FieldStrategy, c.Name()).
			Warn("Vectorizer transform failed, treating model as unavailable for this call")
		return models.ClassificationResult{}, false, nil
	}

	label, confidence, err := c.artifact.Model.Predict(features)
	if err != nil {
		c.logger.WithError(err).WithField(logging.FieldStrategy, c.Name()).
			Warn("Model predict failed, treating model as unavailable for this call")
		return models.ClassificationResult{}, false, nil
	}

	category, err := models.ParseCategory(label)
	if err != nil {
		// The artifact was trained on a label outside the closed category
		// set. Treat it as unavailable rather than inventing a category.
		c.logger.WithError(err).WithField(logging.FieldStrategy, c.Name()).
			Warn("Model predicted an unknown category label")
		return models.ClassificationResult{}, false, nil
	}

	return models.ClassificationResult{
		Category:   category,
		Confidence: confidence,
		Method:     models.MethodStatistical,
	}, true, nil
}
