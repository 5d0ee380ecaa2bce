// Package classifier implements the two-tier categorization engine: a
// statistical classifier backed by a trained artifact, a deterministic
// keyword classifier over the curated lexicon, and the dispatcher that
// arbitrates between them.
package classifier

import (
	"context"

	"dompet/categorizer/internal/models"
)

// Strategy is one way of categorizing a description. The boolean reports
// whether the strategy produced a result: false means "unavailable" (a
// recognized non-error state, e.g. no model loaded), so the fallback branch
// stays visible in the dispatcher rather than hiding behind an error.
type Strategy interface {
	// Classify attempts to categorize a raw description.
	Classify(ctx context.Context, description string) (models.ClassificationResult, bool, error)

	// Name identifies the strategy for logging and debugging.
	Name() string
}
