package classifier

import (
	"context"
	"strings"

	"dompet/categorizer/internal/lexicon"
	"dompet/categorizer/internal/logging"
	"dompet/categorizer/internal/models"
	"dompet/categorizer/internal/textutil"
)

// Keyword match contributions. An exact substring match is weighted higher
// because it also captures multi-word keyword phrases.
const (
	exactMatchScore   = 1.0
	partialMatchScore = 0.5
)

// KeywordClassifier scores every lexicon category against a normalized
// description and selects the best one. It is deterministic and always
// produces a result; the catch-all category is its own floor.
type KeywordClassifier struct {
	lexicon *lexicon.Lexicon
	floor   float64
	logger  logging.Logger
}

// NewKeywordClassifier creates a KeywordClassifier. floor is the minimum
// normalized score a category must reach; below it the catch-all is
// returned instead, keeping the achieved score as confidence.
func NewKeywordClassifier(lex *lexicon.Lexicon, floor float64, logger logging.Logger) *KeywordClassifier {
	return &KeywordClassifier{
		lexicon: lex,
		floor:   floor,
		logger:  logger,
	}
}

// Name returns the name of this strategy for logging and debugging.
func (c *KeywordClassifier) Name() string {
	return "Keyword"
}

// Classify scores each category and returns the best match. The boolean is
// always true: the keyword path has no unavailable state.
func (c *KeywordClassifier) Classify(ctx context.Context, description string) (models.ClassificationResult, bool, error) {
	return c.classify(description), true, nil
}

func (c *KeywordClassifier) classify(description string) models.ClassificationResult {
	if strings.TrimSpace(description) == "" {
		return models.ClassificationResult{
			Category:   models.CategoryOther,
			Confidence: 0,
			Method:     models.MethodKeyword,
		}
	}

	normalized := textutil.Normalize(description)
	tokens := textutil.Tokenize(description)

	best := models.CategoryOther
	bestScore := 0.0

	// Entries are scored in lexicon declaration order; on an exact score tie
	// the earlier entry wins. That order is part of the lexicon contract.
	for _, entry := range c.lexicon.Entries() {
		score := scoreCategory(normalized, tokens, entry.Keywords)
		if score > bestScore {
			bestScore = score
			best = entry.Category
		}
	}

	if bestScore < c.floor {
		// Too weak a signal: fall back to the catch-all, but keep the
		// achieved score as confidence rather than resetting it.
		return models.ClassificationResult{
			Category:   models.CategoryOther,
			Confidence: bestScore,
			Method:     models.MethodKeyword,
		}
	}

	c.logger.WithFields(
		logging.Field{Key: logging.FieldStrategy, Value: c.Name()},
		logging.Field{Key: logging.FieldCategory, Value: best},
		logging.Field{Key: logging.FieldConfidence, Value: bestScore},
	).Debug("Description categorized by keyword matching")

	return models.ClassificationResult{
		Category:   best,
		Confidence: bestScore,
		Method:     models.MethodKeyword,
	}
}

// scoreCategory computes the normalized match score of one keyword list
// against a normalized description. Each keyword contributes at most once:
// the exact branch, else the partial branch, else nothing.
func scoreCategory(normalized string, tokens []string, keywords []string) float64 {
	if len(keywords) == 0 {
		return 0
	}

	var score float64
	for _, keyword := range keywords {
		k := textutil.Normalize(keyword)
		if k == "" {
			continue
		}

		if strings.Contains(normalized, k) {
			score += exactMatchScore
			continue
		}

		for _, token := range tokens {
			if strings.Contains(token, k) || strings.Contains(k, token) {
				score += partialMatchScore
				break
			}
		}
	}

	return score / float64(len(keywords))
}
