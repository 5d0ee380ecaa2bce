package training

import (
	"fmt"

	"dompet/categorizer/internal/logging"
)

// maxDescriptionLength is the length beyond which a description is flagged
// as suspicious (likely a pasted statement line rather than a label-worthy
// summary).
const maxDescriptionLength = 200

// minExamplesPerCategory is the smallest class size that still supports a
// stratified split.
const minExamplesPerCategory = 2

// Validate inspects the dataset and returns human-readable warnings. None of
// the findings are fatal: training proceeds, the operator decides whether
// the data needs fixing.
func Validate(examples []Example, logger logging.Logger) []string {
	var warnings []string

	counts := make(map[string]int)
	seen := make(map[string]int)
	for _, e := range examples {
		counts[e.Category]++
		seen[e.Description]++
		if len(e.Description) > maxDescriptionLength {
			warnings = append(warnings, fmt.Sprintf(
				"description longer than %d characters: %.40q...",
				maxDescriptionLength, e.Description))
		}
	}

	for category, n := range counts {
		if n < minExamplesPerCategory {
			warnings = append(warnings, fmt.Sprintf(
				"category %q has only %d example(s); at least %d are needed for a stratified split",
				category, n, minExamplesPerCategory))
		}
	}

	duplicates := 0
	for _, n := range seen {
		if n > 1 {
			duplicates += n - 1
		}
	}
	if duplicates > 0 {
		warnings = append(warnings, fmt.Sprintf("%d duplicate description(s) in the dataset", duplicates))
	}

	for _, w := range warnings {
		logger.Warn(w)
	}
	return warnings
}

// categoryCounts tallies examples per category label.
func categoryCounts(examples []Example) map[string]int {
	counts := make(map[string]int)
	for _, e := range examples {
		counts[e.Category]++
	}
	return counts
}
