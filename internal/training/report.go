package training

import (
	"fmt"
	"sort"
	"strings"

	"dompet/categorizer/internal/ml"
	"dompet/categorizer/internal/textutil"
)

// CategoryMetrics holds the per-category evaluation numbers.
type CategoryMetrics struct {
	Category  string
	Precision float64
	Recall    float64
	F1        float64
	Support   int
}

// Report summarizes how the trained model performed on the held-out set.
type Report struct {
	Accuracy   float64
	Categories []CategoryMetrics
}

// Evaluate predicts every held-out example and computes accuracy plus
// per-category precision, recall and F1. An empty test set yields an empty
// report rather than an error.
func Evaluate(vectorizer *ml.Vectorizer, model *ml.LogisticRegression, test []Example) (*Report, error) {
	if len(test) == 0 {
		return &Report{}, nil
	}

	truePos := make(map[string]int)
	falsePos := make(map[string]int)
	falseNeg := make(map[string]int)
	support := make(map[string]int)

	correct := 0
	for _, e := range test {
		features, err := vectorizer.Transform(textutil.Normalize(e.Description))
		if err != nil {
			return nil, fmt.Errorf("transforming %q: %w", e.Description, err)
		}
		predicted, _, err := model.Predict(features)
		if err != nil {
			return nil, fmt.Errorf("predicting %q: %w", e.Description, err)
		}

		support[e.Category]++
		if predicted == e.Category {
			correct++
			truePos[e.Category]++
		} else {
			falsePos[predicted]++
			falseNeg[e.Category]++
		}
	}

	labels := make([]string, 0, len(support))
	for c := range support {
		labels = append(labels, c)
	}
	sort.Strings(labels)

	report := &Report{
		Accuracy:   float64(correct) / float64(len(test)),
		Categories: make([]CategoryMetrics, 0, len(labels)),
	}
	for _, c := range labels {
		tp := float64(truePos[c])
		m := CategoryMetrics{Category: c, Support: support[c]}
		if denom := tp + float64(falsePos[c]); denom > 0 {
			m.Precision = tp / denom
		}
		if denom := tp + float64(falseNeg[c]); denom > 0 {
			m.Recall = tp / denom
		}
		if m.Precision+m.Recall > 0 {
			m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
		}
		report.Categories = append(report.Categories, m)
	}
	return report, nil
}

// String renders the report as an operator-readable table.
func (r *Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "accuracy: %.3f\n", r.Accuracy)
	fmt.Fprintf(&b, "%-22s %9s %9s %9s %9s\n", "category", "precision", "recall", "f1", "support")
	for _, m := range r.Categories {
		fmt.Fprintf(&b, "%-22s %9.3f %9.3f %9.3f %9d\n",
			m.Category, m.Precision, m.Recall, m.F1, m.Support)
	}
	return b.String()
}
