package ml

import (
	"fmt"
	"math"
	"sort"
)

// TrainOptions controls the logistic regression fit.
type TrainOptions struct {
	Epochs         int     // full-batch gradient descent iterations
	LearningRate   float64 // step size
	Regularization float64 // inverse L2 strength, sklearn's C
}

// DefaultTrainOptions returns settings that converge reliably on small
// transaction corpora.
func DefaultTrainOptions() TrainOptions {
	return TrainOptions{
		Epochs:         1000,
		LearningRate:   0.5,
		Regularization: 1.0,
	}
}

// LogisticRegression is a one-vs-rest L2-regularized linear classifier over
// TF-IDF features. Class order is sorted label order so the model is
// deterministic for a given dataset.
type LogisticRegression struct {
	Classes []string    `msgpack:"classes"`
	Weights [][]float64 `msgpack:"weights"` // [class][feature]
	Bias    []float64   `msgpack:"bias"`
}

func sigmoid(z float64) float64 {
	// Clamp to avoid overflow in Exp for extreme activations.
	if z > 35 {
		return 1
	}
	if z < -35 {
		return 0
	}
	return 1 / (1 + math.Exp(-z))
}

// Fit trains one binary regressor per class with full-batch gradient
// descent. X rows must share the same length; y holds one label per row.
func (m *LogisticRegression) Fit(X [][]float64, y []string, opts TrainOptions) error {
	if len(X) == 0 || len(X) != len(y) {
		return fmt.Errorf("training data mismatch: %d feature rows, %d labels", len(X), len(y))
	}
	if opts.Epochs < 1 || opts.LearningRate <= 0 || opts.Regularization <= 0 {
		return fmt.Errorf("invalid training options: %+v", opts)
	}

	features := len(X[0])
	classSet := make(map[string]struct{})
	for _, label := range y {
		classSet[label] = struct{}{}
	}
	m.Classes = make([]string, 0, len(classSet))
	for c := range classSet {
		m.Classes = append(m.Classes, c)
	}
	sort.Strings(m.Classes)

	m.Weights = make([][]float64, len(m.Classes))
	m.Bias = make([]float64, len(m.Classes))

	n := float64(len(X))
	lambda := 1 / (opts.Regularization * n)

	for ci, class := range m.Classes {
		target := make([]float64, len(y))
		for i, label := range y {
			if label == class {
				target[i] = 1
			}
		}

		w := make([]float64, features)
		var b float64
		grad := make([]float64, features)

		for epoch := 0; epoch < opts.Epochs; epoch++ {
			for j := range grad {
				grad[j] = 0
			}
			var gradB float64

			for i, row := range X {
				z := b
				for j, x := range row {
					z += w[j] * x
				}
				residual := sigmoid(z) - target[i]
				for j, x := range row {
					grad[j] += residual * x
				}
				gradB += residual
			}

			for j := range w {
				w[j] -= opts.LearningRate * (grad[j]/n + lambda*w[j])
			}
			b -= opts.LearningRate * gradB / n
		}

		m.Weights[ci] = w
		m.Bias[ci] = b
	}

	return nil
}

// PredictProba returns the per-class probabilities for a feature vector,
// in the order of Classes. The one-vs-rest sigmoid scores are normalized to
// sum to one.
func (m *LogisticRegression) PredictProba(x []float64) ([]float64, error) {
	if len(m.Classes) == 0 {
		return nil, fmt.Errorf("model is not fitted")
	}

	probs := make([]float64, len(m.Classes))
	var sum float64
	for ci, w := range m.Weights {
		if len(w) != len(x) {
			return nil, fmt.Errorf("feature length mismatch: model has %d, input has %d", len(w), len(x))
		}
		z := m.Bias[ci]
		for j, xi := range x {
			z += w[j] * xi
		}
		probs[ci] = sigmoid(z)
		sum += probs[ci]
	}

	if sum == 0 {
		// Degenerate activations; fall back to a uniform distribution.
		for ci := range probs {
			probs[ci] = 1 / float64(len(probs))
		}
		return probs, nil
	}
	for ci := range probs {
		probs[ci] /= sum
	}
	return probs, nil
}

// Predict returns the most probable class and its probability.
func (m *LogisticRegression) Predict(x []float64) (string, float64, error) {
	probs, err := m.PredictProba(x)
	if err != nil {
		return "", 0, err
	}

	best := 0
	for ci := range probs {
		if probs[ci] > probs[best] {
			best = ci
		}
	}
	return m.Classes[best], probs[best], nil
}
