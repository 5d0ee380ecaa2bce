package ml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fitSmallModel trains on a tiny linearly separable corpus shared by
// several tests.
func fitSmallModel(t *testing.T) (*Vectorizer, *LogisticRegression, []string, []string) {
	t.Helper()

	docs := []string{
		"makan siang warteg",
		"kopi kenangan",
		"nasi goreng warung",
		"gojek ke kantor",
		"grab ke stasiun",
		"naik kereta krl",
	}
	labels := []string{
		"Makanan & Minuman",
		"Makanan & Minuman",
		"Makanan & Minuman",
		"Transportasi",
		"Transportasi",
		"Transportasi",
	}

	v := NewVectorizer(1000, 0.95)
	require.NoError(t, v.Fit(docs))

	X := make([][]float64, len(docs))
	for i, doc := range docs {
		vec, err := v.Transform(doc)
		require.NoError(t, err)
		X[i] = vec
	}

	m := &LogisticRegression{}
	require.NoError(t, m.Fit(X, labels, DefaultTrainOptions()))

	return v, m, docs, labels
}

func TestLogisticRegressionFitRecoversTrainingLabels(t *testing.T) {
	v, m, docs, labels := fitSmallModel(t)

	for i, doc := range docs {
		vec, err := v.Transform(doc)
		require.NoError(t, err)

		predicted, confidence, err := m.Predict(vec)
		require.NoError(t, err)
		assert.Equal(t, labels[i], predicted, "training description %q must reproduce its label", doc)
		assert.Greater(t, confidence, 0.5)
	}
}

func TestLogisticRegressionClassOrderIsSorted(t *testing.T) {
	_, m, _, _ := fitSmallModel(t)
	assert.Equal(t, []string{"Makanan & Minuman", "Transportasi"}, m.Classes)
}

func TestPredictProbaSumsToOne(t *testing.T) {
	v, m, _, _ := fitSmallModel(t)

	vec, err := v.Transform("makan di warung")
	require.NoError(t, err)

	probs, err := m.PredictProba(vec)
	require.NoError(t, err)
	require.Len(t, probs, 2)

	var sum float64
	for _, p := range probs {
		sum += p
		assert.GreaterOrEqual(t, p, 0.0)
		assert.LessOrEqual(t, p, 1.0)
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestPredictErrors(t *testing.T) {
	m := &LogisticRegression{}
	_, _, err := m.Predict([]float64{1, 2})
	assert.Error(t, err, "unfitted model must error")

	_, fitted, _, _ := fitSmallModel(t)
	_, _, err = fitted.Predict([]float64{1})
	assert.Error(t, err, "feature length mismatch must error")
}

func TestFitValidation(t *testing.T) {
	m := &LogisticRegression{}

	assert.Error(t, m.Fit(nil, nil, DefaultTrainOptions()))
	assert.Error(t, m.Fit([][]float64{{1}}, []string{"a", "b"}, DefaultTrainOptions()))

	bad := DefaultTrainOptions()
	bad.Epochs = 0
	assert.Error(t, m.Fit([][]float64{{1}}, []string{"a"}, bad))
}
