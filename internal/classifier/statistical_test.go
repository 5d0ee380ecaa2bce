package classifier

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dompet/categorizer/internal/logging"
	"dompet/categorizer/internal/ml"
	"dompet/categorizer/internal/models"
)

// trainedArtifact fits a tiny two-category model whose labels are real
// category names, so predictions parse cleanly.
func trainedArtifact(t *testing.T) *ml.Artifact {
	t.Helper()

	docs := []string{
		"makan siang warteg",
		"kopi susu pagi",
		"nasi goreng ayam",
		"naik gojek kantor",
		"isi bensin motor",
		"bayar parkir mall",
	}
	labels := []string{
		string(models.CategoryFoodBeverage),
		string(models.CategoryFoodBeverage),
		string(models.CategoryFoodBeverage),
		string(models.CategoryTransportation),
		string(models.CategoryTransportation),
		string(models.CategoryTransportation),
	}

	vec := ml.NewVectorizer(1000, 0.95)
	require.NoError(t, vec.Fit(docs))

	X := make([][]float64, len(docs))
	for i, d := range docs {
		x, err := vec.Transform(d)
		require.NoError(t, err)
		X[i] = x
	}

	model := &ml.LogisticRegression{}
	require.NoError(t, model.Fit(X, labels, ml.DefaultTrainOptions()))

	return &ml.Artifact{
		Vectorizer: vec,
		Model:      model,
		Meta:       &models.Metadata{ModelType: "logistic_regression"},
	}
}

func TestStatisticalClassifier_Unconfigured(t *testing.T) {
	c := NewStatisticalClassifier(nil, logging.NewNop())

	assert.Equal(t, "Statistical", c.Name())
	assert.False(t, c.Available())
	assert.Nil(t, c.Metadata())

	result, ok, err := c.Classify(context.Background(), "makan siang")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, result)
}

func TestStatisticalClassifier_ClassifiesTrainingLikeInput(t *testing.T) {
	c := NewStatisticalClassifier(trainedArtifact(t), logging.NewNop())

	require.True(t, c.Available())
	require.NotNil(t, c.Metadata())

	result, ok, err := c.Classify(context.Background(), "makan siang di warteg")
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, models.CategoryFoodBeverage, result.Category)
	assert.Equal(t, models.MethodStatistical, result.Method)
	assert.Greater(t, result.Confidence, 0.0)
	assert.LessOrEqual(t, result.Confidence, 1.0)
}

func TestStatisticalClassifier_VocabularyMissStillWellFormed(t *testing.T) {
	// A description sharing no terms with the training set transforms to a
	// zero vector. The model still answers (every class scores its bias
	// sigmoid) but the answer must be a parseable category with a valid
	// probability, so the dispatcher's threshold can reject it.
	c := NewStatisticalClassifier(trainedArtifact(t), logging.NewNop())

	result, ok, err := c.Classify(context.Background(), "zzzz qqqq")
	require.NoError(t, err)
	require.True(t, ok)

	_, err = models.ParseCategory(string(result.Category))
	assert.NoError(t, err)
	assert.GreaterOrEqual(t, result.Confidence, 0.0)
	assert.LessOrEqual(t, result.Confidence, 1.0)
}

func TestStatisticalClassifier_UnknownLabelReportsUnavailable(t *testing.T) {
	a := trainedArtifact(t)
	// Corrupt the class list so Predict returns a label ParseCategory rejects.
	for i := range a.Model.Classes {
		a.Model.Classes[i] = "not-a-category-" + a.Model.Classes[i]
	}

	c := NewStatisticalClassifier(a, logging.NewNop())
	result, ok, err := c.Classify(context.Background(), "makan siang")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, result)
}
