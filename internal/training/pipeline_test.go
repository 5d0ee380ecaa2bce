package training

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dompet/categorizer/internal/logging"
	"dompet/categorizer/internal/ml"
	"dompet/categorizer/internal/models"
	"dompet/categorizer/internal/textutil"
)

func testOptions(modelsDir string) Options {
	return Options{
		Input:          filepath.Join("testdata", "transactions.csv"),
		Format:         FormatCSV,
		ModelsDir:      modelsDir,
		TestFraction:   0.2,
		MaxFeatures:    1000,
		Epochs:         1000,
		LearningRate:   0.5,
		Regularization: 1.0,
		Seed:           42,
	}
}

func TestRunProducesArtifact(t *testing.T) {
	dir := t.TempDir()

	result, err := Run(testOptions(dir), logging.NewNop())
	require.NoError(t, err)
	require.NotNil(t, result.Artifact)
	require.NotNil(t, result.Report)

	meta := result.Artifact.Meta
	require.NotNil(t, meta)
	assert.Equal(t, "logistic_regression", meta.ModelType)
	assert.Equal(t, "tfidf", meta.VectorizerType)
	assert.Equal(t, 12, meta.TotalSamples)
	assert.Equal(t, meta.TotalSamples, meta.TrainingSamples+meta.TestSamples)
	assert.Equal(t, models.SplitStratified, meta.SplitStrategy)
	assert.ElementsMatch(t, []string{"Makanan & Minuman", "Tagihan", "Transportasi"}, meta.Categories)
	assert.Positive(t, meta.FeatureCount)
	assert.False(t, meta.TrainedAt.IsZero())

	loaded, err := ml.LoadArtifact(dir)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, result.Artifact.Vectorizer.Vocabulary, loaded.Vectorizer.Vocabulary)
	assert.Equal(t, result.Artifact.Model.Classes, loaded.Model.Classes)
}

func TestRunRoundTripRecoversTrainingLabels(t *testing.T) {
	result, err := Run(testOptions(""), logging.NewNop())
	require.NoError(t, err)

	// Rebuild the exact training partition the pipeline used: same
	// normalization, fraction and seed.
	examples, err := Load(filepath.Join("testdata", "transactions.csv"), FormatCSV, logging.NewNop())
	require.NoError(t, err)
	for i := range examples {
		examples[i].Description = textutil.Normalize(examples[i].Description)
	}
	train, _, _ := Split(examples, 0.2, 42)
	require.NotEmpty(t, train)

	// Predicting a description the model was trained on must reproduce
	// the label it was trained with.
	artifact := result.Artifact
	for _, e := range train {
		features, err := artifact.Vectorizer.Transform(e.Description)
		require.NoError(t, err)
		predicted, confidence, err := artifact.Model.Predict(features)
		require.NoError(t, err)
		assert.Greater(t, confidence, 0.0)
		assert.Equal(t, e.Category, predicted, e.Description)
	}
}

func TestRunFailsOnMissingInput(t *testing.T) {
	opts := testOptions("")
	opts.Input = filepath.Join("testdata", "missing.csv")

	_, err := Run(opts, logging.NewNop())
	assert.Error(t, err)
}

func TestMaxFeaturesFor(t *testing.T) {
	assert.Equal(t, 100, maxFeaturesFor(1000, 10))
	assert.Equal(t, 1000, maxFeaturesFor(1000, 500))
	assert.Equal(t, 50, maxFeaturesFor(0, 5), "zero cap means size-scaled only")
}
