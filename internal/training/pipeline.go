package training

import (
	"fmt"
	"time"

	"dompet/categorizer/internal/logging"
	"dompet/categorizer/internal/ml"
	"dompet/categorizer/internal/models"
	"dompet/categorizer/internal/textutil"
)

// Options configures a training run. Zero values are not defaulted here;
// callers pass the resolved configuration.
type Options struct {
	Input        string
	Format       Format
	ModelsDir    string
	TestFraction float64
	// MaxFeatures is the upper bound on the vocabulary; the effective bound
	// also scales with the training-set size.
	MaxFeatures    int
	Epochs         int
	LearningRate   float64
	Regularization float64
	Seed           int64
}

// Result is what a completed training run hands back to the caller.
type Result struct {
	Artifact *ml.Artifact
	Report   *Report
	Warnings []string
}

// maxFeaturesFor bounds the vocabulary to ten features per training
// document, so tiny datasets do not produce absurdly sparse models.
func maxFeaturesFor(limit, trainSize int) int {
	scaled := 10 * trainSize
	if limit > 0 && limit < scaled {
		return limit
	}
	return scaled
}

// Run executes the full pipeline: load, validate, split, fit, evaluate,
// serialize. Every failure is returned to the operator; nothing is written
// unless training and evaluation both complete.
func Run(opts Options, logger logging.Logger) (*Result, error) {
	examples, err := Load(opts.Input, opts.Format, logger)
	if err != nil {
		return nil, err
	}

	warnings := Validate(examples, logger)

	// Preprocessing must match inference exactly, or predictions silently
	// degrade. Both sides go through textutil.Normalize.
	for i := range examples {
		examples[i].Description = textutil.Normalize(examples[i].Description)
	}

	train, test, strategy := Split(examples, opts.TestFraction, opts.Seed)
	logger.WithFields(
		logging.Field{Key: "train_samples", Value: len(train)},
		logging.Field{Key: "test_samples", Value: len(test)},
		logging.Field{Key: "split_strategy", Value: strategy},
	).Info("Dataset partitioned")

	docs := make([]string, len(train))
	labels := make([]string, len(train))
	for i, e := range train {
		docs[i] = e.Description
		labels[i] = e.Category
	}

	vectorizer := ml.NewVectorizer(maxFeaturesFor(opts.MaxFeatures, len(train)), 0.95)
	if err := vectorizer.Fit(docs); err != nil {
		return nil, fmt.Errorf("fitting vectorizer: %w", err)
	}

	X := make([][]float64, len(docs))
	for i, doc := range docs {
		x, err := vectorizer.Transform(doc)
		if err != nil {
			return nil, fmt.Errorf("transforming training document: %w", err)
		}
		X[i] = x
	}

	model := &ml.LogisticRegression{}
	trainOpts := ml.TrainOptions{
		Epochs:         opts.Epochs,
		LearningRate:   opts.LearningRate,
		Regularization: opts.Regularization,
	}
	if err := model.Fit(X, labels, trainOpts); err != nil {
		return nil, fmt.Errorf("fitting model: %w", err)
	}

	report, err := Evaluate(vectorizer, model, test)
	if err != nil {
		return nil, fmt.Errorf("evaluating model: %w", err)
	}
	logger.WithField(logging.FieldAccuracy, report.Accuracy).Info("Evaluation complete")

	artifact := &ml.Artifact{
		Vectorizer: vectorizer,
		Model:      model,
		Meta: &models.Metadata{
			ModelType:       "logistic_regression",
			VectorizerType:  "tfidf",
			DataSource:      opts.Input,
			TotalSamples:    len(examples),
			TrainingSamples: len(train),
			TestSamples:     len(test),
			Accuracy:        report.Accuracy,
			Categories:      model.Classes,
			FeatureCount:    vectorizer.FeatureCount(),
			SplitStrategy:   strategy,
			TrainedAt:       time.Now().UTC(),
			Version:         "1.0",
		},
	}

	if opts.ModelsDir != "" {
		if err := ml.SaveArtifact(opts.ModelsDir, artifact); err != nil {
			return nil, fmt.Errorf("saving artifact: %w", err)
		}
		logger.WithField(logging.FieldDirectory, opts.ModelsDir).Info("Artifact written")
	}

	return &Result{Artifact: artifact, Report: report, Warnings: warnings}, nil
}
