package models

import "time"

// SplitStrategy records how the training pipeline partitioned the dataset.
type SplitStrategy string

const (
	SplitStratified   SplitStrategy = "stratified"
	SplitUnstratified SplitStrategy = "unstratified"
)

// Metadata describes a trained model artifact. It is written by the training
// pipeline alongside the vectorizer and model blobs, and served back on the
// health endpoint.
type Metadata struct {
	ModelType       string        `msgpack:"model_type" json:"model_type"`
	VectorizerType  string        `msgpack:"vectorizer_type" json:"vectorizer_type"`
	DataSource      string        `msgpack:"data_source" json:"data_source"`
	TotalSamples    int           `msgpack:"total_samples" json:"total_samples"`
	TrainingSamples int           `msgpack:"training_samples" json:"training_samples"`
	TestSamples     int           `msgpack:"test_samples" json:"test_samples"`
	Accuracy        float64       `msgpack:"accuracy" json:"accuracy"`
	Categories      []string      `msgpack:"categories" json:"categories"`
	FeatureCount    int           `msgpack:"feature_count" json:"feature_count"`
	SplitStrategy   SplitStrategy `msgpack:"split_strategy" json:"split_strategy"`
	TrainedAt       time.Time     `msgpack:"trained_at" json:"trained_at"`
	Version         string        `msgpack:"version" json:"version"`
}
