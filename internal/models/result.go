package models

// Method identifies which classification path produced a result. The string
// values match the wire contract of the HTTP API.
type Method string

const (
	MethodStatistical Method = "ml_model"
	MethodKeyword     Method = "keyword_matching"
)

// ClassificationResult is the outcome of categorizing a single description.
// Produced fresh per call and never persisted.
type ClassificationResult struct {
	Category   Category
	Confidence float64 // in [0,1]; a probability for the statistical path,
	// a normalized match score for the keyword path
	Method Method
}
