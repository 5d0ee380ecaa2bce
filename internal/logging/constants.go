package logging

// Standardized field names for structured logging. Using these constants
// keeps log output consistent and easy to filter.
const (
	FieldCategory    = "category"
	FieldConfidence  = "confidence"
	FieldMethod      = "method"
	FieldStrategy    = "strategy"
	FieldDescription = "description"
	FieldCount       = "count"
	FieldAccuracy    = "accuracy"
	FieldFile        = "file_path"
	FieldDirectory   = "directory"
	FieldOperation   = "operation"
	FieldError       = "error"
	FieldDuration    = "duration_ms"
)
