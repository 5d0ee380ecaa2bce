// Package server exposes the categorization engine over HTTP. The wire
// contract is versioned by hand: field names here are consumed by the
// desktop client and must not drift.
package server

import (
	"encoding/json"
	"math"
	"net/http"
	"time"

	"dompet/categorizer/internal/classifier"
	"dompet/categorizer/internal/lexicon"
	"dompet/categorizer/internal/logging"
	"dompet/categorizer/internal/models"
)

const serviceName = "dompet-categorizer"
const serviceVersion = "1.0.0"

// Handler carries the dependencies of every endpoint. Constructed once by
// the container; all fields are read-only after construction.
type Handler struct {
	dispatcher  *classifier.Dispatcher
	statistical *classifier.StatisticalClassifier
	lexicon     *lexicon.Lexicon
	logger      logging.Logger
}

// NewHandler wires the HTTP surface onto the classification engine.
func NewHandler(
	dispatcher *classifier.Dispatcher,
	statistical *classifier.StatisticalClassifier,
	lex *lexicon.Lexicon,
	logger logging.Logger,
) *Handler {
	return &Handler{
		dispatcher:  dispatcher,
		statistical: statistical,
		lexicon:     lex,
		logger:      logger,
	}
}

// Routes returns the ServeMux with all endpoints registered.
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", h.health)
	mux.HandleFunc("POST /categorize", h.categorize)
	mux.HandleFunc("POST /categorize/batch", h.categorizeBatch)
	mux.HandleFunc("GET /categories", h.categories)
	mux.HandleFunc("GET /keywords/{category}", h.keywords)
	return mux
}

type modelInfo struct {
	Accuracy   float64  `json:"accuracy"`
	Categories []string `json:"categories"`
	TrainedAt  string   `json:"trained_at"`
}

type healthResponse struct {
	Status        string     `json:"status"`
	Service       string     `json:"service"`
	Version       string     `json:"version"`
	MLModelStatus string     `json:"ml_model_status"`
	Timestamp     string     `json:"timestamp"`
	ModelInfo     *modelInfo `json:"model_info,omitempty"`
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	status := "disabled"
	if h.statistical.Available() {
		status = "enabled"
	}

	resp := healthResponse{
		Status:        "healthy",
		Service:       serviceName,
		Version:       serviceVersion,
		MLModelStatus: status,
		Timestamp:     time.Now().Format(time.RFC3339),
	}
	if meta := h.statistical.Metadata(); meta != nil {
		resp.ModelInfo = &modelInfo{
			Accuracy:   meta.Accuracy,
			Categories: meta.Categories,
			TrainedAt:  meta.TrainedAt.Format(time.RFC3339),
		}
	}

	respondJSON(w, h.logger, http.StatusOK, resp)
}

type categorizeRequest struct {
	Description *string `json:"description"`
}

type categorizeResponse struct {
	Description       string  `json:"description"`
	PredictedCategory string  `json:"predicted_category"`
	Confidence        float64 `json:"confidence"`
	PredictionMethod  string  `json:"prediction_method"`
	Timestamp         string  `json:"timestamp"`
}

// round3 matches the wire contract: confidences are reported to three
// decimal places.
func round3(x float64) float64 {
	return math.Round(x*1000) / 1000
}

func (h *Handler) categorize(w http.ResponseWriter, r *http.Request) {
	var req categorizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "invalid_json", "Request body must be valid JSON")
		return
	}
	if req.Description == nil {
		respondError(w, h.logger, http.StatusBadRequest, "missing_description", "Description field is required")
		return
	}

	result := h.dispatcher.Categorize(r.Context(), *req.Description)

	h.logger.WithFields(
		logging.Field{Key: logging.FieldCategory, Value: result.Category},
		logging.Field{Key: logging.FieldConfidence, Value: result.Confidence},
		logging.Field{Key: logging.FieldMethod, Value: result.Method},
	).Info("Transaction categorized")

	respondJSON(w, h.logger, http.StatusOK, categorizeResponse{
		Description:       *req.Description,
		PredictedCategory: string(result.Category),
		Confidence:        round3(result.Confidence),
		PredictionMethod:  string(result.Method),
		Timestamp:         time.Now().Format(time.RFC3339),
	})
}

type batchRequest struct {
	Transactions json.RawMessage `json:"transactions"`
}

type batchItemResult struct {
	Index             int     `json:"index"`
	Description       string  `json:"description"`
	PredictedCategory string  `json:"predicted_category"`
	Confidence        float64 `json:"confidence"`
	PredictionMethod  string  `json:"prediction_method"`
}

type batchItemError struct {
	Index   int    `json:"index"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

type batchResponse struct {
	Results        []any  `json:"results"`
	TotalProcessed int    `json:"total_processed"`
	Timestamp      string `json:"timestamp"`
}

func (h *Handler) categorizeBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "invalid_json", "Request body must be valid JSON")
		return
	}
	if len(req.Transactions) == 0 {
		respondError(w, h.logger, http.StatusBadRequest, "missing_transactions", "Transactions field is required")
		return
	}

	var items []json.RawMessage
	if string(req.Transactions) == "null" {
		respondError(w, h.logger, http.StatusBadRequest, "invalid_format", "Transactions must be an array")
		return
	}
	if err := json.Unmarshal(req.Transactions, &items); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "invalid_format", "Transactions must be an array")
		return
	}

	// A malformed entry never aborts the batch: it becomes an error record
	// at its index and the loop moves on.
	results := make([]any, 0, len(items))
	for i, item := range items {
		var tx categorizeRequest
		if err := json.Unmarshal(item, &tx); err != nil || tx.Description == nil {
			results = append(results, batchItemError{
				Index:   i,
				Error:   "invalid_transaction",
				Message: "Each transaction must have a description field",
			})
			continue
		}

		result := h.dispatcher.Categorize(r.Context(), *tx.Description)
		results = append(results, batchItemResult{
			Index:             i,
			Description:       *tx.Description,
			PredictedCategory: string(result.Category),
			Confidence:        round3(result.Confidence),
			PredictionMethod:  string(result.Method),
		})
	}

	h.logger.WithField(logging.FieldCount, len(results)).Info("Batch categorized")

	respondJSON(w, h.logger, http.StatusOK, batchResponse{
		Results:        results,
		TotalProcessed: len(results),
		Timestamp:      time.Now().Format(time.RFC3339),
	})
}

type categoriesResponse struct {
	Categories      []string `json:"categories"`
	TotalCategories int      `json:"total_categories"`
}

func (h *Handler) categories(w http.ResponseWriter, r *http.Request) {
	names := make([]string, 0, len(h.lexicon.Entries())+1)
	for _, c := range h.lexicon.Categories() {
		names = append(names, string(c))
	}
	names = append(names, string(models.CategoryOther))

	respondJSON(w, h.logger, http.StatusOK, categoriesResponse{
		Categories:      names,
		TotalCategories: len(names),
	})
}

type keywordsResponse struct {
	Category      string   `json:"category"`
	Keywords      []string `json:"keywords"`
	TotalKeywords int      `json:"total_keywords"`
}

type keywordsNotFound struct {
	Error               string   `json:"error"`
	Message             string   `json:"message"`
	AvailableCategories []string `json:"available_categories"`
}

func (h *Handler) keywords(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("category")

	keywords, ok := h.lexicon.Keywords(models.Category(name))
	if !ok {
		available := make([]string, 0, len(h.lexicon.Entries()))
		for _, c := range h.lexicon.Categories() {
			available = append(available, string(c))
		}
		respondJSON(w, h.logger, http.StatusNotFound, keywordsNotFound{
			Error:               "category_not_found",
			Message:             "Category \"" + name + "\" not found",
			AvailableCategories: available,
		})
		return
	}

	respondJSON(w, h.logger, http.StatusOK, keywordsResponse{
		Category:      name,
		Keywords:      keywords,
		TotalKeywords: len(keywords),
	})
}
