// Package labeler is an offline operator tool that bootstraps a labeled
// training dataset from raw transaction descriptions, asking Gemini to pick
// a category and falling back to the keyword classifier when the response
// is unusable. The serving path never imports this package.
package labeler

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"dompet/categorizer/internal/classifier"
	"dompet/categorizer/internal/logging"
	"dompet/categorizer/internal/models"
)

// generator abstracts the model call so tests can stub the API.
type generator interface {
	generate(ctx context.Context, prompt string) (string, error)
}

type geminiGenerator struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func (g *geminiGenerator) generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from Gemini API")
	}
	return fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0]), nil
}

// Labeler assigns a category to raw descriptions, AI first, keywords second.
type Labeler struct {
	gen     generator
	keyword classifier.Strategy
	logger  logging.Logger
}

// New builds a Labeler backed by the Gemini API.
func New(ctx context.Context, apiKey, modelName string, keyword classifier.Strategy, logger logging.Logger) (*Labeler, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &Labeler{
		gen:     &geminiGenerator{client: client, model: client.GenerativeModel(modelName)},
		keyword: keyword,
		logger:  logger,
	}, nil
}

// Close releases the underlying API client, if any.
func (l *Labeler) Close() error {
	if g, ok := l.gen.(*geminiGenerator); ok && g.client != nil {
		return g.client.Close()
	}
	return nil
}

// Source records which mechanism produced a label.
type Source string

const (
	SourceAI      Source = "ai"
	SourceKeyword Source = "keyword"
)

func prompt(description string) string {
	names := make([]string, 0, len(models.AllCategories()))
	for _, c := range models.AllCategories() {
		names = append(names, string(c))
	}
	return fmt.Sprintf(`Categorize the following financial transaction description:
%s

Please assign it to exactly one of the following categories:
%s

Respond in this format:
Category: [Selected Category Name]`,
		description,
		strings.Join(names, ", "))
}

// parseCategory extracts a category from the model response: the
// "Category:" line when present, otherwise the first category name
// mentioned anywhere in the text.
func parseCategory(response string) (models.Category, bool) {
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "Category:") {
			name := strings.TrimSpace(strings.TrimPrefix(line, "Category:"))
			if c, err := models.ParseCategory(name); err == nil {
				return c, true
			}
		}
	}
	for _, c := range models.AllCategories() {
		if strings.Contains(response, string(c)) {
			return c, true
		}
	}
	return "", false
}

// Label categorizes one description. AI failures and unparseable responses
// fall back to the keyword classifier; the returned Source says which path
// won.
func (l *Labeler) Label(ctx context.Context, description string) (models.Category, Source, error) {
	response, err := l.gen.generate(ctx, prompt(description))
	if err == nil {
		if category, ok := parseCategory(response); ok {
			return category, SourceAI, nil
		}
		l.logger.WithField(logging.FieldDescription, description).
			Warn("Unparseable AI response, falling back to keywords")
	} else {
		l.logger.WithError(err).WithField(logging.FieldDescription, description).
			Warn("AI labeling failed, falling back to keywords")
	}

	result, _, kerr := l.keyword.Classify(ctx, description)
	if kerr != nil {
		return "", "", kerr
	}
	return result.Category, SourceKeyword, nil
}

// inputRow is one record of the raw input CSV.
type inputRow struct {
	Description string `csv:"description"`
}

// outputRow matches the training pipeline's expected dataset layout.
type outputRow struct {
	Description string `csv:"description"`
	Category    string `csv:"category"`
}

// Summary reports how a labeling run went.
type Summary struct {
	Total       int
	FromAI      int
	FromKeyword int
	// Unresolved counts rows where even the keyword path landed on the
	// catch-all. They are still written, labeled with the catch-all.
	Unresolved int
}

// Run labels every description in the input CSV and writes a
// description,category CSV suitable for training.
func (l *Labeler) Run(ctx context.Context, inputPath, outputPath string) (*Summary, error) {
	in, err := os.Open(inputPath)
	if err != nil {
		return nil, fmt.Errorf("error opening input file: %w", err)
	}
	defer func() {
		if cerr := in.Close(); cerr != nil {
			l.logger.WithError(cerr).Warn("Failed to close file")
		}
	}()

	var rows []inputRow
	if err := gocsv.UnmarshalFile(in, &rows); err != nil {
		return nil, fmt.Errorf("error parsing input file: %w", err)
	}

	summary := &Summary{}
	out := make([]outputRow, 0, len(rows))
	for _, row := range rows {
		description := strings.TrimSpace(row.Description)
		if description == "" {
			continue
		}

		category, source, err := l.Label(ctx, description)
		if err != nil {
			return nil, err
		}

		summary.Total++
		switch source {
		case SourceAI:
			summary.FromAI++
		case SourceKeyword:
			summary.FromKeyword++
		}
		if category == models.CategoryOther {
			summary.Unresolved++
		}

		out = append(out, outputRow{Description: description, Category: string(category)})
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return nil, fmt.Errorf("error creating output file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			l.logger.WithError(cerr).Warn("Failed to close file")
		}
	}()

	if err := gocsv.MarshalFile(&out, file); err != nil {
		return nil, fmt.Errorf("error writing output file: %w", err)
	}

	l.logger.WithFields(
		logging.Field{Key: logging.FieldCount, Value: summary.Total},
		logging.Field{Key: logging.FieldFile, Value: outputPath},
	).Info("Labeled dataset written")
	return summary, nil
}
