// Package training implements the offline pipeline that turns a labeled
// dataset into the serialized artifact consumed by the statistical
// classifier. It never touches a running serving process.
package training

import (
	"fmt"
	"os"
	"strings"

	"github.com/gocarina/gocsv"
	"gopkg.in/xmlpath.v2"

	"dompet/categorizer/internal/logging"
	"dompet/categorizer/internal/models"
)

// Example is one labeled training row.
type Example struct {
	Description string `csv:"description"`
	Category    string `csv:"category"`
}

// Format identifies a dataset file format.
type Format string

const (
	FormatCSV Format = "csv"
	FormatXML Format = "xml"
)

// ParseFormat maps a user-supplied format name onto a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv":
		return FormatCSV, nil
	case "xml":
		return FormatXML, nil
	default:
		return "", fmt.Errorf("unknown dataset format %q (expected csv or xml)", s)
	}
}

// Load reads labeled examples from path in the given format. Rows missing a
// description or carrying an unknown category are dropped and counted; zero
// surviving rows is an error.
func Load(path string, format Format, logger logging.Logger) ([]Example, error) {
	var (
		raw []Example
		err error
	)
	switch format {
	case FormatCSV:
		raw, err = loadCSV(path, logger)
	case FormatXML:
		raw, err = loadXML(path, logger)
	default:
		return nil, fmt.Errorf("unknown dataset format %q", format)
	}
	if err != nil {
		return nil, err
	}

	examples := make([]Example, 0, len(raw))
	dropped := 0
	for _, e := range raw {
		e.Description = strings.TrimSpace(e.Description)
		e.Category = strings.TrimSpace(e.Category)
		if e.Description == "" || e.Category == "" {
			dropped++
			continue
		}
		if _, perr := models.ParseCategory(e.Category); perr != nil {
			logger.WithField(logging.FieldCategory, e.Category).
				Warn("Dropping row with unknown category")
			dropped++
			continue
		}
		examples = append(examples, e)
	}

	if dropped > 0 {
		logger.WithField(logging.FieldCount, dropped).
			Warn("Dropped incomplete or mislabeled rows")
	}
	if len(examples) == 0 {
		return nil, fmt.Errorf("no valid examples in %s", path)
	}

	logger.WithFields(
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(examples)},
	).Info("Loaded training examples")
	return examples, nil
}

func loadCSV(path string, logger logging.Logger) ([]Example, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			logger.WithError(cerr).Warn("Failed to close file")
		}
	}()

	var rows []Example
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return nil, fmt.Errorf("error parsing CSV file: %w", err)
	}
	return rows, nil
}

var (
	recordPath      = xmlpath.MustCompile("/dataset/record")
	descriptionPath = xmlpath.MustCompile("description")
	categoryPath    = xmlpath.MustCompile("category")
)

func loadXML(path string, logger logging.Logger) ([]Example, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening XML file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			logger.WithError(cerr).Warn("Failed to close file")
		}
	}()

	root, err := xmlpath.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("error parsing XML file: %w", err)
	}

	var rows []Example
	iter := recordPath.Iter(root)
	for iter.Next() {
		record := iter.Node()
		description, _ := descriptionPath.String(record)
		category, _ := categoryPath.String(record)
		rows = append(rows, Example{Description: description, Category: category})
	}
	return rows, nil
}
