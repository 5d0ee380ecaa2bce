package ml

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"dompet/categorizer/internal/models"
)

// Artifact file names are fixed and well-known: the training pipeline writes
// them, the serving process loads them at startup.
const (
	VectorizerFile = "vectorizer.bin"
	ModelFile      = "model.bin"
	MetadataFile   = "metadata.bin"
)

// Artifact bundles the fitted vectorizer, the fitted model, and the training
// metadata. Once loaded it is held immutably for the process lifetime; there
// is no hot-reload.
type Artifact struct {
	Vectorizer *Vectorizer
	Model      *LogisticRegression
	Meta       *models.Metadata
}

// SaveArtifact serializes the artifact as three msgpack blobs under dir,
// creating the directory if needed.
func SaveArtifact(dir string, a *Artifact) error {
	if a == nil || a.Vectorizer == nil || a.Model == nil {
		return fmt.Errorf("cannot save incomplete artifact")
	}

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("error creating models directory: %w", err)
	}

	if err := writeBlob(filepath.Join(dir, VectorizerFile), a.Vectorizer); err != nil {
		return fmt.Errorf("error saving vectorizer: %w", err)
	}
	if err := writeBlob(filepath.Join(dir, ModelFile), a.Model); err != nil {
		return fmt.Errorf("error saving model: %w", err)
	}
	if a.Meta != nil {
		if err := writeBlob(filepath.Join(dir, MetadataFile), a.Meta); err != nil {
			return fmt.Errorf("error saving metadata: %w", err)
		}
	}

	return nil
}

// LoadArtifact reads the artifact blobs from dir. A missing vectorizer or
// model file means the statistical path is not configured: LoadArtifact
// returns (nil, nil) rather than an error. Corrupt files are errors. Missing
// metadata is tolerated; the artifact then carries a nil Meta.
func LoadArtifact(dir string) (*Artifact, error) {
	var vectorizer Vectorizer
	ok, err := readBlob(filepath.Join(dir, VectorizerFile), &vectorizer)
	if err != nil {
		return nil, fmt.Errorf("error loading vectorizer: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var model LogisticRegression
	ok, err = readBlob(filepath.Join(dir, ModelFile), &model)
	if err != nil {
		return nil, fmt.Errorf("error loading model: %w", err)
	}
	if !ok {
		return nil, nil
	}

	artifact := &Artifact{Vectorizer: &vectorizer, Model: &model}

	var meta models.Metadata
	ok, err = readBlob(filepath.Join(dir, MetadataFile), &meta)
	if err != nil {
		return nil, fmt.Errorf("error loading metadata: %w", err)
	}
	if ok {
		artifact.Meta = &meta
	}

	return artifact, nil
}

func writeBlob(path string, v interface{}) error {
	data, err := msgpack.Marshal(v)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// readBlob returns (false, nil) when the file does not exist.
func readBlob(path string, v interface{}) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	if err := msgpack.Unmarshal(data, v); err != nil {
		return false, err
	}
	return true, nil
}
