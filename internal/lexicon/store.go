package lexicon

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"dompet/categorizer/internal/logging"
	"dompet/categorizer/internal/models"
)

// CategoryConfig is one category entry in the YAML lexicon file.
type CategoryConfig struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// FileConfig is the top-level structure of the lexicon YAML file.
type FileConfig struct {
	Categories []CategoryConfig `yaml:"categories"`
}

// Store loads and saves the lexicon from a YAML file. A missing file is not
// an error: Load falls back to the built-in default lexicon, matching how
// the rest of the system treats "not configured" states.
type Store struct {
	Path   string
	logger logging.Logger
}

// NewStore creates a Store for the given file path.
func NewStore(path string, logger logging.Logger) *Store {
	return &Store{Path: path, logger: logger}
}

// Load reads the lexicon from the configured YAML file. When the path is
// empty or the file does not exist, the built-in default lexicon is
// returned. A present but malformed file is an error.
func (s *Store) Load() (*Lexicon, error) {
	if s.Path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.WithField(logging.FieldFile, s.Path).Warn("Lexicon file not found, using built-in lexicon")
			return Default(), nil
		}
		return nil, fmt.Errorf("error reading lexicon file: %w", err)
	}

	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("error parsing lexicon file: %w", err)
	}
	if len(cfg.Categories) == 0 {
		return nil, fmt.Errorf("lexicon file %s contains no categories", s.Path)
	}

	entries := make([]Entry, 0, len(cfg.Categories))
	for _, c := range cfg.Categories {
		entries = append(entries, Entry{
			Category: models.Category(c.Name),
			Keywords: c.Keywords,
		})
	}

	lex, err := New(entries)
	if err != nil {
		return nil, fmt.Errorf("invalid lexicon file %s: %w", s.Path, err)
	}

	s.logger.WithFields(
		logging.Field{Key: logging.FieldFile, Value: s.Path},
		logging.Field{Key: logging.FieldCount, Value: len(entries)},
	).Debug("Loaded lexicon from file")

	return lex, nil
}

// Save writes the lexicon back to the configured YAML file, creating parent
// directories as needed.
func (s *Store) Save(lex *Lexicon) error {
	if s.Path == "" {
		return fmt.Errorf("no lexicon file path configured")
	}

	cfg := FileConfig{}
	for _, e := range lex.Entries() {
		cfg.Categories = append(cfg.Categories, CategoryConfig{
			Name:     string(e.Category),
			Keywords: e.Keywords,
		})
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling lexicon: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.Path), 0o750); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}
	if err := os.WriteFile(s.Path, data, 0o644); err != nil {
		return fmt.Errorf("error writing lexicon file: %w", err)
	}

	s.logger.WithField(logging.FieldFile, s.Path).Debug("Saved lexicon to file")
	return nil
}
