// Package container provides dependency injection for the categorizer
// application. It centralizes the creation and wiring of all dependencies,
// making them explicit and testable: entry points only ever talk to the
// container, never to ambient globals.
package container

import (
	"fmt"

	"dompet/categorizer/internal/classifier"
	"dompet/categorizer/internal/config"
	"dompet/categorizer/internal/lexicon"
	"dompet/categorizer/internal/logging"
	"dompet/categorizer/internal/ml"
)

// Container holds all application dependencies. Immutable after creation:
// all fields are private and only reachable through getters.
type Container struct {
	logger      logging.Logger
	config      *config.Config
	lexicon     *lexicon.Lexicon
	statistical *classifier.StatisticalClassifier
	keyword     *classifier.KeywordClassifier
	dispatcher  *classifier.Dispatcher
}

// NewContainer creates and wires all application dependencies. A missing
// model artifact is not an error: the dispatcher simply runs keyword-only
// until an artifact is trained.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	logger := logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)

	lex, err := lexicon.NewStore(cfg.Lexicon.File, logger).Load()
	if err != nil {
		return nil, fmt.Errorf("loading lexicon: %w", err)
	}

	artifact, err := ml.LoadArtifact(cfg.Models.Directory)
	if err != nil {
		return nil, fmt.Errorf("loading model artifact: %w", err)
	}
	if artifact == nil {
		logger.WithField(logging.FieldDirectory, cfg.Models.Directory).
			Info("No trained model found, running keyword-only")
	}

	statistical := classifier.NewStatisticalClassifier(artifact, logger)
	keyword := classifier.NewKeywordClassifier(lex, cfg.Categorization.KeywordFloor, logger)
	dispatcher := classifier.NewDispatcher(statistical, keyword, cfg.Categorization.StatisticalThreshold, logger)

	logger.Info("Container initialized successfully",
		logging.Field{Key: "model_loaded", Value: statistical.Available()},
		logging.Field{Key: "lexicon_categories", Value: len(lex.Entries())})

	return &Container{
		logger:      logger,
		config:      cfg,
		lexicon:     lex,
		statistical: statistical,
		keyword:     keyword,
		dispatcher:  dispatcher,
	}, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetLexicon returns the loaded keyword lexicon.
func (c *Container) GetLexicon() *lexicon.Lexicon {
	return c.lexicon
}

// GetStatistical returns the statistical classifier. It is always non-nil;
// without a trained artifact it reports unavailable.
func (c *Container) GetStatistical() *classifier.StatisticalClassifier {
	return c.statistical
}

// GetKeyword returns the keyword classifier.
func (c *Container) GetKeyword() *classifier.KeywordClassifier {
	return c.keyword
}

// GetDispatcher returns the categorization dispatcher.
func (c *Container) GetDispatcher() *classifier.Dispatcher {
	return c.dispatcher
}

// Close performs cleanup of container resources.
func (c *Container) Close() error {
	c.logger.Info("Container closed")
	return nil
}
