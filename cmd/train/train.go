// Package train runs the offline training pipeline
package train

import (
	"fmt"

	"github.com/spf13/cobra"

	"dompet/categorizer/cmd/root"
	"dompet/categorizer/internal/config"
	"dompet/categorizer/internal/logging"
	"dompet/categorizer/internal/training"
)

// Cmd represents the train command
var Cmd = &cobra.Command{
	Use:   "train",
	Short: "Train the statistical model from a labeled dataset",
	Long: `Train fits the TF-IDF vectorizer and logistic regression model on a
labeled dataset (CSV with description,category columns, or XML with
/dataset/record elements) and writes the artifact the serving process
loads at startup.`,
	RunE: trainFunc,
}

func init() {
	Cmd.Flags().StringVarP(&root.Format, "format", "f", "csv", "Dataset format: csv or xml")
	Cmd.Flags().StringVarP(&root.ModelsDir, "models-dir", "m", "", "Artifact output directory (default from configuration)")
}

func trainFunc(cmd *cobra.Command, args []string) error {
	if root.SharedFlags.Input == "" {
		return fmt.Errorf("--input is required")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)

	format, err := training.ParseFormat(root.Format)
	if err != nil {
		return err
	}

	modelsDir := cfg.Models.Directory
	if root.ModelsDir != "" {
		modelsDir = root.ModelsDir
	}

	result, err := training.Run(training.Options{
		Input:          root.SharedFlags.Input,
		Format:         format,
		ModelsDir:      modelsDir,
		TestFraction:   cfg.Training.TestFraction,
		MaxFeatures:    cfg.Training.MaxFeatures,
		Epochs:         cfg.Training.Epochs,
		LearningRate:   cfg.Training.LearningRate,
		Regularization: cfg.Training.Regularization,
		Seed:           cfg.Training.Seed,
	}, logger)
	if err != nil {
		return err
	}

	fmt.Print(result.Report.String())
	if len(result.Warnings) > 0 {
		fmt.Printf("%d warning(s); see the log for details\n", len(result.Warnings))
	}
	fmt.Printf("artifact written to %s\n", modelsDir)
	return nil
}
