// Package root contains the root command for the application
package root

import (
	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are shared by multiple commands
type CommonFlags struct {
	Input  string
	Output string
}

var (
	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "categorizer",
		Short: "A transaction categorization engine with a trained model and keyword fallback.",
		Long: `categorizer classifies Indonesian transaction descriptions into spending
categories. A trained TF-IDF + logistic regression model answers first; a
curated keyword lexicon answers when the model is missing or unsure.`,
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
	}

	// SharedFlags holds the common flag values
	SharedFlags = CommonFlags{}

	// Specific train/label command flags
	Format    string
	ModelsDir string

	// Specific categorize command flags
	Description string
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input file")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file")
}
