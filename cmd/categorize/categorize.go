// Package categorize handles one-shot categorization from the command line
package categorize

import (
	"fmt"

	"github.com/spf13/cobra"

	"dompet/categorizer/cmd/root"
	"dompet/categorizer/internal/config"
	"dompet/categorizer/internal/container"
)

// Cmd represents the categorize command
var Cmd = &cobra.Command{
	Use:   "categorize",
	Short: "Categorize a single transaction description",
	Long: `Categorize classifies one description using the same two-tier engine as
the HTTP service: the trained model when it is confident, the keyword
lexicon otherwise.`,
	RunE: categorizeFunc,
}

func init() {
	Cmd.Flags().StringVarP(&root.Description, "description", "d", "", "Transaction description to categorize")
	_ = Cmd.MarkFlagRequired("description")
}

func categorizeFunc(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	c, err := container.NewContainer(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	result := c.GetDispatcher().Categorize(cmd.Context(), root.Description)

	fmt.Printf("category:   %s\n", result.Category)
	fmt.Printf("confidence: %.3f\n", result.Confidence)
	fmt.Printf("method:     %s\n", result.Method)
	return nil
}
