// Package label bootstraps a labeled training dataset with AI assistance
package label

import (
	"fmt"

	"github.com/spf13/cobra"

	"dompet/categorizer/cmd/root"
	"dompet/categorizer/internal/config"
	"dompet/categorizer/internal/container"
	"dompet/categorizer/internal/labeler"
)

// Cmd represents the label command
var Cmd = &cobra.Command{
	Use:   "label",
	Short: "Label raw descriptions with Gemini assistance",
	Long: `Label reads a CSV with a description column, asks Gemini to assign each
row one of the known categories, and writes a description,category CSV
ready for the train command. Rows the AI cannot label fall back to the
keyword classifier. Requires GEMINI_API_KEY.`,
	RunE: labelFunc,
}

func labelFunc(cmd *cobra.Command, args []string) error {
	if root.SharedFlags.Input == "" || root.SharedFlags.Output == "" {
		return fmt.Errorf("--input and --output are required")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	c, err := container.NewContainer(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	l, err := labeler.New(cmd.Context(), cfg.AI.APIKey, cfg.AI.Model, c.GetKeyword(), c.GetLogger())
	if err != nil {
		return err
	}
	defer func() { _ = l.Close() }()

	summary, err := l.Run(cmd.Context(), root.SharedFlags.Input, root.SharedFlags.Output)
	if err != nil {
		return err
	}

	fmt.Printf("labeled %d row(s): %d by AI, %d by keywords, %d unresolved\n",
		summary.Total, summary.FromAI, summary.FromKeyword, summary.Unresolved)
	return nil
}
