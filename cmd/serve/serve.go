// Package serve starts the HTTP categorization service
package serve

import (
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"dompet/categorizer/internal/config"
	"dompet/categorizer/internal/container"
	"dompet/categorizer/internal/server"
)

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP categorization service",
	Long: `Start the HTTP service exposing /health, /categorize, /categorize/batch,
/categories and /keywords/{category}. The service loads the trained model
artifact at startup; without one it serves keyword-only predictions.`,
	RunE: serveFunc,
}

func serveFunc(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	c, err := container.NewContainer(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	handler := server.NewHandler(
		c.GetDispatcher(),
		c.GetStatistical(),
		c.GetLexicon(),
		c.GetLogger(),
	)

	srv := server.New(
		cfg.Server.Address,
		handler.Routes(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
		c.GetLogger(),
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return srv.Run(ctx)
}
