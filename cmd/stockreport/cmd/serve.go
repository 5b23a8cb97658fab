package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/stockreport/internal/logger"
	"github.com/rustyeddy/stockreport/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the trading history dashboard",
	Long: `Serve the trading history dashboard and language API over HTTP.

Routes:
  GET /               HTML dashboard (?lang=ko|en|auto for one response)
  GET /api/history    formatted history as JSON
  GET /api/language   active language
  PUT /api/language   {"language":"en"} switches and persists it
  GET /healthz        liveness probe

Example:
  stockreport serve --addr :8080`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var serveAddr string

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default server.addr)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := cfg.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}
	timeout, err := cfg.Server.ParseShutdownTimeout()
	if err != nil {
		return err
	}
	if !cfg.Log.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	src, err := openSource()
	if err != nil {
		return err
	}
	defer src.Close()

	provider := newProvider(ctx)
	logger.Info(ctx, "starting dashboard", "addr", addr, "source", cfg.Source.Type, "language", provider.Language())

	if err := server.New(src, provider).Run(ctx, addr, timeout); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	logger.Info(context.Background(), "dashboard stopped")
	return nil
}
