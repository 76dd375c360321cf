package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/youngZwiebelandtheGemuseBeat/klondike/internal/config"
	"github.com/youngZwiebelandtheGemuseBeat/klondike/internal/ws"
)

var (
	serveConfigPath string
	serveAddr       string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve Klondike games over websockets",
	Long: `Starts the table server. Clients connect to /ws and may open several
games each; /health answers "ok".

Settings come from a TOML file (--config, KLONDIKE_CONFIG or ./klondike.toml)
and KLONDIKE_* environment variables.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "path to a TOML config file")
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address, overrides server.addr")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(serveConfigPath)
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	logger := newLogger(cmd.ErrOrStderr(), cfg.SlogLevel())
	slog.SetDefault(logger)

	srv := newServer(cfg, logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", cfg.Server.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// newServer wires a running hub into an http.Server for cfg.
func newServer(cfg config.Config, logger *slog.Logger) *http.Server {
	hub := ws.NewHub(ws.Options{
		AllowOrigins:      cfg.Server.OriginAllowlist,
		MaxGamesPerClient: cfg.Server.MaxGamesPerClient,
		RateLimit:         cfg.Server.RateLimit,
		RateBurst:         cfg.Server.RateBurst,
		Seed:              cfg.Game.Seed,
		Logger:            logger,
	})
	go hub.Run()

	return &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           ws.NewHandler(hub),
		ReadHeaderTimeout: 10 * time.Second,
	}
}
