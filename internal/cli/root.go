// Package cli holds the klondike command tree.
package cli

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X ...cli.version=...".
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "klondike",
	Short: "Klondike solitaire engine and table server",
	Long: `klondike runs Klondike solitaire games.

It can serve games to websocket clients, play a game from a Lua script,
or print a freshly dealt board.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
