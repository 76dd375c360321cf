package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/youngZwiebelandtheGemuseBeat/klondike/internal/script"
)

var (
	scriptSeed  uint64
	scriptQuiet bool
)

var scriptCmd = &cobra.Command{
	Use:   "script FILE",
	Short: "Play a game from a Lua script",
	Long: `Deals a game and runs the Lua script in FILE against it. The script
drives the game through the global "game" table, e.g.

  game.draw()
  game.pickup_waste()
  if not game.drop_column(3) then game.auto_gather() end

Every engine notification is printed unless --quiet is set.`,
	Args: cobra.ExactArgs(1),
	RunE: runScript,
}

func init() {
	scriptCmd.Flags().Uint64Var(&scriptSeed, "seed", 0, "deal seed (0 shuffles randomly)")
	scriptCmd.Flags().BoolVarP(&scriptQuiet, "quiet", "q", false, "only print the result")
	rootCmd.AddCommand(scriptCmd)
}

func runScript(cmd *cobra.Command, args []string) error {
	opts := script.Options{Seed: scriptSeed}
	if !scriptQuiet {
		opts.Output = cmd.OutOrStdout()
	}

	res, err := script.RunFile(cmd.Context(), args[0], opts)
	if err != nil {
		return fmt.Errorf("script %s: %w", args[0], err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "moves: %d\nwon: %t\n", res.Moves, res.Won)
	return nil
}
