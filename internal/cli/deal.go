package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/youngZwiebelandtheGemuseBeat/klondike/internal/klondike"
	"github.com/youngZwiebelandtheGemuseBeat/klondike/internal/script"
)

var (
	dealSeed uint64
	dealJSON bool
)

var dealCmd = &cobra.Command{
	Use:   "deal",
	Short: "Print a freshly dealt board",
	Long: `Deals a new game and prints the tableau, one column per line.
Face-down cards are shown in brackets. A non-zero --seed always deals the
same board.`,
	Args: cobra.NoArgs,
	RunE: runDeal,
}

func init() {
	dealCmd.Flags().Uint64Var(&dealSeed, "seed", 0, "deal seed (0 shuffles randomly)")
	dealCmd.Flags().BoolVar(&dealJSON, "json", false, "print the full layout as JSON")
	rootCmd.AddCommand(dealCmd)
}

func runDeal(cmd *cobra.Command, _ []string) error {
	st := klondike.Deal(klondike.ShufflerFor(dealSeed))

	if dealJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(st.Snapshot()); err != nil {
			return fmt.Errorf("encode layout: %w", err)
		}
		return nil
	}

	out := cmd.OutOrStdout()
	fmt.Fprint(out, script.FormatColumns(st.Columns()))
	fmt.Fprintf(out, "stock: %d\n", st.StockSize())
	return nil
}
