package script

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/youngZwiebelandtheGemuseBeat/klondike/internal/klondike"
)

func ordered() Options {
	return Options{State: klondike.Deal(klondike.OrderedShuffler{})}
}

func TestRunDrawAndDrop(t *testing.T) {
	var out bytes.Buffer
	opts := ordered()
	opts.Output = &out

	res, err := Run(context.Background(), `
		game.draw()
		local w = game.waste_top()
		assert(w.name == "JD" and w.rank == 11 and w.suit == "diamonds" and w.face_up)
		game.pickup_waste()
		assert(game.drop_column(4))
		assert(game.column_size(4) == 6)
		assert(game.stock_size() == 23)
		assert(game.waste_top() == nil)
	`, opts)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Moves)
	assert.False(t, res.Won)
	assert.Len(t, res.Final.Columns[4], 6)

	text := out.String()
	assert.Contains(t, text, "0: KH\n")
	assert.Contains(t, text, "drawn JD last=false\n")
	assert.Contains(t, text, "added column=4 cards=[JD]\n")
	assert.Contains(t, text, "waste top=-\n")
}

func TestRunRejectedDropReturnsFalse(t *testing.T) {
	res, err := Run(context.Background(), `
		game.pickup_column(0, 0)
		assert(game.drop_column(1) == false)
		local t = game.top(0)
		assert(t.name == "KH")
	`, ordered())
	require.NoError(t, err)
	assert.Zero(t, res.Moves)
}

func TestRunContractViolationsRaise(t *testing.T) {
	tests := []struct {
		name string
		src  string
		msg  string
	}{
		{"column out of range", `game.top(9)`, "column 9 out of range"},
		{"empty waste", `game.pickup_waste()`, "waste is empty"},
		{"unknown suit", `game.drop_foundation("stars")`, "unknown suit"},
		{"hint out of range", `game.play_hint(99)`, "out of range"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Run(context.Background(), tt.src, ordered())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestRunCanCatchViolations(t *testing.T) {
	_, err := Run(context.Background(), `
		local ok = pcall(game.pickup_waste)
		assert(not ok)
		game.draw()
	`, ordered())
	assert.NoError(t, err)
}

func TestRunPlaysHints(t *testing.T) {
	res, err := Run(context.Background(), `
		for i = 1, 300 do
			if game.won() or game.hints() == 0 then break end
			assert(game.play_hint(1))
		end
		game.auto_gather()
	`, Options{Seed: 1})
	require.NoError(t, err)
	assert.Positive(t, res.Moves)

	st, err := klondike.NewState(res.Final)
	require.NoError(t, err)
	assert.NoError(t, st.CheckInvariants())
}

func TestRunHonoursContext(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := Run(ctx, `while true do end`, ordered())
	assert.Error(t, err)
}

func TestRunFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "play.lua")
	require.NoError(t, os.WriteFile(path, []byte(`game.draw() game.draw()`), 0o644))

	res, err := RunFile(context.Background(), path, ordered())
	require.NoError(t, err)
	assert.Equal(t, 2, res.Moves)
	assert.Len(t, res.Final.Stock, 22)

	_, err = RunFile(context.Background(), filepath.Join(t.TempDir(), "missing.lua"), ordered())
	assert.Error(t, err)
}

func TestFormatColumns(t *testing.T) {
	got := FormatColumns([][]klondike.Card{
		{klondike.NewCard(klondike.King, klondike.Hearts).Flipped()},
		{klondike.NewCard(klondike.Queen, klondike.Hearts), klondike.NewCard(klondike.Jack, klondike.Hearts).Flipped()},
	})
	assert.Equal(t, "0: KH\n1: [QH] JH\n", got)
}
