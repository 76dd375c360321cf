// Package script drives a Klondike game from Lua. Scripts see a global
// table named game whose functions mirror the engine's operations:
//
//	game.draw()
//	game.pickup_column(column, position)   -- 0-based, like the engine
//	game.pickup_waste()
//	game.pickup_foundation("hearts")
//	game.drop_column(column)               -- returns true when the move was made
//	game.drop_foundation("hearts")
//	game.auto_gather()                     -- returns the number of cards moved
//	game.hints()                           -- returns the number of legal moves
//	game.play_hint(i)                      -- plays the i-th legal move (1-based)
//	game.won(), game.stock_size(), game.waste_top(), game.top(column),
//	game.column_size(column), game.foundation_size(suit)
//
// Calls that break the engine's contract, such as an out-of-range column,
// raise a Lua error that aborts the script.
package script

import (
	"context"
	"fmt"
	"io"
	"os"

	lua "github.com/yuin/gopher-lua"

	"github.com/youngZwiebelandtheGemuseBeat/klondike/internal/klondike"
)

// Options controls the game a script runs against.
type Options struct {
	// Seed deals a reproducible game; zero shuffles randomly.
	Seed uint64

	// State, when set, is used instead of dealing.
	State *klondike.State

	// Output receives one line per engine notification. Nil discards them.
	Output io.Writer
}

// Result summarises a finished script.
type Result struct {
	Won   bool
	Moves int
	Final klondike.Layout
}

type runner struct {
	game  *klondike.Game
	moves int
}

// RunFile runs the Lua script at path.
func RunFile(ctx context.Context, path string, opts Options) (*Result, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return Run(ctx, string(src), opts)
}

// Run executes src against a fresh game and reports the outcome.
func Run(ctx context.Context, src string, opts Options) (*Result, error) {
	st := opts.State
	if st == nil {
		st = klondike.Deal(klondike.ShufflerFor(opts.Seed))
	}
	var view klondike.View = klondike.NopView{}
	if opts.Output != nil {
		view = NewPrinter(opts.Output)
	}
	r := &runner{game: klondike.NewGame(st, view)}

	L := lua.NewState()
	defer L.Close()
	L.SetContext(ctx)
	L.SetGlobal("game", r.module(L))

	r.game.Start()
	if err := L.DoString(src); err != nil {
		return nil, fmt.Errorf("run script: %w", err)
	}
	return &Result{Won: r.game.IsWon(), Moves: r.moves, Final: st.Snapshot()}, nil
}

func (r *runner) module(L *lua.LState) *lua.LTable {
	return L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"draw":              r.draw,
		"pickup_column":     r.pickupColumn,
		"pickup_waste":      r.pickupWaste,
		"pickup_foundation": r.pickupFoundation,
		"drop_column":       r.dropColumn,
		"drop_foundation":   r.dropFoundation,
		"auto_gather":       r.autoGather,
		"hints":             r.hints,
		"play_hint":         r.playHint,
		"won":               r.won,
		"stock_size":        r.stockSize,
		"waste_top":         r.wasteTop,
		"top":               r.top,
		"column_size":       r.columnSize,
		"foundation_size":   r.foundationSize,
	})
}

func raise(L *lua.LState, err error) int {
	L.RaiseError("%s", err.Error())
	return 0
}

func checkSuit(L *lua.LState, n int) klondike.Suit {
	s, err := klondike.ParseSuit(L.CheckString(n))
	if err != nil {
		L.ArgError(n, err.Error())
	}
	return s
}

func cardTable(L *lua.LState, c *klondike.Card) lua.LValue {
	if c == nil {
		return lua.LNil
	}
	t := L.NewTable()
	t.RawSetString("rank", lua.LNumber(c.Rank))
	t.RawSetString("suit", lua.LString(c.Suit.String()))
	t.RawSetString("face_up", lua.LBool(c.FaceUp))
	t.RawSetString("name", lua.LString(c.String()))
	return t
}

func (r *runner) draw(L *lua.LState) int {
	if err := r.game.RequestNewCard(); err != nil {
		return raise(L, err)
	}
	r.moves++
	return 0
}

func (r *runner) pickupColumn(L *lua.LState) int {
	if err := r.game.PickupFromColumn(L.CheckInt(1), L.CheckInt(2)); err != nil {
		return raise(L, err)
	}
	return 0
}

func (r *runner) pickupWaste(L *lua.LState) int {
	if err := r.game.PickupFromWaste(); err != nil {
		return raise(L, err)
	}
	return 0
}

func (r *runner) pickupFoundation(L *lua.LState) int {
	if err := r.game.PickupFromFoundation(checkSuit(L, 1)); err != nil {
		return raise(L, err)
	}
	return 0
}

func (r *runner) dropped(L *lua.LState, ok bool, err error) int {
	if err != nil {
		return raise(L, err)
	}
	if ok {
		r.moves++
	}
	L.Push(lua.LBool(ok))
	return 1
}

func (r *runner) dropColumn(L *lua.LState) int {
	ok, err := r.game.DropOnColumn(L.CheckInt(1))
	return r.dropped(L, ok, err)
}

func (r *runner) dropFoundation(L *lua.LState) int {
	ok, err := r.game.DropOnFoundation(checkSuit(L, 1))
	return r.dropped(L, ok, err)
}

func (r *runner) autoGather(L *lua.LState) int {
	n, err := r.game.AutoGather()
	r.moves += n
	if err != nil {
		return raise(L, err)
	}
	L.Push(lua.LNumber(n))
	return 1
}

func (r *runner) hints(L *lua.LState) int {
	L.Push(lua.LNumber(len(r.game.Hints())))
	return 1
}

func (r *runner) playHint(L *lua.LState) int {
	i := L.CheckInt(1)
	hints := r.game.Hints()
	if i < 1 || i > len(hints) {
		L.ArgError(1, fmt.Sprintf("hint %d out of range (have %d)", i, len(hints)))
		return 0
	}
	ok, err := r.game.Apply(hints[i-1])
	return r.dropped(L, ok, err)
}

func (r *runner) won(L *lua.LState) int {
	L.Push(lua.LBool(r.game.IsWon()))
	return 1
}

func (r *runner) stockSize(L *lua.LState) int {
	L.Push(lua.LNumber(r.game.State().StockSize()))
	return 1
}

func (r *runner) wasteTop(L *lua.LState) int {
	L.Push(cardTable(L, r.game.State().TopOfWaste()))
	return 1
}

func (r *runner) top(L *lua.LState) int {
	c, err := r.game.State().TopOfColumn(L.CheckInt(1))
	if err != nil {
		return raise(L, err)
	}
	L.Push(cardTable(L, c))
	return 1
}

func (r *runner) columnSize(L *lua.LState) int {
	col := L.CheckInt(1)
	if _, err := r.game.State().TopOfColumn(col); err != nil {
		return raise(L, err)
	}
	L.Push(lua.LNumber(r.game.State().ColumnSize(col)))
	return 1
}

func (r *runner) foundationSize(L *lua.LState) int {
	L.Push(lua.LNumber(r.game.State().FoundationSize(checkSuit(L, 1))))
	return 1
}
