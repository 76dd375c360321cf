package klondike_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/youngZwiebelandtheGemuseBeat/klondike/internal/klondike"
)

// recorder keeps every notification as a short string.
type recorder struct {
	calls []string
}

func (r *recorder) add(format string, args ...any) {
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

func cardOrNil(c *klondike.Card) string {
	if c == nil {
		return "nil"
	}
	return c.String()
}

func (r *recorder) InitGameBoard(columns [][]klondike.Card) { r.add("init %d", len(columns)) }
func (r *recorder) OnRemainingDeckOfCardsRefilled()         { r.add("refilled") }
func (r *recorder) OnNewCardRequested(c klondike.Card, last bool) {
	r.add("drawn %s last=%t", c, last)
}
func (r *recorder) OnFlippedCardMoved(prev *klondike.Card) { r.add("waste %s", cardOrNil(prev)) }
func (r *recorder) OnCardGathered(c klondike.Card)         { r.add("gathered %s", c) }
func (r *recorder) OnGatheredCardMoved(prev *klondike.Card, s klondike.Suit) {
	r.add("foundation %s %s", s, cardOrNil(prev))
}
func (r *recorder) OnCardsRemovedFromColumn(col, n int, flip bool) {
	r.add("removed %d %d flip=%t", col, n, flip)
}
func (r *recorder) OnCardsAddedToColumn(col int, cards []klondike.Card) {
	r.add("added %d %v", col, cards)
}
func (r *recorder) OnGameFinished() { r.add("finished") }

func (r *recorder) reset() { r.calls = nil }

func up(r klondike.Rank, s klondike.Suit) klondike.Card {
	return klondike.Card{Rank: r, Suit: s, FaceUp: true}
}

func down(r klondike.Rank, s klondike.Suit) klondike.Card {
	return klondike.Card{Rank: r, Suit: s}
}

// complete puts every card not already placed in l onto the stock.
func complete(l klondike.Layout) klondike.Layout {
	used := map[[2]int]bool{}
	mark := func(cs []klondike.Card) {
		for _, c := range cs {
			used[[2]int{int(c.Rank), int(c.Suit)}] = true
		}
	}
	mark(l.Stock)
	mark(l.Waste)
	for _, f := range l.Foundations {
		mark(f)
	}
	for _, c := range l.Columns {
		mark(c)
	}
	for _, c := range klondike.NewDeck() {
		if !used[[2]int{int(c.Rank), int(c.Suit)}] {
			l.Stock = append(l.Stock, c)
		}
	}
	return l
}

func foundationUpTo(s klondike.Suit, n klondike.Rank) []klondike.Card {
	var out []klondike.Card
	for r := klondike.Ace; r <= n; r++ {
		out = append(out, up(r, s))
	}
	return out
}

func newGame(t *testing.T, l klondike.Layout) (*klondike.Game, *recorder) {
	t.Helper()
	st, err := klondike.NewState(l)
	require.NoError(t, err)
	rec := &recorder{}
	return klondike.NewGame(st, rec), rec
}

func orderedGame(t *testing.T) (*klondike.Game, *recorder) {
	t.Helper()
	rec := &recorder{}
	return klondike.NewGame(klondike.Deal(klondike.OrderedShuffler{}), rec), rec
}
