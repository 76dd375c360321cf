package klondike_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/youngZwiebelandtheGemuseBeat/klondike/internal/klondike"
)

func TestDeal(t *testing.T) {
	st := klondike.Deal(klondike.OrderedShuffler{})
	require.NoError(t, st.CheckInvariants())

	for col := 0; col < klondike.NumColumns; col++ {
		require.Equal(t, col+1, st.ColumnSize(col))
		for pos := 0; pos <= col; pos++ {
			c, err := st.CardAt(col, pos)
			require.NoError(t, err)
			assert.Equal(t, pos == col, c.FaceUp, "column %d position %d", col, pos)
		}
	}
	assert.Equal(t, 52-28, st.StockSize())
	assert.Equal(t, 0, st.WasteSize())

	top, err := st.TopOfColumn(0)
	require.NoError(t, err)
	assert.Equal(t, up(klondike.King, klondike.Hearts), *top)
}

func TestDealShuffled(t *testing.T) {
	for seed := uint64(1); seed <= 20; seed++ {
		st := klondike.Deal(klondike.SeededShuffler{Seed: seed})
		require.NoError(t, st.CheckInvariants(), "seed %d", seed)
	}
	require.NoError(t, klondike.Deal(klondike.CryptoShuffler{}).CheckInvariants())
}

func TestDrawFromStock(t *testing.T) {
	st := klondike.Deal(klondike.OrderedShuffler{})

	c, err := st.DrawFromStock()
	require.NoError(t, err)
	assert.Equal(t, up(klondike.Jack, klondike.Diamonds), c)
	assert.Equal(t, &c, st.TopOfWaste())
	assert.Equal(t, 23, st.StockSize())
	require.NoError(t, st.CheckInvariants())
}

func TestDrawFromEmptyStock(t *testing.T) {
	st := klondike.Deal(klondike.OrderedShuffler{})
	for st.HasStock() {
		_, err := st.DrawFromStock()
		require.NoError(t, err)
	}
	_, err := st.DrawFromStock()
	assert.ErrorIs(t, err, klondike.ErrEmptyStock)
}

func TestRefillReplaysWasteInReverse(t *testing.T) {
	st := klondike.Deal(klondike.OrderedShuffler{})
	var first []klondike.Card
	for st.HasStock() {
		c, err := st.DrawFromStock()
		require.NoError(t, err)
		first = append(first, c)
	}

	require.NoError(t, st.RefillStockFromWaste())
	assert.Equal(t, 0, st.WasteSize())
	assert.Equal(t, len(first), st.StockSize())
	require.NoError(t, st.CheckInvariants())

	var second []klondike.Card
	for st.HasStock() {
		c, err := st.DrawFromStock()
		require.NoError(t, err)
		second = append(second, c)
	}
	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[len(first)-1-i], second[i])
	}
}

func TestRefillWithStockLeft(t *testing.T) {
	st := klondike.Deal(klondike.OrderedShuffler{})
	_, err := st.DrawFromStock()
	require.NoError(t, err)

	err = st.RefillStockFromWaste()
	assert.ErrorIs(t, err, klondike.ErrPreconditionViolated)
	assert.Equal(t, 1, st.WasteSize())
}

func TestRefillEmptyWaste(t *testing.T) {
	st, err := klondike.NewState(complete(klondike.Layout{
		Foundations: [klondike.NumSuits][]klondike.Card{
			foundationUpTo(klondike.Clubs, klondike.King),
			foundationUpTo(klondike.Diamonds, klondike.King),
			foundationUpTo(klondike.Spades, klondike.King),
			foundationUpTo(klondike.Hearts, klondike.King),
		},
	}))
	require.NoError(t, err)

	require.NoError(t, st.RefillStockFromWaste())
	assert.False(t, st.HasStock())
	assert.Equal(t, 0, st.WasteSize())
	assert.True(t, st.IsWon())
}

func TestColumnPrimitives(t *testing.T) {
	st := klondike.Deal(klondike.OrderedShuffler{})

	run, err := st.PopRunFromColumn(6, 5)
	require.NoError(t, err)
	assert.Equal(t, []klondike.Card{down(klondike.King, klondike.Diamonds), up(klondike.Queen, klondike.Diamonds)}, run)
	assert.Equal(t, 5, st.ColumnSize(6))

	require.NoError(t, st.AppendToColumn(0, run...))
	assert.Equal(t, 3, st.ColumnSize(0))
	top, err := st.TopOfColumn(0)
	require.NoError(t, err)
	assert.Equal(t, up(klondike.Queen, klondike.Diamonds), *top)

	flipped, err := st.FlipTopOfColumn(6)
	require.NoError(t, err)
	assert.True(t, flipped)
	flipped, err = st.FlipTopOfColumn(6)
	require.NoError(t, err)
	assert.False(t, flipped, "flipping is one-way")

	next, err := st.PopTopOfColumn(0)
	require.NoError(t, err)
	assert.Equal(t, down(klondike.King, klondike.Diamonds), *next)
}

func TestPopTopReturnsNilWhenEmptied(t *testing.T) {
	st := klondike.Deal(klondike.OrderedShuffler{})

	next, err := st.PopTopOfColumn(0)
	require.NoError(t, err)
	assert.Nil(t, next)

	_, err = st.PopTopOfColumn(0)
	assert.ErrorIs(t, err, klondike.ErrPreconditionViolated)

	_, err = st.PopTopOfWaste()
	assert.ErrorIs(t, err, klondike.ErrPreconditionViolated)

	_, err = st.PopTopOfFoundation(klondike.Hearts)
	assert.ErrorIs(t, err, klondike.ErrPreconditionViolated)
}

func TestFoundationPrimitives(t *testing.T) {
	st := klondike.Deal(klondike.OrderedShuffler{})

	top, err := st.TopOfFoundation(klondike.Spades)
	require.NoError(t, err)
	assert.Nil(t, top)

	require.NoError(t, st.PushToFoundation(down(klondike.Ace, klondike.Spades)))
	require.NoError(t, st.PushToFoundation(down(2, klondike.Spades)))
	assert.Equal(t, 2, st.FoundationSize(klondike.Spades))

	prev, err := st.PopTopOfFoundation(klondike.Spades)
	require.NoError(t, err)
	assert.Equal(t, up(klondike.Ace, klondike.Spades), *prev)
}

func TestOutOfRange(t *testing.T) {
	st := klondike.Deal(klondike.OrderedShuffler{})

	_, err := st.CardAt(7, 0)
	assert.ErrorIs(t, err, klondike.ErrInvalidArgument)
	_, err = st.CardAt(-1, 0)
	assert.ErrorIs(t, err, klondike.ErrInvalidArgument)
	_, err = st.CardAt(2, 3)
	assert.ErrorIs(t, err, klondike.ErrInvalidArgument)
	_, err = st.TopOfColumn(9)
	assert.ErrorIs(t, err, klondike.ErrInvalidArgument)
	_, err = st.PopRunFromColumn(3, 4)
	assert.ErrorIs(t, err, klondike.ErrInvalidArgument)
	_, err = st.TopOfFoundation(klondike.Suit(4))
	assert.ErrorIs(t, err, klondike.ErrInvalidArgument)
	assert.ErrorIs(t, st.AppendToColumn(7), klondike.ErrInvalidArgument)
}

func TestNewStateRejectsBrokenLayouts(t *testing.T) {
	tests := []struct {
		name   string
		layout klondike.Layout
	}{
		{"missing cards", klondike.Layout{}},
		{"duplicate card", complete(klondike.Layout{
			Columns: [klondike.NumColumns][]klondike.Card{{up(klondike.King, klondike.Hearts)}, {up(klondike.King, klondike.Hearts)}},
		})},
		{"foundation gap", complete(klondike.Layout{
			Foundations: [klondike.NumSuits][]klondike.Card{{up(klondike.Ace, klondike.Clubs), up(3, klondike.Clubs)}},
		})},
		{"foundation wrong suit", complete(klondike.Layout{
			Foundations: [klondike.NumSuits][]klondike.Card{{up(klondike.Ace, klondike.Hearts)}},
		})},
		{"face-down above face-up", complete(klondike.Layout{
			Columns: [klondike.NumColumns][]klondike.Card{{up(9, klondike.Clubs), down(8, klondike.Hearts), up(7, klondike.Spades)}},
		})},
		{"face-down top", complete(klondike.Layout{
			Columns: [klondike.NumColumns][]klondike.Card{{down(9, klondike.Clubs)}},
		})},
		{"broken run", complete(klondike.Layout{
			Columns: [klondike.NumColumns][]klondike.Card{{up(9, klondike.Clubs), up(8, klondike.Spades)}},
		})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := klondike.NewState(tt.layout)
			assert.ErrorIs(t, err, klondike.ErrInvalidArgument)
		})
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	st := klondike.Deal(klondike.OrderedShuffler{})
	snap := st.Snapshot()
	snap.Columns[0][0].Rank = klondike.Ace

	top, err := st.TopOfColumn(0)
	require.NoError(t, err)
	assert.Equal(t, klondike.King, top.Rank)

	again, err := klondike.NewState(st.Snapshot())
	require.NoError(t, err)
	assert.Equal(t, st.Snapshot(), again.Snapshot())
}

func TestIsWon(t *testing.T) {
	st := klondike.Deal(klondike.OrderedShuffler{})
	assert.False(t, st.IsWon())
}
