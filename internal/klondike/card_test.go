package klondike_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/youngZwiebelandtheGemuseBeat/klondike/internal/klondike"
)

func TestSuitColor(t *testing.T) {
	assert.Equal(t, klondike.Black, klondike.Clubs.Color())
	assert.Equal(t, klondike.Black, klondike.Spades.Color())
	assert.Equal(t, klondike.Red, klondike.Diamonds.Color())
	assert.Equal(t, klondike.Red, klondike.Hearts.Color())
}

func TestParseSuit(t *testing.T) {
	tests := []struct {
		in   string
		want klondike.Suit
	}{
		{"hearts", klondike.Hearts},
		{"Spades", klondike.Spades},
		{" clubs ", klondike.Clubs},
		{"d", klondike.Diamonds},
	}
	for _, tt := range tests {
		got, err := klondike.ParseSuit(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := klondike.ParseSuit("stars")
	assert.ErrorIs(t, err, klondike.ErrInvalidArgument)
}

func TestCardJSON(t *testing.T) {
	b, err := json.Marshal(up(klondike.Queen, klondike.Hearts))
	require.NoError(t, err)
	assert.JSONEq(t, `{"rank":12,"suit":"hearts","faceUp":true}`, string(b))

	var c klondike.Card
	require.NoError(t, json.Unmarshal([]byte(`{"rank":1,"suit":"spades"}`), &c))
	assert.Equal(t, down(klondike.Ace, klondike.Spades), c)

	_, err = json.Marshal(klondike.Card{Rank: 1, Suit: klondike.Suit(7)})
	assert.Error(t, err)
}

func TestCardString(t *testing.T) {
	assert.Equal(t, "AS", up(klondike.Ace, klondike.Spades).String())
	assert.Equal(t, "10D", up(10, klondike.Diamonds).String())
	assert.Equal(t, "[KC]", down(klondike.King, klondike.Clubs).String())
}

func TestNewDeck(t *testing.T) {
	deck := klondike.NewDeck()
	require.Len(t, deck, 52)

	seen := map[string]bool{}
	for _, c := range deck {
		assert.False(t, c.FaceUp)
		assert.False(t, seen[c.String()], "duplicate %s", c)
		seen[c.String()] = true
	}
}

func TestCanStack(t *testing.T) {
	qs := up(klondike.Queen, klondike.Spades)
	tests := []struct {
		name  string
		fixed *klondike.Card
		moved klondike.Card
		want  bool
	}{
		{"king on empty", nil, up(klondike.King, klondike.Hearts), true},
		{"queen on empty", nil, up(klondike.Queen, klondike.Hearts), false},
		{"red jack on black queen", &qs, up(klondike.Jack, klondike.Hearts), true},
		{"black jack on black queen", &qs, up(klondike.Jack, klondike.Clubs), false},
		{"red ten on black queen", &qs, up(10, klondike.Diamonds), false},
		{"red king on black queen", &qs, up(klondike.King, klondike.Diamonds), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, klondike.CanStack(tt.fixed, tt.moved))
		})
	}
}

func TestCanGather(t *testing.T) {
	ah := up(klondike.Ace, klondike.Hearts)
	assert.True(t, klondike.CanGather(nil, ah, klondike.Hearts))
	assert.False(t, klondike.CanGather(nil, ah, klondike.Spades))
	assert.False(t, klondike.CanGather(nil, up(2, klondike.Hearts), klondike.Hearts))
	assert.True(t, klondike.CanGather(&ah, up(2, klondike.Hearts), klondike.Hearts))
	assert.False(t, klondike.CanGather(&ah, up(3, klondike.Hearts), klondike.Hearts))
	assert.False(t, klondike.CanGather(&ah, up(2, klondike.Diamonds), klondike.Hearts))
}

func TestSeededShufflerIsReproducible(t *testing.T) {
	a := klondike.NewDeck()
	b := klondike.NewDeck()
	klondike.SeededShuffler{Seed: 42}.Shuffle(a)
	klondike.SeededShuffler{Seed: 42}.Shuffle(b)
	assert.Equal(t, a, b)
	assert.NotEqual(t, klondike.NewDeck(), a)

	assert.IsType(t, klondike.CryptoShuffler{}, klondike.ShufflerFor(0))
	assert.Equal(t, klondike.SeededShuffler{Seed: 7}, klondike.ShufflerFor(7))
}
