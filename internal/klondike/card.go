package klondike

import (
	"fmt"
	"strings"
)

// Color of a suit.
type Color int

const (
	Red Color = iota
	Black
)

func (c Color) String() string {
	if c == Red {
		return "red"
	}
	return "black"
}

// Suit is one of the four French suits. It doubles as the index of the
// suit's foundation.
type Suit int

const (
	Clubs Suit = iota
	Diamonds
	Spades
	Hearts
)

// NumSuits is the number of suits and therefore of foundations.
const NumSuits = 4

// Suits lists every suit in foundation order.
var Suits = [NumSuits]Suit{Clubs, Diamonds, Spades, Hearts}

var suitNames = [NumSuits]string{"clubs", "diamonds", "spades", "hearts"}

// Valid reports whether s is one of the four suits.
func (s Suit) Valid() bool { return s >= Clubs && s <= Hearts }

// Color returns Red for diamonds and hearts, Black for clubs and spades.
func (s Suit) Color() Color {
	if s == Diamonds || s == Hearts {
		return Red
	}
	return Black
}

func (s Suit) String() string {
	if !s.Valid() {
		return fmt.Sprintf("suit(%d)", int(s))
	}
	return suitNames[s]
}

// MarshalText encodes the suit as its lowercase name.
func (s Suit) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: suit %d", ErrInvalidArgument, int(s))
	}
	return []byte(suitNames[s]), nil
}

// UnmarshalText accepts the names produced by MarshalText.
func (s *Suit) UnmarshalText(b []byte) error {
	v, err := ParseSuit(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ParseSuit parses "hearts", "Hearts" or the single letter "h".
func ParseSuit(name string) (Suit, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, sn := range suitNames {
		if n == sn || (len(n) == 1 && n[0] == sn[0]) {
			return Suit(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown suit %q", ErrInvalidArgument, name)
}

// Rank runs from Ace (1) to King (13).
type Rank int

const (
	Ace   Rank = 1
	Jack  Rank = 11
	Queen Rank = 12
	King  Rank = 13
)

// RanksPerSuit is the number of cards a complete foundation holds.
const RanksPerSuit = 13

// Valid reports whether r is within Ace..King.
func (r Rank) Valid() bool { return r >= Ace && r <= King }

func (r Rank) String() string {
	switch r {
	case Ace:
		return "A"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	}
	return fmt.Sprintf("%d", int(r))
}

// Card is a playing card. Two cards are the same card when rank and suit
// match; FaceUp is presentation state that only ever goes from false to true.
type Card struct {
	Rank   Rank `json:"rank"`
	Suit   Suit `json:"suit"`
	FaceUp bool `json:"faceUp"`
}

// NewCard returns a face-down card.
func NewCard(r Rank, s Suit) Card { return Card{Rank: r, Suit: s} }

// Color is the color of the card's suit.
func (c Card) Color() Color { return c.Suit.Color() }

// Same reports whether c and o are the same card, ignoring orientation.
func (c Card) Same(o Card) bool { return c.Rank == o.Rank && c.Suit == o.Suit }

// Flipped returns the card face-up.
func (c Card) Flipped() Card {
	c.FaceUp = true
	return c
}

func (c Card) String() string {
	s := c.Rank.String() + strings.ToUpper(c.Suit.String()[:1])
	if !c.FaceUp {
		return "[" + s + "]"
	}
	return s
}

func (c Card) key() int { return int(c.Suit)*RanksPerSuit + int(c.Rank) - 1 }

// NewDeck returns the 52 canonical cards, face-down, ordered by suit then rank.
func NewDeck() []Card {
	deck := make([]Card, 0, NumSuits*RanksPerSuit)
	for _, s := range Suits {
		for r := Ace; r <= King; r++ {
			deck = append(deck, NewCard(r, s))
		}
	}
	return deck
}
