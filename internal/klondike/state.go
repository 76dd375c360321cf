package klondike

import (
	"errors"
	"fmt"
)

// NumColumns is the number of tableau columns.
const NumColumns = 7

// Layout is a full description of a position. Slices are ordered bottom to
// top, so the last element of Stock is the next card drawn and the last
// element of Waste is the playable waste card.
type Layout struct {
	Stock       []Card             `json:"stock"`
	Waste       []Card             `json:"waste"`
	Foundations [NumSuits][]Card   `json:"foundations"`
	Columns     [NumColumns][]Card `json:"columns"`
}

// State owns every card container of a game. It applies primitive container
// operations only; whether a move is legal is decided by Game.
type State struct {
	stock       []Card
	waste       []Card
	foundations [NumSuits][]Card
	columns     [NumColumns][]Card
}

// Deal shuffles a fresh deck and deals it: column i receives i+1 cards, all
// face-down except the last. The rest of the deck becomes the stock.
func Deal(sh Shuffler) *State {
	deck := NewDeck()
	sh.Shuffle(deck)

	s := &State{}
	for i := 0; i < NumColumns; i++ {
		for j := 0; j <= i; j++ {
			c := deck[len(deck)-1]
			deck = deck[:len(deck)-1]
			if j == i {
				c = c.Flipped()
			}
			s.columns[i] = append(s.columns[i], c)
		}
	}
	s.stock = deck
	return s
}

// NewState builds a state from an explicit layout. Stock cards are turned
// face-down and waste and foundation cards face-up; column cards keep their
// orientation. The result must satisfy CheckInvariants.
func NewState(l Layout) (*State, error) {
	s := &State{}
	for _, c := range l.Stock {
		c.FaceUp = false
		s.stock = append(s.stock, c)
	}
	for _, c := range l.Waste {
		s.waste = append(s.waste, c.Flipped())
	}
	for i, f := range l.Foundations {
		for _, c := range f {
			s.foundations[i] = append(s.foundations[i], c.Flipped())
		}
	}
	for i, col := range l.Columns {
		s.columns[i] = append([]Card(nil), col...)
	}
	if err := s.CheckInvariants(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *State) checkColumn(col int) error {
	if col < 0 || col >= NumColumns {
		return fmt.Errorf("%w: column %d out of range", ErrInvalidArgument, col)
	}
	return nil
}

func checkSuit(suit Suit) error {
	if !suit.Valid() {
		return fmt.Errorf("%w: suit %d out of range", ErrInvalidArgument, int(suit))
	}
	return nil
}

func top(cards []Card) *Card {
	if len(cards) == 0 {
		return nil
	}
	c := cards[len(cards)-1]
	return &c
}

// HasStock reports whether the stock holds at least one card.
func (s *State) HasStock() bool { return len(s.stock) > 0 }

// DrawFromStock turns the top stock card face-up and moves it onto the waste.
func (s *State) DrawFromStock() (Card, error) {
	if len(s.stock) == 0 {
		return Card{}, ErrEmptyStock
	}
	c := s.stock[len(s.stock)-1].Flipped()
	s.stock = s.stock[:len(s.stock)-1]
	s.waste = append(s.waste, c)
	return c, nil
}

// RefillStockFromWaste moves the whole waste back to the stock, face-down.
// The waste keeps its order, so the last card drawn is the next one drawn
// again. The stock must be empty.
func (s *State) RefillStockFromWaste() error {
	if len(s.stock) > 0 {
		return fmt.Errorf("%w: refill with %d cards left in stock", ErrPreconditionViolated, len(s.stock))
	}
	for _, c := range s.waste {
		c.FaceUp = false
		s.stock = append(s.stock, c)
	}
	s.waste = nil
	return nil
}

// TopOfWaste returns the playable waste card, or nil.
func (s *State) TopOfWaste() *Card { return top(s.waste) }

// PopTopOfWaste removes the top waste card and returns the new top.
func (s *State) PopTopOfWaste() (*Card, error) {
	if len(s.waste) == 0 {
		return nil, fmt.Errorf("%w: waste is empty", ErrPreconditionViolated)
	}
	s.waste = s.waste[:len(s.waste)-1]
	return top(s.waste), nil
}

// TopOfFoundation returns the highest card on the suit's foundation, or nil.
func (s *State) TopOfFoundation(suit Suit) (*Card, error) {
	if err := checkSuit(suit); err != nil {
		return nil, err
	}
	return top(s.foundations[suit]), nil
}

// PushToFoundation appends c to its suit's foundation without checking rank.
func (s *State) PushToFoundation(c Card) error {
	if err := checkSuit(c.Suit); err != nil {
		return err
	}
	s.foundations[c.Suit] = append(s.foundations[c.Suit], c.Flipped())
	return nil
}

// PopTopOfFoundation removes the top card of the suit's foundation and
// returns the new top.
func (s *State) PopTopOfFoundation(suit Suit) (*Card, error) {
	if err := checkSuit(suit); err != nil {
		return nil, err
	}
	f := s.foundations[suit]
	if len(f) == 0 {
		return nil, fmt.Errorf("%w: %s foundation is empty", ErrPreconditionViolated, suit)
	}
	s.foundations[suit] = f[:len(f)-1]
	return top(s.foundations[suit]), nil
}

// CardAt returns the card at pos in col, counting from the bottom.
func (s *State) CardAt(col, pos int) (Card, error) {
	if err := s.checkColumn(col); err != nil {
		return Card{}, err
	}
	if pos < 0 || pos >= len(s.columns[col]) {
		return Card{}, fmt.Errorf("%w: position %d out of range in column %d (size %d)",
			ErrInvalidArgument, pos, col, len(s.columns[col]))
	}
	return s.columns[col][pos], nil
}

// TopOfColumn returns the top card of col, or nil when the column is empty.
func (s *State) TopOfColumn(col int) (*Card, error) {
	if err := s.checkColumn(col); err != nil {
		return nil, err
	}
	return top(s.columns[col]), nil
}

// PopRunFromColumn removes and returns the cards from position from up to
// the top of col, bottom card first.
func (s *State) PopRunFromColumn(col, from int) ([]Card, error) {
	if _, err := s.CardAt(col, from); err != nil {
		return nil, err
	}
	run := append([]Card(nil), s.columns[col][from:]...)
	s.columns[col] = s.columns[col][:from]
	return run, nil
}

// AppendToColumn puts cards on top of col in the given order.
func (s *State) AppendToColumn(col int, cards ...Card) error {
	if err := s.checkColumn(col); err != nil {
		return err
	}
	s.columns[col] = append(s.columns[col], cards...)
	return nil
}

// PopTopOfColumn removes the top card of col and returns the new top.
func (s *State) PopTopOfColumn(col int) (*Card, error) {
	if err := s.checkColumn(col); err != nil {
		return nil, err
	}
	c := s.columns[col]
	if len(c) == 0 {
		return nil, fmt.Errorf("%w: column %d is empty", ErrPreconditionViolated, col)
	}
	s.columns[col] = c[:len(c)-1]
	return top(s.columns[col]), nil
}

// FlipTopOfColumn turns the top card of col face-up. It reports whether the
// card was face-down; an empty column is left alone.
func (s *State) FlipTopOfColumn(col int) (bool, error) {
	if err := s.checkColumn(col); err != nil {
		return false, err
	}
	c := s.columns[col]
	if len(c) == 0 || c[len(c)-1].FaceUp {
		return false, nil
	}
	c[len(c)-1].FaceUp = true
	return true, nil
}

// StockSize returns the number of cards left to draw.
func (s *State) StockSize() int { return len(s.stock) }

// WasteSize returns the number of cards on the waste.
func (s *State) WasteSize() int { return len(s.waste) }

// FoundationSize returns the number of cards on the suit's foundation.
func (s *State) FoundationSize(suit Suit) int {
	if !suit.Valid() {
		return 0
	}
	return len(s.foundations[suit])
}

// ColumnSize returns the number of cards in col, or 0 when out of range.
func (s *State) ColumnSize(col int) int {
	if col < 0 || col >= NumColumns {
		return 0
	}
	return len(s.columns[col])
}

// Columns returns a copy of the tableau.
func (s *State) Columns() [][]Card {
	out := make([][]Card, NumColumns)
	for i, c := range s.columns {
		out[i] = append([]Card{}, c...)
	}
	return out
}

// Snapshot returns a deep copy of the position.
func (s *State) Snapshot() Layout {
	var l Layout
	l.Stock = append([]Card{}, s.stock...)
	l.Waste = append([]Card{}, s.waste...)
	for i := range s.foundations {
		l.Foundations[i] = append([]Card{}, s.foundations[i]...)
	}
	for i := range s.columns {
		l.Columns[i] = append([]Card{}, s.columns[i]...)
	}
	return l
}

// IsWon reports whether every foundation is complete.
func (s *State) IsWon() bool {
	for _, f := range s.foundations {
		if len(f) != RanksPerSuit {
			return false
		}
	}
	return true
}

// CheckInvariants verifies that the position is one the engine can reach:
// every canonical card appears exactly once, the stock is face-down and the
// waste face-up, each foundation holds Ace..N of its suit, and each column
// is a face-down prefix followed by a face-up descending run of alternating
// colors ending at the top.
func (s *State) CheckInvariants() error {
	var seen [NumSuits * RanksPerSuit]bool
	var errs []error
	count := func(where string, c Card) {
		if !c.Suit.Valid() || !c.Rank.Valid() {
			errs = append(errs, fmt.Errorf("%s: invalid card %d/%d", where, int(c.Rank), int(c.Suit)))
			return
		}
		if seen[c.key()] {
			errs = append(errs, fmt.Errorf("%s: duplicate %s", where, c.Flipped()))
		}
		seen[c.key()] = true
	}

	for _, c := range s.stock {
		count("stock", c)
		if c.FaceUp {
			errs = append(errs, fmt.Errorf("stock: %s is face-up", c))
		}
	}
	for _, c := range s.waste {
		count("waste", c)
		if !c.FaceUp {
			errs = append(errs, fmt.Errorf("waste: %s is face-down", c.Flipped()))
		}
	}
	for suit, f := range s.foundations {
		for i, c := range f {
			count("foundation", c)
			if c.Suit != Suit(suit) || c.Rank != Rank(i+1) {
				errs = append(errs, fmt.Errorf("foundation %s: %s at height %d", Suit(suit), c, i+1))
			}
		}
	}
	for col, cards := range s.columns {
		where := fmt.Sprintf("column %d", col)
		for i, c := range cards {
			count(where, c)
			if i == 0 {
				continue
			}
			prev := cards[i-1]
			switch {
			case prev.FaceUp && !c.FaceUp:
				errs = append(errs, fmt.Errorf("%s: face-down %s above face-up %s", where, c.Flipped(), prev))
			case prev.FaceUp && c.FaceUp && !CanStack(&prev, c):
				errs = append(errs, fmt.Errorf("%s: %s does not stack on %s", where, c, prev))
			}
		}
		if n := len(cards); n > 0 && !cards[n-1].FaceUp {
			errs = append(errs, fmt.Errorf("%s: top card is face-down", where))
		}
	}

	for k, ok := range seen {
		if !ok {
			c := Card{Rank: Rank(k%RanksPerSuit + 1), Suit: Suit(k / RanksPerSuit), FaceUp: true}
			errs = append(errs, fmt.Errorf("missing %s", c))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, errors.Join(errs...))
	}
	return nil
}
