package klondike

import "fmt"

// HintKind tells what a Hint asks the player to do.
type HintKind int

const (
	HintDraw HintKind = iota
	HintToFoundation
	HintToColumn
)

func (k HintKind) String() string {
	switch k {
	case HintToFoundation:
		return "to_foundation"
	case HintToColumn:
		return "to_column"
	}
	return "draw"
}

// Hint is one legal move in the current position. From is nil for HintDraw.
type Hint struct {
	Kind   HintKind
	From   Movement
	Column int
	Suit   Suit
}

func (h Hint) String() string {
	switch h.Kind {
	case HintToFoundation:
		return fmt.Sprintf("%v to %s foundation", h.From, h.Suit)
	case HintToColumn:
		return fmt.Sprintf("%v to column %d", h.From, h.Column)
	}
	return "draw"
}

// Hints lists every move the engine would accept right now, foundation
// moves first. Moving a King that already sits at the bottom of a column to
// another empty column is legal but left out.
func (g *Game) Hints() []Hint {
	s := g.state
	var hints []Hint

	gather := func(m Movement) {
		c := m.SelectedCard()
		if top, _ := s.TopOfFoundation(c.Suit); CanGather(top, c, c.Suit) {
			hints = append(hints, Hint{Kind: HintToFoundation, From: m, Suit: c.Suit})
		}
	}
	stack := func(m Movement, skip int) {
		c := m.SelectedCard()
		for t := 0; t < NumColumns; t++ {
			if t == skip {
				continue
			}
			if fixed, _ := s.TopOfColumn(t); CanStack(fixed, c) {
				hints = append(hints, Hint{Kind: HintToColumn, From: m, Column: t})
			}
		}
	}

	for col := 0; col < NumColumns; col++ {
		if n := s.ColumnSize(col); n > 0 {
			c, _ := s.CardAt(col, n-1)
			gather(FromColumn{Card: c, Column: col, Position: n - 1})
		}
	}
	if w := s.TopOfWaste(); w != nil {
		gather(FromWaste{Card: *w})
	}

	for col := 0; col < NumColumns; col++ {
		for pos := 0; pos < s.ColumnSize(col); pos++ {
			c, _ := s.CardAt(col, pos)
			if !c.FaceUp || (pos == 0 && c.Rank == King) {
				continue
			}
			stack(FromColumn{Card: c, Column: col, Position: pos}, col)
		}
	}
	if w := s.TopOfWaste(); w != nil {
		stack(FromWaste{Card: *w}, -1)
	}
	for _, suit := range Suits {
		if top, _ := s.TopOfFoundation(suit); top != nil {
			stack(FromFoundation{Card: *top}, -1)
		}
	}

	if s.HasStock() || s.WasteSize() > 0 {
		hints = append(hints, Hint{Kind: HintDraw})
	}
	return hints
}

// Apply plays a hint through the regular pickup/drop path.
func (g *Game) Apply(h Hint) (bool, error) {
	if h.Kind == HintDraw {
		return true, g.RequestNewCard()
	}
	var err error
	switch m := h.From.(type) {
	case FromColumn:
		err = g.PickupFromColumn(m.Column, m.Position)
	case FromWaste:
		err = g.PickupFromWaste()
	case FromFoundation:
		err = g.PickupFromFoundation(m.Card.Suit)
	default:
		return false, fmt.Errorf("%w: hint without a source", ErrInvalidArgument)
	}
	if err != nil {
		return false, err
	}
	if h.Kind == HintToFoundation {
		return g.DropOnFoundation(h.Suit)
	}
	return g.DropOnColumn(h.Column)
}

// AutoGather keeps moving column and waste cards onto the foundations until
// none fits and returns how many cards it moved.
func (g *Game) AutoGather() (int, error) {
	n := 0
	for {
		var next *Hint
		for _, h := range g.Hints() {
			if h.Kind == HintToFoundation {
				h := h
				next = &h
				break
			}
		}
		if next == nil {
			return n, nil
		}
		ok, err := g.Apply(*next)
		if err != nil {
			return n, err
		}
		if !ok {
			return n, fmt.Errorf("%w: hint %v was rejected", ErrPreconditionViolated, *next)
		}
		n++
	}
}
