package klondike

import "fmt"

// Game runs the pickup/drop protocol against a State and reports every
// committed change to its View. It is not safe for concurrent use; callers
// issue one operation at a time.
//
// A drop always resolves the pending pickup. Illegal drops are rejected
// silently: nothing changes and the View hears nothing. Errors are returned
// only for calls that break the contract, such as an out-of-range column.
type Game struct {
	state    *State
	view     View
	phase    Phase
	movement Movement
}

// NewGame wires a state to a view. A nil view is replaced by NopView.
func NewGame(state *State, view View) *Game {
	if view == nil {
		view = NopView{}
	}
	return &Game{state: state, view: view}
}

// Start sends the initial tableau to the view.
func (g *Game) Start() {
	g.view.InitGameBoard(g.state.Columns())
}

// State exposes the underlying store for read access.
func (g *Game) State() *State { return g.state }

// Phase reports whether a card is currently picked up.
func (g *Game) Phase() Phase { return g.phase }

// Movement returns the pending pickup, or nil when Idle.
func (g *Game) Movement() Movement { return g.movement }

// IsWon reports whether all foundations are complete.
func (g *Game) IsWon() bool { return g.state.IsWon() }

func (g *Game) arm(m Movement) {
	g.phase = Armed
	g.movement = m
}

func (g *Game) disarm() Movement {
	m := g.movement
	g.phase = Idle
	g.movement = nil
	return m
}

// RequestNewCard draws the next stock card onto the waste, or turns the
// waste back into the stock when the stock is exhausted. It does not touch
// a pending pickup.
func (g *Game) RequestNewCard() error {
	if g.state.HasStock() {
		c, err := g.state.DrawFromStock()
		if err != nil {
			return err
		}
		g.view.OnNewCardRequested(c, !g.state.HasStock())
		return nil
	}
	if err := g.state.RefillStockFromWaste(); err != nil {
		return err
	}
	g.view.OnRemainingDeckOfCardsRefilled()
	return nil
}

// PickupFromColumn selects the card at pos in col together with every card
// above it. A previous pickup is replaced.
func (g *Game) PickupFromColumn(col, pos int) error {
	g.disarm()
	c, err := g.state.CardAt(col, pos)
	if err != nil {
		return fmt.Errorf("pickup from column: %w", err)
	}
	g.arm(FromColumn{Card: c, Column: col, Position: pos})
	return nil
}

// PickupFromWaste selects the top waste card.
func (g *Game) PickupFromWaste() error {
	g.disarm()
	c := g.state.TopOfWaste()
	if c == nil {
		return fmt.Errorf("pickup from waste: %w: waste is empty", ErrPreconditionViolated)
	}
	g.arm(FromWaste{Card: *c})
	return nil
}

// PickupFromFoundation selects the top card of the suit's foundation.
func (g *Game) PickupFromFoundation(suit Suit) error {
	g.disarm()
	c, err := g.state.TopOfFoundation(suit)
	if err != nil {
		return fmt.Errorf("pickup from foundation: %w", err)
	}
	if c == nil {
		return fmt.Errorf("pickup from foundation: %w: %s foundation is empty", ErrPreconditionViolated, suit)
	}
	g.arm(FromFoundation{Card: *c})
	return nil
}

// resolve returns the selected card as it currently lies in the state. It
// fails when the card has left the place it was picked up from.
func (g *Game) resolve(m Movement) (Card, bool) {
	var cur *Card
	switch m := m.(type) {
	case FromColumn:
		c, err := g.state.CardAt(m.Column, m.Position)
		if err != nil {
			return Card{}, false
		}
		cur = &c
	case FromWaste:
		cur = g.state.TopOfWaste()
	case FromFoundation:
		cur, _ = g.state.TopOfFoundation(m.Card.Suit)
	}
	if cur == nil || !cur.Same(m.SelectedCard()) {
		return Card{}, false
	}
	return *cur, true
}

// DropOnFoundation resolves the pending pickup onto the suit's foundation.
// It reports whether the card was moved.
func (g *Game) DropOnFoundation(suit Suit) (bool, error) {
	m := g.disarm()
	if err := checkSuit(suit); err != nil {
		return false, fmt.Errorf("drop on foundation: %w", err)
	}
	if m == nil {
		return false, nil
	}
	card, ok := g.resolve(m)
	if !ok || !card.FaceUp {
		return false, nil
	}
	top, _ := g.state.TopOfFoundation(suit)
	if !CanGather(top, card, suit) {
		return false, nil
	}
	switch m := m.(type) {
	case FromColumn:
		if m.Position != g.state.ColumnSize(m.Column)-1 {
			return false, nil
		}
	case FromFoundation:
		return false, nil
	}

	if err := g.state.PushToFoundation(card); err != nil {
		return false, err
	}
	switch m := m.(type) {
	case FromColumn:
		if _, err := g.state.PopTopOfColumn(m.Column); err != nil {
			return false, err
		}
		flipped, err := g.state.FlipTopOfColumn(m.Column)
		if err != nil {
			return false, err
		}
		g.view.OnCardsRemovedFromColumn(m.Column, 1, flipped)
	case FromWaste:
		prev, err := g.state.PopTopOfWaste()
		if err != nil {
			return false, err
		}
		g.view.OnFlippedCardMoved(prev)
	}
	g.view.OnCardGathered(card)
	if g.state.IsWon() {
		g.view.OnGameFinished()
	}
	return true, nil
}

// DropOnColumn resolves the pending pickup onto col. A pickup from a column
// moves the whole run above the picked card. It reports whether anything
// was moved.
func (g *Game) DropOnColumn(col int) (bool, error) {
	m := g.disarm()
	if err := g.state.checkColumn(col); err != nil {
		return false, fmt.Errorf("drop on column: %w", err)
	}
	if m == nil {
		return false, nil
	}
	card, ok := g.resolve(m)
	if !ok || !card.FaceUp {
		return false, nil
	}
	fixed, _ := g.state.TopOfColumn(col)
	if !CanStack(fixed, card) {
		return false, nil
	}

	switch m := m.(type) {
	case FromColumn:
		if m.Column == col {
			return false, nil
		}
		run, err := g.state.PopRunFromColumn(m.Column, m.Position)
		if err != nil {
			return false, err
		}
		if err := g.state.AppendToColumn(col, run...); err != nil {
			return false, err
		}
		flipped, err := g.state.FlipTopOfColumn(m.Column)
		if err != nil {
			return false, err
		}
		g.view.OnCardsAddedToColumn(col, run)
		g.view.OnCardsRemovedFromColumn(m.Column, len(run), flipped)
	case FromWaste:
		if err := g.state.AppendToColumn(col, card); err != nil {
			return false, err
		}
		prev, err := g.state.PopTopOfWaste()
		if err != nil {
			return false, err
		}
		g.view.OnCardsAddedToColumn(col, []Card{card})
		g.view.OnFlippedCardMoved(prev)
	case FromFoundation:
		if err := g.state.AppendToColumn(col, card); err != nil {
			return false, err
		}
		prev, err := g.state.PopTopOfFoundation(card.Suit)
		if err != nil {
			return false, err
		}
		g.view.OnCardsAddedToColumn(col, []Card{card})
		g.view.OnGatheredCardMoved(prev, card.Suit)
	}
	return true, nil
}
