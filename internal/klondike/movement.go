package klondike

import "fmt"

// Movement is a picked-up card waiting for a drop target, together with
// where it was picked up from.
type Movement interface {
	SelectedCard() Card
	isMovement()
}

// FromColumn selects the card at Position in Column and every card above it.
type FromColumn struct {
	Card     Card
	Column   int
	Position int
}

// FromWaste selects the top waste card.
type FromWaste struct {
	Card Card
}

// FromFoundation selects the top card of a foundation.
type FromFoundation struct {
	Card Card
}

func (m FromColumn) SelectedCard() Card     { return m.Card }
func (m FromWaste) SelectedCard() Card      { return m.Card }
func (m FromFoundation) SelectedCard() Card { return m.Card }

func (FromColumn) isMovement()     {}
func (FromWaste) isMovement()      {}
func (FromFoundation) isMovement() {}

func (m FromColumn) String() string {
	return fmt.Sprintf("%s from column %d position %d", m.Card, m.Column, m.Position)
}

func (m FromWaste) String() string { return m.Card.String() + " from waste" }

func (m FromFoundation) String() string {
	return fmt.Sprintf("%s from %s foundation", m.Card, m.Card.Suit)
}

// Phase is the state of the pickup/drop protocol.
type Phase int

const (
	// Idle means no card is picked up.
	Idle Phase = iota
	// Armed means a Movement is held and the next drop will resolve it.
	Armed
)

func (p Phase) String() string {
	if p == Armed {
		return "armed"
	}
	return "idle"
}
