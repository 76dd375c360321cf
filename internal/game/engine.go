package game

import "github.com/youngZwiebelandtheGemuseBeat/klondike/internal/klondike"

// Move is a player action as it arrives over the wire.
type Move struct {
	Type string                 `json:"type"`
	Data map[string]interface{} `json:"data,omitempty"`
}

// Event is one notification produced by a move.
type Event struct {
	Type string                 `json:"type"`
	Data map[string]interface{} `json:"data,omitempty"`
}

// Move types.
const (
	MoveDraw             = "draw"
	MovePickupColumn     = "pickup_column"
	MovePickupWaste      = "pickup_waste"
	MovePickupFoundation = "pickup_foundation"
	MoveDropColumn       = "drop_column"
	MoveDropFoundation   = "drop_foundation"
	MoveAutoGather       = "auto_gather"
)

// Event types.
const (
	EventBoardInit       = "board_init"
	EventStockRefilled   = "stock_refilled"
	EventCardDrawn       = "card_drawn"
	EventWasteMoved      = "waste_moved"
	EventCardGathered    = "card_gathered"
	EventFoundationMoved = "foundation_moved"
	EventColumnRemoved   = "column_removed"
	EventColumnAdded     = "column_added"
	EventGameFinished    = "game_finished"
	EventPickedUp        = "picked_up"
	EventRejected        = "rejected"
)

// PublicState is what a client may see of a game: face-down cards are
// hidden and the stock is reduced to its size.
type PublicState struct {
	ID          string                   `json:"id"`
	Seed        uint64                   `json:"seed,omitempty,string"`
	Stock       int                      `json:"stock"`
	Waste       []klondike.Card          `json:"waste"`
	Foundations map[string]klondike.Card `json:"foundations"`
	Columns     [][]VisibleCard          `json:"columns"`
	Phase       string                   `json:"phase"`
	Finished    bool                     `json:"finished"`
}

// VisibleCard is a column card as a client sees it.
type VisibleCard struct {
	Hidden bool           `json:"hidden,omitempty"`
	Card   *klondike.Card `json:"card,omitempty"`
}

// Engine is a single-player game driven by Moves.
type Engine interface {
	ApplyMove(m Move) (events []Event, err error)
	PublicState() PublicState
	LegalMoves() []Move
	IsFinished() bool
}
