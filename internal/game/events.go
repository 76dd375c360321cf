package game

import "github.com/youngZwiebelandtheGemuseBeat/klondike/internal/klondike"

// recorder turns View notifications into Events until they are drained.
type recorder struct {
	state  *klondike.State
	events []Event
}

var _ klondike.View = (*recorder)(nil)

func (r *recorder) emit(typ string, data map[string]interface{}) {
	r.events = append(r.events, Event{Type: typ, Data: data})
}

func (r *recorder) drain() []Event {
	ev := r.events
	r.events = nil
	return ev
}

func (r *recorder) InitGameBoard(columns [][]klondike.Card) {
	r.emit(EventBoardInit, map[string]interface{}{
		"columns": visibleColumns(columns),
		"stock":   r.state.StockSize(),
	})
}

func (r *recorder) OnRemainingDeckOfCardsRefilled() {
	r.emit(EventStockRefilled, map[string]interface{}{"stock": r.state.StockSize()})
}

func (r *recorder) OnNewCardRequested(card klondike.Card, isLastCard bool) {
	r.emit(EventCardDrawn, map[string]interface{}{"card": card, "last": isLastCard})
}

func (r *recorder) OnFlippedCardMoved(previousTopOfWaste *klondike.Card) {
	r.emit(EventWasteMoved, map[string]interface{}{"top": previousTopOfWaste})
}

func (r *recorder) OnCardGathered(card klondike.Card) {
	r.emit(EventCardGathered, map[string]interface{}{"card": card})
}

func (r *recorder) OnGatheredCardMoved(previousTopOfFoundation *klondike.Card, suit klondike.Suit) {
	r.emit(EventFoundationMoved, map[string]interface{}{"suit": suit, "top": previousTopOfFoundation})
}

// OnCardsRemovedFromColumn also reveals the uncovered card when it was
// just turned face-up, since the client has never seen it.
func (r *recorder) OnCardsRemovedFromColumn(column, count int, didFlip bool) {
	data := map[string]interface{}{"column": column, "count": count, "flipped": didFlip}
	if didFlip {
		if top, err := r.state.TopOfColumn(column); err == nil && top != nil {
			data["top"] = *top
		}
	}
	r.emit(EventColumnRemoved, data)
}

func (r *recorder) OnCardsAddedToColumn(column int, cards []klondike.Card) {
	r.emit(EventColumnAdded, map[string]interface{}{"column": column, "cards": cards})
}

func (r *recorder) OnGameFinished() {
	r.emit(EventGameFinished, nil)
}
