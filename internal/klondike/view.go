package klondike

// View receives the outcome of every committed mutation. Game calls it
// synchronously once the State has been updated; rejected moves produce no
// calls at all. Card slices and pointers passed to a View are copies.
type View interface {
	// InitGameBoard is called once by Game.Start with the dealt tableau.
	InitGameBoard(columns [][]Card)
	// OnRemainingDeckOfCardsRefilled follows a refill of the stock from the waste.
	OnRemainingDeckOfCardsRefilled()
	// OnNewCardRequested reports the card just drawn onto the waste and
	// whether it emptied the stock.
	OnNewCardRequested(card Card, isLastCard bool)
	// OnFlippedCardMoved reports the waste's new top after its top card left.
	OnFlippedCardMoved(previousTopOfWaste *Card)
	// OnCardGathered reports a card landing on a foundation.
	OnCardGathered(card Card)
	// OnGatheredCardMoved reports a foundation's new top after its top card left.
	OnGatheredCardMoved(previousTopOfFoundation *Card, suit Suit)
	// OnCardsRemovedFromColumn reports count cards leaving column and whether
	// the uncovered card was turned face-up.
	OnCardsRemovedFromColumn(column, count int, didFlip bool)
	// OnCardsAddedToColumn reports cards landing on column, bottom card first.
	OnCardsAddedToColumn(column int, cards []Card)
	// OnGameFinished is called when the last foundation is completed.
	OnGameFinished()
}

// NopView ignores every notification.
type NopView struct{}

func (NopView) InitGameBoard([][]Card)                  {}
func (NopView) OnRemainingDeckOfCardsRefilled()         {}
func (NopView) OnNewCardRequested(Card, bool)           {}
func (NopView) OnFlippedCardMoved(*Card)                {}
func (NopView) OnCardGathered(Card)                     {}
func (NopView) OnGatheredCardMoved(*Card, Suit)         {}
func (NopView) OnCardsRemovedFromColumn(int, int, bool) {}
func (NopView) OnCardsAddedToColumn(int, []Card)        {}
func (NopView) OnGameFinished()                         {}

// MultiView fans every notification out to each view in order.
type MultiView []View

func (m MultiView) InitGameBoard(columns [][]Card) {
	for _, v := range m {
		v.InitGameBoard(columns)
	}
}

func (m MultiView) OnRemainingDeckOfCardsRefilled() {
	for _, v := range m {
		v.OnRemainingDeckOfCardsRefilled()
	}
}

func (m MultiView) OnNewCardRequested(card Card, isLastCard bool) {
	for _, v := range m {
		v.OnNewCardRequested(card, isLastCard)
	}
}

func (m MultiView) OnFlippedCardMoved(previousTopOfWaste *Card) {
	for _, v := range m {
		v.OnFlippedCardMoved(previousTopOfWaste)
	}
}

func (m MultiView) OnCardGathered(card Card) {
	for _, v := range m {
		v.OnCardGathered(card)
	}
}

func (m MultiView) OnGatheredCardMoved(previousTopOfFoundation *Card, suit Suit) {
	for _, v := range m {
		v.OnGatheredCardMoved(previousTopOfFoundation, suit)
	}
}

func (m MultiView) OnCardsRemovedFromColumn(column, count int, didFlip bool) {
	for _, v := range m {
		v.OnCardsRemovedFromColumn(column, count, didFlip)
	}
}

func (m MultiView) OnCardsAddedToColumn(column int, cards []Card) {
	for _, v := range m {
		v.OnCardsAddedToColumn(column, cards)
	}
}

func (m MultiView) OnGameFinished() {
	for _, v := range m {
		v.OnGameFinished()
	}
}
