package klondike

// CanStack reports whether moved may be placed on a column whose top card is
// fixed: a King on an empty column, otherwise one rank lower and the
// opposite color.
func CanStack(fixed *Card, moved Card) bool {
	if fixed == nil {
		return moved.Rank == King
	}
	return fixed.Color() != moved.Color() && fixed.Rank == moved.Rank+1
}

// CanGather reports whether moved may be placed on the foundation of suit
// whose top card is top: same suit, and an Ace on an empty foundation or
// one rank higher than top.
func CanGather(top *Card, moved Card, suit Suit) bool {
	if moved.Suit != suit {
		return false
	}
	if top == nil {
		return moved.Rank == Ace
	}
	return moved.Rank == top.Rank+1
}
