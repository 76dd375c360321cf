package script

import (
	"fmt"
	"io"
	"strings"

	"github.com/youngZwiebelandtheGemuseBeat/klondike/internal/klondike"
)

// Printer is a klondike.View that writes each notification as a line of
// text, e.g. "gathered AH" or "removed column=2 count=1 flipped=true".
type Printer struct {
	w io.Writer
}

var _ klondike.View = (*Printer)(nil)

// NewPrinter returns a Printer writing to w.
func NewPrinter(w io.Writer) *Printer { return &Printer{w: w} }

func (p *Printer) printf(format string, args ...any) {
	fmt.Fprintf(p.w, format+"\n", args...)
}

func orNone(c *klondike.Card) string {
	if c == nil {
		return "-"
	}
	return c.String()
}

// FormatColumns renders a tableau one column per line, bottom card first.
func FormatColumns(columns [][]klondike.Card) string {
	var b strings.Builder
	for i, col := range columns {
		fmt.Fprintf(&b, "%d:", i)
		for _, c := range col {
			b.WriteString(" " + c.String())
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (p *Printer) InitGameBoard(columns [][]klondike.Card) {
	fmt.Fprint(p.w, FormatColumns(columns))
}

func (p *Printer) OnRemainingDeckOfCardsRefilled() { p.printf("refilled") }

func (p *Printer) OnNewCardRequested(card klondike.Card, isLastCard bool) {
	p.printf("drawn %s last=%t", card, isLastCard)
}

func (p *Printer) OnFlippedCardMoved(previousTopOfWaste *klondike.Card) {
	p.printf("waste top=%s", orNone(previousTopOfWaste))
}

func (p *Printer) OnCardGathered(card klondike.Card) { p.printf("gathered %s", card) }

func (p *Printer) OnGatheredCardMoved(previousTopOfFoundation *klondike.Card, suit klondike.Suit) {
	p.printf("foundation %s top=%s", suit, orNone(previousTopOfFoundation))
}

func (p *Printer) OnCardsRemovedFromColumn(column, count int, didFlip bool) {
	p.printf("removed column=%d count=%d flipped=%t", column, count, didFlip)
}

func (p *Printer) OnCardsAddedToColumn(column int, cards []klondike.Card) {
	p.printf("added column=%d cards=%v", column, cards)
}

func (p *Printer) OnGameFinished() { p.printf("finished") }
