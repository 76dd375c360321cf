package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/youngZwiebelandtheGemuseBeat/klondike/internal/klondike"
)

// MovePlay is a pickup and a drop sent as one move. LegalMoves reports
// every legal move in this form.
const MovePlay = "play"

// ErrUnknownMove is returned for a Move type the session does not know.
var ErrUnknownMove = errors.New("unknown move type")

// Session is one Klondike game behind the Engine interface. Like the
// klondike.Game it wraps, it must not be used from several goroutines at once.
type Session struct {
	id      string
	seed    uint64
	created time.Time
	game    *klondike.Game
	events  *recorder
}

var _ Engine = (*Session)(nil)

// NewSession deals a new game. A zero seed deals a crypto-shuffled deck;
// any other seed always deals the same game.
func NewSession(seed uint64) *Session {
	return NewSessionFromState(klondike.Deal(klondike.ShufflerFor(seed)), seed)
}

// NewSessionFromState wraps an existing position.
func NewSessionFromState(st *klondike.State, seed uint64) *Session {
	rec := &recorder{state: st}
	return &Session{
		id:      uuid.NewString(),
		seed:    seed,
		created: time.Now(),
		game:    klondike.NewGame(st, rec),
		events:  rec,
	}
}

func (s *Session) ID() string           { return s.id }
func (s *Session) Seed() uint64         { return s.seed }
func (s *Session) Created() time.Time   { return s.created }
func (s *Session) Game() *klondike.Game { return s.game }

// Start returns the board_init event for the dealt tableau.
func (s *Session) Start() []Event {
	s.game.Start()
	return s.events.drain()
}

// IsFinished reports whether every card is on a foundation.
func (s *Session) IsFinished() bool { return s.game.IsWon() }

// ApplyMove runs m against the game and returns the notifications it
// produced. A drop the rules do not allow yields a single rejected event.
// Errors are reserved for malformed moves and contract violations; events
// for anything committed before the error are still returned.
func (s *Session) ApplyMove(m Move) ([]Event, error) {
	s.events.drain()
	if err := s.apply(m); err != nil {
		return s.events.drain(), fmt.Errorf("%s: %w", m.Type, err)
	}
	return s.events.drain(), nil
}

func (s *Session) apply(m Move) error {
	g := s.game
	switch m.Type {
	case MoveDraw:
		return g.RequestNewCard()

	case MovePickupColumn:
		col, err := intArg(m.Data, "column")
		if err != nil {
			return err
		}
		pos, err := intArg(m.Data, "position")
		if err != nil {
			return err
		}
		return s.pickedUp(g.PickupFromColumn(col, pos))

	case MovePickupWaste:
		return s.pickedUp(g.PickupFromWaste())

	case MovePickupFoundation:
		suit, err := suitArg(m.Data, "suit")
		if err != nil {
			return err
		}
		return s.pickedUp(g.PickupFromFoundation(suit))

	case MoveDropColumn:
		col, err := intArg(m.Data, "column")
		if err != nil {
			return err
		}
		return s.dropped(g.DropOnColumn(col))

	case MoveDropFoundation:
		suit, err := suitArg(m.Data, "suit")
		if err != nil {
			return err
		}
		return s.dropped(g.DropOnFoundation(suit))

	case MoveAutoGather:
		_, err := g.AutoGather()
		return err

	case MovePlay:
		return s.play(m.Data)
	}
	return fmt.Errorf("%w %q", ErrUnknownMove, m.Type)
}

func (s *Session) pickedUp(err error) error {
	if err != nil {
		return err
	}
	s.events.emit(EventPickedUp, map[string]interface{}{"card": s.game.Movement().SelectedCard()})
	return nil
}

func (s *Session) dropped(ok bool, err error) error {
	if err != nil {
		return err
	}
	if !ok {
		s.events.emit(EventRejected, nil)
	}
	return nil
}

func (s *Session) play(d map[string]interface{}) error {
	from, _ := d["from"].(string)
	to, _ := d["to"].(string)

	var pickup Move
	switch from {
	case "column":
		pickup = Move{Type: MovePickupColumn, Data: map[string]interface{}{"column": d["column"], "position": d["position"]}}
	case "waste":
		pickup = Move{Type: MovePickupWaste}
	case "foundation":
		pickup = Move{Type: MovePickupFoundation, Data: map[string]interface{}{"suit": d["suit"]}}
	default:
		return fmt.Errorf("%w: play from %q", klondike.ErrInvalidArgument, from)
	}

	var drop Move
	switch to {
	case "column":
		drop = Move{Type: MoveDropColumn, Data: map[string]interface{}{"column": d["target"]}}
	case "foundation":
		drop = Move{Type: MoveDropFoundation, Data: map[string]interface{}{"suit": d["target"]}}
	default:
		return fmt.Errorf("%w: play to %q", klondike.ErrInvalidArgument, to)
	}

	if err := s.apply(pickup); err != nil {
		return err
	}
	return s.apply(drop)
}

// LegalMoves lists every move the game would accept now, as play moves
// followed by draw when the stock or waste has cards.
func (s *Session) LegalMoves() []Move {
	var out []Move
	for _, h := range s.game.Hints() {
		if h.Kind == klondike.HintDraw {
			out = append(out, Move{Type: MoveDraw})
			continue
		}
		d := map[string]interface{}{}
		switch m := h.From.(type) {
		case klondike.FromColumn:
			d["from"], d["column"], d["position"] = "column", m.Column, m.Position
		case klondike.FromWaste:
			d["from"] = "waste"
		case klondike.FromFoundation:
			d["from"], d["suit"] = "foundation", m.Card.Suit.String()
		}
		if h.Kind == klondike.HintToFoundation {
			d["to"], d["target"] = "foundation", h.Suit.String()
		} else {
			d["to"], d["target"] = "column", h.Column
		}
		out = append(out, Move{Type: MovePlay, Data: d})
	}
	return out
}

// PublicState returns the client view of the game.
func (s *Session) PublicState() PublicState {
	st := s.game.State()
	snap := st.Snapshot()
	ps := PublicState{
		ID:          s.id,
		Seed:        s.seed,
		Stock:       len(snap.Stock),
		Waste:       snap.Waste,
		Foundations: map[string]klondike.Card{},
		Columns:     visibleColumns(snap.Columns[:]),
		Phase:       s.game.Phase().String(),
		Finished:    st.IsWon(),
	}
	for _, suit := range klondike.Suits {
		if f := snap.Foundations[suit]; len(f) > 0 {
			ps.Foundations[suit.String()] = f[len(f)-1]
		}
	}
	return ps
}

func visibleColumns(cols [][]klondike.Card) [][]VisibleCard {
	out := make([][]VisibleCard, len(cols))
	for i, col := range cols {
		out[i] = make([]VisibleCard, len(col))
		for j, c := range col {
			if !c.FaceUp {
				out[i][j] = VisibleCard{Hidden: true}
				continue
			}
			c := c
			out[i][j] = VisibleCard{Card: &c}
		}
	}
	return out
}

// intArg reads an integer from decoded JSON (float64) or Go callers (int).
func intArg(d map[string]interface{}, key string) (int, error) {
	switch v := d[key].(type) {
	case float64:
		if v != float64(int(v)) {
			return 0, fmt.Errorf("%w: %s is not an integer", klondike.ErrInvalidArgument, key)
		}
		return int(v), nil
	case int:
		return v, nil
	case int64:
		return int(v), nil
	}
	return 0, fmt.Errorf("%w: missing %s", klondike.ErrInvalidArgument, key)
}

func suitArg(d map[string]interface{}, key string) (klondike.Suit, error) {
	switch v := d[key].(type) {
	case string:
		return klondike.ParseSuit(v)
	case klondike.Suit:
		return v, nil
	}
	return 0, fmt.Errorf("%w: missing %s", klondike.ErrInvalidArgument, key)
}
