package ws

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"sort"
	"strconv"
	"sync"
	"time"

	"nhooyr.io/websocket"

	"github.com/youngZwiebelandtheGemuseBeat/klondike/internal/game"
	"github.com/youngZwiebelandtheGemuseBeat/klondike/internal/klondike"
)

// ---------- message envelope ----------

type Msg struct {
	T string                 `json:"t"`           // type
	M map[string]interface{} `json:"m,omitempty"` // payload
}

// Error codes sent in error messages.
const (
	CodeBadMessage   = "BAD_MESSAGE"
	CodeUnknownType  = "UNKNOWN_TYPE"
	CodeNoGame       = "NO_GAME"
	CodeTooManyGames = "TOO_MANY_GAMES"
	CodeBadMove      = "BAD_MOVE"
	CodeRateLimited  = "RATE_LIMITED"
)

// ---------- client / table / hub ----------

// Table is one game owned by one client. The engine is single-threaded, so
// every access to the session goes through mu.
type Table struct {
	mu      sync.Mutex
	owner   string
	session *game.Session
}

// Options configures a Hub.
type Options struct {
	AllowOrigins      []string
	MaxGamesPerClient int
	RateLimit         float64 // messages per second per client
	RateBurst         int
	Seed              uint64 // used for new games that do not ask for one; 0 shuffles randomly
	Logger            *slog.Logger
}

type Hub struct {
	opts         Options
	log          *slog.Logger
	allowOrigins map[string]bool
	clients      map[*Client]struct{}
	mu           sync.RWMutex
	broadcast    chan []byte

	tablesMu sync.RWMutex
	tables   map[string]*Table
}

func NewHub(opts Options) *Hub {
	m := map[string]bool{}
	for _, a := range opts.AllowOrigins {
		if a != "" {
			m[a] = true
		}
	}
	if opts.MaxGamesPerClient <= 0 {
		opts.MaxGamesPerClient = 8
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 20
	}
	if opts.RateBurst <= 0 {
		opts.RateBurst = 40
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Hub{
		opts:         opts,
		log:          log,
		allowOrigins: m,
		clients:      map[*Client]struct{}{},
		broadcast:    make(chan []byte, 256),
		tables:       map[string]*Table{},
	}
}

// Run fans announcements out to every connected client. A client whose
// send buffer is full misses the announcement.
func (h *Hub) Run() {
	for msg := range h.broadcast {
		h.mu.RLock()
		missed := 0
		for c := range h.clients {
			select {
			case c.send <- msg:
			default:
				missed++
			}
		}
		h.mu.RUnlock()
		if missed > 0 {
			h.log.Debug("announcement dropped", "clients", missed)
		}
	}
}

// ---------- websockets ----------

func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	origin := r.Header.Get("Origin")
	if origin != "" && !h.allowOrigins[origin] {
		http.Error(w, "forbidden origin", http.StatusForbidden)
		return
	}

	c, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
	if err != nil {
		h.log.Warn("websocket accept failed", "err", err)
		return
	}

	client := newClient(c, h.opts.RateLimit, h.opts.RateBurst)

	h.mu.Lock()
	h.clients[client] = struct{}{}
	h.mu.Unlock()
	h.log.Info("client connected", "client", client.id)

	// writer
	go func() {
		ping := time.NewTicker(15 * time.Second)
		defer func() { ping.Stop(); _ = client.conn.Close(websocket.StatusNormalClosure, "bye") }()
		for {
			select {
			case msg, ok := <-client.send:
				if !ok {
					return
				}
				_ = client.conn.Write(r.Context(), websocket.MessageText, msg)
			case <-ping.C:
				_ = client.conn.Ping(r.Context())
			}
		}
	}()

	// reader
	for {
		_, data, err := c.Read(r.Context())
		if err != nil {
			break
		}
		if !client.limiter.Allow() {
			h.sendError(client, CodeRateLimited, "slow down")
			continue
		}
		var m Msg
		if err := json.Unmarshal(data, &m); err != nil {
			h.sendError(client, CodeBadMessage, err.Error())
			continue
		}
		h.handle(client, m)
	}

	// disconnect
	h.mu.Lock()
	delete(h.clients, client)
	close(client.send)
	h.mu.Unlock()

	// tables die with their owner
	h.tablesMu.Lock()
	for id, t := range h.tables {
		if t.owner == client.id {
			delete(h.tables, id)
		}
	}
	h.tablesMu.Unlock()

	h.log.Info("client disconnected", "client", client.id)
}

func (h *Hub) handle(client *Client, m Msg) {
	switch m.T {

	case "join":
		h.sendTo(client, Msg{T: "joined", M: map[string]interface{}{"id": client.id}})

	// ---- Tables ----

	case "new_game":
		seed, err := seedArg(m.M, h.opts.Seed)
		if err != nil {
			h.sendError(client, CodeBadMessage, err.Error())
			return
		}
		if h.countTables(client.id) >= h.opts.MaxGamesPerClient {
			h.sendError(client, CodeTooManyGames, "close a game first")
			return
		}
		s := game.NewSession(seed)
		h.tablesMu.Lock()
		h.tables[s.ID()] = &Table{owner: client.id, session: s}
		h.tablesMu.Unlock()
		h.log.Info("game created", "client", client.id, "game", s.ID(), "seed", seed)

		h.sendTo(client, Msg{T: "created", M: map[string]interface{}{"game": s.ID(), "seed": strconv.FormatUint(seed, 10)}})
		h.sendEvents(client, s.ID(), s.Start())
		h.sendTo(client, Msg{T: "state", M: map[string]interface{}{"game": s.ID(), "state": s.PublicState()}})

	case "list_games":
		h.sendTo(client, Msg{T: "games", M: map[string]interface{}{"list": h.tablesOf(client.id)}})

	case "close_game":
		id, _ := m.M["game"].(string)
		if h.table(client, id) == nil {
			h.sendError(client, CodeNoGame, id)
			return
		}
		h.tablesMu.Lock()
		delete(h.tables, id)
		h.tablesMu.Unlock()
		h.log.Info("game closed", "client", client.id, "game", id)
		h.sendTo(client, Msg{T: "closed", M: map[string]interface{}{"game": id}})

	case "state":
		id, _ := m.M["game"].(string)
		t := h.table(client, id)
		if t == nil {
			h.sendError(client, CodeNoGame, id)
			return
		}
		t.mu.Lock()
		ps := t.session.PublicState()
		t.mu.Unlock()
		h.sendTo(client, Msg{T: "state", M: map[string]interface{}{"game": id, "state": ps}})

	case "hints":
		id, _ := m.M["game"].(string)
		t := h.table(client, id)
		if t == nil {
			h.sendError(client, CodeNoGame, id)
			return
		}
		t.mu.Lock()
		moves := t.session.LegalMoves()
		t.mu.Unlock()
		h.sendTo(client, Msg{T: "hints", M: map[string]interface{}{"game": id, "moves": moves}})

	// ---- Play ----

	case "move":
		// m.M: game, type, plus the move's own fields
		id, _ := m.M["game"].(string)
		typ, _ := m.M["type"].(string)
		t := h.table(client, id)
		if t == nil {
			h.sendError(client, CodeNoGame, id)
			return
		}
		t.mu.Lock()
		events, err := t.session.ApplyMove(game.Move{Type: typ, Data: m.M})
		finished := t.session.IsFinished()
		t.mu.Unlock()
		if err != nil {
			h.log.Debug("move refused", "client", client.id, "game", id, "type", typ, "err", err)
			// part of a play may already be committed
			if len(events) > 0 {
				h.sendEvents(client, id, events)
			}
			h.sendError(client, moveErrorCode(err), err.Error())
			return
		}
		h.sendEvents(client, id, events)
		if finished && containsFinish(events) {
			h.log.Info("game won", "client", client.id, "game", id)
			h.announce(Msg{T: "finished", M: map[string]interface{}{"game": id}})
		}

	case "pong":
		// ignore

	default:
		h.sendError(client, CodeUnknownType, m.T)
	}
}

// ---------- helpers (send/broadcast/tables) ----------

func moveErrorCode(err error) string {
	if errors.Is(err, game.ErrUnknownMove) {
		return CodeUnknownType
	}
	if errors.Is(err, klondike.ErrInvalidArgument) || errors.Is(err, klondike.ErrPreconditionViolated) ||
		errors.Is(err, klondike.ErrEmptyStock) {
		return CodeBadMove
	}
	return CodeBadMessage
}

// seedArg reads the optional seed of a new_game message. JSON numbers are
// only exact up to 2^53, so larger seeds must be sent as decimal strings.
func seedArg(d map[string]interface{}, def uint64) (uint64, error) {
	switch v := d["seed"].(type) {
	case nil:
		return def, nil
	case float64:
		if v < 0 || v != math.Trunc(v) || v > 1<<53 {
			return 0, fmt.Errorf("seed %v is not an integer in [0, 2^53]; send larger seeds as strings", v)
		}
		if v == 0 {
			return def, nil
		}
		return uint64(v), nil
	case string:
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("seed %q: %w", v, err)
		}
		if n == 0 {
			return def, nil
		}
		return n, nil
	}
	return 0, errors.New("seed must be a number or a decimal string")
}

func containsFinish(events []game.Event) bool {
	for _, e := range events {
		if e.Type == game.EventGameFinished {
			return true
		}
	}
	return false
}

func (h *Hub) sendTo(c *Client, msg Msg) {
	b, err := json.Marshal(msg)
	if err != nil {
		h.log.Error("marshal message", "type", msg.T, "err", err)
		return
	}
	select {
	case c.send <- b:
	default:
	}
}

func (h *Hub) sendError(c *Client, code, detail string) {
	h.sendTo(c, Msg{T: "error", M: map[string]interface{}{"code": code, "detail": detail}})
}

func (h *Hub) sendEvents(c *Client, id string, events []game.Event) {
	if events == nil {
		events = []game.Event{}
	}
	h.sendTo(c, Msg{T: "events", M: map[string]interface{}{"game": id, "events": events}})
}

func (h *Hub) announce(msg Msg) {
	b, err := json.Marshal(msg)
	if err != nil {
		return
	}
	select {
	case h.broadcast <- b:
	default:
	}
}

// table returns the client's table with the given id, or nil.
func (h *Hub) table(c *Client, id string) *Table {
	h.tablesMu.RLock()
	defer h.tablesMu.RUnlock()
	t := h.tables[id]
	if t == nil || t.owner != c.id {
		return nil
	}
	return t
}

func (h *Hub) countTables(owner string) int {
	h.tablesMu.RLock()
	defer h.tablesMu.RUnlock()
	n := 0
	for _, t := range h.tables {
		if t.owner == owner {
			n++
		}
	}
	return n
}

func (h *Hub) tablesOf(owner string) []map[string]interface{} {
	h.tablesMu.RLock()
	var own []*Table
	for _, t := range h.tables {
		if t.owner == owner {
			own = append(own, t)
		}
	}
	h.tablesMu.RUnlock()

	list := make([]map[string]interface{}, 0, len(own))
	for _, t := range own {
		t.mu.Lock()
		s := t.session
		list = append(list, map[string]interface{}{
			"id": s.ID(), "seed": strconv.FormatUint(s.Seed(), 10), "created": s.Created(),
			"finished": s.IsFinished(),
		})
		t.mu.Unlock()
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i]["created"].(time.Time).Before(list[j]["created"].(time.Time))
	})
	return list
}

// Games returns the number of open tables.
func (h *Hub) Games() int {
	h.tablesMu.RLock()
	defer h.tablesMu.RUnlock()
	return len(h.tables)
}
