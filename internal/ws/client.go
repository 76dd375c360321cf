package ws

import (
	"github.com/google/uuid"
	"golang.org/x/time/rate"
	"nhooyr.io/websocket"
)

type Client struct {
	id      string
	conn    *websocket.Conn
	send    chan []byte
	limiter *rate.Limiter
}

func newClient(conn *websocket.Conn, perSecond float64, burst int) *Client {
	return &Client{
		id:      uuid.NewString(),
		conn:    conn,
		send:    make(chan []byte, 64),
		limiter: rate.NewLimiter(rate.Limit(perSecond), burst),
	}
}
