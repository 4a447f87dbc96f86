// internal/httpserver/ws.go
//
// Websocket channel for a single session: the client sends new_game / submit
// / state / ping messages and receives state / result / error / pong.
// One read pump handles requests in order; one write pump owns the
// connection's writes and keeps it alive with pings.

package httpserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/joomin-choi/wordscramble/internal/game"
	"github.com/joomin-choi/wordscramble/internal/store"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBufferSize = 16
)

// MessageType names websocket messages in both directions.
type MessageType string

// Client → Server.
const (
	MsgNewGame MessageType = "new_game"
	MsgSubmit  MessageType = "submit"
	MsgState   MessageType = "state"
	MsgPing    MessageType = "ping"
)

// Server → Client (MsgState is shared).
const (
	MsgResult MessageType = "result"
	MsgError  MessageType = "error"
	MsgPong   MessageType = "pong"
)

type clientMessage struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type serverMessage struct {
	Type    MessageType `json:"type"`
	Payload any         `json:"payload,omitempty"`
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// handleWS upgrades the request and serves the session until the peer leaves.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())

	up := upgrader
	up.CheckOrigin = s.checkOrigin
	conn, err := up.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	log.Info().Str("session", sess.ID).Msg("websocket connected")

	c := &wsClient{
		srv:  s,
		sess: sess,
		conn: conn,
		send: make(chan serverMessage, sendBufferSize),
	}
	go c.writePump()
	c.readPump()
	log.Info().Str("session", sess.ID).Msg("websocket disconnected")
}

// checkOrigin accepts same-host requests and the configured client origin.
func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || origin == s.opts.ClientOrigin {
		return true
	}
	return origin == "http://"+r.Host || origin == "https://"+r.Host
}

type wsClient struct {
	srv  *Server
	sess *store.Session
	conn *websocket.Conn
	send chan serverMessage
}

// readPump decodes client messages until the connection fails, then closes send.
func (c *wsClient) readPump() {
	defer close(c.send)

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	// An open connection keeps its session from being swept as idle.
	c.conn.SetPongHandler(func(string) error {
		c.sess.Touch()
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var msg clientMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug().Err(err).Str("session", c.sess.ID).Msg("websocket read error")
			}
			return
		}
		reply, ok := c.handle(msg)
		if !ok {
			continue
		}
		select {
		case c.send <- reply:
		default:
			log.Warn().Str("session", c.sess.ID).Msg("send buffer full, message dropped")
		}
	}
}

// handle runs one client message against the session.
func (c *wsClient) handle(msg clientMessage) (serverMessage, bool) {
	switch msg.Type {
	case MsgPing:
		c.sess.Touch()
		return serverMessage{Type: MsgPong}, true

	case MsgState:
		var rd game.Round
		c.sess.Do(func(e *game.Engine) { rd = e.Snapshot() })
		return serverMessage{Type: MsgState, Payload: toState(rd)}, true

	case MsgNewGame:
		var rd game.Round
		c.sess.Do(func(e *game.Engine) {
			e.StartGame(c.srv.opts.Words)
			rd = e.Snapshot()
		})
		return serverMessage{Type: MsgState, Payload: toState(rd)}, true

	case MsgSubmit:
		var req submitReq
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			return serverMessage{Type: MsgError, Payload: map[string]string{"error": "bad_payload"}}, true
		}
		var (
			res game.Result
			ok  bool
			rd  game.Round
		)
		c.sess.Do(func(e *game.Engine) {
			res, ok = e.Submit(req.Word)
			rd = e.Snapshot()
		})
		if !ok {
			return serverMessage{}, false
		}
		return serverMessage{Type: MsgResult, Payload: submitRes{Result: c.srv.toResult(res), State: toState(rd)}}, true
	}
	return serverMessage{Type: MsgError, Payload: map[string]string{"error": "unknown_type"}}, true
}

// writePump writes queued replies and periodic pings; it exits when send closes.
func (c *wsClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
