package ws

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"
	"github.com/taberinos/backend/internal/session"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
	maxMessage = 4096
)

// WSMessage is the envelope clients send
type WSMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type InputData struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type ResizeData struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// writePump writes hub messages and session frames to the connection
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Printf("[WS] write error for %s: %v", c.id, err)
				return
			}

		case frame, ok := <-c.frames:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// session ended
				c.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session ended"))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				log.Printf("[WS] write error for %s: %v", c.id, err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Printf("[WS] ping error for %s: %v", c.id, err)
				return
			}
		}
	}
}

// readPump reads client messages until the connection drops
func (c *Client) readPump() {
	defer func() {
		c.hub.leave(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessage)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[WS] unexpected close for %s: %v", c.id, err)
			}
			break
		}

		var msg WSMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			c.sendError("Invalid message")
			continue
		}
		c.handleMessage(msg)
	}
}

// handleMessage applies one client message to the session
func (c *Client) handleMessage(msg WSMessage) {
	if c.spectator && msg.Type != "get_state" {
		c.sendError("Spectators cannot control the game")
		return
	}
	if c.sess == nil {
		c.sendRemoteState(msg.Type)
		return
	}

	switch msg.Type {
	case "input":
		var data InputData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("Invalid input data")
			return
		}
		res := c.sess.HandleInput(data.X, data.Y)
		c.sendJSON(session.Message{Type: "input_result", Data: res})

	case "resize":
		var data ResizeData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("Invalid resize data")
			return
		}
		if err := c.sess.Resize(data.Width, data.Height); err != nil {
			c.sendError(err.Error())
		}

	case "stop_ball":
		c.sess.StopBall()

	case "restart":
		c.sess.Restart()

	case "get_state":
		c.sendJSON(session.Message{Type: "frame", Data: c.sess.Snapshot()})

	default:
		c.sendError("Unknown message type")
	}
}

// sendRemoteState answers get_state for a session hosted on another instance
// from its last mirrored snapshot.
func (c *Client) sendRemoteState(msgType string) {
	if msgType != "get_state" || c.snapshots == nil {
		c.sendError("Session is not hosted on this server")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), writeWait)
	defer cancel()
	snap, err := c.snapshots.LoadSnapshot(ctx, c.token)
	if err != nil {
		log.Printf("[WS] snapshot reload for %s failed: %v", c.token, err)
		c.sendError("Session state unavailable")
		return
	}
	c.sendJSON(session.Message{Type: "frame", Data: snap})
}

func (c *Client) sendJSON(m session.Message) {
	data, err := json.Marshal(m)
	if err != nil {
		log.Printf("[WS] Error marshaling %s: %v", m.Type, err)
		return
	}
	select {
	case c.send <- data:
	default:
		log.Printf("[WS] send buffer full for %s, dropping %s", c.id, m.Type)
	}
}

// sendError sends an error message to the client
func (c *Client) sendError(message string) {
	c.sendJSON(session.Message{Type: "error", Data: message})
}
