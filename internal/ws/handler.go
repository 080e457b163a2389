package ws

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/taberinos/backend/internal/auth"
	"github.com/taberinos/backend/internal/config"
	"github.com/taberinos/backend/internal/game"
	"github.com/taberinos/backend/internal/session"
)

// SnapshotLoader finds the last known state of a session hosted elsewhere.
type SnapshotLoader interface {
	LoadSnapshot(ctx context.Context, token string) (*game.Snapshot, error)
}

// Deps is what the upgrade handler needs.
type Deps struct {
	Hub       *Hub
	Sessions  *session.Manager
	Snapshots SnapshotLoader
	Config    *config.Config
}

func newUpgrader(cfg *config.Config) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			return originAllowed(cfg, r.Header.Get("Origin"))
		},
	}
}

func originAllowed(cfg *config.Config, origin string) bool {
	if origin == "" {
		// non-browser clients
		return true
	}
	if cfg == nil || cfg.Environment != "production" {
		return true
	}
	return strings.EqualFold(origin, cfg.FrontendURL)
}

// HandleWebSocket upgrades /sessions/:token/ws. With a valid pt player token
// the client controls the game; without one it only watches.
func HandleWebSocket(d Deps) gin.HandlerFunc {
	upgrader := newUpgrader(d.Config)

	return func(c *gin.Context) {
		token := c.Param("token")
		playerToken := c.Query("pt")

		spectator := playerToken == ""
		if !spectator {
			claims, err := auth.ParsePlayerToken(d.Config.JWTSecret, playerToken)
			if err != nil || claims.SessionToken != token {
				c.JSON(http.StatusForbidden, gin.H{"error": "invalid player token"})
				return
			}
		}

		sess, err := d.Sessions.GetByToken(token)
		var remote *game.Snapshot
		if err != nil {
			if spectator && d.Snapshots != nil {
				remote, err = d.Snapshots.LoadSnapshot(c.Request.Context(), token)
				if err != nil {
					log.Printf("[WS] no snapshot for session %s: %v", token, err)
				}
			}
			if remote == nil {
				c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
				return
			}
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("[WS] Upgrade error: %v", err)
			return
		}

		client := &Client{
			hub:       d.Hub,
			conn:      conn,
			id:        "c_" + c.ClientIP() + "_" + randomSuffix(),
			token:     token,
			spectator: spectator,
			sess:      sess,
			snapshots: d.Snapshots,
			send:      make(chan []byte, 64),
		}
		if sess != nil {
			client.frames, client.unsub = sess.Subscribe()
		}

		if !d.Hub.join(client) {
			if client.unsub != nil {
				client.unsub()
			}
			conn.Close()
			return
		}

		if sess != nil {
			client.sendJSON(session.Message{Type: "frame", Data: sess.Snapshot()})
		} else {
			client.sendJSON(session.Message{Type: "frame", Data: remote})
		}

		go client.writePump()
		go client.readPump()
	}
}
