package ws

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/taberinos/backend/internal/auth"
	"github.com/taberinos/backend/internal/config"
	"github.com/taberinos/backend/internal/game"
	appredis "github.com/taberinos/backend/internal/redis"
	"github.com/taberinos/backend/internal/session"
)

func TestRelaySkipsOwnOriginAndLocalClients(t *testing.T) {
	hub := NewHub()
	remote := &Client{id: "remote", token: "tok", send: make(chan []byte, 4)}
	local := &Client{id: "local", token: "tok", send: make(chan []byte, 4), sess: &session.Session{}}
	hub.rooms["tok"] = map[string]*Client{"remote": remote, "local": local}

	env := appredis.EventEnvelope{
		Origin:       "other",
		SessionToken: "tok",
		Events:       []game.Event{{Type: game.EventSegmentBroken, Segment: 2}},
	}
	payload, _ := json.Marshal(env)

	if n := relayEnvelope(hub, "other", payload); n != 0 {
		t.Fatalf("own origin relayed to %d clients", n)
	}
	if n := relayEnvelope(hub, "me", payload); n != 1 {
		t.Fatalf("relayed to %d clients, want 1", n)
	}
	if len(local.send) != 0 {
		t.Fatal("local session client received relayed event")
	}

	var msg session.Message
	json.Unmarshal(<-remote.send, &msg)
	if msg.Type != "event" {
		t.Fatalf("message type = %q", msg.Type)
	}
	if n := relayEnvelope(hub, "me", []byte("{bad")); n != 0 {
		t.Fatal("bad payload relayed")
	}
}

func TestOriginAllowed(t *testing.T) {
	prod := &config.Config{Environment: "production", FrontendURL: "https://taberinos.example"}
	dev := &config.Config{Environment: "development"}
	tests := []struct {
		cfg    *config.Config
		origin string
		want   bool
	}{
		{prod, "", true},
		{prod, "https://taberinos.example", true},
		{prod, "https://evil.example", false},
		{dev, "http://localhost:3000", true},
	}
	for _, tt := range tests {
		if got := originAllowed(tt.cfg, tt.origin); got != tt.want {
			t.Errorf("originAllowed(%s, %q) = %v, want %v", tt.cfg.Environment, tt.origin, got, tt.want)
		}
	}
}

func readMessage(t *testing.T, conn *websocket.Conn, want string) session.Message {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("read waiting for %s: %v", want, err)
		}
		var m session.Message
		if err := json.Unmarshal(data, &m); err != nil {
			t.Fatalf("bad message: %v", err)
		}
		if m.Type == want {
			return m
		}
	}
}

func TestPlayerConnection(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := &config.Config{Environment: "development", JWTSecret: "secret"}
	mgr := session.NewManager(ctx, session.Options{Width: 800, Height: 600, Margin: 50, FrameInterval: 10 * time.Millisecond}, nil, nil)
	defer mgr.Shutdown()
	hub := NewHub()
	go hub.Run(ctx)

	sess, err := mgr.Create(ctx)
	if err != nil {
		t.Fatal(err)
	}
	pt, _ := auth.IssuePlayerToken("secret", sess.ID, sess.Token, time.Minute)

	router := gin.New()
	router.GET("/sessions/:token/ws", HandleWebSocket(Deps{Hub: hub, Sessions: mgr, Config: cfg}))
	srv := httptest.NewServer(router)
	defer srv.Close()
	base := "ws" + strings.TrimPrefix(srv.URL, "http") + "/sessions/" + sess.Token + "/ws"

	if _, _, err := websocket.DefaultDialer.Dial(base+"?pt=forged", nil); err == nil {
		t.Fatal("forged player token accepted")
	}

	conn, _, err := websocket.DefaultDialer.Dial(base+"?pt="+pt, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	readMessage(t, conn, "frame")

	snap := sess.Snapshot()
	conn.WriteJSON(map[string]interface{}{
		"type": "input",
		"data": map[string]float64{"x": snap.Ball.Position.X + 50, "y": snap.Ball.Position.Y},
	})
	res := readMessage(t, conn, "input_result")
	if res.Data != string(game.InputShot) {
		t.Fatalf("input result = %v, want %s", res.Data, game.InputShot)
	}

	conn.WriteJSON(map[string]string{"type": "bogus"})
	readMessage(t, conn, "error")
}

func TestSpectatorCannotControl(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mgr := session.NewManager(ctx, session.Options{Width: 800, Height: 600, Margin: 50, FrameInterval: 10 * time.Millisecond}, nil, nil)
	defer mgr.Shutdown()
	hub := NewHub()
	go hub.Run(ctx)
	sess, _ := mgr.Create(ctx)

	router := gin.New()
	router.GET("/sessions/:token/ws", HandleWebSocket(Deps{Hub: hub, Sessions: mgr, Config: &config.Config{JWTSecret: "s"}}))
	srv := httptest.NewServer(router)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/sessions/" + sess.Token + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	conn.WriteJSON(map[string]interface{}{"type": "restart"})
	msg := readMessage(t, conn, "error")
	if !strings.Contains(msg.Data.(string), "Spectators") {
		t.Fatalf("error = %v", msg.Data)
	}

	missing := "ws" + strings.TrimPrefix(srv.URL, "http") + "/sessions/nope/ws"
	if _, _, err := websocket.DefaultDialer.Dial(missing, nil); err == nil {
		t.Fatal("unknown session accepted")
	}
}

// mirroredSnapshots serves a fixed snapshot and counts loads.
type mirroredSnapshots struct {
	mu    sync.Mutex
	snap  game.Snapshot
	loads int
}

func (m *mirroredSnapshots) LoadSnapshot(_ context.Context, token string) (*game.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if token != "remote-tok" {
		return nil, appredis.ErrSnapshotNotFound
	}
	m.loads++
	snap := m.snap
	snap.Level = m.loads
	return &snap, nil
}

func (m *mirroredSnapshots) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loads
}

func TestRemoteSpectatorGetStateReloadsSnapshot(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mgr := session.NewManager(ctx, session.Options{Width: 800, Height: 600, Margin: 50}, nil, nil)
	hub := NewHub()
	go hub.Run(ctx)
	mirror := &mirroredSnapshots{snap: game.Snapshot{Width: 800, Height: 600, Phase: game.PhaseAiming}}

	router := gin.New()
	router.GET("/sessions/:token/ws", HandleWebSocket(Deps{Hub: hub, Sessions: mgr, Snapshots: mirror, Config: &config.Config{JWTSecret: "s"}}))
	srv := httptest.NewServer(router)
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/sessions/remote-tok/ws", nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	readMessage(t, conn, "frame")

	conn.WriteJSON(map[string]string{"type": "get_state"})
	msg := readMessage(t, conn, "frame")
	data, _ := msg.Data.(map[string]interface{})
	if data["level"] != float64(2) {
		t.Fatalf("get_state frame = %v, want the reloaded snapshot", msg.Data)
	}
	if n := mirror.count(); n != 2 {
		t.Fatalf("snapshot loads = %d, want 2", n)
	}

	conn.WriteJSON(map[string]interface{}{"type": "input", "data": map[string]float64{"x": 1, "y": 1}})
	if e := readMessage(t, conn, "error"); !strings.Contains(e.Data.(string), "Spectators") {
		t.Fatalf("error = %v", e.Data)
	}
}
