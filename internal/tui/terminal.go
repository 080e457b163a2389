package tui

import (
	"context"
	"fmt"
	"log"
	"math/rand/v2"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/taberinos/backend/internal/game"
	"github.com/taberinos/backend/internal/leaderboard"
)

// World units per terminal cell. Cells are roughly twice as tall as wide.
const (
	cellWidth  = 10.0
	cellHeight = 20.0
	margin     = 2 * cellWidth
)

var (
	styleSegment   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleGenerated = tcell.StyleDefault.Foreground(tcell.ColorAqua)
	styleBroken    = tcell.StyleDefault.Foreground(tcell.ColorDarkSlateGray).Dim(true)
	styleNode      = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleGenerator = tcell.StyleDefault.Foreground(tcell.ColorOrange).Bold(true)
	styleBall      = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleHUD       = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver)
)

// Terminal runs a local game in a tcell screen.
type Terminal struct {
	screen tcell.Screen
	state  *game.GameState
	sound  *Sound
	scores *leaderboard.Service
	frame  time.Duration

	view    Viewport
	status  string
	player  string
	buttons tcell.ButtonMask // held at the last mouse event
}

// Options configures a Terminal. Scores and Sound may be nil.
type Options struct {
	Player        string
	FrameInterval time.Duration
	Scores        *leaderboard.Service
	Sound         *Sound
	Seed          uint64
}

// NewTerminal sizes a new game to the screen. The screen must already be
// initialized.
func NewTerminal(screen tcell.Screen, opts Options) (*Terminal, error) {
	cols, rows := screen.Size()
	w, h := worldSize(cols, rows)

	seed := opts.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	state, err := game.NewGameState(w, h, margin, rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
	if err != nil {
		return nil, err
	}

	frame := opts.FrameInterval
	if frame <= 0 {
		frame = 16 * time.Millisecond
	}
	sound := opts.Sound
	if sound == nil {
		sound = &Sound{}
	}

	screen.EnableMouse(tcell.MouseButtonEvents)
	screen.HideCursor()

	return &Terminal{
		screen: screen,
		state:  state,
		sound:  sound,
		scores: opts.Scores,
		frame:  frame,
		view:   NewViewport(cols, rows, w, h),
		player: opts.Player,
	}, nil
}

// worldSize converts a terminal size into playfield dimensions.
func worldSize(cols, rows int) (float64, float64) {
	return float64(max(cols, 1)) * cellWidth, float64(max(rows-hudRows, 1)) * cellHeight
}

// Run drives the game until ctx is done or the player quits.
func (t *Terminal) Run(ctx context.Context) {
	t.state.DrainEvents()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(t.frame)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok || !t.handleEvent(ev) {
				return
			}
		case <-ticker.C:
			t.step(ctx)
		}
	}
}

func (t *Terminal) step(ctx context.Context) {
	wasOver := t.state.Phase == game.PhaseGameOver
	t.state.Update()
	evs := t.state.DrainEvents()
	t.sound.Play(evs)

	for _, ev := range evs {
		switch ev.Type {
		case game.EventLevelStarted:
			t.status = fmt.Sprintf("Level %d", ev.Level)
		case game.EventLevelComplete:
			t.status = "Level complete! Click or press n"
		}
	}

	if !wasOver && t.state.Phase == game.PhaseGameOver {
		t.recordScore(ctx)
	}
	t.Render(t.state.Snapshot())
}

func (t *Terminal) recordScore(ctx context.Context) {
	sc := t.state.FinalScore()
	if sc == nil {
		return
	}
	t.status = fmt.Sprintf("Game over: level %d, %d shots. Click or press r", sc.Level, sc.ShotsUsed)
	if t.scores == nil {
		return
	}

	sctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	res, err := t.scores.Submit(sctx, leaderboard.NewScore(t.player, sc.Level, sc.ShotsUsed))
	if err != nil {
		log.Printf("[LEADERBOARD] submit failed: %v", err)
		return
	}
	if res.HighScore {
		t.status = fmt.Sprintf("New high score! Rank %d (level %d, %d shots). Press r", res.Rank, sc.Level, sc.ShotsUsed)
	}
}

// handleEvent applies one terminal event; it returns false to quit.
func (t *Terminal) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyCtrlC, ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
			return false
		case ev.Key() == tcell.KeyEscape:
			t.state.StopBall()
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'r':
			t.state.Restart()
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'n':
			t.state.NextLevel()
		}

	case *tcell.EventMouse:
		prev := t.buttons
		t.buttons = ev.Buttons()
		if !pressed(prev, t.buttons, tcell.Button1) {
			return true
		}
		x, y := ev.Position()
		if !t.view.InPlayArea(x, y) {
			return true
		}
		t.state.HandleInput(t.view.ToWorld(x, y))

	case *tcell.EventResize:
		cols, rows := ev.Size()
		w, h := worldSize(cols, rows)
		if err := t.state.Resize(w, h); err != nil {
			log.Printf("[TUI] resize: %v", err)
			return true
		}
		t.view = NewViewport(cols, rows, w, h)
		t.screen.Sync()
	}
	return true
}

// pressed reports whether button went down between two mouse events. Drags
// and repeats while it is held are not presses.
func pressed(prev, cur, button tcell.ButtonMask) bool {
	return cur&button != 0 && prev&button == 0
}

// Render draws a snapshot.
func (t *Terminal) Render(snap game.Snapshot) {
	s := t.screen
	s.Clear()
	v := t.view

	for _, seg := range snap.Segments {
		style := styleSegment
		switch {
		case seg.Broken:
			style = styleBroken
		case seg.Generated:
			style = styleGenerated
		}
		glyph := segmentRune(seg.End.X-seg.Start.X, seg.End.Y-seg.Start.Y)
		x0, y0 := v.ToCell(seg.Start)
		x1, y1 := v.ToCell(seg.End)
		line(x0, y0, x1, y1, func(x, y int) {
			s.SetContent(x, y, glyph, nil, style)
		})
	}

	for _, n := range snap.Nodes {
		x, y := v.ToCell(n.Position)
		glyph, style := 'o', styleNode
		if n.Generator && !n.Spawned {
			glyph, style = '@', styleGenerator
		}
		if n.BounceEffect > 0 {
			style = style.Reverse(true)
		}
		s.SetContent(x, y, glyph, nil, style)
	}

	trail := snap.Ball.Trail
	for i, p := range trail {
		x, y := v.ToCell(p)
		intensity := int32(80 + 150*(i+1)/len(trail))
		s.SetContent(x, y, '·', nil, tcell.StyleDefault.Foreground(tcell.NewRGBColor(intensity, intensity/3, intensity/3)))
	}
	bx, by := v.ToCell(snap.Ball.Position)
	s.SetContent(bx, by, '●', nil, styleBall)

	t.drawHUD(snap)
	s.Show()
}

func (t *Terminal) drawHUD(snap game.Snapshot) {
	cols, rows := t.screen.Size()
	y := rows - 1
	if y < 0 {
		return
	}
	text := hudText(snap, t.status)
	for x := 0; x < cols; x++ {
		r := ' '
		if x < len(text) {
			r = rune(text[x])
		}
		t.screen.SetContent(x, y, r, nil, styleHUD)
	}
}

func hudText(snap game.Snapshot, status string) string {
	text := fmt.Sprintf(" Level %d | Shots %d/%d | Lines %d | q quit r restart n next Esc stop",
		snap.Level, snap.ShotsRemaining, snap.ShotsMax, snap.Unbroken)
	if status != "" {
		text += " | " + status
	}
	return text
}

var _ game.Renderer = (*Terminal)(nil)
