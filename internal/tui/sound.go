package tui

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/taberinos/backend/internal/game"
)

const sampleRate = beep.SampleRate(44100)

// Sound plays short tones for engine events. A zero Sound is silent.
type Sound struct {
	mu          sync.Mutex
	initialized bool
}

// Init opens the speaker. Failure leaves the Sound silent.
func (s *Sound) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return err
	}
	s.initialized = true
	return nil
}

func (s *Sound) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.initialized {
		speaker.Close()
		s.initialized = false
	}
}

// toneFor returns the pitch and length for an event, or 0 for silent events.
func toneFor(t game.EventType) (freq int, d time.Duration) {
	switch t {
	case game.EventSegmentBroken:
		return 880, 50 * time.Millisecond
	case game.EventNodeBounce:
		return 440, 30 * time.Millisecond
	case game.EventSegmentSpawned:
		return 660, 80 * time.Millisecond
	case game.EventLevelComplete:
		return 1320, 200 * time.Millisecond
	case game.EventGameOver:
		return 220, 300 * time.Millisecond
	}
	return 0, 0
}

// Play sounds each event that has a tone.
func (s *Sound) Play(events []game.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return
	}
	for _, ev := range events {
		freq, d := toneFor(ev.Type)
		if freq == 0 {
			continue
		}
		sine, err := generators.SineTone(sampleRate, float64(freq))
		if err != nil {
			continue
		}
		speaker.Play(beep.Take(sampleRate.N(d), sine))
	}
}
