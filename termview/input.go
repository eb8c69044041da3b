package termview

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"skyscenes/geom"
	"skyscenes/scene"
	"skyscenes/sim"
)

const (
	keyForward = iota
	keyBack
	keyLeft
	keyRight
	keyCount
)

// inputState collects terminal events between frames. Terminals report key
// presses and auto-repeats but no releases, so a steering key counts as
// held until hold has passed since its last press.
type inputState struct {
	mu   sync.Mutex
	hold time.Duration
	step float64 // spawn probability change per +/- press

	until   [keyCount]time.Time
	fire    bool
	clicks  []geom.Vec2
	pointer *geom.Vec2
	spawn   float64
	buttons tcell.ButtonMask
}

func newInputState(hold time.Duration, step float64) *inputState {
	return &inputState{hold: hold, step: step}
}

func (s *inputState) press(key int, now time.Time) {
	s.mu.Lock()
	s.until[key] = now.Add(s.hold)
	s.mu.Unlock()
}

func (s *inputState) pressFire() {
	s.mu.Lock()
	s.fire = true
	s.mu.Unlock()
}

func (s *inputState) adjustSpawn(sign float64) {
	s.mu.Lock()
	s.spawn += sign * s.step
	s.mu.Unlock()
}

// mouse records pointer motion and left-button press edges in surface
// coordinates
func (s *inputState) mouse(at geom.Vec2, buttons tcell.ButtonMask) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pointer = &at
	if buttons&tcell.Button1 != 0 && s.buttons&tcell.Button1 == 0 {
		s.clicks = append(s.clicks, at)
	}
	s.buttons = buttons
}

// snapshot drains one-shot events and reports keys still held at now.
// current is the scene's spawn probability, or nil when it has none.
func (s *inputState) snapshot(now time.Time, current *float64) scene.Input {
	s.mu.Lock()
	defer s.mu.Unlock()

	in := scene.Input{
		Clicks:  s.clicks,
		Pointer: s.pointer,
		Fire:    s.fire,
		Keys: sim.Keys{
			Forward: now.Before(s.until[keyForward]),
			Back:    now.Before(s.until[keyBack]),
			Left:    now.Before(s.until[keyLeft]),
			Right:   now.Before(s.until[keyRight]),
		},
	}
	if current != nil && s.spawn != 0 {
		p := *current + s.spawn
		in.SpawnProbability = &p
	}
	s.clicks, s.pointer, s.fire, s.spawn = nil, nil, false, 0
	return in
}

// steeringKey maps WASD and the arrow keys
func steeringKey(ev *tcell.EventKey) (int, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return keyForward, true
	case tcell.KeyDown:
		return keyBack, true
	case tcell.KeyLeft:
		return keyLeft, true
	case tcell.KeyRight:
		return keyRight, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'W':
			return keyForward, true
		case 's', 'S':
			return keyBack, true
		case 'a', 'A':
			return keyLeft, true
		case 'd', 'D':
			return keyRight, true
		}
	}
	return 0, false
}
