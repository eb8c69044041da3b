package game

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"skyscenes/geom"
	"skyscenes/scene"
	"skyscenes/sim"
)

// InputProvider turns device state into the per-frame scene input.
// current is the scene's spawn probability, or nil when it has none.
type InputProvider interface {
	Poll(current *float64) scene.Input
}

// PlayerInput reads keyboard, mouse, wheel and touch through ebiten
type PlayerInput struct {
	spawnStep float64

	cursor    image.Point
	hasCursor bool
	touches   []ebiten.TouchID
}

// NewPlayerInput creates a new player input provider
func NewPlayerInput(spawnStep float64) *PlayerInput {
	return &PlayerInput{
		spawnStep: spawnStep,
		touches:   make([]ebiten.TouchID, 0, 4),
	}
}

// Poll snapshots input for one update
func (p *PlayerInput) Poll(current *float64) scene.Input {
	var in scene.Input

	x, y := ebiten.CursorPosition()
	cursor := image.Pt(x, y)
	if !p.hasCursor || cursor != p.cursor {
		pt := geom.V(float64(x), float64(y))
		in.Pointer = &pt
		p.cursor, p.hasCursor = cursor, true
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		in.Clicks = append(in.Clicks, geom.V(float64(x), float64(y)))
	}

	p.touches = inpututil.AppendJustPressedTouchIDs(p.touches[:0])
	for _, id := range p.touches {
		tx, ty := ebiten.TouchPosition(id)
		pt := geom.V(float64(tx), float64(ty))
		in.Clicks = append(in.Clicks, pt)
		in.Pointer = &pt
	}

	in.Keys = sim.Keys{
		Forward: ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp),
		Back:    ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown),
		Left:    ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		Right:   ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight),
	}
	in.Fire = inpututil.IsKeyJustPressed(ebiten.KeySpace)

	_, wheel := ebiten.Wheel()
	plus := inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadAdd)
	minus := inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadSubtract)
	in.SpawnProbability = adjustSpawn(current, wheel, plus, minus, p.spawnStep)
	return in
}

// adjustSpawn returns the new spawn probability after a wheel movement and
// +/- presses, or nil when nothing changed or the scene has no probability
func adjustSpawn(current *float64, wheel float64, plus, minus bool, step float64) *float64 {
	if current == nil {
		return nil
	}
	notches := wheel
	if plus {
		notches++
	}
	if minus {
		notches--
	}
	if notches == 0 {
		return nil
	}
	v := *current + notches*step
	return &v
}
