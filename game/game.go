// Package game hosts a scene in a desktop or browser window through ebiten.
package game

import (
	"fmt"
	"math"
	"runtime"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"skyscenes/draw"
	"skyscenes/scene"
	"skyscenes/sim"
)

type spawnTuner interface {
	SpawnProbability() float64
}

// Game drives exactly one scene from ebiten's update loop
type Game struct {
	config   Config
	scene    scene.Scene
	input    InputProvider
	renderer *Renderer
	canvas   *draw.Canvas
	clock    *sim.Clock
	logger   *zap.Logger

	width, height int

	// FPS tracking
	fps              float64
	fpsUpdateCounter int
	fpsUpdateTimer   float64
	showFPS          bool

	// Performance profiling
	profiler        *Profiler
	lastFPSDropTime time.Time

	// Start time for the clock and the profiling grace period
	gameStartTime time.Time
	now           func() time.Time
}

// NewGame creates a game around sc
func NewGame(config Config, sc scene.Scene, logger *zap.Logger) *Game {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("game").With(zap.String("scene", sc.Name()))
	return &Game{
		config:        config,
		scene:         sc,
		input:         NewPlayerInput(config.SpawnStep),
		canvas:        draw.NewCanvas(float64(config.Width), float64(config.Height)),
		clock:         sim.NewClock(sc.TargetFPS(), config.MaxDelta),
		logger:        logger,
		fps:           sc.TargetFPS(),
		showFPS:       config.ShowFPS,
		profiler:      NewProfiler(config.Profile, logger),
		gameStartTime: time.Now(),
		now:           time.Now,
	}
}

// Run opens the window and blocks until it closes
func (g *Game) Run() error {
	ebiten.SetWindowSize(g.config.Width, g.config.Height)
	ebiten.SetWindowTitle(g.config.Title)
	ebiten.SetWindowResizable(g.config.Resizable)
	ebiten.SetTPS(int(math.Round(g.scene.TargetFPS())))

	g.logger.Info("Window opening", zap.Int("width", g.config.Width), zap.Int("height", g.config.Height))
	err := ebiten.RunGame(g)
	g.profiler.Wait()
	if err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}

// Update advances the scene one tick
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.showFPS = !g.showFPS
	}

	if g.renderer == nil {
		g.renderer = NewRenderer()
	}

	var current *float64
	if st, ok := g.scene.(spawnTuner); ok {
		p := st.SpawnProbability()
		current = &p
	}
	g.step(g.input.Poll(current))
	return nil
}

// step runs one frame of the simulation with the given input
func (g *Game) step(in scene.Input) {
	frame := g.clock.Tick(g.now().Sub(g.gameStartTime))
	g.trackFPS(frame.Delta)
	g.scene.Update(frame, in)
}

// trackFPS updates the FPS average every 0.5 seconds and captures a profile
// on a sustained drop
func (g *Game) trackFPS(deltaTime float64) {
	g.fpsUpdateTimer += deltaTime
	g.fpsUpdateCounter++
	if g.fpsUpdateTimer < 0.5 {
		return
	}
	g.fps = float64(g.fpsUpdateCounter) / g.fpsUpdateTimer
	g.fpsUpdateCounter = 0
	g.fpsUpdateTimer = 0

	pc := g.config.Profile
	if !pc.Enabled || g.fps >= pc.Threshold {
		return
	}
	now := g.now()
	if now.Sub(g.gameStartTime) < pc.Grace || now.Sub(g.lastFPSDropTime) < pc.Cooldown {
		return
	}
	g.lastFPSDropTime = now

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	g.logger.Warn("FPS drop detected",
		zap.Float64("fps", g.fps),
		zap.Uint32("num_gc", m.NumGC),
		zap.Uint64("pause_total_ns", m.PauseTotalNs),
		zap.Uint64("heap_alloc_kb", m.HeapAlloc/1024),
	)
	if err := g.profiler.CaptureProfile(fmt.Sprintf("fps%.0f-%s", g.fps, g.scene.Name())); err != nil {
		g.logger.Debug("Profile capture skipped", zap.Error(err))
	}
}

// FPS returns the last measured update rate
func (g *Game) FPS() float64 {
	return g.fps
}

// Draw renders the scene
func (g *Game) Draw(screen *ebiten.Image) {
	if g.renderer == nil {
		g.renderer = NewRenderer()
	}
	g.canvas.Reset(float64(g.width), float64(g.height))
	g.scene.Draw(g.canvas)
	g.renderer.Render(screen, g.canvas.Commands())

	if g.showFPS {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("%s\nFPS: %.1f\nTPS: %.1f", g.scene.Name(), g.fps, ebiten.ActualTPS()))
	}
}

// Layout follows the window size and resizes the scene when it changes
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.scene.Resize(float64(outsideWidth), float64(outsideHeight))
		g.logger.Debug("Surface resized", zap.Int("width", outsideWidth), zap.Int("height", outsideHeight))
	}
	return g.width, g.height
}
