// Package termview plays a scene in a terminal using half-block cells: each
// cell shows two vertically stacked pixels through its foreground and
// background colors.
package termview

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"skyscenes/draw"
	"skyscenes/geom"
	"skyscenes/render/raster"
	"skyscenes/scene"
	"skyscenes/sim"
)

// Config tunes the terminal preview
type Config struct {
	FPS        float64       `mapstructure:"fps"`
	PixelScale float64       `mapstructure:"pixel_scale"` // surface px per terminal pixel
	KeyHold    time.Duration `mapstructure:"key_hold"`
	SpawnStep  float64       `mapstructure:"spawn_step"`
	MaxDelta   float64       `mapstructure:"max_delta"` // s
	StatusLine bool          `mapstructure:"status_line"`
}

// DefaultConfig returns preview defaults
func DefaultConfig() Config {
	return Config{
		FPS:        30,
		PixelScale: 4,
		KeyHold:    180 * time.Millisecond,
		SpawnStep:  0.05,
		MaxDelta:   0.1,
		StatusLine: true,
	}
}

// ErrQuit is returned by Run when the user asked to leave
var ErrQuit = errors.New("quit")

type spawnTuner interface {
	SpawnProbability() float64
}

// Viewer drives one scene on one screen. The frame goroutine is the only
// caller of the scene; the event goroutine only touches input state.
type Viewer struct {
	cfg    Config
	screen tcell.Screen
	scene  scene.Scene
	logger *zap.Logger
	now    func() time.Time

	input   *inputState
	clock   *sim.Clock
	canvas  *draw.Canvas
	raster  *raster.Renderer
	limiter *rate.Limiter

	cols, rows int
	start      time.Time

	fpsMu     sync.Mutex
	fps       float64
	fpsFrames int
	fpsTimer  float64
}

// New prepares a viewer. The screen must already be initialised; Run
// finalises it.
func New(cfg Config, screen tcell.Screen, sc scene.Scene, logger *zap.Logger) *Viewer {
	if cfg.FPS <= 0 {
		cfg.FPS = DefaultConfig().FPS
	}
	if cfg.PixelScale <= 0 {
		cfg.PixelScale = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Viewer{
		cfg:     cfg,
		screen:  screen,
		scene:   sc,
		logger:  logger.Named("termview").With(zap.String("scene", sc.Name())),
		now:     time.Now,
		input:   newInputState(cfg.KeyHold, cfg.SpawnStep),
		clock:   sim.NewClock(sc.TargetFPS(), cfg.MaxDelta),
		canvas:  draw.NewCanvas(1, 1),
		limiter: rate.NewLimiter(rate.Limit(cfg.FPS), 1),
	}
}

// Run plays until ctx is done or the user quits. Quitting by key returns
// ErrQuit; cancellation returns nil.
func (v *Viewer) Run(ctx context.Context) error {
	v.screen.EnableMouse(tcell.MouseMotionEvents)
	v.screen.HideCursor()
	v.start = v.now()
	v.logger.Info("Preview started", zap.Float64("fps", v.cfg.FPS), zap.Float64("pixel_scale", v.cfg.PixelScale))

	g, gctx := errgroup.WithContext(ctx)
	var fini sync.Once
	finish := func() { fini.Do(v.screen.Fini) }

	g.Go(func() error {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return nil
			}
			if v.handle(ev) {
				return ErrQuit
			}
		}
	})

	g.Go(func() error {
		defer finish()
		for {
			if err := v.limiter.Wait(gctx); err != nil {
				return nil
			}
			v.frame()
		}
	})

	err := g.Wait()
	finish()
	v.logger.Info("Preview stopped", zap.Float64("fps", v.FPS()))
	return err
}

// handle applies one terminal event and reports whether to quit
func (v *Viewer) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC:
			return true
		case ev.Key() == tcell.KeyRune && (ev.Rune() == 'q' || ev.Rune() == 'Q'):
			return true
		case ev.Key() == tcell.KeyRune && ev.Rune() == ' ':
			v.input.pressFire()
		case ev.Key() == tcell.KeyRune && (ev.Rune() == '+' || ev.Rune() == '='):
			v.input.adjustSpawn(1)
		case ev.Key() == tcell.KeyRune && ev.Rune() == '-':
			v.input.adjustSpawn(-1)
		default:
			if k, ok := steeringKey(ev); ok {
				v.input.press(k, v.now())
			}
		}
	case *tcell.EventMouse:
		x, y := ev.Position()
		v.input.mouse(v.toSurface(x, y), ev.Buttons())
	case *tcell.EventResize:
		v.screen.Sync()
	}
	return false
}

// toSurface maps a cell to the surface point at the center of its upper pixel
func (v *Viewer) toSurface(x, y int) geom.Vec2 {
	s := v.cfg.PixelScale
	return geom.V((float64(x)+0.5)*s, (float64(2*y)+0.5)*s)
}

// pictureRows returns the rows left for the scene above the status line
func (v *Viewer) pictureRows(rows int) int {
	if v.cfg.StatusLine && rows > 1 {
		return rows - 1
	}
	return rows
}

func (v *Viewer) frame() {
	cols, rows := v.screen.Size()
	prows := v.pictureRows(rows)
	if cols <= 0 || prows <= 0 {
		return
	}
	if cols != v.cols || rows != v.rows {
		v.cols, v.rows = cols, rows
		s := v.cfg.PixelScale
		v.scene.Resize(float64(cols)*s, float64(2*prows)*s)
		v.raster = raster.New(cols, 2*prows)
		v.logger.Debug("Surface resized", zap.Int("cols", cols), zap.Int("rows", rows))
	}

	now := v.now()
	fr := v.clock.Tick(now.Sub(v.start))
	var current *float64
	if st, ok := v.scene.(spawnTuner); ok {
		p := st.SpawnProbability()
		current = &p
	}
	v.scene.Update(fr, v.input.snapshot(now, current))
	v.trackFPS(fr.Delta)

	v.canvas.Reset(float64(cols), float64(2*prows))
	v.canvas.Save()
	v.canvas.Scale(1/v.cfg.PixelScale, 1/v.cfg.PixelScale)
	v.scene.Draw(v.canvas)
	v.canvas.Restore()
	img := v.raster.Render(v.canvas.Commands())

	blit(v.screen, img, cols, prows)
	if prows < rows {
		v.status(cols, rows-1)
	}
	v.screen.Show()
}

// blit writes two image rows per terminal row as upper half blocks
func blit(screen tcell.Screen, img *image.RGBA, cols, rows int) {
	for y := range rows {
		for x := range cols {
			top, bottom := cellColors(img, x, y)
			style := tcell.StyleDefault.Foreground(top).Background(bottom)
			screen.SetContent(x, y, '▀', nil, style)
		}
	}
}

// cellColors returns the opaque colors of the two pixels behind cell (x, y)
func cellColors(img *image.RGBA, x, y int) (top, bottom tcell.Color) {
	return pixel(img, x, 2*y), pixel(img, x, 2*y+1)
}

func pixel(img *image.RGBA, x, y int) tcell.Color {
	if !(image.Point{X: x, Y: y}).In(img.Rect) {
		return tcell.ColorBlack
	}
	// Premultiplied over black is the channel value itself
	i := img.PixOffset(x, y)
	return tcell.NewRGBColor(int32(img.Pix[i]), int32(img.Pix[i+1]), int32(img.Pix[i+2]))
}

func (v *Viewer) status(cols, row int) {
	line := fmt.Sprintf(" %s  %3.0f fps  q quit", v.scene.Name(), v.FPS())
	if st, ok := v.scene.(spawnTuner); ok {
		line += fmt.Sprintf("  +/- spawn %.2f", st.SpawnProbability())
	}
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorDarkSlateGray)
	runes := []rune(line)
	for x := range cols {
		r := ' '
		if x < len(runes) {
			r = runes[x]
		}
		v.screen.SetContent(x, row, r, nil, style)
	}
}

// trackFPS averages the frame rate over half-second windows
func (v *Viewer) trackFPS(dt float64) {
	v.fpsMu.Lock()
	defer v.fpsMu.Unlock()
	v.fpsFrames++
	v.fpsTimer += dt
	if v.fpsTimer >= 0.5 {
		v.fps = float64(v.fpsFrames) / v.fpsTimer
		v.fpsFrames = 0
		v.fpsTimer = 0
	}
}

// FPS returns the last measured frame rate
func (v *Viewer) FPS() float64 {
	v.fpsMu.Lock()
	defer v.fpsMu.Unlock()
	return v.fps
}
