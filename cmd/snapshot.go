package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"skyscenes/draw"
	"skyscenes/geom"
	"skyscenes/internal/observability"
	"skyscenes/render/raster"
	"skyscenes/render/svgout"
	"skyscenes/scene"
	"skyscenes/sim"
)

// snapshotJob simulates a scene at a fixed step without a window
type snapshotJob struct {
	scene  scene.Scene
	width  int
	height int
	frames int
	step   time.Duration
	format string

	// input applied on the first frame
	clicks []geom.Vec2
	fire   bool
}

// run simulates the job and hands every frame to emit. With all false only
// the last frame is emitted.
func (j snapshotJob) run(all bool, emit func(i int, c *draw.Canvas) error) error {
	j.scene.Resize(float64(j.width), float64(j.height))
	clock := sim.NewClock(j.scene.TargetFPS(), 0)
	canvas := draw.NewCanvas(float64(j.width), float64(j.height))

	in := scene.Input{Clicks: j.clicks, Fire: j.fire}
	if n := len(j.clicks); n > 0 {
		last := j.clicks[n-1]
		in.Pointer = &last
	}

	for i := 0; i <= j.frames; i++ {
		j.scene.Update(clock.Tick(time.Duration(i)*j.step), in)
		in = scene.Input{}
		if !all && i < j.frames {
			continue
		}
		canvas.Reset(float64(j.width), float64(j.height))
		j.scene.Draw(canvas)
		if err := emit(i, canvas); err != nil {
			return err
		}
	}
	return nil
}

// encode writes one frame in the job's format
func (j snapshotJob) encode(w io.Writer, c *draw.Canvas) error {
	switch j.format {
	case "svg":
		return svgout.Canvas(w, c, j.scene.Name())
	case "png":
		r := raster.New(j.width, j.height)
		r.Render(c.Commands())
		return r.EncodePNG(w)
	default:
		return fmt.Errorf("unknown format %q", j.format)
	}
}

func newSnapshotCmd(opts *rootOptions) *cobra.Command {
	var (
		width, height, frames int
		step                  float64
		format, out           string
		clicks                []string
		fire                  bool
	)
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Render frames of a scene to PNG or SVG",
		Long: `Simulate a scene headlessly at a fixed time step and write the last frame.

If --out contains a printf verb such as frame-%04d.png every frame is written.
Use --out - to write a single frame to stdout.`,
		Example: `  skyscenes snapshot --scene fireworks --click 400,120 --frames 90 --out burst.png
  skyscenes snapshot --scene sandbox --fire --frames 30 --format svg --out drones.svg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.cfg
			sc, err := opts.newScene()
			if err != nil {
				return err
			}

			job := snapshotJob{
				scene:  sc,
				width:  cfg.Snapshot.Width,
				height: cfg.Snapshot.Height,
				frames: cfg.Snapshot.Frames,
				format: cfg.Snapshot.Format,
				fire:   fire,
			}
			target := cfg.Snapshot.Out
			flags := cmd.Flags()
			if flags.Changed("width") {
				job.width = width
			}
			if flags.Changed("height") {
				job.height = height
			}
			if flags.Changed("frames") {
				job.frames = frames
			}
			if flags.Changed("out") {
				target = out
			}
			switch {
			case flags.Changed("format"):
				job.format = format
			case strings.EqualFold(filepath.Ext(target), ".svg"):
				job.format = "svg"
			case strings.EqualFold(filepath.Ext(target), ".png"):
				job.format = "png"
			}
			if flags.Changed("step") {
				cfg.Snapshot.Step = step
			}
			job.step = cfg.SnapshotStep(sc.TargetFPS())

			if job.width <= 0 || job.height <= 0 || job.frames < 0 {
				return fmt.Errorf("invalid snapshot size %dx%d over %d frames", job.width, job.height, job.frames)
			}
			for _, s := range clicks {
				p, err := parsePoint(s)
				if err != nil {
					return err
				}
				job.clicks = append(job.clicks, p)
			}

			logger := observability.GetLogger().Named("snapshot")
			sequence := isFramePattern(target)
			written := 0
			err = job.run(sequence, func(i int, c *draw.Canvas) error {
				name := target
				if sequence {
					name = fmt.Sprintf(target, i)
				}
				if err := writeFrame(cmd.OutOrStdout(), name, func(w io.Writer) error { return job.encode(w, c) }); err != nil {
					return fmt.Errorf("frame %d: %w", i, err)
				}
				written++
				logger.Debug("Frame written", zap.Int("frame", i), zap.String("out", name), zap.Int("commands", len(c.Commands())))
				return nil
			})
			if err != nil {
				return err
			}
			logger.Info("Snapshot complete",
				zap.String("scene", sc.Name()),
				zap.String("format", job.format),
				zap.Int("frames", job.frames),
				zap.Duration("step", job.step),
				zap.Int("written", written),
			)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&width, "width", 800, "surface width in pixels")
	flags.IntVar(&height, "height", 600, "surface height in pixels")
	flags.IntVarP(&frames, "frames", "n", 120, "number of steps to simulate")
	flags.Float64Var(&step, "step", 0, "seconds per step (0 means one target frame)")
	flags.StringVarP(&format, "format", "f", "png", "output format: png or svg")
	flags.StringVarP(&out, "out", "o", "snapshot.png", "output file, a printf pattern, or - for stdout")
	flags.StringArrayVar(&clicks, "click", nil, "x,y pointer click on the first frame (repeatable)")
	flags.BoolVar(&fire, "fire", false, "fire from the controlled drone on the first frame")
	return cmd
}

// writeFrame opens name (or uses stdout for "-") and hands it to encode
func writeFrame(stdout io.Writer, name string, encode func(io.Writer) error) error {
	if name == "-" {
		return encode(stdout)
	}
	if dir := filepath.Dir(name); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// frameVerb matches one integer verb such as %d or %04d
var frameVerb = regexp.MustCompile(`%0?[0-9]*d`)

// isFramePattern reports whether name carries exactly one frame number verb
// and no other unescaped %
func isFramePattern(name string) bool {
	rest := strings.ReplaceAll(name, "%%", "")
	if len(frameVerb.FindAllString(rest, -1)) != 1 {
		return false
	}
	return !strings.Contains(frameVerb.ReplaceAllString(rest, ""), "%")
}

// parsePoint reads "x,y"
func parsePoint(s string) (geom.Vec2, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return geom.Vec2{}, fmt.Errorf("click %q: want x,y", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return geom.Vec2{}, fmt.Errorf("click %q: %w", s, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return geom.Vec2{}, fmt.Errorf("click %q: %w", s, err)
	}
	return geom.V(x, y), nil
}
