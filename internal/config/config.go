// Package config loads the application configuration through viper.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"skyscenes/game"
	"skyscenes/scene"
	"skyscenes/sim"
	"skyscenes/termview"
)

// Config is the full application configuration.
type Config struct {
	Logger    LoggerConfig          `mapstructure:"logger" yaml:"logger"`
	Scene     string                `mapstructure:"scene" yaml:"scene"`
	Seed      uint64                `mapstructure:"seed" yaml:"seed"`
	Window    game.Config           `mapstructure:"window" yaml:"window"`
	Preview   termview.Config       `mapstructure:"preview" yaml:"preview"`
	Snapshot  SnapshotConfig        `mapstructure:"snapshot" yaml:"snapshot"`
	Fireworks scene.FireworksConfig `mapstructure:"fireworks" yaml:"fireworks"`
	Hero      scene.HeroConfig      `mapstructure:"hero" yaml:"hero"`
	Sandbox   scene.SandboxConfig   `mapstructure:"sandbox" yaml:"sandbox"`
}

// LoggerConfig holds all the configuration for the logger.
type LoggerConfig struct {
	Level       string      `mapstructure:"level" yaml:"level"`
	Format      string      `mapstructure:"format" yaml:"format"`
	AddSource   bool        `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string      `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string      `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int         `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int         `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int         `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool        `mapstructure:"compress" yaml:"compress"`
	Colors      ColorConfig `mapstructure:"colors" yaml:"colors"`
}

// ColorConfig maps log levels to terminal color names.
type ColorConfig struct {
	Debug  string `mapstructure:"debug" yaml:"debug"`
	Info   string `mapstructure:"info" yaml:"info"`
	Warn   string `mapstructure:"warn" yaml:"warn"`
	Error  string `mapstructure:"error" yaml:"error"`
	DPanic string `mapstructure:"dpanic" yaml:"dpanic"`
	Panic  string `mapstructure:"panic" yaml:"panic"`
	Fatal  string `mapstructure:"fatal" yaml:"fatal"`
}

// SnapshotConfig controls headless frame export.
type SnapshotConfig struct {
	Width  int     `mapstructure:"width" yaml:"width"`
	Height int     `mapstructure:"height" yaml:"height"`
	Frames int     `mapstructure:"frames" yaml:"frames"`
	Step   float64 `mapstructure:"step" yaml:"step"` // simulated seconds per frame; 0 means one target frame
	Format string  `mapstructure:"format" yaml:"format"`
	Out    string  `mapstructure:"out" yaml:"out"`
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Logger: LoggerConfig{
			Level:       "info",
			Format:      "console",
			ServiceName: "skyscenes",
			MaxSize:     20,
			MaxBackups:  3,
			MaxAge:      7,
			Colors: ColorConfig{
				Debug:  "cyan",
				Info:   "green",
				Warn:   "yellow",
				Error:  "red",
				DPanic: "magenta",
				Panic:  "magenta",
				Fatal:  "magenta",
			},
		},
		Scene:     "fireworks",
		Seed:      1,
		Window:    game.DefaultConfig(),
		Preview:   termview.DefaultConfig(),
		Snapshot:  SnapshotConfig{Width: 800, Height: 600, Frames: 120, Format: "png", Out: "snapshot.png"},
		Fireworks: scene.DefaultFireworksConfig(),
		Hero:      scene.DefaultHeroConfig(),
		Sandbox:   scene.DefaultSandboxConfig(),
	}
}

// SetDefaults registers the default values with v so that environment
// variables can override them.
func SetDefaults(v *viper.Viper) {
	d := Default()

	// Logger
	v.SetDefault("logger.level", d.Logger.Level)
	v.SetDefault("logger.format", d.Logger.Format)
	v.SetDefault("logger.add_source", d.Logger.AddSource)
	v.SetDefault("logger.service_name", d.Logger.ServiceName)
	v.SetDefault("logger.log_file", d.Logger.LogFile)
	v.SetDefault("logger.max_size", d.Logger.MaxSize)
	v.SetDefault("logger.max_backups", d.Logger.MaxBackups)
	v.SetDefault("logger.max_age", d.Logger.MaxAge)
	v.SetDefault("logger.compress", d.Logger.Compress)
	v.SetDefault("logger.colors.debug", d.Logger.Colors.Debug)
	v.SetDefault("logger.colors.info", d.Logger.Colors.Info)
	v.SetDefault("logger.colors.warn", d.Logger.Colors.Warn)
	v.SetDefault("logger.colors.error", d.Logger.Colors.Error)
	v.SetDefault("logger.colors.dpanic", d.Logger.Colors.DPanic)
	v.SetDefault("logger.colors.panic", d.Logger.Colors.Panic)
	v.SetDefault("logger.colors.fatal", d.Logger.Colors.Fatal)

	v.SetDefault("scene", d.Scene)
	v.SetDefault("seed", d.Seed)

	// Window
	v.SetDefault("window.width", d.Window.Width)
	v.SetDefault("window.height", d.Window.Height)
	v.SetDefault("window.title", d.Window.Title)
	v.SetDefault("window.resizable", d.Window.Resizable)
	v.SetDefault("window.max_delta", d.Window.MaxDelta)
	v.SetDefault("window.show_fps", d.Window.ShowFPS)
	v.SetDefault("window.spawn_step", d.Window.SpawnStep)
	v.SetDefault("window.profile.enabled", d.Window.Profile.Enabled)
	v.SetDefault("window.profile.dir", d.Window.Profile.Dir)
	v.SetDefault("window.profile.threshold", d.Window.Profile.Threshold)
	v.SetDefault("window.profile.grace", d.Window.Profile.Grace)
	v.SetDefault("window.profile.duration", d.Window.Profile.Duration)
	v.SetDefault("window.profile.cooldown", d.Window.Profile.Cooldown)

	// Terminal preview
	v.SetDefault("preview.fps", d.Preview.FPS)
	v.SetDefault("preview.pixel_scale", d.Preview.PixelScale)
	v.SetDefault("preview.key_hold", d.Preview.KeyHold)
	v.SetDefault("preview.spawn_step", d.Preview.SpawnStep)
	v.SetDefault("preview.max_delta", d.Preview.MaxDelta)
	v.SetDefault("preview.status_line", d.Preview.StatusLine)

	// Snapshot
	v.SetDefault("snapshot.width", d.Snapshot.Width)
	v.SetDefault("snapshot.height", d.Snapshot.Height)
	v.SetDefault("snapshot.frames", d.Snapshot.Frames)
	v.SetDefault("snapshot.step", d.Snapshot.Step)
	v.SetDefault("snapshot.format", d.Snapshot.Format)
	v.SetDefault("snapshot.out", d.Snapshot.Out)

	// Scenes. Every tuning key is registered so AutomaticEnv can reach it.
	fw := d.Fireworks
	v.SetDefault("fireworks.target_fps", fw.TargetFPS)
	v.SetDefault("fireworks.spawn_probability", fw.SpawnProbability)
	v.SetDefault("fireworks.origin_spread", fw.OriginSpread)
	v.SetDefault("fireworks.origin_drop", fw.OriginDrop)
	setRange(v, "fireworks.target_band", fw.TargetBand)
	v.SetDefault("fireworks.flicker_chance", fw.FlickerChance)
	v.SetDefault("fireworks.shell.gravity", fw.Shell.Gravity)
	setRange(v, "fireworks.shell.flight_speed", fw.Shell.FlightSpeed)
	v.SetDefault("fireworks.shell.min_flight_frames", fw.Shell.MinFlightFrames)
	v.SetDefault("fireworks.shell.radius", fw.Shell.Radius)
	setRange(v, "fireworks.shell.alpha", fw.Shell.Alpha)
	v.SetDefault("fireworks.shell.trail_segments", fw.Shell.TrailSegments)
	v.SetDefault("fireworks.shell.cull_margin", fw.Shell.CullMargin)
	v.SetDefault("fireworks.shell.burst.count.min", fw.Shell.Burst.Count.Min)
	v.SetDefault("fireworks.shell.burst.count.max", fw.Shell.Burst.Count.Max)
	setRange(v, "fireworks.shell.burst.speed", fw.Shell.Burst.Speed)
	setRange(v, "fireworks.shell.burst.radius", fw.Shell.Burst.Radius)
	setRange(v, "fireworks.shell.burst.decay", fw.Shell.Burst.Decay)
	v.SetDefault("fireworks.shell.burst.drag", fw.Shell.Burst.Drag)
	v.SetDefault("fireworks.shell.burst.hot_chance", fw.Shell.Burst.HotChance)

	v.SetDefault("hero.target_fps", d.Hero.TargetFPS)
	setRange(v, "hero.size", d.Hero.Size)
	v.SetDefault("hero.speed", d.Hero.Speed)
	v.SetDefault("hero.shrink", d.Hero.Shrink)
	v.SetDefault("hero.min_size", d.Hero.MinSize)
	v.SetDefault("hero.max_particles", d.Hero.MaxParticles)

	sb := d.Sandbox
	v.SetDefault("sandbox.target_fps", sb.TargetFPS)
	v.SetDefault("sandbox.show_help", sb.ShowHelp)
	setRange(v, "sandbox.drone.prop_speed", sb.Drone.PropSpeed)
	v.SetDefault("sandbox.drone.turn_speed", sb.Drone.TurnSpeed)
	v.SetDefault("sandbox.drone.move_factor", sb.Drone.MoveFactor)
	v.SetDefault("sandbox.projectile.speed", sb.Projectile.Speed)
	v.SetDefault("sandbox.projectile.life", sb.Projectile.Life)
	v.SetDefault("sandbox.projectile.nose_factor", sb.Projectile.NoseFactor)
	v.SetDefault("sandbox.projectile.margin", sb.Projectile.Margin)
}

func setRange(v *viper.Viper, key string, r sim.Range) {
	v.SetDefault(key+".min", r.Min)
	v.SetDefault(key+".max", r.Max)
}

// NewConfigFromViper decodes v over the defaults and validates the result.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	cfg := Default()
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// Load reads the optional config file at path (or ./skyscenes.yaml) and the
// SKYSCENES_ environment.
func Load(path string) (*Config, error) {
	v := viper.New()
	SetDefaults(v)
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("skyscenes")
		v.SetConfigType("yaml")
	}
	v.SetEnvPrefix("SKYSCENES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}
	return NewConfigFromViper(v)
}

// Validate rejects sizes and rates the hosts cannot run with. Probabilities
// are clamped by the scenes and are not checked here.
func (c *Config) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", name, v))
		}
	}
	positive("window.width", float64(c.Window.Width))
	positive("window.height", float64(c.Window.Height))
	positive("window.max_delta", c.Window.MaxDelta)
	positive("preview.fps", c.Preview.FPS)
	positive("preview.pixel_scale", c.Preview.PixelScale)
	positive("preview.max_delta", c.Preview.MaxDelta)
	positive("snapshot.width", float64(c.Snapshot.Width))
	positive("snapshot.height", float64(c.Snapshot.Height))
	positive("snapshot.frames", float64(c.Snapshot.Frames))
	positive("fireworks.target_fps", c.Fireworks.TargetFPS)
	positive("hero.target_fps", c.Hero.TargetFPS)
	positive("sandbox.target_fps", c.Sandbox.TargetFPS)

	errs = append(errs, validateShell("fireworks.shell", c.Fireworks.Shell)...)

	if c.Snapshot.Step < 0 {
		errs = append(errs, fmt.Errorf("snapshot.step must not be negative, got %v", c.Snapshot.Step))
	}
	if c.Preview.KeyHold < 0 {
		errs = append(errs, fmt.Errorf("preview.key_hold must not be negative, got %v", c.Preview.KeyHold))
	}
	if c.Window.Profile.Enabled && c.Window.Profile.Duration <= 0 {
		errs = append(errs, fmt.Errorf("window.profile.duration must be positive, got %v", c.Window.Profile.Duration))
	}
	switch c.Snapshot.Format {
	case "png", "svg":
	default:
		errs = append(errs, fmt.Errorf("snapshot.format must be png or svg, got %q", c.Snapshot.Format))
	}
	return errors.Join(errs...)
}

// SceneOptions builds the scene options for this configuration.
func (c *Config) SceneOptions() scene.Options {
	opts := scene.DefaultOptions()
	opts.Seed = c.Seed
	opts.Fireworks = c.Fireworks
	opts.Hero = c.Hero
	opts.Sandbox = c.Sandbox
	return opts
}

// SnapshotStep returns the simulated time between exported frames for a
// scene running at targetFPS.
func (c *Config) SnapshotStep(targetFPS float64) time.Duration {
	step := c.Snapshot.Step
	if step == 0 {
		step = 1 / targetFPS
	}
	return time.Duration(step * float64(time.Second))
}

// validateShell rejects shell tuning that cannot produce a flight or a burst
func validateShell(prefix string, s sim.ShellConfig) []error {
	var errs []error
	if s.FlightSpeed.Min <= 0 || s.FlightSpeed.Max < s.FlightSpeed.Min {
		errs = append(errs, fmt.Errorf("%s.flight_speed must satisfy 0 < min <= max, got %v..%v", prefix, s.FlightSpeed.Min, s.FlightSpeed.Max))
	}
	if s.MinFlightFrames <= 0 {
		errs = append(errs, fmt.Errorf("%s.min_flight_frames must be positive, got %v", prefix, s.MinFlightFrames))
	}
	if s.TrailSegments < 0 {
		errs = append(errs, fmt.Errorf("%s.trail_segments must not be negative, got %d", prefix, s.TrailSegments))
	}
	b := s.Burst
	if b.Count.Min < 0 || b.Count.Max < b.Count.Min {
		errs = append(errs, fmt.Errorf("%s.burst.count must satisfy 0 <= min <= max, got %d..%d", prefix, b.Count.Min, b.Count.Max))
	}
	if b.Decay.Min <= 0 || b.Decay.Max < b.Decay.Min {
		errs = append(errs, fmt.Errorf("%s.burst.decay must satisfy 0 < min <= max, got %v..%v", prefix, b.Decay.Min, b.Decay.Max))
	}
	return errs
}
