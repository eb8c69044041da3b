package game

import "time"

// Config holds the window host settings
type Config struct {
	// Width and Height are the initial window size in pixels
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`

	Title     string `mapstructure:"title"`
	Resizable bool   `mapstructure:"resizable"`

	// MaxDelta clamps a single frame step in seconds
	MaxDelta float64 `mapstructure:"max_delta"`

	// ShowFPS starts with the frame rate overlay visible (F1 toggles it)
	ShowFPS bool `mapstructure:"show_fps"`

	// SpawnStep is the spawn probability change per wheel notch or +/- press
	SpawnStep float64 `mapstructure:"spawn_step"`

	Profile ProfileConfig `mapstructure:"profile"`
}

// ProfileConfig controls automatic capture on frame rate drops
type ProfileConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Dir     string `mapstructure:"dir"`

	// Threshold is the frame rate below which a capture is taken
	Threshold float64 `mapstructure:"threshold"`

	// Grace ignores drops right after start while assets warm up
	Grace time.Duration `mapstructure:"grace"`

	Duration time.Duration `mapstructure:"duration"`
	Cooldown time.Duration `mapstructure:"cooldown"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() Config {
	return Config{
		Width:     1024,
		Height:    768,
		Title:     "Sky Scenes",
		Resizable: true,
		MaxDelta:  0.1,
		SpawnStep: 0.01,
		Profile: ProfileConfig{
			Dir:       "profiles",
			Threshold: 45,
			Grace:     3 * time.Second,
			Duration:  5 * time.Second,
			Cooldown:  10 * time.Second,
		},
	}
}
