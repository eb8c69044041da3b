// Package asset holds the embedded palettes and vector geometry shared by
// every scene.
package asset

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"skyscenes/draw"
	"skyscenes/geom"
)

//go:embed scene.toml
var sceneTOML []byte

// Tint is a color written as "#rrggbb" or "#rrggbb@alpha"
type Tint draw.Color

// UnmarshalText implements encoding.TextUnmarshaler for TOML decoding
func (t *Tint) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	alpha := 1.0
	if hex, a, ok := strings.Cut(s, "@"); ok {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return fmt.Errorf("parse alpha in %q: %w", s, err)
		}
		s, alpha = hex, v
	}
	c, err := draw.ParseHex(s)
	if err != nil {
		return err
	}
	*t = Tint(c.WithAlpha(alpha))
	return nil
}

// Color returns the tint as a draw color
func (t Tint) Color() draw.Color {
	return draw.Color(t)
}

// Point is an [x, y] pair
type Point [2]float64

func (p Point) Vec() geom.Vec2 {
	return geom.V(p[0], p[1])
}

// Path converts a point list to vectors
func Path(pts []Point) []geom.Vec2 {
	out := make([]geom.Vec2, len(pts))
	for i, p := range pts {
		out[i] = p.Vec()
	}
	return out
}

// Rect is a filled rectangle in local coordinates
type Rect struct {
	X     float64 `toml:"x"`
	Y     float64 `toml:"y"`
	W     float64 `toml:"w"`
	H     float64 `toml:"h"`
	Color Tint    `toml:"color"`
}

// Disc is a filled circle
type Disc struct {
	X      float64 `toml:"x"`
	Y      float64 `toml:"y"`
	Radius float64 `toml:"radius"`
	Color  Tint    `toml:"color"`
}

// Stop is a gradient stop
type Stop struct {
	Offset float64 `toml:"offset"`
	Color  Tint    `toml:"color"`
}

type Fireworks struct {
	Background Tint   `toml:"background"`
	Hot        Tint   `toml:"hot"`
	Flicker    Tint   `toml:"flicker"`
	Palette    []Tint `toml:"palette"`
}

type Hero struct {
	Background Tint `toml:"background"`
	Accent     Tint `toml:"accent"`
}

// Slot places a drone relative to the surface size
type Slot struct {
	X      float64 `toml:"x"`
	Y      float64 `toml:"y"`
	Size   float64 `toml:"size"`
	Rate   float64 `toml:"rate"`
	Radius float64 `toml:"radius"`
}

type Cloud struct {
	X     float64 `toml:"x"`
	Y     float64 `toml:"y"`
	Scale float64 `toml:"scale"`
}

type Puff struct {
	X float64 `toml:"x"`
	Y float64 `toml:"y"`
	R float64 `toml:"r"`
}

type Sandbox struct {
	SkyTop    Tint    `toml:"sky_top"`
	SkyBottom Tint    `toml:"sky_bottom"`
	Cloud     Tint    `toml:"cloud"`
	HelpText  string  `toml:"help_text"`
	HelpFg    Tint    `toml:"help_fg"`
	HelpBg    Tint    `toml:"help_bg"`
	Sun       Disc    `toml:"sun"`
	Clouds    []Cloud `toml:"clouds"`
	Puffs     []Puff  `toml:"puffs"`
	Slots     []Slot  `toml:"slots"`
}

type Projectile struct {
	GlowRadius float64 `toml:"glow_radius"`
	CoreRadius float64 `toml:"core_radius"`
	GlowInner  Tint    `toml:"glow_inner"`
	GlowOuter  Tint    `toml:"glow_outer"`
	Core       Tint    `toml:"core"`
}

type Tower struct {
	X               float64   `toml:"x"`
	MastTop         float64   `toml:"mast_top"`
	Rects           []Rect    `toml:"rects"`
	Antenna         []float64 `toml:"antenna"`
	AntennaWidth    float64   `toml:"antenna_width"`
	AntennaColor    Tint      `toml:"antenna_color"`
	JointRadius     float64   `toml:"joint_radius"`
	JointColor      Tint      `toml:"joint_color"`
	DishRX          float64   `toml:"dish_rx"`
	DishRY          float64   `toml:"dish_ry"`
	DishAngle       float64   `toml:"dish_angle"`
	DishFill        Tint      `toml:"dish_fill"`
	DishStroke      Tint      `toml:"dish_stroke"`
	DishStrokeWidth float64   `toml:"dish_stroke_width"`
	BeaconY         float64   `toml:"beacon_y"`
	BeaconRadius    float64   `toml:"beacon_radius"`
	BeaconColor     Tint      `toml:"beacon_color"`
}

type Glow struct {
	X     float64 `toml:"x"`
	Y     float64 `toml:"y"`
	RX    float64 `toml:"rx"`
	RY    float64 `toml:"ry"`
	R0    float64 `toml:"r0"`
	R1    float64 `toml:"r1"`
	Stops []Stop  `toml:"stops"`
}

// Drone geometry is authored at size 100
type Drone struct {
	Body           []Rect  `toml:"body"`
	TailLight      Disc    `toml:"tail_light"`
	Glow           Glow    `toml:"glow"`
	Arm            []Point `toml:"arm"`
	ArmColor       Tint    `toml:"arm_color"`
	ArmDetail      []Point `toml:"arm_detail"`
	ArmDetailColor Tint    `toml:"arm_detail_color"`
	Motor          []Rect  `toml:"motor"`
	PropOffset     float64 `toml:"prop_offset"`
	Blade          []Point `toml:"blade"`
	BladeColor     Tint    `toml:"blade_color"`
	Shadow         Tint    `toml:"shadow"`
	ShadowOffset   float64 `toml:"shadow_offset"`
	Hubs           []Disc  `toml:"hubs"`
	NavLights      []Tint  `toml:"nav_lights"`
	NavRadius      float64 `toml:"nav_radius"`
	NavInner       float64 `toml:"nav_inner"`
	NavAlpha       float64 `toml:"nav_alpha"`
}

// Scene bundles every asset section
type Scene struct {
	Fireworks  Fireworks  `toml:"fireworks"`
	Hero       Hero       `toml:"hero"`
	Sandbox    Sandbox    `toml:"sandbox"`
	Projectile Projectile `toml:"projectile"`
	Tower      Tower      `toml:"tower"`
	Drone      Drone      `toml:"drone"`
}

// Decode reads a scene asset document
func Decode(r io.Reader) (*Scene, error) {
	var s Scene
	md, err := toml.NewDecoder(r).Decode(&s)
	if err != nil {
		return nil, fmt.Errorf("decode scene assets: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("decode scene assets: unknown keys %v", undecoded)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Load decodes the embedded scene assets
func Load() (*Scene, error) {
	return Decode(bytes.NewReader(sceneTOML))
}

// MustLoad is Load for callers that treat broken embedded assets as a bug
func MustLoad() *Scene {
	s, err := Load()
	if err != nil {
		panic(err)
	}
	return s
}

// Validate checks the sections scenes index into
func (s *Scene) Validate() error {
	if len(s.Fireworks.Palette) == 0 {
		return fmt.Errorf("fireworks.palette must not be empty")
	}
	if len(s.Drone.NavLights) == 0 {
		return fmt.Errorf("drone.nav_lights must not be empty")
	}
	if len(s.Drone.Arm) < 3 || len(s.Drone.Blade) < 3 {
		return fmt.Errorf("drone arm and blade need at least three points")
	}
	if len(s.Sandbox.Slots) == 0 {
		return fmt.Errorf("sandbox.slots must not be empty")
	}
	return nil
}

// Colors returns the fireworks palette as draw colors
func (f Fireworks) Colors() []draw.Color {
	out := make([]draw.Color, len(f.Palette))
	for i, t := range f.Palette {
		out[i] = t.Color()
	}
	return out
}
