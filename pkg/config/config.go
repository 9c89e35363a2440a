// Package config reads and writes galaxy parameter files in TOML.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/taigrr/galaxy/pkg/galaxy"
)

// File is the on-disk form of a galaxy setup.
type File struct {
	Seed    uint64 `toml:"seed"`
	Workers int    `toml:"workers" comment:"generation goroutines, 0 uses every CPU"`
	Galaxy  Galaxy `toml:"galaxy"`
	View    View   `toml:"view"`
}

// Galaxy mirrors galaxy.Parameters with colours as hex strings.
type Galaxy struct {
	Count           int     `toml:"count"`
	Size            float64 `toml:"size"`
	Radius          float64 `toml:"radius"`
	Branches        int     `toml:"branches"`
	Spin            float64 `toml:"spin"`
	Randomness      float64 `toml:"randomness"`
	RandomnessPower float64 `toml:"randomness_power"`
	InsideColor     string  `toml:"inside_color"`
	OutsideColor    string  `toml:"outside_color"`
}

// View holds viewer and snapshot settings.
type View struct {
	FPS            int     `toml:"fps"`
	Background     string  `toml:"background"`
	CameraDistance float64 `toml:"camera_distance"`
	RotationSpeed  float64 `toml:"rotation_speed" comment:"auto-rotation in radians per second"`
	Width          int     `toml:"width" comment:"snapshot width in pixels"`
	Height         int     `toml:"height" comment:"snapshot height in pixels"`
}

// Default returns the stock galaxy and viewer settings.
func Default() File {
	return File{
		Seed:   1,
		Galaxy: FromParameters(galaxy.DefaultParameters()),
		View:   DefaultView(),
	}
}

// DefaultView returns the viewer defaults.
func DefaultView() View {
	return View{
		FPS:            60,
		Background:     "#000000",
		CameraDistance: 3 * 1.7320508075688772, // camera at (3, 3, 3)
		RotationSpeed:  1.0 / 8,
		Width:          640,
		Height:         480,
	}
}

// Load reads path on top of Default, so a file only needs the keys it
// changes.
func Load(path string) (File, error) {
	f := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return f, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &f); err != nil {
		return f, fmt.Errorf("parse config %s: %w", path, err)
	}
	return f, nil
}

// Save writes f to path.
func (f File) Save(path string) error {
	data, err := toml.Marshal(f)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Parameters converts the [galaxy] table and validates it.
func (f File) Parameters() (galaxy.Parameters, error) {
	g := f.Galaxy
	inside, err := galaxy.ParseColor(g.InsideColor)
	if err != nil {
		return galaxy.Parameters{}, fmt.Errorf("inside_color: %w", err)
	}
	outside, err := galaxy.ParseColor(g.OutsideColor)
	if err != nil {
		return galaxy.Parameters{}, fmt.Errorf("outside_color: %w", err)
	}
	p := galaxy.Parameters{
		Count:           g.Count,
		Size:            g.Size,
		Radius:          g.Radius,
		Branches:        g.Branches,
		Spin:            g.Spin,
		Randomness:      g.Randomness,
		RandomnessPower: g.RandomnessPower,
		InsideColor:     inside,
		OutsideColor:    outside,
	}
	if err := p.Validate(); err != nil {
		return galaxy.Parameters{}, err
	}
	return p, nil
}

// FromParameters converts p to its file form.
func FromParameters(p galaxy.Parameters) Galaxy {
	return Galaxy{
		Count:           p.Count,
		Size:            p.Size,
		Radius:          p.Radius,
		Branches:        p.Branches,
		Spin:            p.Spin,
		Randomness:      p.Randomness,
		RandomnessPower: p.RandomnessPower,
		InsideColor:     p.InsideColor.Hex(),
		OutsideColor:    p.OutsideColor.Hex(),
	}
}
