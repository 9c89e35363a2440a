// Package galaxy generates spiral point fields: a fixed number of points
// spread along evenly spaced spinning arms, each coloured by its distance from
// the centre.
package galaxy

import (
	"errors"
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidParameter is returned when parameters cannot produce a field.
var ErrInvalidParameter = errors.New("invalid parameter")

// Parameters configures a single generation. The zero value is not usable;
// start from DefaultParameters.
type Parameters struct {
	Count           int     // Number of points
	Size            float64 // Point size hint for renderers, unused by generation
	Radius          float64 // Maximum spawn distance from the centre
	Branches        int     // Number of spiral arms
	Spin            float64 // Twist in radians per unit of radius
	Randomness      float64 // Perturbation magnitude relative to the point radius
	RandomnessPower float64 // Exponent on the perturbation draw, higher is tighter

	InsideColor  colorful.Color // Colour at the centre
	OutsideColor colorful.Color // Colour at Radius
}

// DefaultParameters returns a three-armed orange-to-blue galaxy.
func DefaultParameters() Parameters {
	return Parameters{
		Count:           100000,
		Size:            0.01,
		Radius:          5,
		Branches:        3,
		Spin:            1,
		Randomness:      0.2,
		RandomnessPower: 3,
		InsideColor:     mustHex("#ff6030"),
		OutsideColor:    mustHex("#1b3984"),
	}
}

// Validate reports the first parameter that would make generation fail or
// produce NaN coordinates. Errors wrap ErrInvalidParameter.
func (p Parameters) Validate() error {
	switch {
	case p.Branches < 1:
		return fmt.Errorf("%w: branches must be at least 1, got %d", ErrInvalidParameter, p.Branches)
	case p.Count < 0:
		return fmt.Errorf("%w: count must not be negative, got %d", ErrInvalidParameter, p.Count)
	case !finite(p.Radius) || p.Radius < 0:
		return fmt.Errorf("%w: radius must be a non-negative number, got %v", ErrInvalidParameter, p.Radius)
	case !finite(p.Spin):
		return fmt.Errorf("%w: spin must be finite, got %v", ErrInvalidParameter, p.Spin)
	case !finite(p.Randomness) || p.Randomness < 0:
		return fmt.Errorf("%w: randomness must be a non-negative number, got %v", ErrInvalidParameter, p.Randomness)
	case !finite(p.RandomnessPower) || p.RandomnessPower <= 0:
		return fmt.Errorf("%w: randomness power must be positive, got %v", ErrInvalidParameter, p.RandomnessPower)
	}
	return nil
}

// Limits bounds each tunable parameter for interactive editing.
type Limits struct {
	MinCount, MaxCount           int
	MinSize, MaxSize             float64
	MinRadius, MaxRadius         float64
	MinBranches, MaxBranches     int
	MinSpin, MaxSpin             float64
	MinRandomness, MaxRandomness float64
	MinPower, MaxPower           float64
}

// DefaultLimits matches the usual slider ranges for each parameter,
// except that a single arm is allowed.
var DefaultLimits = Limits{
	MinCount: 100, MaxCount: 1000000,
	MinSize: 0.001, MaxSize: 0.1,
	MinRadius: 0.01, MaxRadius: 20,
	MinBranches: 1, MaxBranches: 20,
	MinSpin: -5, MaxSpin: 5,
	MinRandomness: 0, MaxRandomness: 2,
	MinPower: 1, MaxPower: 10,
}

// Clamp returns a copy of p with every tunable forced into l.
func (p Parameters) Clamp(l Limits) Parameters {
	p.Count = min(max(p.Count, l.MinCount), l.MaxCount)
	p.Size = math.Min(math.Max(p.Size, l.MinSize), l.MaxSize)
	p.Radius = math.Min(math.Max(p.Radius, l.MinRadius), l.MaxRadius)
	p.Branches = min(max(p.Branches, l.MinBranches), l.MaxBranches)
	p.Spin = math.Min(math.Max(p.Spin, l.MinSpin), l.MaxSpin)
	p.Randomness = math.Min(math.Max(p.Randomness, l.MinRandomness), l.MaxRandomness)
	p.RandomnessPower = math.Min(math.Max(p.RandomnessPower, l.MinPower), l.MaxPower)
	return p
}

// ParseColor parses a "#rrggbb" or "#rgb" colour.
func ParseColor(s string) (colorful.Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("%w: colour %q: %v", ErrInvalidParameter, s, err)
	}
	return c, nil
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
