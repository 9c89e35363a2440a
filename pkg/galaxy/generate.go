package galaxy

import (
	"math"

	"github.com/taigrr/galaxy/pkg/math3d"
)

// verticalSquash compresses the vertical spread relative to the disc.
const verticalSquash = 8

// Generate builds a spiral field from p, drawing every random value from rng.
// It has no side effects besides consuming rng, so a seeded source yields
// the same field on every call.
//
// Point i sits at a uniform radius r on arm i mod Branches, twisted by
// r*Spin. Each axis is then offset by u^RandomnessPower * Randomness * r
// with a random sign; the vertical offset is divided by 8. The colour is the
// RGB blend of InsideColor and OutsideColor at r/Radius.
func Generate(p Parameters, rng Source) (*Field, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	f := newField(p)
	for i := range p.Count {
		f.fill(i, rng)
	}
	return f, nil
}

// Regenerate replaces old with a freshly generated field. The previous
// field is disposed only once p is known to be valid, so a rejected edit
// leaves the caller's current field intact.
func Regenerate(old *Field, p Parameters, rng Source) (*Field, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	old.Dispose()
	return Generate(p, rng)
}

// fill computes point i in place.
func (f *Field) fill(i int, rng Source) {
	p := f.Params

	r := rng.Float64() * p.Radius
	spinAngle := r * p.Spin
	branchAngle := float64(i%p.Branches) / float64(p.Branches) * 2 * math.Pi

	scale := p.Randomness * r
	jitter := math3d.V3(
		signedOffset(rng, p.RandomnessPower)*scale,
		signedOffset(rng, p.RandomnessPower)*scale/verticalSquash,
		signedOffset(rng, p.RandomnessPower)*scale,
	)
	pos := math3d.OnDisc(branchAngle+spinAngle, r, 0).Add(jitter)

	var t float64
	if p.Radius > 0 {
		t = r / p.Radius
	}
	c := p.InsideColor.BlendRgb(p.OutsideColor, t)

	i3 := i * 3
	f.Positions[i3] = float32(pos.X)
	f.Positions[i3+1] = float32(pos.Y)
	f.Positions[i3+2] = float32(pos.Z)
	f.Colors[i3] = float32(c.R)
	f.Colors[i3+1] = float32(c.G)
	f.Colors[i3+2] = float32(c.B)
}
