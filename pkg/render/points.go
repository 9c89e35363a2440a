package render

import (
	"math"

	"github.com/taigrr/galaxy/pkg/galaxy"
	"github.com/taigrr/galaxy/pkg/math3d"
)

// BlendMode selects how splatted points combine with the framebuffer.
type BlendMode int

const (
	BlendAdditive BlendMode = iota // Points add light, overlaps brighten
	BlendReplace                   // Last point written wins
)

// PointRenderer splats point fields onto a framebuffer. Points never write
// depth, so draw order only matters in BlendReplace mode.
type PointRenderer struct {
	camera *Camera
	fb     *Framebuffer

	Blend           BlendMode
	SizeAttenuation bool    // Shrink points with distance
	Exposure        float64 // Brightness multiplier for additive blending
	MinCoverage     float64 // Lower bound on the weight of sub-pixel points

	Stats PointStats
}

// PointStats counts what the last Draw call did.
type PointStats struct {
	Drawn  int
	Culled int
}

// NewPointRenderer creates a point renderer with additive blending and size
// attenuation enabled.
func NewPointRenderer(camera *Camera, fb *Framebuffer) *PointRenderer {
	return &PointRenderer{
		camera:          camera,
		fb:              fb,
		Blend:           BlendAdditive,
		SizeAttenuation: true,
		Exposure:        1,
		MinCoverage:     0.1,
	}
}

// SetFramebuffer retargets the renderer, for example after a resize.
func (r *PointRenderer) SetFramebuffer(fb *Framebuffer) {
	r.fb = fb
}

// Draw projects every point of f through transform and the camera.
// Field.Params.Size is the point diameter in world units.
func (r *PointRenderer) Draw(f *galaxy.Field, transform math3d.Mat4) {
	r.Stats = PointStats{}
	n := f.Len()
	if n == 0 || r.fb == nil {
		return
	}

	mvp := r.camera.ViewProjectionMatrix().Mul(transform)
	focal := r.camera.FocalLength(r.fb.Height)
	size := f.Params.Size

	for i := range n {
		i3 := i * 3
		pos := math3d.V4(float64(f.Positions[i3]), float64(f.Positions[i3+1]), float64(f.Positions[i3+2]), 1)
		x, y, depth, ok := project(mvp.MulVec4(pos), r.fb.Width, r.fb.Height)
		if !ok {
			r.Stats.Culled++
			continue
		}
		r.Stats.Drawn++

		diameter := size * focal
		if r.SizeAttenuation {
			diameter /= depth
		}
		cr, cg, cb := float64(f.Colors[i3]), float64(f.Colors[i3+1]), float64(f.Colors[i3+2])
		r.splat(x, y, diameter, cr, cg, cb)
	}
}

// splat draws one point of the given pixel diameter centred at (x, y).
func (r *PointRenderer) splat(x, y, diameter, cr, cg, cb float64) {
	px, py := int(x), int(y)
	if diameter <= 1 {
		// Sub-pixel points contribute in proportion to the area they cover.
		weight := math.Max(diameter*diameter, r.MinCoverage)
		r.plot(px, py, cr, cg, cb, weight)
		return
	}

	rad := diameter / 2
	ir := int(math.Ceil(rad))
	radSq := rad * rad
	for dy := -ir; dy <= ir; dy++ {
		for dx := -ir; dx <= ir; dx++ {
			if float64(dx*dx+dy*dy) <= radSq {
				r.plot(px+dx, py+dy, cr, cg, cb, 1)
			}
		}
	}
}

func (r *PointRenderer) plot(x, y int, cr, cg, cb, weight float64) {
	switch r.Blend {
	case BlendReplace:
		r.fb.SetPixel(x, y, RGB(unit8(cr), unit8(cg), unit8(cb)))
	default:
		r.fb.AddPixel(x, y, cr, cg, cb, weight*r.Exposure)
	}
}

func unit8(v float64) uint8 {
	return uint8(math.Max(0, math.Min(1, v))*255 + 0.5)
}
