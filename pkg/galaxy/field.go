package galaxy

import (
	"github.com/lucasb-eyer/go-colorful"
	"github.com/taigrr/galaxy/pkg/math3d"
)

// Field is a generated point cloud. Positions and Colors are parallel
// flat buffers holding three components per point, ready to hand to a
// renderer or an exporter. The caller owns both slices.
type Field struct {
	Params    Parameters
	Positions []float32 // x, y, z per point
	Colors    []float32 // r, g, b per point in [0, 1]
}

func newField(p Parameters) *Field {
	return &Field{
		Params:    p,
		Positions: make([]float32, p.Count*3),
		Colors:    make([]float32, p.Count*3),
	}
}

// Len returns the number of points. A nil or disposed field is empty.
func (f *Field) Len() int {
	if f == nil {
		return 0
	}
	return len(f.Positions) / 3
}

// Position returns point i.
func (f *Field) Position(i int) math3d.Vec3 {
	i3 := i * 3
	return math3d.V3(float64(f.Positions[i3]), float64(f.Positions[i3+1]), float64(f.Positions[i3+2]))
}

// Color returns the colour of point i.
func (f *Field) Color(i int) colorful.Color {
	i3 := i * 3
	return colorful.Color{R: float64(f.Colors[i3]), G: float64(f.Colors[i3+1]), B: float64(f.Colors[i3+2])}
}

// Bounds returns the axis-aligned bounding box of all points. An empty
// field reports a zero box.
func (f *Field) Bounds() (lo, hi math3d.Vec3) {
	n := f.Len()
	if n == 0 {
		return math3d.Zero3(), math3d.Zero3()
	}
	lo, hi = f.Position(0), f.Position(0)
	for i := 1; i < n; i++ {
		p := f.Position(i)
		lo = lo.Min(p)
		hi = hi.Max(p)
	}
	return lo, hi
}

// Dispose drops the backing buffers so they can be collected. It is safe
// to call more than once and on a nil field.
func (f *Field) Dispose() {
	if f == nil {
		return
	}
	f.Positions = nil
	f.Colors = nil
}
