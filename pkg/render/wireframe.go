package render

import (
	"math"

	"github.com/taigrr/galaxy/pkg/math3d"
)

// Wireframe draws guide overlays (axes, ground grid, radius ring) in 3D.
type Wireframe struct {
	camera *Camera
	fb     *Framebuffer
}

// NewWireframe creates a new wireframe renderer.
func NewWireframe(camera *Camera, fb *Framebuffer) *Wireframe {
	return &Wireframe{
		camera: camera,
		fb:     fb,
	}
}

// SetFramebuffer retargets the overlay renderer.
func (w *Wireframe) SetFramebuffer(fb *Framebuffer) {
	w.fb = fb
}

// DrawLine3D draws a line in 3D space.
func (w *Wireframe) DrawLine3D(p1, p2 math3d.Vec3, color Color) {
	x1, y1, _, vis1 := w.camera.WorldToScreen(p1, w.fb.Width, w.fb.Height)
	x2, y2, _, vis2 := w.camera.WorldToScreen(p2, w.fb.Width, w.fb.Height)

	// Only draw when both ends project; there is no line clipping.
	if !vis1 || !vis2 {
		return
	}

	w.fb.DrawLine(int(x1), int(y1), int(x2), int(y2), color)
}

// DrawAxes draws the coordinate axes at the origin.
func (w *Wireframe) DrawAxes(length float64, transform math3d.Mat4) {
	origin := transform.MulVec3(math3d.Zero3())
	w.DrawLine3D(origin, transform.MulVec3(math3d.V3(length, 0, 0)), ColorRed)
	w.DrawLine3D(origin, transform.MulVec3(math3d.V3(0, length, 0)), ColorGreen)
	w.DrawLine3D(origin, transform.MulVec3(math3d.V3(0, 0, length)), ColorBlue)
}

// DrawGrid draws a grid on the XZ plane at y=0.
func (w *Wireframe) DrawGrid(size, step float64, color Color) {
	half := size / 2
	for x := -half; x <= half; x += step {
		w.DrawLine3D(math3d.V3(x, 0, -half), math3d.V3(x, 0, half), color)
	}
	for z := -half; z <= half; z += step {
		w.DrawLine3D(math3d.V3(-half, 0, z), math3d.V3(half, 0, z), color)
	}
}

// DrawRing draws a circle of radius r on the XZ plane, transformed.
func (w *Wireframe) DrawRing(r float64, segments int, transform math3d.Mat4, color Color) {
	if segments < 3 {
		segments = 3
	}
	prev := transform.MulVec3(math3d.OnDisc(0, r, 0))
	for i := 1; i <= segments; i++ {
		next := transform.MulVec3(math3d.OnDisc(float64(i)/float64(segments)*2*math.Pi, r, 0))
		w.DrawLine3D(prev, next, color)
		prev = next
	}
}
