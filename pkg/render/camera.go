package render

import (
	"math"

	"github.com/taigrr/galaxy/pkg/math3d"
)

// Camera is a perspective camera that always looks at a target point.
type Camera struct {
	Position math3d.Vec3
	Target   math3d.Vec3

	FOV         float64 // Vertical field of view in radians
	AspectRatio float64 // Width / Height
	Near        float64
	Far         float64

	viewProj math3d.Mat4
	dirty    bool
}

// NewCamera creates a camera at (3, 3, 3) looking at the origin with a
// 75 degree field of view.
func NewCamera() *Camera {
	return &Camera{
		Position:    math3d.V3(3, 3, 3),
		FOV:         75 * math.Pi / 180,
		AspectRatio: 4.0 / 3.0,
		Near:        0.1,
		Far:         100,
		dirty:       true,
	}
}

// SetPosition sets the camera position.
func (c *Camera) SetPosition(pos math3d.Vec3) {
	c.Position = pos
	c.dirty = true
}

// LookAt points the camera at target.
func (c *Camera) LookAt(target math3d.Vec3) {
	c.Target = target
	c.dirty = true
}

// SetFOV sets the field of view (in radians).
func (c *Camera) SetFOV(fov float64) {
	c.FOV = fov
	c.dirty = true
}

// SetAspectRatio sets the aspect ratio.
func (c *Camera) SetAspectRatio(aspect float64) {
	c.AspectRatio = aspect
	c.dirty = true
}

// SetClipPlanes sets the near and far clipping planes.
func (c *Camera) SetClipPlanes(near, far float64) {
	c.Near = near
	c.Far = far
	c.dirty = true
}

// Orbit places the camera at distance from Target along the direction
// (1, 1, 1) rotated by yaw around Y and tilted by pitch.
func (c *Camera) Orbit(distance, yaw, pitch float64) {
	elevation := math.Asin(1/math.Sqrt(3)) + pitch
	elevation = math.Max(-math.Pi/2+0.01, math.Min(math.Pi/2-0.01, elevation))
	azimuth := math.Pi/4 + yaw
	dir := math3d.OnDisc(azimuth, math.Cos(elevation), math.Sin(elevation))
	c.SetPosition(c.Target.Add(dir.Scale(distance)))
}

// ViewMatrix returns the view matrix.
func (c *Camera) ViewMatrix() math3d.Mat4 {
	return math3d.LookAt(c.Position, c.Target, math3d.Up())
}

// ProjectionMatrix returns the projection matrix.
func (c *Camera) ProjectionMatrix() math3d.Mat4 {
	return math3d.Perspective(c.FOV, c.AspectRatio, c.Near, c.Far)
}

// ViewProjectionMatrix returns the combined view-projection matrix.
func (c *Camera) ViewProjectionMatrix() math3d.Mat4 {
	if c.dirty {
		c.viewProj = c.ProjectionMatrix().Mul(c.ViewMatrix())
		c.dirty = false
	}
	return c.viewProj
}

// FocalLength returns how many pixels one world unit spans at distance 1
// for a viewport screenHeight pixels tall.
func (c *Camera) FocalLength(screenHeight int) float64 {
	return float64(screenHeight) / 2 / math.Tan(c.FOV/2)
}

// WorldToScreen transforms a world point to screen coordinates.
// Returns (screenX, screenY, depth, visible).
func (c *Camera) WorldToScreen(worldPos math3d.Vec3, screenWidth, screenHeight int) (x, y, depth float64, visible bool) {
	return project(c.ViewProjectionMatrix().MulVec4(math3d.Point(worldPos)), screenWidth, screenHeight)
}

// project maps a clip-space position to screen space. depth is the view
// distance (clip W).
func project(clip math3d.Vec4, screenWidth, screenHeight int) (x, y, depth float64, visible bool) {
	if clip.W <= 0 {
		return 0, 0, 0, false
	}

	ndc := clip.PerspectiveDivide()
	if ndc.X < -1 || ndc.X > 1 || ndc.Y < -1 || ndc.Y > 1 || ndc.Z < -1 || ndc.Z > 1 {
		return 0, 0, 0, false
	}

	x = (ndc.X + 1) * 0.5 * float64(screenWidth)
	y = (1 - ndc.Y) * 0.5 * float64(screenHeight) // Y is flipped
	return x, y, clip.W, true
}
