package main

import (
	"math"

	"github.com/taigrr/galaxy/pkg/galaxy"
	"github.com/taigrr/galaxy/pkg/math3d"
	"github.com/taigrr/galaxy/pkg/render"
)

// Pose is everything that moves between frames.
type Pose struct {
	Spin     float64 // Galaxy rotation around Y
	Yaw      float64 // Camera orbit offset around Y
	Pitch    float64 // Camera orbit offset in elevation
	Distance float64 // Camera distance from the centre
}

// Scene ties a camera, a framebuffer and the point and overlay renderers
// together. The viewer and the snapshot command share it.
type Scene struct {
	Camera     *render.Camera
	Points     *render.PointRenderer
	Wire       *render.Wireframe
	Background render.Color
	ShowGrid   bool

	fb *render.Framebuffer
}

// NewScene creates a scene rendering into a width x height framebuffer.
func NewScene(width, height int, bg render.Color) *Scene {
	fb := render.NewFramebuffer(width, height)
	camera := render.NewCamera()
	camera.SetAspectRatio(aspect(width, height))
	camera.LookAt(math3d.Zero3())
	return &Scene{
		Camera:     camera,
		Points:     render.NewPointRenderer(camera, fb),
		Wire:       render.NewWireframe(camera, fb),
		Background: bg,
		fb:         fb,
	}
}

// Resize replaces the framebuffer.
func (s *Scene) Resize(width, height int) {
	s.fb = render.NewFramebuffer(width, height)
	s.Points.SetFramebuffer(s.fb)
	s.Wire.SetFramebuffer(s.fb)
	s.Camera.SetAspectRatio(aspect(width, height))
}

// Framebuffer returns the current render target.
func (s *Scene) Framebuffer() *render.Framebuffer {
	return s.fb
}

// Render draws f at pose into the framebuffer.
func (s *Scene) Render(f *galaxy.Field, pose Pose) {
	s.fb.Clear(s.Background)
	s.Camera.Orbit(pose.Distance, pose.Yaw, pose.Pitch)
	transform := math3d.RotateY(pose.Spin)

	if s.ShowGrid {
		radius := f.Params.Radius
		if radius <= 0 {
			radius = 1
		}
		s.Wire.DrawGrid(2*math.Ceil(radius), 1, render.RGB(40, 40, 48))
		s.Wire.DrawRing(radius, 64, transform, render.ColorGray)
		s.Wire.DrawAxes(1, transform)
	}

	s.Points.Exposure = exposure(s.fb, f.Len())
	s.Points.Draw(f, transform)
}

// exposure dims dense fields so the core does not wash out to white on
// small framebuffers.
func exposure(fb *render.Framebuffer, points int) float64 {
	if points == 0 {
		return 1
	}
	return math.Min(1, 2*float64(fb.Width*fb.Height)/float64(points))
}

func aspect(width, height int) float64 {
	if height == 0 {
		return 1
	}
	return float64(width) / float64(height)
}
