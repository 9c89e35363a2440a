package main

import "github.com/charmbracelet/harmonica"

// RotationAxis tracks position and velocity for one rotation axis with spring decay
type RotationAxis struct {
	Position  float64
	Velocity  float64
	velSpring harmonica.Spring
	velAccel  float64 // internal spring velocity (for animating Velocity toward 0)
}

// NewRotationAxis creates an axis whose velocity settles to zero without
// overshoot.
func NewRotationAxis(fps int) RotationAxis {
	return RotationAxis{
		velSpring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
	}
}

// Update applies velocity to position and decays velocity toward 0.
func (a *RotationAxis) Update() {
	a.Position += a.Velocity
	a.Velocity, a.velAccel = a.velSpring.Update(a.Velocity, a.velAccel, 0)
}

// Orbit holds the camera orbit offsets driven by user input.
type Orbit struct {
	Pitch, Yaw RotationAxis
	fps        int
}

func NewOrbit(fps int) *Orbit {
	return &Orbit{
		Pitch: NewRotationAxis(fps),
		Yaw:   NewRotationAxis(fps),
		fps:   fps,
	}
}

func (o *Orbit) Update() {
	o.Pitch.Update()
	o.Yaw.Update()
}

func (o *Orbit) ApplyImpulse(pitch, yaw float64) {
	o.Pitch.Velocity += pitch
	o.Yaw.Velocity += yaw
}

func (o *Orbit) Reset() {
	o.Pitch = NewRotationAxis(o.fps)
	o.Yaw = NewRotationAxis(o.fps)
}

// Zoom eases the camera distance toward a target.
type Zoom struct {
	Distance float64
	Target   float64
	Min, Max float64
	velocity float64
	spring   harmonica.Spring
}

// NewZoom starts settled at distance.
func NewZoom(fps int, distance float64) *Zoom {
	return &Zoom{
		Distance: distance,
		Target:   distance,
		Min:      1,
		Max:      40,
		spring:   harmonica.NewSpring(harmonica.FPS(fps), 6.0, 1.0),
	}
}

// Step moves the target by delta, clamped to [Min, Max].
func (z *Zoom) Step(delta float64) {
	z.Target = min(max(z.Target+delta, z.Min), z.Max)
}

func (z *Zoom) Update() {
	z.Distance, z.velocity = z.spring.Update(z.Distance, z.velocity, z.Target)
}
