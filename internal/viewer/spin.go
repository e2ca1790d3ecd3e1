// Package viewer holds the interaction model shared by the prism
// viewers: spring-damped rotation state and scene loading.
package viewer

import (
	"github.com/charmbracelet/harmonica"

	"github.com/softlit/prism/pkg/math3d"
)

// RotationAxis tracks position and velocity for one rotation axis with
// spring decay.
type RotationAxis struct {
	Position  float64
	Velocity  float64
	velSpring harmonica.Spring
	velAccel  float64
}

// NewRotationAxis creates an axis whose velocity decays smoothly toward
// zero. Damping 1.0 is critically damped, so there is no overshoot.
func NewRotationAxis(fps int) RotationAxis {
	return RotationAxis{
		velSpring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
	}
}

// Update applies velocity to position and decays velocity toward zero.
func (a *RotationAxis) Update() {
	a.Position += a.Velocity
	a.Velocity, a.velAccel = a.velSpring.Update(a.Velocity, a.velAccel, 0)
}

// RotationState holds the three model rotation axes.
type RotationState struct {
	Pitch, Yaw, Roll RotationAxis
	fps              int
}

// NewRotationState creates rotation state tuned for the given frame rate.
func NewRotationState(fps int) *RotationState {
	return &RotationState{
		Pitch: NewRotationAxis(fps),
		Yaw:   NewRotationAxis(fps),
		Roll:  NewRotationAxis(fps),
		fps:   fps,
	}
}

// Update advances all three axes by one frame.
func (r *RotationState) Update() {
	r.Pitch.Update()
	r.Yaw.Update()
	r.Roll.Update()
}

// ApplyImpulse adds angular velocity to the axes.
func (r *RotationState) ApplyImpulse(pitch, yaw, roll float64) {
	r.Pitch.Velocity += pitch
	r.Yaw.Velocity += yaw
	r.Roll.Velocity += roll
}

// Reset zeroes position and velocity on all axes.
func (r *RotationState) Reset() {
	r.Pitch = NewRotationAxis(r.fps)
	r.Yaw = NewRotationAxis(r.fps)
	r.Roll = NewRotationAxis(r.fps)
}

// Angles returns the accumulated rotation as Euler angles.
func (r *RotationState) Angles() math3d.Vec3 {
	return math3d.V3(
		float32(r.Pitch.Position),
		float32(r.Yaw.Position),
		float32(r.Roll.Position),
	)
}
