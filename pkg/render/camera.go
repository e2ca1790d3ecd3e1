package render

import "github.com/softlit/prism/pkg/math3d"

// Camera describes the viewer as an eye position and the point it looks
// at. The up direction is fixed to world +Y; in view space the camera
// looks along +Z.
type Camera struct {
	Eye    math3d.Vec3
	Target math3d.Vec3
}

// NewCamera creates a camera at eye looking at target.
func NewCamera(eye, target math3d.Vec3) Camera {
	return Camera{Eye: eye, Target: target}
}

// Forward returns the normalized view direction.
func (c Camera) Forward() math3d.Vec3 {
	return c.Target.Sub(c.Eye).Normalize()
}

// ViewMatrix returns the world-to-view transform.
func (c Camera) ViewMatrix() math3d.Mat4 {
	return math3d.LookAt(c.Eye, c.Target, math3d.Up())
}
