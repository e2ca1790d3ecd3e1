package math3d

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
)

func TestIdentity(t *testing.T) {
	v := V4(1, 2, 3, 1)
	assert.Equal(t, v, Identity().MulVec4(v))
}

func TestTranslate(t *testing.T) {
	m := Translate(V3(1, 2, 3))

	// Row-major layout: translation sits in the last column.
	assert.Equal(t, float32(1), m[3])
	assert.Equal(t, float32(2), m[7])
	assert.Equal(t, float32(3), m[11])

	assert.Equal(t, V3(2, 3, 4), m.MulVec3(V3(1, 1, 1)))

	// Directions are unaffected by translation.
	assert.Equal(t, V3(1, 1, 1), m.MulVec3Dir(V3(1, 1, 1)))
}

func TestScale(t *testing.T) {
	m := Scale(V3(2, 3, 4))
	assert.Equal(t, V3(2, 3, 4), m.MulVec3(V3(1, 1, 1)))
}

func TestRotateZ(t *testing.T) {
	m := RotateZ(math32.Pi / 2)
	got := m.MulVec3(V3(1, 0, 0))
	assert.InDelta(t, 0, got.X, 1e-6)
	assert.InDelta(t, 1, got.Y, 1e-6)
	assert.InDelta(t, 0, got.Z, 1e-6)
}

func TestRotateX(t *testing.T) {
	m := RotateX(math32.Pi / 2)
	got := m.MulVec3(V3(0, 1, 0))
	assert.InDelta(t, 0, got.X, 1e-6)
	assert.InDelta(t, 0, got.Y, 1e-6)
	assert.InDelta(t, 1, got.Z, 1e-6)
}

func TestRotateY(t *testing.T) {
	m := RotateY(math32.Pi / 2)
	got := m.MulVec3(V3(0, 0, 1))
	assert.InDelta(t, 1, got.X, 1e-6)
	assert.InDelta(t, 0, got.Y, 1e-6)
	assert.InDelta(t, 0, got.Z, 1e-6)
}

func TestMulOrder(t *testing.T) {
	// T.Mul(R) applies R first: (1,0,0) rotates to (0,1,0), then translates.
	m := Translate(V3(10, 0, 0)).Mul(RotateZ(math32.Pi / 2))
	got := m.MulVec3(V3(1, 0, 0))
	assert.InDelta(t, 10, got.X, 1e-5)
	assert.InDelta(t, 1, got.Y, 1e-5)
	assert.InDelta(t, 0, got.Z, 1e-5)
}

func TestLookAtBasis(t *testing.T) {
	// Camera at origin looking down world -Z: forward maps to positive view z.
	view := LookAt(Zero3(), Forward(), Up())

	front := view.MulVec3(V3(0, 0, -2))
	assert.InDelta(t, 0, front.X, 1e-6)
	assert.InDelta(t, 0, front.Y, 1e-6)
	assert.InDelta(t, 2, front.Z, 1e-6)

	// World up stays up, world right flips (row-wise basis inverts orientation).
	up := view.MulVec3Dir(V3(0, 1, 0))
	assert.InDelta(t, 1, up.Y, 1e-6)
	right := view.MulVec3Dir(V3(1, 0, 0))
	assert.InDelta(t, -1, right.X, 1e-6)
}

func TestLookAtEyeMapsToOrigin(t *testing.T) {
	eye := V3(1, 2, 3)
	view := LookAt(eye, V3(1, 2, 2), Up())
	got := view.MulVec3(eye)
	assert.InDelta(t, 0, got.X, 1e-5)
	assert.InDelta(t, 0, got.Y, 1e-5)
	assert.InDelta(t, 0, got.Z, 1e-5)
}

func TestPerspectiveNearFarMapping(t *testing.T) {
	const near, far = 0.1, 5.0
	proj := Perspective(Radians(78), 1, near, far)

	// View-space points on the optical axis (positive z = in front).
	nearClip := proj.MulVec4(V4(0, 0, near, 1))
	farClip := proj.MulVec4(V4(0, 0, far, 1))

	// w = -z_view.
	assert.InDelta(t, -near, nearClip.W, 1e-6)
	assert.InDelta(t, -far, farClip.W, 1e-5)

	// Un-divided clip z: +near at the near plane, -far at the far plane.
	assert.InDelta(t, near, nearClip.Z, 1e-5)
	assert.InDelta(t, -far, farClip.Z, 1e-4)

	// NDC z after the divide: -1 near, +1 far.
	assert.InDelta(t, -1, nearClip.PerspectiveDivide().Z, 1e-4)
	assert.InDelta(t, 1, farClip.PerspectiveDivide().Z, 1e-4)
}

func TestPerspectiveDepthOrdering(t *testing.T) {
	proj := Perspective(Radians(78), 4.0/3.0, 0.1, 5.0)

	nearPt := proj.MulVec4(V4(0, 0, 1, 1))
	farPt := proj.MulVec4(V4(0, 0, 3, 1))

	// Un-divided clip z decreases with distance: larger means closer.
	assert.Greater(t, nearPt.Z, farPt.Z)
}

func TestTranspose(t *testing.T) {
	m := Mat4{
		1, 2, 3, 4,
		5, 6, 7, 8,
		9, 10, 11, 12,
		13, 14, 15, 16,
	}
	mt := m.Transpose()
	assert.Equal(t, float32(5), mt[1])
	assert.Equal(t, float32(2), mt[4])
	assert.Equal(t, m, mt.Transpose())
}

func TestMat3Extraction(t *testing.T) {
	m := Translate(V3(7, 8, 9)).Mul(RotateZ(0.5))
	sub := m.Mat3()

	// Translation never leaks into the 3x3 submatrix.
	rot := RotateZ(0.5)
	for r := range 3 {
		for c := range 3 {
			assert.InDelta(t, rot[r*4+c], sub[r*3+c], 1e-6)
		}
	}
}

func TestMat3InverseRoundTrip(t *testing.T) {
	m := RotateY(0.7).Mul(Scale(V3(2, 3, 4))).Mat3()
	inv, ok := m.Inverse()
	assert.True(t, ok)

	id := m.Mul(inv)
	want := Identity3()
	for i := range id {
		assert.InDelta(t, want[i], id[i], 1e-5)
	}
}

func TestMat3InverseSingular(t *testing.T) {
	m := Scale(V3(1, 0, 1)).Mat3()
	_, ok := m.Inverse()
	assert.False(t, ok)
}

func TestMat3InverseTransposeOfRotation(t *testing.T) {
	// For a pure rotation the inverse-transpose equals the rotation itself.
	rot := RotateX(0.3).Mul(RotateY(1.1)).Mat3()
	inv, ok := rot.Inverse()
	assert.True(t, ok)

	invT := inv.Transpose()
	for i := range rot {
		assert.InDelta(t, rot[i], invT[i], 1e-5)
	}
}
