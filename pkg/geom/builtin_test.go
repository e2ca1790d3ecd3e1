package geom

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/softlit/prism/pkg/math3d"
)

func TestNewTriangle(t *testing.T) {
	m := NewTriangle()

	assert.Equal(t, 3, m.VertexCount())
	assert.Equal(t, 1, m.TriangleCount())

	assert.Equal(t, color.RGBA{255, 0, 0, 255}, m.Vertices[0].Color)
	assert.Equal(t, color.RGBA{0, 255, 0, 255}, m.Vertices[1].Color)
	assert.Equal(t, color.RGBA{0, 0, 255, 255}, m.Vertices[2].Color)

	for _, v := range m.Vertices {
		assert.Equal(t, math3d.V3(0, 0, 1), v.Normal)
		assert.Equal(t, float32(1), v.Position.W)
	}

	min, max := m.Bounds()
	assert.Equal(t, math3d.V3(-0.5, -0.5, 0), min)
	assert.Equal(t, math3d.V3(0.5, 0.5, 0), max)
}

func TestNewCube(t *testing.T) {
	m := NewCube()

	assert.Equal(t, 24, m.VertexCount())
	assert.Equal(t, 12, m.TriangleCount())
	assert.Equal(t, math3d.V3(1, 1, 1), m.Size())
	assert.Equal(t, math3d.Zero3(), m.Center())
}

func TestNewCubeNormalsFaceOutward(t *testing.T) {
	m := NewCube()

	for _, f := range m.Faces {
		v0 := m.Vertices[f.V[0]]
		v1 := m.Vertices[f.V[1]]
		v2 := m.Vertices[f.V[2]]

		centroid := v0.Position.Vec3().
			Add(v1.Position.Vec3()).
			Add(v2.Position.Vec3()).Scale(1.0 / 3.0)

		// An outward normal points away from the cube center.
		assert.Positive(t, centroid.Dot(v0.Normal))

		// Stored normals agree with the winding order.
		edge1 := v1.Position.Vec3().Sub(v0.Position.Vec3())
		edge2 := v2.Position.Vec3().Sub(v0.Position.Vec3())
		computed := edge1.Cross(edge2).Normalize()
		assert.InDelta(t, v0.Normal.X, computed.X, 1e-6)
		assert.InDelta(t, v0.Normal.Y, computed.Y, 1e-6)
		assert.InDelta(t, v0.Normal.Z, computed.Z, 1e-6)
	}
}

func TestNewCubeFaceColorsDistinct(t *testing.T) {
	m := NewCube()

	seen := make(map[color.RGBA]bool)
	for i := 0; i < len(m.Vertices); i += 4 {
		seen[m.Vertices[i].Color] = true
	}
	assert.Len(t, seen, 6)
}
