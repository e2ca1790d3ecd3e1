package geom

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/softlit/prism/pkg/math3d"
)

func TestTranslateAccumulates(t *testing.T) {
	m := NewMesh("test")
	assert.Equal(t, math3d.V4(0, 0, 0, 1), m.Position)

	m.Translate(math3d.V3(1, 2, 3))
	m.Translate(math3d.V3(1, 0, -1))

	assert.Equal(t, math3d.V4(2, 2, 2, 1), m.Position)
}

func TestRotateAccumulates(t *testing.T) {
	m := NewMesh("test")
	m.Rotate(math3d.V3(0.1, 0.2, 0.3))
	m.Rotate(math3d.V3(0.1, 0, 0))

	assert.InDelta(t, 0.2, m.Angle.X, 1e-6)
	assert.InDelta(t, 0.2, m.Angle.Y, 1e-6)
	assert.InDelta(t, 0.3, m.Angle.Z, 1e-6)
}

func TestBounds(t *testing.T) {
	m := NewMesh("test")
	m.Vertices = []Vertex{
		{Position: math3d.Point(math3d.V3(-1, 2, 0))},
		{Position: math3d.Point(math3d.V3(3, -4, 5))},
		{Position: math3d.Point(math3d.V3(0, 0, -2))},
	}

	min, max := m.Bounds()
	assert.Equal(t, math3d.V3(-1, -4, -2), min)
	assert.Equal(t, math3d.V3(3, 2, 5), max)
	assert.Equal(t, math3d.V3(1, -1, 1.5), m.Center())
	assert.Equal(t, math3d.V3(4, 6, 7), m.Size())
}

func TestBoundsEmptyMesh(t *testing.T) {
	m := NewMesh("empty")
	min, max := m.Bounds()
	assert.Equal(t, math3d.Zero3(), min)
	assert.Equal(t, math3d.Zero3(), max)
}

func TestComputeNormals(t *testing.T) {
	m := NewMesh("test")
	m.Vertices = []Vertex{
		{Position: math3d.Point(math3d.V3(0, 0, 0))},
		{Position: math3d.Point(math3d.V3(1, 0, 0))},
		{Position: math3d.Point(math3d.V3(0, 1, 0))},
	}
	m.Faces = []Face{{V: [3]int{0, 1, 2}}}

	m.ComputeNormals()

	// Counter-clockwise winding in the XY plane faces +Z.
	for _, v := range m.Vertices {
		assert.InDelta(t, 0, v.Normal.X, 1e-6)
		assert.InDelta(t, 0, v.Normal.Y, 1e-6)
		assert.InDelta(t, 1, v.Normal.Z, 1e-6)
	}
}

func TestComputeSmoothNormals(t *testing.T) {
	// Two coplanar triangles sharing an edge: smoothing must not bend
	// the shared normals.
	m := NewMesh("test")
	m.Vertices = []Vertex{
		{Position: math3d.Point(math3d.V3(0, 0, 0))},
		{Position: math3d.Point(math3d.V3(1, 0, 0))},
		{Position: math3d.Point(math3d.V3(1, 1, 0))},
		{Position: math3d.Point(math3d.V3(0, 1, 0))},
	}
	m.Faces = []Face{
		{V: [3]int{0, 1, 2}},
		{V: [3]int{0, 2, 3}},
	}

	m.ComputeSmoothNormals()

	for _, v := range m.Vertices {
		assert.InDelta(t, 1, v.Normal.Z, 1e-6)
		assert.InDelta(t, 1, v.Normal.Len(), 1e-6)
	}
}

func TestBake(t *testing.T) {
	m := NewMesh("test")
	m.Vertices = []Vertex{
		{Position: math3d.Point(math3d.V3(1, 0, 0)), Normal: math3d.V3(0, 0, 1)},
	}

	m.Bake(math3d.Translate(math3d.V3(0, 5, 0)))

	assert.Equal(t, math3d.V4(1, 5, 0, 1), m.Vertices[0].Position)
	// Translation leaves directions alone.
	assert.Equal(t, math3d.V3(0, 0, 1), m.Vertices[0].Normal)
}

func TestClone(t *testing.T) {
	m := NewTriangle()
	m.Translate(math3d.V3(1, 1, 1))

	c := m.Clone()
	assert.Equal(t, m.Position, c.Position)
	assert.Equal(t, m.Vertices, c.Vertices)

	c.Vertices[0].Color = color.RGBA{9, 9, 9, 255}
	c.Faces[0].V[0] = 2
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, m.Vertices[0].Color)
	assert.Equal(t, 0, m.Faces[0].V[0])
}
