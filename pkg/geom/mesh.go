// Package geom provides the triangle-mesh geometry model for the prism
// renderer: vertices with color and normal attributes, index-based faces,
// and meshes carrying their own position and orientation state.
package geom

import (
	"image/color"

	"github.com/softlit/prism/pkg/math3d"
)

// Vertex holds all per-vertex attributes. Positions are homogeneous
// (w = 1 for points) so they can flow through the transform pipeline
// without conversion.
type Vertex struct {
	Position math3d.Vec4
	Color    color.RGBA
	Normal   math3d.Vec3
}

// Face represents a triangle face with vertex indices.
type Face struct {
	V [3]int // Indices into Mesh.Vertices
}

// Mesh represents a 3D mesh with vertices, faces, and placement state.
// Position accumulates translations as a homogeneous point; Angle
// accumulates Euler rotations (XYZ order, radians).
type Mesh struct {
	Name     string
	Vertices []Vertex
	Faces    []Face

	Position math3d.Vec4
	Angle    math3d.Vec3
}

// NewMesh creates an empty mesh placed at the origin.
func NewMesh(name string) *Mesh {
	return &Mesh{
		Name:     name,
		Vertices: make([]Vertex, 0),
		Faces:    make([]Face, 0),
		Position: math3d.Point(math3d.Zero3()),
	}
}

// Translate moves the mesh by d. The offset is applied through a
// translation matrix so Position stays a well-formed homogeneous point.
func (m *Mesh) Translate(d math3d.Vec3) {
	m.Position = math3d.Translate(d).MulVec4(m.Position)
}

// Rotate adds d to the mesh's Euler angles (radians). Rotations
// accumulate per axis, not by composing matrices, so the model matrix is
// always rebuilt from the summed angles in X, Y, Z order.
func (m *Mesh) Rotate(d math3d.Vec3) {
	m.Angle = m.Angle.Add(d)
}

// Bounds returns the axis-aligned bounding box of the mesh vertices in
// model space.
func (m *Mesh) Bounds() (min, max math3d.Vec3) {
	if len(m.Vertices) == 0 {
		return math3d.Zero3(), math3d.Zero3()
	}

	min = m.Vertices[0].Position.Vec3()
	max = min
	for _, v := range m.Vertices[1:] {
		p := v.Position.Vec3()
		min = min.Min(p)
		max = max.Max(p)
	}
	return min, max
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	min, max := m.Bounds()
	return min.Add(max).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	min, max := m.Bounds()
	return max.Sub(min)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Faces)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// ComputeNormals computes face normals and assigns them to vertices.
// This is a simple flat-shading approach; for smooth shading, normals
// should be averaged per-vertex.
func (m *Mesh) ComputeNormals() {
	for _, f := range m.Faces {
		v0 := m.Vertices[f.V[0]].Position.Vec3()
		v1 := m.Vertices[f.V[1]].Position.Vec3()
		v2 := m.Vertices[f.V[2]].Position.Vec3()

		edge1 := v1.Sub(v0)
		edge2 := v2.Sub(v0)
		normal := edge1.Cross(edge2).Normalize()

		m.Vertices[f.V[0]].Normal = normal
		m.Vertices[f.V[1]].Normal = normal
		m.Vertices[f.V[2]].Normal = normal
	}
}

// ComputeSmoothNormals computes averaged normals for smooth shading.
// Face normals are accumulated un-normalized so larger faces weigh more.
func (m *Mesh) ComputeSmoothNormals() {
	for i := range m.Vertices {
		m.Vertices[i].Normal = math3d.Zero3()
	}

	for _, f := range m.Faces {
		v0 := m.Vertices[f.V[0]].Position.Vec3()
		v1 := m.Vertices[f.V[1]].Position.Vec3()
		v2 := m.Vertices[f.V[2]].Position.Vec3()

		edge1 := v1.Sub(v0)
		edge2 := v2.Sub(v0)
		normal := edge1.Cross(edge2)

		m.Vertices[f.V[0]].Normal = m.Vertices[f.V[0]].Normal.Add(normal)
		m.Vertices[f.V[1]].Normal = m.Vertices[f.V[1]].Normal.Add(normal)
		m.Vertices[f.V[2]].Normal = m.Vertices[f.V[2]].Normal.Add(normal)
	}

	for i := range m.Vertices {
		m.Vertices[i].Normal = m.Vertices[i].Normal.Normalize()
	}
}

// Bake applies a transformation matrix to all vertices in place, for
// flattening loader node hierarchies into a single mesh. Normals are
// rotated with the matrix's direction transform; callers that bake
// non-uniform scales should recompute normals afterwards.
func (m *Mesh) Bake(mat math3d.Mat4) {
	for i := range m.Vertices {
		m.Vertices[i].Position = mat.MulVec4(m.Vertices[i].Position)
		m.Vertices[i].Normal = mat.MulVec3Dir(m.Vertices[i].Normal).Normalize()
	}
}

// Clone creates a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	clone := &Mesh{
		Name:     m.Name,
		Vertices: make([]Vertex, len(m.Vertices)),
		Faces:    make([]Face, len(m.Faces)),
		Position: m.Position,
		Angle:    m.Angle,
	}
	copy(clone.Vertices, m.Vertices)
	copy(clone.Faces, m.Faces)
	return clone
}
