package geom

import (
	"image/color"

	"github.com/softlit/prism/pkg/math3d"
)

// NewTriangle returns the canonical demo triangle: unit side, centered on
// the origin in the XY plane, facing +Z, with red, green, and blue corners.
// Viewers fall back to it when no model can be loaded.
func NewTriangle() *Mesh {
	m := NewMesh("triangle")
	n := math3d.V3(0, 0, 1)
	m.Vertices = []Vertex{
		{Position: math3d.Point(math3d.V3(-0.5, -0.5, 0)), Color: color.RGBA{255, 0, 0, 255}, Normal: n},
		{Position: math3d.Point(math3d.V3(0.5, -0.5, 0)), Color: color.RGBA{0, 255, 0, 255}, Normal: n},
		{Position: math3d.Point(math3d.V3(0, 0.5, 0)), Color: color.RGBA{0, 0, 255, 255}, Normal: n},
	}
	m.Faces = []Face{{V: [3]int{0, 1, 2}}}
	return m
}

// NewCube returns a unit cube centered on the origin with per-face normals
// and a distinct color per side. Each side contributes four vertices and
// two triangles so flat shading stays flat.
func NewCube() *Mesh {
	m := NewMesh("cube")

	quad := func(a, b, c, d math3d.Vec3, normal math3d.Vec3, col color.RGBA) {
		base := len(m.Vertices)
		for _, p := range []math3d.Vec3{a, b, c, d} {
			m.Vertices = append(m.Vertices, Vertex{
				Position: math3d.Point(p),
				Color:    col,
				Normal:   normal,
			})
		}
		m.Faces = append(m.Faces,
			Face{V: [3]int{base, base + 1, base + 2}},
			Face{V: [3]int{base, base + 2, base + 3}},
		)
	}

	const h = 0.5
	quad(math3d.V3(-h, -h, h), math3d.V3(h, -h, h), math3d.V3(h, h, h), math3d.V3(-h, h, h),
		math3d.V3(0, 0, 1), color.RGBA{255, 0, 0, 255})
	quad(math3d.V3(h, -h, -h), math3d.V3(-h, -h, -h), math3d.V3(-h, h, -h), math3d.V3(h, h, -h),
		math3d.V3(0, 0, -1), color.RGBA{0, 255, 0, 255})
	quad(math3d.V3(h, -h, h), math3d.V3(h, -h, -h), math3d.V3(h, h, -h), math3d.V3(h, h, h),
		math3d.V3(1, 0, 0), color.RGBA{0, 0, 255, 255})
	quad(math3d.V3(-h, -h, -h), math3d.V3(-h, -h, h), math3d.V3(-h, h, h), math3d.V3(-h, h, -h),
		math3d.V3(-1, 0, 0), color.RGBA{255, 255, 0, 255})
	quad(math3d.V3(-h, h, h), math3d.V3(h, h, h), math3d.V3(h, h, -h), math3d.V3(-h, h, -h),
		math3d.V3(0, 1, 0), color.RGBA{0, 255, 255, 255})
	quad(math3d.V3(-h, -h, -h), math3d.V3(h, -h, -h), math3d.V3(h, -h, h), math3d.V3(-h, -h, h),
		math3d.V3(0, -1, 0), color.RGBA{255, 0, 255, 255})

	return m
}
