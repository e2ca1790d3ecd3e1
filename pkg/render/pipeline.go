package render

import (
	"github.com/softlit/prism/pkg/geom"
	"github.com/softlit/prism/pkg/math3d"
)

// modelMatrix builds the model transform from a mesh's accumulated
// position and Euler angles. Rotation applies around X, then Y, then Z,
// followed by the translation.
func modelMatrix(position math3d.Vec4, angle math3d.Vec3) math3d.Mat4 {
	return math3d.Translate(position.Vec3()).
		Mul(math3d.RotateZ(angle.Z)).
		Mul(math3d.RotateY(angle.Y)).
		Mul(math3d.RotateX(angle.X))
}

// normalMatrix returns the inverse-transpose of the model matrix's upper
// 3x3 for carrying normals to world space. A singular submatrix means the
// model transform collapsed a dimension; that is a caller bug, so it
// panics rather than producing garbage lighting.
func normalMatrix(model math3d.Mat4) math3d.Mat3 {
	inv, ok := model.Mat3().Inverse()
	if !ok {
		panic("render: singular model matrix, cannot transform normals")
	}
	return inv.Transpose()
}

// Draw runs one mesh through the full pipeline: model to world transform,
// per-vertex lighting, view and projection, perspective divide, viewport
// mapping, and rasterization into the renderer's buffer.
func (r *Renderer) Draw(mesh *geom.Mesh, cam Camera) {
	model := modelMatrix(mesh.Position, mesh.Angle)
	viewProj := r.proj.Mul(cam.ViewMatrix())

	lighting := r.cfg.Lighting && !r.cfg.Wireframe
	var normalMat math3d.Mat3
	if lighting {
		normalMat = normalMatrix(model)
	}

	for _, face := range mesh.Faces {
		var world [3]math3d.Vec4
		for i, vi := range face.V {
			world[i] = model.MulVec4(mesh.Vertices[vi].Position)
		}

		// Brightness is the alignment between the vertex normal and the
		// direction back to the eye. A face dark at every vertex faces
		// away from the camera and is skipped whole.
		var bright [3]float32
		if lighting {
			anyLit := false
			for i, vi := range face.V {
				n := normalMat.MulVec3(mesh.Vertices[vi].Normal).Normalize()
				toEye := cam.Eye.Sub(world[i].Vec3()).Normalize()
				bright[i] = toEye.Dot(n)
				if bright[i] > 0 {
					anyLit = true
				}
			}
			if !anyLit {
				continue
			}
		}

		var rv [3]RasterVertex
		for i, vi := range face.V {
			clip := viewProj.MulVec4(world[i])

			// Perspective divide on x and y only; z stays in clip space
			// so the depth buffer keeps a linear-in-view measure.
			x, y := clip.X, clip.Y
			if clip.W != 0 {
				x /= clip.W
				y /= clip.W
			}

			rv[i] = RasterVertex{
				X:     (1 + x) * 0.5 * float32(r.cfg.Width),
				Y:     (1 + y) * 0.5 * float32(r.cfg.Height),
				Z:     clip.Z,
				Color: mesh.Vertices[vi].Color,
			}
			if lighting {
				rv[i].Color = scaleColor(rv[i].Color, clamp01(bright[i]))
			}
		}

		if r.cfg.Wireframe {
			for i := range 3 {
				j := (i + 1) % 3
				LineSegment{
					X0: int(rv[i].X), Y0: int(rv[i].Y),
					X1: int(rv[j].X), Y1: int(rv[j].Y),
					Color: rv[i].Color,
				}.Render(r.buf)
			}
			continue
		}

		Triangle{V: rv, Fill: r.cfg.Fill}.Render(r.buf)
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
