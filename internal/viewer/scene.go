package viewer

import (
	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/softlit/prism/internal/config"
	"github.com/softlit/prism/internal/logger"
	"github.com/softlit/prism/pkg/geom"
	"github.com/softlit/prism/pkg/math3d"
	"github.com/softlit/prism/pkg/models"
)

// LoadScene loads the configured model. No configured model means the
// built-in cube; a model that fails to load falls back to the built-in
// triangle so the viewer always has something to show. The mesh comes
// back normalized; see Normalize.
func LoadScene(cfg *config.Config) *geom.Mesh {
	var mesh *geom.Mesh
	switch {
	case cfg.Scene.Model == "":
		mesh = geom.NewCube()
	default:
		m, err := models.Load(cfg.Scene.Model)
		if err != nil {
			logger.Warn("model load failed, using built-in triangle",
				zap.String("file", cfg.Scene.Model),
				zap.Error(err),
			)
			m = geom.NewTriangle()
		} else {
			logger.Info("model loaded",
				zap.String("file", cfg.Scene.Model),
				zap.Int("vertices", m.VertexCount()),
				zap.Int("triangles", m.TriangleCount()),
			)
		}
		mesh = m
	}
	Normalize(mesh)
	return mesh
}

// Normalize centers the mesh on the origin and scales its largest
// dimension to 2 so every model shows at the same zoom.
func Normalize(m *geom.Mesh) {
	center := m.Center()
	size := m.Size()
	maxDim := math32.Max(size.X, math32.Max(size.Y, size.Z))
	if maxDim == 0 {
		return
	}
	s := 2.0 / maxDim
	m.Bake(math3d.Scale(math3d.V3(s, s, s)).Mul(math3d.Translate(center.Negate())))
}
