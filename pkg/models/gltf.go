package models

import (
	"encoding/binary"
	"fmt"
	"image/color"
	"math"
	"path/filepath"

	"github.com/qmuntal/gltf"

	"github.com/softlit/prism/pkg/geom"
	"github.com/softlit/prism/pkg/math3d"
)

// GLTFLoader loads glTF and GLB files into mesh form.
type GLTFLoader struct {
	// ComputeNormals fills in normals when the file carries none.
	ComputeNormals bool
	// SmoothNormals averages computed normals across shared vertices.
	SmoothNormals bool
}

// NewGLTFLoader creates a loader with normal computation enabled.
func NewGLTFLoader() *GLTFLoader {
	return &GLTFLoader{
		ComputeNormals: true,
		SmoothNormals:  true,
	}
}

// LoadGLB loads a glTF or binary GLB file with default options.
func LoadGLB(path string) (*geom.Mesh, error) {
	return NewGLTFLoader().Load(path)
}

// Load reads a glTF or GLB file and merges its triangle primitives
// into a single mesh.
func (l *GLTFLoader) Load(path string) (*geom.Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	mesh := geom.NewMesh(filepath.Base(path))
	for _, m := range doc.Meshes {
		if err := appendPrimitives(doc, m, mesh); err != nil {
			return nil, fmt.Errorf("mesh %q: %w", m.Name, err)
		}
	}

	if l.ComputeNormals && !hasNormals(mesh) {
		if l.SmoothNormals {
			mesh.ComputeSmoothNormals()
		} else {
			mesh.ComputeNormals()
		}
	}
	return mesh, nil
}

func hasNormals(m *geom.Mesh) bool {
	for _, v := range m.Vertices {
		if v.Normal.Len() > 0.001 {
			return true
		}
	}
	return false
}

// appendPrimitives extracts the triangle primitives of one document
// mesh. Index order is kept as authored; the rasterizer fills either
// winding and lighting keys off normals, so nothing depends on it.
func appendPrimitives(doc *gltf.Document, m *gltf.Mesh, mesh *geom.Mesh) error {
	for _, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
			// Skip lines, points and strips.
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		positions, err := readVec3Accessor(doc, posIdx)
		if err != nil {
			return fmt.Errorf("positions: %w", err)
		}

		var normals []math3d.Vec3
		if ni, ok := prim.Attributes[gltf.NORMAL]; ok {
			if normals, err = readVec3Accessor(doc, ni); err != nil {
				return fmt.Errorf("normals: %w", err)
			}
		}

		var colors []color.RGBA
		if ci, ok := prim.Attributes[gltf.COLOR_0]; ok {
			if colors, err = readColorAccessor(doc, ci); err != nil {
				return fmt.Errorf("colors: %w", err)
			}
		}

		base := len(mesh.Vertices)
		for i, p := range positions {
			v := geom.Vertex{
				Position: math3d.Point(p),
				Color:    color.RGBA{R: 255, G: 255, B: 255, A: 255},
			}
			if i < len(normals) {
				v.Normal = normals[i]
			}
			if i < len(colors) {
				v.Color = colors[i]
			}
			mesh.Vertices = append(mesh.Vertices, v)
		}

		if prim.Indices != nil {
			indices, err := readIndices(doc, *prim.Indices)
			if err != nil {
				return fmt.Errorf("indices: %w", err)
			}
			for i := 0; i+2 < len(indices); i += 3 {
				for j := range 3 {
					if indices[i+j] >= len(positions) {
						return fmt.Errorf("index %d out of range (%d vertices)", indices[i+j], len(positions))
					}
				}
				mesh.Faces = append(mesh.Faces, geom.Face{V: [3]int{
					base + indices[i],
					base + indices[i+1],
					base + indices[i+2],
				}})
			}
		} else {
			// No index accessor means sequential triangles.
			for i := 0; i+2 < len(positions); i += 3 {
				mesh.Faces = append(mesh.Faces, geom.Face{V: [3]int{
					base + i, base + i + 1, base + i + 2,
				}})
			}
		}
	}
	return nil
}

// rawAccessor resolves an accessor to its backing bytes and element
// stride. natural is the packed element size for the accessor's type.
func rawAccessor(doc *gltf.Document, accessor *gltf.Accessor, natural int) ([]byte, int, error) {
	if accessor.BufferView == nil {
		return nil, 0, fmt.Errorf("accessor has no buffer view")
	}
	view := doc.BufferViews[*accessor.BufferView]
	buffer := doc.Buffers[view.Buffer]

	// GLB chunks and data URIs arrive decoded; external .bin files do
	// not, and are not supported.
	if len(buffer.Data) == 0 {
		return nil, 0, fmt.Errorf("buffer %d has no data loaded", view.Buffer)
	}

	stride := view.ByteStride
	if stride == 0 {
		stride = natural
	}
	start := view.ByteOffset + accessor.ByteOffset
	end := start + (accessor.Count-1)*stride + natural
	if accessor.Count == 0 || end > len(buffer.Data) {
		return nil, 0, fmt.Errorf("accessor overruns buffer (%d > %d)", end, len(buffer.Data))
	}
	return buffer.Data[start:], stride, nil
}

func readVec3Accessor(doc *gltf.Document, idx int) ([]math3d.Vec3, error) {
	accessor := doc.Accessors[idx]
	if accessor.Type != gltf.AccessorVec3 {
		return nil, fmt.Errorf("expected VEC3 accessor, got %v", accessor.Type)
	}
	if accessor.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("expected float components, got %v", accessor.ComponentType)
	}

	data, stride, err := rawAccessor(doc, accessor, 12)
	if err != nil {
		return nil, err
	}

	out := make([]math3d.Vec3, accessor.Count)
	for i := range out {
		off := i * stride
		out[i] = math3d.V3(
			readFloat32(data[off:]),
			readFloat32(data[off+4:]),
			readFloat32(data[off+8:]),
		)
	}
	return out, nil
}

// readColorAccessor reads COLOR_0 data, which the format allows as
// VEC3 or VEC4 in float, normalized short or normalized byte form.
func readColorAccessor(doc *gltf.Document, idx int) ([]color.RGBA, error) {
	accessor := doc.Accessors[idx]

	var comps int
	switch accessor.Type {
	case gltf.AccessorVec3:
		comps = 3
	case gltf.AccessorVec4:
		comps = 4
	default:
		return nil, fmt.Errorf("expected VEC3 or VEC4 color accessor, got %v", accessor.Type)
	}

	var compSize int
	switch accessor.ComponentType {
	case gltf.ComponentFloat:
		compSize = 4
	case gltf.ComponentUshort:
		compSize = 2
	case gltf.ComponentUbyte:
		compSize = 1
	default:
		return nil, fmt.Errorf("unsupported color component type %v", accessor.ComponentType)
	}

	data, stride, err := rawAccessor(doc, accessor, comps*compSize)
	if err != nil {
		return nil, err
	}

	out := make([]color.RGBA, accessor.Count)
	for i := range out {
		off := i * stride
		ch := [4]uint8{3: 255}
		for j := range comps {
			switch accessor.ComponentType {
			case gltf.ComponentFloat:
				f := readFloat32(data[off+j*4:])
				ch[j] = uint8(min(max(f, 0), 1) * 255)
			case gltf.ComponentUshort:
				ch[j] = uint8(binary.LittleEndian.Uint16(data[off+j*2:]) >> 8)
			case gltf.ComponentUbyte:
				ch[j] = data[off+j]
			}
		}
		out[i] = color.RGBA{R: ch[0], G: ch[1], B: ch[2], A: ch[3]}
	}
	return out, nil
}

func readIndices(doc *gltf.Document, idx int) ([]int, error) {
	accessor := doc.Accessors[idx]
	if accessor.Type != gltf.AccessorScalar {
		return nil, fmt.Errorf("expected SCALAR index accessor, got %v", accessor.Type)
	}

	var compSize int
	switch accessor.ComponentType {
	case gltf.ComponentUbyte:
		compSize = 1
	case gltf.ComponentUshort:
		compSize = 2
	case gltf.ComponentUint:
		compSize = 4
	default:
		return nil, fmt.Errorf("unsupported index component type %v", accessor.ComponentType)
	}

	data, stride, err := rawAccessor(doc, accessor, compSize)
	if err != nil {
		return nil, err
	}

	out := make([]int, accessor.Count)
	for i := range out {
		off := i * stride
		switch compSize {
		case 1:
			out[i] = int(data[off])
		case 2:
			out[i] = int(binary.LittleEndian.Uint16(data[off:]))
		case 4:
			out[i] = int(binary.LittleEndian.Uint32(data[off:]))
		}
	}
	return out, nil
}

func readFloat32(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}
