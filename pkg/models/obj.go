// Package models loads triangle meshes from common interchange formats.
package models

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/softlit/prism/pkg/geom"
	"github.com/softlit/prism/pkg/math3d"
)

// Load reads a mesh from disk, picking the decoder from the file
// extension. Supported formats are .obj, .gltf and .glb.
func Load(path string) (*geom.Mesh, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		return LoadOBJ(path)
	case ".gltf", ".glb":
		return LoadGLB(path)
	default:
		return nil, fmt.Errorf("models: unsupported format %q", filepath.Ext(path))
	}
}

// LoadOBJ reads a Wavefront OBJ file.
func LoadOBJ(path string) (*geom.Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj: %w", err)
	}
	defer f.Close()
	return DecodeOBJ(f, filepath.Base(path))
}

// DecodeOBJ parses a Wavefront OBJ stream into a mesh. Positions and
// normals are honored; texture coordinates, groups and material
// statements are skipped. Faces with more than three vertices are fan
// triangulated. When the file carries no normals, smooth normals are
// computed from the geometry.
func DecodeOBJ(r io.Reader, name string) (*geom.Mesh, error) {
	mesh := geom.NewMesh(name)

	var (
		positions []math3d.Vec3
		normals   []math3d.Vec3
		emitted   = map[[2]int]int{}
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			p, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("obj line %d: vertex: %w", lineNo, err)
			}
			positions = append(positions, p)

		case "vn":
			n, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("obj line %d: normal: %w", lineNo, err)
			}
			normals = append(normals, n)

		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("obj line %d: face with %d vertices", lineNo, len(fields)-1)
			}
			idx := make([]int, 0, len(fields)-1)
			for _, spec := range fields[1:] {
				vi, err := resolveVertex(spec, positions, normals, emitted, mesh)
				if err != nil {
					return nil, fmt.Errorf("obj line %d: %w", lineNo, err)
				}
				idx = append(idx, vi)
			}
			for i := 1; i+1 < len(idx); i++ {
				mesh.Faces = append(mesh.Faces, geom.Face{V: [3]int{idx[0], idx[i], idx[i+1]}})
			}

		case "vt", "o", "g", "s", "mtllib", "usemtl":
			// Texture coordinates, grouping and materials are not used.
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("obj: read: %w", err)
	}

	if len(normals) == 0 {
		mesh.ComputeSmoothNormals()
	}
	return mesh, nil
}

// resolveVertex turns one face vertex spec (v, v/vt, v//vn or v/vt/vn)
// into an index into the mesh, emitting the vertex on first sight and
// reusing it for repeated position/normal pairs.
func resolveVertex(spec string, positions, normals []math3d.Vec3, emitted map[[2]int]int, mesh *geom.Mesh) (int, error) {
	parts := strings.Split(spec, "/")

	pi, err := objIndex(parts[0], len(positions))
	if err != nil {
		return 0, fmt.Errorf("vertex %q: %w", spec, err)
	}

	ni := -1
	if len(parts) == 3 && parts[2] != "" {
		ni, err = objIndex(parts[2], len(normals))
		if err != nil {
			return 0, fmt.Errorf("vertex %q: %w", spec, err)
		}
	}

	key := [2]int{pi, ni}
	if vi, ok := emitted[key]; ok {
		return vi, nil
	}

	v := geom.Vertex{
		Position: math3d.Point(positions[pi]),
		Color:    color.RGBA{R: 255, G: 255, B: 255, A: 255},
	}
	if ni >= 0 {
		v.Normal = normals[ni]
	}
	mesh.Vertices = append(mesh.Vertices, v)

	vi := len(mesh.Vertices) - 1
	emitted[key] = vi
	return vi, nil
}

// objIndex converts a 1-based OBJ index, where negative values count
// back from the most recent element, into a 0-based slice index.
func objIndex(s string, n int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	switch {
	case i > 0 && i <= n:
		return i - 1, nil
	case i < 0 && -i <= n:
		return n + i, nil
	default:
		return 0, fmt.Errorf("index %d out of range (%d defined)", i, n)
	}
}

func parseVec3(fields []string) (math3d.Vec3, error) {
	if len(fields) < 3 {
		return math3d.Vec3{}, fmt.Errorf("want 3 components, have %d", len(fields))
	}
	var c [3]float32
	for i := range 3 {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return math3d.Vec3{}, err
		}
		c[i] = float32(f)
	}
	return math3d.V3(c[0], c[1], c[2]), nil
}
