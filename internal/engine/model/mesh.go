package model

import (
	"errors"
	"fmt"

	"github.com/Faultbox/cubeviewer/pkg/formats"
)

// ErrEmptyMesh is returned when a mesh has no faces to draw.
var ErrEmptyMesh = errors.New("mesh has no faces")

// Build expands every OBJ face into three vertices, resolving the 1-based
// position/texcoord/normal references. Normals are taken from the file as-is.
func Build(obj *formats.OBJMesh) (*Mesh, error) {
	if err := obj.Validate(); err != nil {
		return nil, fmt.Errorf("building mesh: %w", err)
	}
	if len(obj.Faces) == 0 {
		return nil, ErrEmptyMesh
	}

	vertices := make([]Vertex, 0, len(obj.Faces)*3)
	for _, face := range obj.Faces {
		for _, fv := range face {
			vertices = append(vertices, Vertex{
				Position: obj.Position(fv.Position),
				Normal:   obj.Normal(fv.Normal),
				TexCoord: obj.TexCoord(fv.TexCoord),
			})
		}
	}

	min, max := obj.Bounds()
	return &Mesh{
		Vertices: vertices,
		Bounds:   Bounds{Min: min, Max: max},
	}, nil
}

// Flatten returns the vertices as a float slice in Vertex layout.
func (m *Mesh) Flatten() []float32 {
	out := make([]float32, 0, len(m.Vertices)*8)
	for _, v := range m.Vertices {
		out = append(out,
			v.Position[0], v.Position[1], v.Position[2],
			v.Normal[0], v.Normal[1], v.Normal[2],
			v.TexCoord[0], v.TexCoord[1],
		)
	}
	return out
}
