package model

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/Faultbox/cubeviewer/pkg/formats"
)

func triangleOBJ() *formats.OBJMesh {
	return &formats.OBJMesh{
		Positions: [][3]float32{{0, 0, 0}, {2, 0, 0}, {0, 4, -1}},
		TexCoords: [][2]float32{{0, 0}, {1, 0}, {0, 1}},
		Normals:   [][3]float32{{0, 0, 1}},
		Faces: []formats.OBJFace{{
			{Position: 1, TexCoord: 1, Normal: 1},
			{Position: 2, TexCoord: 2, Normal: 1},
			{Position: 3, TexCoord: 3, Normal: 1},
		}},
	}
}

func TestBuild_Triangle(t *testing.T) {
	mesh, err := Build(triangleOBJ())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if len(mesh.Vertices) != 3 {
		t.Fatalf("expected 3 vertices, got %d", len(mesh.Vertices))
	}
	if mesh.TriangleCount() != 1 {
		t.Errorf("expected 1 triangle, got %d", mesh.TriangleCount())
	}

	v := mesh.Vertices[1]
	if v.Position != [3]float32{2, 0, 0} {
		t.Errorf("vertex 2 position: got %v", v.Position)
	}
	if v.TexCoord != [2]float32{1, 0} {
		t.Errorf("vertex 2 texcoord: got %v", v.TexCoord)
	}
	if v.Normal != [3]float32{0, 0, 1} {
		t.Errorf("vertex 2 normal: got %v", v.Normal)
	}

	if mesh.Bounds.Min != [3]float32{0, 0, -1} || mesh.Bounds.Max != [3]float32{2, 4, 0} {
		t.Errorf("bounds: got %v..%v", mesh.Bounds.Min, mesh.Bounds.Max)
	}
	if c := mesh.Bounds.Center(); c != [3]float32{1, 2, -0.5} {
		t.Errorf("center: got %v", c)
	}
}

func TestBuild_Cube(t *testing.T) {
	obj, err := formats.ParseOBJFile(filepath.Join("..", "..", "..", "pkg", "formats", "testdata", "cube.obj"), formats.OBJOptions{Limits: formats.CubeLimits()})
	if err != nil {
		t.Fatalf("ParseOBJFile failed: %v", err)
	}

	mesh, err := Build(obj)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if len(mesh.Vertices) != 36 {
		t.Errorf("expected 36 vertices, got %d", len(mesh.Vertices))
	}
	if got := len(mesh.Flatten()); got != 36*8 {
		t.Errorf("expected %d floats, got %d", 36*8, got)
	}
}

func TestBuild_InvalidIndex(t *testing.T) {
	obj := triangleOBJ()
	obj.Faces[0][2].TexCoord = 4

	_, err := Build(obj)
	if !errors.Is(err, formats.ErrInvalidIndex) {
		t.Errorf("expected ErrInvalidIndex, got %v", err)
	}
}

func TestBuild_Empty(t *testing.T) {
	_, err := Build(&formats.OBJMesh{})
	if !errors.Is(err, ErrEmptyMesh) {
		t.Errorf("expected ErrEmptyMesh, got %v", err)
	}
}

func TestFlatten_Layout(t *testing.T) {
	mesh, err := Build(triangleOBJ())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	data := mesh.Flatten()
	// Second vertex starts at VertexStride bytes.
	base := VertexStride / 4
	if data[base+PositionOffset/4] != 2 {
		t.Errorf("position x: got %f", data[base])
	}
	if data[base+NormalOffset/4+2] != 1 {
		t.Errorf("normal z: got %f", data[base+NormalOffset/4+2])
	}
	if data[base+TexCoordOffset/4] != 1 {
		t.Errorf("texcoord u: got %f", data[base+TexCoordOffset/4])
	}
}
