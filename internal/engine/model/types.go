// Package model converts parsed OBJ meshes into flat vertex data for GPU upload.
package model

// Vertex is the interleaved vertex layout uploaded to the GPU.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
}

// Vertex layout in bytes, matching the shader attribute locations 0, 1 and 2.
const (
	VertexStride   = 8 * 4
	PositionOffset = 0
	NormalOffset   = 3 * 4
	TexCoordOffset = 6 * 4
)

// Mesh holds triangle-list vertex data ready for GPU upload.
type Mesh struct {
	Vertices []Vertex
	Bounds   Bounds
}

// TriangleCount returns the number of triangles in the mesh.
func (m *Mesh) TriangleCount() int {
	return len(m.Vertices) / 3
}

// Bounds holds the axis-aligned bounding box of the mesh.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// Center returns the midpoint of the bounding box.
func (b Bounds) Center() [3]float32 {
	return [3]float32{
		(b.Min[0] + b.Max[0]) / 2,
		(b.Min[1] + b.Max[1]) / 2,
		(b.Min[2] + b.Max[2]) / 2,
	}
}
