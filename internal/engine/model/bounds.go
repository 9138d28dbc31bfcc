package model

// BoundsVertexCount is the number of line vertices in a bounds wireframe
// (12 edges, 2 endpoints each).
const BoundsVertexCount = 24

// Wireframe returns line-list vertices ([x, y, z] each) outlining the box,
// grown by padding on every side.
func (b Bounds) Wireframe(padding float32) []float32 {
	x0, y0, z0 := b.Min[0]-padding, b.Min[1]-padding, b.Min[2]-padding
	x1, y1, z1 := b.Max[0]+padding, b.Max[1]+padding, b.Max[2]+padding

	return []float32{
		// Bottom
		x0, y0, z0, x1, y0, z0,
		x1, y0, z0, x1, y0, z1,
		x1, y0, z1, x0, y0, z1,
		x0, y0, z1, x0, y0, z0,
		// Top
		x0, y1, z0, x1, y1, z0,
		x1, y1, z0, x1, y1, z1,
		x1, y1, z1, x0, y1, z1,
		x0, y1, z1, x0, y1, z0,
		// Verticals
		x0, y0, z0, x0, y1, z0,
		x1, y0, z0, x1, y1, z0,
		x1, y0, z1, x1, y1, z1,
		x0, y0, z1, x0, y1, z1,
	}
}
