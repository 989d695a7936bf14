package voxel

// WireframeVertexCount is the number of line endpoints Wireframe returns.
const WireframeVertexCount = 24

// Wireframe returns line-list vertices outlining b: 12 edges × 2 endpoints,
// packed as x, y, z float32 triples for direct upload to a vertex buffer.
func Wireframe(b BoundingBox) []float32 {
	x0, y0, z0 := float32(b.Min.X), float32(b.Min.Y), float32(b.Min.Z)
	x1, y1, z1 := float32(b.Max.X), float32(b.Max.Y), float32(b.Max.Z)

	return []float32{
		// bottom
		x0, y0, z0, x1, y0, z0,
		x1, y0, z0, x1, y0, z1,
		x1, y0, z1, x0, y0, z1,
		x0, y0, z1, x0, y0, z0,
		// top
		x0, y1, z0, x1, y1, z0,
		x1, y1, z0, x1, y1, z1,
		x1, y1, z1, x0, y1, z1,
		x0, y1, z1, x0, y1, z0,
		// verticals
		x0, y0, z0, x0, y1, z0,
		x1, y0, z0, x1, y1, z0,
		x1, y0, z1, x1, y1, z1,
		x0, y0, z1, x0, y1, z1,
	}
}

// VolumeBounds returns the world-space box covered by the lattice's voxel
// volume, centered on the origin.
func (l Lattice) VolumeBounds() BoundingBox {
	h := l.HalfExtent()
	return BoundingBox{
		Min: Vertex{X: -h, Y: -h, Z: -h},
		Max: Vertex{X: h, Y: h, Z: h},
	}
}
