package voxel

import (
	"fmt"
	"math"
)

// ComputeBounds returns the tightest axis-aligned box containing vertices.
// Vertices with a NaN or infinite coordinate are skipped.
func ComputeBounds(vertices []Vertex) (BoundingBox, error) {
	if len(vertices) == 0 {
		return BoundingBox{}, ErrEmptyMesh
	}

	var b BoundingBox
	found := false
	for _, v := range vertices {
		if !finite(v) {
			continue
		}
		if !found {
			b = BoundingBox{Min: v, Max: v}
			found = true
			continue
		}
		b.Min.X = math.Min(b.Min.X, v.X)
		b.Min.Y = math.Min(b.Min.Y, v.Y)
		b.Min.Z = math.Min(b.Min.Z, v.Z)
		b.Max.X = math.Max(b.Max.X, v.X)
		b.Max.Y = math.Max(b.Max.Y, v.Y)
		b.Max.Z = math.Max(b.Max.Z, v.Z)
	}
	if !found {
		return BoundingBox{}, fmt.Errorf("%w: all %d vertices are non-finite", ErrEmptyMesh, len(vertices))
	}
	return b, nil
}

func finite(v Vertex) bool {
	for _, c := range [3]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}
