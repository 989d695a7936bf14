package voxel

import (
	"fmt"
	"math"
)

// Voxelize maps every vertex into a fresh gridSize³ occupancy grid.
//
// Each vertex is normalized against bounds and its cell index is
// round(normalized × (gridSize−1)) per axis. Indices pushed out of range by
// floating point noise are dropped silently.
func Voxelize(vertices []Vertex, bounds BoundingBox, gridSize int) (*OccupancyGrid, error) {
	grid, err := NewOccupancyGrid(gridSize)
	if err != nil {
		return nil, err
	}

	extent := bounds.Size()
	if err := checkExtent(extent); err != nil {
		return nil, err
	}

	steps := float64(gridSize - 1)
	for _, v := range vertices {
		grid.Set(Index{
			X: cellIndex(v.X, bounds.Min.X, extent.X, steps),
			Y: cellIndex(v.Y, bounds.Min.Y, extent.Y, steps),
			Z: cellIndex(v.Z, bounds.Min.Z, extent.Z, steps),
		}, true)
	}
	return grid, nil
}

func checkExtent(extent Vertex) error {
	axes := [3]struct {
		name string
		size float64
	}{{"x", extent.X}, {"y", extent.Y}, {"z", extent.Z}}

	for _, a := range axes {
		if !(a.size > 0) {
			return fmt.Errorf("%w: %s axis extent is %v", ErrDegenerateBounds, a.name, a.size)
		}
	}
	return nil
}

// cellIndex returns -1 for anything that cannot land in [0, steps].
func cellIndex(v, min, extent, steps float64) int {
	n := math.Round((v - min) / extent * steps)
	if math.IsNaN(n) || n < 0 || n > steps {
		return -1
	}
	return int(n)
}
