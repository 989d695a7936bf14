package voxel

import (
	"iter"
	"slices"
)

// Placement is one occupied cell and the world position of its center.
type Placement struct {
	Index    Index
	Position Vertex
}

// CellSpacing returns the world-space pitch of cells in a gridSize grid.
// The pitch grows as resolution drops, so the voxel volume stays the same
// overall size at every scale.
func (l Lattice) CellSpacing(gridSize int) float64 {
	if gridSize < 1 {
		return 0
	}
	return float64(l.BaseGridSize) / float64(gridSize) * l.GridSpacing
}

// HalfExtent returns half the world-space width of the voxel volume.
func (l Lattice) HalfExtent() float64 {
	return float64(l.BaseGridSize) * l.GridSpacing / 2
}

// CellCenter returns the lattice-snapped world position of cell i in a
// gridSize grid centered on the origin.
func (l Lattice) CellCenter(i Index, gridSize int) Vertex {
	spacing := l.CellSpacing(gridSize)
	half := l.HalfExtent()
	axis := func(n int) float64 {
		return float64(n)*spacing - half + spacing/2
	}
	return l.SnapToGrid(Vertex{X: axis(i.X), Y: axis(i.Y), Z: axis(i.Z)})
}

// Placements yields every occupied cell of grid with its world position.
// The sequence is recomputed each time it is ranged over.
func (l Lattice) Placements(grid *OccupancyGrid) iter.Seq2[Index, Vertex] {
	return func(yield func(Index, Vertex) bool) {
		if grid == nil {
			return
		}
		for i := range grid.Occupied() {
			if !yield(i, l.CellCenter(i, grid.Size())) {
				return
			}
		}
	}
}

// CollectPlacements materializes Placements into a slice.
func (l Lattice) CollectPlacements(grid *OccupancyGrid) []Placement {
	var out []Placement
	for i, pos := range l.Placements(grid) {
		out = append(out, Placement{Index: i, Position: pos})
	}
	return slices.Clip(out)
}
