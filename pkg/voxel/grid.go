package voxel

import (
	"fmt"
	"iter"
	"strings"
)

// OccupancyGrid is a cubic grid of booleans. A true cell holds at least one
// mesh vertex.
type OccupancyGrid struct {
	size  int
	cells []bool
}

// NewOccupancyGrid allocates an empty size×size×size grid. size must be in
// [1, MaxBaseGridSize].
func NewOccupancyGrid(size int) (*OccupancyGrid, error) {
	if size < 1 || size > MaxBaseGridSize {
		return nil, fmt.Errorf("%w: got %d, want [1, %d]", ErrInvalidResolution, size, MaxBaseGridSize)
	}
	return &OccupancyGrid{
		size:  size,
		cells: make([]bool, size*size*size),
	}, nil
}

// Size returns the number of cells per axis.
func (g *OccupancyGrid) Size() int {
	return g.size
}

// Len returns the total number of cells.
func (g *OccupancyGrid) Len() int {
	return len(g.cells)
}

// InBounds reports whether i addresses a cell of the grid.
func (g *OccupancyGrid) InBounds(i Index) bool {
	return i.X >= 0 && i.X < g.size &&
		i.Y >= 0 && i.Y < g.size &&
		i.Z >= 0 && i.Z < g.size
}

func (g *OccupancyGrid) offset(i Index) int {
	return (i.X*g.size+i.Y)*g.size + i.Z
}

// At reports whether cell i is occupied. Out-of-range indices read as empty.
func (g *OccupancyGrid) At(i Index) bool {
	if !g.InBounds(i) {
		return false
	}
	return g.cells[g.offset(i)]
}

// Set marks cell i and reports whether i was in range.
func (g *OccupancyGrid) Set(i Index, occupied bool) bool {
	if !g.InBounds(i) {
		return false
	}
	g.cells[g.offset(i)] = occupied
	return true
}

// Count returns the number of occupied cells.
func (g *OccupancyGrid) Count() int {
	n := 0
	for _, c := range g.cells {
		if c {
			n++
		}
	}
	return n
}

// Occupied yields occupied cell indices in x, y, z order.
func (g *OccupancyGrid) Occupied() iter.Seq[Index] {
	return func(yield func(Index) bool) {
		for x := 0; x < g.size; x++ {
			for y := 0; y < g.size; y++ {
				for z := 0; z < g.size; z++ {
					i := Index{x, y, z}
					if g.cells[g.offset(i)] && !yield(i) {
						return
					}
				}
			}
		}
	}
}

// Layer renders the z slice as text, one row per y from top to bottom.
func (g *OccupancyGrid) Layer(z int) string {
	var sb strings.Builder
	for y := g.size - 1; y >= 0; y-- {
		for x := 0; x < g.size; x++ {
			if g.At(Index{x, y, z}) {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (g *OccupancyGrid) String() string {
	var sb strings.Builder
	for z := 0; z < g.size; z++ {
		fmt.Fprintf(&sb, "z=%d\n", z)
		sb.WriteString(g.Layer(z))
	}
	return sb.String()
}
