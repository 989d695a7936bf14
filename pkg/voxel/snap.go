package voxel

import (
	"fmt"
	"math"
)

// SnapRotation rounds angle to the nearest multiple of a quarter turn.
// The result is not reduced modulo 2π, so snapping a snapped value is a no-op.
func SnapRotation(angle float64) float64 {
	return math.Round(angle/QuarterTurn) * QuarterTurn
}

// QuarterTurns returns the snapped rotation as a turn count in 0..3.
func QuarterTurns(angle float64) int {
	n := math.Round(angle / QuarterTurn)
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return int(math.Mod(math.Mod(n, 4)+4, 4))
}

// SnapScale clamps scale to [MinScale, MaxScale] and rounds it to the nearest
// multiple of ScaleStep. NaN maps to MinScale.
func SnapScale(scale float64) float64 {
	if math.IsNaN(scale) {
		return MinScale
	}
	s := math.Min(math.Max(scale, MinScale), MaxScale)
	return math.Round(s/ScaleStep) * ScaleStep
}

// Lattice is the fixed world-space grid that voxel placements snap onto.
type Lattice struct {
	// BaseGridSize is the cell count per axis at full scale.
	BaseGridSize int
	// GridSpacing is the world distance between adjacent lattice points.
	GridSpacing float64
}

// DefaultLattice is an 8-cell lattice with half-unit spacing.
var DefaultLattice = Lattice{
	BaseGridSize: DefaultBaseGridSize,
	GridSpacing:  DefaultGridSpacing,
}

// Validate reports whether the lattice can be used for placement.
func (l Lattice) Validate() error {
	if l.BaseGridSize < 1 || l.BaseGridSize > MaxBaseGridSize {
		return fmt.Errorf("%w: base grid size %d outside [1, %d]", ErrInvalidResolution, l.BaseGridSize, MaxBaseGridSize)
	}
	if !(l.GridSpacing > 0) || math.IsInf(l.GridSpacing, 0) {
		return fmt.Errorf("grid spacing must be positive and finite, got %v", l.GridSpacing)
	}
	return nil
}

// EffectiveGridSize derives the per-axis cell count for scale.
// The scale is snapped first, so every value in a ScaleStep bucket yields the
// same resolution.
func (l Lattice) EffectiveGridSize(scale float64) (int, error) {
	size := int(math.Round(float64(l.BaseGridSize) * SnapScale(scale)))
	if size < 1 {
		return 0, fmt.Errorf("%w: base %d at scale %v gives %d", ErrInvalidResolution, l.BaseGridSize, scale, size)
	}
	return size, nil
}

// SnapToGrid rounds each coordinate of p to the nearest multiple of the
// lattice spacing. A non-positive spacing leaves p unchanged.
func (l Lattice) SnapToGrid(p Vertex) Vertex {
	if !(l.GridSpacing > 0) {
		return p
	}
	return Vertex{
		X: snap(p.X, l.GridSpacing),
		Y: snap(p.Y, l.GridSpacing),
		Z: snap(p.Z, l.GridSpacing),
	}
}

// SnapToGrid snaps p onto DefaultLattice.
func SnapToGrid(p Vertex) Vertex {
	return DefaultLattice.SnapToGrid(p)
}

func snap(v, step float64) float64 {
	return math.Round(v/step) * step
}

// SnapTransform returns t with scale, rotation and position moved onto their
// lattices.
func (l Lattice) SnapTransform(t Transform) Transform {
	return Transform{
		Scale:    SnapScale(t.Scale),
		Rotation: SnapRotation(t.Rotation),
		Position: l.SnapToGrid(t.Position),
	}
}
