// Package voxel turns mesh vertices into a discrete occupancy grid and maps
// occupied cells back onto a fixed world-space lattice.
//
// Everything here is synchronous and allocation-light. Nothing in the package
// logs or performs I/O; callers decide how to report the returned errors.
package voxel

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Vertex is a point in source mesh space.
type Vertex = r3.Vec

// Lattice constants.
const (
	MinScale  = 0.125
	MaxScale  = 1.0
	ScaleStep = 0.125

	// QuarterTurn is the rotation lattice step in radians.
	QuarterTurn = math.Pi / 2

	DefaultBaseGridSize = 8
	DefaultGridSpacing  = 0.5

	// MaxBaseGridSize caps cells per axis; a full grid is MaxBaseGridSize³ cells.
	MaxBaseGridSize = 256
)

// BoundingBox is an axis-aligned box.
type BoundingBox struct {
	Min Vertex
	Max Vertex
}

// Size returns the extent of the box on each axis.
func (b BoundingBox) Size() Vertex {
	return r3.Sub(b.Max, b.Min)
}

// Center returns the midpoint of the box.
func (b BoundingBox) Center() Vertex {
	return r3.Scale(0.5, r3.Add(b.Min, b.Max))
}

// Contains reports whether v lies inside the box, boundary included.
func (b BoundingBox) Contains(v Vertex) bool {
	return v.X >= b.Min.X && v.X <= b.Max.X &&
		v.Y >= b.Min.Y && v.Y <= b.Max.Y &&
		v.Z >= b.Min.Z && v.Z <= b.Max.Z
}

// ModelData is the cached snapshot of one loaded mesh.
// It is built once per mesh and treated as read-only afterwards.
type ModelData struct {
	Vertices []Vertex
	Bounds   BoundingBox
}

// Transform holds the user-driven view inputs for a single update.
type Transform struct {
	Scale    float64
	Rotation float64 // radians
	Position Vertex
}

// Index addresses one cell of an OccupancyGrid.
type Index struct {
	X, Y, Z int
}
