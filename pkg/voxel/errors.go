package voxel

import "errors"

var (
	ErrEmptyMesh         = errors.New("mesh has no vertices")
	ErrDegenerateBounds  = errors.New("bounding box has zero extent")
	ErrInvalidResolution = errors.New("grid resolution must be at least 1")
	ErrNoModel           = errors.New("no model loaded")
)
