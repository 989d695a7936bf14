// Package mesh supplies vertex lists for the voxelizer by tessellating simple
// solids with the sdfx marching cubes renderer.
package mesh

import (
	"errors"
	"fmt"
	"strings"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/Faultbox/voxelview/pkg/voxel"
)

// Shape names a built-in solid.
type Shape string

const (
	Box      Shape = "box"
	Sphere   Shape = "sphere"
	Cylinder Shape = "cylinder"
	// Hollow is a box with a spherical cavity breaking through its faces.
	Hollow Shape = "hollow"
)

// Shapes lists every supported shape.
var Shapes = []Shape{Box, Sphere, Cylinder, Hollow}

// DefaultCells is the marching cubes resolution used when Spec.Cells is zero.
const DefaultCells = 32

var ErrUnknownShape = errors.New("unknown shape")

// ParseShape converts a name to a Shape.
func ParseShape(name string) (Shape, error) {
	s := Shape(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Shapes {
		if s == known {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownShape, name)
}

// Spec describes the solid to tessellate.
type Spec struct {
	Shape Shape
	// Size is the edge length (box), diameter (sphere) or height and
	// diameter (cylinder) in world units.
	Size float64
	// Cells is the marching cubes resolution along the longest axis.
	Cells int
}

// Generate tessellates the solid described by spec and returns its unique
// vertices in first-seen order.
func Generate(spec Spec) ([]voxel.Vertex, error) {
	if !(spec.Size > 0) {
		return nil, fmt.Errorf("shape size must be positive, got %v", spec.Size)
	}
	cells := spec.Cells
	if cells == 0 {
		cells = DefaultCells
	}
	if cells < 2 {
		return nil, fmt.Errorf("marching cubes needs at least 2 cells, got %d", cells)
	}

	solid, err := build(spec.Shape, spec.Size)
	if err != nil {
		return nil, err
	}

	triangles := render.ToTriangles(solid, render.NewMarchingCubesUniform(cells))
	if len(triangles) == 0 {
		return nil, fmt.Errorf("tessellating %s: %w", spec.Shape, voxel.ErrEmptyMesh)
	}

	seen := make(map[voxel.Vertex]struct{}, len(triangles))
	vertices := make([]voxel.Vertex, 0, len(triangles))
	for _, tri := range triangles {
		for j := 0; j < 3; j++ {
			p := tri[j]
			v := voxel.Vertex{X: p.X, Y: p.Y, Z: p.Z}
			if _, dup := seen[v]; dup {
				continue
			}
			seen[v] = struct{}{}
			vertices = append(vertices, v)
		}
	}
	return vertices, nil
}

func build(shape Shape, size float64) (sdf.SDF3, error) {
	switch shape {
	case Box:
		return sdf.Box3D(v3.Vec{X: size, Y: size, Z: size}, 0)
	case Sphere:
		return sdf.Sphere3D(size / 2)
	case Cylinder:
		return sdf.Cylinder3D(size, size/2, 0)
	case Hollow:
		box, err := sdf.Box3D(v3.Vec{X: size, Y: size, Z: size}, 0)
		if err != nil {
			return nil, err
		}
		cavity, err := sdf.Sphere3D(size * 0.6)
		if err != nil {
			return nil, err
		}
		return sdf.Difference3D(box, cavity), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownShape, string(shape))
	}
}
