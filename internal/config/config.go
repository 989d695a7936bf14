// Package config handles voxel viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/voxelview/internal/mesh"
	"github.com/Faultbox/voxelview/pkg/voxel"
)

// Config holds all viewer settings.
type Config struct {
	Lattice LatticeConfig `yaml:"lattice" toml:"lattice"`
	View    ViewConfig    `yaml:"view" toml:"view"`
	Mesh    MeshConfig    `yaml:"mesh" toml:"mesh"`
	Logging LoggingConfig `yaml:"logging" toml:"logging"`
}

// LatticeConfig holds the fixed placement lattice.
type LatticeConfig struct {
	BaseGridSize int     `yaml:"base_grid_size" toml:"base_grid_size"`
	GridSpacing  float64 `yaml:"grid_spacing" toml:"grid_spacing"`
}

// Lattice converts the section to the voxel package type.
func (l LatticeConfig) Lattice() voxel.Lattice {
	return voxel.Lattice{BaseGridSize: l.BaseGridSize, GridSpacing: l.GridSpacing}
}

// Vec3Config is a position in world units.
type Vec3Config struct {
	X float64 `yaml:"x" toml:"x"`
	Y float64 `yaml:"y" toml:"y"`
	Z float64 `yaml:"z" toml:"z"`
}

// Vertex converts the position to a voxel.Vertex.
func (v Vec3Config) Vertex() voxel.Vertex {
	return voxel.Vertex{X: v.X, Y: v.Y, Z: v.Z}
}

// ViewConfig holds the initial transform and color.
type ViewConfig struct {
	Scale      float64    `yaml:"scale" toml:"scale"`
	Rotation   float64    `yaml:"rotation" toml:"rotation"` // radians
	Position   Vec3Config `yaml:"position" toml:"position"`
	Hue        float64    `yaml:"hue" toml:"hue"` // degrees
	Brightness float64    `yaml:"brightness" toml:"brightness"`
}

// Transform returns the view inputs as a voxel.Transform.
func (v ViewConfig) Transform() voxel.Transform {
	return voxel.Transform{Scale: v.Scale, Rotation: v.Rotation, Position: v.Position.Vertex()}
}

// MeshConfig selects the generated source mesh.
type MeshConfig struct {
	Shape string  `yaml:"shape" toml:"shape"`
	Size  float64 `yaml:"size" toml:"size"`
	Cells int     `yaml:"cells" toml:"cells"`
}

// Spec converts the section to a mesh.Spec.
func (m MeshConfig) Spec() (mesh.Spec, error) {
	shape, err := mesh.ParseShape(m.Shape)
	if err != nil {
		return mesh.Spec{}, err
	}
	return mesh.Spec{Shape: shape, Size: m.Size, Cells: m.Cells}, nil
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" toml:"level"`
	LogFile string `yaml:"log_file" toml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Lattice: LatticeConfig{
			BaseGridSize: voxel.DefaultBaseGridSize,
			GridSpacing:  voxel.DefaultGridSpacing,
		},
		View: ViewConfig{
			Scale:      voxel.MaxScale,
			Hue:        210,
			Brightness: 0.8,
		},
		Mesh: MeshConfig{
			Shape: string(mesh.Sphere),
			Size:  2,
			Cells: mesh.DefaultCells,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate checks values that would make voxelization impossible.
func (c *Config) Validate() error {
	var errs []error
	if err := c.Lattice.Lattice().Validate(); err != nil {
		errs = append(errs, fmt.Errorf("lattice: %w", err))
	}
	if c.View.Brightness < 0 || c.View.Brightness > 1 {
		errs = append(errs, fmt.Errorf("view: brightness %v outside [0, 1]", c.View.Brightness))
	}
	if _, err := c.Mesh.Spec(); err != nil {
		errs = append(errs, fmt.Errorf("mesh: %w", err))
	}
	if !(c.Mesh.Size > 0) {
		errs = append(errs, fmt.Errorf("mesh: size must be positive, got %v", c.Mesh.Size))
	}
	if c.Mesh.Cells < 0 {
		errs = append(errs, fmt.Errorf("mesh: cells must not be negative, got %d", c.Mesh.Cells))
	}
	return errors.Join(errs...)
}
