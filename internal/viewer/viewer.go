// Package viewer drives a voxel session the way an interactive view does:
// it takes raw scale, rotation, position and color inputs, snaps them, and
// produces render-ready frames. Nothing here draws.
package viewer

import (
	gomath "math"

	"github.com/lucasb-eyer/go-colorful"
	"go.uber.org/zap"

	"github.com/Faultbox/voxelview/internal/logger"
	"github.com/Faultbox/voxelview/internal/mesh"
	"github.com/Faultbox/voxelview/pkg/math"
	"github.com/Faultbox/voxelview/pkg/voxel"
)

// cellSaturation is the HSV saturation used for every voxel.
const cellSaturation = 0.65

// Frame is everything a renderer needs to draw the current voxel state.
type Frame struct {
	GridSize    int
	Scale       float64 // snapped
	Rotation    float64 // snapped, radians
	Position    voxel.Vertex
	CellSpacing float64

	Grid       *voxel.OccupancyGrid
	Placements []voxel.Placement

	// Model places the whole voxel group: translate · quarter-turn rotation.
	Model math.Mat4
	// Bounds is a line list outlining the voxel volume in model space.
	Bounds []float32

	Hue        float64
	Brightness float64
	Color      colorful.Color

	// Stale is set when the latest update failed and this frame still shows
	// the previous grid.
	Stale bool
}

// CellMatrices returns one model matrix per placement, scaling a unit cube
// to the cell pitch and moving it to its lattice position.
func (f Frame) CellMatrices() []math.Mat4 {
	out := make([]math.Mat4, len(f.Placements))
	cell := math.Scale(float32(f.CellSpacing))
	for i, p := range f.Placements {
		pos := math.Vec3From(p.Position.X, p.Position.Y, p.Position.Z)
		out[i] = f.Model.Mul(math.Translate(pos)).Mul(cell)
	}
	return out
}

// Viewer owns the view inputs for one session.
type Viewer struct {
	session *voxel.Session
	lattice voxel.Lattice
	log     *zap.Logger

	input      voxel.Transform
	hue        float64
	brightness float64

	frame         Frame
	builtScale    float64
	dirty         bool
	voxelizations int
}

// New returns a viewer over session. A nil log uses the package logger.
func New(session *voxel.Session, lattice voxel.Lattice, log *zap.Logger) (*Viewer, error) {
	if err := lattice.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.Named("viewer")
	}
	v := &Viewer{
		session:    session,
		lattice:    lattice,
		log:        log.With(zap.String("session", string(session.Key()))),
		input:      voxel.Transform{Scale: voxel.MaxScale},
		brightness: 1,
	}
	v.refreshTransform()
	v.refreshColor()
	v.frame.Bounds = voxel.Wireframe(lattice.VolumeBounds())
	return v, nil
}

// LoadMesh tessellates spec and loads it into the session.
func (v *Viewer) LoadMesh(spec mesh.Spec) error {
	verts, err := mesh.Generate(spec)
	if err != nil {
		v.log.Warn("mesh generation failed", zap.String("shape", string(spec.Shape)), zap.Error(err))
		return err
	}
	v.log.Debug("mesh generated",
		zap.String("shape", string(spec.Shape)),
		zap.Float64("size", spec.Size),
		zap.Int("vertices", len(verts)))
	return v.LoadVertices(verts)
}

// LoadVertices replaces the session model and rebuilds the grid.
func (v *Viewer) LoadVertices(verts []voxel.Vertex) error {
	model, err := v.session.Load(verts)
	if err != nil {
		v.log.Warn("model load failed", zap.Error(err))
		return err
	}
	v.dirty = true
	v.log.Info("model loaded",
		zap.Int("vertices", len(model.Vertices)),
		zap.Any("bounds_min", model.Bounds.Min),
		zap.Any("bounds_max", model.Bounds.Max))
	return v.rebuild()
}

// SetScale updates the scale input. The grid is rebuilt only when the
// snapped scale changes; before a model is loaded only the input is kept.
func (v *Viewer) SetScale(scale float64) error {
	v.input.Scale = scale
	if _, ok := v.session.Model(); !ok {
		return nil
	}
	if !v.dirty && voxel.SnapScale(scale) == v.builtScale {
		return nil
	}
	return v.rebuild()
}

// SetRotation updates the rotation input. Rotation never changes occupancy.
func (v *Viewer) SetRotation(angle float64) {
	v.input.Rotation = angle
	v.refreshTransform()
}

// SetPosition updates the group position input.
func (v *Viewer) SetPosition(p voxel.Vertex) {
	v.input.Position = p
	v.refreshTransform()
}

// SetColor updates hue (degrees) and brightness (0..1).
func (v *Viewer) SetColor(hue, brightness float64) {
	v.hue = hue
	v.brightness = brightness
	v.refreshColor()
}

// Apply sets every input at once.
func (v *Viewer) Apply(t voxel.Transform, hue, brightness float64) error {
	v.SetRotation(t.Rotation)
	v.SetPosition(t.Position)
	v.SetColor(hue, brightness)
	return v.SetScale(t.Scale)
}

// Frame returns the current frame.
func (v *Viewer) Frame() Frame {
	return v.frame
}

// Voxelizations returns how many grids the viewer has built.
func (v *Viewer) Voxelizations() int {
	return v.voxelizations
}

func (v *Viewer) rebuild() error {
	grid, size, err := v.session.Voxelize(v.input.Scale, v.lattice)
	if err != nil {
		v.dirty = true
		v.frame.Stale = v.frame.Grid != nil
		v.log.Warn("voxelization failed, keeping previous grid",
			zap.Float64("scale", v.input.Scale),
			zap.Int("grid_size", size),
			zap.Error(err))
		return err
	}

	v.voxelizations++
	v.dirty = false
	v.builtScale = voxel.SnapScale(v.input.Scale)
	v.frame.Stale = false
	v.frame.Grid = grid
	v.frame.GridSize = size
	v.frame.Scale = v.builtScale
	v.frame.CellSpacing = v.lattice.CellSpacing(size)
	v.frame.Placements = v.lattice.CollectPlacements(grid)

	v.log.Debug("voxelized",
		zap.Float64("scale", v.builtScale),
		zap.Int("grid_size", size),
		zap.Int("occupied", len(v.frame.Placements)))
	return nil
}

func (v *Viewer) refreshTransform() {
	snapped := v.lattice.SnapTransform(v.input)
	v.frame.Rotation = snapped.Rotation
	v.frame.Position = snapped.Position

	pos := math.Vec3From(snapped.Position.X, snapped.Position.Y, snapped.Position.Z)
	v.frame.Model = math.ModelMatrix(pos, voxel.QuarterTurns(v.input.Rotation), 1)
}

func (v *Viewer) refreshColor() {
	hue := gomath.Mod(v.hue, 360)
	if hue < 0 {
		hue += 360
	}
	v.frame.Hue = v.hue
	v.frame.Brightness = v.brightness
	v.frame.Color = colorful.Hsv(hue, cellSaturation, v.brightness).Clamped()
}
