package viewer

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Faultbox/voxelview/internal/mesh"
	"github.com/Faultbox/voxelview/pkg/math"
	"github.com/Faultbox/voxelview/pkg/voxel"
)

func cube() []voxel.Vertex {
	var out []voxel.Vertex
	for _, x := range []float64{-1, 1} {
		for _, y := range []float64{-1, 1} {
			for _, z := range []float64{-1, 1} {
				out = append(out, voxel.Vertex{X: x, Y: y, Z: z})
			}
		}
	}
	return out
}

func newViewer(t *testing.T) (*Viewer, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	v, err := New(voxel.NewSession("test"), voxel.DefaultLattice, zap.New(core))
	require.NoError(t, err)
	return v, logs
}

func TestNew_RejectsInvalidLattice(t *testing.T) {
	_, err := New(voxel.NewSession("x"), voxel.Lattice{BaseGridSize: 0, GridSpacing: 0.5}, nil)
	require.ErrorIs(t, err, voxel.ErrInvalidResolution)
}

func TestViewer_InitialFrame(t *testing.T) {
	v, _ := newViewer(t)
	f := v.Frame()

	assert.Nil(t, f.Grid)
	assert.Empty(t, f.Placements)
	assert.Equal(t, math.Identity(), f.Model)
	assert.Len(t, f.Bounds, voxel.WireframeVertexCount*3)
	assert.False(t, f.Stale)
}

func TestViewer_SetScaleBeforeLoad(t *testing.T) {
	v, _ := newViewer(t)
	require.NoError(t, v.SetScale(0.5))
	assert.Zero(t, v.Voxelizations())
}

func TestViewer_LoadVerticesFullResolution(t *testing.T) {
	v, _ := newViewer(t)
	require.NoError(t, v.LoadVertices(cube()))

	f := v.Frame()
	assert.Equal(t, 8, f.GridSize)
	assert.Equal(t, 1.0, f.Scale)
	assert.Equal(t, 0.5, f.CellSpacing)
	require.Len(t, f.Placements, 8)

	got := map[voxel.Vertex]bool{}
	for _, p := range f.Placements {
		got[p.Position] = true
	}
	want := map[voxel.Vertex]bool{}
	for _, c := range cube() {
		want[voxel.Vertex{X: 2 * c.X, Y: 2 * c.Y, Z: 2 * c.Z}] = true
	}
	assert.Empty(t, cmp.Diff(want, got))
}

func TestViewer_SetScaleRebuildsOnlyOnSnapChange(t *testing.T) {
	v, _ := newViewer(t)
	require.NoError(t, v.LoadVertices(cube()))
	require.Equal(t, 1, v.Voxelizations())

	// 0.97 snaps back to 1.0.
	require.NoError(t, v.SetScale(0.97))
	assert.Equal(t, 1, v.Voxelizations())

	require.NoError(t, v.SetScale(0.26))
	assert.Equal(t, 2, v.Voxelizations())

	f := v.Frame()
	assert.Equal(t, 2, f.GridSize)
	assert.Equal(t, 0.25, f.Scale)
	assert.Equal(t, 2.0, f.CellSpacing)
	assert.Len(t, f.Placements, 8)
	for _, p := range f.Placements {
		assert.Equal(t, 1.0, abs(p.Position.X))
	}
}

func TestViewer_RotationDoesNotRevoxelize(t *testing.T) {
	v, _ := newViewer(t)
	require.NoError(t, v.LoadVertices(cube()))
	before := v.Frame().Grid

	v.SetRotation(1.4)
	f := v.Frame()
	assert.Equal(t, 1, v.Voxelizations())
	assert.Same(t, before, f.Grid)
	assert.InDelta(t, voxel.QuarterTurn, f.Rotation, 1e-12)

	// One quarter turn about Y sends +X to -Z.
	p := f.Model.TransformPoint(math.Vec3{X: 1})
	assert.Equal(t, math.Vec3{X: 0, Y: 0, Z: -1}, p)
}

func TestViewer_PositionSnapsToLattice(t *testing.T) {
	v, _ := newViewer(t)
	v.SetPosition(voxel.Vertex{X: 0.3, Y: -0.74, Z: 2.1})

	f := v.Frame()
	assert.Equal(t, voxel.Vertex{X: 0.5, Y: -0.5, Z: 2}, f.Position)
	assert.Equal(t, math.Vec3{X: 0.5, Y: -0.5, Z: 2}, f.Model.TransformPoint(math.Vec3{}))
}

func TestFrame_CellMatrices(t *testing.T) {
	v, _ := newViewer(t)
	require.NoError(t, v.LoadVertices(cube()))
	require.NoError(t, v.SetScale(0.25))
	v.SetPosition(voxel.Vertex{X: 1})

	f := v.Frame()
	mats := f.CellMatrices()
	require.Len(t, mats, len(f.Placements))

	for i, p := range f.Placements {
		center := mats[i].TransformPoint(math.Vec3{})
		assert.Equal(t, math.Vec3From(p.Position.X+1, p.Position.Y, p.Position.Z), center)

		// The unit cube corner lands one cell pitch away.
		corner := mats[i].TransformPoint(math.Vec3{X: 1, Y: 1, Z: 1})
		want := math.Vec3{X: center.X + 2, Y: center.Y + 2, Z: center.Z + 2}
		assert.Equal(t, want, corner)
	}
}

func TestViewer_SetColor(t *testing.T) {
	v, _ := newViewer(t)

	v.SetColor(0, 1)
	red := v.Frame().Color
	assert.InDelta(t, 1.0, red.R, 1e-9)
	assert.InDelta(t, 1-cellSaturation, red.G, 1e-9)
	assert.InDelta(t, 1-cellSaturation, red.B, 1e-9)

	v.SetColor(360, 1)
	assert.Equal(t, red, v.Frame().Color)
	assert.Equal(t, 360.0, v.Frame().Hue)

	v.SetColor(-120, 0.5)
	blue := v.Frame().Color
	assert.Greater(t, blue.B, blue.R)
	assert.Greater(t, blue.B, blue.G)
	assert.Equal(t, 0.5, v.Frame().Brightness)
}

func TestViewer_FailedLoadKeepsPreviousFrame(t *testing.T) {
	v, logs := newViewer(t)
	require.NoError(t, v.LoadVertices(cube()))
	good := v.Frame()

	flat := []voxel.Vertex{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 0}}
	err := v.LoadVertices(flat)
	require.ErrorIs(t, err, voxel.ErrDegenerateBounds)

	f := v.Frame()
	assert.True(t, f.Stale)
	assert.Same(t, good.Grid, f.Grid)
	assert.Equal(t, good.Placements, f.Placements)

	warns := logs.FilterLevelExact(zapcore.WarnLevel).All()
	require.Len(t, warns, 1)
	assert.Equal(t, "voxelization failed, keeping previous grid", warns[0].Message)
	assert.Equal(t, int64(8), warns[0].ContextMap()["grid_size"])

	// A good model clears the stale flag.
	require.NoError(t, v.LoadVertices(cube()))
	assert.False(t, v.Frame().Stale)
}

func TestViewer_RecoversAfterFailedScale(t *testing.T) {
	core, _ := observer.New(zapcore.DebugLevel)
	v, err := New(voxel.NewSession("small"), voxel.Lattice{BaseGridSize: 2, GridSpacing: 1}, zap.New(core))
	require.NoError(t, err)
	require.NoError(t, v.LoadVertices(cube()))
	good := v.Frame()
	require.Equal(t, 2, good.GridSize)

	// 2 × 0.125 rounds to zero cells.
	require.ErrorIs(t, v.SetScale(0.125), voxel.ErrInvalidResolution)
	assert.True(t, v.Frame().Stale)

	require.NoError(t, v.SetScale(1))
	f := v.Frame()
	assert.False(t, f.Stale)
	assert.Equal(t, 2, f.GridSize)
	assert.Equal(t, 1.0, f.Scale)
	assert.Equal(t, good.Placements, f.Placements)
}

func TestViewer_EmptyLoad(t *testing.T) {
	v, logs := newViewer(t)
	err := v.LoadVertices(nil)
	require.ErrorIs(t, err, voxel.ErrEmptyMesh)
	assert.Equal(t, 1, logs.FilterMessage("model load failed").Len())
	assert.Zero(t, v.Voxelizations())
}

func TestViewer_LoadMesh(t *testing.T) {
	v, _ := newViewer(t)
	require.NoError(t, v.LoadMesh(mesh.Spec{Shape: mesh.Box, Size: 2, Cells: 8}))

	f := v.Frame()
	assert.Equal(t, 8, f.GridSize)
	assert.NotEmpty(t, f.Placements)
	assert.LessOrEqual(t, len(f.Placements), 8*8*8)

	err := v.LoadMesh(mesh.Spec{Shape: "torus", Size: 2})
	require.ErrorIs(t, err, mesh.ErrUnknownShape)
	assert.Equal(t, f.Placements, v.Frame().Placements)
}

func TestViewer_Apply(t *testing.T) {
	v, _ := newViewer(t)
	require.NoError(t, v.LoadVertices(cube()))

	err := v.Apply(voxel.Transform{
		Scale:    0.5,
		Rotation: -voxel.QuarterTurn,
		Position: voxel.Vertex{Y: 0.6},
	}, 120, 0.9)
	require.NoError(t, err)

	f := v.Frame()
	assert.Equal(t, 4, f.GridSize)
	assert.Equal(t, voxel.Vertex{Y: 0.5}, f.Position)
	assert.Equal(t, 120.0, f.Hue)
	assert.InDelta(t, -voxel.QuarterTurn, f.Rotation, 1e-12)
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
