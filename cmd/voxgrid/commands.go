package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/voxelview/internal/config"
	"github.com/Faultbox/voxelview/internal/logger"
	"github.com/Faultbox/voxelview/internal/viewer"
	"github.com/Faultbox/voxelview/pkg/voxel"
)

type boundsOutput struct {
	Shape    string     `yaml:"shape"`
	Vertices int        `yaml:"vertices"`
	Min      [3]float64 `yaml:"min,flow"`
	Max      [3]float64 `yaml:"max,flow"`
	Size     [3]float64 `yaml:"size,flow"`
}

type placementOutput struct {
	Index    [3]int     `yaml:"index,flow"`
	Position [3]float64 `yaml:"position,flow"`
}

type placementsOutput struct {
	GridSize    int               `yaml:"grid_size"`
	CellSpacing float64           `yaml:"cell_spacing"`
	Rotation    float64           `yaml:"rotation"`
	Position    [3]float64        `yaml:"position,flow"`
	Color       string            `yaml:"color"`
	Placements  []placementOutput `yaml:"placements"`
}

func array(v voxel.Vertex) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("flushing output: %w", err)
	}
	return nil
}

func cmdBounds(args []string) {
	c := newCommand("bounds")
	cfg := c.load(args)
	defer logger.Sync()

	verts, err := generate(cfg)
	if err != nil {
		fatal(err)
	}
	b, err := voxel.ComputeBounds(verts)
	if err != nil {
		fatal(err)
	}

	if *c.format == "yaml" {
		err := writeYAML(os.Stdout, boundsOutput{
			Shape:    cfg.Mesh.Shape,
			Vertices: len(verts),
			Min:      array(b.Min),
			Max:      array(b.Max),
			Size:     array(b.Size()),
		})
		if err != nil {
			fatal(err)
		}
		return
	}

	fmt.Printf("Shape:    %s\n", cfg.Mesh.Shape)
	fmt.Printf("Vertices: %d\n", len(verts))
	fmt.Printf("Min:      %.4f %.4f %.4f\n", b.Min.X, b.Min.Y, b.Min.Z)
	fmt.Printf("Max:      %.4f %.4f %.4f\n", b.Max.X, b.Max.Y, b.Max.Z)
	size := b.Size()
	fmt.Printf("Size:     %.4f %.4f %.4f\n", size.X, size.Y, size.Z)
}

func cmdVoxelize(args []string) {
	c := newCommand("voxelize")
	cfg := c.load(args)
	defer logger.Sync()

	v, err := newViewer(cfg)
	if err != nil {
		fatal(err)
	}
	f := v.Frame()

	fmt.Printf("Grid:     %d x %d x %d (scale %.3f)\n", f.GridSize, f.GridSize, f.GridSize, f.Scale)
	fmt.Printf("Occupied: %d / %d\n", f.Grid.Count(), f.Grid.Len())
	fmt.Println()
	fmt.Print(f.Grid.String())
}

func cmdPlacements(args []string) {
	c := newCommand("placements")
	n := c.fs.Int("n", 0, "Limit output to N placements (0 = all)")
	cfg := c.load(args)
	defer logger.Sync()

	v, err := newViewer(cfg)
	if err != nil {
		fatal(err)
	}
	f := v.Frame()

	placements := f.Placements
	if *n > 0 && len(placements) > *n {
		placements = placements[:*n]
	}

	if *c.format == "yaml" {
		out := placementsOutput{
			GridSize:    f.GridSize,
			CellSpacing: f.CellSpacing,
			Rotation:    f.Rotation,
			Position:    array(f.Position),
			Color:       f.Color.Hex(),
			Placements:  make([]placementOutput, 0, len(placements)),
		}
		for _, p := range placements {
			out.Placements = append(out.Placements, placementOutput{
				Index:    [3]int{p.Index.X, p.Index.Y, p.Index.Z},
				Position: array(p.Position),
			})
		}
		if err := writeYAML(os.Stdout, out); err != nil {
			fatal(err)
		}
		return
	}

	fmt.Printf("Grid %d, spacing %.4f, %d turn(s), offset %v, color %s\n",
		f.GridSize, f.CellSpacing, voxel.QuarterTurns(f.Rotation), array(f.Position), f.Color.Hex())
	for _, p := range placements {
		fmt.Printf("  [%d %d %d]  %8.3f %8.3f %8.3f\n",
			p.Index.X, p.Index.Y, p.Index.Z, p.Position.X, p.Position.Y, p.Position.Z)
	}
	if len(placements) < len(f.Placements) {
		fmt.Printf("  ... %d more\n", len(f.Placements)-len(placements))
	}
}

func cmdSnap(args []string) {
	c := newCommand("snap")
	save := c.fs.Bool("save", false, "Write the snapped view back to the config file")
	cfg := c.load(args)
	defer logger.Sync()

	t := cfg.View.Transform()
	if c.fs.NArg() > 0 {
		p, err := parsePosition(c.fs.Args())
		if err != nil {
			fatal(err)
		}
		t.Position = p
	}

	lattice := cfg.Lattice.Lattice()
	snapped := lattice.SnapTransform(t)
	size, err := lattice.EffectiveGridSize(t.Scale)
	if err != nil {
		fatal(err)
	}

	fmt.Printf("Scale:    %v -> %v (grid %d, spacing %v)\n", t.Scale, snapped.Scale, size, lattice.CellSpacing(size))
	fmt.Printf("Rotation: %v -> %v (%d quarter turn(s))\n", t.Rotation, snapped.Rotation, voxel.QuarterTurns(t.Rotation))
	fmt.Printf("Position: %v -> %v\n", array(t.Position), array(snapped.Position))

	if *save {
		path, err := saveView(cfg, snapped, c.flags)
		if err != nil {
			fatal(err)
		}
		logger.Info("view saved", zap.String("path", path))
		fmt.Printf("Saved:    %s\n", path)
	}
}

// saveView stores the snapped view in cfg and writes cfg to the file it was
// loaded from, or to the user config directory when there was none.
func saveView(cfg *config.Config, snapped voxel.Transform, flags *config.Flags) (string, error) {
	cfg.View.Scale = snapped.Scale
	cfg.View.Rotation = snapped.Rotation
	cfg.View.Position = config.Vec3Config{X: snapped.Position.X, Y: snapped.Position.Y, Z: snapped.Position.Z}

	path := config.Path(flags)
	if path == "" {
		path = config.DefaultPath()
		if err := cfg.Save(); err != nil {
			return "", fmt.Errorf("saving config to %s: %w", path, err)
		}
		return path, nil
	}
	if err := cfg.SaveTo(path); err != nil {
		return "", fmt.Errorf("saving config to %s: %w", path, err)
	}
	return path, nil
}

func parsePosition(args []string) (voxel.Vertex, error) {
	if len(args) != 3 {
		return voxel.Vertex{}, fmt.Errorf("position needs 3 coordinates, got %d", len(args))
	}
	var xyz [3]float64
	for i, a := range args {
		f, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return voxel.Vertex{}, fmt.Errorf("coordinate %q: %w", a, err)
		}
		xyz[i] = f
	}
	return voxel.Vertex{X: xyz[0], Y: xyz[1], Z: xyz[2]}, nil
}

func cmdWatch(args []string) {
	c := newCommand("watch")
	cfg := c.load(args)
	defer logger.Sync()

	path, err := watchPath(c.flags)
	if err != nil {
		fatal(err)
	}

	v, err := newViewer(cfg)
	if err != nil {
		fatal(err)
	}
	printSummary(v.Frame())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := logger.Named("watch")
	log.Info("watching config", zap.String("path", path))

	onChange := func(next *config.Config) {
		nv, err := update(v, cfg, next)
		if err != nil {
			log.Warn("config applied with errors", zap.Error(err))
			printSummary(v.Frame())
			return
		}
		v, cfg = nv, next
		printSummary(v.Frame())
	}
	onError := func(err error) {
		log.Warn("config reload failed", zap.Error(err))
	}

	if err := config.Watch(ctx, path, c.flags, onChange, onError); err != nil {
		fatal(err)
	}
	log.Info("watch stopped")
}

// watchPath resolves the file to watch the same way Load finds the config.
func watchPath(flags *config.Flags) (string, error) {
	path := config.Path(flags)
	if path == "" {
		return "", errors.New("watch needs a config file: pass -config or create ./voxelview.yaml")
	}
	return path, nil
}

// update moves v from prev to next. A lattice change needs a fresh viewer;
// otherwise the mesh is regenerated only when its section changed.
func update(v *viewer.Viewer, prev, next *config.Config) (*viewer.Viewer, error) {
	if next.Lattice != prev.Lattice {
		nv, err := newViewer(next)
		if err != nil {
			return v, err
		}
		return nv, nil
	}

	if err := v.Apply(next.View.Transform(), next.View.Hue, next.View.Brightness); err != nil {
		return v, err
	}
	if next.Mesh != prev.Mesh {
		spec, err := next.Mesh.Spec()
		if err != nil {
			return v, err
		}
		if err := v.LoadMesh(spec); err != nil {
			return v, err
		}
	}
	return v, nil
}

func printSummary(f viewer.Frame) {
	stale := ""
	if f.Stale {
		stale = " (stale)"
	}
	occupied := 0
	if f.Grid != nil {
		occupied = f.Grid.Count()
	}
	fmt.Printf("grid %d, %d occupied, spacing %.4f, %d turn(s), color %s%s\n",
		f.GridSize, occupied, f.CellSpacing, voxel.QuarterTurns(f.Rotation), f.Color.Hex(), stale)
}
