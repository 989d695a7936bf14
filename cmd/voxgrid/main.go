// voxgrid is a CLI for voxelizing generated meshes and inspecting the result.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/voxelview/internal/config"
	"github.com/Faultbox/voxelview/internal/logger"
	"github.com/Faultbox/voxelview/internal/mesh"
	"github.com/Faultbox/voxelview/internal/viewer"
	"github.com/Faultbox/voxelview/pkg/voxel"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "bounds":
		cmdBounds(args)
	case "voxelize", "vox":
		cmdVoxelize(args)
	case "placements", "place":
		cmdPlacements(args)
	case "snap":
		cmdSnap(args)
	case "watch":
		cmdWatch(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`voxgrid - mesh voxelization utility

Usage:
  voxgrid <command> [options]

Commands:
  bounds                 Print the bounding box of the configured mesh
  voxelize               Print the occupancy grid layer by layer
  placements             List world positions of occupied cells
  snap [x y z] [-save]   Show snapped scale, rotation and position
  watch                  Re-voxelize whenever the config file changes
                         (-config or ./voxelview.yaml)

Common options:
  -config <file>         Config file (.yaml or .toml)
  -scale <s>             View scale (0.125 .. 1)
  -rotation <rad>        View rotation in radians
  -shape <name>          box, sphere, cylinder or hollow
  -base <n>              Base grid size
  -debug                 Enable debug logging
  -format text|yaml      Output format (bounds, placements)

Examples:
  voxgrid voxelize -shape hollow -scale 0.5
  voxgrid placements -shape box -format yaml
  voxgrid snap -scale 0.3 -rotation 2 0.3 1.1 -0.2
  voxgrid watch -config voxelview.yaml`)
}

// command bundles the flag set shared by every subcommand.
type command struct {
	fs     *flag.FlagSet
	flags  *config.Flags
	format *string
}

func newCommand(name string) *command {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	return &command{
		fs:     fs,
		flags:  config.RegisterFlags(fs),
		format: fs.String("format", "text", "Output format: text or yaml"),
	}
}

// load parses args, loads the config and starts the logger.
func (c *command) load(args []string) *config.Config {
	c.fs.Parse(args)

	cfg, err := config.Load(c.flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	logger.Sugar.Debugf("Config: %+v", cfg)

	switch *c.format {
	case "text", "yaml":
	default:
		fatal(fmt.Errorf("unknown format %q", *c.format))
	}
	return cfg
}

// newViewer builds a viewer for cfg and loads the configured mesh into it.
func newViewer(cfg *config.Config) (*viewer.Viewer, error) {
	cache := voxel.NewCache()
	session := cache.GetOrCreate(voxel.NewSessionKey())

	v, err := viewer.New(session, cfg.Lattice.Lattice(), nil)
	if err != nil {
		return nil, err
	}
	if err := v.Apply(cfg.View.Transform(), cfg.View.Hue, cfg.View.Brightness); err != nil {
		return nil, err
	}

	spec, err := cfg.Mesh.Spec()
	if err != nil {
		return nil, err
	}
	if err := v.LoadMesh(spec); err != nil {
		return nil, fmt.Errorf("loading %s mesh: %w", spec.Shape, err)
	}
	return v, nil
}

func generate(cfg *config.Config) ([]voxel.Vertex, error) {
	spec, err := cfg.Mesh.Spec()
	if err != nil {
		return nil, err
	}
	verts, err := mesh.Generate(spec)
	if err != nil {
		return nil, err
	}
	logger.Debug("mesh generated", zap.String("shape", string(spec.Shape)), zap.Int("vertices", len(verts)))
	return verts, nil
}

func fatal(err error) {
	logger.Sync()
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
