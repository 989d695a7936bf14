package config

import "flag"

// Flags holds command-line overrides registered on a FlagSet.
type Flags struct {
	fs *flag.FlagSet

	Config   *string
	Debug    *bool
	Scale    *float64
	Rotation *float64
	Shape    *string
	Base     *int
	LogFile  *string
}

// RegisterFlags defines the config override flags on fs.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	return &Flags{
		fs:       fs,
		Config:   fs.String("config", "", "Path to config file (.yaml or .toml)"),
		Debug:    fs.Bool("debug", false, "Enable debug logging"),
		Scale:    fs.Float64("scale", 0, "View scale, snapped to 0.125 steps in [0.125, 1]"),
		Rotation: fs.Float64("rotation", 0, "View rotation in radians, snapped to quarter turns"),
		Shape:    fs.String("shape", "", "Generated mesh shape (box, sphere, cylinder, hollow)"),
		Base:     fs.Int("base", 0, "Base grid size (cells per axis at full scale)"),
		LogFile:  fs.String("log", "", "Log file path"),
	}
}

// ConfigPath returns the explicit config path if provided via -config.
func (f *Flags) ConfigPath() string {
	if f == nil {
		return ""
	}
	return *f.Config
}

func (f *Flags) isSet(name string) bool {
	set := false
	f.fs.Visit(func(fl *flag.Flag) {
		if fl.Name == name {
			set = true
		}
	})
	return set
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config, f *Flags) {
	if f == nil {
		return
	}
	if *f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.isSet("scale") {
		cfg.View.Scale = *f.Scale
	}
	if f.isSet("rotation") {
		cfg.View.Rotation = *f.Rotation
	}
	if *f.Shape != "" {
		cfg.Mesh.Shape = *f.Shape
	}
	if *f.Base > 0 {
		cfg.Lattice.BaseGridSize = *f.Base
	}
	if *f.LogFile != "" {
		cfg.Logging.LogFile = *f.LogFile
	}
}
