// Package main is the entry point for the teletext map renderer.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/dshills/teletextmap/internal/config"
	"github.com/dshills/teletextmap/internal/display"
	"github.com/dshills/teletextmap/internal/logging"
	"github.com/dshills/teletextmap/internal/render"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// env is the state shared by every subcommand.
type env struct {
	configPath string
	cfg        *config.Config
	logger     *logging.Logger
	stdout     io.Writer
	stderr     io.Writer
}

// renderer builds a renderer and palette from the current configuration.
func (e *env) renderer() (*render.Renderer, display.Palette, error) {
	opts, err := e.cfg.RenderOptions(e.logger)
	if err != nil {
		return nil, nil, err
	}
	r, err := render.New(opts)
	if err != nil {
		return nil, nil, err
	}
	palette, err := display.PaletteFromConfig(e.cfg.Palette)
	if err != nil {
		return nil, nil, err
	}
	return r, palette, nil
}

type command struct {
	summary string
	run     func(e *env, args []string) error
}

var commands = map[string]command{
	"raster": {"render an image file", runRaster},
	"vector": {"render an Overpass JSON or OSM XML file", runVector},
	"fetch":  {"download and render one view", runFetch},
	"view":   {"interactive terminal viewer", runView},
}

// commandOrder fixes the usage listing order.
var commandOrder = []string{"raster", "vector", "fetch", "view"}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("teletextmap", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var configPath, logLevel string
	var showVersion, showHelp bool
	fs.StringVar(&configPath, "config", "", "Path to configuration file (.toml, .yaml)")
	fs.StringVar(&configPath, "c", "", "Path to configuration file (shorthand)")
	fs.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.BoolVar(&showVersion, "version", false, "Show version information")
	fs.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	fs.BoolVar(&showHelp, "help", false, "Show help message")
	fs.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "teletextmap - render maps as teletext-style character grids\n\n")
		fmt.Fprintf(stderr, "Usage: teletextmap [options] <command> [command options]\n\n")
		fmt.Fprintf(stderr, "Commands:\n")
		for _, name := range commandOrder {
			fmt.Fprintf(stderr, "  %-8s %s\n", name, commands[name].summary)
		}
		fmt.Fprintf(stderr, "\nOptions:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  teletextmap raster tile.png          Render a saved tile\n")
		fmt.Fprintf(stderr, "  teletextmap vector -json roads.osm   Render roads as JSON\n")
		fmt.Fprintf(stderr, "  teletextmap -c map.toml view         Start the viewer\n")
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}

	if showHelp {
		fs.Usage()
		return 0
	}

	if showVersion {
		fmt.Fprintf(stdout, "teletextmap %s\n", version)
		fmt.Fprintf(stdout, "Commit: %s\n", commit)
		fmt.Fprintf(stdout, "Built: %s\n", date)
		return 0
	}

	if logLevel != "" && !logging.ValidLevel(logLevel) {
		fmt.Fprintf(stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", logLevel)
		return 1
	}

	rest := fs.Args()
	if len(rest) == 0 {
		fs.Usage()
		return 1
	}
	cmd, ok := commands[rest[0]]
	if !ok {
		fmt.Fprintf(stderr, "Error: unknown command %q\n", rest[0])
		return 1
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to load config: %v\n", err)
		return 1
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}

	logCfg := logging.DefaultConfig()
	logCfg.Level = cfg.LogLevel()
	logCfg.Output = stderr

	e := &env{
		configPath: configPath,
		cfg:        cfg,
		logger:     logging.New(logCfg),
		stdout:     stdout,
		stderr:     stderr,
	}

	if err := cmd.run(e, rest[1:]); err != nil {
		if errors.Is(err, display.ErrQuit) {
			return 0
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
