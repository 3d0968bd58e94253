package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/dshills/teletextmap/internal/config"
	"github.com/dshills/teletextmap/internal/display"
	"github.com/dshills/teletextmap/internal/export"
	"github.com/dshills/teletextmap/internal/fetch"
	"github.com/dshills/teletextmap/internal/geo"
	"github.com/dshills/teletextmap/internal/geolocate"
	"github.com/dshills/teletextmap/internal/render"
	"github.com/dshills/teletextmap/internal/session"
	"github.com/dshills/teletextmap/internal/source"
	"github.com/dshills/teletextmap/internal/vector"
)

func newFlagSet(e *env, name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	return fs
}

func runRaster(e *env, args []string) error {
	fs := newFlagSet(e, "raster")
	out := fs.String("o", "", "Also write the grid as a PNG to this path")
	asJSON := fs.Bool("json", false, "Print {\"map\": [...]} instead of text")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("raster: expected one image path")
	}

	r, palette, err := e.renderer()
	if err != nil {
		return err
	}

	f, err := os.Open(fs.Arg(0))
	if err != nil {
		return err
	}
	defer f.Close()

	grid, err := r.RenderImage(f)
	if err != nil {
		return e.fail(*asJSON, "map unavailable", err)
	}

	if *out != "" {
		if err := writePNG(*out, grid, palette); err != nil {
			return err
		}
		e.logger.Info("wrote %s", *out)
	}
	return e.print(*asJSON, export.Text(grid))
}

func runVector(e *env, args []string) error {
	fs := newFlagSet(e, "vector")
	asJSON := fs.Bool("json", false, "Print {\"map\": [...]} instead of text")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("vector: expected one feature file path")
	}

	g, err := readGraph(fs.Arg(0))
	if err != nil {
		return e.fail(*asJSON, "invalid feature data", err)
	}

	r, _, err := e.renderer()
	if err != nil {
		return err
	}
	res, err := r.RenderVector(g)
	if err != nil {
		return e.fail(*asJSON, "map unavailable", err)
	}
	return e.print(*asJSON, e.vectorLines(res))
}

func runFetch(e *env, args []string) error {
	start := e.cfg.Position()
	fs := newFlagSet(e, "fetch")
	lat := fs.Float64("lat", start.Lat, "Center latitude")
	lng := fs.Float64("lng", start.Lng, "Center longitude")
	zoom := fs.Int("zoom", start.Zoom, "Zoom level (1-20)")
	useVector := fs.Bool("vector", false, "Render Overpass highways instead of a tile")
	asJSON := fs.Bool("json", false, "Print {\"map\": [...]} instead of text")
	if err := fs.Parse(args); err != nil {
		return err
	}

	pos := session.Position{Lat: *lat, Lng: *lng}.ZoomBy(*zoom)
	r, _, err := e.renderer()
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	client := &http.Client{Timeout: e.cfg.Timeout()}

	if *useVector {
		data, err := newOverpassClient(e, client).Query(ctx, fetch.HighwayQuery(pos.Bound(), e.cfg.Overpass.Filter))
		if err != nil {
			return e.fail(*asJSON, "map unavailable", err)
		}
		g, err := source.ParseOverpassJSON(data)
		if err != nil {
			return e.fail(*asJSON, "map unavailable", err)
		}
		res, err := r.RenderVector(g)
		if err != nil {
			return e.fail(*asJSON, "map unavailable", err)
		}
		return e.print(*asJSON, e.vectorLines(res))
	}

	data, err := newTileClient(e, client).Fetch(ctx, pos)
	if err != nil {
		return e.fail(*asJSON, "map unavailable", err)
	}
	grid, err := r.RenderImage(bytes.NewReader(data))
	if err != nil {
		return e.fail(*asJSON, "map unavailable", err)
	}
	return e.print(*asJSON, export.Text(grid))
}

func runView(e *env, args []string) error {
	fs := newFlagSet(e, "view")
	dbPath := fs.String("geoip", "", "MaxMind City database for the starting position")
	ip := fs.String("ip", "", "Address to geolocate (requires -geoip)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	start := e.cfg.Position()
	if *dbPath != "" && *ip != "" {
		start = locate(e, *dbPath, *ip, start)
	}

	r, palette, err := e.renderer()
	if err != nil {
		return err
	}

	term, err := display.NewTerminal()
	if err != nil {
		return fmt.Errorf("failed to create terminal: %w", err)
	}

	client := &http.Client{Timeout: e.cfg.Timeout()}
	viewer := display.NewViewer(term, r, palette, display.ViewerOptions{
		Start:     start,
		Step:      e.cfg.View.Step,
		Tiles:     newTileClient(e, client),
		Features:  newOverpassClient(e, client),
		Filter:    e.cfg.Overpass.Filter,
		VectorOn:  e.cfg.Vector.On,
		VectorOff: e.cfg.Vector.Off,
		NorthUp:   e.cfg.Vector.NorthUp,
		Logger:    e.logger,
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if e.configPath != "" {
		watcher, err := config.NewWatcher(e.configPath, func(cfg *config.Config, err error) {
			if err != nil {
				e.logger.Warn("keeping previous config: %v", err)
				return
			}
			e.cfg = cfg
			r, palette, err := e.renderer()
			if err != nil {
				e.logger.Warn("keeping previous renderer: %v", err)
				return
			}
			if !viewer.Reconfigure(r, palette) {
				e.logger.Debug("viewer stopped, reload ignored")
			}
		}, config.WithLogger(e.logger))
		if err != nil {
			e.logger.Warn("config reload disabled: %v", err)
		} else {
			go func() {
				if err := watcher.Run(ctx); err != nil && ctx.Err() == nil {
					e.logger.Warn("config watcher stopped: %v", err)
				}
			}()
		}
	}

	return viewer.Run(ctx)
}

// locate resolves ip to a starting position, falling back to def.
func locate(e *env, dbPath, ip string, def session.Position) session.Position {
	loc, err := geolocate.Open(dbPath, def.Zoom)
	if err != nil {
		e.logger.Warn("geolocation unavailable: %v", err)
		return def
	}
	defer loc.Close()

	p, err := loc.Lookup(ip)
	if err != nil {
		e.logger.Warn("geolocation failed: %v", err)
		return def
	}
	e.logger.Info("starting at %s", p)
	return p
}

func newTileClient(e *env, client *http.Client) *fetch.TileClient {
	return fetch.NewTileClient(fetch.TileConfig{
		Endpoint: e.cfg.Tile.Endpoint,
		Style:    e.cfg.Tile.Style,
		Size:     e.cfg.Tile.Size,
		Token:    e.cfg.Tile.Token,
	}, client)
}

func newOverpassClient(e *env, client *http.Client) *fetch.OverpassClient {
	return fetch.NewOverpassClient(e.cfg.Overpass.Endpoint, client)
}

// readGraph loads OSM XML for .osm files and Overpass JSON otherwise.
func readGraph(path string) (*geo.Graph, error) {
	if strings.EqualFold(filepath.Ext(path), ".osm") {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return source.ParseOSMXML(f)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return source.ParseOverpassJSON(data)
}

func (e *env) vectorLines(res *vector.Result) []string {
	if len(res.Dangling) > 0 {
		e.logger.Warn("%d dangling node references skipped", len(res.Dangling))
	}
	return res.Grid.Lines(e.cfg.Vector.On, e.cfg.Vector.Off, e.cfg.Vector.NorthUp)
}

func (e *env) print(asJSON bool, lines []string) error {
	if asJSON {
		data, err := source.EncodeMapJSON(lines)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(e.stdout, string(data))
		return err
	}
	for _, l := range lines {
		if _, err := fmt.Fprintln(e.stdout, l); err != nil {
			return err
		}
	}
	return nil
}

// fail reports err. In JSON mode the client-facing message is printed as
// {"error": msg} before err is returned.
func (e *env) fail(asJSON bool, msg string, err error) error {
	if asJSON {
		if data, encErr := source.EncodeErrorJSON(msg); encErr == nil {
			fmt.Fprintln(e.stdout, string(data))
		}
	}
	return fmt.Errorf("%s: %w", msg, err)
}

func writePNG(path string, grid *render.Grid, palette display.Palette) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := export.PNG(f, grid, palette); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
