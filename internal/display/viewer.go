package display

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dshills/teletextmap/internal/fetch"
	"github.com/dshills/teletextmap/internal/logging"
	"github.com/dshills/teletextmap/internal/render"
	"github.com/dshills/teletextmap/internal/session"
	"github.com/dshills/teletextmap/internal/source"
	"github.com/dshills/teletextmap/internal/terrain"
	"github.com/dshills/teletextmap/internal/vector"
)

// ErrQuit signals that the user asked to leave the viewer.
var ErrQuit = errors.New("quit requested")

// TileSource supplies encoded tile images.
type TileSource interface {
	Fetch(ctx context.Context, p session.Position) ([]byte, error)
}

// FeatureSource answers Overpass queries.
type FeatureSource interface {
	Query(ctx context.Context, query string) ([]byte, error)
}

// Mode selects the render pipeline.
type Mode int

const (
	ModeRaster Mode = iota
	ModeVector
)

// String returns the mode label shown in the header.
func (m Mode) String() string {
	if m == ModeVector {
		return "VECTOR"
	}
	return "RASTER"
}

// State is the viewer's content state.
type State int

const (
	StateLoading State = iota
	StateReady
	StateUnavailable
)

// Screen text.
const (
	titleText       = "TELETEXT MAP"
	loadingText     = "LOADING MAP..."
	unavailableText = "MAP UNAVAILABLE"
	helpText        = "arrows pan  +/- zoom  v mode  r reload  q quit"
)

// Layout rows.
const (
	titleRow  = 0
	coordRow  = 1
	mapRow    = 3
	helpSpace = 1
)

// ViewerOptions configures a Viewer.
type ViewerOptions struct {
	Start    session.Position
	Step     float64
	Tiles    TileSource
	Features FeatureSource
	// Filter is the Overpass way key used in vector mode.
	Filter    string
	VectorOn  string
	VectorOff string
	NorthUp   bool
	Logger    *logging.Logger
}

// result carries a finished fetch back to the event loop.
type result struct {
	id     session.RequestID
	mode   Mode
	grid   *render.Grid
	vector *vector.Result
	err    error
}

// Viewer is the interactive teletext map.
// All state is owned by the Run goroutine; fetches report back through
// a channel and are applied only if they are still the latest request.
type Viewer struct {
	backend Backend
	opts    ViewerOptions
	logger  *logging.Logger
	tracker *session.Tracker

	mu       sync.Mutex
	renderer *render.Renderer
	palette  Palette

	pos     session.Position
	mode    Mode
	state   State
	grid    *render.Grid
	vector  *vector.Result
	lastErr error

	results  chan result
	updates  chan func()
	done     chan struct{}
	doneOnce sync.Once
}

// NewViewer creates a viewer drawing on backend.
func NewViewer(backend Backend, r *render.Renderer, palette Palette, opts ViewerOptions) *Viewer {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Null()
	}
	if opts.VectorOn == "" {
		opts.VectorOn = "#"
	}
	if opts.VectorOff == "" {
		opts.VectorOff = "."
	}
	if opts.Step == 0 {
		opts.Step = 0.01
	}
	return &Viewer{
		backend:  backend,
		opts:     opts,
		logger:   logger.WithComponent("viewer"),
		tracker:  session.NewTracker(),
		renderer: r,
		palette:  palette,
		pos:      opts.Start,
		results:  make(chan result, 4),
		updates:  make(chan func(), 4),
		done:     make(chan struct{}),
	}
}

// Reconfigure swaps the renderer and palette, e.g. after a config reload.
// Safe to call from any goroutine; the map is refreshed on the loop.
// It returns false without waiting once Run has returned.
func (v *Viewer) Reconfigure(r *render.Renderer, palette Palette) bool {
	update := func() {
		v.mu.Lock()
		v.renderer = r
		v.palette = palette
		v.mu.Unlock()
	}
	select {
	case <-v.done:
		return false
	default:
	}
	select {
	case v.updates <- update:
		return true
	case <-v.done:
		return false
	}
}

// Run initializes the backend and processes events until the user quits
// (ErrQuit) or ctx is done.
func (v *Viewer) Run(ctx context.Context) error {
	defer v.doneOnce.Do(func() { close(v.done) })

	if err := v.backend.Init(); err != nil {
		return fmt.Errorf("initializing display: %w", err)
	}
	defer v.backend.Shutdown()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	// Wake the poller so it can observe cancellation.
	defer v.backend.PostEvent(Event{Type: EventNone})

	events := make(chan Event)
	go func() {
		for {
			ev := v.backend.PollEvent()
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	v.refresh(ctx)
	v.draw()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev := <-events:
			if err := v.handleEvent(ctx, ev); err != nil {
				return err
			}

		case res := <-v.results:
			v.apply(res)

		case update := <-v.updates:
			update()
			v.refresh(ctx)
		}
		v.draw()
	}
}

// handleEvent reacts to one input event.
func (v *Viewer) handleEvent(ctx context.Context, ev Event) error {
	if ev.Type != EventKey {
		return nil
	}

	step := v.opts.Step
	switch ev.Key {
	case KeyEscape, KeyCtrlC:
		return ErrQuit
	case KeyUp:
		v.moveTo(ctx, v.pos.Pan(step, 0))
	case KeyDown:
		v.moveTo(ctx, v.pos.Pan(-step, 0))
	case KeyLeft:
		v.moveTo(ctx, v.pos.Pan(0, -step))
	case KeyRight:
		v.moveTo(ctx, v.pos.Pan(0, step))
	case KeyRune:
		switch ev.Rune {
		case 'q', 'Q':
			return ErrQuit
		case '+', '=':
			v.moveTo(ctx, v.pos.ZoomBy(1))
		case '-', '_':
			v.moveTo(ctx, v.pos.ZoomBy(-1))
		case 'v', 'V':
			if v.mode == ModeRaster {
				v.mode = ModeVector
			} else {
				v.mode = ModeRaster
			}
			v.refresh(ctx)
		case 'r', 'R':
			v.refresh(ctx)
		}
	}
	return nil
}

func (v *Viewer) moveTo(ctx context.Context, p session.Position) {
	if p == v.pos {
		return
	}
	v.pos = p
	v.refresh(ctx)
}

// refresh starts a fetch for the current position and mode, superseding
// any request still in flight.
func (v *Viewer) refresh(ctx context.Context) {
	id := v.tracker.Begin()
	v.state = StateLoading

	v.mu.Lock()
	r := v.renderer
	v.mu.Unlock()

	pos, mode := v.pos, v.mode
	go func() {
		res := v.load(ctx, r, pos, mode)
		res.id = id
		select {
		case v.results <- res:
		case <-ctx.Done():
		}
	}()
}

// load fetches and renders one view. It runs off the event loop.
func (v *Viewer) load(ctx context.Context, r *render.Renderer, pos session.Position, mode Mode) result {
	res := result{mode: mode}

	if mode == ModeRaster {
		if v.opts.Tiles == nil {
			res.err = errors.New("no tile source configured")
			return res
		}
		data, err := v.opts.Tiles.Fetch(ctx, pos)
		if err != nil {
			res.err = err
			return res
		}
		res.grid, res.err = r.RenderImage(bytes.NewReader(data))
		return res
	}

	if v.opts.Features == nil {
		res.err = errors.New("no feature source configured")
		return res
	}
	data, err := v.opts.Features.Query(ctx, fetch.HighwayQuery(pos.Bound(), v.opts.Filter))
	if err != nil {
		res.err = err
		return res
	}
	graph, err := source.ParseOverpassJSON(data)
	if err != nil {
		res.err = err
		return res
	}
	res.vector, res.err = r.RenderVector(graph)
	return res
}

// apply installs a finished result unless it has been superseded.
func (v *Viewer) apply(res result) {
	if !v.tracker.Complete(res.id) {
		v.logger.Debug("dropping stale result %s", res.id)
		return
	}
	if res.err != nil {
		v.logger.Warn("map unavailable at %s: %v", v.pos, res.err)
		v.state = StateUnavailable
		v.lastErr = res.err
		return
	}
	v.state = StateReady
	v.lastErr = nil
	v.grid, v.vector = res.grid, res.vector
}

// draw paints the whole screen from current state.
func (v *Viewer) draw() {
	v.mu.Lock()
	palette := v.palette
	v.mu.Unlock()

	v.backend.Clear()
	_, height := v.backend.Size()

	v.text(0, titleRow, titleText, Style{Foreground: ColorDefault, Background: ColorDefault, Bold: true})
	v.text(0, coordRow, fmt.Sprintf("%s  %s", v.pos, v.mode), DefaultStyle())

	switch v.state {
	case StateLoading:
		v.text(0, mapRow, loadingText, DefaultStyle())
	case StateUnavailable:
		v.text(0, mapRow, unavailableText, DefaultStyle())
	case StateReady:
		if v.mode == ModeVector && v.vector != nil {
			v.drawVector(palette)
		} else if v.mode == ModeRaster && v.grid != nil {
			v.drawRaster(palette)
		}
	}

	v.text(0, height-helpSpace, helpText, DefaultStyle().WithForeground(palette.Color(terrain.DarkSurface).Dim()))
	v.backend.Show()
}

func (v *Viewer) drawRaster(palette Palette) {
	w, h := v.grid.Size()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := v.grid.At(x, y)
			style := DefaultStyle().WithForeground(palette.Color(c.Color))
			v.backend.SetCell(x, mapRow+y, CellFromGlyph(c.Glyph, style))
		}
	}
}

func (v *Viewer) drawVector(palette Palette) {
	on := DefaultStyle().WithForeground(palette.Color(terrain.LightSurface))
	off := DefaultStyle().WithForeground(palette.Color(terrain.DarkSurface).Dim())

	g := v.vector.Grid
	w, h := g.Size()
	for y := 0; y < h; y++ {
		row := y
		if v.opts.NorthUp {
			row = h - 1 - y
		}
		for x := 0; x < w; x++ {
			cell := CellFromGlyph(v.opts.VectorOff, off)
			if g.Occupied(x, y) {
				cell = CellFromGlyph(v.opts.VectorOn, on)
			}
			v.backend.SetCell(x, mapRow+row, cell)
		}
	}
}

func (v *Viewer) text(x, y int, s string, style Style) {
	for i, r := range []rune(s) {
		v.backend.SetCell(x+i, y, Cell{Rune: r, Style: style})
	}
}
