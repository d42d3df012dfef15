// Package wall owns the live hold grid and keeps the LEDs, the boulder store
// and the event stream in step with it.
package wall

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/dasdy/holdlight/compositor"
	"github.com/dasdy/holdlight/db"
	"github.com/dasdy/holdlight/events"
	"github.com/dasdy/holdlight/grid"
	"github.com/dasdy/holdlight/led"
	"github.com/dasdy/holdlight/logging"
	"github.com/dasdy/holdlight/metrics"
	"github.com/dasdy/holdlight/model"
	"github.com/dasdy/holdlight/settings"
)

type Options struct {
	Grid       *grid.Grid
	Compositor compositor.Compositor
	Strip      *led.Strip
	Storage    db.Storage
	// Settings and Bus are optional.
	Settings *settings.Settings
	Bus      *events.Bus
}

// State is everything the index page needs to draw the wall.
type State struct {
	Grid       [][]int           `json:"grid" doc:"Hold state index per cell"`
	States     []model.HoldState `json:"states" doc:"State names and colours in cycling order"`
	Rows       int               `json:"rows" example:"12"`
	Cols       int               `json:"cols" example:"7"`
	Brightness float64           `json:"brightness" example:"1"`
	Boulder    string            `json:"boulder,omitempty" example:"V3" doc:"Last loaded or saved boulder"`
	Difficulty string            `json:"difficulty,omitempty" example:"6a"`
	Compositor string            `json:"compositor" example:"blend"`
}

type Wall struct {
	grid       *grid.Grid
	compositor compositor.Compositor
	strip      *led.Strip
	storage    db.Storage
	settings   *settings.Settings
	bus        *events.Bus

	frame      compositor.Frame
	boulder    string
	difficulty string
	// known is the last boulder list read from storage.
	known []model.BoulderSummary
	ctx   context.Context

	// lock covers every grid mutation together with recomposition and persistence.
	lock sync.Mutex
}

func New(opts Options) (*Wall, error) {
	if opts.Grid == nil || opts.Compositor == nil || opts.Strip == nil || opts.Storage == nil {
		return nil, errors.New("wall needs a grid, a compositor, a strip and a storage")
	}

	layout := opts.Strip.Layout()

	w := &Wall{
		grid:       opts.Grid,
		compositor: opts.Compositor,
		strip:      opts.Strip,
		storage:    opts.Storage,
		settings:   opts.Settings,
		bus:        opts.Bus,
		frame:      compositor.NewFrame(layout.Rows, layout.Cols),
		ctx:        logging.PackageCtx("wall"),
	}

	if w.settings != nil {
		b := w.settings.Brightness()
		metrics.Brightness.Set(b)

		if err := w.strip.SetBrightness(b); err != nil {
			w.driverFailed(w.ctx, err)
		}
	}

	return w, nil
}

func now() string {
	return time.Now().Format(time.RFC3339)
}

func (w *Wall) State() State {
	w.lock.Lock()
	defer w.lock.Unlock()

	return State{
		Grid:       w.grid.Snapshot(),
		States:     w.grid.States(),
		Rows:       w.grid.Rows(),
		Cols:       w.grid.Cols(),
		Brightness: w.strip.Brightness(),
		Boulder:    w.boulder,
		Difficulty: w.difficulty,
		Compositor: w.compositor.Name(),
	}
}

// Toggle advances one hold and returns its new state index and name.
func (w *Wall) Toggle(ctx context.Context, row, col int) (int, string, error) {
	w.lock.Lock()
	defer w.lock.Unlock()

	idx, err := w.grid.Toggle(row, col)
	metrics.ObserveOperation("toggle", err)

	if err != nil {
		return 0, "", err
	}

	name := w.grid.States().Name(idx)
	metrics.HoldToggles.WithLabelValues(name).Inc()
	slog.DebugContext(ctx, "Toggled hold", "row", row, "col", col, "state", name)

	_ = w.pushLocked(ctx)
	w.publishGridLocked("toggle")

	return idx, name, nil
}

// Clear turns every hold off and returns the resulting grid.
func (w *Wall) Clear(ctx context.Context) [][]int {
	w.lock.Lock()
	defer w.lock.Unlock()

	w.grid.Clear()
	w.boulder, w.difficulty = "", ""
	metrics.ObserveOperation("clear", nil)

	_ = w.pushLocked(ctx)
	w.publishGridLocked("clear")

	return w.grid.Snapshot()
}

// Save stores a copy of the live grid under name and returns the updated list.
func (w *Wall) Save(ctx context.Context, name, difficulty string) ([]model.BoulderSummary, error) {
	w.lock.Lock()
	defer w.lock.Unlock()

	err := w.storage.Save(ctx, name, model.Boulder{Difficulty: difficulty, Holds: w.grid.Snapshot()})
	metrics.ObserveOperation("save", err)

	if err != nil {
		return nil, fmt.Errorf("could not save boulder %q: %w", name, err)
	}

	slog.InfoContext(ctx, "Saved boulder", "name", name, "difficulty", difficulty)

	w.boulder, w.difficulty = name, difficulty

	return w.boulderListChangedLocked(ctx, func(list []model.BoulderSummary) []model.BoulderSummary {
		i, found := slices.BinarySearchFunc(list, name, func(b model.BoulderSummary, n string) int {
			return strings.Compare(b.Name, n)
		})
		if found {
			list[i].Difficulty = difficulty

			return list
		}

		return slices.Insert(list, i, model.BoulderSummary{Name: name, Difficulty: difficulty})
	}), nil
}

// Load replaces the live grid with a stored boulder. On any error the grid is
// left as it was.
func (w *Wall) Load(ctx context.Context, name string) ([][]int, string, error) {
	w.lock.Lock()
	defer w.lock.Unlock()

	boulder, err := w.storage.Load(ctx, name)
	if err == nil {
		err = w.grid.Replace(boulder.Holds)
	}

	metrics.ObserveOperation("load", err)

	if err != nil {
		return nil, "", fmt.Errorf("could not load boulder %q: %w", name, err)
	}

	slog.InfoContext(ctx, "Loaded boulder", "name", name, "difficulty", boulder.Difficulty)

	w.boulder, w.difficulty = name, boulder.Difficulty

	_ = w.pushLocked(ctx)
	w.publishGridLocked("load")

	return w.grid.Snapshot(), boulder.Difficulty, nil
}

func (w *Wall) Delete(ctx context.Context, name string) ([]model.BoulderSummary, error) {
	w.lock.Lock()
	defer w.lock.Unlock()

	err := w.storage.Delete(ctx, name)
	metrics.ObserveOperation("delete", err)

	if err != nil {
		return nil, fmt.Errorf("could not delete boulder %q: %w", name, err)
	}

	slog.InfoContext(ctx, "Deleted boulder", "name", name)

	if w.boulder == name {
		w.boulder, w.difficulty = "", ""
	}

	return w.boulderListChangedLocked(ctx, func(list []model.BoulderSummary) []model.BoulderSummary {
		return slices.DeleteFunc(list, func(b model.BoulderSummary) bool { return b.Name == name })
	}), nil
}

func (w *Wall) Boulders(ctx context.Context) ([]model.BoulderSummary, error) {
	w.lock.Lock()
	defer w.lock.Unlock()

	boulders, err := w.storage.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not list boulders: %w", err)
	}

	w.known = slices.Clone(boulders)
	metrics.StoredBoulders.Set(float64(len(boulders)))

	return boulders, nil
}

// SetBrightness persists b and re-shows the current frame with it.
func (w *Wall) SetBrightness(ctx context.Context, b float64) error {
	if err := settings.ValidateBrightness(b); err != nil {
		return err
	}

	w.lock.Lock()
	defer w.lock.Unlock()

	if w.settings != nil {
		if err := w.settings.SetBrightness(b); err != nil {
			return err
		}
	}

	w.applyBrightnessLocked(ctx, b)

	return nil
}

// WatchSettings applies brightness edits made to the settings file on disk.
func (w *Wall) WatchSettings(ctx context.Context) error {
	if w.settings == nil {
		return nil
	}

	return w.settings.Watch(ctx, func(b float64) {
		w.lock.Lock()
		defer w.lock.Unlock()

		w.applyBrightnessLocked(w.ctx, b)
	})
}

func (w *Wall) applyBrightnessLocked(ctx context.Context, b float64) {
	metrics.Brightness.Set(b)

	if err := w.strip.SetBrightness(b); err != nil {
		w.driverFailed(ctx, err)
	}

	slog.InfoContext(ctx, "Brightness changed", "brightness", b)
	events.Publish(w.bus, events.BrightnessChangedEvent{Brightness: b, Timestamp: now()})
}

// Refresh recomposes the LEDs from the live grid, replacing whatever the strip
// showed before, e.g. the startup rainbow.
func (w *Wall) Refresh(ctx context.Context) error {
	w.lock.Lock()
	defer w.lock.Unlock()

	return w.pushLocked(ctx)
}

// Rainbow shows the diagonal test pattern without touching the grid.
func (w *Wall) Rainbow(ctx context.Context) error {
	w.lock.Lock()
	defer w.lock.Unlock()

	layout := w.strip.Layout()
	w.frame = compositor.Rainbow(layout.Rows, layout.Cols)

	start := time.Now()
	err := w.strip.Render(w.frame)
	metrics.ObservePush(start, err)

	if err != nil {
		w.driverFailed(ctx, err)

		return err
	}

	slog.InfoContext(ctx, "Showing rainbow", "rows", layout.Rows, "cols", layout.Cols)

	return nil
}

// Frame returns a copy of the colours last sent to the strip, before brightness.
func (w *Wall) Frame() compositor.Frame {
	w.lock.Lock()
	defer w.lock.Unlock()

	return w.frame.Clone()
}

func (w *Wall) Close() error {
	w.lock.Lock()
	defer w.lock.Unlock()

	return errors.Join(w.strip.Close(), w.storage.Close())
}

// pushLocked recomposes and renders. A driver failure does not undo the
// mutation that triggered the push. It is logged, counted and published as a
// DriverErrorEvent before being returned, so mutating callers drop it.
func (w *Wall) pushLocked(ctx context.Context) error {
	start := time.Now()

	w.frame = w.compositor.Compose(w.grid)
	err := w.strip.Render(w.frame)

	metrics.ObservePush(start, err)
	metrics.MarkedHolds.Set(float64(len(w.grid.Marked())))

	if err != nil {
		w.driverFailed(ctx, err)
	}

	return err
}

func (w *Wall) driverFailed(ctx context.Context, err error) {
	slog.ErrorContext(ctx, "Could not update LEDs", "error", err)
	events.Publish(w.bus, events.DriverErrorEvent{Error: err.Error(), Timestamp: now()})
}

func (w *Wall) publishGridLocked(cause string) {
	events.Publish(w.bus, events.GridChangedEvent{
		Grid:       w.grid.Snapshot(),
		Cause:      cause,
		Boulder:    w.boulder,
		Difficulty: w.difficulty,
		Timestamp:  now(),
	})
}

// boulderListChangedLocked runs after a store write went through, so it never
// fails the write. If List fails, patch is applied to the last known list and
// that is returned instead.
func (w *Wall) boulderListChangedLocked(ctx context.Context, patch func([]model.BoulderSummary) []model.BoulderSummary) []model.BoulderSummary {
	boulders, err := w.storage.List(ctx)
	if err != nil {
		slog.WarnContext(ctx, "Could not list boulders, using last known list", "error", err)

		boulders = patch(slices.Clone(w.known))
	}

	w.known = boulders
	metrics.StoredBoulders.Set(float64(len(boulders)))
	events.Publish(w.bus, events.BouldersChangedEvent{Boulders: slices.Clone(boulders), Timestamp: now()})

	return slices.Clone(boulders)
}
