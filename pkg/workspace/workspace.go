// Package workspace owns the current cabinet model and sequences requests
// to replace it.
//
// Generate is synchronous: it builds the new model first and only on
// success releases the previous one. Submit adds the caller-side delay used
// by interactive front ends. Every Submit and Generate call takes a new
// request id and cancels whatever request was still pending; only the
// newest request may commit, older ones finish with ErrSuperseded.
package workspace

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/chazu/casework/pkg/cabinet"
	"github.com/chazu/casework/pkg/layout"
	"github.com/chazu/casework/pkg/model"
)

// DefaultDelay is the pause between a Submit call and the layout pass.
const DefaultDelay = 500 * time.Millisecond

// ErrSuperseded is returned to a request that lost to a newer one.
var ErrSuperseded = errors.New("workspace: request superseded by a newer request")

// Workspace holds at most one current model. It is safe for concurrent use.
type Workspace struct {
	gen    *layout.Generator
	logger *log.Logger
	delay  time.Duration

	mu               sync.Mutex
	current          *model.Model
	showMeasurements bool
	requestID        uint64
	pendingID        uint64
	cancelPending    context.CancelFunc
}

// Option configures a Workspace.
type Option func(*Workspace)

// WithGenerator sets the layout generator.
func WithGenerator(g *layout.Generator) Option {
	return func(w *Workspace) {
		if g != nil {
			w.gen = g
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(w *Workspace) {
		if l != nil {
			w.logger = l
		}
	}
}

// WithDelay sets the Submit delay. Negative values are treated as zero.
func WithDelay(d time.Duration) Option {
	return func(w *Workspace) {
		if d < 0 {
			d = 0
		}
		w.delay = d
	}
}

// New returns an empty workspace.
func New(opts ...Option) *Workspace {
	w := &Workspace{
		logger: log.Default(),
		delay:  DefaultDelay,
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.gen == nil {
		w.gen = layout.NewGenerator(layout.WithLogger(w.logger))
	}
	return w
}

// Generator returns the generator used for layout passes.
func (w *Workspace) Generator() *layout.Generator { return w.gen }

// Delay returns the configured Submit delay.
func (w *Workspace) Delay() time.Duration { return w.delay }

// Current returns the installed model, or nil.
func (w *Workspace) Current() *model.Model {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.current
}

// Generate runs a layout pass immediately and installs the result. On error
// the previous model stays installed.
func (w *Workspace) Generate(spec *cabinet.Spec) (*model.Model, error) {
	w.mu.Lock()
	id := w.nextRequestLocked()
	w.mu.Unlock()

	return w.build(id, spec)
}

// Submit waits for the configured delay, then generates and installs a model
// for spec. A later Submit or Generate call cancels this one, which then
// returns ErrSuperseded. If ctx ends first its error is returned. Either way
// the installed model is left untouched.
func (w *Workspace) Submit(ctx context.Context, spec *cabinet.Spec) (*model.Model, error) {
	pctx, cancel := context.WithCancel(ctx)

	w.mu.Lock()
	id := w.nextRequestLocked()
	w.pendingID = id
	w.cancelPending = cancel
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		if w.pendingID == id {
			w.pendingID = 0
			w.cancelPending = nil
		}
		w.mu.Unlock()
		cancel()
	}()

	timer := time.NewTimer(w.delay)
	defer timer.Stop()

	select {
	case <-pctx.Done():
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		w.logger.Debug("request superseded before layout", "request", id)
		return nil, ErrSuperseded
	case <-timer.C:
	}

	return w.build(id, spec)
}

// Pending returns the id of the request waiting out its delay, or zero.
func (w *Workspace) Pending() uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.pendingID
}

// Clear releases the current model and hides measurements. Requests still
// in flight are superseded so none of them can install a model afterwards.
// Calling it on an empty workspace is a no-op.
func (w *Workspace) Clear() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.nextRequestLocked()
	w.current.Clear()
	w.current = nil
	w.showMeasurements = false
}

// ToggleMeasurements flips measurement visibility and returns the new state.
func (w *Workspace) ToggleMeasurements() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.showMeasurements = !w.showMeasurements
	return w.showMeasurements
}

// MeasurementsVisible reports whether measurements should be drawn.
func (w *Workspace) MeasurementsVisible() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.showMeasurements
}

// build runs the layout pass outside the lock and commits only if id is
// still the newest request.
func (w *Workspace) build(id uint64, spec *cabinet.Spec) (*model.Model, error) {
	m, err := w.gen.Generate(spec)
	if err != nil {
		w.logger.Debug("layout failed", "request", id, "err", err)
		return nil, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if id != w.requestID {
		m.Clear()
		w.logger.Debug("request superseded after layout", "request", id, "latest", w.requestID)
		return nil, ErrSuperseded
	}
	prev := w.current
	w.current = m
	prev.Clear()
	w.logger.Info("cabinet generated", "request", id, "id", m.ID(), "descriptors", m.Len())
	return m, nil
}

func (w *Workspace) nextRequestLocked() uint64 {
	w.cancelPendingLocked()
	w.requestID++
	return w.requestID
}

func (w *Workspace) cancelPendingLocked() {
	if w.cancelPending != nil {
		w.cancelPending()
		w.cancelPending = nil
		w.pendingID = 0
	}
}
