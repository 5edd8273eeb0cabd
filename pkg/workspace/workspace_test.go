package workspace

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/chazu/casework/pkg/cabinet"
	"github.com/chazu/casework/pkg/layout"
)

func quiet() Option {
	return WithLogger(log.New(&bytes.Buffer{}))
}

func spec(doors int) *cabinet.Spec {
	s := cabinet.Default()
	s.Doors = doors
	return &s
}

// waitPending blocks until a Submit is waiting out its delay.
func waitPending(t *testing.T, w *Workspace) uint64 {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if id := w.Pending(); id != 0 {
			return id
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("no request became pending")
	return 0
}

// waitFor blocks until request id is the pending one.
func waitFor(t *testing.T, w *Workspace, id uint64) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if w.Pending() == id {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("request %d never became pending", id)
}

func TestGenerateInstallsModel(t *testing.T) {
	w := New(quiet())
	if w.Current() != nil {
		t.Fatal("new workspace must be empty")
	}

	m, err := w.Generate(spec(2))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if w.Current() != m {
		t.Error("Current() should return the generated model")
	}
	if m.Len() != 13 {
		t.Errorf("expected 13 descriptors, got %d", m.Len())
	}
}

func TestGenerateReplacesAndReleasesPrevious(t *testing.T) {
	w := New(quiet())
	first, err := w.Generate(spec(2))
	if err != nil {
		t.Fatal(err)
	}
	second, err := w.Generate(spec(1))
	if err != nil {
		t.Fatal(err)
	}
	if !first.Released() || first.Len() != 0 {
		t.Error("previous model should be released")
	}
	if second.Released() {
		t.Error("new model must not be released")
	}
	if first.ID() == second.ID() {
		t.Error("models should have distinct ids")
	}
}

func TestGenerateErrorKeepsPrevious(t *testing.T) {
	w := New(quiet())
	prev, err := w.Generate(spec(2))
	if err != nil {
		t.Fatal(err)
	}

	bad := spec(2)
	bad.Width = -1
	if _, err := w.Generate(bad); !errors.Is(err, cabinet.ErrInvalidSpec) {
		t.Fatalf("expected InvalidSpecError, got %v", err)
	}
	tooMany := spec(9)
	if _, err := w.Generate(tooMany); !errors.Is(err, layout.ErrInvalidGeometry) {
		t.Fatalf("expected InvalidGeometryError, got %v", err)
	}

	if w.Current() != prev || prev.Released() {
		t.Error("failed generation must leave the previous model installed")
	}
}

func TestClear(t *testing.T) {
	w := New(quiet())
	m, err := w.Generate(spec(2))
	if err != nil {
		t.Fatal(err)
	}
	w.ToggleMeasurements()

	w.Clear()
	if w.Current() != nil {
		t.Error("Current() should be nil after Clear")
	}
	if !m.Released() || len(m.Measurements()) != 0 {
		t.Error("cleared model should hold no descriptors or measurements")
	}
	if w.MeasurementsVisible() {
		t.Error("Clear should hide measurements")
	}

	// Idempotent.
	w.Clear()
	New(quiet()).Clear()
}

func TestToggleMeasurements(t *testing.T) {
	w := New(quiet())
	if w.MeasurementsVisible() {
		t.Fatal("measurements start hidden")
	}
	if !w.ToggleMeasurements() || !w.MeasurementsVisible() {
		t.Error("first toggle should show measurements")
	}
	if w.ToggleMeasurements() {
		t.Error("second toggle should hide measurements")
	}
}

func TestSubmitAfterDelay(t *testing.T) {
	w := New(quiet(), WithDelay(10*time.Millisecond))
	start := time.Now()
	m, err := w.Submit(context.Background(), spec(2))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if time.Since(start) < 10*time.Millisecond {
		t.Error("Submit returned before the delay")
	}
	if w.Current() != m {
		t.Error("submitted model should be installed")
	}
	if w.Pending() != 0 {
		t.Error("no request should be pending after Submit returns")
	}
}

func TestSubmitSupersededByNewerSubmit(t *testing.T) {
	w := New(quiet(), WithDelay(time.Hour))

	errc := make(chan error, 1)
	go func() {
		_, err := w.Submit(context.Background(), spec(2))
		errc <- err
	}()
	waitPending(t, w)

	// Generate takes a request id too.
	latest, err := w.Generate(spec(1))
	if err != nil {
		t.Fatal(err)
	}

	select {
	case err := <-errc:
		if !errors.Is(err, ErrSuperseded) {
			t.Fatalf("expected ErrSuperseded, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("superseded Submit did not return")
	}
	if w.Current() != latest {
		t.Error("only the newest request may commit")
	}
}

func TestSubmitEachNewerRequestSupersedes(t *testing.T) {
	w := New(quiet(), WithDelay(time.Hour))

	var errcs []chan error
	for i := 1; i <= 4; i++ {
		errc := make(chan error, 1)
		errcs = append(errcs, errc)
		go func() {
			_, err := w.Submit(context.Background(), spec(2))
			errc <- err
		}()
		waitFor(t, w, uint64(i))
		if i > 1 {
			if err := <-errcs[i-2]; !errors.Is(err, ErrSuperseded) {
				t.Fatalf("request %d: expected ErrSuperseded, got %v", i-1, err)
			}
		}
	}

	latest, err := w.Generate(spec(1))
	if err != nil {
		t.Fatal(err)
	}
	if err := <-errcs[3]; !errors.Is(err, ErrSuperseded) {
		t.Fatalf("request 4: expected ErrSuperseded, got %v", err)
	}
	if w.Current() != latest {
		t.Error("only the newest request may commit")
	}
}

func TestSubmitContextCanceled(t *testing.T) {
	w := New(quiet(), WithDelay(time.Hour))
	prev, err := w.Generate(spec(2))
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() {
		_, err := w.Submit(ctx, spec(1))
		errc <- err
	}()
	waitPending(t, w)
	cancel()

	if err := <-errc; !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if w.Current() != prev {
		t.Error("canceled request must not replace the model")
	}
}

func TestClearSupersedesPending(t *testing.T) {
	w := New(quiet(), WithDelay(time.Hour))
	errc := make(chan error, 1)
	go func() {
		_, err := w.Submit(context.Background(), spec(2))
		errc <- err
	}()
	waitPending(t, w)
	w.Clear()

	if err := <-errc; !errors.Is(err, ErrSuperseded) {
		t.Fatalf("expected ErrSuperseded, got %v", err)
	}
	if w.Current() != nil {
		t.Error("nothing should be installed after Clear")
	}
}

func TestWithDelayNegative(t *testing.T) {
	if d := New(quiet(), WithDelay(-time.Second)).Delay(); d != 0 {
		t.Errorf("Delay() = %v, want 0", d)
	}
	if d := New(quiet()).Delay(); d != DefaultDelay {
		t.Errorf("Delay() = %v, want %v", d, DefaultDelay)
	}
}
