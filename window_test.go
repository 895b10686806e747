// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gfx

import (
	"testing"

	"github.com/gogpu/gfx/backend"
	"github.com/gogpu/gfx/backend/headless"
)

// newTestWindow opens a window on a fresh headless backend and returns the
// simulated window for scripting.
func newTestWindow(t *testing.T) (*Window, *headless.Window, *headless.Backend) {
	t.Helper()
	ctx, hb := newTestContext(t)
	win, err := newWindow(ctx.Backend, NewWindowConfig())
	if err != nil {
		t.Fatalf("newWindow failed: %v", err)
	}
	return win, win.Native().(*headless.Window), hb
}

func TestWindowConfigChaining(t *testing.T) {
	cfg := NewWindowConfig().
		WithTitle("demo").
		WithSize(1280, 720).
		WithTraits(backend.DefaultTraits | backend.Fullscreen).
		WithContextVersion(4, 6)

	if cfg.Title != "demo" || cfg.Width != 1280 || cfg.Height != 720 {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.Traits&backend.Fullscreen == 0 {
		t.Error("Fullscreen trait not set")
	}
	if cfg.VersionMajor != 4 || cfg.VersionMinor != 6 {
		t.Errorf("context version = %d.%d", cfg.VersionMajor, cfg.VersionMinor)
	}

	// defaults stay untouched
	def := NewWindowConfig()
	if def.Title != DefaultWindowTitle || def.Width != DefaultWindowWidth || def.Height != DefaultWindowHeight {
		t.Errorf("defaults = %+v", def)
	}
}

func TestWindowUpdateFrame(t *testing.T) {
	win, hw, hb := newTestWindow(t)

	var order []string
	win.OnUpdate = func(*Window, float64) {
		order = append(order, "update")
		if hb.ClearCalls() != 1 {
			t.Error("logic ran before Clear")
		}
	}
	win.OnRender = func(*Window, float64) {
		order = append(order, "render")
		if hw.Swaps() != 0 {
			t.Error("render ran after SwapBuffers")
		}
	}

	if !win.Update() {
		t.Fatal("Update reported a dead window")
	}
	if len(order) != 2 || order[0] != "update" || order[1] != "render" {
		t.Fatalf("callback order = %v", order)
	}
	if hw.Swaps() != 1 {
		t.Fatalf("Swaps = %d, want 1", hw.Swaps())
	}
}

func TestWindowUpdateDelta(t *testing.T) {
	win, _, hb := newTestWindow(t)

	var dts []float64
	win.OnUpdate = func(_ *Window, dt float64) { dts = append(dts, dt) }

	hb.Advance(0.016)
	win.Update()
	hb.Advance(0.032)
	win.Update()

	if len(dts) != 2 {
		t.Fatalf("OnUpdate ran %d times", len(dts))
	}
	// PollEvents adds a millisecond per frame on top of Advance
	if dts[0] < 0.016 || dts[0] > 0.018 {
		t.Errorf("first dt = %v", dts[0])
	}
	if dts[1] < 0.032 || dts[1] > 0.035 {
		t.Errorf("second dt = %v", dts[1])
	}
}

func TestWindowViewportRefreshOnResize(t *testing.T) {
	win, hw, _ := newTestWindow(t)

	win.Update()
	if win.viewportDirty {
		t.Fatal("viewport still dirty after first Update")
	}

	hw.SetSize(1024, 768)
	win.Update() // delivers the ResizeEvent during PollEvents
	if !win.viewportDirty {
		t.Fatal("ResizeEvent did not mark the viewport dirty")
	}
	win.Update()
	if win.viewportDirty {
		t.Fatal("viewport not refreshed on the following frame")
	}
}

func TestWindowEscapeKills(t *testing.T) {
	win, hw, _ := newTestWindow(t)

	if !win.Update() {
		t.Fatal("window dead before input")
	}

	hw.Inject(backend.KeyEvent{Key: backend.KeyEscape, Pressed: true})
	if win.Update() {
		t.Fatal("Update survived a held escape key")
	}
	if !win.ShouldClose() {
		t.Error("escape press did not request close")
	}
	// dead windows never recover
	hw.Inject(backend.KeyEvent{Key: backend.KeyEscape, Pressed: false})
	hw.SetShouldClose(false)
	if win.Update() {
		t.Fatal("dead window came back to life")
	}
}

func TestWindowCloseAfterSwaps(t *testing.T) {
	win, hw, _ := newTestWindow(t)

	hw.CloseAfterSwaps(3)
	frames := 0
	for win.Update() {
		frames++
		if frames > 10 {
			t.Fatal("window never closed")
		}
	}
	if hw.Swaps() != 3 {
		t.Fatalf("Swaps = %d, want 3", hw.Swaps())
	}
}

func TestWindowCursorDelta(t *testing.T) {
	win, hw, _ := newTestWindow(t)

	// the first cursor event establishes the position without a spike
	hw.Inject(backend.CursorEvent{X: 400, Y: 300})
	win.Update()
	if dx, dy := win.CursorDelta(); dx != 0 || dy != 0 {
		t.Fatalf("first delta = %v, %v, want 0, 0", dx, dy)
	}

	// moving right and down: screen y is flipped
	hw.Inject(backend.CursorEvent{X: 410, Y: 320})
	win.Update()
	dx, dy := win.CursorDelta()
	if dx != 10 || dy != -20 {
		t.Fatalf("delta = %v, %v, want 10, -20", dx, dy)
	}

	// the delta is consumed on read
	if dx, dy := win.CursorDelta(); dx != 0 || dy != 0 {
		t.Fatalf("second read = %v, %v, want 0, 0", dx, dy)
	}
}

func TestWindowOnEventForwarding(t *testing.T) {
	win, hw, _ := newTestWindow(t)

	var got []backend.Event
	win.OnEvent = func(_ *Window, ev backend.Event) { got = append(got, ev) }

	hw.Inject(
		backend.KeyEvent{Key: backend.KeyW, Pressed: true},
		backend.MouseButtonEvent{Button: backend.MouseButtonLeft, Pressed: true},
	)
	win.Update()

	if len(got) != 2 {
		t.Fatalf("forwarded %d events, want 2", len(got))
	}
	if _, ok := got[0].(backend.KeyEvent); !ok {
		t.Errorf("first event = %T", got[0])
	}
	if _, ok := got[1].(backend.MouseButtonEvent); !ok {
		t.Errorf("second event = %T", got[1])
	}
}

func TestWindowDestroy(t *testing.T) {
	win, _, hb := newTestWindow(t)

	if hb.LiveWindows() != 1 {
		t.Fatalf("LiveWindows = %d", hb.LiveWindows())
	}
	win.Destroy()
	win.Destroy()
	if hb.LiveWindows() != 0 {
		t.Fatalf("LiveWindows after Destroy = %d", hb.LiveWindows())
	}
	if win.Running() {
		t.Error("destroyed window still running")
	}
}
