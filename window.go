// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gfx

import (
	"log/slog"

	"github.com/gogpu/gfx/backend"
)

// Default main window parameters.
const (
	DefaultWindowTitle  = "OpenGL Application"
	DefaultWindowWidth  = 800
	DefaultWindowHeight = 600
)

// WindowConfig describes a window to create. The zero value is not useful;
// start from NewWindowConfig and chain the With methods.
type WindowConfig struct {
	Title         string
	Width, Height int
	Traits        backend.Trait
	VersionMajor  int
	VersionMinor  int
}

// NewWindowConfig returns the default configuration: an 800x600 bordered,
// focused, resizable, visible window.
func NewWindowConfig() WindowConfig {
	return WindowConfig{
		Title:  DefaultWindowTitle,
		Width:  DefaultWindowWidth,
		Height: DefaultWindowHeight,
		Traits: backend.DefaultTraits,
	}
}

// WithTitle sets the window title.
func (c WindowConfig) WithTitle(title string) WindowConfig {
	c.Title = title
	return c
}

// WithSize sets the window dimensions.
func (c WindowConfig) WithSize(width, height int) WindowConfig {
	c.Width, c.Height = width, height
	return c
}

// WithTraits replaces the trait set.
func (c WindowConfig) WithTraits(traits backend.Trait) WindowConfig {
	c.Traits = traits
	return c
}

// WithContextVersion requests a specific graphics context version.
func (c WindowConfig) WithContextVersion(major, minor int) WindowConfig {
	c.VersionMajor, c.VersionMinor = major, minor
	return c
}

// Window pairs a backend window with per-frame state and callbacks. It is
// updated once per main-loop iteration by Application.Run.
type Window struct {
	win backend.Window
	b   backend.Backend

	// OnUpdate runs game logic each frame, before OnRender. dt is the
	// frame delta in seconds.
	OnUpdate func(w *Window, dt float64)
	// OnRender draws the frame.
	OnRender func(w *Window, dt float64)
	// OnEvent observes every backend event after the window's own
	// bookkeeping has seen it.
	OnEvent func(w *Window, ev backend.Event)

	running       bool
	viewportDirty bool
	lastTime      float64

	cursorInit bool
	cursorX    float64
	cursorY    float64
	deltaX     float64
	deltaY     float64
}

// newWindow opens a backend window and wires the event handler.
func newWindow(b backend.Backend, cfg WindowConfig) (*Window, error) {
	bw, err := b.OpenWindow(backend.WindowOptions{
		Title:        cfg.Title,
		Width:        cfg.Width,
		Height:       cfg.Height,
		Traits:       cfg.Traits,
		VersionMajor: cfg.VersionMajor,
		VersionMinor: cfg.VersionMinor,
	})
	if err != nil {
		return nil, err
	}
	w := &Window{
		win:     bw,
		b:       b,
		running: true,
		// force an initial viewport pass on the first update
		viewportDirty: true,
		lastTime:      b.Time(),
	}
	bw.SetEventHandler(w.handleEvent)
	Logger().Info("window opened",
		slog.String("title", cfg.Title),
		slog.Int("width", cfg.Width),
		slog.Int("height", cfg.Height))
	return w, nil
}

// handleEvent updates window state from a backend event, then forwards it
// to OnEvent.
func (w *Window) handleEvent(ev backend.Event) {
	switch e := ev.(type) {
	case backend.KeyEvent:
		if e.Key == backend.KeyEscape && e.Pressed {
			w.win.SetShouldClose(true)
		}
	case backend.CursorEvent:
		if !w.cursorInit {
			w.cursorX, w.cursorY = e.X, e.Y
			w.cursorInit = true
		}
		w.deltaX = e.X - w.cursorX
		// screen y grows downward; flip so positive delta looks up
		w.deltaY = w.cursorY - e.Y
		w.cursorX, w.cursorY = e.X, e.Y
	case backend.ResizeEvent:
		w.viewportDirty = true
	case backend.CloseEvent:
		w.win.SetShouldClose(true)
	}
	if w.OnEvent != nil {
		w.OnEvent(w, ev)
	}
}

// Update runs one frame: make the context current, refresh the viewport if
// the window was resized, clear to black, run the logic and render
// callbacks, present, and poll events. Returns whether the window is still
// running; once false the window is dead and will not recover.
func (w *Window) Update() bool {
	w.win.MakeCurrent()

	if w.viewportDirty {
		fw, fh := w.win.FramebufferSize()
		w.b.Viewport(0, 0, fw, fh)
		w.viewportDirty = false
	}

	now := w.b.Time()
	dt := now - w.lastTime
	w.lastTime = now

	w.b.Clear(0, 0, 0, 1)

	if w.OnUpdate != nil {
		w.OnUpdate(w, dt)
	}
	if w.OnRender != nil {
		w.OnRender(w, dt)
	}

	w.win.SwapBuffers()
	w.b.PollEvents()

	w.running = w.running &&
		!w.win.KeyPressed(backend.KeyEscape) &&
		!w.win.ShouldClose()
	return w.running
}

// Running reports whether the window survived its last Update.
func (w *Window) Running() bool { return w.running }

// ID returns the backend window id.
func (w *Window) ID() uint32 { return w.win.ID() }

// Native returns the underlying backend window.
func (w *Window) Native() backend.Window { return w.win }

// CursorDelta returns the cursor movement since the previous call and
// resets it, so each delta is consumed exactly once.
func (w *Window) CursorDelta() (dx, dy float64) {
	dx, dy = w.deltaX, w.deltaY
	w.deltaX, w.deltaY = 0, 0
	return dx, dy
}

// CursorPos reports the cursor position in window coordinates.
func (w *Window) CursorPos() (x, y float64) { return w.win.CursorPos() }

// KeyPressed reports whether key is currently held.
func (w *Window) KeyPressed(key backend.Key) bool { return w.win.KeyPressed(key) }

// Close requests the window to close; it dies on its next Update.
func (w *Window) Close() { w.win.SetShouldClose(true) }

// ShouldClose reports whether a close has been requested.
func (w *Window) ShouldClose() bool { return w.win.ShouldClose() }

// SetTitle changes the window title.
func (w *Window) SetTitle(title string) { w.win.SetTitle(title) }

// Size reports the window size in screen coordinates.
func (w *Window) Size() (width, height int) { return w.win.Size() }

// SetSize resizes the window.
func (w *Window) SetSize(width, height int) { w.win.SetSize(width, height) }

// FramebufferSize reports the framebuffer size in pixels.
func (w *Window) FramebufferSize() (width, height int) { return w.win.FramebufferSize() }

// Position reports the window position.
func (w *Window) Position() (x, y int) { return w.win.Position() }

// SetPosition moves the window.
func (w *Window) SetPosition(x, y int) { w.win.SetPosition(x, y) }

// Opacity reports the window opacity.
func (w *Window) Opacity() float32 { return w.win.Opacity() }

// SetOpacity sets the window opacity.
func (w *Window) SetOpacity(opacity float32) { w.win.SetOpacity(opacity) }

// Focused reports whether the window has input focus.
func (w *Window) Focused() bool { return w.win.Focused() }

// Fullscreen reports whether the window occupies a monitor.
func (w *Window) Fullscreen() bool { return w.win.Fullscreen() }

// SetFullscreen switches between fullscreen and windowed mode.
func (w *Window) SetFullscreen(fullscreen bool) { w.win.SetFullscreen(fullscreen) }

// ToggleFullscreen flips the fullscreen state.
func (w *Window) ToggleFullscreen() { w.SetFullscreen(!w.Fullscreen()) }

// Maximized reports whether the window is maximized.
func (w *Window) Maximized() bool { return w.win.Maximized() }

// SetMaximized maximizes or restores the window.
func (w *Window) SetMaximized(maximized bool) { w.win.SetMaximized(maximized) }

// ToggleMaximized flips the maximized state.
func (w *Window) ToggleMaximized() { w.SetMaximized(!w.Maximized()) }

// Minimized reports whether the window is iconified.
func (w *Window) Minimized() bool { return w.win.Minimized() }

// SetMinimized iconifies or restores the window.
func (w *Window) SetMinimized(minimized bool) { w.win.SetMinimized(minimized) }

// Visible reports whether the window is shown.
func (w *Window) Visible() bool { return w.win.Visible() }

// SetVisible shows or hides the window.
func (w *Window) SetVisible(visible bool) { w.win.SetVisible(visible) }

// ToggleVisible flips the visible state.
func (w *Window) ToggleVisible() { w.SetVisible(!w.Visible()) }

// SetAspectRatio constrains the window aspect ratio.
func (w *Window) SetAspectRatio(width, height int) { w.win.SetAspectRatio(width, height) }

// SetSizeLimits constrains the window size.
func (w *Window) SetSizeLimits(minWidth, minHeight, maxWidth, maxHeight int) {
	w.win.SetSizeLimits(minWidth, minHeight, maxWidth, maxHeight)
}

// Destroy releases the backend window. Safe to call more than once.
func (w *Window) Destroy() {
	w.running = false
	w.win.Destroy()
}
