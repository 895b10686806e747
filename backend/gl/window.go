// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gl

import (
	"fmt"
	"sync"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gogpu/gfx/backend"
)

// Window wraps a GLFW window behind an opaque id.
type Window struct {
	backend *Backend
	id      uint32
	win     *glfw.Window

	mu      sync.Mutex
	handler func(backend.Event)

	// windowed geometry saved across SetFullscreen round trips.
	restoreX, restoreY int
	restoreW, restoreH int
}

var _ backend.Window = (*Window)(nil)

// OpenWindow creates a GLFW window, makes its context current, and loads
// the OpenGL functions if this is the first window.
func (b *Backend) OpenWindow(opts backend.WindowOptions) (backend.Window, error) {
	if !b.initialized {
		return nil, backend.ErrNotInitialized
	}

	if opts.Width <= 0 {
		opts.Width = 800
	}
	if opts.Height <= 0 {
		opts.Height = 600
	}
	traits := opts.Traits
	if traits == 0 {
		traits = backend.DefaultTraits
	}
	major, minor := opts.VersionMajor, opts.VersionMinor
	if major == 0 {
		major, minor = 4, 1
	}

	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.ContextVersionMajor, major)
	glfw.WindowHint(glfw.ContextVersionMinor, minor)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	applyTraitHints(traits)

	var monitor *glfw.Monitor
	if traits&backend.Fullscreen != 0 {
		monitor = glfw.GetPrimaryMonitor()
		if mode := monitor.GetVideoMode(); mode != nil {
			opts.Width, opts.Height = mode.Width, mode.Height
		}
	}

	win, err := glfw.CreateWindow(opts.Width, opts.Height, opts.Title, monitor, nil)
	if err != nil {
		return nil, fmt.Errorf("gl: create window: %w", err)
	}
	win.MakeContextCurrent()
	glfw.SwapInterval(1)

	if err := b.ensureGL(); err != nil {
		win.Destroy()
		return nil, err
	}

	switch {
	case traits&backend.DisableCursor != 0:
		win.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	case traits&backend.HideCursor != 0:
		win.SetInputMode(glfw.CursorMode, glfw.CursorHidden)
	}

	b.mu.Lock()
	b.nextWindowID++
	w := &Window{backend: b, id: b.nextWindowID, win: win}
	b.windows[w.id] = w
	b.mu.Unlock()

	w.installCallbacks()
	return w, nil
}

// applyTraitHints maps window traits onto GLFW creation hints. Hints not
// named by a trait keep their GLFW defaults.
func applyTraitHints(traits backend.Trait) {
	boolHint := func(t backend.Trait, hint glfw.Hint) {
		v := glfw.False
		if traits&t != 0 {
			v = glfw.True
		}
		glfw.WindowHint(hint, v)
	}
	boolHint(backend.Bordered, glfw.Decorated)
	boolHint(backend.CenterCursor, glfw.CenterCursor)
	boolHint(backend.Focused, glfw.Focused)
	boolHint(backend.Maximized, glfw.Maximized)
	boolHint(backend.Resizable, glfw.Resizable)
	boolHint(backend.Topmost, glfw.Floating)
	boolHint(backend.Transparent, glfw.TransparentFramebuffer)
	boolHint(backend.Visible, glfw.Visible)
}

// installCallbacks routes GLFW callbacks into the typed event handler.
func (w *Window) installCallbacks() {
	w.win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
		if action == glfw.Repeat {
			return
		}
		w.dispatch(backend.KeyEvent{
			Key:     backend.Key(key),
			Pressed: action == glfw.Press,
			Mods:    backend.Mod(mods),
		})
	})
	w.win.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		w.dispatch(backend.CursorEvent{X: x, Y: y})
	})
	w.win.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		w.dispatch(backend.MouseButtonEvent{
			Button:  backend.MouseButton(button),
			Pressed: action == glfw.Press,
		})
	})
	w.win.SetSizeCallback(func(_ *glfw.Window, width, height int) {
		w.dispatch(backend.ResizeEvent{Width: width, Height: height})
	})
	w.win.SetCloseCallback(func(_ *glfw.Window) {
		w.dispatch(backend.CloseEvent{})
	})
}

func (w *Window) dispatch(ev backend.Event) {
	w.mu.Lock()
	handler := w.handler
	w.mu.Unlock()
	if handler != nil {
		handler(ev)
	}
}

// ID returns the backend id.
func (w *Window) ID() uint32 { return w.id }

// MakeCurrent makes the window's GL context current.
func (w *Window) MakeCurrent() { w.win.MakeContextCurrent() }

// SwapBuffers presents the back buffer.
func (w *Window) SwapBuffers() { w.win.SwapBuffers() }

// ShouldClose reports the GLFW close flag.
func (w *Window) ShouldClose() bool { return w.win.ShouldClose() }

// SetShouldClose sets the GLFW close flag.
func (w *Window) SetShouldClose(close bool) { w.win.SetShouldClose(close) }

// Position reports the window position in screen coordinates.
func (w *Window) Position() (int, int) { return w.win.GetPos() }

// SetPosition moves the window.
func (w *Window) SetPosition(x, y int) { w.win.SetPos(x, y) }

// Size reports the window size in screen coordinates.
func (w *Window) Size() (int, int) { return w.win.GetSize() }

// SetSize resizes the window.
func (w *Window) SetSize(width, height int) { w.win.SetSize(width, height) }

// FramebufferSize reports the framebuffer size in pixels.
func (w *Window) FramebufferSize() (int, int) { return w.win.GetFramebufferSize() }

// SetTitle changes the window title.
func (w *Window) SetTitle(title string) { w.win.SetTitle(title) }

// Opacity reports the window opacity.
func (w *Window) Opacity() float32 { return w.win.GetOpacity() }

// SetOpacity sets the window opacity.
func (w *Window) SetOpacity(opacity float32) { w.win.SetOpacity(opacity) }

// Focused reports whether the window has input focus.
func (w *Window) Focused() bool {
	return w.win.GetAttrib(glfw.Focused) == glfw.True
}

// Fullscreen reports whether the window occupies a monitor.
func (w *Window) Fullscreen() bool { return w.win.GetMonitor() != nil }

// SetFullscreen moves the window onto the primary monitor, or restores the
// windowed geometry saved when fullscreen was entered.
func (w *Window) SetFullscreen(fullscreen bool) {
	if fullscreen == w.Fullscreen() {
		return
	}
	if fullscreen {
		w.mu.Lock()
		w.restoreX, w.restoreY = w.win.GetPos()
		w.restoreW, w.restoreH = w.win.GetSize()
		w.mu.Unlock()

		monitor := glfw.GetPrimaryMonitor()
		mode := monitor.GetVideoMode()
		w.win.SetMonitor(monitor, 0, 0, mode.Width, mode.Height, mode.RefreshRate)
		return
	}
	w.mu.Lock()
	x, y, width, height := w.restoreX, w.restoreY, w.restoreW, w.restoreH
	w.mu.Unlock()
	if width == 0 || height == 0 {
		width, height = 800, 600
	}
	w.win.SetMonitor(nil, x, y, width, height, glfw.DontCare)
}

// Maximized reports whether the window is maximized.
func (w *Window) Maximized() bool {
	return w.win.GetAttrib(glfw.Maximized) == glfw.True
}

// SetMaximized maximizes or restores the window.
func (w *Window) SetMaximized(maximized bool) {
	if maximized {
		w.win.Maximize()
	} else {
		w.win.Restore()
	}
}

// Minimized reports whether the window is iconified.
func (w *Window) Minimized() bool {
	return w.win.GetAttrib(glfw.Iconified) == glfw.True
}

// SetMinimized iconifies or restores the window.
func (w *Window) SetMinimized(minimized bool) {
	if minimized {
		w.win.Iconify()
	} else {
		w.win.Restore()
	}
}

// Visible reports whether the window is shown.
func (w *Window) Visible() bool {
	return w.win.GetAttrib(glfw.Visible) == glfw.True
}

// SetVisible shows or hides the window.
func (w *Window) SetVisible(visible bool) {
	if visible {
		w.win.Show()
	} else {
		w.win.Hide()
	}
}

// SetAspectRatio constrains the window aspect ratio.
func (w *Window) SetAspectRatio(width, height int) {
	w.win.SetAspectRatio(width, height)
}

// SetSizeLimits constrains the window size. Pass -1 to leave a bound open.
func (w *Window) SetSizeLimits(minWidth, minHeight, maxWidth, maxHeight int) {
	w.win.SetSizeLimits(minWidth, minHeight, maxWidth, maxHeight)
}

// CursorPos reports the cursor position in window coordinates.
func (w *Window) CursorPos() (float64, float64) { return w.win.GetCursorPos() }

// KeyPressed reports whether the key is currently held.
func (w *Window) KeyPressed(key backend.Key) bool {
	return w.win.GetKey(glfw.Key(key)) == glfw.Press
}

// SetEventHandler installs the event handler.
func (w *Window) SetEventHandler(handler func(backend.Event)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.handler = handler
}

// Destroy detaches the handler, removes the window from the backend, and
// destroys the GLFW window.
func (w *Window) Destroy() {
	w.mu.Lock()
	if w.win == nil {
		w.mu.Unlock()
		return
	}
	w.handler = nil
	win := w.win
	w.win = nil
	w.mu.Unlock()

	w.backend.mu.Lock()
	delete(w.backend.windows, w.id)
	w.backend.mu.Unlock()

	win.Destroy()
}
