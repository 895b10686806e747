// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package headless

import (
	"sync"

	"github.com/gogpu/gfx/backend"
)

// Window is a simulated window. Tests script it by injecting events with
// Inject and by arming CloseAfterSwaps.
type Window struct {
	backend *Backend
	id      uint32

	mu          sync.Mutex
	title       string
	x, y        int
	width       int
	height      int
	opacity     float32
	shouldClose bool
	destroyed   bool

	fullscreen bool
	maximized  bool
	minimized  bool
	visible    bool

	keys map[backend.Key]bool

	handler func(backend.Event)
	pending []backend.Event

	swaps int
	// closeAfterSwaps, when > 0, flips shouldClose once SwapBuffers has
	// been called that many times.
	closeAfterSwaps int
}

var _ backend.Window = (*Window)(nil)

// ID returns the backend id.
func (w *Window) ID() uint32 { return w.id }

// MakeCurrent is a no-op.
func (w *Window) MakeCurrent() {}

// SwapBuffers counts the presented frame and applies CloseAfterSwaps.
func (w *Window) SwapBuffers() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.swaps++
	if w.closeAfterSwaps > 0 && w.swaps >= w.closeAfterSwaps {
		w.shouldClose = true
	}
}

// ShouldClose reports the close flag.
func (w *Window) ShouldClose() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.shouldClose
}

// SetShouldClose sets the close flag.
func (w *Window) SetShouldClose(close bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.shouldClose = close
}

// Position reports the window position.
func (w *Window) Position() (int, int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.x, w.y
}

// SetPosition moves the window.
func (w *Window) SetPosition(x, y int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.x, w.y = x, y
}

// Size reports the window size.
func (w *Window) Size() (int, int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.width, w.height
}

// SetSize resizes the window and queues a ResizeEvent.
func (w *Window) SetSize(width, height int) {
	w.mu.Lock()
	w.width, w.height = width, height
	w.pending = append(w.pending, backend.ResizeEvent{Width: width, Height: height})
	w.mu.Unlock()
}

// FramebufferSize equals the window size; the headless display has a 1:1
// pixel ratio.
func (w *Window) FramebufferSize() (int, int) { return w.Size() }

// SetTitle records the title.
func (w *Window) SetTitle(title string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.title = title
}

// Title reports the recorded title.
func (w *Window) Title() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.title
}

// Opacity reports the recorded opacity.
func (w *Window) Opacity() float32 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.opacity
}

// SetOpacity records the opacity.
func (w *Window) SetOpacity(opacity float32) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.opacity = opacity
}

// Focused always reports true for a headless window.
func (w *Window) Focused() bool { return true }

// Fullscreen reports the fullscreen flag.
func (w *Window) Fullscreen() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.fullscreen
}

// SetFullscreen records the fullscreen flag.
func (w *Window) SetFullscreen(fullscreen bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.fullscreen = fullscreen
}

// Maximized reports the maximized flag.
func (w *Window) Maximized() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.maximized
}

// SetMaximized records the maximized flag.
func (w *Window) SetMaximized(maximized bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.maximized = maximized
}

// Minimized reports the minimized flag.
func (w *Window) Minimized() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.minimized
}

// SetMinimized records the minimized flag.
func (w *Window) SetMinimized(minimized bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.minimized = minimized
}

// Visible reports the visible flag.
func (w *Window) Visible() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.visible
}

// SetVisible records the visible flag.
func (w *Window) SetVisible(visible bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.visible = visible
}

// SetAspectRatio is a no-op.
func (w *Window) SetAspectRatio(width, height int) {}

// SetSizeLimits is a no-op.
func (w *Window) SetSizeLimits(minWidth, minHeight, maxWidth, maxHeight int) {}

// CursorPos reports the last injected cursor position.
func (w *Window) CursorPos() (float64, float64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for i := len(w.pending) - 1; i >= 0; i-- {
		if ev, ok := w.pending[i].(backend.CursorEvent); ok {
			return ev.X, ev.Y
		}
	}
	return 0, 0
}

// KeyPressed reports the last injected key state.
func (w *Window) KeyPressed(key backend.Key) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.keys[key]
}

// SetEventHandler installs the event handler.
func (w *Window) SetEventHandler(handler func(backend.Event)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.handler = handler
}

// Destroy detaches the handler and removes the window from the backend.
func (w *Window) Destroy() {
	w.mu.Lock()
	if w.destroyed {
		w.mu.Unlock()
		return
	}
	w.destroyed = true
	w.handler = nil
	b := w.backend
	id := w.id
	w.mu.Unlock()

	b.mu.Lock()
	delete(b.live[classWindow], id)
	b.deleted[classWindow][id]++
	for i, win := range b.windows {
		if win == w {
			b.windows = append(b.windows[:i], b.windows[i+1:]...)
			break
		}
	}
	b.mu.Unlock()
}

// Inject queues events for delivery on the next PollEvents. Key events
// also update the window-level key state queried by KeyPressed.
func (w *Window) Inject(events ...backend.Event) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, ev := range events {
		if ke, ok := ev.(backend.KeyEvent); ok {
			if w.keys == nil {
				w.keys = make(map[backend.Key]bool)
			}
			w.keys[ke.Key] = ke.Pressed
		}
	}
	w.pending = append(w.pending, events...)
}

// CloseAfterSwaps arms the window to request close once n frames have been
// presented.
func (w *Window) CloseAfterSwaps(n int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closeAfterSwaps = n
}

// Swaps reports the number of presented frames.
func (w *Window) Swaps() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.swaps
}

// deliver flushes pending events through the handler.
func (w *Window) deliver() {
	w.mu.Lock()
	handler := w.handler
	events := w.pending
	w.pending = nil
	w.mu.Unlock()

	if handler == nil {
		return
	}
	for _, ev := range events {
		handler(ev)
	}
}
