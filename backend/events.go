// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package backend

// Event is a window input or lifecycle event delivered during PollEvents.
type Event interface{ isEvent() }

// KeyEvent reports a key press or release.
type KeyEvent struct {
	Key     Key
	Pressed bool
	Mods    Mod
}

func (KeyEvent) isEvent() {}

// CursorEvent reports the cursor position in window coordinates.
type CursorEvent struct {
	X, Y float64
}

func (CursorEvent) isEvent() {}

// MouseButtonEvent reports a mouse button press or release.
type MouseButtonEvent struct {
	Button  MouseButton
	Pressed bool
}

func (MouseButtonEvent) isEvent() {}

// ResizeEvent reports a new window size.
type ResizeEvent struct {
	Width, Height int
}

func (ResizeEvent) isEvent() {}

// CloseEvent reports that the user requested the window to close.
type CloseEvent struct{}

func (CloseEvent) isEvent() {}

// Key identifies a keyboard key. Values follow the USB-HID-derived layout
// GLFW uses, so the gl backend converts without a table.
type Key int

const (
	KeyUnknown Key = -1

	KeySpace Key = 32
	KeyA     Key = 65
	KeyB     Key = 66
	KeyC     Key = 67
	KeyD     Key = 68
	KeyE     Key = 69
	KeyF     Key = 70
	KeyG     Key = 71
	KeyH     Key = 72
	KeyI     Key = 73
	KeyJ     Key = 74
	KeyK     Key = 75
	KeyL     Key = 76
	KeyM     Key = 77
	KeyN     Key = 78
	KeyO     Key = 79
	KeyP     Key = 80
	KeyQ     Key = 81
	KeyR     Key = 82
	KeyS     Key = 83
	KeyT     Key = 84
	KeyU     Key = 85
	KeyV     Key = 86
	KeyW     Key = 87
	KeyX     Key = 88
	KeyY     Key = 89
	KeyZ     Key = 90

	KeyEscape Key = 256
	KeyEnter  Key = 257
	KeyTab    Key = 258
	KeyRight  Key = 262
	KeyLeft   Key = 263
	KeyDown   Key = 264
	KeyUp     Key = 265

	KeyLeftShift   Key = 340
	KeyLeftControl Key = 341

	// KeyLast bounds key-state arrays.
	KeyLast Key = 348
)

// Mod is a bitmask of modifier keys held during a key event.
type Mod int

const (
	ModShift Mod = 1 << iota
	ModControl
	ModAlt
	ModSuper
)

// MouseButton identifies a mouse button.
type MouseButton int

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle
)
