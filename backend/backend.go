// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package backend

import "errors"

// Common backend errors.
var (
	// ErrNoBackendAvailable is returned when no backends are registered
	// or available on the current system.
	ErrNoBackendAvailable = errors.New("backend: no backend available")

	// ErrNotInitialized is returned when operations are called before Init.
	ErrNotInitialized = errors.New("backend: not initialized")

	// ErrWindowingUnsupported is returned by headless GPU backends that
	// cannot open windows.
	ErrWindowingUnsupported = errors.New("backend: windowing not supported")
)

// BufferKind selects the binding target of a buffer object.
type BufferKind uint8

const (
	// VertexBuffer holds vertex attribute data.
	VertexBuffer BufferKind = iota
	// IndexBuffer holds element indices.
	IndexBuffer
)

// ShaderStage identifies a stage of the programmable pipeline.
type ShaderStage uint8

const (
	// VertexStage is the vertex shader stage.
	VertexStage ShaderStage = iota
	// FragmentStage is the fragment shader stage.
	FragmentStage
)

// String returns the stage name as it appears in build error messages.
func (s ShaderStage) String() string {
	switch s {
	case VertexStage:
		return "vertex"
	case FragmentStage:
		return "fragment"
	default:
		return "unknown"
	}
}

// BuildError reports a failed shader compile or program link.
// Log carries the backend's error log verbatim.
type BuildError struct {
	Stage ShaderStage
	Op    string // "compile" or "link"
	Log   string
}

func (e *BuildError) Error() string {
	return "backend: shader " + e.Op + " failed (" + e.Stage.String() + " stage): " + e.Log
}

// WindowOptions describes a window to open. Zero-valued dimensions fall
// back to the backend defaults (800x600).
type WindowOptions struct {
	Title  string
	Width  int
	Height int
	Traits Trait

	// Context version requested from the backend, e.g. 4.1 for the GL
	// backend. Zero means the backend default.
	VersionMajor int
	VersionMinor int
}

// Trait is a bitmask of window properties.
type Trait uint32

const (
	Bordered Trait = 1 << iota
	CenterCursor
	DisableCursor
	Focused
	Fullscreen
	HideCursor
	Maximized
	Resizable
	Topmost
	Transparent
	Visible
)

// DefaultTraits is the trait set applied when WindowOptions.Traits is zero.
const DefaultTraits = Bordered | Focused | Resizable | Visible

// Backend is the capability surface gfx consumes from a graphics system.
//
// Object creation returns an opaque non-zero id on success. Delete calls
// accept ids previously returned by the matching Create call; deleting id 0
// is a no-op. All methods other than Init must be called after a successful
// Init and from the thread driving the main loop.
type Backend interface {
	// Name returns the backend identifier (e.g. "gl", "wgpu", "headless").
	Name() string

	// Init initializes the backend. Calling Init on an initialized backend
	// is a no-op.
	Init() error

	// Terminate releases everything the backend holds. The backend must
	// not be used afterwards.
	Terminate()

	// Buffers.
	CreateBuffer() (uint32, error)
	DeleteBuffer(id uint32)
	BindBuffer(kind BufferKind, id uint32)
	// UploadBuffer binds id and uploads data with a static usage hint.
	UploadBuffer(id uint32, kind BufferKind, data []byte) error

	// Vertex arrays.
	CreateVertexArray() (uint32, error)
	DeleteVertexArray(id uint32)
	BindVertexArray(id uint32)
	// VertexLayout declares attribute index as size float32 components
	// with the given stride and offset in bytes, recorded into the
	// currently bound vertex array.
	VertexLayout(index, size uint32, stride, offset int)

	// Shader programs.
	CreateProgram() (uint32, error)
	DeleteProgram(id uint32)
	// CompileAttach compiles source for the given stage and attaches it to
	// program. A failure returns a *BuildError carrying the compile log.
	CompileAttach(program uint32, stage ShaderStage, source string) error
	// LinkProgram links (and validates, where the backend supports it) the
	// program. A failure returns a *BuildError carrying the link log.
	LinkProgram(id uint32) error
	UseProgram(id uint32)
	UniformLocation(program uint32, name string) int32
	SetUniformMatrix4(location int32, value *[16]float32)

	// Textures.
	CreateTexture() (uint32, error)
	DeleteTexture(id uint32)
	BindTexture(id uint32)
	// UploadTexture uploads tightly packed RGBA pixels.
	UploadTexture(id uint32, width, height int, rgba []byte) error

	// Frame operations, applied to the current context.
	Clear(r, g, b, a float32)
	Viewport(x, y, width, height int)
	DrawIndexed(count int)

	// Windowing.
	OpenWindow(opts WindowOptions) (Window, error)
	// PollEvents drains pending input events, invoking window event
	// handlers. Returns once the queue is empty.
	PollEvents()
	// Time reports seconds since backend initialization.
	Time() float64
}

// Window is one backend window with its drawing context.
type Window interface {
	// ID returns the opaque non-zero backend id of the window.
	ID() uint32

	MakeCurrent()
	SwapBuffers()

	ShouldClose() bool
	SetShouldClose(close bool)

	Position() (x, y int)
	SetPosition(x, y int)
	Size() (width, height int)
	SetSize(width, height int)
	FramebufferSize() (width, height int)

	SetTitle(title string)
	Opacity() float32
	SetOpacity(opacity float32)

	Focused() bool
	Fullscreen() bool
	SetFullscreen(fullscreen bool)
	Maximized() bool
	SetMaximized(maximized bool)
	Minimized() bool
	SetMinimized(minimized bool)
	Visible() bool
	SetVisible(visible bool)

	SetAspectRatio(width, height int)
	SetSizeLimits(minWidth, minHeight, maxWidth, maxHeight int)

	CursorPos() (x, y float64)
	KeyPressed(key Key) bool

	// SetEventHandler installs the handler invoked for this window's
	// events during PollEvents. A nil handler detaches the previous one.
	// Handlers must be detached (or the window destroyed) before the
	// owning object goes away.
	SetEventHandler(handler func(Event))

	// Destroy detaches the event handler and releases the window.
	Destroy()
}
