// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package headless provides a pure in-memory backend. It allocates ids,
// tracks live objects and deletions, and simulates windows with injectable
// events, which makes it the standard fixture for gfx tests and for running
// the application loop in CI without a display.
package headless

import (
	"fmt"
	"strings"
	"sync"

	"github.com/gogpu/gfx/backend"
)

// Name is the identifier this backend registers under.
const Name = "headless"

func init() {
	backend.Register(Name, 10, func() backend.Backend { return New() }, nil)
}

// objectClass partitions the id space so a buffer id can never collide
// with a vertex array id during accounting.
type objectClass uint8

const (
	classBuffer objectClass = iota
	classVertexArray
	classProgram
	classTexture
	classWindow
	classCount
)

// Backend is an in-memory backend.Backend implementation.
type Backend struct {
	mu sync.Mutex

	initialized bool
	nextID      [classCount]uint32
	live        [classCount]map[uint32]bool
	deleted     [classCount]map[uint32]int

	boundBuffer [2]uint32
	boundVAO    uint32
	boundTex    uint32
	program     uint32

	bufferData map[uint32][]byte
	attached   map[uint32][]backend.ShaderStage
	linked     map[uint32]bool

	// FailCompile and FailLink, when non-empty, force CompileAttach or
	// LinkProgram to fail with a BuildError carrying the given log text.
	FailCompile string
	FailLink    string

	windows []*Window
	clock   float64

	drawCalls  int
	clearCalls int
}

var _ backend.Backend = (*Backend)(nil)

// New creates an uninitialized headless backend.
func New() *Backend {
	b := &Backend{
		bufferData: make(map[uint32][]byte),
		attached:   make(map[uint32][]backend.ShaderStage),
		linked:     make(map[uint32]bool),
	}
	for c := range b.live {
		b.live[c] = make(map[uint32]bool)
		b.deleted[c] = make(map[uint32]int)
	}
	return b
}

// Name returns "headless".
func (b *Backend) Name() string { return Name }

// Init marks the backend ready.
func (b *Backend) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.initialized = true
	return nil
}

// Terminate destroys all live windows and resets the backend.
func (b *Backend) Terminate() {
	b.mu.Lock()
	wins := append([]*Window(nil), b.windows...)
	b.initialized = false
	b.mu.Unlock()

	for _, w := range wins {
		w.Destroy()
	}
}

func (b *Backend) create(c objectClass) (uint32, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.initialized {
		return 0, backend.ErrNotInitialized
	}
	b.nextID[c]++
	id := b.nextID[c]
	b.live[c][id] = true
	return id, nil
}

func (b *Backend) delete(c objectClass, id uint32) {
	if id == 0 {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.live[c], id)
	b.deleted[c][id]++
}

// CreateBuffer allocates a buffer id.
func (b *Backend) CreateBuffer() (uint32, error) { return b.create(classBuffer) }

// DeleteBuffer releases a buffer id. Deleting id 0 is a no-op.
func (b *Backend) DeleteBuffer(id uint32) { b.delete(classBuffer, id) }

// BindBuffer records the binding.
func (b *Backend) BindBuffer(kind backend.BufferKind, id uint32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.boundBuffer[kind] = id
}

// UploadBuffer stores a copy of data for the buffer.
func (b *Backend) UploadBuffer(id uint32, kind backend.BufferKind, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.live[classBuffer][id] {
		return fmt.Errorf("headless: upload to unknown buffer %d", id)
	}
	b.boundBuffer[kind] = id
	b.bufferData[id] = append([]byte(nil), data...)
	return nil
}

// CreateVertexArray allocates a vertex array id.
func (b *Backend) CreateVertexArray() (uint32, error) { return b.create(classVertexArray) }

// DeleteVertexArray releases a vertex array id.
func (b *Backend) DeleteVertexArray(id uint32) { b.delete(classVertexArray, id) }

// BindVertexArray records the binding.
func (b *Backend) BindVertexArray(id uint32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.boundVAO = id
}

// VertexLayout is a no-op; the headless backend has no pipeline.
func (b *Backend) VertexLayout(index, size uint32, stride, offset int) {}

// CreateProgram allocates a program id.
func (b *Backend) CreateProgram() (uint32, error) { return b.create(classProgram) }

// DeleteProgram releases a program id.
func (b *Backend) DeleteProgram(id uint32) { b.delete(classProgram, id) }

// CompileAttach records the stage, or fails when FailCompile is set.
func (b *Backend) CompileAttach(program uint32, stage backend.ShaderStage, source string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.FailCompile != "" {
		return &backend.BuildError{Stage: stage, Op: "compile", Log: b.FailCompile}
	}
	if strings.TrimSpace(source) == "" {
		return &backend.BuildError{Stage: stage, Op: "compile", Log: "empty shader source"}
	}
	b.attached[program] = append(b.attached[program], stage)
	return nil
}

// LinkProgram marks the program linked, or fails when FailLink is set.
func (b *Backend) LinkProgram(id uint32) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.FailLink != "" {
		return &backend.BuildError{Stage: backend.VertexStage, Op: "link", Log: b.FailLink}
	}
	b.linked[id] = true
	return nil
}

// UseProgram records the active program.
func (b *Backend) UseProgram(id uint32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.program = id
}

// UniformLocation returns a stable synthetic location per name length.
// A zero program or empty name resolves to -1, matching how real drivers
// report unknown uniforms.
func (b *Backend) UniformLocation(program uint32, name string) int32 {
	if program == 0 || name == "" {
		return -1
	}
	return int32(len(name))
}

// SetUniformMatrix4 is a no-op.
func (b *Backend) SetUniformMatrix4(location int32, value *[16]float32) {}

// CreateTexture allocates a texture id.
func (b *Backend) CreateTexture() (uint32, error) { return b.create(classTexture) }

// DeleteTexture releases a texture id.
func (b *Backend) DeleteTexture(id uint32) { b.delete(classTexture, id) }

// BindTexture records the binding.
func (b *Backend) BindTexture(id uint32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.boundTex = id
}

// UploadTexture validates the pixel slice length.
func (b *Backend) UploadTexture(id uint32, width, height int, rgba []byte) error {
	if len(rgba) != width*height*4 {
		return fmt.Errorf("headless: texture %d: want %d bytes, got %d", id, width*height*4, len(rgba))
	}
	return nil
}

// Clear counts the call.
func (b *Backend) Clear(r, g, bl, a float32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.clearCalls++
}

// Viewport is a no-op.
func (b *Backend) Viewport(x, y, width, height int) {}

// DrawIndexed counts the call.
func (b *Backend) DrawIndexed(count int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.drawCalls++
}

// OpenWindow creates a simulated window.
func (b *Backend) OpenWindow(opts backend.WindowOptions) (backend.Window, error) {
	id, err := b.create(classWindow)
	if err != nil {
		return nil, err
	}
	if opts.Width <= 0 {
		opts.Width = 800
	}
	if opts.Height <= 0 {
		opts.Height = 600
	}
	w := &Window{
		backend: b,
		id:      id,
		title:   opts.Title,
		width:   opts.Width,
		height:  opts.Height,
		opacity: 1,
		visible: opts.Traits&backend.Visible != 0 || opts.Traits == 0,
	}
	b.mu.Lock()
	b.windows = append(b.windows, w)
	b.mu.Unlock()
	return w, nil
}

// PollEvents delivers injected events to window handlers and advances the
// virtual clock by one millisecond.
func (b *Backend) PollEvents() {
	b.mu.Lock()
	wins := append([]*Window(nil), b.windows...)
	b.clock += 0.001
	b.mu.Unlock()

	for _, w := range wins {
		w.deliver()
	}
}

// Time reports the virtual clock.
func (b *Backend) Time() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.clock
}

// Advance moves the virtual clock forward by dt seconds.
func (b *Backend) Advance(dt float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.clock += dt
}

// Accounting helpers for tests.

// LiveBuffers reports the number of live buffer ids.
func (b *Backend) LiveBuffers() int { return b.liveCount(classBuffer) }

// LiveVertexArrays reports the number of live vertex array ids.
func (b *Backend) LiveVertexArrays() int { return b.liveCount(classVertexArray) }

// LivePrograms reports the number of live program ids.
func (b *Backend) LivePrograms() int { return b.liveCount(classProgram) }

// LiveTextures reports the number of live texture ids.
func (b *Backend) LiveTextures() int { return b.liveCount(classTexture) }

// LiveWindows reports the number of live window ids.
func (b *Backend) LiveWindows() int { return b.liveCount(classWindow) }

func (b *Backend) liveCount(c objectClass) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.live[c])
}

// BufferDeleted reports how many times the given buffer id was deleted.
// Anything above 1 is a double free.
func (b *Backend) BufferDeleted(id uint32) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.deleted[classBuffer][id]
}

// VertexArrayDeleted reports delete counts for a vertex array id.
func (b *Backend) VertexArrayDeleted(id uint32) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.deleted[classVertexArray][id]
}

// ProgramDeleted reports delete counts for a program id.
func (b *Backend) ProgramDeleted(id uint32) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.deleted[classProgram][id]
}

// BufferContents returns the bytes last uploaded to a buffer id.
func (b *Backend) BufferContents(id uint32) []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.bufferData[id]
}

// ClearCalls reports the number of Clear invocations.
func (b *Backend) ClearCalls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.clearCalls
}

// DrawCalls reports the number of DrawIndexed invocations.
func (b *Backend) DrawCalls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.drawCalls
}
