// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package gl implements the gfx backend on GLFW 3.3 and OpenGL 4.1 core.
// Importing it registers the "gl" backend with the highest priority.
//
// GLFW requires the main OS thread; the package locks it on import, so the
// importing program must drive the application loop from main.
package gl

import (
	"fmt"
	"runtime"
	"strings"
	"sync"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gogpu/gfx/backend"
)

// Name is the identifier this backend registers under.
const Name = "gl"

func init() {
	runtime.LockOSThread()
	backend.Register(Name, 100, func() backend.Backend { return New() }, nil)
}

// Backend drives GLFW windows and an OpenGL 4.1 core context.
type Backend struct {
	mu          sync.Mutex
	initialized bool
	glReady     bool

	nextWindowID uint32
	windows      map[uint32]*Window
}

var _ backend.Backend = (*Backend)(nil)

// New creates an uninitialized GL backend.
func New() *Backend {
	return &Backend{windows: make(map[uint32]*Window)}
}

// Name returns "gl".
func (b *Backend) Name() string { return Name }

// Init initializes GLFW. OpenGL itself is initialized lazily by the first
// window, after a context is current.
func (b *Backend) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.initialized {
		return nil
	}
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("gl: glfw init: %w", err)
	}
	b.initialized = true
	return nil
}

// Terminate destroys remaining windows and shuts GLFW down.
func (b *Backend) Terminate() {
	b.mu.Lock()
	if !b.initialized {
		b.mu.Unlock()
		return
	}
	wins := make([]*Window, 0, len(b.windows))
	for _, w := range b.windows {
		wins = append(wins, w)
	}
	b.initialized = false
	b.mu.Unlock()

	for _, w := range wins {
		w.Destroy()
	}
	glfw.Terminate()
}

// ensureGL loads OpenGL function pointers once a context is current.
func (b *Backend) ensureGL() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.glReady {
		return nil
	}
	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl: load functions: %w", err)
	}
	b.glReady = true
	return nil
}

// CreateBuffer generates one buffer object.
func (b *Backend) CreateBuffer() (uint32, error) {
	if !b.initialized {
		return 0, backend.ErrNotInitialized
	}
	var id uint32
	gl.GenBuffers(1, &id)
	return id, nil
}

// DeleteBuffer deletes a buffer object. Id 0 is ignored.
func (b *Backend) DeleteBuffer(id uint32) {
	if id == 0 {
		return
	}
	gl.DeleteBuffers(1, &id)
}

func bufferTarget(kind backend.BufferKind) uint32 {
	if kind == backend.IndexBuffer {
		return gl.ELEMENT_ARRAY_BUFFER
	}
	return gl.ARRAY_BUFFER
}

// BindBuffer binds id to the target for kind.
func (b *Backend) BindBuffer(kind backend.BufferKind, id uint32) {
	gl.BindBuffer(bufferTarget(kind), id)
}

// UploadBuffer binds id and uploads data with GL_STATIC_DRAW.
func (b *Backend) UploadBuffer(id uint32, kind backend.BufferKind, data []byte) error {
	target := bufferTarget(kind)
	gl.BindBuffer(target, id)
	gl.BufferData(target, len(data), gl.Ptr(data), gl.STATIC_DRAW)
	return nil
}

// CreateVertexArray generates one vertex array object.
func (b *Backend) CreateVertexArray() (uint32, error) {
	if !b.initialized {
		return 0, backend.ErrNotInitialized
	}
	var id uint32
	gl.GenVertexArrays(1, &id)
	return id, nil
}

// DeleteVertexArray deletes a vertex array object. Id 0 is ignored.
func (b *Backend) DeleteVertexArray(id uint32) {
	if id == 0 {
		return
	}
	gl.DeleteVertexArrays(1, &id)
}

// BindVertexArray binds the vertex array object.
func (b *Backend) BindVertexArray(id uint32) {
	gl.BindVertexArray(id)
}

// VertexLayout declares and enables a float attribute on the bound VAO.
func (b *Backend) VertexLayout(index, size uint32, stride, offset int) {
	gl.VertexAttribPointer(index, int32(size), gl.FLOAT, false, int32(stride), gl.PtrOffset(offset))
	gl.EnableVertexAttribArray(index)
}

// CreateProgram creates an empty shader program.
func (b *Backend) CreateProgram() (uint32, error) {
	if !b.initialized {
		return 0, backend.ErrNotInitialized
	}
	return gl.CreateProgram(), nil
}

// DeleteProgram deletes a shader program. Id 0 is ignored.
func (b *Backend) DeleteProgram(id uint32) {
	if id == 0 {
		return
	}
	gl.DeleteProgram(id)
}

func stageType(stage backend.ShaderStage) uint32 {
	if stage == backend.FragmentStage {
		return gl.FRAGMENT_SHADER
	}
	return gl.VERTEX_SHADER
}

// CompileAttach compiles source, attaches it to program, and deletes the
// intermediate shader object. Compile failures carry the info log.
func (b *Backend) CompileAttach(program uint32, stage backend.ShaderStage, source string) error {
	shader := gl.CreateShader(stageType(stage))
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		log := shaderLog(shader)
		gl.DeleteShader(shader)
		return &backend.BuildError{Stage: stage, Op: "compile", Log: log}
	}

	gl.AttachShader(program, shader)
	gl.DeleteShader(shader)
	return nil
}

// LinkProgram links and validates the program. Failures carry the info log.
func (b *Backend) LinkProgram(id uint32) error {
	gl.LinkProgram(id)

	var status int32
	gl.GetProgramiv(id, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		return &backend.BuildError{Op: "link", Log: programLog(id)}
	}

	gl.ValidateProgram(id)
	gl.GetProgramiv(id, gl.VALIDATE_STATUS, &status)
	if status == gl.FALSE {
		return &backend.BuildError{Op: "link", Log: programLog(id)}
	}
	return nil
}

// UseProgram makes the program current.
func (b *Backend) UseProgram(id uint32) {
	gl.UseProgram(id)
}

// UniformLocation resolves a uniform name; -1 when absent.
func (b *Backend) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

// SetUniformMatrix4 uploads a column-major 4x4 matrix.
func (b *Backend) SetUniformMatrix4(location int32, value *[16]float32) {
	gl.UniformMatrix4fv(location, 1, false, &value[0])
}

// CreateTexture generates one texture object.
func (b *Backend) CreateTexture() (uint32, error) {
	if !b.initialized {
		return 0, backend.ErrNotInitialized
	}
	var id uint32
	gl.GenTextures(1, &id)
	return id, nil
}

// DeleteTexture deletes a texture object. Id 0 is ignored.
func (b *Backend) DeleteTexture(id uint32) {
	if id == 0 {
		return
	}
	gl.DeleteTextures(1, &id)
}

// BindTexture binds the texture to TEXTURE_2D.
func (b *Backend) BindTexture(id uint32) {
	gl.BindTexture(gl.TEXTURE_2D, id)
}

// UploadTexture uploads tightly packed RGBA pixels with linear filtering.
func (b *Backend) UploadTexture(id uint32, width, height int, rgba []byte) error {
	if len(rgba) != width*height*4 {
		return fmt.Errorf("gl: texture %d: want %d bytes, got %d", id, width*height*4, len(rgba))
	}
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(width), int32(height), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(rgba))
	return nil
}

// Clear clears color and depth with the given color.
func (b *Backend) Clear(r, g, bl, a float32) {
	gl.ClearColor(r, g, bl, a)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// Viewport sets the viewport rectangle.
func (b *Backend) Viewport(x, y, width, height int) {
	gl.Viewport(int32(x), int32(y), int32(width), int32(height))
}

// DrawIndexed draws count indices from the bound VAO/EBO as triangles.
func (b *Backend) DrawIndexed(count int) {
	gl.DrawElements(gl.TRIANGLES, int32(count), gl.UNSIGNED_INT, gl.PtrOffset(0))
}

// PollEvents drains the GLFW event queue.
func (b *Backend) PollEvents() {
	glfw.PollEvents()
}

// Time reports seconds since GLFW initialization.
func (b *Backend) Time() float64 {
	return glfw.GetTime()
}

func shaderLog(shader uint32) string {
	var length int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &length)
	log := strings.Repeat("\x00", int(length+1))
	gl.GetShaderInfoLog(shader, length, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func programLog(program uint32) string {
	var length int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &length)
	log := strings.Repeat("\x00", int(length+1))
	gl.GetProgramInfoLog(program, length, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}
