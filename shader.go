// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gfx

import (
	"log/slog"
	"os"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/gfx/backend"
)

// DefaultGLSLVersion is the #version directive EnsureVersion applies when
// a source has none.
const DefaultGLSLVersion = "450 core"

// Standard transform uniform names resolved at build time.
const (
	UniformModel      = "model"
	UniformView       = "view"
	UniformProjection = "projection"
)

// Shader is a linked shader program with explicit ownership. Locations of
// the standard transform uniforms are cached after every build.
type Shader struct {
	handle Handle
	b      backend.Backend

	// source paths, kept for Reload. Empty for source-built shaders.
	vertPath string
	fragPath string

	model      int32
	view       int32
	projection int32
}

// NewShader compiles and links a program from vertex and fragment sources.
// The returned Shader owns the program. Compile and link failures return a
// *backend.BuildError carrying the build log.
func NewShader(ctx *Context, vertexSource, fragmentSource string) (*Shader, error) {
	s := &Shader{b: ctx.Backend}
	if err := s.build(vertexSource, fragmentSource); err != nil {
		return nil, err
	}
	return s, nil
}

// LoadShader reads vertex and fragment sources from files and builds a
// program. Read failures return an *IOError. The paths are kept so the
// program can be rebuilt with Reload.
func LoadShader(ctx *Context, vertexPath, fragmentPath string) (*Shader, error) {
	s := &Shader{b: ctx.Backend, vertPath: vertexPath, fragPath: fragmentPath}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// WrapShader wraps an existing backend program id. When id is zero an
// empty program is created and owned regardless of owned. The standard
// uniform locations are resolved from the program as-is.
func WrapShader(ctx *Context, id uint32, owned bool) (*Shader, error) {
	if id == 0 {
		prog, err := ctx.Backend.CreateProgram()
		if err != nil {
			return nil, err
		}
		id, owned = prog, true
	}
	s := &Shader{handle: NewHandle(id, owned), b: ctx.Backend}
	s.resolveUniforms()
	return s, nil
}

// build compiles both stages into a fresh program and swaps it in. The old
// program, if owned, is deleted only after the new one links.
func (s *Shader) build(vertexSource, fragmentSource string) error {
	prog, err := s.b.CreateProgram()
	if err != nil {
		return err
	}
	if err := s.b.CompileAttach(prog, backend.VertexStage, vertexSource); err != nil {
		s.b.DeleteProgram(prog)
		return err
	}
	if err := s.b.CompileAttach(prog, backend.FragmentStage, fragmentSource); err != nil {
		s.b.DeleteProgram(prog)
		return err
	}
	if err := s.b.LinkProgram(prog); err != nil {
		s.b.DeleteProgram(prog)
		return err
	}

	s.handle.Release(s.b.DeleteProgram)
	s.handle = NewHandle(prog, true)
	s.resolveUniforms()
	return nil
}

func (s *Shader) resolveUniforms() {
	id := s.handle.ID()
	s.model = s.b.UniformLocation(id, UniformModel)
	s.view = s.b.UniformLocation(id, UniformView)
	s.projection = s.b.UniformLocation(id, UniformProjection)
}

// Reload rebuilds the program from the source files given to LoadShader.
// The current program keeps running when the rebuild fails, so a broken
// edit never takes down a live shader.
func (s *Shader) Reload() error {
	if s.vertPath == "" || s.fragPath == "" {
		return &IOError{Path: s.vertPath, Err: os.ErrNotExist}
	}
	vert, err := os.ReadFile(s.vertPath)
	if err != nil {
		return &IOError{Path: s.vertPath, Err: err}
	}
	frag, err := os.ReadFile(s.fragPath)
	if err != nil {
		return &IOError{Path: s.fragPath, Err: err}
	}
	if err := s.build(string(vert), string(frag)); err != nil {
		Logger().Warn("shader reload failed",
			slog.String("vertex", s.vertPath),
			slog.String("fragment", s.fragPath),
			slog.Any("error", err))
		return err
	}
	return nil
}

// ID returns the backend program id.
func (s *Shader) ID() uint32 { return s.handle.ID() }

// Owned reports whether this Shader deletes the program on Destroy.
func (s *Shader) Owned() bool { return s.handle.Owned() }

// Use makes the program current. A shader without a program is a no-op.
func (s *Shader) Use() {
	if s.handle.Valid() {
		s.b.UseProgram(s.handle.ID())
	}
}

// Unbind clears the current program.
func (s *Shader) Unbind() { s.b.UseProgram(0) }

// SetModel uploads the model matrix to its cached location.
func (s *Shader) SetModel(m mgl32.Mat4) { s.b.SetUniformMatrix4(s.model, (*[16]float32)(&m)) }

// SetView uploads the view matrix to its cached location.
func (s *Shader) SetView(m mgl32.Mat4) { s.b.SetUniformMatrix4(s.view, (*[16]float32)(&m)) }

// SetProjection uploads the projection matrix to its cached location.
func (s *Shader) SetProjection(m mgl32.Mat4) {
	s.b.SetUniformMatrix4(s.projection, (*[16]float32)(&m))
}

// SetMatrix4 uploads a matrix to a uniform by name. The standard transform
// names use their cached locations; other names are resolved on the spot.
// Returns a *NotFoundError when the program has no such uniform.
func (s *Shader) SetMatrix4(name string, m mgl32.Mat4) error {
	var loc int32
	switch name {
	case UniformModel:
		loc = s.model
	case UniformView:
		loc = s.view
	case UniformProjection:
		loc = s.projection
	default:
		loc = s.b.UniformLocation(s.handle.ID(), name)
	}
	if loc < 0 {
		return &NotFoundError{Kind: "uniform", Name: name}
	}
	s.b.SetUniformMatrix4(loc, (*[16]float32)(&m))
	return nil
}

// Transfer moves ownership of the program to a new Shader sharing the same
// id and cached locations. The receiver keeps the id but no longer owns it.
func (s *Shader) Transfer() *Shader {
	out := *s
	out.handle = s.handle.Transfer()
	return &out
}

// Destroy deletes the program if owned. Safe to call more than once.
func (s *Shader) Destroy() {
	s.handle.Release(s.b.DeleteProgram)
	s.model, s.view, s.projection = 0, 0, 0
}

// EnsureVersion prefixes source with a #version directive unless it
// already carries one. The directive must be the first line of a GLSL
// compilation unit.
func EnsureVersion(version, source string) string {
	if strings.HasPrefix(strings.TrimLeft(source, " \t\n"), "#version") {
		return source
	}
	return "#version " + version + "\n" + source
}
