// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gfx

import (
	"log/slog"
	"strconv"

	"github.com/gogpu/gfx/backend"
)

// Resources holds one named registry per resource kind. All registries
// share the application's backend and destroy what they own on Clear.
type Resources struct {
	Buffers      *Registry[*Buffer]
	VertexArrays *Registry[*VertexArray]
	Cameras      *Registry[*Camera]
	Meshes       *Registry[*Mesh]
	Shaders      *Registry[*Shader]
	Textures     *Registry[*Texture]
	Windows      *Registry[*Window]
}

// NewResources creates an empty resource set.
func NewResources() *Resources {
	return &Resources{
		Buffers:      newRegistry[*Buffer](bufferNamer),
		VertexArrays: newRegistry[*VertexArray](vertexArrayNamer),
		Cameras:      newRegistry[*Camera](cameraNamer),
		Meshes:       newRegistry[*Mesh](meshNamer),
		Shaders:      newRegistry[*Shader](shaderNamer),
		Textures:     newRegistry[*Texture](textureNamer),
		Windows:      newRegistry[*Window](windowNamer),
	}
}

// WindowByID finds the window with the given backend id. Backend event
// sources identify windows by id; this resolves them to the wrapper
// without any unsafe pointer stashing.
func (r *Resources) WindowByID(id uint32) (*Window, error) {
	name, ok := r.Windows.FindByID(id)
	if !ok {
		return nil, &NotFoundError{Kind: "window", Name: "id " + strconv.FormatUint(uint64(id), 10)}
	}
	return r.Windows.Get(name)
}

// Destroy releases every resource. GPU objects go first while their
// contexts still exist; windows go last.
func (r *Resources) Destroy() {
	r.Meshes.Clear()
	r.Buffers.Clear()
	r.VertexArrays.Clear()
	r.Shaders.Clear()
	r.Textures.Clear()
	r.Cameras.Clear()
	r.Windows.Clear()
}

// Context bundles what resource constructors need: the backend, the
// registries, and the logger. It replaces ambient global state; everything
// that creates resources takes one explicitly.
type Context struct {
	Backend   backend.Backend
	Resources *Resources
	Log       *slog.Logger
}
