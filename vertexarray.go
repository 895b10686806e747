// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gfx

import "github.com/gogpu/gfx/backend"

// VertexArray is a vertex array object with explicit ownership.
type VertexArray struct {
	handle Handle
	b      backend.Backend
}

// NewVertexArray allocates a new backend vertex array. The returned
// VertexArray owns it.
func NewVertexArray(ctx *Context) (*VertexArray, error) {
	id, err := ctx.Backend.CreateVertexArray()
	if err != nil {
		return nil, err
	}
	return &VertexArray{handle: NewHandle(id, true), b: ctx.Backend}, nil
}

// WrapVertexArray wraps an existing backend vertex array id. When id is
// zero a new vertex array is allocated and owned regardless of owned.
func WrapVertexArray(ctx *Context, id uint32, owned bool) (*VertexArray, error) {
	if id == 0 {
		return NewVertexArray(ctx)
	}
	return &VertexArray{handle: NewHandle(id, owned), b: ctx.Backend}, nil
}

// ID returns the backend vertex array id.
func (v *VertexArray) ID() uint32 { return v.handle.ID() }

// Owned reports whether this VertexArray deletes the backend object on
// Destroy.
func (v *VertexArray) Owned() bool { return v.handle.Owned() }

// Bind binds the vertex array.
func (v *VertexArray) Bind() { v.b.BindVertexArray(v.handle.ID()) }

// Layout binds the vertex array and declares attribute index as size
// float32 components with the given stride and offset in bytes.
func (v *VertexArray) Layout(index, size uint32, stride, offset int) {
	v.Bind()
	v.b.VertexLayout(index, size, stride, offset)
}

// Transfer moves ownership of the backend object to a new VertexArray
// sharing the same id. The receiver keeps the id but no longer owns it.
func (v *VertexArray) Transfer() *VertexArray {
	return &VertexArray{handle: v.handle.Transfer(), b: v.b}
}

// Destroy deletes the backend vertex array if owned. Safe to call more
// than once.
func (v *VertexArray) Destroy() {
	v.handle.Release(v.b.DeleteVertexArray)
}
