// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gfx

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/gfx/backend"
)

// Buffer is a GPU buffer object with explicit ownership.
type Buffer struct {
	handle Handle
	kind   backend.BufferKind
	b      backend.Backend
}

// NewBuffer allocates a new backend buffer. The returned Buffer owns it.
func NewBuffer(ctx *Context, kind backend.BufferKind) (*Buffer, error) {
	id, err := ctx.Backend.CreateBuffer()
	if err != nil {
		return nil, err
	}
	return &Buffer{handle: NewHandle(id, true), kind: kind, b: ctx.Backend}, nil
}

// WrapBuffer wraps an existing backend buffer id. When id is zero a new
// buffer is allocated and owned regardless of owned.
func WrapBuffer(ctx *Context, kind backend.BufferKind, id uint32, owned bool) (*Buffer, error) {
	if id == 0 {
		return NewBuffer(ctx, kind)
	}
	return &Buffer{handle: NewHandle(id, owned), kind: kind, b: ctx.Backend}, nil
}

// ID returns the backend buffer id.
func (b *Buffer) ID() uint32 { return b.handle.ID() }

// Owned reports whether this Buffer deletes the backend object on Destroy.
func (b *Buffer) Owned() bool { return b.handle.Owned() }

// Kind returns the buffer's binding target kind.
func (b *Buffer) Kind() backend.BufferKind { return b.kind }

// Bind binds the buffer to its target.
func (b *Buffer) Bind() { b.b.BindBuffer(b.kind, b.handle.ID()) }

// Upload binds the buffer and uploads data.
func (b *Buffer) Upload(data []byte) error {
	return b.b.UploadBuffer(b.handle.ID(), b.kind, data)
}

// UploadFloat32 uploads a float32 slice as tightly packed 32-bit words.
func (b *Buffer) UploadFloat32(data []float32) error {
	return b.Upload(float32Bytes(data))
}

// UploadUint32 uploads a uint32 slice as tightly packed 32-bit words.
func (b *Buffer) UploadUint32(data []uint32) error {
	return b.Upload(uint32Bytes(data))
}

// Transfer moves ownership of the backend object to a new Buffer sharing
// the same id. The receiver keeps the id but no longer owns it.
func (b *Buffer) Transfer() *Buffer {
	return &Buffer{handle: b.handle.Transfer(), kind: b.kind, b: b.b}
}

// Destroy deletes the backend buffer if owned. Safe to call more than once.
func (b *Buffer) Destroy() {
	b.handle.Release(b.b.DeleteBuffer)
}

func float32Bytes(data []float32) []byte {
	out := make([]byte, len(data)*4)
	for i, v := range data {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(v))
	}
	return out
}

func uint32Bytes(data []uint32) []byte {
	out := make([]byte, len(data)*4)
	for i, v := range data {
		binary.LittleEndian.PutUint32(out[i*4:], v)
	}
	return out
}
