// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gfx

import (
	"bytes"
	"testing"

	"github.com/gogpu/gfx/backend"
)

func TestBufferLifecycle(t *testing.T) {
	ctx, hb := newTestContext(t)

	buf, err := NewBuffer(ctx, backend.VertexBuffer)
	if err != nil {
		t.Fatalf("NewBuffer failed: %v", err)
	}
	if !buf.Owned() || buf.ID() == 0 {
		t.Fatalf("buffer = id %d owned %v, want owned non-zero", buf.ID(), buf.Owned())
	}

	if err := buf.UploadFloat32([]float32{1, 2}); err != nil {
		t.Fatalf("UploadFloat32 failed: %v", err)
	}
	want := []byte{0, 0, 0x80, 0x3f, 0, 0, 0, 0x40} // 1.0, 2.0 little-endian
	if got := hb.BufferContents(buf.ID()); !bytes.Equal(got, want) {
		t.Fatalf("uploaded bytes = %v, want %v", got, want)
	}

	id := buf.ID()
	buf.Destroy()
	buf.Destroy()
	if got := hb.BufferDeleted(id); got != 1 {
		t.Fatalf("delete count = %d, want 1", got)
	}
}

func TestWrapBufferOwnership(t *testing.T) {
	ctx, hb := newTestContext(t)

	// zero id allocates and owns
	buf, err := WrapBuffer(ctx, backend.IndexBuffer, 0, false)
	if err != nil {
		t.Fatalf("WrapBuffer(0) failed: %v", err)
	}
	if !buf.Owned() || buf.ID() == 0 {
		t.Fatal("zero-id wrap must allocate and own")
	}

	// non-owning wrap never deletes
	donor, err := NewBuffer(ctx, backend.VertexBuffer)
	if err != nil {
		t.Fatalf("NewBuffer failed: %v", err)
	}
	view, err := WrapBuffer(ctx, backend.VertexBuffer, donor.ID(), false)
	if err != nil {
		t.Fatalf("WrapBuffer failed: %v", err)
	}
	view.Destroy()
	if got := hb.BufferDeleted(donor.ID()); got != 0 {
		t.Fatalf("non-owning Destroy deleted the object %d times", got)
	}
}

func TestBufferTransfer(t *testing.T) {
	ctx, hb := newTestContext(t)

	src, err := NewBuffer(ctx, backend.VertexBuffer)
	if err != nil {
		t.Fatalf("NewBuffer failed: %v", err)
	}
	id := src.ID()

	dst := src.Transfer()
	if src.Owned() {
		t.Error("source still owned after Transfer")
	}
	src.Destroy()
	if hb.BufferDeleted(id) != 0 {
		t.Fatal("disowned source deleted the object")
	}
	dst.Destroy()
	if hb.BufferDeleted(id) != 1 {
		t.Fatal("new owner did not delete the object")
	}
}

func TestVertexArrayLifecycle(t *testing.T) {
	ctx, hb := newTestContext(t)

	vao, err := NewVertexArray(ctx)
	if err != nil {
		t.Fatalf("NewVertexArray failed: %v", err)
	}
	vao.Layout(0, 3, 0, 0)

	id := vao.ID()
	moved := vao.Transfer()
	vao.Destroy()
	moved.Destroy()
	moved.Destroy()
	if got := hb.VertexArrayDeleted(id); got != 1 {
		t.Fatalf("delete count = %d, want 1", got)
	}
}
