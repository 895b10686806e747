// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gfx

import (
	"errors"
	"testing"

	"github.com/gogpu/gfx/backend"
)

var (
	tetraVertices = []float32{
		-1, -1, 0,
		1, -1, 0,
		0, 1, 0,
		0, 0, 1,
	}
	tetraIndices = []uint32{
		0, 1, 2,
		0, 2, 3,
		0, 3, 1,
		1, 3, 2,
	}
)

func TestNewMeshOwnsEverything(t *testing.T) {
	ctx, hb := newTestContext(t)

	m, err := NewMesh(ctx, tetraVertices, tetraIndices)
	if err != nil {
		t.Fatalf("NewMesh failed: %v", err)
	}
	if m.Ownership() != MeshOwnAll {
		t.Fatalf("Ownership = %b, want MeshOwnAll", m.Ownership())
	}
	if m.IndexCount() != len(tetraIndices) {
		t.Fatalf("IndexCount = %d, want %d", m.IndexCount(), len(tetraIndices))
	}
	if got := hb.BufferContents(m.VBO()); len(got) != len(tetraVertices)*4 {
		t.Fatalf("vertex upload = %d bytes, want %d", len(got), len(tetraVertices)*4)
	}
	if got := hb.BufferContents(m.EBO()); len(got) != len(tetraIndices)*4 {
		t.Fatalf("index upload = %d bytes, want %d", len(got), len(tetraIndices)*4)
	}

	vao, vbo, ebo := m.VAO(), m.VBO(), m.EBO()
	m.Destroy()
	m.Destroy()
	if hb.VertexArrayDeleted(vao) != 1 || hb.BufferDeleted(vbo) != 1 || hb.BufferDeleted(ebo) != 1 {
		t.Fatal("owned objects not deleted exactly once")
	}
}

func TestMeshRender(t *testing.T) {
	ctx, hb := newTestContext(t)

	m, err := NewMesh(ctx, tetraVertices, tetraIndices)
	if err != nil {
		t.Fatalf("NewMesh failed: %v", err)
	}
	if err := m.Render(); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if hb.DrawCalls() != 1 {
		t.Fatalf("DrawCalls = %d, want 1", hb.DrawCalls())
	}

	m.Destroy()
	if err := m.Render(); !errors.Is(err, ErrNoVertexArray) {
		t.Fatalf("Render after Destroy = %v, want ErrNoVertexArray", err)
	}
}

func TestWrapMeshOwnershipMask(t *testing.T) {
	ctx, hb := newTestContext(t)

	vao, _ := ctx.Backend.CreateVertexArray()
	vbo, _ := ctx.Backend.CreateBuffer()
	ebo, _ := ctx.Backend.CreateBuffer()

	m, err := WrapMesh(ctx, vao, vbo, ebo, 3, MeshOwnVBO)
	if err != nil {
		t.Fatalf("WrapMesh failed: %v", err)
	}
	if m.Ownership() != MeshOwnVBO {
		t.Fatalf("Ownership = %b, want MeshOwnVBO only", m.Ownership())
	}

	m.Destroy()
	if hb.VertexArrayDeleted(vao) != 0 {
		t.Error("unowned VAO was deleted")
	}
	if hb.BufferDeleted(vbo) != 1 {
		t.Error("owned VBO was not deleted")
	}
	if hb.BufferDeleted(ebo) != 0 {
		t.Error("unowned EBO was deleted")
	}
}

func TestWrapMeshZeroIDsForceOwnership(t *testing.T) {
	ctx, _ := newTestContext(t)

	// zero ids allocate fresh objects and own them even with an empty mask
	m, err := WrapMesh(ctx, 0, 0, 0, 0, MeshOwnNone)
	if err != nil {
		t.Fatalf("WrapMesh failed: %v", err)
	}
	if m.Ownership() != MeshOwnAll {
		t.Fatalf("Ownership = %b, want MeshOwnAll for fresh objects", m.Ownership())
	}
	if m.VAO() == 0 || m.VBO() == 0 || m.EBO() == 0 {
		t.Fatal("zero ids not replaced with fresh objects")
	}
}

func TestMeshFromPartsTransfersOwnership(t *testing.T) {
	ctx, hb := newTestContext(t)

	array, _ := NewVertexArray(ctx)
	vertices, _ := NewBuffer(ctx, backend.VertexBuffer)
	indices, _ := NewBuffer(ctx, backend.IndexBuffer)

	m := MeshFromParts(ctx, array, vertices, indices, 3, MeshOwnAll)
	if m.Ownership() != MeshOwnAll {
		t.Fatalf("Ownership = %b, want MeshOwnAll", m.Ownership())
	}

	vao, vbo, ebo := m.VAO(), m.VBO(), m.EBO()

	// donors no longer own; destroying them must not free the objects
	array.Destroy()
	vertices.Destroy()
	indices.Destroy()
	if hb.VertexArrayDeleted(vao) != 0 || hb.BufferDeleted(vbo) != 0 || hb.BufferDeleted(ebo) != 0 {
		t.Fatal("donor Destroy freed objects the mesh owns")
	}

	m.Destroy()
	if hb.VertexArrayDeleted(vao) != 1 || hb.BufferDeleted(vbo) != 1 || hb.BufferDeleted(ebo) != 1 {
		t.Fatal("mesh Destroy did not free each owned object exactly once")
	}
	if hb.LiveVertexArrays() != 0 || hb.LiveBuffers() != 0 {
		t.Fatal("mesh Destroy left live objects")
	}
}
