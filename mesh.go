// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gfx

import "github.com/gogpu/gfx/backend"

// MeshOwnership selects which of a mesh's backend objects the mesh deletes
// on Destroy.
type MeshOwnership uint8

const (
	MeshOwnVAO MeshOwnership = 1 << iota
	MeshOwnVBO
	MeshOwnEBO

	MeshOwnNone MeshOwnership = 0
	MeshOwnAll                = MeshOwnVAO | MeshOwnVBO | MeshOwnEBO
)

// Mesh is a renderable composite of a vertex array, a vertex buffer, and
// an index buffer. Each part carries its own ownership, so a mesh can own
// all of its objects, none, or any mix.
type Mesh struct {
	vao     Handle
	vbo     Handle
	ebo     Handle
	indexCt int
	b       backend.Backend
}

// NewMesh allocates a mesh from flat vertex and index data. Vertices are
// packed triplets of 3D positions bound to attribute 0; indices form
// triangles. The mesh owns all three backend objects.
func NewMesh(ctx *Context, vertices []float32, indices []uint32) (*Mesh, error) {
	m, err := WrapMesh(ctx, 0, 0, 0, len(indices), MeshOwnAll)
	if err != nil {
		return nil, err
	}
	b := ctx.Backend
	b.BindVertexArray(m.vao.ID())
	if err := b.UploadBuffer(m.vbo.ID(), backend.VertexBuffer, float32Bytes(vertices)); err != nil {
		m.Destroy()
		return nil, err
	}
	if err := b.UploadBuffer(m.ebo.ID(), backend.IndexBuffer, uint32Bytes(indices)); err != nil {
		m.Destroy()
		return nil, err
	}
	b.VertexLayout(0, 3, 0, 0)
	b.BindVertexArray(0)
	return m, nil
}

// WrapMesh builds a mesh over existing backend objects. A zero id means
// the corresponding object is allocated fresh and owned regardless of
// owning; non-zero ids are owned only when their owning bit is set.
func WrapMesh(ctx *Context, vao, vbo, ebo uint32, indexCount int, owning MeshOwnership) (*Mesh, error) {
	b := ctx.Backend
	m := &Mesh{indexCt: indexCount, b: b}

	wrap := func(id uint32, bit MeshOwnership, create func() (uint32, error)) (Handle, error) {
		if id == 0 {
			fresh, err := create()
			if err != nil {
				return Handle{}, err
			}
			return NewHandle(fresh, true), nil
		}
		return NewHandle(id, owning&bit != 0), nil
	}

	var err error
	if m.vao, err = wrap(vao, MeshOwnVAO, b.CreateVertexArray); err != nil {
		return nil, err
	}
	if m.vbo, err = wrap(vbo, MeshOwnVBO, b.CreateBuffer); err != nil {
		m.Destroy()
		return nil, err
	}
	if m.ebo, err = wrap(ebo, MeshOwnEBO, b.CreateBuffer); err != nil {
		m.Destroy()
		return nil, err
	}
	return m, nil
}

// MeshFromParts assembles a mesh from resource wrappers, moving ownership
// of each part whose owning bit is set. The donors keep their ids but no
// longer own them.
func MeshFromParts(ctx *Context, array *VertexArray, vertices, indices *Buffer, indexCount int, owning MeshOwnership) *Mesh {
	m := &Mesh{indexCt: indexCount, b: ctx.Backend}

	take := func(h *Handle, bit MeshOwnership) Handle {
		if owning&bit != 0 {
			return h.Transfer()
		}
		return NewHandle(h.ID(), false)
	}
	m.vao = take(&array.handle, MeshOwnVAO)
	m.vbo = take(&vertices.handle, MeshOwnVBO)
	m.ebo = take(&indices.handle, MeshOwnEBO)
	return m
}

// VAO returns the vertex array id.
func (m *Mesh) VAO() uint32 { return m.vao.ID() }

// VBO returns the vertex buffer id.
func (m *Mesh) VBO() uint32 { return m.vbo.ID() }

// EBO returns the index buffer id.
func (m *Mesh) EBO() uint32 { return m.ebo.ID() }

// IndexCount reports the number of indices drawn by Render.
func (m *Mesh) IndexCount() int { return m.indexCt }

// Ownership reports which backend objects the mesh currently owns.
func (m *Mesh) Ownership() MeshOwnership {
	var own MeshOwnership
	if m.vao.Owned() {
		own |= MeshOwnVAO
	}
	if m.vbo.Owned() {
		own |= MeshOwnVBO
	}
	if m.ebo.Owned() {
		own |= MeshOwnEBO
	}
	return own
}

// Render binds the vertex array and index buffer and draws the indices as
// triangles. A mesh without a vertex array returns ErrNoVertexArray.
func (m *Mesh) Render() error {
	if !m.vao.Valid() {
		return ErrNoVertexArray
	}
	m.b.BindVertexArray(m.vao.ID())
	m.b.BindBuffer(backend.IndexBuffer, m.ebo.ID())
	m.b.DrawIndexed(m.indexCt)
	m.b.BindVertexArray(0)
	return nil
}

// Destroy deletes every owned backend object. Safe to call more than once.
func (m *Mesh) Destroy() {
	m.vao.Release(m.b.DeleteVertexArray)
	m.vbo.Release(m.b.DeleteBuffer)
	m.ebo.Release(m.b.DeleteBuffer)
	m.indexCt = 0
}
