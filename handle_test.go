// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gfx

import "testing"

func TestHandleOwnership(t *testing.T) {
	h := NewHandle(7, true)
	if !h.Valid() || h.ID() != 7 || !h.Owned() {
		t.Fatalf("handle = %+v, want valid owned id 7", h)
	}

	moved := h.Transfer()
	if h.Owned() {
		t.Error("source still owned after Transfer")
	}
	if h.ID() != 7 {
		t.Error("source lost id after Transfer")
	}
	if !moved.Owned() || moved.ID() != 7 {
		t.Errorf("moved = %+v, want owned id 7", moved)
	}
}

func TestHandleEqualIgnoresOwnership(t *testing.T) {
	owned := NewHandle(7, true)
	borrowed := NewHandle(7, false)
	if !owned.Equal(borrowed) {
		t.Error("handles to the same id compare unequal")
	}
	if owned.Equal(NewHandle(8, true)) {
		t.Error("handles to different ids compare equal")
	}

	// a moved-out source still refers to the same object
	moved := owned.Transfer()
	if !owned.Equal(moved) {
		t.Error("Transfer broke handle identity")
	}
}

func TestHandleRelease(t *testing.T) {
	var deleted []uint32
	del := func(id uint32) { deleted = append(deleted, id) }

	h := NewHandle(3, true)
	h.Release(del)
	h.Release(del)
	if len(deleted) != 1 || deleted[0] != 3 {
		t.Fatalf("deleted = %v, want exactly one delete of 3", deleted)
	}
	if h.Valid() {
		t.Error("handle still valid after Release")
	}
}

func TestHandleReleaseNonOwning(t *testing.T) {
	var deleted []uint32
	h := NewHandle(9, false)
	h.Release(func(id uint32) { deleted = append(deleted, id) })
	if len(deleted) != 0 {
		t.Fatalf("non-owning handle deleted %v", deleted)
	}

	h = NewHandle(9, true)
	h.Disown()
	h.Release(func(id uint32) { deleted = append(deleted, id) })
	if len(deleted) != 0 {
		t.Fatalf("disowned handle deleted %v", deleted)
	}
}

func TestHandleZeroValue(t *testing.T) {
	var h Handle
	if h.Valid() || h.Owned() || h.ID() != 0 {
		t.Fatalf("zero handle = %+v", h)
	}
	h.Release(func(uint32) { t.Fatal("zero handle called delete") })
}
