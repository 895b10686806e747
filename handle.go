// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gfx

// Handle pairs a backend object id with an explicit ownership flag. Owned
// handles delete the backend object in Release; non-owning handles wrap an
// id that someone else is responsible for.
//
// Ownership moves explicitly via Transfer, never implicitly on copy. A
// copied Handle with owned set in both copies is a double-free waiting to
// happen, so code that hands a handle on must call Transfer or Disown.
type Handle struct {
	id    uint32
	owned bool
}

// NewHandle wraps an existing backend id. The handle deletes the object on
// Release only when owned is true.
func NewHandle(id uint32, owned bool) Handle {
	return Handle{id: id, owned: owned}
}

// ID returns the backend object id. Zero means no object.
func (h Handle) ID() uint32 { return h.id }

// Owned reports whether this handle is responsible for deleting the object.
func (h Handle) Owned() bool { return h.owned }

// Valid reports whether the handle refers to an object.
func (h Handle) Valid() bool { return h.id != 0 }

// Equal reports whether both handles refer to the same backend object.
// Identity is the id alone; the ownership flag does not participate. Use
// this instead of ==, which also compares ownership.
func (h Handle) Equal(other Handle) bool { return h.id == other.id }

// Disown clears the ownership flag. The backend object is unaffected.
func (h *Handle) Disown() { h.owned = false }

// Transfer moves ownership out of h and returns a handle to the same id
// that carries it. h keeps the id but no longer owns the object.
func (h *Handle) Transfer() Handle {
	out := *h
	h.owned = false
	return out
}

// Release deletes the backend object through del when the handle owns one,
// then resets the handle to the zero value. Releasing a non-owning or
// already released handle is a no-op apart from the reset.
func (h *Handle) Release(del func(id uint32)) {
	if h.owned && h.id != 0 && del != nil {
		del(h.id)
	}
	*h = Handle{}
}
