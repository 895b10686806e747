// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gfx

import "log/slog"

// Resource is anything a Registry can own. Destroy releases whatever
// backend objects the resource holds; it must be safe to call once.
type Resource interface {
	Destroy()
}

// Registry is a named, owning store for one kind of resource. Insertion
// order is preserved, so positional access via At is deterministic. A
// registry is not safe for concurrent use; resources belong to the thread
// driving the application loop.
type Registry[T Resource] struct {
	namer namer
	names []string
	items map[string]T

	// recent is the name last recorded or looked up; cleared when that
	// resource leaves the registry.
	recent string
}

// newRegistry creates an empty registry using the given namer.
func newRegistry[T Resource](n namer) *Registry[T] {
	return &Registry[T]{
		namer: n,
		items: make(map[string]T),
	}
}

// Kind returns the resource noun used in names and errors, e.g. "shader".
func (r *Registry[T]) Kind() string { return r.namer.kind }

// Len reports the number of stored resources.
func (r *Registry[T]) Len() int { return len(r.items) }

// Contains reports whether name is bound.
func (r *Registry[T]) Contains(name string) bool {
	_, ok := r.items[name]
	return ok
}

// Names returns the bound names in insertion order.
func (r *Registry[T]) Names() []string {
	return append([]string(nil), r.names...)
}

// Emplace constructs a resource with build and binds it like Record.
// A build failure propagates unchanged and leaves the registry untouched.
func (r *Registry[T]) Emplace(hint string, build func() (T, error)) (T, string, error) {
	item, err := build()
	if err != nil {
		var zero T
		return zero, "", err
	}
	return item, r.Record(hint, item), nil
}

// Record takes ownership of item and binds it under hint. When hint is
// empty or already taken, a fresh name is generated instead. Returns the
// name actually bound. The recorded resource becomes the most recent one.
func (r *Registry[T]) Record(hint string, item T) string {
	name := r.namer.next(r.Contains, hint)
	r.items[name] = item
	r.names = append(r.names, name)
	r.recent = name
	Logger().Debug("resource recorded", slog.String("kind", r.namer.kind), slog.String("name", name))
	return name
}

// Get returns the resource bound to name, or a *NotFoundError. A
// successful lookup makes the resource the most recent one.
func (r *Registry[T]) Get(name string) (T, error) {
	item, ok := r.items[name]
	if !ok {
		var zero T
		return zero, &NotFoundError{Kind: r.namer.kind, Name: name}
	}
	r.recent = name
	return item, nil
}

// At returns the i-th resource in insertion order, or an
// *IndexOutOfRangeError. A successful lookup makes the resource the most
// recent one.
func (r *Registry[T]) At(i int) (T, error) {
	if i < 0 || i >= len(r.names) {
		var zero T
		return zero, &IndexOutOfRangeError{Kind: r.namer.kind, Index: i, Len: len(r.names)}
	}
	r.recent = r.names[i]
	return r.items[r.names[i]], nil
}

// Recent returns the most recently recorded or accessed resource. When no
// resource has been touched yet, the oldest one becomes recent. Returns
// ErrRegistryEmpty when the registry holds nothing.
func (r *Registry[T]) Recent() (T, error) {
	if r.recent == "" {
		if len(r.names) == 0 {
			var zero T
			return zero, ErrRegistryEmpty
		}
		r.recent = r.names[0]
	}
	return r.items[r.recent], nil
}

// FindByID scans for the first resource whose backend id equals id and
// returns its name. Resources without a backend id, like cameras, never
// match.
func (r *Registry[T]) FindByID(id uint32) (string, bool) {
	for _, name := range r.names {
		if res, ok := any(r.items[name]).(interface{ ID() uint32 }); ok && res.ID() == id {
			return name, true
		}
	}
	return "", false
}

// Rename rebinds the resource at old to new. A resource already bound to
// new is displaced and destroyed. Returns a *NotFoundError when old is not
// bound.
func (r *Registry[T]) Rename(old, new string) error {
	item, ok := r.items[old]
	if !ok {
		return &NotFoundError{Kind: r.namer.kind, Name: old}
	}
	if old == new {
		return nil
	}
	if displaced, taken := r.items[new]; taken {
		r.unbind(new)
		displaced.Destroy()
	}
	delete(r.items, old)
	r.items[new] = item
	for i, n := range r.names {
		if n == old {
			r.names[i] = new
			break
		}
	}
	if r.recent == old {
		r.recent = new
	}
	return nil
}

// Remove unbinds name and destroys the resource. Removing an unbound name
// is a no-op.
func (r *Registry[T]) Remove(name string) {
	item, ok := r.items[name]
	if !ok {
		return
	}
	r.unbind(name)
	item.Destroy()
}

// Retrieve unbinds name and returns the resource without destroying it;
// ownership moves to the caller. Returns a *NotFoundError when name is not
// bound.
func (r *Registry[T]) Retrieve(name string) (T, error) {
	item, ok := r.items[name]
	if !ok {
		var zero T
		return zero, &NotFoundError{Kind: r.namer.kind, Name: name}
	}
	r.unbind(name)
	return item, nil
}

// Each calls fn for every resource in insertion order. fn must not add or
// remove resources.
func (r *Registry[T]) Each(fn func(name string, item T)) {
	for _, name := range r.names {
		fn(name, r.items[name])
	}
}

// Clear destroys and unbinds every resource.
func (r *Registry[T]) Clear() {
	for _, name := range r.names {
		r.items[name].Destroy()
		delete(r.items, name)
	}
	r.names = r.names[:0]
	r.recent = ""
}

func (r *Registry[T]) unbind(name string) {
	delete(r.items, name)
	for i, n := range r.names {
		if n == name {
			r.names = append(r.names[:i], r.names[i+1:]...)
			break
		}
	}
	if r.recent == name {
		r.recent = ""
	}
}
