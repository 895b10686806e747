// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gfx

import (
	"errors"
	"fmt"
)

var (
	// ErrRegistryEmpty is returned by Registry.Recent when the registry
	// holds no resources.
	ErrRegistryEmpty = errors.New("gfx: registry is empty")

	// ErrApplicationExists is returned by New when an Application has
	// already been created in this process.
	ErrApplicationExists = errors.New("gfx: an application instance already exists")

	// ErrNoVertexArray is returned by Mesh.Render when the mesh has no
	// vertex array to bind.
	ErrNoVertexArray = errors.New("gfx: mesh has no vertex array")
)

// NotFoundError indicates a registry lookup for a name that is not present.
type NotFoundError struct {
	Kind string // resource kind, e.g. "shader"
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("gfx: no such %s: %q", e.Kind, e.Name)
}

// IndexOutOfRangeError indicates an out-of-range positional registry access.
type IndexOutOfRangeError struct {
	Kind  string
	Index int
	Len   int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("gfx: %s index %d out of range (have %d)", e.Kind, e.Index, e.Len)
}

// BackendInitError indicates the graphics backend failed to initialize.
type BackendInitError struct {
	Backend string
	Err     error
}

func (e *BackendInitError) Error() string {
	return fmt.Sprintf("gfx: backend %q init failed: %v", e.Backend, e.Err)
}

func (e *BackendInitError) Unwrap() error { return e.Err }

// IOError indicates a failed file read while loading a resource.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("gfx: read %s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }
