// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package backend

import (
	"sort"
	"sync"
)

// Factory creates a new backend instance. Instances are not initialized;
// the caller invokes Init.
type Factory func() Backend

// entry is one registered backend.
type entry struct {
	name      string
	priority  int
	factory   Factory
	available func() bool
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]*entry)
)

// Register registers a backend factory under name. Higher priority wins
// during Default selection. Standard priorities:
//
//	100: windowed GPU backends (gl)
//	 50: headless GPU backends (wgpu)
//	 10: in-memory backends (headless)
//
// If available is nil the backend is assumed always available. Registering
// a name that already exists replaces the previous entry. Register is
// typically called from init functions in backend packages.
func Register(name string, priority int, factory Factory, available func() bool) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if available == nil {
		available = func() bool { return true }
	}
	registry[name] = &entry{
		name:      name,
		priority:  priority,
		factory:   factory,
		available: available,
	}
}

// Unregister removes a backend from the registry. Useful for testing.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(registry, name)
}

// Registered reports whether a backend with the given name is registered.
func Registered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := registry[name]
	return ok
}

// List returns all registered backend names sorted by priority
// (highest first).
func List() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return sortedNames(false)
}

// Available returns the names of available backends sorted by priority.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return sortedNames(true)
}

// Get returns a new instance of the named backend, or a
// *NotRegisteredError if no such backend exists.
func Get(name string) (Backend, error) {
	registryMu.RLock()
	e, ok := registry[name]
	registryMu.RUnlock()

	if !ok {
		return nil, &NotRegisteredError{Name: name}
	}
	return e.factory(), nil
}

// Default returns a new instance of the best available backend, or
// ErrNoBackendAvailable when nothing is registered or available.
func Default() (Backend, error) {
	for _, name := range Available() {
		b, err := Get(name)
		if err == nil && b != nil {
			return b, nil
		}
	}
	return nil, ErrNoBackendAvailable
}

// sortedNames returns backend names sorted by priority, highest first.
// Caller holds registryMu.
func sortedNames(onlyAvailable bool) []string {
	entries := make([]*entry, 0, len(registry))
	for _, e := range registry {
		if onlyAvailable && !e.available() {
			continue
		}
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].priority != entries[j].priority {
			return entries[i].priority > entries[j].priority
		}
		return entries[i].name < entries[j].name
	})

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.name
	}
	return names
}

// NotRegisteredError indicates a named backend is not registered.
type NotRegisteredError struct {
	Name string
}

func (e *NotRegisteredError) Error() string {
	return "backend: not registered: " + e.Name
}
