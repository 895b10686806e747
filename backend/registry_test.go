// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package backend

import (
	"errors"
	"testing"
)

// fakeBackend is the minimal Backend for registry tests.
type fakeBackend struct {
	Backend
	name string
}

func (f *fakeBackend) Name() string { return f.name }

func register(t *testing.T, name string, priority int, available func() bool) {
	t.Helper()
	Register(name, priority, func() Backend { return &fakeBackend{name: name} }, available)
	t.Cleanup(func() { Unregister(name) })
}

func TestRegisterAndGet(t *testing.T) {
	register(t, "test-a", 10, nil)

	if !Registered("test-a") {
		t.Fatal("expected test-a to be registered")
	}

	b, err := Get("test-a")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if b.Name() != "test-a" {
		t.Errorf("Name = %q, want test-a", b.Name())
	}
}

func TestGetUnknown(t *testing.T) {
	_, err := Get("no-such-backend")
	var nrErr *NotRegisteredError
	if !errors.As(err, &nrErr) {
		t.Fatalf("error = %v, want *NotRegisteredError", err)
	}
	if nrErr.Name != "no-such-backend" {
		t.Errorf("Name = %q", nrErr.Name)
	}
}

func TestListOrdersByPriority(t *testing.T) {
	register(t, "test-low", 1, nil)
	register(t, "test-high", 99, nil)

	names := List()
	lowIdx, highIdx := -1, -1
	for i, n := range names {
		switch n {
		case "test-low":
			lowIdx = i
		case "test-high":
			highIdx = i
		}
	}
	if lowIdx < 0 || highIdx < 0 {
		t.Fatalf("List missing test entries: %v", names)
	}
	if highIdx > lowIdx {
		t.Errorf("priority order wrong: %v", names)
	}
}

func TestAvailableFiltersUnavailable(t *testing.T) {
	register(t, "test-off", 95, func() bool { return false })
	register(t, "test-on", 90, func() bool { return true })

	for _, n := range Available() {
		if n == "test-off" {
			t.Fatal("unavailable backend listed in Available")
		}
	}

	b, err := Default()
	if err != nil {
		t.Fatalf("Default failed: %v", err)
	}
	if b.Name() == "test-off" {
		t.Error("Default picked an unavailable backend")
	}
}

func TestRegisterReplaces(t *testing.T) {
	register(t, "test-dup", 5, nil)
	Register("test-dup", 7, func() Backend { return &fakeBackend{name: "test-dup-v2"} }, nil)

	b, err := Get("test-dup")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if b.Name() != "test-dup-v2" {
		t.Errorf("Name = %q, want replacement instance", b.Name())
	}
}

func TestBuildErrorMessage(t *testing.T) {
	err := &BuildError{Stage: FragmentStage, Op: "compile", Log: "0:3: syntax error"}
	want := "backend: shader compile failed (fragment stage): 0:3: syntax error"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
