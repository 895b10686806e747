// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gfx

import (
	"testing"

	"github.com/gogpu/gfx/backend/headless"
)

// newTestContext returns a Context on a fresh initialized headless backend.
func newTestContext(t *testing.T) (*Context, *headless.Backend) {
	t.Helper()
	b := headless.New()
	if err := b.Init(); err != nil {
		t.Fatalf("headless Init failed: %v", err)
	}
	t.Cleanup(b.Terminate)
	return &Context{Backend: b, Resources: NewResources(), Log: Logger()}, b
}
