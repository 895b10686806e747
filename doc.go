// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package gfx manages windows and the lifecycle of GPU resources.
//
// It layers named, owning registries over a pluggable graphics backend.
// Buffers, vertex arrays, shader programs, textures, meshes, cameras, and
// windows are created through an Application and live in per-kind
// registries that destroy whatever they own when removed.
//
// A minimal program:
//
//	app, err := gfx.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer app.Close()
//
//	win, _, err := app.NewWindow(gfx.NewWindowConfig().WithTitle("demo"), "main")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	win.OnRender = func(w *gfx.Window, dt float64) {
//	    // draw
//	}
//	app.Run()
//
// Backends register themselves on import; see the backend subpackages.
package gfx
