// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package backend defines the graphics backend capability surface consumed
// by gfx: object lifecycle for buffers, vertex arrays, shader programs and
// textures, data upload and vertex layout, shader compilation and linking
// with error logs, indexed drawing, and window management with typed input
// events.
//
// Backends register themselves via Register, typically from an init
// function in their own package:
//
//	import _ "github.com/gogpu/gfx/backend/gl"       // GLFW + OpenGL
//	import _ "github.com/gogpu/gfx/backend/headless" // in-memory, for tests
//
// Selection is by name (Get) or by priority among available backends
// (Default). The gl backend carries the highest priority, the headless
// backend the lowest.
package backend
