// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gfx

import (
	"strconv"
	"sync/atomic"
)

// Per-kind counters for generated resource names. The counters live for the
// whole process and are never reset, so a generated name is never reissued
// even after the resource (or the whole registry) is gone.
var (
	bufferNameCt      atomic.Uint64
	vertexArrayNameCt atomic.Uint64
	cameraNameCt      atomic.Uint64
	meshNameCt        atomic.Uint64
	shaderNameCt      atomic.Uint64
	textureNameCt     atomic.Uint64
	windowNameCt      atomic.Uint64
)

// namer generates registry names from a hint. Kind is the noun used in
// error messages, prefix the stem of generated names.
type namer struct {
	kind    string
	prefix  string
	counter *atomic.Uint64
}

var (
	bufferNamer      = namer{"buffer", "generated-bo-", &bufferNameCt}
	vertexArrayNamer = namer{"vertex array", "generated-vao-", &vertexArrayNameCt}
	cameraNamer      = namer{"camera", "generated-camera-", &cameraNameCt}
	meshNamer        = namer{"mesh", "generated-mesh-", &meshNameCt}
	shaderNamer      = namer{"shader", "generated-shader-", &shaderNameCt}
	textureNamer     = namer{"texture", "generated-texture-", &textureNameCt}
	windowNamer      = namer{"window", "Generated Window ", &windowNameCt}
)

// next returns hint when it is non-empty and free, otherwise the first free
// name of the form hint+prefix+N. An empty hint always gets a generated
// name.
func (n namer) next(taken func(string) bool, hint string) string {
	if hint != "" && !taken(hint) {
		return hint
	}
	for {
		name := hint + n.prefix + strconv.FormatUint(n.counter.Add(1)-1, 10)
		if !taken(name) {
			return name
		}
	}
}
