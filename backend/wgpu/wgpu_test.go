// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"errors"
	"strings"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"

	"github.com/gogpu/gfx/backend"
)

const testVertexWGSL = `
@vertex
fn vs_main() -> @builtin(position) vec4<f32> {
    return vec4<f32>(0.0, 0.0, 0.0, 1.0);
}
`

const testFragmentWGSL = `
@fragment
fn fs_main() -> @location(0) vec4<f32> {
    return vec4<f32>(1.0, 0.0, 0.0, 1.0);
}
`

// createNoopDevice creates a noop device and queue for testing.
// Returns the device, queue, and a cleanup function.
func createNoopDevice(t *testing.T) (hal.Device, hal.Queue, func()) {
	t.Helper()
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		t.Fatalf("Open failed: %v", err)
	}
	cleanup := func() {
		openDev.Device.Destroy()
		instance.Destroy()
	}
	return openDev.Device, openDev.Queue, cleanup
}

// newTestBackend returns an initialized backend on a shared noop device.
func newTestBackend(t *testing.T) *Backend {
	t.Helper()
	device, queue, cleanup := createNoopDevice(t)
	t.Cleanup(cleanup)

	b := NewWithDevice(device, queue)
	if err := b.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(b.Terminate)
	return b
}

// skipIfNagaIncomplete skips the test when naga lacks a feature the shader
// needs; the shader is then untestable rather than wrong.
func skipIfNagaIncomplete(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		return
	}
	msg := err.Error()
	if strings.Contains(msg, "not yet implemented") || strings.Contains(msg, "not supported") {
		t.Skipf("naga feature missing: %v", err)
	}
}

func TestBufferLifecycle(t *testing.T) {
	b := newTestBackend(t)

	id, err := b.CreateBuffer()
	if err != nil {
		t.Fatalf("CreateBuffer failed: %v", err)
	}
	if id == 0 {
		t.Fatal("expected non-zero buffer id")
	}
	if got := b.LiveBuffers(); got != 1 {
		t.Fatalf("LiveBuffers = %d, want 1", got)
	}

	data := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	if err := b.UploadBuffer(id, backend.VertexBuffer, data); err != nil {
		t.Fatalf("UploadBuffer failed: %v", err)
	}
	// A second upload reallocates at the new size.
	if err := b.UploadBuffer(id, backend.VertexBuffer, append(data, data...)); err != nil {
		t.Fatalf("UploadBuffer (realloc) failed: %v", err)
	}

	b.DeleteBuffer(id)
	if got := b.LiveBuffers(); got != 0 {
		t.Fatalf("LiveBuffers after delete = %d, want 0", got)
	}

	if err := b.UploadBuffer(id, backend.VertexBuffer, data); err == nil {
		t.Fatal("expected error uploading to deleted buffer")
	}
}

func TestProgramBuild(t *testing.T) {
	b := newTestBackend(t)

	prog, err := b.CreateProgram()
	if err != nil {
		t.Fatalf("CreateProgram failed: %v", err)
	}

	err = b.CompileAttach(prog, backend.VertexStage, testVertexWGSL)
	skipIfNagaIncomplete(t, err)
	if err != nil {
		t.Fatalf("vertex CompileAttach failed: %v", err)
	}
	if err := b.CompileAttach(prog, backend.FragmentStage, testFragmentWGSL); err != nil {
		t.Fatalf("fragment CompileAttach failed: %v", err)
	}
	if err := b.LinkProgram(prog); err != nil {
		t.Fatalf("LinkProgram failed: %v", err)
	}

	loc := b.UniformLocation(prog, "model")
	if loc < 0 {
		t.Fatalf("UniformLocation = %d, want >= 0", loc)
	}
	if again := b.UniformLocation(prog, "model"); again != loc {
		t.Errorf("UniformLocation not stable: %d then %d", loc, again)
	}
	if other := b.UniformLocation(prog, "view"); other == loc {
		t.Errorf("distinct names share location %d", loc)
	}

	b.DeleteProgram(prog)
	if got := b.LivePrograms(); got != 0 {
		t.Fatalf("LivePrograms after delete = %d, want 0", got)
	}
}

func TestCompileAttachBadSource(t *testing.T) {
	b := newTestBackend(t)

	prog, err := b.CreateProgram()
	if err != nil {
		t.Fatalf("CreateProgram failed: %v", err)
	}

	err = b.CompileAttach(prog, backend.VertexStage, "@vertex fn broken( {")
	if err == nil {
		t.Fatal("expected compile error")
	}
	var buildErr *backend.BuildError
	if !errors.As(err, &buildErr) {
		t.Fatalf("error type = %T, want *backend.BuildError", err)
	}
	if buildErr.Op != "compile" {
		t.Errorf("Op = %q, want compile", buildErr.Op)
	}
	if buildErr.Log == "" {
		t.Error("expected non-empty compile log")
	}
}

func TestLinkRequiresBothStages(t *testing.T) {
	b := newTestBackend(t)

	prog, err := b.CreateProgram()
	if err != nil {
		t.Fatalf("CreateProgram failed: %v", err)
	}
	compileErr := b.CompileAttach(prog, backend.VertexStage, testVertexWGSL)
	skipIfNagaIncomplete(t, compileErr)
	if compileErr != nil {
		t.Fatalf("CompileAttach failed: %v", compileErr)
	}

	err = b.LinkProgram(prog)
	var buildErr *backend.BuildError
	if !errors.As(err, &buildErr) {
		t.Fatalf("LinkProgram error = %v, want *backend.BuildError", err)
	}
	if buildErr.Op != "link" {
		t.Errorf("Op = %q, want link", buildErr.Op)
	}
}

func TestTextureUpload(t *testing.T) {
	b := newTestBackend(t)

	id, err := b.CreateTexture()
	if err != nil {
		t.Fatalf("CreateTexture failed: %v", err)
	}

	if err := b.UploadTexture(id, 2, 2, make([]byte, 7)); err == nil {
		t.Fatal("expected error for short pixel slice")
	}
	if err := b.UploadTexture(id, 2, 2, make([]byte, 16)); err != nil {
		t.Fatalf("UploadTexture failed: %v", err)
	}
	// Re-upload replaces the texture.
	if err := b.UploadTexture(id, 4, 4, make([]byte, 64)); err != nil {
		t.Fatalf("UploadTexture (resize) failed: %v", err)
	}

	b.DeleteTexture(id)
	if got := b.LiveTextures(); got != 0 {
		t.Fatalf("LiveTextures after delete = %d, want 0", got)
	}
}

func TestOpenWindowUnsupported(t *testing.T) {
	b := newTestBackend(t)

	if _, err := b.OpenWindow(backend.WindowOptions{}); !errors.Is(err, backend.ErrWindowingUnsupported) {
		t.Fatalf("OpenWindow error = %v, want ErrWindowingUnsupported", err)
	}
}

func TestTerminateReleasesObjects(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	b := NewWithDevice(device, queue)
	if err := b.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if _, err := b.CreateBuffer(); err != nil {
		t.Fatalf("CreateBuffer failed: %v", err)
	}
	if _, err := b.CreateTexture(); err != nil {
		t.Fatalf("CreateTexture failed: %v", err)
	}

	b.Terminate()
	if b.LiveBuffers() != 0 || b.LiveTextures() != 0 || b.LivePrograms() != 0 {
		t.Fatal("Terminate left live objects")
	}

	// A shared device survives Terminate; the backend can re-init.
	if err := b.Init(); err != nil {
		t.Fatalf("re-Init failed: %v", err)
	}
	b.Terminate()
}
