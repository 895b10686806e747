// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package wgpu implements a headless gfx backend on gogpu/wgpu. Buffers,
// textures, and shader modules are real HAL objects, and shader sources are
// WGSL compiled through naga, so resource lifecycles and shaders can be
// validated in CI without a display. The backend cannot open windows;
// OpenWindow returns ErrWindowingUnsupported.
//
// Importing the package registers the "wgpu" backend. It reports available
// only when a Vulkan-capable HAL backend is present.
package wgpu

import (
	"fmt"
	"sync"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
	types "github.com/gogpu/gputypes"

	// Import the Vulkan backend so it registers via init().
	_ "github.com/gogpu/wgpu/hal/vulkan"

	"github.com/gogpu/gfx/backend"
)

// Name is the identifier this backend registers under.
const Name = "wgpu"

func init() {
	backend.Register(Name, 50, func() backend.Backend { return New() }, func() bool {
		_, ok := hal.GetBackend(gputypes.BackendVulkan)
		return ok
	})
}

// program accumulates compiled shader modules until link.
type program struct {
	modules map[backend.ShaderStage]hal.ShaderModule
	linked  bool
	// uniform locations are resolved host-side per program.
	locations map[string]int32
	nextLoc   int32
}

// Backend is a headless backend.Backend on a HAL device.
type Backend struct {
	mu sync.Mutex

	instance hal.Instance
	device   hal.Device
	queue    hal.Queue
	// external devices are shared and must not be destroyed on Terminate.
	external    bool
	initialized bool
	start       time.Time

	nextID   uint32
	buffers  map[uint32]hal.Buffer
	textures map[uint32]hal.Texture
	programs map[uint32]*program
	// vertex arrays are host-side attribute tables; HAL has no VAO object.
	vertexArrays map[uint32][]vertexAttr

	boundVAO      uint32
	activeProgram uint32
	drawCalls     int
}

type vertexAttr struct {
	index, size    uint32
	stride, offset int
}

var _ backend.Backend = (*Backend)(nil)

// New creates an uninitialized backend that opens its own Vulkan device
// during Init.
func New() *Backend {
	return &Backend{
		buffers:      make(map[uint32]hal.Buffer),
		textures:     make(map[uint32]hal.Texture),
		programs:     make(map[uint32]*program),
		vertexArrays: make(map[uint32][]vertexAttr),
	}
}

// NewWithDevice creates a backend on a shared HAL device and queue, for
// example one owned by an embedding engine or a test fixture. Terminate
// releases the backend's objects but leaves the device alone.
func NewWithDevice(device hal.Device, queue hal.Queue) *Backend {
	b := New()
	b.device = device
	b.queue = queue
	b.external = true
	return b
}

// Name returns "wgpu".
func (b *Backend) Name() string { return Name }

// Init opens a HAL device unless one was supplied via NewWithDevice.
func (b *Backend) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.initialized {
		return nil
	}
	if !b.external {
		if err := b.openDevice(); err != nil {
			return err
		}
	}
	b.start = time.Now()
	b.initialized = true
	return nil
}

// openDevice creates a Vulkan instance and opens the first usable adapter,
// preferring discrete and integrated GPUs. Caller holds b.mu.
func (b *Backend) openDevice() error {
	halBackend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return fmt.Errorf("wgpu: %w: vulkan backend not registered", backend.ErrNoBackendAvailable)
	}
	instance, err := halBackend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return fmt.Errorf("wgpu: create instance: %w", err)
	}

	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return fmt.Errorf("wgpu: %w: no adapters", backend.ErrNoBackendAvailable)
	}
	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}

	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return fmt.Errorf("wgpu: open adapter: %w", err)
	}
	b.instance = instance
	b.device = openDev.Device
	b.queue = openDev.Queue
	return nil
}

// Terminate destroys all backend-owned objects and, unless the device was
// shared, the device and instance.
func (b *Backend) Terminate() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.initialized {
		return
	}

	for id, buf := range b.buffers {
		b.device.DestroyBuffer(buf)
		delete(b.buffers, id)
	}
	for id, tex := range b.textures {
		b.device.DestroyTexture(tex)
		delete(b.textures, id)
	}
	for id, p := range b.programs {
		for _, m := range p.modules {
			b.device.DestroyShaderModule(m)
		}
		delete(b.programs, id)
	}
	for id := range b.vertexArrays {
		delete(b.vertexArrays, id)
	}

	if !b.external {
		if b.device != nil {
			b.device.Destroy()
			b.device = nil
		}
		if b.instance != nil {
			b.instance.Destroy()
			b.instance = nil
		}
	}
	b.initialized = false
}

// allocID hands out ids from one sequence; caller holds b.mu.
func (b *Backend) allocID() uint32 {
	b.nextID++
	return b.nextID
}

// CreateBuffer creates an empty HAL buffer. Storage is allocated on the
// first UploadBuffer, once the size is known.
func (b *Backend) CreateBuffer() (uint32, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.initialized {
		return 0, backend.ErrNotInitialized
	}
	id := b.allocID()
	b.buffers[id] = nil
	return id, nil
}

// DeleteBuffer destroys the HAL buffer. Id 0 is ignored.
func (b *Backend) DeleteBuffer(id uint32) {
	if id == 0 {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if buf, ok := b.buffers[id]; ok {
		if buf != nil {
			b.device.DestroyBuffer(buf)
		}
		delete(b.buffers, id)
	}
}

// BindBuffer is a no-op; HAL buffers are passed explicitly, not bound.
func (b *Backend) BindBuffer(kind backend.BufferKind, id uint32) {}

func bufferUsage(kind backend.BufferKind) gputypes.BufferUsage {
	if kind == backend.IndexBuffer {
		return gputypes.BufferUsageIndex | gputypes.BufferUsageCopyDst
	}
	return gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst
}

// UploadBuffer allocates (or reallocates) the HAL buffer at the data size
// and writes data through the queue.
func (b *Backend) UploadBuffer(id uint32, kind backend.BufferKind, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	old, ok := b.buffers[id]
	if !ok {
		return fmt.Errorf("wgpu: upload to unknown buffer %d", id)
	}
	if old != nil {
		b.device.DestroyBuffer(old)
		b.buffers[id] = nil
	}
	buf, err := b.device.CreateBuffer(&hal.BufferDescriptor{
		Label: fmt.Sprintf("gfx-buffer-%d", id),
		Size:  uint64(len(data)),
		Usage: bufferUsage(kind),
	})
	if err != nil {
		return fmt.Errorf("wgpu: create buffer %d: %w", id, err)
	}
	b.queue.WriteBuffer(buf, 0, data)
	b.buffers[id] = buf
	return nil
}

// CreateVertexArray allocates a host-side attribute table.
func (b *Backend) CreateVertexArray() (uint32, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.initialized {
		return 0, backend.ErrNotInitialized
	}
	id := b.allocID()
	b.vertexArrays[id] = nil
	return id, nil
}

// DeleteVertexArray releases the attribute table. Id 0 is ignored.
func (b *Backend) DeleteVertexArray(id uint32) {
	if id == 0 {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.vertexArrays, id)
}

// BindVertexArray records the table that VertexLayout appends to.
func (b *Backend) BindVertexArray(id uint32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.boundVAO = id
}

// VertexLayout appends an attribute to the bound table.
func (b *Backend) VertexLayout(index, size uint32, stride, offset int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.vertexArrays[b.boundVAO]; !ok {
		return
	}
	b.vertexArrays[b.boundVAO] = append(b.vertexArrays[b.boundVAO],
		vertexAttr{index: index, size: size, stride: stride, offset: offset})
}

// CreateProgram allocates an empty program.
func (b *Backend) CreateProgram() (uint32, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.initialized {
		return 0, backend.ErrNotInitialized
	}
	id := b.allocID()
	b.programs[id] = &program{
		modules:   make(map[backend.ShaderStage]hal.ShaderModule),
		locations: make(map[string]int32),
	}
	return id, nil
}

// DeleteProgram destroys the program's shader modules. Id 0 is ignored.
func (b *Backend) DeleteProgram(id uint32) {
	if id == 0 {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if p, ok := b.programs[id]; ok {
		for _, m := range p.modules {
			b.device.DestroyShaderModule(m)
		}
		delete(b.programs, id)
	}
}

// CompileAttach compiles WGSL source through naga and creates a HAL shader
// module for the stage. Compile failures return a *BuildError carrying the
// naga diagnostic.
func (b *Backend) CompileAttach(prog uint32, stage backend.ShaderStage, source string) error {
	b.mu.Lock()
	p, ok := b.programs[prog]
	b.mu.Unlock()
	if !ok {
		return fmt.Errorf("wgpu: unknown program %d", prog)
	}

	spirvBytes, err := naga.Compile(source)
	if err != nil {
		return &backend.BuildError{Stage: stage, Op: "compile", Log: err.Error()}
	}
	// SPIR-V is little-endian 32-bit words.
	spirv := make([]uint32, len(spirvBytes)/4)
	for i := range spirv {
		spirv[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}

	module, err := b.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  fmt.Sprintf("gfx-program-%d-%s", prog, stage),
		Source: hal.ShaderSource{SPIRV: spirv},
	})
	if err != nil {
		return &backend.BuildError{Stage: stage, Op: "compile", Log: err.Error()}
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if prev, ok := p.modules[stage]; ok {
		b.device.DestroyShaderModule(prev)
	}
	p.modules[stage] = module
	return nil
}

// LinkProgram marks the program linked. Both pipeline stages must have
// compiled modules attached.
func (b *Backend) LinkProgram(id uint32) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	p, ok := b.programs[id]
	if !ok {
		return fmt.Errorf("wgpu: unknown program %d", id)
	}
	for _, stage := range []backend.ShaderStage{backend.VertexStage, backend.FragmentStage} {
		if _, ok := p.modules[stage]; !ok {
			return &backend.BuildError{
				Stage: stage,
				Op:    "link",
				Log:   "missing " + stage.String() + " stage module",
			}
		}
	}
	p.linked = true
	return nil
}

// UseProgram records the active program.
func (b *Backend) UseProgram(id uint32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.activeProgram = id
}

// UniformLocation resolves a stable per-program location for name; -1 when
// the program is unknown.
func (b *Backend) UniformLocation(prog uint32, name string) int32 {
	b.mu.Lock()
	defer b.mu.Unlock()
	p, ok := b.programs[prog]
	if !ok {
		return -1
	}
	if loc, ok := p.locations[name]; ok {
		return loc
	}
	loc := p.nextLoc
	p.nextLoc++
	p.locations[name] = loc
	return loc
}

// SetUniformMatrix4 is staged host-side; this backend records resources but
// does not run a raster pipeline.
func (b *Backend) SetUniformMatrix4(location int32, value *[16]float32) {}

// CreateTexture allocates a texture id. The HAL texture is created on the
// first UploadTexture, once the extent is known.
func (b *Backend) CreateTexture() (uint32, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.initialized {
		return 0, backend.ErrNotInitialized
	}
	id := b.allocID()
	b.textures[id] = nil
	return id, nil
}

// DeleteTexture destroys the HAL texture. Id 0 is ignored.
func (b *Backend) DeleteTexture(id uint32) {
	if id == 0 {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if tex, ok := b.textures[id]; ok {
		if tex != nil {
			b.device.DestroyTexture(tex)
		}
		delete(b.textures, id)
	}
}

// BindTexture is a no-op; HAL textures are passed explicitly, not bound.
func (b *Backend) BindTexture(id uint32) {}

// UploadTexture creates an RGBA8 HAL texture at the given extent and writes
// the pixels through the queue.
func (b *Backend) UploadTexture(id uint32, width, height int, rgba []byte) error {
	if len(rgba) != width*height*4 {
		return fmt.Errorf("wgpu: texture %d: want %d bytes, got %d", id, width*height*4, len(rgba))
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	old, ok := b.textures[id]
	if !ok {
		return fmt.Errorf("wgpu: upload to unknown texture %d", id)
	}
	if old != nil {
		b.device.DestroyTexture(old)
		b.textures[id] = nil
	}

	tex, err := b.device.CreateTexture(&hal.TextureDescriptor{
		Label: fmt.Sprintf("gfx-texture-%d", id),
		Size: hal.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     types.TextureDimension2D,
		Format:        types.TextureFormatRGBA8Unorm,
		Usage:         types.TextureUsageCopyDst | types.TextureUsageTextureBinding,
	})
	if err != nil {
		return fmt.Errorf("wgpu: create texture %d: %w", id, err)
	}

	b.queue.WriteTexture(
		&hal.ImageCopyTexture{
			Texture:  tex,
			MipLevel: 0,
			Origin:   hal.Origin3D{},
			Aspect:   types.TextureAspectAll,
		},
		rgba,
		&hal.ImageDataLayout{
			Offset:       0,
			BytesPerRow:  uint32(width * 4),
			RowsPerImage: uint32(height),
		},
		&hal.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
	)
	b.textures[id] = tex
	return nil
}

// Clear is a no-op; there is no surface to clear.
func (b *Backend) Clear(r, g, bl, a float32) {}

// Viewport is a no-op.
func (b *Backend) Viewport(x, y, width, height int) {}

// DrawIndexed counts the call. Draws need a surface, which this backend
// does not have.
func (b *Backend) DrawIndexed(count int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.drawCalls++
}

// OpenWindow always fails; the backend is headless.
func (b *Backend) OpenWindow(opts backend.WindowOptions) (backend.Window, error) {
	return nil, backend.ErrWindowingUnsupported
}

// PollEvents is a no-op; there are no windows.
func (b *Backend) PollEvents() {}

// Time reports seconds since Init.
func (b *Backend) Time() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.start.IsZero() {
		return 0
	}
	return time.Since(b.start).Seconds()
}

// LiveBuffers reports the number of buffer ids currently allocated.
func (b *Backend) LiveBuffers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.buffers)
}

// LiveTextures reports the number of texture ids currently allocated.
func (b *Backend) LiveTextures() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.textures)
}

// LivePrograms reports the number of program ids currently allocated.
func (b *Backend) LivePrograms() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.programs)
}
