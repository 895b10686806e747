// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gfx

import (
	"image"
	"os"

	// Decoders for the common texture file formats.
	_ "image/jpeg"
	_ "image/png"

	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/gfx/backend"
)

// Texture is a 2D RGBA texture with explicit ownership.
type Texture struct {
	handle Handle
	b      backend.Backend
	width  int
	height int
}

// NewTexture allocates an empty backend texture. The returned Texture owns
// it; upload pixels with SetImage or SetPixels.
func NewTexture(ctx *Context) (*Texture, error) {
	id, err := ctx.Backend.CreateTexture()
	if err != nil {
		return nil, err
	}
	return &Texture{handle: NewHandle(id, true), b: ctx.Backend}, nil
}

// LoadTexture reads an image file (PNG or JPEG) and uploads it. Read and
// decode failures return an *IOError.
func LoadTexture(ctx *Context, path string) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &IOError{Path: path, Err: err}
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, &IOError{Path: path, Err: err}
	}

	t, err := NewTexture(ctx)
	if err != nil {
		return nil, err
	}
	if err := t.SetImage(img); err != nil {
		t.Destroy()
		return nil, err
	}
	return t, nil
}

// WrapTexture wraps an existing backend texture id. When id is zero a new
// texture is allocated and owned regardless of owned.
func WrapTexture(ctx *Context, id uint32, owned bool) (*Texture, error) {
	if id == 0 {
		return NewTexture(ctx)
	}
	return &Texture{handle: NewHandle(id, owned), b: ctx.Backend}, nil
}

// ID returns the backend texture id.
func (t *Texture) ID() uint32 { return t.handle.ID() }

// Owned reports whether this Texture deletes the backend object on Destroy.
func (t *Texture) Owned() bool { return t.handle.Owned() }

// Size reports the dimensions of the last uploaded image, in pixels.
func (t *Texture) Size() (width, height int) { return t.width, t.height }

// Bind binds the texture.
func (t *Texture) Bind() { t.b.BindTexture(t.handle.ID()) }

// SetImage converts img to tightly packed RGBA and uploads it.
func (t *Texture) SetImage(img image.Image) error {
	bounds := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	if !ok || bounds.Min != (image.Point{}) {
		rgba = image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		xdraw.Draw(rgba, rgba.Bounds(), img, bounds.Min, xdraw.Src)
	}
	return t.SetPixels(rgba.Rect.Dx(), rgba.Rect.Dy(), rgba.Pix)
}

// SetPixels uploads tightly packed RGBA pixels.
func (t *Texture) SetPixels(width, height int, rgba []byte) error {
	if err := t.b.UploadTexture(t.handle.ID(), width, height, rgba); err != nil {
		return err
	}
	t.width, t.height = width, height
	return nil
}

// Transfer moves ownership of the backend object to a new Texture sharing
// the same id. The receiver keeps the id but no longer owns it.
func (t *Texture) Transfer() *Texture {
	out := *t
	out.handle = t.handle.Transfer()
	return &out
}

// Destroy deletes the backend texture if owned. Safe to call more than
// once.
func (t *Texture) Destroy() {
	t.handle.Release(t.b.DeleteTexture)
	t.width, t.height = 0, 0
}
