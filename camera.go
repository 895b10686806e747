// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gfx

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/gfx/backend"
)

// pitchLimit keeps the camera from flipping over the vertical axis.
const pitchLimit = 89.0

// Camera is a free-look fly camera. Yaw and pitch are in degrees; the
// derived front, right, and up vectors are recomputed whenever the angles
// change.
type Camera struct {
	position mgl32.Vec3
	front    mgl32.Vec3
	right    mgl32.Vec3
	up       mgl32.Vec3
	worldUp  mgl32.Vec3

	yaw   float32
	pitch float32

	moveSpeed float32
	turnSpeed float32
}

// NewCamera creates a camera at position looking along the direction given
// by yaw and pitch. moveSpeed is in world units per second, turnSpeed in
// degrees per cursor unit.
func NewCamera(position, worldUp mgl32.Vec3, yaw, pitch, moveSpeed, turnSpeed float32) *Camera {
	c := &Camera{
		position:  position,
		worldUp:   worldUp,
		yaw:       yaw,
		pitch:     pitch,
		moveSpeed: moveSpeed,
		turnSpeed: turnSpeed,
	}
	c.update()
	return c
}

// update recomputes the basis vectors from yaw and pitch.
func (c *Camera) update() {
	yaw := float64(mgl32.DegToRad(c.yaw))
	pitch := float64(mgl32.DegToRad(c.pitch))
	c.front = mgl32.Vec3{
		float32(math.Cos(yaw) * math.Cos(pitch)),
		float32(math.Sin(pitch)),
		float32(math.Sin(yaw) * math.Cos(pitch)),
	}.Normalize()
	c.right = c.front.Cross(c.worldUp).Normalize()
	c.up = c.right.Cross(c.front).Normalize()
}

// ViewMatrix returns the camera's view matrix.
func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.position, c.position.Add(c.front), c.up)
}

// Position returns the camera position.
func (c *Camera) Position() mgl32.Vec3 { return c.position }

// SetPosition moves the camera.
func (c *Camera) SetPosition(p mgl32.Vec3) { c.position = p }

// Angles returns the yaw and pitch in degrees.
func (c *Camera) Angles() (yaw, pitch float32) { return c.yaw, c.pitch }

// OnKeys moves the camera along its basis vectors for the keys held down
// in win. W and S move along front, A and D along right. dt is the frame
// delta in seconds.
func (c *Camera) OnKeys(win *Window, dt float64) {
	velocity := c.moveSpeed * float32(dt)
	if win.KeyPressed(backend.KeyW) {
		c.position = c.position.Add(c.front.Mul(velocity))
	}
	if win.KeyPressed(backend.KeyS) {
		c.position = c.position.Sub(c.front.Mul(velocity))
	}
	if win.KeyPressed(backend.KeyA) {
		c.position = c.position.Sub(c.right.Mul(velocity))
	}
	if win.KeyPressed(backend.KeyD) {
		c.position = c.position.Add(c.right.Mul(velocity))
	}
}

// OnCursor turns the camera by a cursor delta, clamping pitch so the view
// never flips.
func (c *Camera) OnCursor(dx, dy float64) {
	c.yaw += float32(dx) * c.turnSpeed
	c.pitch += float32(dy) * c.turnSpeed

	if c.pitch > pitchLimit {
		c.pitch = pitchLimit
	} else if c.pitch < -pitchLimit {
		c.pitch = -pitchLimit
	}
	c.update()
}

// Destroy is a no-op; cameras hold no backend objects. It exists so
// cameras can live in a Registry.
func (c *Camera) Destroy() {}
