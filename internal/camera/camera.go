package camera

import (
	"terrastream/internal/geom"

	"github.com/go-gl/mathgl/mgl32"
)

var worldUp = mgl32.Vec3{0, 1, 0}

// Camera handles the view and projection matrices and the derived frustum.
type Camera struct {
	Position  mgl32.Vec3
	Direction mgl32.Vec3

	AspectRatio float32
	FOV         float32
	NearPlane   float32
	FarPlane    float32

	frustum geom.Frustum
}

// New creates a camera at the origin looking along -Z.
func New(width, height int) *Camera {
	c := &Camera{
		Direction:   mgl32.Vec3{0, 0, -1},
		AspectRatio: float32(width) / float32(height),
		FOV:         70.0,
		NearPlane:   0.1,
		FarPlane:    1000.0,
	}
	c.Update(0)
	return c
}

// SetViewport updates the aspect ratio and the frustum.
func (c *Camera) SetViewport(width, height int) {
	if height <= 0 {
		return
	}
	c.AspectRatio = float32(width) / float32(height)
	c.Update(0)
}

// Update recomputes the cached frustum from the current position and direction.
func (c *Camera) Update(delta float64) {
	c.frustum = geom.FrustumFromMatrix(c.Projection().Mul4(c.View()))
}

// Projection returns the perspective matrix.
func (c *Camera) Projection() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), c.AspectRatio, c.NearPlane, c.FarPlane)
}

// View returns the full camera transform.
func (c *Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.direction()), c.up())
}

// NormalizedView returns the camera transform with translation stripped, used
// for geometry that stays centered on the viewer such as the sky.
func (c *Camera) NormalizedView() mgl32.Mat4 {
	return mgl32.LookAtV(mgl32.Vec3{}, c.direction(), c.up())
}

// Frustum returns the frustum computed by the last Update.
func (c *Camera) Frustum() geom.Frustum {
	return c.frustum
}

// Snapshot captures the camera state for one frame.
func (c *Camera) Snapshot(submerged bool) *Snapshot {
	return &Snapshot{
		Position:       c.Position,
		Direction:      c.direction(),
		View:           c.View(),
		NormalizedView: c.NormalizedView(),
		Projection:     c.Projection(),
		Frustum:        c.frustum,
		AspectRatio:    c.AspectRatio,
		Submerged:      submerged,
	}
}

func (c *Camera) direction() mgl32.Vec3 {
	if c.Direction.Len() == 0 {
		return mgl32.Vec3{0, 0, -1}
	}
	return c.Direction.Normalize()
}

// up avoids a degenerate basis when looking straight up or down.
func (c *Camera) up() mgl32.Vec3 {
	d := c.direction()
	if abs32(d.Dot(worldUp)) > 0.999 {
		return mgl32.Vec3{0, 0, -1}
	}
	return worldUp
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
