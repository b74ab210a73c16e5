package camera

import (
	"terrastream/internal/geom"

	"github.com/go-gl/mathgl/mgl32"
)

// Snapshot is an immutable per-frame copy of the active camera. The render
// pipeline reads only the snapshot so camera changes mid-frame cannot leak
// into later phases.
type Snapshot struct {
	Position       mgl32.Vec3
	Direction      mgl32.Vec3
	View           mgl32.Mat4
	NormalizedView mgl32.Mat4
	Projection     mgl32.Mat4
	Frustum        geom.Frustum
	AspectRatio    float32
	// Submerged is set when the viewpoint is inside a liquid block.
	Submerged bool
}

// IsVisible tests a bounding volume against the snapshot frustum.
func (s *Snapshot) IsVisible(box geom.AABB) bool {
	return s.Frustum.Intersects(box)
}

// DistanceSq returns the squared distance from the camera to the box center.
func (s *Snapshot) DistanceSq(box geom.AABB) float32 {
	return box.DistanceSq(s.Position)
}
