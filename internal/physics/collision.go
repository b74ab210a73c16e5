package physics

import (
	"terrastream/internal/geom"
)

// Overlaps reports whether two boxes intersect with positive volume.
// Touching faces do not count.
func Overlaps(a, b geom.AABB) bool {
	return a.Min.X() < b.Max.X() && a.Max.X() > b.Min.X() &&
		a.Min.Y() < b.Max.Y() && a.Max.Y() > b.Min.Y() &&
		a.Min.Z() < b.Max.Z() && a.Max.Z() > b.Min.Z()
}

// Collides checks if box intersects any of the colliders.
func Collides(box geom.AABB, colliders []geom.AABB) bool {
	for _, c := range colliders {
		if Overlaps(box, c) {
			return true
		}
	}
	return false
}

// PushUp returns how far box has to rise to rest on top of every collider it
// overlaps. It is 0 when nothing overlaps.
func PushUp(box geom.AABB, colliders []geom.AABB) float32 {
	var lift float32
	for _, c := range colliders {
		if !Overlaps(box, c) {
			continue
		}
		if d := c.Max.Y() - box.Min.Y(); d > lift {
			lift = d
		}
	}
	return lift
}
