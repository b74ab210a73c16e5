package physics

import (
	"testing"

	"terrastream/internal/geom"

	"github.com/go-gl/mathgl/mgl32"
)

func block(x, y, z float32) geom.AABB {
	return geom.AABB{Min: mgl32.Vec3{x, y, z}, Max: mgl32.Vec3{x + 1, y + 1, z + 1}}
}

func playerBox(x, y, z float32) geom.AABB {
	return geom.AABB{Min: mgl32.Vec3{x - 0.3, y, z - 0.3}, Max: mgl32.Vec3{x + 0.3, y + 1.8, z + 0.3}}
}

func TestCollides(t *testing.T) {
	ground := []geom.AABB{block(0, 9, 0), block(1, 10, 0)}

	if Collides(playerBox(0.5, 10, 0.5), ground) {
		t.Fatal("standing on a block is not a collision")
	}
	if !Collides(playerBox(0.5, 9.5, 0.5), ground) {
		t.Fatal("sunk into the ground should collide")
	}
	if !Collides(playerBox(0.9, 10, 0.5), ground) {
		t.Fatal("walking into a step should collide")
	}
	if Collides(playerBox(0.5, 10, 0.5), nil) {
		t.Fatal("no colliders, no collision")
	}
}

func TestPushUp(t *testing.T) {
	ground := []geom.AABB{block(0, 9, 0), block(1, 10, 0)}

	if got := PushUp(playerBox(0.5, 9.75, 0.5), ground); got != 0.25 {
		t.Fatalf("lift: got %v, want 0.25", got)
	}
	// Straddling both columns rests on the higher one.
	if got := PushUp(playerBox(1, 9.5, 0.5), ground); got != 1.5 {
		t.Fatalf("lift across columns: got %v, want 1.5", got)
	}
	if got := PushUp(playerBox(0.5, 12, 0.5), ground); got != 0 {
		t.Fatalf("airborne lift: got %v", got)
	}
}

func BenchmarkCollides(b *testing.B) {
	colliders := make([]geom.AABB, 0, 9)
	for x := float32(-1); x <= 1; x++ {
		for z := float32(-1); z <= 1; z++ {
			colliders = append(colliders, block(x, 64, z))
		}
	}
	box := playerBox(0.5, 65.2, 0.5)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Collides(box, colliders)
	}
}
