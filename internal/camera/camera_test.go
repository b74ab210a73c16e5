package camera

import (
	"math"
	"testing"

	"terrastream/internal/geom"

	"github.com/go-gl/mathgl/mgl32"
)

func near(a, b mgl32.Vec3) bool {
	return a.ApproxEqualThreshold(b, 1e-4)
}

func TestNormalizedViewDropsTranslation(t *testing.T) {
	c := New(800, 600)
	c.Position = mgl32.Vec3{100, 50, -30}
	c.Direction = mgl32.Vec3{1, 0, 0}

	nv := c.NormalizedView()
	if nv[12] != 0 || nv[13] != 0 || nv[14] != 0 {
		t.Fatalf("normalized view keeps translation: %v", nv)
	}
	full := c.View()
	if full.Mat3() != nv.Mat3() {
		t.Fatal("rotation part differs between full and normalized view")
	}
}

func TestUpdateRefreshesFrustum(t *testing.T) {
	c := New(800, 600)
	box := geom.NewAABB(mgl32.Vec3{0, 0, -20}, mgl32.Vec3{1, 1, 1})
	if !c.Frustum().Intersects(box) {
		t.Fatal("box ahead should be visible")
	}

	c.Direction = mgl32.Vec3{0, 0, 1}
	if !c.Frustum().Intersects(box) {
		t.Fatal("frustum must not change before Update")
	}
	c.Update(0.016)
	if c.Frustum().Intersects(box) {
		t.Fatal("box behind should be culled after Update")
	}
}

func TestSetViewportRefreshesFrustum(t *testing.T) {
	c := New(600, 600)
	side := geom.NewAABB(mgl32.Vec3{30, 0, -20}, mgl32.Vec3{1, 1, 1})
	if c.Frustum().Intersects(side) {
		t.Fatal("box off to the side should be culled with a square viewport")
	}

	c.SetViewport(2400, 600)
	if !c.Frustum().Intersects(side) {
		t.Fatal("frustum not widened by SetViewport")
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	c := New(800, 600)
	c.Position = mgl32.Vec3{1, 2, 3}
	snap := c.Snapshot(true)

	c.Position = mgl32.Vec3{9, 9, 9}
	if snap.Position != (mgl32.Vec3{1, 2, 3}) {
		t.Fatalf("snapshot followed camera: %v", snap.Position)
	}
	if !snap.Submerged {
		t.Fatal("submerged flag lost")
	}
}

func TestStraightDownDoesNotDegenerate(t *testing.T) {
	c := New(800, 600)
	c.Direction = mgl32.Vec3{0, -1, 0}
	v := c.View()
	for i, f := range v {
		if math.IsNaN(float64(f)) {
			t.Fatalf("NaN at %d in %v", i, v)
		}
	}
}

func TestOrbit(t *testing.T) {
	c := New(800, 600)
	spawn := mgl32.Vec3{10, 40, 10}

	Orbit(c, spawn, spawn, 0)
	if want := (mgl32.Vec3{10, 72, 42}); !near(c.Position, want) {
		t.Fatalf("position at clock 0: got %v, want %v", c.Position, want)
	}
	// Player at spawn is within follow range: look at the player.
	if want := spawn.Sub(c.Position).Normalize(); !near(c.Direction, want) {
		t.Fatalf("direction: got %v, want %v", c.Direction, want)
	}

	far := mgl32.Vec3{1000, 40, 1000}
	Orbit(c, spawn, far, math.Pi)
	if want := spawn.Sub(c.Position).Normalize(); !near(c.Direction, want) {
		t.Fatalf("far player: got %v, want spawn-facing %v", c.Direction, want)
	}
}
