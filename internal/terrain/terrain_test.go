package terrain

import (
	"math"
	"testing"

	"terrastream/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

func TestHeightIsDeterministicAndBounded(t *testing.T) {
	a := NewHeightfield(42, 32)
	b := NewHeightfield(42, 32)
	for x := -300; x < 300; x += 7 {
		for z := -300; z < 300; z += 11 {
			h := a.HeightAt(x, z)
			if h != b.HeightAt(x, z) {
				t.Fatalf("height differs for equal seeds at (%d,%d)", x, z)
			}
			if h < 1 || h > world.ChunkSizeY-1 {
				t.Fatalf("height %d out of range at (%d,%d)", h, x, z)
			}
		}
	}
}

func TestIsLiquidAt(t *testing.T) {
	field := NewHeightfield(3, 200) // everything is under water
	h := field.HeightAt(5, 5)
	if !field.IsLiquidAt(mgl32.Vec3{5.5, float32(h) + 0.5, 5.5}) {
		t.Fatal("point above ground below sea level should be liquid")
	}
	if field.IsLiquidAt(mgl32.Vec3{5.5, float32(h) - 0.5, 5.5}) {
		t.Fatal("ground is not liquid")
	}
	if field.IsLiquidAt(mgl32.Vec3{5.5, 200.5, 5.5}) {
		t.Fatal("air above the sea is not liquid")
	}
}

func TestSpawnPointIsDry(t *testing.T) {
	field := NewHeightfield(1337, 32)
	p := field.SpawnPoint()
	if field.IsLiquidAt(p) {
		t.Fatalf("spawn point %v is under water", p)
	}
}

func checkVertices(t *testing.T, phase world.RenderPhase, verts []float32, coord world.ChunkCoord) {
	t.Helper()
	if len(verts)%(world.FloatsPerVertex*3) != 0 {
		t.Fatalf("%v: %d floats is not whole triangles", phase, len(verts))
	}
	minX := float32(coord.X * world.ChunkSizeX)
	minZ := float32(coord.Z * world.ChunkSizeZ)
	for i := 0; i < len(verts); i += world.FloatsPerVertex {
		x, z := verts[i], verts[i+2]
		if x < minX || x > minX+world.ChunkSizeX || z < minZ || z > minZ+world.ChunkSizeZ {
			t.Fatalf("%v: vertex (%v,%v) outside chunk %v", phase, x, z, coord)
		}
		n := mgl32.Vec3{verts[i+3], verts[i+4], verts[i+5]}
		if math.Abs(float64(n.Len())-1) > 1e-4 {
			t.Fatalf("%v: normal %v not unit length", phase, n)
		}
	}
}

func TestMeshLayout(t *testing.T) {
	field := NewHeightfield(7, 40)
	m := NewMesher(field)
	for _, coord := range []world.ChunkCoord{{X: 0}, {X: -3, Z: 2}, {X: 5, Z: -8}} {
		data, err := m.Mesh(coord)
		if err != nil {
			t.Fatalf("Mesh(%v): %v", coord, err)
		}
		// At least one top face per column.
		if got := data.TriangleCount(world.PhaseOpaque); got < 2*world.ChunkSizeX*world.ChunkSizeZ {
			t.Fatalf("%v: only %d opaque triangles", coord, got)
		}
		for p := world.PhaseOpaque; p < world.NumPhases; p++ {
			checkVertices(t, p, data.Vertices[p], coord)
		}
	}
}

func TestMeshWaterPhase(t *testing.T) {
	flooded := NewMesher(NewHeightfield(7, 250))
	data, _ := flooded.Mesh(world.ChunkCoord{})
	if got := data.TriangleCount(world.PhaseWaterAndIce); got != 2*world.ChunkSizeX*world.ChunkSizeZ {
		t.Fatalf("flooded chunk water triangles: got %d", got)
	}
	if data.TriangleCount(world.PhaseBillboardAndTranslucent) != 0 {
		t.Fatal("flora under water")
	}

	dry := NewMesher(NewHeightfield(7, 0))
	data, _ = dry.Mesh(world.ChunkCoord{})
	if data.TriangleCount(world.PhaseWaterAndIce) != 0 {
		t.Fatal("dry chunk has water")
	}
}

func TestQuadNormalFollowsWinding(t *testing.T) {
	verts := quad(nil,
		mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 1, 1},
		mgl32.Vec3{1, 1, 1}, mgl32.Vec3{1, 1, 0}, colorGrass)
	if verts[4] != 1 {
		t.Fatalf("top normal: (%v,%v,%v)", verts[3], verts[4], verts[5])
	}
	if len(verts) != 6*world.FloatsPerVertex {
		t.Fatalf("quad floats: %d", len(verts))
	}
}

func TestFloraIsDoubleSided(t *testing.T) {
	verts := cross(nil, 0, 10, 0)
	if got := len(verts) / (world.FloatsPerVertex * 3); got != 8 {
		t.Fatalf("flora triangles: got %d, want 8", got)
	}
}

func BenchmarkMesh(b *testing.B) {
	m := NewMesher(NewHeightfield(1, 32))
	for i := 0; i < b.N; i++ {
		_, _ = m.Mesh(world.ChunkCoord{X: i % 16, Z: i / 16})
	}
}
