package game

import (
	"bufio"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"terrastream/internal/camera"
	"terrastream/internal/geom"
	"terrastream/internal/profiling"
	"terrastream/internal/render"
	"terrastream/internal/world"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/klauspost/compress/zstd"
)

func nearVec(a, b mgl32.Vec3) bool {
	return a.Sub(b).Len() < 1e-4
}

func TestFlyPlayerMovesAlongYaw(t *testing.T) {
	p := NewFlyPlayer(mgl32.Vec3{0, 50, 0})

	p.move(1, 1, 0, 0, false)
	if want := (mgl32.Vec3{0, 50, -FlySpeed}); !nearVec(p.Position(), want) {
		t.Fatalf("forward: got %v, want %v", p.Position(), want)
	}

	p.Teleport(mgl32.Vec3{})
	p.move(1, 0, 1, 0, true)
	if want := (mgl32.Vec3{FlySpeed * SprintMultiplier, 0, 0}); !nearVec(p.Position(), want) {
		t.Fatalf("sprint strafe: got %v, want %v", p.Position(), want)
	}

	p.Teleport(mgl32.Vec3{})
	p.move(0.5, 1, 1, 0, false)
	if d := p.Position().Len(); math.Abs(float64(d)-FlySpeed*0.5) > 1e-3 {
		t.Fatalf("diagonal speed: moved %v", d)
	}

	if p.SpawnPosition() != (mgl32.Vec3{0, 50, 0}) {
		t.Fatalf("spawn changed to %v", p.SpawnPosition())
	}
}

type flatGround struct{ top float32 }

func (g flatGround) CollidersNear(p mgl32.Vec3) []geom.AABB {
	x, z := float32(math.Floor(float64(p.X()))), float32(math.Floor(float64(p.Z())))
	var out []geom.AABB
	for dx := float32(-1); dx <= 1; dx++ {
		for dz := float32(-1); dz <= 1; dz++ {
			out = append(out, geom.AABB{
				Min: mgl32.Vec3{x + dx, g.top - 1, z + dz},
				Max: mgl32.Vec3{x + dx + 1, g.top, z + dz + 1},
			})
		}
	}
	return out
}

func TestFlyPlayerRestsOnTerrain(t *testing.T) {
	p := NewFlyPlayer(mgl32.Vec3{0.5, 10.5, 0.5})
	p.SetColliders(flatGround{top: 10})
	p.move(0.1, 0, 0, -1, false)
	if got := p.Position().Y(); math.Abs(float64(got)-10) > 1e-4 {
		t.Fatalf("descended into the ground: y = %v", got)
	}
	p.move(0.1, 0, 0, 1, false)
	if got := p.Position().Y(); got <= 10.5 {
		t.Fatalf("could not lift off: y = %v", got)
	}
}

func TestSpawnGuardReturnsFallenPlayer(t *testing.T) {
	spawn := mgl32.Vec3{4, 70, 4}
	p := NewFlyPlayer(spawn)
	g := spawnGuard{player: p}

	p.Teleport(mgl32.Vec3{10, 0, 10})
	g.TickSpawn()
	if p.Position() != (mgl32.Vec3{10, 0, 10}) {
		t.Fatalf("player above the void moved to %v", p.Position())
	}

	p.Teleport(mgl32.Vec3{10, VoidDepth - 1, 10})
	g.TickSpawn()
	if p.Position() != spawn {
		t.Fatalf("fallen player at %v, want spawn %v", p.Position(), spawn)
	}

	spawnGuard{}.TickSpawn()
}

func TestFlyPlayerPitchIsClamped(t *testing.T) {
	p := NewFlyPlayer(mgl32.Vec3{})
	p.HandleMouseMovement(100, 100) // first sample only primes
	if p.CamPitch != 0 {
		t.Fatalf("first mouse sample moved the camera: pitch %v", p.CamPitch)
	}
	p.HandleMouseMovement(100, -5000)
	if p.CamPitch != 89 {
		t.Fatalf("pitch: got %v, want 89", p.CamPitch)
	}
	if f := p.FrontVector(); f.Y() <= 0.99 {
		t.Fatalf("front should point up, got %v", f)
	}
}

func TestFlyPlayerAppliesToCamera(t *testing.T) {
	p := NewFlyPlayer(mgl32.Vec3{1, 2, 3})
	c := camera.New(800, 600)
	p.Apply(c)
	if !nearVec(c.Position, mgl32.Vec3{1, 2 + EyeHeight, 3}) {
		t.Fatalf("camera position %v", c.Position)
	}
	if !nearVec(c.Direction, mgl32.Vec3{0, 0, -1}) {
		t.Fatalf("camera direction %v", c.Direction)
	}

	box, ok := p.Bounds()
	if !ok || !box.Contains(mgl32.Vec3{1, 3, 3}) || box.Contains(mgl32.Vec3{1, 2 + PlayerHeight + 0.1, 3}) {
		t.Fatalf("bounds %v", box)
	}

	var none *FlyPlayer
	if none.Valid() {
		t.Fatal("nil player must be invalid")
	}
}

type nopMesher struct{}

func (nopMesher) Mesh(world.ChunkCoord) (world.MeshData, error) { return world.MeshData{}, nil }

func TestChunkProviderAdapter(t *testing.T) {
	store := world.NewChunkStore(4, nil, nopMesher{})
	var p render.ChunkProvider = chunkProvider{store: store}

	a := p.GetChunk(1, 0, 2)
	if a.Coord() != (world.ChunkCoord{X: 1, Z: 2}) {
		t.Fatalf("coord: %v", a.Coord())
	}
	if p.GetChunk(1, 0, 2) != a {
		t.Fatal("GetChunk must return the cached chunk")
	}
	if p.Size() != 1 {
		t.Fatalf("size: %d", p.Size())
	}
	p.FlushCache()
	if p.Size() != 1 {
		t.Fatalf("flush below capacity evicted: size %d", p.Size())
	}
}

func TestFPSLimiterUnlimitedDoesNotBlock(t *testing.T) {
	f := NewFPSLimiter(func() int { return 0 })
	start := time.Now()
	for i := 0; i < 100; i++ {
		f.Wait(false)
	}
	if time.Since(start) > 50*time.Millisecond {
		t.Fatal("unlimited limiter slept")
	}
}

func TestFPSLimiterPacesFrames(t *testing.T) {
	f := NewFPSLimiter(func() int { return 200 })
	start := time.Now()
	for i := 0; i < 10; i++ {
		f.Wait(false)
	}
	if got := time.Since(start); got < 45*time.Millisecond {
		t.Fatalf("10 frames at 200 fps took %v", got)
	}
}

type fakeFrames struct {
	stats   render.Stats
	tracked []render.Chunk
}

func (f *fakeFrames) Stats() render.Stats               { return f.stats }
func (f *fakeFrames) ChunksInProximity() []render.Chunk { return f.tracked }

type fakeMeshStats struct {
	pending, queued, dropped, failed, applied int
}

func (f fakeMeshStats) Pending() int     { return f.pending }
func (f fakeMeshStats) QueueLength() int { return f.queued }
func (f fakeMeshStats) Dropped() int     { return f.dropped }
func (f fakeMeshStats) Failures() int    { return f.failed }
func (f fakeMeshStats) Applied() int     { return f.applied }

func TestStatsLogWritesOneRecordPerTick(t *testing.T) {
	dir := t.TempDir()
	at := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	store := world.NewChunkStore(4, nil, nopMesher{})
	src := &fakeFrames{
		stats:   render.Stats{Dirty: 2, Visible: 7, Ignored: 1},
		tracked: []render.Chunk{store.GetChunk(0, 0, 0), store.GetChunk(1, 0, 0)},
	}
	log := &statsLog{
		rec:     profiling.NewRecorder(dir, "frames"),
		source:  src,
		cached:  func() int { return 9 },
		mesh:    fakeMeshStats{pending: 3, queued: 1, dropped: 4, failed: 5, applied: 6},
		now:     func() time.Time { return at },
	}
	log.onTick(1)
	log.onTick(2)
	if err := log.rec.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	f, err := os.Open(filepath.Join(dir, "frames-2026-10-17-12.jsonl.zst"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	dec, err := zstd.NewReader(f)
	if err != nil {
		t.Fatal(err)
	}
	defer dec.Close()

	var got []profiling.FrameRecord
	sc := bufio.NewScanner(dec)
	for sc.Scan() {
		var rec profiling.FrameRecord
		if err := json.Unmarshal(sc.Bytes(), &rec); err != nil {
			t.Fatal(err)
		}
		got = append(got, rec)
	}
	if len(got) != 2 {
		t.Fatalf("records: got %d, want 2", len(got))
	}
	r := got[1]
	if r.Tick != 2 || r.Dirty != 2 || r.Visible != 7 || r.Ignored != 1 || r.Tracked != 2 || r.Cached != 9 || r.Pending != 3 {
		t.Fatalf("record: %+v", r)
	}
	if r.Queued != 1 || r.Dropped != 4 || r.Failed != 5 || r.Applied != 6 {
		t.Fatalf("record: %+v", r)
	}
}
