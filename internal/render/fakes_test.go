package render

import (
	"fmt"

	"terrastream/internal/camera"
	"terrastream/internal/geom"
	"terrastream/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// recorder collects calls from every fake in call order.
type recorder struct {
	calls []string
}

func (r *recorder) add(format string, args ...any) {
	if r != nil {
		r.calls = append(r.calls, fmt.Sprintf(format, args...))
	}
}

type fakeChunk struct {
	name  string
	coord world.ChunkCoord
	box   geom.AABB
	tris  [world.NumPhases]int

	dirty, lightDirty, fresh bool
	resident                 bool

	clears   int
	updates  int
	clearErr error
	rec      *recorder
}

func newFakeChunk(name string, box geom.AABB) *fakeChunk {
	return &fakeChunk{name: name, box: box}
}

func (c *fakeChunk) Coord() world.ChunkCoord { return c.coord }
func (c *fakeChunk) AABB() geom.AABB          { return c.box }
func (c *fakeChunk) IsDirty() bool            { return c.dirty }
func (c *fakeChunk) IsLightDirty() bool       { return c.lightDirty }
func (c *fakeChunk) IsFresh() bool            { return c.fresh }
func (c *fakeChunk) Update()                  { c.updates++ }

func (c *fakeChunk) TriangleCount(phase world.RenderPhase) int {
	return c.tris[phase]
}

func (c *fakeChunk) Render(phase world.RenderPhase) {
	c.rec.add("chunk:%s:%s", c.name, phase)
}

func (c *fakeChunk) Resident() bool { return c.resident }

func (c *fakeChunk) ClearMeshes() error {
	c.clears++
	c.resident = false
	return c.clearErr
}

func (c *fakeChunk) ProcessChunk() error {
	c.dirty, c.lightDirty, c.fresh = false, false, false
	return nil
}

func (c *fakeChunk) GenerateVBOs() error {
	c.resident = true
	return nil
}

// fakeProvider hands out chunks with real chunk bounds.
type fakeProvider struct {
	chunks  map[world.ChunkCoord]*fakeChunk
	gets    int
	flushes int
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{chunks: make(map[world.ChunkCoord]*fakeChunk)}
}

func (p *fakeProvider) GetChunk(x, y, z int) Chunk {
	p.gets++
	coord := world.ChunkCoord{X: x, Y: y, Z: z}
	if c, ok := p.chunks[coord]; ok {
		return c
	}
	c := newFakeChunk(coord.String(), world.NewChunk(x, y, z, nil, nil).AABB())
	c.coord = coord
	c.fresh = true
	c.resident = true
	c.tris = [world.NumPhases]int{12, 0, 0}
	p.chunks[coord] = c
	return c
}

func (p *fakeProvider) FlushCache() { p.flushes++ }
func (p *fakeProvider) Size() int   { return len(p.chunks) }

type fakeUpdates struct {
	queued []Chunk
}

func (u *fakeUpdates) QueueChunkUpdate(c Chunk, t UpdateType) {
	u.queued = append(u.queued, c)
}

func (u *fakeUpdates) Pending() int     { return len(u.queued) }
func (u *fakeUpdates) QueueLength() int { return len(u.queued) }

type fakeGraphics struct {
	rec *recorder
}

func (g *fakeGraphics) LoadCamera(view, projection mgl32.Mat4) {
	if view[12] == 0 && view[13] == 0 && view[14] == 0 {
		g.rec.add("camera:normalized")
		return
	}
	g.rec.add("camera:full")
}

func (g *fakeGraphics) SetLighting(enabled bool)      { g.rec.add("lighting:%v", enabled) }
func (g *fakeGraphics) SetDaylight(intensity float32) { g.rec.add("daylight:%v", intensity) }
func (g *fakeGraphics) SetBlend(enabled bool)         { g.rec.add("blend:%v", enabled) }
func (g *fakeGraphics) SetColorMask(enabled bool)     { g.rec.add("mask:%v", enabled) }
func (g *fakeGraphics) SetFaceCulling(enabled bool)   { g.rec.add("cull:%v", enabled) }
func (g *fakeGraphics) SetWireframe(enabled bool)     { g.rec.add("wireframe:%v", enabled) }
func (g *fakeGraphics) SetDepthFunc(fn DepthFunc)     { g.rec.add("depth:%s", fn) }

type fakeScene struct{ rec *recorder }

func (s *fakeScene) BeginScene()  { s.rec.add("scene:begin") }
func (s *fakeScene) EndScene()    { s.rec.add("scene:end") }
func (s *fakeScene) RenderScene() { s.rec.add("scene:render") }

type fakeSky struct {
	rec     *recorder
	updates int
}

func (s *fakeSky) Update(delta float64)         { s.updates++ }
func (s *fakeSky) Render(view *camera.Snapshot) { s.rec.add("sky") }

type fakeDebug struct{ rec *recorder }

func (d *fakeDebug) DrawAABB(box geom.AABB) { d.rec.add("debug:box") }

type fakeOverlay struct{ rec *recorder }

func (o *fakeOverlay) Render(view *camera.Snapshot) { o.rec.add("overlay") }

type fakeSubscriber struct{ rec *recorder }

func (s *fakeSubscriber) RenderOpaque()      { s.rec.add("sub:opaque") }
func (s *fakeSubscriber) RenderTransparent() { s.rec.add("sub:transparent") }
func (s *fakeSubscriber) RenderOverlay()     { s.rec.add("sub:overlay") }

type fakePlayer struct {
	valid    bool
	pos      mgl32.Vec3
	spawn    mgl32.Vec3
	hasBound bool
}

func (p *fakePlayer) Valid() bool               { return p.valid }
func (p *fakePlayer) Position() mgl32.Vec3      { return p.pos }
func (p *fakePlayer) SpawnPosition() mgl32.Vec3 { return p.spawn }

func (p *fakePlayer) Bounds() (geom.AABB, bool) {
	return geom.NewAABB(p.pos, mgl32.Vec3{0.3, 0.9, 0.3}), p.hasBound
}

type fakeSimulator struct{ steps int }

func (s *fakeSimulator) Simulate(force bool) { s.steps++ }

type liquidBelow float32

func (l liquidBelow) IsLiquidAt(p mgl32.Vec3) bool { return p.Y() < float32(l) }

// ahead and behind are boxes in front of and behind a default camera, which
// sits at the origin looking along -Z.
func ahead(dist float32) geom.AABB {
	return geom.NewAABB(mgl32.Vec3{0, 0, -dist}, mgl32.Vec3{1, 1, 1})
}

func behind(dist float32) geom.AABB {
	return geom.NewAABB(mgl32.Vec3{0, 0, dist}, mgl32.Vec3{1, 1, 1})
}

func defaultView() *camera.Snapshot {
	return camera.New(800, 600).Snapshot(false)
}
