package render

import (
	"terrastream/internal/camera"
	"terrastream/internal/geom"
	"terrastream/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// Chunk is the view of a terrain chunk the scheduler works with.
type Chunk interface {
	Coord() world.ChunkCoord
	AABB() geom.AABB
	TriangleCount(phase world.RenderPhase) int
	IsDirty() bool
	IsLightDirty() bool
	IsFresh() bool
	// Update performs per-frame bookkeeping such as uploading a finished mesh.
	Update()
	Render(phase world.RenderPhase)
	// Resident reports whether the chunk holds GPU buffers.
	Resident() bool
	ClearMeshes() error
	ProcessChunk() error
	GenerateVBOs() error
}

// ChunkProvider owns chunks. GetChunk creates missing chunks.
type ChunkProvider interface {
	GetChunk(x, y, z int) Chunk
	FlushCache()
	Size() int
}

// UpdateType selects how a chunk mesh is regenerated.
type UpdateType int

const (
	// UpdateDefault rebuilds the mesh on a worker.
	UpdateDefault UpdateType = iota
	// UpdateSingleThreaded rebuilds the mesh on the calling goroutine.
	UpdateSingleThreaded
)

// UpdateManager regenerates chunk meshes. QueueChunkUpdate must not block.
type UpdateManager interface {
	QueueChunkUpdate(c Chunk, t UpdateType)
	// Pending counts chunks with a job in flight, QueueLength the jobs
	// still waiting for a worker.
	Pending() int
	QueueLength() int
}

// RenderSubscriber is called during the opaque, transparent and overlay passes.
type RenderSubscriber interface {
	RenderOpaque()
	RenderTransparent()
	RenderOverlay()
}

// Renderable is a generic object drawn from the opaque or transparent queue.
type Renderable interface {
	Render(view *camera.Snapshot)
}

// RenderableFunc adapts a function to Renderable.
type RenderableFunc func(view *camera.Snapshot)

func (f RenderableFunc) Render(view *camera.Snapshot) { f(view) }

// Simulator advances a world simulation (liquids, growth) by one step.
type Simulator interface {
	Simulate(force bool)
}

// Spawner is the periodic spawn subsystem, run once per coarse tick.
type Spawner interface {
	TickSpawn()
}

// Graphics applies the GL state the pipeline toggles between passes.
type Graphics interface {
	LoadCamera(view, projection mgl32.Mat4)
	SetLighting(enabled bool)
	SetDaylight(intensity float32)
	SetBlend(enabled bool)
	SetColorMask(enabled bool)
	SetFaceCulling(enabled bool)
	SetWireframe(enabled bool)
	// SetDepthFunc selects the depth comparison. The water pass needs
	// DepthLessEqual so its color pass matches its own depth-only pass.
	SetDepthFunc(fn DepthFunc)
}

// DepthFunc is a depth buffer comparison.
type DepthFunc int

const (
	DepthLess DepthFunc = iota
	DepthLessEqual
)

func (f DepthFunc) String() string {
	if f == DepthLessEqual {
		return "lequal"
	}
	return "less"
}

// Scene is the post-processing hook around world rendering.
type Scene interface {
	BeginScene()
	EndScene()
	RenderScene()
}

// SkyRenderer draws the sky dome using the rotation-only camera transform.
type SkyRenderer interface {
	Update(delta float64)
	Render(view *camera.Snapshot)
}

// DebugRenderer draws collision volumes.
type DebugRenderer interface {
	DrawAABB(box geom.AABB)
}

// Overlay draws first person elements after post-processing.
type Overlay interface {
	Render(view *camera.Snapshot)
}

// LiquidProbe reports whether a point lies inside a liquid block.
type LiquidProbe interface {
	IsLiquidAt(p mgl32.Vec3) bool
}

// Player is the local player as seen by the renderer.
type Player interface {
	Valid() bool
	Position() mgl32.Vec3
	SpawnPosition() mgl32.Vec3
	// Bounds returns the collision box, if the player has one.
	Bounds() (geom.AABB, bool)
}

// Metrics times named activities. Usage: defer m.Track("render.Sky")()
type Metrics interface {
	Track(name string) func()
}

type noopMetrics struct{}

func (noopMetrics) Track(string) func() { return func() {} }
