package render

import (
	"fmt"
	"log"
	"time"

	"terrastream/internal/camera"
	"terrastream/internal/config"
	"terrastream/internal/geom"
	"terrastream/internal/tick"

	"github.com/go-gl/mathgl/mgl32"
)

// CameraMode selects the active camera.
type CameraMode int

const (
	// CameraPlayer uses the player camera and draws the first person overlay.
	CameraPlayer CameraMode = iota
	// CameraSpawn orbits the spawn point.
	CameraSpawn
)

func (m CameraMode) String() string {
	switch m {
	case CameraPlayer:
		return "player"
	case CameraSpawn:
		return "spawn"
	default:
		return fmt.Sprintf("CameraMode(%d)", int(m))
	}
}

// Entity is anything with a bounding box that can be culled.
type Entity interface {
	AABB() geom.AABB
}

// CollisionSource lists collision boxes around a point for debug drawing.
type CollisionSource interface {
	CollidersNear(p mgl32.Vec3) []geom.AABB
}

// Options are the collaborators of a WorldRenderer. Settings, Provider and
// Pipeline.GL are required.
type Options struct {
	Settings  *config.Settings
	Provider  ChunkProvider
	Updates   UpdateManager
	Pipeline  *Pipeline
	Liquid    LiquidProbe
	Colliders CollisionSource
	LiquidSim Simulator
	GrowthSim Simulator
	// Spawner runs on every coarse tick. Nil disables it.
	Spawner Spawner
	// Audio receives the ambient soundtrack events. Nil disables them.
	Audio   tick.AudioTrigger
	Metrics Metrics
	// Now is the wall clock of the tick scheduler. Nil uses time.Now.
	Now func() time.Time
	// StartDay is the initial world time in days.
	StartDay float64

	Width, Height int
}

// WorldRenderer streams the chunks around the active camera into render
// queues each frame and drives the world tick.
type WorldRenderer struct {
	settings  *config.Settings
	provider  ChunkProvider
	updates   UpdateManager
	pipeline  *Pipeline
	liquid    LiquidProbe
	colliders CollisionSource
	liquidSim Simulator
	growthSim Simulator
	spawner   Spawner
	audio     tick.AudioTrigger
	metrics   Metrics

	playerCamera *camera.Camera
	spawnCamera  *camera.Camera
	activeCamera *camera.Camera
	mode         CameraMode
	player       Player

	tracker *ProximityTracker
	builder *QueueBuilder
	queues  Queues
	frame   Frame
	stats   Stats

	opaqueRenderers      []Renderable
	transparentRenderers []Renderable

	scheduler *tick.Scheduler
	events    *tick.EventManager
	day       *tick.DayClock
}

// NewWorldRenderer creates a renderer in player camera mode.
func NewWorldRenderer(opts Options) *WorldRenderer {
	metrics := opts.Metrics
	if metrics == nil {
		metrics = noopMetrics{}
	}
	if opts.Pipeline.Metrics == nil {
		opts.Pipeline.Metrics = metrics
	}
	width, height := opts.Width, opts.Height
	if width <= 0 || height <= 0 {
		width, height = opts.Settings.WindowSize()
	}

	w := &WorldRenderer{
		settings:     opts.Settings,
		provider:     opts.Provider,
		updates:      opts.Updates,
		pipeline:     opts.Pipeline,
		liquid:       opts.Liquid,
		colliders:    opts.Colliders,
		liquidSim:    opts.LiquidSim,
		growthSim:    opts.GrowthSim,
		spawner:      opts.Spawner,
		audio:        opts.Audio,
		metrics:      metrics,
		playerCamera: camera.New(width, height),
		spawnCamera:  camera.New(width, height),
		tracker:      NewProximityTracker(opts.Provider),
		builder:      NewQueueBuilder(opts.Updates),
		scheduler:    tick.NewScheduler(opts.Now),
		events:       tick.NewEventManager(),
		day:          tick.NewDayClock(opts.Settings.DayLengthSeconds(), opts.StartDay),
	}
	w.activeCamera = w.playerCamera
	w.frame.Chunks = &w.queues

	if w.audio != nil {
		tick.RegisterSoundtrack(w.events, w.audio)
	}
	return w
}

// Update advances cameras, the tick, the proximity window, the sky and the
// simulations by delta seconds.
func (w *WorldRenderer) Update(delta float64) {
	stop := w.metrics.Track("update.Cameras")
	w.animateSpawnCamera()
	w.spawnCamera.Update(delta)
	stop()

	stop = w.metrics.Track("update.Tick")
	ticked := w.scheduler.Advance(delta)
	w.day.SetDayLength(w.settings.DayLengthSeconds())
	w.day.Advance(delta)
	stop()

	if ticked && w.spawner != nil {
		stop = w.metrics.Track("update.Spawn")
		w.spawner.TickSpawn()
		stop()
	}

	stop = w.metrics.Track("update.Proximity")
	w.UpdateChunksInProximity(false)
	stop()

	stop = w.metrics.Track("update.Sky")
	if w.pipeline.Sky != nil {
		w.pipeline.Sky.Update(delta)
	}
	stop()

	w.activeCamera.Update(delta)

	stop = w.metrics.Track("update.FlushCache")
	w.provider.FlushCache()
	stop()

	stop = w.metrics.Track("update.Events")
	w.events.FireDue(w.day.Days())
	stop()

	if w.liquidSim != nil {
		stop = w.metrics.Track("update.Liquid")
		w.liquidSim.Simulate(false)
		stop()
	}
	if w.growthSim != nil {
		stop = w.metrics.Track("update.Growth")
		w.growthSim.Simulate(false)
		stop()
	}
}

// Render builds the chunk queues for the active camera and draws the frame.
func (w *WorldRenderer) Render() {
	stop := w.metrics.Track("render.Queue")
	view := w.activeCamera.Snapshot(w.submerged())
	w.stats = w.builder.Build(w.tracker.Chunks(), view, w.settings.MaxChunkVBOs(), &w.queues)

	f := &w.frame
	f.View = view
	f.Wireframe = w.settings.Wireframe()
	f.FirstPerson = w.mode == CameraPlayer
	f.Daylight = float32(w.day.Daylight())
	for _, r := range w.opaqueRenderers {
		f.Opaque.Push(r)
	}
	for _, r := range w.transparentRenderers {
		f.Transparent.Push(r)
	}
	f.DebugBoxes = f.DebugBoxes[:0]
	if w.settings.DebugCollision() {
		f.DebugBoxes = w.collectDebugBoxes(f.DebugBoxes)
	}
	stop()

	w.pipeline.Render(f)
}

// UpdateChunksInProximity refreshes the tracked chunks around the active
// camera. It reports whether the window changed.
func (w *WorldRenderer) UpdateChunksInProximity(force bool) bool {
	return w.tracker.Refresh(w.activeCamera.Position, w.settings.ViewingDistance(), force)
}

// SetCameraMode switches the active camera immediately. Unknown modes are
// ignored.
func (w *WorldRenderer) SetCameraMode(mode CameraMode) {
	switch mode {
	case CameraPlayer:
		w.activeCamera = w.playerCamera
	case CameraSpawn:
		w.activeCamera = w.spawnCamera
	default:
		return
	}
	w.mode = mode
}

// CameraMode returns the current camera mode.
func (w *WorldRenderer) CameraMode() CameraMode { return w.mode }

// SetPlayer sets the local player and forces a proximity refresh.
func (w *WorldRenderer) SetPlayer(p Player) {
	w.player = p
	w.UpdateChunksInProximity(true)
}

// Player returns the local player, which may be nil.
func (w *WorldRenderer) Player() Player { return w.player }

// PlayerPosition returns the player position or the origin without a valid player.
func (w *WorldRenderer) PlayerPosition() mgl32.Vec3 {
	if !w.playerValid() {
		return mgl32.Vec3{}
	}
	return w.player.Position()
}

// IsChunkVisible tests a chunk against the active camera frustum.
func (w *WorldRenderer) IsChunkVisible(c Chunk) bool {
	return w.IsAABBVisible(c.AABB())
}

// IsAABBVisible tests a box against the active camera frustum.
func (w *WorldRenderer) IsAABBVisible(box geom.AABB) bool {
	return w.activeCamera.Frustum().Intersects(box)
}

// IsEntityVisible tests an entity against the active camera frustum.
func (w *WorldRenderer) IsEntityVisible(e Entity) bool {
	return w.IsAABBVisible(e.AABB())
}

// Stats returns the counters of the last rendered frame.
func (w *WorldRenderer) Stats() Stats { return w.stats }

// Tick returns the number of coarse ticks.
func (w *WorldRenderer) Tick() uint64 { return w.scheduler.Tick() }

// AnimationClock returns the accumulated frame time in seconds.
func (w *WorldRenderer) AnimationClock() float64 { return w.scheduler.Clock() }

// Scheduler returns the tick scheduler so subsystems can subscribe to ticks.
func (w *WorldRenderer) Scheduler() *tick.Scheduler { return w.scheduler }

// Events returns the world time event manager.
func (w *WorldRenderer) Events() *tick.EventManager { return w.events }

// DayClock returns the world time.
func (w *WorldRenderer) DayClock() *tick.DayClock { return w.day }

// Daylight returns the current sun intensity.
func (w *WorldRenderer) Daylight() float64 { return w.day.Daylight() }

// ChunksInProximity returns the tracked chunks, nearest first.
func (w *WorldRenderer) ChunksInProximity() []Chunk { return w.tracker.Chunks() }

// ActiveCamera returns the camera used for culling and drawing.
func (w *WorldRenderer) ActiveCamera() *camera.Camera { return w.activeCamera }

// PlayerCamera returns the player-attached camera.
func (w *WorldRenderer) PlayerCamera() *camera.Camera { return w.playerCamera }

// Wireframe reports whether chunks are drawn as wireframe.
func (w *WorldRenderer) Wireframe() bool { return w.settings.Wireframe() }

// SetWireframe toggles wireframe drawing.
func (w *WorldRenderer) SetWireframe(enabled bool) { w.settings.SetWireframe(enabled) }

// SetViewport updates the aspect ratio of both cameras.
func (w *WorldRenderer) SetViewport(width, height int) {
	w.playerCamera.SetViewport(width, height)
	w.spawnCamera.SetViewport(width, height)
}

// AddOpaqueRenderer queues r in the opaque pass of every frame.
func (w *WorldRenderer) AddOpaqueRenderer(r Renderable) {
	w.opaqueRenderers = append(w.opaqueRenderers, r)
}

// AddTransparentRenderer queues r in the transparent pass of every frame.
func (w *WorldRenderer) AddTransparentRenderer(r Renderable) {
	w.transparentRenderers = append(w.transparentRenderers, r)
}

// GenerateChunk meshes and uploads the nearest chunk that needs it, on the
// calling goroutine. It returns true once no tracked chunk is left to build.
func (w *WorldRenderer) GenerateChunk() bool {
	for _, c := range w.tracker.Chunks() {
		if !c.IsDirty() && !c.IsLightDirty() && !c.IsFresh() {
			continue
		}
		if err := c.ProcessChunk(); err != nil {
			log.Printf("render: generate %v: %v", c.Coord(), err)
		}
		if err := c.GenerateVBOs(); err != nil {
			log.Printf("render: upload %v: %v", c.Coord(), err)
		}
		return false
	}
	return true
}

func (w *WorldRenderer) String() string {
	pending, queued := 0, 0
	if w.updates != nil {
		pending, queued = w.updates.Pending(), w.updates.QueueLength()
	}
	return fmt.Sprintf("world (tick: %d, time: %.2f, daylight: %.2f, cache: %d, dirty: %d, ign: %d, vis: %d, evicted: %d, pending: %d, queue: %d, camera: %s)",
		w.scheduler.Tick(), w.day.Days(), w.day.Daylight(), w.provider.Size(),
		w.stats.Dirty, w.stats.Ignored, w.stats.Visible, w.stats.Evicted, pending, queued, w.mode)
}

// Dispose releases the collaborators that hold resources.
func (w *WorldRenderer) Dispose() {
	for _, c := range []any{w.updates, w.provider, w.audio} {
		if d, ok := c.(interface{ Dispose() }); ok {
			d.Dispose()
		}
	}
}

func (w *WorldRenderer) playerValid() bool {
	return w.player != nil && w.player.Valid()
}

// animateSpawnCamera moves the spawn camera along its orbit. Nothing happens
// without a valid player.
func (w *WorldRenderer) animateSpawnCamera() {
	if !w.playerValid() {
		return
	}
	camera.Orbit(w.spawnCamera, w.player.SpawnPosition(), w.player.Position(), w.scheduler.Clock())
}

// IsHeadUnderWater reports whether the player camera is inside a liquid.
func (w *WorldRenderer) IsHeadUnderWater() bool { return w.submerged() }

func (w *WorldRenderer) submerged() bool {
	if w.mode != CameraPlayer || w.liquid == nil {
		return false
	}
	return w.liquid.IsLiquidAt(w.activeCamera.Position)
}

func (w *WorldRenderer) collectDebugBoxes(dst []geom.AABB) []geom.AABB {
	if w.playerValid() {
		if box, ok := w.player.Bounds(); ok {
			dst = append(dst, box)
		}
	}
	if w.colliders != nil {
		dst = append(dst, w.colliders.CollidersNear(w.activeCamera.Position)...)
	}
	return dst
}
