package game

import (
	"log"
	"time"

	"terrastream/internal/audio"
	"terrastream/internal/config"
	"terrastream/internal/graphics"
	"terrastream/internal/input"
	"terrastream/internal/meshing"
	"terrastream/internal/profiling"
	"terrastream/internal/render"
	"terrastream/internal/terrain"
	"terrastream/internal/tick"
	"terrastream/internal/world"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

// maxResultsPerFrame bounds how many finished meshes are applied per frame.
const maxResultsPerFrame = 32

// Session owns the world renderer and everything it is wired to.
type Session struct {
	Window   *glfw.Window
	Settings *config.Settings
	Monitor  *profiling.Monitor
	World    *render.WorldRenderer
	Player   *FlyPlayer
	Terrain  *terrain.Heightfield

	store   *world.ChunkStore
	updates *meshing.UpdateManager
	music   *audio.Player

	state     *graphics.State
	buffers   *graphics.ChunkBuffers
	scene     *graphics.Scene
	sky       *graphics.Sky
	lines     *graphics.Lines
	crosshair *graphics.Crosshair

	stats *statsLog

	Paused      bool
	ShowProfile bool
}

// NewSession builds the terrain, the GL backend and the world renderer. The
// GL context of window must be current.
func NewSession(window *glfw.Window, settings *config.Settings, monitor *profiling.Monitor) (*Session, error) {
	s := &Session{Window: window, Settings: settings, Monitor: monitor}

	if err := s.initGraphics(); err != nil {
		s.disposeGraphics()
		return nil, err
	}

	s.Terrain = terrain.NewHeightfield(settings.WorldGen.Seed(), settings.WorldGen.SeaLevel())
	mesher := terrain.NewMesher(s.Terrain)
	s.store = world.NewChunkStore(settings.CacheSize(), s.buffers, mesher)
	s.updates = meshing.NewUpdateManager(mesher, settings.MeshWorkers(), settings.MeshQueueSize())

	var trigger tick.AudioTrigger
	if settings.Audio() {
		player, err := audio.NewPlayer()
		if err != nil {
			log.Printf("game: audio disabled: %v", err)
			trigger = audio.Silent{}
		} else {
			s.music = player
			trigger = player
		}
	}

	s.Player = NewFlyPlayer(s.Terrain.SpawnPoint())
	s.Player.SetColliders(s.Terrain)

	width, height := window.GetFramebufferSize()
	s.World = render.NewWorldRenderer(render.Options{
		Settings:  settings,
		Provider:  chunkProvider{store: s.store},
		Updates:   s.updates,
		Pipeline:  &render.Pipeline{GL: s.state, Scene: s.scene, Sky: s.sky, Debug: s.lines, Overlay: s.crosshair},
		Liquid:    s.Terrain,
		Colliders: s.Terrain,
		Spawner:   spawnGuard{player: s.Player},
		Audio:     trigger,
		Metrics:   monitor,
		StartDay:  0.05,
		Width:     width,
		Height:    height,
	})

	s.Player.Apply(s.World.PlayerCamera())
	s.World.SetPlayer(s.Player)
	s.applyViewingDistance()

	if dir := settings.StatsLogDir(); dir != "" {
		s.stats = &statsLog{
			rec:     profiling.NewRecorder(dir, "frames"),
			source:  s.World,
			cached:  s.store.Size,
			mesh:    s.updates,
			monitor: monitor,
			now:     time.Now,
		}
		s.World.Scheduler().Subscribe(s.stats.onTick)
	}

	window.SetCursorPosCallback(func(w *glfw.Window, xpos, ypos float64) {
		if !s.Paused && s.World.CameraMode() == render.CameraPlayer {
			s.Player.HandleMouseMovement(xpos, ypos)
		}
	})
	window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		s.Resize(width, height)
	})
	return s, nil
}

func (s *Session) initGraphics() error {
	var err error
	if s.state, err = graphics.NewState(); err != nil {
		return err
	}
	s.buffers = graphics.NewChunkBuffers(s.state)
	if s.scene, err = graphics.NewScene(s.state); err != nil {
		return err
	}
	if s.sky, err = graphics.NewSky(s.state, s.daylight); err != nil {
		return err
	}
	if s.lines, err = graphics.NewLines(s.state); err != nil {
		return err
	}
	s.crosshair, err = graphics.NewCrosshair()
	return err
}

func (s *Session) daylight() float64 {
	if s.World == nil {
		return 1
	}
	return s.World.Daylight()
}

// Update handles input, applies finished meshes and advances the world.
func (s *Session) Update(dt float64, im *input.InputManager) {
	s.handleInputActions(im)

	if !s.Paused {
		func() {
			defer s.Monitor.Track("player.Update")()
			s.Player.Update(dt, im)
			s.Player.Apply(s.World.PlayerCamera())
		}()
	}

	func() {
		defer s.Monitor.Track("meshing.ProcessResults")()
		s.updates.ProcessResults(maxResultsPerFrame)
	}()

	s.World.Update(dt)
}

// Render draws one frame.
func (s *Session) Render() {
	if s.World.IsHeadUnderWater() {
		s.scene.SetTint(graphics.UnderwaterTint)
	} else {
		s.scene.SetTint(mgl32.Vec4{})
	}
	s.World.Render()
}

// RefreshRender repaints during a window resize.
func (s *Session) RefreshRender() {
	s.Render()
	s.Window.SwapBuffers()
}

// Resize updates the viewport and the camera aspect ratio.
func (s *Session) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	gl.Viewport(0, 0, int32(width), int32(height))
	s.World.SetViewport(width, height)
}

func (s *Session) SetPaused(paused bool) {
	s.Paused = paused
	if s.Paused {
		s.Window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	} else {
		s.Window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
		s.Player.FirstMouse = true
	}
}

func (s *Session) handleInputActions(im *input.InputManager) {
	if im.JustPressed(input.ActionPause) {
		s.SetPaused(!s.Paused)
	}
	if im.JustPressed(input.ActionToggleCamera) {
		if s.World.CameraMode() == render.CameraPlayer {
			s.World.SetCameraMode(render.CameraSpawn)
		} else {
			s.World.SetCameraMode(render.CameraPlayer)
		}
		log.Printf("game: camera %s", s.World.CameraMode())
	}
	if im.JustPressed(input.ActionToggleWireframe) {
		s.World.SetWireframe(!s.World.Wireframe())
	}
	if im.JustPressed(input.ActionToggleDebugCollision) {
		s.Settings.ToggleDebugCollision()
	}
	if im.JustPressed(input.ActionToggleProfiling) {
		s.ShowProfile = !s.ShowProfile
	}
	if im.JustPressed(input.ActionToggleMusic) && s.music != nil {
		s.music.SetMuted(!s.music.Muted())
	}
	if im.JustPressed(input.ActionViewFarther) {
		s.Settings.SetViewingDistance(s.Settings.ViewingDistance() + 2)
		s.applyViewingDistance()
	}
	if im.JustPressed(input.ActionViewNearer) {
		s.Settings.SetViewingDistance(s.Settings.ViewingDistance() - 2)
		s.applyViewingDistance()
	}
}

// applyViewingDistance resizes the chunk cache and the fog to the settings.
func (s *Session) applyViewingDistance() {
	vd := s.Settings.ViewingDistance()
	s.store.SetCapacity(s.Settings.CacheSize())
	s.state.SetFog(s.state.FogColor(), float32(vd/2*world.ChunkSizeX))
	s.World.UpdateChunksInProximity(true)
	log.Printf("game: viewing distance %d, chunk cache %d", vd, s.store.Capacity())
}

// Cleanup stops the workers and frees every GL resource.
func (s *Session) Cleanup() {
	if s.World != nil {
		s.World.Dispose()
	}
	if s.stats != nil {
		if err := s.stats.rec.Close(); err != nil {
			log.Printf("game: close stats log: %v", err)
		}
	}
	s.disposeGraphics()
	s.World = nil
	s.Player = nil
}

func (s *Session) disposeGraphics() {
	if s.crosshair != nil {
		s.crosshair.Dispose()
	}
	if s.lines != nil {
		s.lines.Dispose()
	}
	if s.sky != nil {
		s.sky.Dispose()
	}
	if s.scene != nil {
		s.scene.Dispose()
	}
	if s.state != nil {
		s.state.Dispose()
	}
}
