package config

import "sync"

const (
	minViewingDistance = 4
	maxViewingDistance = 64
)

// Settings holds render and streaming configuration. A single instance is
// created at startup and handed to every consumer.
type Settings struct {
	mu sync.RWMutex

	viewingDistance  int // side of the proximity square, in chunks
	maxChunkVBOs     int
	cacheSize        int
	debugCollision   bool
	wireframe        bool
	dayLengthSeconds float64
	meshWorkers      int
	meshQueueSize    int
	fpsLimit         int
	statsLogDir      string
	audio            bool
	windowWidth      int
	windowHeight     int

	WorldGen WorldGenSettings
}

// Default returns settings with the stock values.
func Default() *Settings {
	return &Settings{
		viewingDistance:  16,
		maxChunkVBOs:     512,
		cacheSize:        1024,
		dayLengthSeconds: 1200,
		meshWorkers:      2,
		meshQueueSize:    256,
		fpsLimit:         120,
		audio:            true,
		windowWidth:      900,
		windowHeight:     600,
		WorldGen: WorldGenSettings{
			seed:     1337,
			seaLevel: 32,
		},
	}
}

// ViewingDistance returns the side length of the proximity window in chunks
func (s *Settings) ViewingDistance() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.viewingDistance
}

// SetViewingDistance sets the viewing distance, clamped and rounded down to an even value
func (s *Settings) SetViewingDistance(distance int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if distance < minViewingDistance {
		distance = minViewingDistance
	}
	if distance > maxViewingDistance {
		distance = maxViewingDistance
	}
	distance -= distance % 2

	s.viewingDistance = distance
	if s.cacheSize < distance*distance {
		s.cacheSize = distance * distance
	}
}

// MaxChunkVBOs returns how many chunks (by proximity rank) may keep GPU buffers
func (s *Settings) MaxChunkVBOs() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.maxChunkVBOs
}

func (s *Settings) SetMaxChunkVBOs(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n < 0 {
		n = 0
	}
	s.maxChunkVBOs = n
}

// CacheSize returns the chunk provider capacity
func (s *Settings) CacheSize() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cacheSize
}

// SetCacheSize sets the provider capacity; it never drops below the proximity window size
func (s *Settings) SetCacheSize(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if floor := s.viewingDistance * s.viewingDistance; n < floor {
		n = floor
	}
	s.cacheSize = n
}

func (s *Settings) DebugCollision() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.debugCollision
}

func (s *Settings) SetDebugCollision(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.debugCollision = enabled
}

// ToggleDebugCollision flips the debug collision flag and returns the new value
func (s *Settings) ToggleDebugCollision() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.debugCollision = !s.debugCollision
	return s.debugCollision
}

func (s *Settings) Wireframe() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.wireframe
}

func (s *Settings) SetWireframe(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wireframe = enabled
}

// DayLengthSeconds returns the real-time length of one day cycle
func (s *Settings) DayLengthSeconds() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dayLengthSeconds
}

func (s *Settings) SetDayLengthSeconds(seconds float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seconds < 1 {
		seconds = 1
	}
	s.dayLengthSeconds = seconds
}

// MeshWorkers returns the number of background mesh workers
func (s *Settings) MeshWorkers() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.meshWorkers
}

func (s *Settings) SetMeshWorkers(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n < 1 {
		n = 1
	}
	s.meshWorkers = n
}

func (s *Settings) MeshQueueSize() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.meshQueueSize
}

func (s *Settings) SetMeshQueueSize(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n < 1 {
		n = 1
	}
	s.meshQueueSize = n
}

// FPSLimit returns the frame cap; 0 disables limiting
func (s *Settings) FPSLimit() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fpsLimit
}

func (s *Settings) SetFPSLimit(limit int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if limit < 0 {
		limit = 0
	}
	s.fpsLimit = limit
}

// StatsLogDir is where frame statistics are recorded; empty disables recording
func (s *Settings) StatsLogDir() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.statsLogDir
}

func (s *Settings) SetStatsLogDir(dir string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statsLogDir = dir
}

func (s *Settings) Audio() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.audio
}

func (s *Settings) SetAudio(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.audio = enabled
}

// WindowSize returns the initial window dimensions
func (s *Settings) WindowSize() (int, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.windowWidth, s.windowHeight
}

func (s *Settings) SetWindowSize(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if width < 320 {
		width = 320
	}
	if height < 240 {
		height = 240
	}
	s.windowWidth, s.windowHeight = width, height
}
