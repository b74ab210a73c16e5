package config

import "sync"

// WorldGenSettings holds terrain generation configuration
type WorldGenSettings struct {
	mu       sync.RWMutex
	seed     int64
	seaLevel int
}

// Seed returns the terrain noise seed
func (w *WorldGenSettings) Seed() int64 {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.seed
}

// SetSeed sets the terrain noise seed
func (w *WorldGenSettings) SetSeed(seed int64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.seed = seed
}

// SeaLevel returns the configured sea level
func (w *WorldGenSettings) SeaLevel() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.seaLevel
}

// SetSeaLevel sets the sea level
func (w *WorldGenSettings) SetSeaLevel(level int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if level < 0 {
		level = 0
	}
	w.seaLevel = level
}
