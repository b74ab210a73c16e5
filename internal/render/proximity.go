package render

import (
	"sort"

	"terrastream/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// ProximityTracker keeps the square window of chunks around the viewer,
// sorted by ascending distance.
type ProximityTracker struct {
	provider ChunkProvider

	initialized bool
	chunkX      int
	chunkZ      int
	distance    int

	chunks []Chunk
}

// NewProximityTracker creates an empty tracker.
func NewProximityTracker(provider ChunkProvider) *ProximityTracker {
	return &ProximityTracker{provider: provider}
}

// ViewerChunk returns the chunk column containing pos. Coordinates are
// truncated toward zero.
func ViewerChunk(pos mgl32.Vec3) (x, z int) {
	return int(pos.X() / world.ChunkSizeX), int(pos.Z() / world.ChunkSizeZ)
}

// Refresh rebuilds the window when the viewer entered another chunk, the
// viewing distance changed or force is set. It reports whether the window
// was rebuilt. viewingDistance is rounded down to an even number, as the
// settings do, so the window always holds viewingDistance² chunks.
func (t *ProximityTracker) Refresh(pos mgl32.Vec3, viewingDistance int, force bool) bool {
	viewingDistance = max(viewingDistance-viewingDistance%2, 0)
	cx, cz := ViewerChunk(pos)
	if t.initialized && !force && cx == t.chunkX && cz == t.chunkZ && viewingDistance == t.distance {
		return false
	}
	t.initialized = true
	t.chunkX, t.chunkZ, t.distance = cx, cz, viewingDistance

	half := viewingDistance / 2
	t.chunks = t.chunks[:0]
	for x := -half; x < half; x++ {
		for z := -half; z < half; z++ {
			t.chunks = append(t.chunks, t.provider.GetChunk(cx+x, 0, cz+z))
		}
	}

	sort.SliceStable(t.chunks, func(i, j int) bool {
		return distanceXZ(t.chunks[i], pos) < distanceXZ(t.chunks[j], pos)
	})
	return true
}

// Chunks returns the tracked chunks. The slice is reused by the next rebuild.
func (t *ProximityTracker) Chunks() []Chunk {
	return t.chunks
}

// Len returns the number of tracked chunks.
func (t *ProximityTracker) Len() int {
	return len(t.chunks)
}

// distanceXZ is the squared horizontal distance from the chunk center to p.
func distanceXZ(c Chunk, p mgl32.Vec3) float32 {
	center := c.AABB().Center()
	dx := center.X() - p.X()
	dz := center.Z() - p.Z()
	return dx*dx + dz*dz
}
