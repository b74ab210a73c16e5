package render

import (
	"log"

	"terrastream/internal/camera"
	"terrastream/internal/world"
)

// Stats are the per-frame counters of the queue builder.
type Stats struct {
	Dirty   int
	Visible int
	// Ignored counts empty phases of visible chunks.
	Ignored int
	// ReleaseFailures counts evicted chunks whose buffer release failed.
	ReleaseFailures int
	// Evicted counts chunks whose buffers were released this frame.
	Evicted int
}

// Queues holds the chunk render queues of one frame.
type Queues struct {
	Opaque    chunkQueue
	Water     DistanceQueue
	Billboard DistanceQueue
}

// Len returns the total number of queued chunk draws.
func (q *Queues) Len() int {
	return q.Opaque.Len() + q.Water.Len() + q.Billboard.Len()
}

// QueueBuilder routes visible chunks into the render queues and evicts GPU
// buffers of invisible chunks beyond the residency budget.
type QueueBuilder struct {
	updates  UpdateManager
	snapshot []Chunk
}

// NewQueueBuilder creates a builder that hands dirty chunks to updates.
func NewQueueBuilder(updates UpdateManager) *QueueBuilder {
	return &QueueBuilder{updates: updates}
}

// Build walks tracked in order (nearest first) and fills q. Chunks at rank
// maxResident or beyond release their buffers unless visible.
func (b *QueueBuilder) Build(tracked []Chunk, view *camera.Snapshot, maxResident int, q *Queues) Stats {
	var stats Stats

	// Iterate a stable copy; callbacks below may trigger a proximity refresh.
	b.snapshot = append(b.snapshot[:0], tracked...)
	defer clear(b.snapshot)

	for i, c := range b.snapshot {
		box := c.AABB()
		if !view.IsVisible(box) {
			if i >= maxResident {
				held := c.Resident()
				if err := c.ClearMeshes(); err != nil {
					stats.ReleaseFailures++
					log.Printf("render: evict %v: %v", c.Coord(), err)
				}
				if held {
					stats.Evicted++
				}
			}
			continue
		}

		if c.TriangleCount(world.PhaseOpaque) > 0 {
			q.Opaque.Push(c)
		} else {
			stats.Ignored++
		}
		if c.TriangleCount(world.PhaseWaterAndIce) > 0 {
			q.Water.Push(c, view.DistanceSq(box))
		} else {
			stats.Ignored++
		}
		if c.TriangleCount(world.PhaseBillboardAndTranslucent) > 0 {
			q.Billboard.Push(c, view.DistanceSq(box))
		} else {
			stats.Ignored++
		}

		c.Update()

		if c.IsDirty() || c.IsLightDirty() || c.IsFresh() {
			stats.Dirty++
			if b.updates != nil {
				b.updates.QueueChunkUpdate(c, UpdateDefault)
			}
		}
		stats.Visible++
	}
	return stats
}
