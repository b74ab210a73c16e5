package render

import (
	"errors"
	"testing"

	"terrastream/internal/world"
)

func TestBuildRoutesByTriangleCount(t *testing.T) {
	c := newFakeChunk("w", ahead(20))
	c.tris = [world.NumPhases]int{0, 120, 0}

	var q Queues
	stats := NewQueueBuilder(nil).Build([]Chunk{c}, defaultView(), 10, &q)

	if q.Opaque.Len() != 0 || q.Billboard.Len() != 0 || q.Water.Len() != 1 {
		t.Fatalf("queues: opaque %d, water %d, billboard %d", q.Opaque.Len(), q.Water.Len(), q.Billboard.Len())
	}
	if stats.Ignored != int(world.NumPhases)-1 {
		t.Fatalf("ignored: got %d, want %d", stats.Ignored, world.NumPhases-1)
	}
	if stats.Visible != 1 || c.updates != 1 {
		t.Fatalf("visible %d, updates %d", stats.Visible, c.updates)
	}
}

func TestBuildEvictsBeyondBudget(t *testing.T) {
	var tracked []Chunk
	var chunks []*fakeChunk
	for i := 0; i < 20; i++ {
		c := newFakeChunk("c", behind(float32(10+i)))
		c.resident = true
		chunks = append(chunks, c)
		tracked = append(tracked, c)
	}

	var q Queues
	stats := NewQueueBuilder(nil).Build(tracked, defaultView(), 10, &q)

	for i, c := range chunks {
		if i < 10 && c.clears != 0 {
			t.Fatalf("chunk %d within budget was released", i)
		}
		if i >= 10 && c.clears != 1 {
			t.Fatalf("chunk %d beyond budget: %d release calls", i, c.clears)
		}
	}
	if stats.Visible != 0 || stats.Evicted != 10 || q.Len() != 0 {
		t.Fatalf("unexpected stats %+v", stats)
	}

	stats = NewQueueBuilder(nil).Build(tracked, defaultView(), 10, &q)
	if stats.Evicted != 0 {
		t.Fatalf("released chunks counted again: evicted %d", stats.Evicted)
	}
}

func TestBuildKeepsVisibleChunksBeyondBudget(t *testing.T) {
	near := newFakeChunk("near", behind(5))
	far := newFakeChunk("far", ahead(40))
	far.resident = true
	far.tris[world.PhaseOpaque] = 1

	var q Queues
	NewQueueBuilder(nil).Build([]Chunk{near, far}, defaultView(), 0, &q)
	if far.clears != 0 || !far.resident {
		t.Fatal("visible chunk lost its buffers")
	}
	if near.clears != 1 {
		t.Fatal("invisible chunk beyond budget not released")
	}
}

func TestBuildCountsReleaseFailures(t *testing.T) {
	c := newFakeChunk("c", behind(5))
	c.clearErr = errors.New("device lost")

	var q Queues
	stats := NewQueueBuilder(nil).Build([]Chunk{c}, defaultView(), 0, &q)
	if stats.ReleaseFailures != 1 {
		t.Fatalf("release failures: got %d", stats.ReleaseFailures)
	}
}

func TestBuildQueuesDirtyChunks(t *testing.T) {
	dirty := newFakeChunk("dirty", ahead(10))
	dirty.dirty = true
	light := newFakeChunk("light", ahead(12))
	light.lightDirty = true
	fresh := newFakeChunk("fresh", ahead(14))
	fresh.fresh = true
	clean := newFakeChunk("clean", ahead(16))
	hidden := newFakeChunk("hidden", behind(10))
	hidden.dirty = true

	u := &fakeUpdates{}
	var q Queues
	stats := NewQueueBuilder(u).Build([]Chunk{dirty, light, fresh, clean, hidden}, defaultView(), 10, &q)

	if stats.Dirty != 3 || len(u.queued) != 3 {
		t.Fatalf("dirty %d, queued %d", stats.Dirty, len(u.queued))
	}
	for _, c := range u.queued {
		if c == Chunk(clean) || c == Chunk(hidden) {
			t.Fatalf("queued %s", c.(*fakeChunk).name)
		}
	}
	if stats.Visible != 4 {
		t.Fatalf("visible: got %d", stats.Visible)
	}
	if stats.Ignored != 4*int(world.NumPhases) {
		t.Fatalf("ignored: got %d", stats.Ignored)
	}
}

func TestTranslucentQueuesDrainFarthestFirst(t *testing.T) {
	dists := []float32{30, 10, 50, 20, 40, 20}
	var tracked []Chunk
	for _, d := range dists {
		c := newFakeChunk("c", ahead(d))
		c.tris = [world.NumPhases]int{0, 3, 3}
		tracked = append(tracked, c)
	}

	view := defaultView()
	var q Queues
	NewQueueBuilder(nil).Build(tracked, view, 100, &q)

	for _, dq := range []*DistanceQueue{&q.Water, &q.Billboard} {
		if dq.Len() != len(dists) {
			t.Fatalf("queue length: got %d", dq.Len())
		}
		prev := float32(-1)
		dq.Drain(func(c Chunk) {
			d := view.DistanceSq(c.AABB())
			if prev >= 0 && d > prev {
				t.Fatalf("distance %v drawn after %v", d, prev)
			}
			prev = d
		})
		if dq.Len() != 0 {
			t.Fatal("queue not drained")
		}
	}
}

func BenchmarkBuild(b *testing.B) {
	var tracked []Chunk
	for i := 0; i < 1024; i++ {
		c := newFakeChunk("c", ahead(float32(i%200)+2))
		c.tris = [world.NumPhases]int{10, 1, 0}
		tracked = append(tracked, c)
	}
	view := defaultView()
	builder := NewQueueBuilder(nil)
	var q Queues
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		builder.Build(tracked, view, 512, &q)
		q.Opaque.Drain(func(Chunk) {})
		q.Water.Drain(func(Chunk) {})
		q.Billboard.Drain(func(Chunk) {})
	}
}
