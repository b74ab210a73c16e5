package render

import "container/heap"

// chunkQueue is a FIFO of chunks, drained once per frame.
type chunkQueue struct {
	items []Chunk
}

func (q *chunkQueue) Push(c Chunk) { q.items = append(q.items, c) }

func (q *chunkQueue) Len() int { return len(q.items) }

// Drain calls fn for every queued chunk in insertion order and empties the queue.
func (q *chunkQueue) Drain(fn func(Chunk)) {
	for i, c := range q.items {
		q.items[i] = nil
		fn(c)
	}
	q.items = q.items[:0]
}

type distanceEntry struct {
	chunk Chunk
	dist  float32
}

type maxDistanceHeap []distanceEntry

func (h maxDistanceHeap) Len() int { return len(h) }

func (h maxDistanceHeap) Less(i, j int) bool { return h[i].dist > h[j].dist }

func (h maxDistanceHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *maxDistanceHeap) Push(x any) { *h = append(*h, x.(distanceEntry)) }

func (h *maxDistanceHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = distanceEntry{}
	*h = old[:n-1]
	return item
}

// DistanceQueue pops the farthest chunk first, so translucent geometry is
// drawn back to front.
type DistanceQueue struct {
	h maxDistanceHeap
}

// Push adds a chunk with its squared distance to the camera.
func (q *DistanceQueue) Push(c Chunk, distSq float32) {
	heap.Push(&q.h, distanceEntry{chunk: c, dist: distSq})
}

func (q *DistanceQueue) Len() int { return q.h.Len() }

// Drain pops every chunk, farthest first, and empties the queue.
func (q *DistanceQueue) Drain(fn func(Chunk)) {
	for q.h.Len() > 0 {
		e := heap.Pop(&q.h).(distanceEntry)
		fn(e.chunk)
	}
}

// renderableQueue is a FIFO of generic renderables.
type renderableQueue struct {
	items []Renderable
}

func (q *renderableQueue) Push(r Renderable) { q.items = append(q.items, r) }

func (q *renderableQueue) Len() int { return len(q.items) }

func (q *renderableQueue) Drain(fn func(Renderable)) {
	for i, r := range q.items {
		q.items[i] = nil
		fn(r)
	}
	q.items = q.items[:0]
}
