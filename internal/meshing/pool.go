package meshing

import (
	"context"
	"log"
	"sync"

	"terrastream/internal/render"
	"terrastream/internal/world"
)

// Target is a chunk whose mesh can be built off the GL thread. The revision
// lets the chunk reject results computed before its latest change.
type Target interface {
	Coord() world.ChunkCoord
	Revision() uint64
	ApplyMesh(data world.MeshData, revision uint64) bool
}

// MeshJob represents a meshing job request
type MeshJob struct {
	Target   Target
	Coord    world.ChunkCoord
	Revision uint64
}

// MeshResult contains the result of a meshing operation
type MeshResult struct {
	Target   Target
	Coord    world.ChunkCoord
	Revision uint64
	Data     world.MeshData
	Error    error
}

// UpdateManager runs chunk mesh jobs on a pool of worker goroutines. Queueing
// and result processing happen on the GL thread; only Mesher.Mesh runs on
// the workers.
type UpdateManager struct {
	mesher   world.Mesher
	jobQueue chan MeshJob
	results  chan MeshResult
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup

	mu       sync.Mutex
	pending  map[world.ChunkCoord]struct{}
	dropped  int
	failures int
	applied  int
}

// NewUpdateManager creates a mesh worker pool
func NewUpdateManager(mesher world.Mesher, workers, queueSize int) *UpdateManager {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	m := &UpdateManager{
		mesher:   mesher,
		jobQueue: make(chan MeshJob, queueSize),
		results:  make(chan MeshResult, queueSize),
		ctx:      ctx,
		cancel:   cancel,
		pending:  make(map[world.ChunkCoord]struct{}),
	}

	// Start worker goroutines
	for i := range workers {
		m.wg.Add(1)
		go m.worker(i)
	}
	return m
}

// QueueChunkUpdate submits c for re-meshing without blocking. A chunk that
// already has a job in flight is skipped, and so is a chunk arriving while
// the queue is full; both stay dirty and are offered again next frame.
// UpdateSingleThreaded meshes the chunk on the calling goroutine.
func (m *UpdateManager) QueueChunkUpdate(c render.Chunk, t render.UpdateType) {
	target, ok := c.(Target)
	if t == render.UpdateSingleThreaded || !ok {
		if err := c.ProcessChunk(); err != nil {
			log.Printf("meshing: %v", err)
		}
		return
	}

	coord := target.Coord()
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, busy := m.pending[coord]; busy {
		return
	}
	job := MeshJob{Target: target, Coord: coord, Revision: target.Revision()}
	select {
	case m.jobQueue <- job:
		m.pending[coord] = struct{}{}
	default:
		m.dropped++ // Queue is full
	}
}

// ProcessResults applies up to max finished meshes (all available when max
// <= 0) without blocking. Failed jobs leave their chunk dirty. Returns the
// number of results handled.
func (m *UpdateManager) ProcessResults(max int) int {
	handled := 0
	for max <= 0 || handled < max {
		select {
		case res := <-m.results:
			m.finish(res)
			handled++
		default:
			return handled
		}
	}
	return handled
}

func (m *UpdateManager) finish(res MeshResult) {
	m.mu.Lock()
	delete(m.pending, res.Coord)
	if res.Error != nil {
		m.failures++
	} else {
		m.applied++
	}
	m.mu.Unlock()

	if res.Error != nil {
		log.Printf("meshing: chunk %v: %v", res.Coord, res.Error)
		return
	}
	res.Target.ApplyMesh(res.Data, res.Revision)
}

// worker is the worker goroutine that processes mesh jobs
func (m *UpdateManager) worker(id int) {
	defer m.wg.Done()

	for {
		select {
		case job := <-m.jobQueue:
			data, err := m.mesher.Mesh(job.Coord)
			result := MeshResult{
				Target:   job.Target,
				Coord:    job.Coord,
				Revision: job.Revision,
				Data:     data,
				Error:    err,
			}

			// Send result back
			select {
			case m.results <- result:
			case <-m.ctx.Done():
				return
			}

		case <-m.ctx.Done():
			return
		}
	}
}

// Pending returns the number of chunks with a job in flight.
func (m *UpdateManager) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}

// Dropped returns how many submissions were skipped because the queue was full.
func (m *UpdateManager) Dropped() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dropped
}

// Failures returns the number of failed mesh jobs.
func (m *UpdateManager) Failures() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.failures
}

// Applied returns the number of meshes handed back to chunks.
func (m *UpdateManager) Applied() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.applied
}

// QueueLength returns the number of jobs waiting for a worker.
func (m *UpdateManager) QueueLength() int {
	return len(m.jobQueue)
}

// Shutdown stops the workers and waits for them to exit. Unprocessed results
// are discarded.
func (m *UpdateManager) Shutdown() {
	m.cancel()
	m.wg.Wait()
}

// Dispose implements the renderer's resource release hook.
func (m *UpdateManager) Dispose() { m.Shutdown() }
