package world

import (
	"log"
	"sort"
	"sync"
)

type storeEntry struct {
	chunk  *Chunk
	access uint64
}

// ChunkStore manages the storage and retrieval of chunks. It keeps at most
// capacity chunks after each FlushCache; the least recently requested chunks
// are dropped first.
type ChunkStore struct {
	// Map of chunks indexed by their coordinates
	chunks   map[ChunkCoord]*storeEntry
	mu       sync.RWMutex
	clock    uint64 // Increases on every GetChunk
	capacity int

	alloc  BufferAllocator
	mesher Mesher
}

// NewChunkStore creates a new chunk store. Created chunks share alloc and mesher.
func NewChunkStore(capacity int, alloc BufferAllocator, mesher Mesher) *ChunkStore {
	return &ChunkStore{
		chunks:   make(map[ChunkCoord]*storeEntry),
		capacity: capacity,
		alloc:    alloc,
		mesher:   mesher,
	}
}

// GetChunk returns the chunk at the specified chunk coordinates, creating it
// if absent. Every call refreshes the chunk's access stamp.
func (cs *ChunkStore) GetChunk(chunkX, chunkY, chunkZ int) *Chunk {
	coord := ChunkCoord{X: chunkX, Y: chunkY, Z: chunkZ}
	cs.mu.Lock()
	defer cs.mu.Unlock()

	cs.clock++
	if e, ok := cs.chunks[coord]; ok {
		e.access = cs.clock
		return e.chunk
	}
	chunk := NewChunk(chunkX, chunkY, chunkZ, cs.alloc, cs.mesher)
	cs.chunks[coord] = &storeEntry{chunk: chunk, access: cs.clock}
	return chunk
}

// Size returns the number of cached chunks.
func (cs *ChunkStore) Size() int {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return len(cs.chunks)
}

// Capacity returns the cache limit applied by FlushCache.
func (cs *ChunkStore) Capacity() int {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.capacity
}

// SetCapacity changes the cache limit. It takes effect on the next FlushCache.
func (cs *ChunkStore) SetCapacity(capacity int) {
	cs.mu.Lock()
	cs.capacity = capacity
	cs.mu.Unlock()
}

// FlushCache drops the least recently requested chunks beyond capacity and
// releases their GPU buffers. Must be called on the GL thread.
// Returns number of removed chunks.
func (cs *ChunkStore) FlushCache() int {
	cs.mu.Lock()
	excess := len(cs.chunks) - cs.capacity
	if excess <= 0 {
		cs.mu.Unlock()
		return 0
	}
	entries := make([]*storeEntry, 0, len(cs.chunks))
	for _, e := range cs.chunks {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].access < entries[j].access
	})
	victims := entries[:excess]
	for _, e := range victims {
		delete(cs.chunks, e.chunk.Coord())
	}
	cs.mu.Unlock()

	for _, e := range victims {
		if err := e.chunk.ClearMeshes(); err != nil {
			log.Printf("world: flush %v: %v", e.chunk.Coord(), err)
		}
	}
	return len(victims)
}

// Dispose releases the buffers of every cached chunk and empties the store.
func (cs *ChunkStore) Dispose() {
	cs.mu.Lock()
	entries := cs.chunks
	cs.chunks = make(map[ChunkCoord]*storeEntry)
	cs.mu.Unlock()

	for _, e := range entries {
		if err := e.chunk.ClearMeshes(); err != nil {
			log.Printf("world: dispose %v: %v", e.chunk.Coord(), err)
		}
	}
}
