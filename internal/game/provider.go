package game

import (
	"terrastream/internal/render"
	"terrastream/internal/world"
)

// chunkProvider exposes a world.ChunkStore to the renderer.
type chunkProvider struct {
	store *world.ChunkStore
}

func (p chunkProvider) GetChunk(x, y, z int) render.Chunk {
	return p.store.GetChunk(x, y, z)
}

func (p chunkProvider) FlushCache() { p.store.FlushCache() }

func (p chunkProvider) Size() int { return p.store.Size() }

func (p chunkProvider) Dispose() { p.store.Dispose() }
