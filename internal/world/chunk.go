package world

import (
	"errors"
	"fmt"

	"terrastream/internal/geom"

	"github.com/go-gl/mathgl/mgl32"
)

// Chunk represents a 16x256x16 column of the world together with its meshes
// and GPU buffers. A Chunk is owned by the GL thread; it is not safe for
// concurrent use.
type Chunk struct {
	X, Y, Z int

	dirty      bool
	lightDirty bool
	fresh      bool
	// revision increases whenever the chunk needs a new mesh; mesh results
	// computed for an older revision do not clear the dirty flags.
	revision uint64

	pending  *MeshData // finished mesh waiting for upload
	buffers  [NumPhases]Buffer
	resident bool

	alloc  BufferAllocator
	mesher Mesher
}

// NewChunk creates a fresh chunk at the specified chunk coordinates
func NewChunk(x, y, z int, alloc BufferAllocator, mesher Mesher) *Chunk {
	return &Chunk{
		X:      x,
		Y:      y,
		Z:      z,
		dirty:  true,
		fresh:  true,
		alloc:  alloc,
		mesher: mesher,
	}
}

// Coord returns the chunk coordinate.
func (c *Chunk) Coord() ChunkCoord {
	return ChunkCoord{X: c.X, Y: c.Y, Z: c.Z}
}

// AABB returns the world-space bounds of the chunk.
func (c *Chunk) AABB() geom.AABB {
	lo := mgl32.Vec3{
		float32(c.X * ChunkSizeX),
		float32(c.Y * ChunkSizeY),
		float32(c.Z * ChunkSizeZ),
	}
	return geom.AABB{Min: lo, Max: lo.Add(mgl32.Vec3{ChunkSizeX, ChunkSizeY, ChunkSizeZ})}
}

// IsDirty returns whether the chunk has been modified since its last mesh
func (c *Chunk) IsDirty() bool { return c.dirty }

// IsLightDirty returns whether lighting changed since its last mesh
func (c *Chunk) IsLightDirty() bool { return c.lightDirty }

// IsFresh returns whether the chunk has never been meshed
func (c *Chunk) IsFresh() bool { return c.fresh }

// Revision returns the current mesh revision.
func (c *Chunk) Revision() uint64 { return c.revision }

// MarkDirty flags the chunk for re-meshing.
func (c *Chunk) MarkDirty() {
	c.dirty = true
	c.revision++
}

// MarkLightDirty flags the chunk for re-meshing after a lighting change.
func (c *Chunk) MarkLightDirty() {
	c.lightDirty = true
	c.revision++
}

// Resident reports whether the chunk holds live GPU buffers.
func (c *Chunk) Resident() bool { return c.resident }

// TriangleCount returns the number of uploaded triangles for a phase.
func (c *Chunk) TriangleCount(phase RenderPhase) int {
	if !c.resident || phase < 0 || phase >= NumPhases {
		return 0
	}
	return c.buffers[phase].Triangles
}

// ApplyMesh stores a finished mesh for upload on the next Update. The dirty
// flags are cleared only when the mesh was built for the current revision.
// Reports whether the chunk is now up to date.
func (c *Chunk) ApplyMesh(data MeshData, revision uint64) bool {
	c.pending = &data
	if revision != c.revision {
		return false
	}
	c.dirty = false
	c.lightDirty = false
	c.fresh = false
	return true
}

// Update performs per-frame bookkeeping: a pending mesh is uploaded.
func (c *Chunk) Update() {
	if c.pending == nil {
		return
	}
	if err := c.GenerateVBOs(); err != nil {
		c.MarkDirty()
	}
}

// ProcessChunk builds the mesh synchronously on the calling goroutine.
func (c *Chunk) ProcessChunk() error {
	if c.mesher == nil {
		return errors.New("world: chunk has no mesher")
	}
	data, err := c.mesher.Mesh(c.Coord())
	if err != nil {
		return fmt.Errorf("world: mesh chunk %v: %w", c.Coord(), err)
	}
	c.ApplyMesh(data, c.revision)
	return nil
}

// GenerateVBOs uploads the pending mesh, replacing any previous buffers.
func (c *Chunk) GenerateVBOs() error {
	if c.pending == nil {
		return nil
	}
	if c.alloc == nil {
		return errors.New("world: chunk has no buffer allocator")
	}
	data := c.pending
	c.pending = nil

	if err := c.releaseBuffers(); err != nil {
		return err
	}
	for phase := PhaseOpaque; phase < NumPhases; phase++ {
		verts := data.Vertices[phase]
		if len(verts) == 0 {
			continue
		}
		b, err := c.alloc.Upload(phase, verts)
		if err != nil {
			// Keep the state consistent: drop whatever was uploaded.
			_ = c.releaseBuffers()
			return fmt.Errorf("world: upload %v mesh of chunk %v: %w", phase, c.Coord(), err)
		}
		c.buffers[phase] = b
	}
	c.resident = true
	return nil
}

// ClearMeshes releases the GPU buffers and any pending mesh. A chunk that
// lost its meshes is marked dirty so it is rebuilt before it is drawn again,
// also when a release fails.
func (c *Chunk) ClearMeshes() error {
	if !c.resident && c.pending == nil {
		return nil
	}
	c.pending = nil
	err := c.releaseBuffers()
	c.MarkDirty()
	if err != nil {
		return fmt.Errorf("world: release buffers of chunk %v: %w", c.Coord(), err)
	}
	return nil
}

// Render draws one phase of the chunk.
func (c *Chunk) Render(phase RenderPhase) {
	if !c.resident || phase < 0 || phase >= NumPhases {
		return
	}
	b := c.buffers[phase]
	if b.Triangles == 0 {
		return
	}
	c.alloc.Draw(phase, b)
}

// releaseBuffers frees every phase buffer. The chunk is non-resident afterwards
// even if some releases fail.
func (c *Chunk) releaseBuffers() error {
	var errs []error
	for i := range c.buffers {
		if c.buffers[i] == (Buffer{}) {
			continue
		}
		if err := c.alloc.Release(c.buffers[i]); err != nil {
			errs = append(errs, err)
		}
		c.buffers[i] = Buffer{}
	}
	c.resident = false
	return errors.Join(errs...)
}
