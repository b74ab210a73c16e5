package world

// FloatsPerVertex is the interleaved layout of mesh vertices:
// position (3), normal (3), color RGBA (4).
const FloatsPerVertex = 10

// MeshData is CPU-side chunk geometry, one triangle list per render phase.
type MeshData struct {
	Vertices [NumPhases][]float32
}

// TriangleCount returns the number of triangles in a phase.
func (m *MeshData) TriangleCount(phase RenderPhase) int {
	if m == nil || phase < 0 || phase >= NumPhases {
		return 0
	}
	return len(m.Vertices[phase]) / (FloatsPerVertex * 3)
}

// Mesher turns a chunk coordinate into geometry. Implementations must be
// safe for concurrent use; they are called from mesh workers.
type Mesher interface {
	Mesh(coord ChunkCoord) (MeshData, error)
}

// Buffer is a GPU-resident vertex buffer.
type Buffer struct {
	VAO, VBO  uint32
	Triangles int
}

// BufferAllocator owns GPU buffer creation and release. Every method must be
// called on the thread that owns the GL context.
type BufferAllocator interface {
	Upload(phase RenderPhase, vertices []float32) (Buffer, error)
	Release(b Buffer) error
	Draw(phase RenderPhase, b Buffer)
}
