package world

import "fmt"

const (
	// Chunk dimensions
	ChunkSizeX = 16
	ChunkSizeY = 256
	ChunkSizeZ = 16
)

// ChunkCoord identifies a chunk on the chunk grid.
type ChunkCoord struct {
	X, Y, Z int
}

func (c ChunkCoord) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.X, c.Y, c.Z)
}

// RenderPhase selects one of a chunk's meshes and the GL state it is drawn with.
type RenderPhase int

const (
	PhaseOpaque RenderPhase = iota
	PhaseWaterAndIce
	PhaseBillboardAndTranslucent

	NumPhases
)

func (p RenderPhase) String() string {
	switch p {
	case PhaseOpaque:
		return "opaque"
	case PhaseWaterAndIce:
		return "water_and_ice"
	case PhaseBillboardAndTranslucent:
		return "billboard_and_translucent"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// floorDiv performs floor division for negative numbers
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// ChunkCoordAt returns the chunk containing world block (x, y, z).
func ChunkCoordAt(x, y, z int) ChunkCoord {
	return ChunkCoord{
		X: floorDiv(x, ChunkSizeX),
		Y: floorDiv(y, ChunkSizeY),
		Z: floorDiv(z, ChunkSizeZ),
	}
}
