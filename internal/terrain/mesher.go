package terrain

import (
	"terrastream/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	colorSand  = mgl32.Vec4{0.86, 0.80, 0.55, 1}
	colorGrass = mgl32.Vec4{0.35, 0.62, 0.25, 1}
	colorRock  = mgl32.Vec4{0.50, 0.48, 0.46, 1}
	colorSnow  = mgl32.Vec4{0.95, 0.95, 0.97, 1}
	colorDirt  = mgl32.Vec4{0.45, 0.33, 0.22, 1}
	colorWater = mgl32.Vec4{0.20, 0.40, 0.80, 0.6}
	colorFlora = mgl32.Vec4{0.90, 0.35, 0.45, 0.9}
)

// waterDrop lowers the water surface below the block top.
const waterDrop = 0.125

// Mesher builds chunk meshes from a Heightfield. It is safe for concurrent use.
type Mesher struct {
	field *Heightfield
}

// NewMesher creates a mesher for field.
func NewMesher(field *Heightfield) *Mesher {
	return &Mesher{field: field}
}

// Mesh emits column tops and exposed sides as opaque geometry, the sea
// surface over submerged columns and crossed quads for flora.
func (m *Mesher) Mesh(coord world.ChunkCoord) (world.MeshData, error) {
	var data world.MeshData
	x0 := coord.X * world.ChunkSizeX
	z0 := coord.Z * world.ChunkSizeZ

	// Heights with a one column border for side faces.
	const w = world.ChunkSizeX + 2
	const d = world.ChunkSizeZ + 2
	var heights [w][d]int
	for i := 0; i < w; i++ {
		for k := 0; k < d; k++ {
			heights[i][k] = m.field.HeightAt(x0+i-1, z0+k-1)
		}
	}

	sea := m.field.SeaLevel()
	for i := 1; i <= world.ChunkSizeX; i++ {
		for k := 1; k <= world.ChunkSizeZ; k++ {
			x := float32(x0 + i - 1)
			z := float32(z0 + k - 1)
			h := heights[i][k]
			top := float32(h)

			opaque := data.Vertices[world.PhaseOpaque]
			opaque = quad(opaque,
				mgl32.Vec3{x, top, z}, mgl32.Vec3{x, top, z + 1},
				mgl32.Vec3{x + 1, top, z + 1}, mgl32.Vec3{x + 1, top, z},
				surfaceColor(h, sea))

			if n := float32(heights[i+1][k]); n < top {
				opaque = quad(opaque,
					mgl32.Vec3{x + 1, n, z}, mgl32.Vec3{x + 1, top, z},
					mgl32.Vec3{x + 1, top, z + 1}, mgl32.Vec3{x + 1, n, z + 1}, colorDirt)
			}
			if n := float32(heights[i-1][k]); n < top {
				opaque = quad(opaque,
					mgl32.Vec3{x, n, z}, mgl32.Vec3{x, n, z + 1},
					mgl32.Vec3{x, top, z + 1}, mgl32.Vec3{x, top, z}, colorDirt)
			}
			if n := float32(heights[i][k+1]); n < top {
				opaque = quad(opaque,
					mgl32.Vec3{x, n, z + 1}, mgl32.Vec3{x + 1, n, z + 1},
					mgl32.Vec3{x + 1, top, z + 1}, mgl32.Vec3{x, top, z + 1}, colorDirt)
			}
			if n := float32(heights[i][k-1]); n < top {
				opaque = quad(opaque,
					mgl32.Vec3{x, n, z}, mgl32.Vec3{x, top, z},
					mgl32.Vec3{x + 1, top, z}, mgl32.Vec3{x + 1, n, z}, colorDirt)
			}
			data.Vertices[world.PhaseOpaque] = opaque

			if h < sea {
				y := float32(sea) - waterDrop
				data.Vertices[world.PhaseWaterAndIce] = quad(data.Vertices[world.PhaseWaterAndIce],
					mgl32.Vec3{x, y, z}, mgl32.Vec3{x, y, z + 1},
					mgl32.Vec3{x + 1, y, z + 1}, mgl32.Vec3{x + 1, y, z}, colorWater)
			} else if m.field.HasFlora(x0+i-1, z0+k-1) {
				data.Vertices[world.PhaseBillboardAndTranslucent] = cross(
					data.Vertices[world.PhaseBillboardAndTranslucent], x, top, z)
			}
		}
	}
	return data, nil
}

func surfaceColor(height, sea int) mgl32.Vec4 {
	switch {
	case height <= sea+1:
		return colorSand
	case height < sea+36:
		return colorGrass
	case height < sea+56:
		return colorRock
	default:
		return colorSnow
	}
}

// quad appends two triangles a-b-c and a-c-d. The corners must be counter
// clockwise seen from the front; the normal is derived from them.
func quad(dst []float32, a, b, c, d mgl32.Vec3, col mgl32.Vec4) []float32 {
	n := b.Sub(a).Cross(c.Sub(a)).Normalize()
	for _, p := range [6]mgl32.Vec3{a, b, c, a, c, d} {
		dst = append(dst,
			p.X(), p.Y(), p.Z(),
			n.X(), n.Y(), n.Z(),
			col.X(), col.Y(), col.Z(), col.W())
	}
	return dst
}

// cross appends two diagonal double sided quads standing on the block at (x, y, z).
func cross(dst []float32, x, y, z float32) []float32 {
	const inset, height float32 = 0.15, 0.8
	lo, hi := inset, 1-inset
	diagonals := [2][2]mgl32.Vec3{
		{{x + lo, y, z + lo}, {x + hi, y, z + hi}},
		{{x + lo, y, z + hi}, {x + hi, y, z + lo}},
	}
	up := mgl32.Vec3{0, height, 0}
	for _, dg := range diagonals {
		p, q := dg[0], dg[1]
		dst = quad(dst, p, q, q.Add(up), p.Add(up), colorFlora)
		dst = quad(dst, q, p, p.Add(up), q.Add(up), colorFlora)
	}
	return dst
}
