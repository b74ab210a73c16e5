package terrain

import (
	"math"

	"terrastream/internal/geom"
	"terrastream/internal/world"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/ojrac/opensimplex-go"
)

const (
	baseHeight  = 40
	amplitude   = 28
	octaves     = 4
	lacunarity  = 2.0
	persistence = 0.5
	scale       = 96.0

	// one flower per floraRarity dry columns on average
	floraRarity = 23
)

// Heightfield is a column terrain: every (x, z) column is solid up to
// HeightAt and water fills the columns below the sea level.
type Heightfield struct {
	noise    opensimplex.Noise32
	seed     uint32
	seaLevel int
}

// NewHeightfield creates the terrain for a seed.
func NewHeightfield(seed int64, seaLevel int) *Heightfield {
	return &Heightfield{
		noise:    opensimplex.New32(seed),
		seed:     uint32(seed),
		seaLevel: seaLevel,
	}
}

// SeaLevel returns the height of the water surface.
func (h *Heightfield) SeaLevel() int { return h.seaLevel }

// HeightAt returns the number of solid blocks in column (x, z), in [1, ChunkSizeY-1].
func (h *Heightfield) HeightAt(x, z int) int {
	val := float32(0)
	amp := float32(amplitude)
	x1 := float32(x)
	z1 := float32(z)
	for i := 0; i < octaves; i++ {
		val += h.noise.Eval2(x1/scale, z1/scale) * amp
		x1 *= lacunarity
		z1 *= lacunarity
		amp *= persistence
	}
	height := baseHeight + int(val)
	if height < 1 {
		return 1
	}
	if height > world.ChunkSizeY-1 {
		return world.ChunkSizeY - 1
	}
	return height
}

// HasFlora reports whether a billboard plant grows on top of column (x, z).
func (h *Heightfield) HasFlora(x, z int) bool {
	if h.HeightAt(x, z) <= h.seaLevel {
		return false
	}
	return hash2(h.seed, int32(x), int32(z))%floraRarity == 0
}

// IsLiquidAt reports whether p lies in a water block.
func (h *Heightfield) IsLiquidAt(p mgl32.Vec3) bool {
	x := int(math.Floor(float64(p.X())))
	y := int(math.Floor(float64(p.Y())))
	z := int(math.Floor(float64(p.Z())))
	return y < h.seaLevel && y >= h.HeightAt(x, z)
}

// CollidersNear returns the top block boxes of the 3x3 columns around p.
func (h *Heightfield) CollidersNear(p mgl32.Vec3) []geom.AABB {
	cx := int(math.Floor(float64(p.X())))
	cz := int(math.Floor(float64(p.Z())))
	boxes := make([]geom.AABB, 0, 9)
	for dx := -1; dx <= 1; dx++ {
		for dz := -1; dz <= 1; dz++ {
			x, z := cx+dx, cz+dz
			top := float32(h.HeightAt(x, z))
			boxes = append(boxes, geom.AABB{
				Min: mgl32.Vec3{float32(x), top - 1, float32(z)},
				Max: mgl32.Vec3{float32(x + 1), top, float32(z + 1)},
			})
		}
	}
	return boxes
}

// SpawnPoint returns a dry position near the origin, standing on the ground.
func (h *Heightfield) SpawnPoint() mgl32.Vec3 {
	for r := 0; r < 256; r += 4 {
		for _, d := range [][2]int{{r, 0}, {0, r}, {-r, 0}, {0, -r}} {
			x, z := d[0], d[1]
			if height := h.HeightAt(x, z); height > h.seaLevel {
				return mgl32.Vec3{float32(x) + 0.5, float32(height) + 2, float32(z) + 0.5}
			}
		}
	}
	return mgl32.Vec3{0.5, float32(h.seaLevel) + 2, 0.5}
}

// hash2 returns a stable hash for 2D integer coordinates + seed.
func hash2(seed uint32, x, z int32) uint32 {
	v := seed
	v ^= uint32(x) * 0x9e3779b1
	v ^= uint32(z) * 0x85ebca6b
	v ^= v >> 16
	v *= 0x7feb352d
	v ^= v >> 15
	v *= 0x846ca68b
	v ^= v >> 16
	return v
}
