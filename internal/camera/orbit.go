package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	orbitRadius    = 32.0
	orbitHeight    = 32.0
	orbitSpeed     = 0.5 // radians per second of animation clock
	orbitFollowMax = 64.0
)

// Orbit places c on a circle above spawn, driven by the animation clock in
// seconds. The camera looks at the player while it is close enough, and at
// the spawn point otherwise.
func Orbit(c *Camera, spawn, player mgl32.Vec3, clock float64) {
	a := clock * orbitSpeed
	pos := spawn.Add(mgl32.Vec3{
		float32(math.Sin(a) * orbitRadius),
		orbitHeight,
		float32(math.Cos(a) * orbitRadius),
	})

	toPlayer := player.Sub(pos)
	dir := toPlayer
	if toPlayer.Len() > orbitFollowMax {
		dir = spawn.Sub(pos)
	}
	if dir.Len() == 0 {
		dir = mgl32.Vec3{0, -1, 0}
	}

	c.Position = pos
	c.Direction = dir.Normalize()
}
