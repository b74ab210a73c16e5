package game

import (
	"log"
	"math"

	"terrastream/internal/camera"
	"terrastream/internal/geom"
	"terrastream/internal/input"
	"terrastream/internal/physics"
	"terrastream/internal/render"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	FlySpeed         = 12.0
	SprintMultiplier = 3.0
	MouseSensitivity = 0.1

	PlayerWidth  = 0.6
	PlayerHeight = 1.8
	EyeHeight    = 1.62

	// VoidDepth is the height below which the player is sent back to spawn.
	VoidDepth = -64
)

// FlyPlayer is a free flying viewer that cannot sink into the terrain.
// Position is the point between the feet.
type FlyPlayer struct {
	position  mgl32.Vec3
	spawn     mgl32.Vec3
	colliders render.CollisionSource

	CamYaw   float64
	CamPitch float64

	FirstMouse bool
	LastMouseX float64
	LastMouseY float64
}

// NewFlyPlayer creates a player standing at spawn, looking along -Z.
func NewFlyPlayer(spawn mgl32.Vec3) *FlyPlayer {
	return &FlyPlayer{
		position:   spawn,
		spawn:      spawn,
		CamYaw:     -90,
		FirstMouse: true,
	}
}

func (p *FlyPlayer) Valid() bool { return p != nil }

func (p *FlyPlayer) Position() mgl32.Vec3 { return p.position }

func (p *FlyPlayer) SpawnPosition() mgl32.Vec3 { return p.spawn }

// Bounds returns the collision box around the player.
func (p *FlyPlayer) Bounds() (geom.AABB, bool) {
	half := float32(PlayerWidth / 2)
	return geom.AABB{
		Min: p.position.Sub(mgl32.Vec3{half, 0, half}),
		Max: p.position.Add(mgl32.Vec3{half, PlayerHeight, half}),
	}, true
}

// EyePosition returns the camera position.
func (p *FlyPlayer) EyePosition() mgl32.Vec3 {
	return p.position.Add(mgl32.Vec3{0, EyeHeight, 0})
}

// SetColliders enables terrain collision; nil disables it.
func (p *FlyPlayer) SetColliders(c render.CollisionSource) { p.colliders = c }

// Teleport moves the player without changing the spawn point.
func (p *FlyPlayer) Teleport(pos mgl32.Vec3) { p.position = pos }

func (p *FlyPlayer) HandleMouseMovement(xpos, ypos float64) {
	if p.FirstMouse {
		p.LastMouseX = xpos
		p.LastMouseY = ypos
		p.FirstMouse = false
		return
	}

	xoffset := (xpos - p.LastMouseX) * MouseSensitivity
	yoffset := (p.LastMouseY - ypos) * MouseSensitivity
	p.LastMouseX = xpos
	p.LastMouseY = ypos

	p.CamYaw += xoffset
	p.CamPitch += yoffset

	// Constrain pitch
	if p.CamPitch > 89.0 {
		p.CamPitch = 89.0
	}
	if p.CamPitch < -89.0 {
		p.CamPitch = -89.0
	}
}

func (p *FlyPlayer) FrontVector() mgl32.Vec3 {
	y := mgl32.DegToRad(float32(p.CamYaw))
	pt := mgl32.DegToRad(float32(p.CamPitch))
	fx := float32(math.Cos(float64(y)) * math.Cos(float64(pt)))
	fy := float32(math.Sin(float64(pt)))
	fz := float32(math.Sin(float64(y)) * math.Cos(float64(pt)))
	return mgl32.Vec3{fx, fy, fz}.Normalize()
}

// Update moves the player from the held movement actions.
func (p *FlyPlayer) Update(dt float64, im *input.InputManager) {
	var forward, strafe, vertical float32
	if im.IsActive(input.ActionMoveForward) {
		forward++
	}
	if im.IsActive(input.ActionMoveBackward) {
		forward--
	}
	if im.IsActive(input.ActionMoveRight) {
		strafe++
	}
	if im.IsActive(input.ActionMoveLeft) {
		strafe--
	}
	if im.IsActive(input.ActionAscend) {
		vertical++
	}
	if im.IsActive(input.ActionDescend) {
		vertical--
	}
	p.move(dt, forward, strafe, vertical, im.IsActive(input.ActionSprint))
}

// move flies along the horizontal view direction; vertical motion is world up.
func (p *FlyPlayer) move(dt float64, forward, strafe, vertical float32, sprint bool) {
	yaw := float64(mgl32.DegToRad(float32(p.CamYaw)))
	front := mgl32.Vec3{float32(math.Cos(yaw)), 0, float32(math.Sin(yaw))}
	right := mgl32.Vec3{-front.Z(), 0, front.X()}

	dir := front.Mul(forward).Add(right.Mul(strafe)).Add(mgl32.Vec3{0, vertical, 0})
	if dir.Len() == 0 {
		return
	}
	speed := float32(FlySpeed * dt)
	if sprint {
		speed *= SprintMultiplier
	}
	p.position = p.position.Add(dir.Normalize().Mul(speed))

	if p.colliders != nil {
		box, _ := p.Bounds()
		if lift := physics.PushUp(box, p.colliders.CollidersNear(p.position)); lift > 0 {
			p.position[1] += lift
		}
	}
}

// Apply places c at the player's eyes.
func (p *FlyPlayer) Apply(c *camera.Camera) {
	c.Position = p.EyePosition()
	c.Direction = p.FrontVector()
}

// spawnGuard returns a player that left the world to its spawn point. It
// runs on every world tick.
type spawnGuard struct {
	player *FlyPlayer
}

func (g spawnGuard) TickSpawn() {
	if !g.player.Valid() || g.player.Position().Y() >= VoidDepth {
		return
	}
	log.Printf("game: player fell out of the world at %v, respawning", g.player.Position())
	g.player.Teleport(g.player.SpawnPosition())
}
