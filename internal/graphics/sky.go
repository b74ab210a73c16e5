package graphics

import (
	"terrastream/internal/camera"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	dayZenith    = mgl32.Vec3{0.25, 0.50, 0.90}
	dayHorizon   = mgl32.Vec3{0.53, 0.81, 0.92}
	nightZenith  = mgl32.Vec3{0.01, 0.01, 0.05}
	nightHorizon = mgl32.Vec3{0.05, 0.06, 0.12}
)

// skyFade is how fast the displayed daylight follows the clock, per second.
const skyFade = 0.5

// Sky draws a gradient cube around the viewer and keeps the fog color in
// step with it.
type Sky struct {
	shader   *Shader
	vao, vbo uint32
	state    *State

	daylight func() float64
	current  float32
	primed   bool
}

// NewSky creates the sky. daylight returns the target intensity in [0, 1];
// it is first read on Update.
func NewSky(state *State, daylight func() float64) (*Sky, error) {
	shader, err := NewShader(skyVertSrc, skyFragSrc)
	if err != nil {
		return nil, err
	}
	s := &Sky{shader: shader, state: state, daylight: daylight, current: 1}
	s.setupVAO()
	return s, nil
}

func (s *Sky) setupVAO() {
	// 12 triangles of a unit cube, inward facing.
	vertices := []float32{
		-1, 1, -1, -1, -1, -1, 1, -1, -1, 1, -1, -1, 1, 1, -1, -1, 1, -1,
		-1, -1, 1, -1, -1, -1, -1, 1, -1, -1, 1, -1, -1, 1, 1, -1, -1, 1,
		1, -1, -1, 1, -1, 1, 1, 1, 1, 1, 1, 1, 1, 1, -1, 1, -1, -1,
		-1, -1, 1, -1, 1, 1, 1, 1, 1, 1, 1, 1, 1, -1, 1, -1, -1, 1,
		-1, 1, -1, 1, 1, -1, 1, 1, 1, 1, 1, 1, -1, 1, 1, -1, 1, -1,
		-1, -1, -1, -1, -1, 1, 1, -1, -1, 1, -1, -1, -1, -1, 1, 1, -1, 1,
	}
	gl.GenVertexArrays(1, &s.vao)
	gl.BindVertexArray(s.vao)
	gl.GenBuffers(1, &s.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, s.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.BindVertexArray(0)
}

// Update eases the displayed daylight toward the clock.
func (s *Sky) Update(delta float64) {
	target := float32(s.daylight())
	step := float32(delta) * skyFade
	switch {
	case !s.primed:
		s.current = target
		s.primed = true
	case s.current < target:
		s.current = min(s.current+step, target)
	case s.current > target:
		s.current = max(s.current-step, target)
	}
	_, horizon := s.colors()
	s.state.SetFog(horizon, s.state.fogDistance)
}

func (s *Sky) colors() (zenith, horizon mgl32.Vec3) {
	t := s.current
	return lerp3(nightZenith, dayZenith, t), lerp3(nightHorizon, dayHorizon, t)
}

// Render draws the sky with depth writes off so terrain always covers it.
func (s *Sky) Render(view *camera.Snapshot) {
	zenith, horizon := s.colors()
	s.shader.Use()
	s.shader.SetMatrix4("view", view.NormalizedView)
	s.shader.SetMatrix4("proj", view.Projection)
	s.shader.SetVector3("zenith", zenith)
	s.shader.SetVector3("horizon", horizon)

	gl.DepthMask(false)
	gl.Disable(gl.CULL_FACE)
	gl.BindVertexArray(s.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, 36)
	gl.Enable(gl.CULL_FACE)
	gl.DepthMask(true)
}

// Dispose frees the GL objects.
func (s *Sky) Dispose() {
	if s.vao != 0 {
		gl.DeleteVertexArrays(1, &s.vao)
	}
	if s.vbo != 0 {
		gl.DeleteBuffers(1, &s.vbo)
	}
	s.shader.Delete()
}

func lerp3(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}
