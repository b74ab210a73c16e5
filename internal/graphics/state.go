package graphics

import (
	"terrastream/internal/render"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// State owns the chunk shader and the GL toggles the world pipeline flips
// between passes. All methods must be called on the GL thread.
type State struct {
	chunk *Shader

	view, proj mgl32.Mat4

	fogColor    mgl32.Vec3
	fogDistance float32
	sunDir      mgl32.Vec3
}

var _ render.Graphics = (*State)(nil)

// NewState configures the default GL state and compiles the chunk shader.
func NewState() (*State, error) {
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	chunk, err := NewShader(chunkVertSrc, chunkFragSrc)
	if err != nil {
		return nil, err
	}
	s := &State{
		chunk:       chunk,
		view:        mgl32.Ident4(),
		proj:        mgl32.Ident4(),
		fogColor:    mgl32.Vec3{0.53, 0.81, 0.92},
		fogDistance: 256,
		sunDir:      mgl32.Vec3{0.3, 0.9, 0.2}.Normalize(),
	}
	s.chunk.Use()
	s.chunk.SetVector3("sunDir", s.sunDir)
	s.chunk.SetVector3("fogColor", s.fogColor)
	s.chunk.SetFloat("fogDistance", s.fogDistance)
	s.chunk.SetFloat("daylight", 1)
	return s, nil
}

// SetFog sets the fog color and the distance at which geometry is fully fogged.
func (s *State) SetFog(color mgl32.Vec3, distance float32) {
	s.fogColor = color
	s.fogDistance = distance
	s.chunk.Use()
	s.chunk.SetVector3("fogColor", color)
	s.chunk.SetFloat("fogDistance", distance)
}

// FogColor returns the current fog color.
func (s *State) FogColor() mgl32.Vec3 { return s.fogColor }

// Camera returns the matrices last passed to LoadCamera.
func (s *State) Camera() (view, proj mgl32.Mat4) { return s.view, s.proj }

// LoadCamera uploads the view and projection matrices.
func (s *State) LoadCamera(view, projection mgl32.Mat4) {
	s.view, s.proj = view, projection
	s.chunk.Use()
	s.chunk.SetMatrix4("view", view)
	s.chunk.SetMatrix4("proj", projection)
}

func (s *State) SetLighting(enabled bool) {
	s.chunk.Use()
	s.chunk.SetBool("lighting", enabled)
}

func (s *State) SetDaylight(intensity float32) {
	s.chunk.Use()
	s.chunk.SetFloat("daylight", intensity)
}

func (s *State) SetBlend(enabled bool) {
	if enabled {
		gl.Enable(gl.BLEND)
	} else {
		gl.Disable(gl.BLEND)
	}
}

func (s *State) SetColorMask(enabled bool) {
	gl.ColorMask(enabled, enabled, enabled, enabled)
}

func (s *State) SetFaceCulling(enabled bool) {
	if enabled {
		gl.Enable(gl.CULL_FACE)
	} else {
		gl.Disable(gl.CULL_FACE)
	}
}

func (s *State) SetWireframe(enabled bool) {
	if enabled {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	} else {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}
}

func (s *State) SetDepthFunc(fn render.DepthFunc) {
	if fn == render.DepthLessEqual {
		gl.DepthFunc(gl.LEQUAL)
	} else {
		gl.DepthFunc(gl.LESS)
	}
}

// useChunkShader binds the chunk program before chunk draws.
func (s *State) useChunkShader() {
	s.chunk.Use()
}

// Dispose frees the chunk shader.
func (s *State) Dispose() {
	s.chunk.Delete()
}
