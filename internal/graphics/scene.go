package graphics

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// UnderwaterTint is the screen tint used while the camera is submerged.
var UnderwaterTint = mgl32.Vec4{0.1, 0.25, 0.55, 0.45}

var fullscreenQuad = []float32{
	-1, -1, 1, -1, 1, 1,
	-1, -1, 1, 1, -1, 1,
}

// Scene clears the frame and applies a fullscreen tint as post-processing.
type Scene struct {
	shader   *Shader
	vao, vbo uint32
	state    *State
	tint     mgl32.Vec4
}

// NewScene creates the scene hooks.
func NewScene(state *State) (*Scene, error) {
	shader, err := NewShader(screenVertSrc, screenFragSrc)
	if err != nil {
		return nil, err
	}
	s := &Scene{shader: shader, state: state}

	gl.GenVertexArrays(1, &s.vao)
	gl.BindVertexArray(s.vao)
	gl.GenBuffers(1, &s.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, s.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(fullscreenQuad)*4, gl.Ptr(fullscreenQuad), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, 2*4, 0)
	gl.BindVertexArray(0)
	return s, nil
}

// SetTint sets the post-processing tint. A zero alpha disables it.
func (s *Scene) SetTint(tint mgl32.Vec4) { s.tint = tint }

// Tint returns the current tint.
func (s *Scene) Tint() mgl32.Vec4 { return s.tint }

// BeginScene clears color and depth to the fog color.
func (s *Scene) BeginScene() {
	fog := s.state.FogColor()
	gl.ClearColor(fog.X(), fog.Y(), fog.Z(), 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (s *Scene) EndScene() {}

// RenderScene blends the tint over the finished frame.
func (s *Scene) RenderScene() {
	if s.tint.W() <= 0 {
		return
	}
	s.shader.Use()
	s.shader.SetFloat("aspectRatio", 1)
	s.shader.SetVector4("color", s.tint)

	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BindVertexArray(s.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.Disable(gl.BLEND)
	gl.Enable(gl.DEPTH_TEST)
}

// Dispose cleans up OpenGL resources
func (s *Scene) Dispose() {
	if s.vao != 0 {
		gl.DeleteVertexArrays(1, &s.vao)
	}
	if s.vbo != 0 {
		gl.DeleteBuffers(1, &s.vbo)
	}
	s.shader.Delete()
}
