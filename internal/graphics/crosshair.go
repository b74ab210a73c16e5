package graphics

import (
	"terrastream/internal/camera"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

var crosshairVertices = []float32{
	-0.02, 0.0,
	0.02, 0.0,
	0.0, -0.02,
	0.0, 0.02,
}

// Crosshair is the first person overlay.
type Crosshair struct {
	shader   *Shader
	vao, vbo uint32
}

// NewCrosshair creates a new crosshair renderable
func NewCrosshair() (*Crosshair, error) {
	shader, err := NewShader(screenVertSrc, screenFragSrc)
	if err != nil {
		return nil, err
	}
	c := &Crosshair{shader: shader}

	gl.GenVertexArrays(1, &c.vao)
	gl.BindVertexArray(c.vao)
	gl.GenBuffers(1, &c.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, c.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(crosshairVertices)*4, gl.Ptr(crosshairVertices), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, 2*4, 0)
	gl.BindVertexArray(0)
	return c, nil
}

// Render renders the crosshair
func (c *Crosshair) Render(view *camera.Snapshot) {
	c.shader.Use()
	c.shader.SetFloat("aspectRatio", view.AspectRatio)
	c.shader.SetVector4("color", mgl32.Vec4{1, 1, 1, 1})

	gl.Disable(gl.DEPTH_TEST)
	gl.BindVertexArray(c.vao)
	gl.LineWidth(1.0)
	gl.DrawArrays(gl.LINES, 0, 4)
	gl.Enable(gl.DEPTH_TEST)
}

// Dispose cleans up OpenGL resources
func (c *Crosshair) Dispose() {
	if c.vao != 0 {
		gl.DeleteVertexArrays(1, &c.vao)
	}
	if c.vbo != 0 {
		gl.DeleteBuffers(1, &c.vbo)
	}
	c.shader.Delete()
}
