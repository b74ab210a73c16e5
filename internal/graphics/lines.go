package graphics

import (
	"terrastream/internal/geom"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// unitCubeEdges are the 12 edges of the [0,1]^3 cube as line pairs.
var unitCubeEdges = []float32{
	// Bottom
	0, 0, 0, 1, 0, 0,
	1, 0, 0, 1, 0, 1,
	1, 0, 1, 0, 0, 1,
	0, 0, 1, 0, 0, 0,

	// Top
	0, 1, 0, 1, 1, 0,
	1, 1, 0, 1, 1, 1,
	1, 1, 1, 0, 1, 1,
	0, 1, 1, 0, 1, 0,

	// Connecting edges
	0, 0, 0, 0, 1, 0,
	1, 0, 0, 1, 1, 0,
	1, 0, 1, 1, 1, 1,
	0, 0, 1, 0, 1, 1,
}

// Lines draws axis aligned boxes as wireframes for collision debugging.
type Lines struct {
	shader   *Shader
	vao, vbo uint32
	state    *State
	color    mgl32.Vec3
}

// NewLines creates the box drawer. It reads the camera from state.
func NewLines(state *State) (*Lines, error) {
	shader, err := NewShader(lineVertSrc, lineFragSrc)
	if err != nil {
		return nil, err
	}
	l := &Lines{shader: shader, state: state, color: mgl32.Vec3{1, 0.2, 0.2}}

	gl.GenVertexArrays(1, &l.vao)
	gl.BindVertexArray(l.vao)
	gl.GenBuffers(1, &l.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, l.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(unitCubeEdges)*4, gl.Ptr(unitCubeEdges), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.BindVertexArray(0)
	return l, nil
}

// DrawAABB draws box with the camera last loaded into the GL state.
func (l *Lines) DrawAABB(box geom.AABB) {
	view, proj := l.state.Camera()
	size := box.Max.Sub(box.Min)
	model := mgl32.Translate3D(box.Min.X(), box.Min.Y(), box.Min.Z()).
		Mul4(mgl32.Scale3D(size.X(), size.Y(), size.Z()))

	l.shader.Use()
	l.shader.SetMatrix4("proj", proj)
	l.shader.SetMatrix4("view", view)
	l.shader.SetMatrix4("model", model)
	l.shader.SetVector3("color", l.color)

	gl.BindVertexArray(l.vao)
	gl.LineWidth(1.0)
	gl.DrawArrays(gl.LINES, 0, int32(len(unitCubeEdges)/3))
}

// Dispose cleans up OpenGL resources
func (l *Lines) Dispose() {
	if l.vao != 0 {
		gl.DeleteVertexArrays(1, &l.vao)
	}
	if l.vbo != 0 {
		gl.DeleteBuffers(1, &l.vbo)
	}
	l.shader.Delete()
}
