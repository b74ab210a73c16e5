package graphics

import (
	"errors"
	"fmt"
	"sync/atomic"

	"terrastream/internal/world"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// ErrNoContext is returned when GL did not hand out a buffer name.
var ErrNoContext = errors.New("graphics: no buffer allocated")

// ChunkBuffers uploads chunk meshes into VAO/VBO pairs and draws them with
// the chunk shader.
type ChunkBuffers struct {
	state *State
	live  atomic.Int64
}

// NewChunkBuffers creates an allocator drawing through state.
func NewChunkBuffers(state *State) *ChunkBuffers {
	return &ChunkBuffers{state: state}
}

// Live returns the number of buffers currently allocated.
func (b *ChunkBuffers) Live() int { return int(b.live.Load()) }

// Upload copies vertices into a new buffer.
func (b *ChunkBuffers) Upload(phase world.RenderPhase, vertices []float32) (world.Buffer, error) {
	if len(vertices)%(world.FloatsPerVertex*3) != 0 {
		return world.Buffer{}, fmt.Errorf("graphics: %s mesh has %d floats, not whole triangles", phase, len(vertices))
	}
	var buf world.Buffer
	gl.GenVertexArrays(1, &buf.VAO)
	gl.GenBuffers(1, &buf.VBO)
	if buf.VAO != 0 {
		b.live.Add(1)
	}
	if buf.VAO == 0 || buf.VBO == 0 {
		_ = b.Release(buf)
		return world.Buffer{}, fmt.Errorf("%s: %w", phase, ErrNoContext)
	}

	gl.BindVertexArray(buf.VAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, buf.VBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)

	stride := int32(world.FloatsPerVertex * 4)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointerWithOffset(2, 4, gl.FLOAT, false, stride, 6*4)
	gl.BindVertexArray(0)

	if code := gl.GetError(); code != gl.NO_ERROR {
		_ = b.Release(buf)
		return world.Buffer{}, fmt.Errorf("graphics: upload %s: gl error 0x%x", phase, code)
	}

	buf.Triangles = len(vertices) / (world.FloatsPerVertex * 3)
	return buf, nil
}

// Release deletes the GL objects of buf.
func (b *ChunkBuffers) Release(buf world.Buffer) error {
	if buf.VAO == 0 && buf.VBO == 0 {
		return nil
	}
	if buf.VBO != 0 {
		gl.DeleteBuffers(1, &buf.VBO)
	}
	if buf.VAO != 0 {
		gl.DeleteVertexArrays(1, &buf.VAO)
		b.live.Add(-1)
	}
	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("graphics: release buffer %d: gl error 0x%x", buf.VAO, code)
	}
	return nil
}

// Draw renders buf as a triangle list.
func (b *ChunkBuffers) Draw(phase world.RenderPhase, buf world.Buffer) {
	if buf.Triangles == 0 {
		return
	}
	b.state.useChunkShader()
	gl.BindVertexArray(buf.VAO)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(buf.Triangles*3))
}
