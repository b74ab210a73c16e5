package render

import (
	"terrastream/internal/camera"
	"terrastream/internal/geom"
	"terrastream/internal/world"
)

// Frame is everything one pass of the pipeline consumes. The queues are
// drained while rendering.
type Frame struct {
	View   *camera.Snapshot
	Chunks *Queues

	Opaque      renderableQueue
	Transparent renderableQueue

	Wireframe bool
	// Daylight is the ambient sun intensity for lit passes.
	Daylight float32
	// DebugBoxes are drawn when non-empty.
	DebugBoxes []geom.AABB
	// FirstPerson enables the first person overlay.
	FirstPerson bool
}

// Pipeline draws a frame in a fixed phase order.
type Pipeline struct {
	GL          Graphics
	Scene       Scene
	Sky         SkyRenderer
	Debug       DebugRenderer
	Overlay     Overlay
	Subscribers []RenderSubscriber
	Metrics     Metrics
}

func (p *Pipeline) track(name string) func() {
	if p.Metrics == nil {
		return noopMetrics{}.Track(name)
	}
	return p.Metrics.Track(name)
}

// Render draws f. Every queue of f is empty afterwards.
func (p *Pipeline) Render(f *Frame) {
	view := f.View

	if p.Scene != nil {
		p.Scene.BeginScene()
	}
	// The sky sits on the far plane and water draws twice at equal depth.
	p.GL.SetDepthFunc(DepthLessEqual)

	p.renderSky(view)

	stopWorld := p.track("render.World")
	p.GL.LoadCamera(view.View, view.Projection)
	if p.Debug != nil {
		for _, box := range f.DebugBoxes {
			p.Debug.DrawAABB(box)
		}
	}

	p.GL.SetLighting(true)
	p.GL.SetDaylight(f.Daylight)
	if f.Wireframe {
		p.GL.SetWireframe(true)
	}

	stop := p.track("render.Opaque")
	f.Opaque.Drain(func(r Renderable) { r.Render(view) })
	for _, s := range p.Subscribers {
		s.RenderOpaque()
	}
	stop()

	stop = p.track("render.ChunkOpaque")
	f.Chunks.Opaque.Drain(func(c Chunk) { c.Render(world.PhaseOpaque) })
	stop()

	stop = p.track("render.ChunkTransparent")
	p.GL.SetBlend(true)
	f.Chunks.Billboard.Drain(func(c Chunk) { c.Render(world.PhaseBillboardAndTranslucent) })
	stop()

	stop = p.track("render.Transparent")
	f.Transparent.Drain(func(r Renderable) { r.Render(view) })
	for _, s := range p.Subscribers {
		s.RenderTransparent()
	}
	stop()

	stop = p.track("render.ChunkWaterIce")
	if view.Submerged {
		p.GL.SetFaceCulling(false)
	}
	f.Chunks.Water.Drain(func(c Chunk) {
		// Depth first, then color, so overlapping water surfaces do not blend twice.
		p.GL.SetColorMask(false)
		c.Render(world.PhaseWaterAndIce)
		p.GL.SetColorMask(true)
		c.Render(world.PhaseWaterAndIce)
	})
	for _, s := range p.Subscribers {
		s.RenderOverlay()
	}

	p.GL.SetBlend(false)
	if view.Submerged {
		p.GL.SetFaceCulling(true)
	}
	if f.Wireframe {
		p.GL.SetWireframe(false)
	}
	p.GL.SetLighting(false)
	stop()
	stopWorld()

	if p.Scene != nil {
		p.Scene.EndScene()
		stop = p.track("render.PostProcessing")
		p.Scene.RenderScene()
		stop()
	}

	if f.FirstPerson && p.Overlay != nil {
		p.Overlay.Render(view)
	}
}

func (p *Pipeline) renderSky(view *camera.Snapshot) {
	defer p.track("render.Sky")()
	p.GL.LoadCamera(view.NormalizedView, view.Projection)
	if p.Sky != nil {
		p.Sky.Render(view)
	}
}
