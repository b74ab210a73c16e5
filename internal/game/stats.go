package game

import (
	"log"
	"time"

	"terrastream/internal/profiling"
	"terrastream/internal/render"
)

// frameSource is what the stats log samples once per tick.
type frameSource interface {
	Stats() render.Stats
	ChunksInProximity() []render.Chunk
}

// meshStats are the mesh worker counters.
type meshStats interface {
	Pending() int
	QueueLength() int
	Dropped() int
	Failures() int
	Applied() int
}

// statsLog writes one FrameRecord per world tick.
type statsLog struct {
	rec     *profiling.Recorder
	source  frameSource
	cached  func() int
	mesh    meshStats
	monitor *profiling.Monitor
	now     func() time.Time

	failed bool
}

func (s *statsLog) onTick(tick uint64) {
	st := s.source.Stats()
	rec := profiling.FrameRecord{
		Time:    s.now(),
		Tick:    tick,
		Dirty:   st.Dirty,
		Visible: st.Visible,
		Ignored: st.Ignored,
		Tracked: len(s.source.ChunksInProximity()),
		Cached:  s.cached(),
	}
	if s.mesh != nil {
		rec.Pending = s.mesh.Pending()
		rec.Queued = s.mesh.QueueLength()
		rec.Dropped = s.mesh.Dropped()
		rec.Failed = s.mesh.Failures()
		rec.Applied = s.mesh.Applied()
	}
	if s.monitor != nil {
		rec.Top = s.monitor.TopN(3)
	}
	if err := s.rec.Write(rec); err != nil {
		// Only the first of consecutive failures is logged.
		if !s.failed {
			log.Printf("game: stats log: %v", err)
			s.failed = true
		}
		return
	}
	s.failed = false
}
