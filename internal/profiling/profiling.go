package profiling

import (
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Monitor is a lightweight per-frame CPU profiler. Activities are timed with
// Track and accumulated until the next ResetFrame.
type Monitor struct {
	mu          sync.Mutex
	frameTotals map[string]time.Duration
	now         func() time.Time
}

// NewMonitor creates an empty monitor.
func NewMonitor() *Monitor {
	return &Monitor{
		frameTotals: make(map[string]time.Duration),
		now:         time.Now,
	}
}

// Track returns a stop function that records the elapsed time under the given name.
// Usage: defer m.Track("render.Opaque")()
func (m *Monitor) Track(name string) func() {
	start := m.now()
	return func() {
		d := m.now().Sub(start)
		m.mu.Lock()
		m.frameTotals[name] += d
		m.mu.Unlock()
	}
}

// ResetFrame clears current per-frame totals. Call at the start of each frame.
func (m *Monitor) ResetFrame() {
	m.mu.Lock()
	clear(m.frameTotals)
	m.mu.Unlock()
}

// Snapshot returns a copy of current per-frame totals.
func (m *Monitor) Snapshot() map[string]time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]time.Duration, len(m.frameTotals))
	for k, v := range m.frameTotals {
		out[k] = v
	}
	return out
}

// SumWithPrefix adds up every activity whose name starts with prefix.
func (m *Monitor) SumWithPrefix(prefix string) time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	var total time.Duration
	for k, v := range m.frameTotals {
		if strings.HasPrefix(k, prefix) {
			total += v
		}
	}
	return total
}

// TopN formats top N durations from the current frame totals.
// Example: "render.ChunkOpaque:4.2ms, update.Proximity:2.1ms"
func (m *Monitor) TopN(n int) string {
	ss := m.Snapshot()
	type pair struct {
		name string
		dur  time.Duration
	}
	list := make([]pair, 0, len(ss))
	for k, v := range ss {
		list = append(list, pair{name: k, dur: v})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].dur == list[j].dur {
			return list[i].name < list[j].name
		}
		return list[i].dur > list[j].dur
	})
	if n > len(list) {
		n = len(list)
	}
	parts := make([]string, 0, n)
	for i := 0; i < n; i++ {
		parts = append(parts, list[i].name+":"+formatMs(list[i].dur))
	}
	return strings.Join(parts, ", ")
}

// formatMs keeps one decimal and drops a trailing ".0".
func formatMs(d time.Duration) string {
	ms := float64(d.Microseconds()) / 1000.0
	return strconv.FormatFloat(float64(int64(ms*10+0.0001))/10, 'f', -1, 64) + "ms"
}
