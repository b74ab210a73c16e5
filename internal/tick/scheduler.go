package tick

import "time"

// Interval is the wall-clock length of one coarse tick.
const Interval = time.Second

// Subscriber is notified once per coarse tick.
type Subscriber func(tick uint64)

// Scheduler accumulates frame deltas into an animation clock and counts
// coarse ticks on the wall clock, independent of frame rate.
type Scheduler struct {
	clock    float64
	tick     uint64
	lastTick time.Time
	now      func() time.Time

	subscribers []Subscriber
}

// NewScheduler creates a scheduler reading the wall clock from now. A nil
// now uses time.Now.
func NewScheduler(now func() time.Time) *Scheduler {
	if now == nil {
		now = time.Now
	}
	return &Scheduler{now: now, lastTick: now()}
}

// Subscribe registers fn for every coarse tick.
func (s *Scheduler) Subscribe(fn Subscriber) {
	s.subscribers = append(s.subscribers, fn)
}

// Advance adds delta seconds to the animation clock and, once at least one
// Interval of wall time has passed since the last tick, counts a tick and
// notifies the subscribers. Reports whether a tick happened.
func (s *Scheduler) Advance(delta float64) bool {
	s.clock += delta

	now := s.now()
	if now.Sub(s.lastTick) < Interval {
		return false
	}
	s.tick++
	s.lastTick = now
	for _, fn := range s.subscribers {
		fn(s.tick)
	}
	return true
}

// Clock returns the animation clock in seconds.
func (s *Scheduler) Clock() float64 { return s.clock }

// Tick returns the number of coarse ticks so far.
func (s *Scheduler) Tick() uint64 { return s.tick }
