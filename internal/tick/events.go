package tick

import "math"

// WorldTimeEvent runs Action whenever the world time passes Trigger, a
// fraction of the day in [0, 1).
type WorldTimeEvent struct {
	Trigger float64
	Repeat  bool
	Action  func()
}

// EventManager fires world time events as the day advances.
type EventManager struct {
	events      []*WorldTimeEvent
	last        float64
	initialized bool

	// Events added by an action while firing wait here until the pass ends.
	firing bool
	added  []*WorldTimeEvent
}

// NewEventManager creates an empty manager.
func NewEventManager() *EventManager {
	return &EventManager{}
}

// Add registers e. The trigger is wrapped into [0, 1).
func (m *EventManager) Add(e *WorldTimeEvent) {
	e.Trigger -= math.Floor(e.Trigger)
	if m.firing {
		m.added = append(m.added, e)
		return
	}
	m.events = append(m.events, e)
}

// Len returns the number of registered events.
func (m *EventManager) Len() int { return len(m.events) + len(m.added) }

// FireDue evaluates every event against the world time in days (whole days
// plus the day fraction). An event fires once for every crossing of its
// trigger since the previous call. The first call only records the time, and
// so does a call with a time earlier than the previous one. Non-repeating
// events are removed after firing. Events added by an action are first
// evaluated on the next call. Returns the number of actions run.
func (m *EventManager) FireDue(days float64) int {
	if !m.initialized || days < m.last {
		m.initialized = true
		m.last = days
		return 0
	}
	last := m.last
	m.last = days
	if days == last {
		return 0
	}

	m.firing = true
	fired := 0
	kept := m.events[:0]
	for _, e := range m.events {
		n := crossings(last, days, e.Trigger)
		if n > 0 && !e.Repeat {
			n = 1
		}
		for i := 0; i < n; i++ {
			if e.Action != nil {
				e.Action()
			}
			fired++
		}
		if n > 0 && !e.Repeat {
			continue
		}
		kept = append(kept, e)
	}
	clear(m.events[len(kept):])
	m.events = append(kept, m.added...)
	clear(m.added)
	m.added = m.added[:0]
	m.firing = false
	return fired
}

// crossings counts the points k+trigger in (from, to].
func crossings(from, to, trigger float64) int {
	return int(math.Floor(to-trigger) - math.Floor(from-trigger))
}
