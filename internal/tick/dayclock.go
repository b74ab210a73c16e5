package tick

import "math"

// DayClock tracks world time in days.
type DayClock struct {
	dayLength float64 // seconds per day
	days      float64
}

// NewDayClock creates a clock at start days with a day of dayLength seconds.
func NewDayClock(dayLength, start float64) *DayClock {
	if dayLength <= 0 {
		dayLength = 1
	}
	return &DayClock{dayLength: dayLength, days: start}
}

// Advance moves the clock forward by delta seconds.
func (c *DayClock) Advance(delta float64) {
	c.days += delta / c.dayLength
}

// SetDayLength changes the length of a day in seconds.
func (c *DayClock) SetDayLength(seconds float64) {
	if seconds > 0 {
		c.dayLength = seconds
	}
}

// Days returns the world time in days.
func (c *DayClock) Days() float64 { return c.days }

// Fraction returns the time of day in [0, 1).
func (c *DayClock) Fraction() float64 {
	return c.days - math.Floor(c.days)
}

// Daylight returns the sun intensity in [0.15, 1]. The sun is highest at 0.25
// and the night darkest at 0.75.
func (c *DayClock) Daylight() float64 {
	d := 0.15 + 0.85*math.Sin(2*math.Pi*c.Fraction())
	return math.Max(0.15, math.Min(1, d))
}
