package tick

// AudioTrigger starts ambient music by track name.
type AudioTrigger interface {
	PlayMusic(track string)
}

// Soundtrack maps day fractions to the ambient track started there.
var Soundtrack = []struct {
	Trigger float64
	Track   string
}{
	{0.10, "Sunrise"},
	{0.25, "Afternoon"},
	{0.40, "Sunset"},
	{0.60, "Dimlight"},
	{0.75, "OtherSide"},
	{0.90, "Resurface"},
}

// RegisterSoundtrack adds a repeating event per Soundtrack entry that plays
// the track on audio.
func RegisterSoundtrack(m *EventManager, audio AudioTrigger) {
	for _, s := range Soundtrack {
		track := s.Track
		m.Add(&WorldTimeEvent{
			Trigger: s.Trigger,
			Repeat:  true,
			Action:  func() { audio.PlayMusic(track) },
		})
	}
}
