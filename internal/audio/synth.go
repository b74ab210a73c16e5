package audio

import "math"

// tracks lists the chord of each ambient track as frequencies in Hz.
var tracks = map[string][]float64{
	"Sunrise":   {261.63, 329.63, 392.00, 523.25}, // C major
	"Afternoon": {293.66, 369.99, 440.00, 587.33}, // D major
	"Sunset":    {220.00, 261.63, 329.63, 440.00}, // A minor
	"Dimlight":  {196.00, 233.08, 293.66},         // G minor
	"OtherSide": {174.61, 207.65, 261.63},         // F minor
	"Resurface": {246.94, 311.13, 369.99, 493.88}, // B major
}

// trackSeconds is the length of each generated track.
const trackSeconds = 6.0

// Synthesize renders the named track as stereo float32 LE frames. It returns
// nil for unknown tracks.
func Synthesize(track string) []byte {
	chord, ok := tracks[track]
	if !ok {
		return nil
	}
	frames := int(trackSeconds * SampleRate)
	buf := make([]byte, frames*ChannelCount*4)
	attack := 0.8 * SampleRate
	release := 2.5 * SampleRate

	for i := 0; i < frames; i++ {
		t := float64(i) / SampleRate
		var s float64
		for n, f := range chord {
			// Slight detune per voice keeps the pad from sounding static.
			s += math.Sin(2*math.Pi*f*t*(1+0.001*float64(n))) / float64(len(chord))
		}
		env := 1.0
		if fi := float64(i); fi < attack {
			env = fi / attack
		} else if rem := float64(frames - i); rem < release {
			env = rem / release
		}
		putStereoF32(buf, i, 0.6*s*env)
	}
	return buf
}
