package audio

import (
	"fmt"
	"io"
	"log"
	"math"
	"sync"

	"github.com/hajimehoshi/oto/v2"
)

const (
	SampleRate   = 44100
	ChannelCount = 2
)

// musicVolume is the player volume for ambient tracks.
const musicVolume = 0.35

// Player plays procedurally generated ambient music. Only one track plays at
// a time; starting a track stops the previous one.
type Player struct {
	ctx   *oto.Context
	ready chan struct{}

	mu    sync.Mutex
	music oto.Player
	muted bool
}

// NewPlayer opens the audio device.
func NewPlayer() (*Player, error) {
	ctx, ready, err := oto.NewContext(SampleRate, ChannelCount, oto.FormatFloat32LE)
	if err != nil {
		return nil, fmt.Errorf("audio: open device: %w", err)
	}
	return &Player{ctx: ctx, ready: ready}, nil
}

// PlayMusic starts the named ambient track. Unknown names are ignored, and so
// are calls made before the device is ready.
func (p *Player) PlayMusic(track string) {
	select {
	case <-p.ready:
	default:
		return
	}
	samples := Synthesize(track)
	if len(samples) == 0 {
		log.Printf("audio: unknown track %q", track)
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.muted {
		return
	}
	p.stopLocked()
	player := p.ctx.NewPlayer(&sampleReader{data: samples})
	player.SetVolume(musicVolume)
	player.Play()
	p.music = player
}

// Playing reports whether a track is currently audible.
func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.music != nil && p.music.IsPlaying()
}

// Stop silences the current track.
func (p *Player) Stop() {
	p.mu.Lock()
	p.stopLocked()
	p.mu.Unlock()
}

// SetMuted stops the current track and drops requests while muted.
func (p *Player) SetMuted(muted bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.muted = muted
	if muted {
		p.stopLocked()
	}
}

// Muted reports whether requests are dropped.
func (p *Player) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

// Dispose stops playback.
func (p *Player) Dispose() { p.Stop() }

func (p *Player) stopLocked() {
	if p.music == nil {
		return
	}
	if err := p.music.Close(); err != nil {
		log.Printf("audio: close player: %v", err)
	}
	p.music = nil
}

// Silent is an AudioTrigger that drops every request.
type Silent struct{}

func (Silent) PlayMusic(string) {}

type sampleReader struct {
	data []byte
	pos  int
}

func (r *sampleReader) Read(b []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(b, r.data[r.pos:])
	r.pos += n
	return n, nil
}

// putStereoF32 writes a [-1,1] sample as float32 LE to both stereo channels at frame i.
func putStereoF32(buf []byte, i int, sample float64) {
	v := math.Float32bits(float32(sample))
	for ch := 0; ch < ChannelCount; ch++ {
		o := i*8 + ch*4
		buf[o] = byte(v)
		buf[o+1] = byte(v >> 8)
		buf[o+2] = byte(v >> 16)
		buf[o+3] = byte(v >> 24)
	}
}
