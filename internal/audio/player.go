package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Player plays cues through a shared mixer on the speaker. A Player that was
// never initialized (or failed to) silently drops every request, so the game
// runs the same with or without a sound device.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	muted       bool
}

// NewPlayer creates an uninitialized player.
func NewPlayer() *Player {
	return &Player{mixer: &beep.Mixer{}}
}

// Initialize opens the speaker.
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return fmt.Errorf("audio: speaker init: %w", err)
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// SetMuted toggles output without closing the device.
func (p *Player) SetMuted(muted bool) {
	p.mu.Lock()
	p.muted = muted
	p.mu.Unlock()
}

// Muted reports whether output is muted.
func (p *Player) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

// Play mixes c into the output. It never blocks on the sound finishing.
func (p *Player) Play(c Cue) {
	p.mu.Lock()
	active := p.initialized && !p.muted
	p.mu.Unlock()
	if !active {
		return
	}

	speaker.Lock()
	p.mixer.Add(c.Streamer(sampleRate))
	speaker.Unlock()
}

func (p *Player) DropSound()          { p.Play(DropCue()) }
func (p *Player) MergeSound(rank int) { p.Play(MergeCue(rank)) }
func (p *Player) GameOverSound()      { p.Play(GameOverCue()) }

// Close stops playback and releases the device.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	p.initialized = false
}
