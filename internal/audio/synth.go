// Package audio synthesizes the game's sound cues with beep and plays them
// on the system speaker.
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// WaveType selects an oscillator shape.
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSaw
)

// floor is the level exponential ramps decay toward; a true zero can't be
// reached exponentially.
const floor = 0.001

// Cue is one short sound: a frequency sweep with an exponentially decaying
// amplitude.
type Cue struct {
	Wave     WaveType
	From     float64 // Hz
	To       float64 // Hz
	Duration time.Duration
	Volume   float64
}

// DropCue is the low thud of a piece entering.
func DropCue() Cue {
	return Cue{Wave: WaveSine, From: 250, To: 100, Duration: 100 * time.Millisecond, Volume: 0.12}
}

// MergeCue rises in pitch with the resulting rank.
func MergeCue(rank int) Cue {
	f := 350 + float64(rank)*55
	return Cue{Wave: WaveSine, From: f, To: f * 1.4, Duration: 180 * time.Millisecond, Volume: 0.18}
}

// GameOverCue is a falling sawtooth.
func GameOverCue() Cue {
	return Cue{Wave: WaveSaw, From: 300, To: 60, Duration: 500 * time.Millisecond, Volume: 0.12}
}

// Streamer renders the cue at rate.
func (c Cue) Streamer(rate beep.SampleRate) beep.Streamer {
	return &sweep{cue: c, rate: rate, total: rate.N(c.Duration)}
}

type sweep struct {
	cue   Cue
	rate  beep.SampleRate
	total int
	pos   int
	phase float64
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	if s.pos >= s.total {
		return 0, false
	}
	for i := range samples {
		if s.pos >= s.total {
			return i, true
		}
		t := float64(s.pos) / float64(s.total)

		freq := s.cue.From * math.Pow(s.cue.To/s.cue.From, t)
		amp := s.cue.Volume * math.Pow(floor/s.cue.Volume, t)

		var val float64
		switch s.cue.Wave {
		case WaveSaw:
			val = 2 * (s.phase - 0.5)
		default:
			val = math.Sin(2 * math.Pi * s.phase)
		}
		val *= amp
		samples[i][0] = val
		samples[i][1] = val

		s.phase += freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.pos++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }
