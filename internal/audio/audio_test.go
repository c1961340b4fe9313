package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
)

func drain(s beep.Streamer) [][2]float64 {
	var out [][2]float64
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			return out
		}
	}
}

func peak(samples [][2]float64) float64 {
	m := 0.0
	for _, s := range samples {
		m = math.Max(m, math.Abs(s[0]))
	}
	return m
}

func TestCueLength(t *testing.T) {
	rate := beep.SampleRate(8000)
	tests := []struct {
		name string
		cue  Cue
	}{
		{"drop", DropCue()},
		{"merge", MergeCue(4)},
		{"game over", GameOverCue()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			samples := drain(tt.cue.Streamer(rate))
			if want := rate.N(tt.cue.Duration); len(samples) != want {
				t.Errorf("len(samples) = %d, expected %d", len(samples), want)
			}
			if p := peak(samples); p > tt.cue.Volume+1e-9 {
				t.Errorf("peak %.4f exceeds volume %.4f", p, tt.cue.Volume)
			}
		})
	}
}

func TestCueDecays(t *testing.T) {
	samples := drain(GameOverCue().Streamer(beep.SampleRate(8000)))
	tenth := len(samples) / 10

	head, tail := peak(samples[:tenth]), peak(samples[len(samples)-tenth:])
	if tail >= head/4 {
		t.Errorf("tail peak %.4f not well below head peak %.4f", tail, head)
	}
}

func TestMergeCuePitch(t *testing.T) {
	low, high := MergeCue(0), MergeCue(9)
	if low.From != 350 || math.Abs(low.To-490) > 1e-9 {
		t.Errorf("MergeCue(0) sweeps %.0f -> %.0f, expected 350 -> 490", low.From, low.To)
	}
	if high.From <= low.From {
		t.Error("higher ranks should sound higher")
	}
	if low.Duration != 180*time.Millisecond {
		t.Errorf("duration = %v", low.Duration)
	}
}

func TestUninitializedPlayerIsSilent(t *testing.T) {
	p := NewPlayer()
	p.DropSound()
	p.MergeSound(3)
	p.GameOverSound()
	p.Close()

	if p.mixer.Len() != 0 {
		t.Errorf("mixer has %d streamers without a speaker", p.mixer.Len())
	}
}

func TestPlayerMute(t *testing.T) {
	p := NewPlayer()
	p.SetMuted(true)
	if !p.Muted() {
		t.Error("Muted() = false after SetMuted(true)")
	}
}
