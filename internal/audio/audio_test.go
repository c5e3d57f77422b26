package audio

import (
	"errors"
	"io"
	"math"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"

	"github.com/vovakirdan/flapdojo/internal/config"
	"github.com/vovakirdan/flapdojo/internal/core"
)

// drain streams s to completion and returns all samples.
func drain(t *testing.T, s beep.Streamer, limit int) [][2]float64 {
	t.Helper()
	var out [][2]float64
	buf := make([][2]float64, 512)
	for len(out) <= limit {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			return out
		}
	}
	t.Fatalf("stream did not drain within %d samples", limit)
	return nil
}

func TestOscillatorLengthAndRange(t *testing.T) {
	rate := beep.SampleRate(44100)
	waves := []WaveType{WaveSine, WaveSquare, WaveSaw, WaveNoise}

	for _, w := range waves {
		osc := NewOscillator(440, 100*time.Millisecond, w, rate)
		samples := drain(t, osc, rate.N(time.Second))

		if len(samples) != rate.N(100*time.Millisecond) {
			t.Errorf("wave %d: %d samples, want %d", w, len(samples), rate.N(100*time.Millisecond))
		}
		for i, s := range samples {
			if s[0] < -1 || s[0] > 1 || s[0] != s[1] {
				t.Fatalf("wave %d: sample %d = %v", w, i, s)
			}
		}
		if osc.Err() != nil {
			t.Errorf("wave %d: unexpected error %v", w, osc.Err())
		}
	}
}

func TestEnvelopeShapesEdges(t *testing.T) {
	rate := beep.SampleRate(1000)
	d := 100 * time.Millisecond
	osc := NewOscillator(0, d, WaveSquare, rate) // Constant +1
	env := NewEnvelope(osc, d, 10*time.Millisecond, 10*time.Millisecond, rate)

	samples := drain(t, env, 1000)
	if len(samples) != 100 {
		t.Fatalf("len = %d, want 100", len(samples))
	}
	if samples[0][0] != 0 {
		t.Errorf("first sample = %v, want 0 (attack start)", samples[0][0])
	}
	if samples[50][0] != 1 {
		t.Errorf("sustain sample = %v, want 1", samples[50][0])
	}
	if last := samples[99][0]; last <= 0 || last > 0.2 {
		t.Errorf("last sample = %v, want small positive (release)", last)
	}
}

func TestSynthCues(t *testing.T) {
	rate := beep.SampleRate(44100)
	for _, c := range []Cue{CueJump, CueHit, CueCoin, CueTierUp} {
		t.Run(c.String(), func(t *testing.T) {
			samples := drain(t, Synth(c, rate, 0.5), rate.N(time.Second))
			if len(samples) == 0 {
				t.Fatal("empty cue")
			}

			peak := 0.0
			for _, s := range samples {
				peak = math.Max(peak, math.Abs(s[0]))
			}
			if peak == 0 || peak > 1 {
				t.Errorf("peak = %v, want (0, 1]", peak)
			}

			// Every call yields an identical fresh stream
			again := drain(t, Synth(c, rate, 0.5), rate.N(time.Second))
			if len(again) != len(samples) {
				t.Fatalf("second stream length %d, want %d", len(again), len(samples))
			}
			for i := range samples {
				if samples[i] != again[i] {
					t.Fatalf("streams differ at sample %d", i)
				}
			}
		})
	}

	if Synth(Cue(99), rate, 1) != nil {
		t.Error("unknown cue should synthesize nil")
	}
}

func TestSynthSilentVolume(t *testing.T) {
	samples := drain(t, Synth(CueCoin, sampleRate, 0), sampleRate.N(time.Second))
	for i, s := range samples {
		if s[0] != 0 || s[1] != 0 {
			t.Fatalf("sample %d = %v, want silence", i, s)
		}
	}
}

func TestCueForEvent(t *testing.T) {
	tests := []struct {
		kind core.EventKind
		want Cue
		ok   bool
	}{
		{core.EventJump, CueJump, true},
		{core.EventHit, CueHit, true},
		{core.EventCoin, CueCoin, true},
		{core.EventTierUp, CueTierUp, true},
		{core.EventKind(42), 0, false},
	}

	for _, tt := range tests {
		got, ok := CueForEvent(tt.kind)
		if ok != tt.ok || got != tt.want {
			t.Errorf("CueForEvent(%v) = %v, %v; want %v, %v", tt.kind, got, ok, tt.want, tt.ok)
		}
	}
}

func TestNewDisabledIsNop(t *testing.T) {
	tests := []config.AudioConfig{
		{Enabled: false, Volume: 1},
		{Enabled: true, Volume: 0},
	}
	for _, cfg := range tests {
		if _, ok := New(cfg, nil).(Nop); !ok {
			t.Errorf("New(%+v) should be Nop", cfg)
		}
	}
}

func TestNewDegradesOnInitFailure(t *testing.T) {
	orig := speakerInit
	defer func() { speakerInit = orig }()
	speakerInit = func(beep.SampleRate, int) error {
		return errors.New("no audio device")
	}

	p := New(config.AudioConfig{Enabled: true, Volume: 0.5}, log.New(io.Discard))
	if _, ok := p.(Nop); !ok {
		t.Fatalf("New() = %T, want Nop after init failure", p)
	}

	// Nop never panics
	p.Play(CueHit)
	p.Close()
}
