package audio

import (
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/flapdojo/internal/core"
)

// Cue identifies a one-shot sound.
type Cue int

const (
	CueJump Cue = iota
	CueHit
	CueCoin
	CueTierUp
)

// String returns a human-readable name for logging.
func (c Cue) String() string {
	switch c {
	case CueJump:
		return "jump"
	case CueHit:
		return "hit"
	case CueCoin:
		return "coin"
	case CueTierUp:
		return "tier-up"
	default:
		return "unknown"
	}
}

// CueForEvent maps a game event to its sound.
func CueForEvent(kind core.EventKind) (Cue, bool) {
	switch kind {
	case core.EventJump:
		return CueJump, true
	case core.EventHit:
		return CueHit, true
	case core.EventCoin:
		return CueCoin, true
	case core.EventTierUp:
		return CueTierUp, true
	default:
		return 0, false
	}
}

// Synth builds a fresh streamer for a cue. Every call returns an
// independent finite stream. Returns nil for unknown cues.
func Synth(c Cue, rate beep.SampleRate, vol float64) beep.Streamer {
	var s beep.Streamer
	switch c {
	case CueJump:
		// Short rising flap
		s = beep.Seq(
			tone(520, 25*time.Millisecond, WaveSquare, rate),
			tone(780, 35*time.Millisecond, WaveSquare, rate),
		)
	case CueHit:
		// Low saw thud under a noise burst
		s = beep.Mix(
			newVolume(tone(110, 250*time.Millisecond, WaveSaw, rate), 0.7),
			newVolume(tone(0, 120*time.Millisecond, WaveNoise, rate), 0.4),
		)
	case CueCoin:
		// Two-note chime (B5, E6)
		s = beep.Seq(
			tone(987.77, 60*time.Millisecond, WaveSquare, rate),
			tone(1318.51, 140*time.Millisecond, WaveSquare, rate),
		)
	case CueTierUp:
		// Major arpeggio (C5, E5, G5, C6)
		s = beep.Seq(
			tone(523.25, 90*time.Millisecond, WaveSine, rate),
			tone(659.25, 90*time.Millisecond, WaveSine, rate),
			tone(783.99, 90*time.Millisecond, WaveSine, rate),
			tone(1046.5, 240*time.Millisecond, WaveSine, rate),
		)
	default:
		return nil
	}
	return newVolume(s, vol)
}
