package audio

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/flapdojo/internal/config"
)

const sampleRate = beep.SampleRate(44100)

// Player plays cues without blocking the caller.
type Player interface {
	Play(c Cue)
	Close()
}

// Nop is a silent Player.
type Nop struct{}

// Play does nothing.
func (Nop) Play(Cue) {}

// Close does nothing.
func (Nop) Close() {}

// speakerInit is replaced in tests.
var speakerInit = func(rate beep.SampleRate, bufferSize int) error {
	return speaker.Init(rate, bufferSize)
}

var (
	speakerOnce sync.Once
	speakerErr  error
)

// SpeakerPlayer mixes cues into the system audio device.
type SpeakerPlayer struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	volume float64
	closed bool
}

// New returns a player for the config. Disabled audio or a device that
// cannot be opened yields a Nop player; the failure is logged.
func New(cfg config.AudioConfig, logger *log.Logger) Player {
	if !cfg.Enabled || cfg.Volume <= 0 {
		return Nop{}
	}

	// The speaker can only be initialized once per process
	speakerOnce.Do(func() {
		speakerErr = speakerInit(sampleRate, sampleRate.N(50*time.Millisecond))
	})
	if speakerErr != nil {
		if logger != nil {
			logger.Warn("audio disabled", "err", speakerErr)
		}
		return Nop{}
	}

	p := &SpeakerPlayer{
		mixer:  &beep.Mixer{},
		volume: cfg.Volume,
	}
	speaker.Play(p.mixer)
	return p
}

// Play queues a cue on the mixer.
func (p *SpeakerPlayer) Play(c Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}

	s := Synth(c, sampleRate, p.volume)
	if s == nil {
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// Close silences the player.
func (p *SpeakerPlayer) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true

	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
}
