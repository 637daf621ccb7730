package audio

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"
)

// Format is the format every sound is converted to before mixing.
var Format = beep.Format{SampleRate: beep.SampleRate(44100), NumChannels: 2, Precision: 2}

// Output is the device the mixer streams to. The default wraps the speaker package.
type Output interface {
	Init(sr beep.SampleRate, bufferSize int) error
	Play(s ...beep.Streamer)
	Lock()
	Unlock()
	Close()
}

type speakerOutput struct{}

func (speakerOutput) Init(sr beep.SampleRate, n int) error { return speaker.Init(sr, n) }
func (speakerOutput) Play(s ...beep.Streamer)              { speaker.Play(s...) }
func (speakerOutput) Lock()                                { speaker.Lock() }
func (speakerOutput) Unlock()                              { speaker.Unlock() }
func (speakerOutput) Close()                               { speaker.Close() }

// BeepSink decodes wav files from a directory and mixes them on the speaker.
// Decoded sounds are cached by name.
type BeepSink struct {
	mu      sync.Mutex
	out     Output
	dir     string
	logger  *log.Logger
	mixer   *beep.Mixer
	volume  *effects.Volume
	music   *beep.Ctrl
	cache   map[string]*beep.Buffer
	missing map[string]bool
	closed  bool
}

// NewBeepSink initialises out (the speaker when nil) and starts the mixer.
func NewBeepSink(dir string, out Output, logger *log.Logger) (*BeepSink, error) {
	if out == nil {
		out = speakerOutput{}
	}
	if logger == nil {
		logger = log.Default()
	}

	if err := out.Init(Format.SampleRate, Format.SampleRate.N(100*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("audio: init speaker: %w", err)
	}

	s := &BeepSink{
		out:     out,
		dir:     dir,
		logger:  logger,
		mixer:   &beep.Mixer{},
		cache:   make(map[string]*beep.Buffer),
		missing: make(map[string]bool),
	}
	s.volume = &effects.Volume{Streamer: s.mixer, Base: 2}
	out.Play(s.volume)
	return s, nil
}

// path resolves a sound name. Names without an extension get ".wav".
func (s *BeepSink) path(name string) string {
	if filepath.Ext(name) == "" {
		name += ".wav"
	}
	return filepath.Join(s.dir, name)
}

// load returns the cached buffer for name, decoding it on first use.
// Caller holds s.mu.
func (s *BeepSink) load(name string) *beep.Buffer {
	if buf, ok := s.cache[name]; ok {
		return buf
	}
	if s.missing[name] {
		return nil
	}

	buf, err := s.decode(s.path(name))
	if err != nil {
		s.missing[name] = true
		s.logger.Warn("sound unavailable", "name", name, "err", err)
		return nil
	}
	s.cache[name] = buf
	return buf
}

func (s *BeepSink) decode(path string) (*beep.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	// Closing the streamer closes f.
	streamer, format, err := wav.Decode(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	defer streamer.Close()

	var src beep.Streamer = streamer
	if format.SampleRate != Format.SampleRate {
		src = beep.Resample(4, format.SampleRate, Format.SampleRate, streamer)
	}
	buf := beep.NewBuffer(Format)
	buf.Append(src)
	return buf, nil
}

// PlaySound plays a sound once.
func (s *BeepSink) PlaySound(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	buf := s.load(name)
	if buf == nil {
		return
	}

	s.out.Lock()
	s.mixer.Add(buf.Streamer(0, buf.Len()))
	s.out.Unlock()
}

// PlayMusic loops a track until StopMusic or the next PlayMusic.
func (s *BeepSink) PlayMusic(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	buf := s.load(name)
	if buf == nil {
		return
	}

	s.out.Lock()
	s.stopMusicLocked()
	s.music = &beep.Ctrl{Streamer: beep.Loop(-1, buf.Streamer(0, buf.Len()))}
	s.mixer.Add(s.music)
	s.out.Unlock()
}

// StopMusic stops the current track, if any.
func (s *BeepSink) StopMusic() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.out.Lock()
	s.stopMusicLocked()
	s.out.Unlock()
}

// stopMusicLocked drops the track. A Ctrl without a streamer drains, so the
// mixer removes it on its next pass.
func (s *BeepSink) stopMusicLocked() {
	if s.music == nil {
		return
	}
	s.music.Paused = true
	s.music.Streamer = nil
	s.music = nil
}

// SetVolume sets the master volume. Zero mutes.
func (s *BeepSink) SetVolume(v float64) {
	v = math.Max(0, math.Min(1, v))

	s.mu.Lock()
	defer s.mu.Unlock()

	s.out.Lock()
	s.volume.Silent = v == 0
	if v > 0 {
		s.volume.Volume = math.Log2(v)
	}
	s.out.Unlock()
}

// Playing returns the number of streams in the mixer.
func (s *BeepSink) Playing() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.out.Lock()
	defer s.out.Unlock()
	return s.mixer.Len()
}

// Close stops everything and releases the output. Safe to call twice.
func (s *BeepSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true

	s.out.Lock()
	s.stopMusicLocked()
	s.mixer.Clear()
	s.out.Unlock()

	s.out.Close()
	s.cache = nil
	return nil
}

var _ Sink = (*BeepSink)(nil)
