package audio

import (
	"bytes"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// Common errors for the audio device layer.
var (
	ErrPlayerClosed  = errors.New("audio player is closed")
	ErrNothingToPlay = errors.New("no audio to play")
)

// Config describes the PCM stream the player accepts.
type Config struct {
	SampleRate int // Samples per second
	Channels   int // 1 = mono, 2 = stereo
	BitDepth   int // 8 or 16 bits per sample
	BufferSize int // Device buffer in bytes
}

// DefaultConfig returns the stream settings the stock voices produce.
func DefaultConfig() Config {
	return Config{
		SampleRate: 24000, // Hosted voices stream 24kHz PCM
		Channels:   1,     // Mono for speech
		BitDepth:   16,    // Standard bit depth
		BufferSize: 4096,  // 4KB device buffer
	}
}

// supportedSampleRates lists the rates the device layer accepts.
var supportedSampleRates = []int{8000, 16000, 22050, 24000, 44100, 48000}

// validateConfig validates the player configuration.
func validateConfig(cfg Config) error {
	rateValid := false
	for _, sr := range supportedSampleRates {
		if cfg.SampleRate == sr {
			rateValid = true
			break
		}
	}
	if !rateValid {
		return fmt.Errorf("invalid sample rate %d: must be one of %v", cfg.SampleRate, supportedSampleRates)
	}

	if cfg.Channels != 1 && cfg.Channels != 2 {
		return fmt.Errorf("channels must be 1 (mono) or 2 (stereo), got %d", cfg.Channels)
	}

	if cfg.BitDepth != 8 && cfg.BitDepth != 16 {
		return fmt.Errorf("bit depth must be 8 or 16, got %d", cfg.BitDepth)
	}

	if cfg.BufferSize <= 0 {
		return errors.New("buffer size must be positive")
	}

	return nil
}

// bytesPerSecond reports the PCM data rate of the configured stream.
func (c Config) bytesPerSecond() int {
	return c.SampleRate * c.Channels * c.BitDepth / 8
}

// Duration reports how long audio lasts at the configured stream settings.
func (c Config) Duration(audio []byte) time.Duration {
	bps := c.bytesPerSecond()
	if bps == 0 {
		return 0
	}
	return time.Duration(len(audio)) * time.Second / time.Duration(bps)
}

// pcmFormat maps a bit depth to the matching oto sample format.
func pcmFormat(bitDepth int) oto.Format {
	if bitDepth == 8 {
		return oto.FormatUnsignedInt8
	}
	return oto.FormatSignedInt16LE
}

// Player renders raw PCM through the system audio device. The device
// context is opened once and lives for the rest of the process, since oto
// offers no way to release it.
type Player struct {
	cfg Config
	ctx *oto.Context

	mu      sync.Mutex
	current *oto.Player
	// active keeps the playing buffer referenced. oto reads it
	// asynchronously, and collecting the backing array mid-playback
	// produces static.
	active []byte
	volume float64
	closed bool
}

// NewPlayer opens the audio device and blocks until it is ready.
func NewPlayer(cfg Config) (*Player, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	op := &oto.NewContextOptions{
		SampleRate:   cfg.SampleRate,
		ChannelCount: cfg.Channels,
		Format:       pcmFormat(cfg.BitDepth),
		BufferSize:   time.Duration(cfg.BufferSize) * time.Second / time.Duration(cfg.bytesPerSecond()),
	}

	ctx, readyChan, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("failed to create oto context: %w", err)
	}

	// Wait for the device to come up
	<-readyChan

	return &Player{cfg: cfg, ctx: ctx, volume: 1.0}, nil
}

// Play starts audio and returns without waiting for completion. An
// utterance still in progress is stopped first.
func (p *Player) Play(audio []byte) error {
	if len(audio) == 0 {
		return ErrNothingToPlay
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrPlayerClosed
	}

	p.stopCurrent()

	// Copy so the caller can reuse its buffer while the device drains ours.
	buf := make([]byte, len(audio))
	copy(buf, audio)

	p.active = buf
	p.current = p.ctx.NewPlayer(bytes.NewReader(buf))
	p.current.SetVolume(p.volume)
	p.current.Play()

	return nil
}

// Stop halts the current utterance without closing the device.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopCurrent()
}

// stopCurrent releases the in-flight oto player. Callers hold the lock.
func (p *Player) stopCurrent() {
	if p.current == nil {
		return
	}
	p.current.Pause()
	p.current.Close()
	p.current = nil
	p.active = nil
}

// IsPlaying reports whether an utterance is still sounding.
func (p *Player) IsPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current != nil && p.current.IsPlaying()
}

// SetVolume sets the playback volume (0.0 to 1.0). The volume also
// applies to the utterance currently playing.
func (p *Player) SetVolume(volume float64) error {
	if volume < 0.0 || volume > 1.0 {
		return fmt.Errorf("volume must be between 0.0 and 1.0, got %f", volume)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.volume = volume
	if p.current != nil {
		p.current.SetVolume(volume)
	}
	return nil
}

// Volume returns the current playback volume.
func (p *Player) Volume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volume
}

// Config returns the stream settings the player was opened with.
func (p *Player) Config() Config {
	return p.cfg
}

// Close stops playback and marks the player unusable. The device context
// itself stays open for the rest of the process.
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true
	p.stopCurrent()
	return nil
}
