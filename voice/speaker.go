package voice

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"

	"github.com/Ethan2298/Elite-Dangerous-AI-Integration/voice/audio"
	"github.com/Ethan2298/Elite-Dangerous-AI-Integration/voice/cache"
)

// Speaker turns text into audible responses. Every request consults the
// response cache before the synthesizer, so phrases the assistant repeats
// play back without a synthesis round-trip.
type Speaker struct {
	synth   Synthesizer
	sink    AudioSink
	cache   *cache.ResponseCache
	limiter *rate.Limiter
	voice   string
	speed   float64

	mu     sync.Mutex
	closed bool
}

// NewSpeaker wires a synthesizer to the response cache and playback sink
// described by cfg. sink may be nil; when playback is enabled in cfg a
// sink for the system audio device is opened automatically.
func NewSpeaker(cfg Config, synth Synthesizer, sink AudioSink) (*Speaker, error) {
	if synth == nil {
		return nil, ErrNoSynthesizer
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid voice configuration: %w", err)
	}

	var responses *cache.ResponseCache
	if cfg.Cache.Enabled {
		cacheCfg, err := cfg.Cache.ToCacheConfig()
		if err != nil {
			return nil, err
		}
		responses, err = cache.New(cacheCfg)
		if err != nil {
			return nil, fmt.Errorf("open response cache: %w", err)
		}
	}

	if sink == nil && cfg.Playback.Enabled {
		opened, err := NewPlaybackSink(cfg.Playback)
		if err != nil {
			if responses != nil {
				responses.Close()
			}
			return nil, err
		}
		sink = opened
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RequestsPerMinute)), 1)
	}

	return &Speaker{
		synth:   synth,
		sink:    sink,
		cache:   responses,
		limiter: limiter,
		voice:   cfg.Voice,
		speed:   cfg.Speed,
	}, nil
}

// Say speaks text and returns the audio that was played. Cached phrases
// come back immediately; everything else goes through the rate limiter
// and the synthesizer, and is offered to the cache afterwards.
func (s *Speaker) Say(ctx context.Context, text string) ([]byte, error) {
	if text == "" {
		return nil, ErrEmptyText
	}

	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return nil, ErrSpeakerClosed
	}

	provider := s.synth.Name()

	if s.cache != nil {
		if data, ok := s.cache.Lookup(text, s.voice, s.speed, provider); ok {
			logSynthesis(provider, utf8.RuneCountInString(text), len(data), 0, true)
			s.play(text, data)
			return data, nil
		}
	}

	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, NewVoiceError(err, "speaker", "rate limit")
		}
	}

	start := time.Now()
	data, err := s.synth.Synthesize(ctx, text, s.speed)
	if err != nil {
		return nil, NewVoiceError(err, provider, "synthesize")
	}
	if len(data) == 0 {
		return nil, NewVoiceError(ErrNothingToPlay, provider, "synthesize")
	}
	logSynthesis(provider, utf8.RuneCountInString(text), len(data), time.Since(start), false)

	if s.cache != nil {
		s.cache.Store(text, s.voice, s.speed, provider, data)
	}

	s.play(text, data)
	return data, nil
}

// play hands audio to the sink. Playback failure is logged rather than
// returned so a broken audio device cannot block the response path.
func (s *Speaker) play(text string, data []byte) {
	if s.sink == nil {
		return
	}
	if err := s.sink.Play(data); err != nil {
		log.Warn("Playback failed", "chars", utf8.RuneCountInString(text), "error", err)
	}
}

// WarmCache marks each text as frequent under the speaker's voice
// settings so it is cached the first time it is synthesized. Texts the
// cache would never accept, such as over-length ones, are still refused
// at store time.
func (s *Speaker) WarmCache(texts []string) {
	if s.cache == nil {
		return
	}

	phrases := make([]cache.Phrase, 0, len(texts))
	for _, text := range texts {
		if text == "" {
			continue
		}
		phrases = append(phrases, cache.Phrase{
			Text:     text,
			Voice:    s.voice,
			Speed:    s.speed,
			Provider: s.synth.Name(),
		})
	}
	s.cache.Warm(phrases)
}

// CacheStats reports response cache statistics. ok is false when caching
// is disabled.
func (s *Speaker) CacheStats() (cache.Stats, bool) {
	if s.cache == nil {
		return cache.Stats{}, false
	}
	return s.cache.Stats(), true
}

// ClearCache deletes every cached response and resets the statistics.
func (s *Speaker) ClearCache() {
	if s.cache != nil {
		s.cache.Clear()
	}
}

// Close flushes the cache and releases the playback sink. Say calls made
// after Close fail with ErrSpeakerClosed.
func (s *Speaker) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	var errs []error
	if s.cache != nil {
		if err := s.cache.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close cache: %w", err))
		}
	}
	if s.sink != nil {
		if err := s.sink.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close sink: %w", err))
		}
	}
	return errors.Join(errs...)
}

// NewPlaybackSink opens the system audio device described by cfg and
// adapts it to the AudioSink interface.
func NewPlaybackSink(cfg PlaybackConfig) (AudioSink, error) {
	player, err := audio.NewPlayer(cfg.ToPlayerConfig())
	if err != nil {
		return nil, fmt.Errorf("open playback device: %w", err)
	}
	if err := player.SetVolume(cfg.Volume); err != nil {
		player.Close()
		return nil, err
	}
	return player, nil
}

// Ensure both players satisfy the sink contract
var (
	_ AudioSink = (*audio.Player)(nil)
	_ AudioSink = (*audio.MockPlayer)(nil)
)
