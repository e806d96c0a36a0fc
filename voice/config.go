package voice

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	gap "github.com/muesli/go-app-paths"

	"github.com/Ethan2298/Elite-Dangerous-AI-Integration/voice/audio"
	"github.com/Ethan2298/Elite-Dangerous-AI-Integration/voice/cache"
)

// Config contains all voice output configuration options.
type Config struct {
	// Synthesis settings
	Voice    string  `yaml:"voice" env:"ELITE_VOICE_VOICE" envDefault:"nova"`
	Speed    float64 `yaml:"speed" env:"ELITE_VOICE_SPEED" envDefault:"1.0"`
	Provider string  `yaml:"provider" env:"ELITE_VOICE_PROVIDER" envDefault:"openai"`

	// Rate limiting for synthesis requests, 0 disables the limiter
	RequestsPerMinute int `yaml:"requests_per_minute" env:"ELITE_VOICE_REQUESTS_PER_MINUTE" envDefault:"60"`

	// Subsystem configurations
	Cache    CacheConfig    `yaml:"cache"`
	Playback PlaybackConfig `yaml:"playback"`
}

// CacheConfig contains response cache specific settings.
type CacheConfig struct {
	Enabled          bool     `yaml:"enabled" env:"ELITE_VOICE_CACHE_ENABLED" envDefault:"true"`
	Dir              string   `yaml:"dir" env:"ELITE_VOICE_CACHE_DIR"`
	MaxSizeMb        int      `yaml:"max_size_mb" env:"ELITE_VOICE_CACHE_MAX_SIZE_MB" envDefault:"100"`
	SavedPerHitMs    int      `yaml:"saved_per_hit_ms" env:"ELITE_VOICE_CACHE_SAVED_PER_HIT_MS" envDefault:"950"`
	AdmitAfterMisses int      `yaml:"admit_after_misses" env:"ELITE_VOICE_CACHE_ADMIT_AFTER_MISSES" envDefault:"3"`
	MaxTextLength    int      `yaml:"max_text_length" env:"ELITE_VOICE_CACHE_MAX_TEXT_LENGTH" envDefault:"200"`
	Keywords         []string `yaml:"keywords" env:"ELITE_VOICE_CACHE_KEYWORDS" envSeparator:","`
	Watch            bool     `yaml:"watch" env:"ELITE_VOICE_CACHE_WATCH" envDefault:"false"`
}

// PlaybackConfig contains audio output specific settings.
type PlaybackConfig struct {
	Enabled    bool    `yaml:"enabled" env:"ELITE_VOICE_PLAYBACK_ENABLED" envDefault:"false"`
	SampleRate int     `yaml:"sample_rate" env:"ELITE_VOICE_PLAYBACK_SAMPLE_RATE" envDefault:"24000"`
	Channels   int     `yaml:"channels" env:"ELITE_VOICE_PLAYBACK_CHANNELS" envDefault:"1"`
	BitDepth   int     `yaml:"bit_depth" env:"ELITE_VOICE_PLAYBACK_BIT_DEPTH" envDefault:"16"`
	Volume     float64 `yaml:"volume" env:"ELITE_VOICE_PLAYBACK_VOLUME" envDefault:"1.0"`
	BufferSize int     `yaml:"buffer_size" env:"ELITE_VOICE_PLAYBACK_BUFFER_SIZE" envDefault:"4096"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Voice:    "nova",
		Speed:    1.0,
		Provider: "openai",

		RequestsPerMinute: 60,

		Cache:    DefaultCacheConfig(),
		Playback: DefaultPlaybackConfig(),
	}
}

// DefaultCacheConfig returns default response cache configuration. An
// empty Dir defers to the per-user cache directory at open time.
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled:          true,
		Dir:              "",
		MaxSizeMb:        100,
		SavedPerHitMs:    cache.DefaultSavedPerHitMs,
		AdmitAfterMisses: cache.DefaultAdmitAfterMisses,
		MaxTextLength:    cache.DefaultMaxTextLength,
		Keywords:         cache.DefaultKeywords(),
		Watch:            false,
	}
}

// DefaultPlaybackConfig returns default audio output configuration.
func DefaultPlaybackConfig() PlaybackConfig {
	return PlaybackConfig{
		Enabled:    false,
		SampleRate: 24000,
		Channels:   1,
		BitDepth:   16,
		Volume:     1.0,
		BufferSize: 4096,
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Voice == "" {
		return fmt.Errorf("voice cannot be empty")
	}

	if c.Speed < 0.25 || c.Speed > 4.0 {
		return fmt.Errorf("speed must be between 0.25 and 4.0, got %f", c.Speed)
	}

	if c.Provider == "" {
		return fmt.Errorf("provider cannot be empty")
	}

	if c.RequestsPerMinute < 0 || c.RequestsPerMinute > 600 {
		return fmt.Errorf("requests_per_minute must be between 0 and 600, got %d", c.RequestsPerMinute)
	}

	if err := c.Cache.Validate(); err != nil {
		return fmt.Errorf("cache config: %w", err)
	}

	if err := c.Playback.Validate(); err != nil {
		return fmt.Errorf("playback config: %w", err)
	}

	return nil
}

// Validate checks if the cache configuration is valid.
func (c *CacheConfig) Validate() error {
	if c.MaxSizeMb < 1 || c.MaxSizeMb > 10000 {
		return fmt.Errorf("max_size_mb must be between 1 and 10000, got %d", c.MaxSizeMb)
	}

	if c.SavedPerHitMs < 1 || c.SavedPerHitMs > 60000 {
		return fmt.Errorf("saved_per_hit_ms must be between 1 and 60000, got %d", c.SavedPerHitMs)
	}

	if c.AdmitAfterMisses < 1 || c.AdmitAfterMisses > 100 {
		return fmt.Errorf("admit_after_misses must be between 1 and 100, got %d", c.AdmitAfterMisses)
	}

	if c.MaxTextLength < 1 || c.MaxTextLength > 1000 {
		return fmt.Errorf("max_text_length must be between 1 and 1000, got %d", c.MaxTextLength)
	}

	return nil
}

// Validate checks if the playback configuration is valid.
func (c *PlaybackConfig) Validate() error {
	validSampleRates := []int{8000, 16000, 22050, 24000, 44100, 48000}
	sampleRateValid := false
	for _, sr := range validSampleRates {
		if c.SampleRate == sr {
			sampleRateValid = true
			break
		}
	}
	if !sampleRateValid {
		return fmt.Errorf("invalid sample rate %d: must be one of %v", c.SampleRate, validSampleRates)
	}

	if c.Channels != 1 && c.Channels != 2 {
		return fmt.Errorf("channels must be 1 (mono) or 2 (stereo), got %d", c.Channels)
	}

	if c.BitDepth != 8 && c.BitDepth != 16 {
		return fmt.Errorf("bit depth must be 8 or 16, got %d", c.BitDepth)
	}

	if c.Volume < 0.0 || c.Volume > 1.0 {
		return fmt.Errorf("volume must be between 0.0 and 1.0, got %f", c.Volume)
	}

	if c.BufferSize < 1 {
		return fmt.Errorf("buffer size must be positive, got %d", c.BufferSize)
	}

	return nil
}

// ToCacheConfig converts the cache section into the cache package's
// config, resolving the directory. A leading ~ is expanded and an empty
// Dir falls back to the per-user cache directory.
func (c *CacheConfig) ToCacheConfig() (cache.Config, error) {
	dir := c.Dir
	if dir == "" {
		resolved, err := DefaultCacheDir()
		if err != nil {
			return cache.Config{}, err
		}
		dir = resolved
	} else {
		expanded, err := homedir.Expand(dir)
		if err != nil {
			return cache.Config{}, fmt.Errorf("expand cache dir: %w", err)
		}
		dir = expanded
	}

	return cache.Config{
		Dir:              dir,
		MaxSizeBytes:     int64(c.MaxSizeMb) * 1024 * 1024,
		SavedPerHitMs:    int64(c.SavedPerHitMs),
		AdmitAfterMisses: c.AdmitAfterMisses,
		MaxTextLength:    c.MaxTextLength,
		Keywords:         c.Keywords,
		WatchBlobs:       c.Watch,
	}, nil
}

// ToPlayerConfig converts the playback section into the audio package's
// config.
func (c *PlaybackConfig) ToPlayerConfig() audio.Config {
	return audio.Config{
		SampleRate: c.SampleRate,
		Channels:   c.Channels,
		BitDepth:   c.BitDepth,
		BufferSize: c.BufferSize,
	}
}

// DefaultCacheDir returns the per-user directory for cached responses.
func DefaultCacheDir() (string, error) {
	scope := gap.NewScope(gap.User, "elite-ai")
	if dir, err := scope.CacheDir(); err == nil && dir != "" {
		return filepath.Join(dir, "responses"), nil
	}

	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("locate cache directory: %w", err)
	}
	return filepath.Join(base, "elite-ai", "responses"), nil
}
