package voice

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/viper"
)

// LoadConfigFromViper loads voice configuration from Viper.
func LoadConfigFromViper() (Config, error) {
	cfg := DefaultConfig()

	// Synthesis settings
	if viper.IsSet("voice.voice") {
		cfg.Voice = viper.GetString("voice.voice")
	}
	if viper.IsSet("voice.speed") {
		cfg.Speed = viper.GetFloat64("voice.speed")
	}
	if viper.IsSet("voice.provider") {
		cfg.Provider = viper.GetString("voice.provider")
	}
	if viper.IsSet("voice.requests_per_minute") {
		cfg.RequestsPerMinute = viper.GetInt("voice.requests_per_minute")
	}

	// Load cache config
	cfg.Cache = loadCacheConfig()

	// Load playback config
	cfg.Playback = loadPlaybackConfig()

	// Validate the loaded configuration
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid voice configuration: %w", err)
	}

	return cfg, nil
}

// loadCacheConfig loads cache-specific configuration from Viper.
func loadCacheConfig() CacheConfig {
	cfg := DefaultCacheConfig()

	if viper.IsSet("voice.cache.enabled") {
		cfg.Enabled = viper.GetBool("voice.cache.enabled")
	}
	if viper.IsSet("voice.cache.dir") {
		cfg.Dir = viper.GetString("voice.cache.dir")
	}
	if viper.IsSet("voice.cache.max_size_mb") {
		cfg.MaxSizeMb = viper.GetInt("voice.cache.max_size_mb")
	}
	if viper.IsSet("voice.cache.saved_per_hit_ms") {
		cfg.SavedPerHitMs = viper.GetInt("voice.cache.saved_per_hit_ms")
	}
	if viper.IsSet("voice.cache.admit_after_misses") {
		cfg.AdmitAfterMisses = viper.GetInt("voice.cache.admit_after_misses")
	}
	if viper.IsSet("voice.cache.max_text_length") {
		cfg.MaxTextLength = viper.GetInt("voice.cache.max_text_length")
	}
	if viper.IsSet("voice.cache.keywords") {
		cfg.Keywords = viper.GetStringSlice("voice.cache.keywords")
	}
	if viper.IsSet("voice.cache.watch") {
		cfg.Watch = viper.GetBool("voice.cache.watch")
	}

	return cfg
}

// loadPlaybackConfig loads playback-specific configuration from Viper.
func loadPlaybackConfig() PlaybackConfig {
	cfg := DefaultPlaybackConfig()

	if viper.IsSet("voice.playback.enabled") {
		cfg.Enabled = viper.GetBool("voice.playback.enabled")
	}
	if viper.IsSet("voice.playback.sample_rate") {
		cfg.SampleRate = viper.GetInt("voice.playback.sample_rate")
	}
	if viper.IsSet("voice.playback.channels") {
		cfg.Channels = viper.GetInt("voice.playback.channels")
	}
	if viper.IsSet("voice.playback.bit_depth") {
		cfg.BitDepth = viper.GetInt("voice.playback.bit_depth")
	}
	if viper.IsSet("voice.playback.volume") {
		cfg.Volume = viper.GetFloat64("voice.playback.volume")
	}
	if viper.IsSet("voice.playback.buffer_size") {
		cfg.BufferSize = viper.GetInt("voice.playback.buffer_size")
	}

	return cfg
}

// LoadConfigFromEnv loads voice configuration from environment variables.
func LoadConfigFromEnv() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return cfg, fmt.Errorf("error parsing voice environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid voice configuration: %w", err)
	}

	return cfg, nil
}

// SetDefaults sets default values in Viper for voice configuration.
func SetDefaults() {
	defaults := DefaultConfig()

	// Synthesis settings
	viper.SetDefault("voice.voice", defaults.Voice)
	viper.SetDefault("voice.speed", defaults.Speed)
	viper.SetDefault("voice.provider", defaults.Provider)
	viper.SetDefault("voice.requests_per_minute", defaults.RequestsPerMinute)

	// Cache defaults
	viper.SetDefault("voice.cache.enabled", defaults.Cache.Enabled)
	viper.SetDefault("voice.cache.dir", defaults.Cache.Dir)
	viper.SetDefault("voice.cache.max_size_mb", defaults.Cache.MaxSizeMb)
	viper.SetDefault("voice.cache.saved_per_hit_ms", defaults.Cache.SavedPerHitMs)
	viper.SetDefault("voice.cache.admit_after_misses", defaults.Cache.AdmitAfterMisses)
	viper.SetDefault("voice.cache.max_text_length", defaults.Cache.MaxTextLength)
	viper.SetDefault("voice.cache.keywords", defaults.Cache.Keywords)
	viper.SetDefault("voice.cache.watch", defaults.Cache.Watch)

	// Playback defaults
	viper.SetDefault("voice.playback.enabled", defaults.Playback.Enabled)
	viper.SetDefault("voice.playback.sample_rate", defaults.Playback.SampleRate)
	viper.SetDefault("voice.playback.channels", defaults.Playback.Channels)
	viper.SetDefault("voice.playback.bit_depth", defaults.Playback.BitDepth)
	viper.SetDefault("voice.playback.volume", defaults.Playback.Volume)
	viper.SetDefault("voice.playback.buffer_size", defaults.Playback.BufferSize)
}
