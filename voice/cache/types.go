package cache

import (
	"errors"
	"path/filepath"
	"time"
)

// Defaults applied by New when the corresponding Config field is zero.
const (
	// DefaultMaxSizeBytes bounds the total size of stored blobs.
	DefaultMaxSizeBytes = 100 * 1024 * 1024

	// DefaultSavedPerHitMs is the latency-savings estimate credited per hit.
	DefaultSavedPerHitMs = 950

	// DefaultAdmitAfterMisses is the miss count after which a text becomes
	// cacheable without a keyword match.
	DefaultAdmitAfterMisses = 3

	// DefaultMaxTextLength rejects longer texts outright.
	DefaultMaxTextLength = 200
)

const (
	blobExt       = ".pcm"
	snapshotName  = "metadata.json"
	previewWidth  = 100
	warmSeenCount = 10
)

// ErrNoDirectory is returned by New when no cache directory is configured.
var ErrNoDirectory = errors.New("cache directory not set")

// Entry describes one cached blob in the in-memory index.
type Entry struct {
	Key         string    `json:"key"`
	TextPreview string    `json:"text"`
	Voice       string    `json:"voice"`
	Speed       float64   `json:"speed"`
	Provider    string    `json:"provider"`
	SizeBytes   int64     `json:"size"`
	HitCount    int64     `json:"hit_count"`
	CreatedAt   time.Time `json:"created"`
	LastUsedAt  time.Time `json:"last_used"`
	Path        string    `json:"file_path"`
}

// Phrase is one warmup tuple for Warm.
type Phrase struct {
	Text     string
	Voice    string
	Speed    float64
	Provider string
}

// Config holds the tuning knobs for a ResponseCache.
type Config struct {
	// Dir is the directory holding blob files and the snapshot.
	Dir string

	// MaxSizeBytes is the eviction threshold for the sum of all blob sizes.
	MaxSizeBytes int64

	// SavedPerHitMs is the fixed latency-savings estimate credited per hit.
	// Used for reporting only.
	SavedPerHitMs int64

	// AdmitAfterMisses is the miss-observation count after which a text
	// becomes cacheable.
	AdmitAfterMisses int

	// MaxTextLength rejects longer texts outright, measured in
	// characters; long responses are assumed unique.
	MaxTextLength int

	// Keywords admit matching texts immediately, regardless of frequency.
	// Matching is a case-insensitive substring test.
	Keywords []string

	// WatchBlobs purges index entries when their blob files are removed
	// from the cache directory by other programs.
	WatchBlobs bool
}

// DefaultConfig returns the stock cache configuration.
func DefaultConfig() Config {
	return Config{
		Dir:              filepath.Join("cache", "responses"),
		MaxSizeBytes:     DefaultMaxSizeBytes,
		SavedPerHitMs:    DefaultSavedPerHitMs,
		AdmitAfterMisses: DefaultAdmitAfterMisses,
		MaxTextLength:    DefaultMaxTextLength,
		Keywords:         DefaultKeywords(),
	}
}

// DefaultKeywords returns the stock action-confirmation substrings that are
// always worth caching.
func DefaultKeywords() []string {
	return []string{
		"hardpoints deployed",
		"setting speed",
		"shields up",
		"understood",
		"cargo scoop",
		"landing gear",
		"frameshift",
		"jump complete",
	}
}
