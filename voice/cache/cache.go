package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/fsnotify/fsnotify"
	"github.com/mattn/go-runewidth"
)

// ResponseCache stores synthesized audio keyed by the exact request tuple
// so repeated phrases skip the synthesis round-trip. One exclusive lock
// guards the index, the frequency counters, and the statistics for the
// whole of each operation; disk failures degrade to miss or not-cached
// outcomes and are never returned to callers.
type ResponseCache struct {
	dir           string
	maxSize       int64
	savedPerHitMs int64
	policy        *policy

	mu      sync.Mutex
	entries map[string]*Entry
	seen    map[string]int
	stats   counters

	watcher   *fsnotify.Watcher
	watchDone chan struct{}
}

// New opens or creates a response cache in cfg.Dir. Zero Config fields fall
// back to the package defaults. A snapshot from a previous run is loaded
// when present; a corrupt snapshot is logged and replaced with empty state.
func New(cfg Config) (*ResponseCache, error) {
	if cfg.Dir == "" {
		return nil, ErrNoDirectory
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}

	if cfg.MaxSizeBytes <= 0 {
		cfg.MaxSizeBytes = DefaultMaxSizeBytes
	}
	if cfg.SavedPerHitMs <= 0 {
		cfg.SavedPerHitMs = DefaultSavedPerHitMs
	}
	if cfg.AdmitAfterMisses <= 0 {
		cfg.AdmitAfterMisses = DefaultAdmitAfterMisses
	}
	if cfg.MaxTextLength <= 0 {
		cfg.MaxTextLength = DefaultMaxTextLength
	}
	if len(cfg.Keywords) == 0 {
		cfg.Keywords = DefaultKeywords()
	}

	c := &ResponseCache{
		dir:           cfg.Dir,
		maxSize:       cfg.MaxSizeBytes,
		savedPerHitMs: cfg.SavedPerHitMs,
		policy:        newPolicy(cfg.MaxTextLength, cfg.AdmitAfterMisses, cfg.Keywords),
	}

	snap, err := loadSnapshot(cfg.Dir)
	if err != nil {
		log.Warn("Failed to load cache snapshot, starting empty", "dir", cfg.Dir, "error", err)
	}
	c.entries = snap.Entries
	c.seen = snap.Seen
	c.stats = snap.Stats

	if len(c.entries) > 0 {
		log.Info("Loaded response cache",
			"items", len(c.entries),
			"size", humanize.Bytes(uint64(c.blobBytes())))
	}

	if cfg.WatchBlobs {
		if err := c.startWatcher(); err != nil {
			log.Warn("Cache directory watcher unavailable", "dir", cfg.Dir, "error", err)
		}
	}

	return c, nil
}

// Lookup returns the cached audio for the exact request tuple. A miss,
// whether the key is unknown or the blob has gone unreadable, is reported
// as (nil, false) and counted in the statistics. Unknown texts also feed
// the miss-frequency counter consulted by Store.
func (c *ResponseCache) Lookup(text, voice string, speed float64, provider string) ([]byte, bool) {
	key := DeriveKey(text, voice, speed, provider)

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		c.stats.Misses++
		c.seen[text]++
		log.Debug("Cache miss", "key", key, "seen", c.seen[text])
		return nil, false
	}

	data, err := os.ReadFile(entry.Path)
	if err != nil {
		log.Warn("Cached blob unreadable, purging entry",
			"key", key, "text", entry.TextPreview, "error", err)
		delete(c.entries, key)
		c.stats.Misses++
		return nil, false
	}

	c.stats.Hits++
	c.stats.SavedMs += c.savedPerHitMs
	entry.HitCount++
	entry.LastUsedAt = time.Now()

	log.Debug("Cache hit", "key", key, "text", entry.TextPreview, "savedMs", c.savedPerHitMs)
	return data, true
}

// Store offers synthesized audio to the cache. Admission is decided here:
// texts over the length limit are skipped, keyword texts are always taken,
// and anything else needs enough recorded misses, so callers are expected
// to have looked the tuple up (and missed) before storing it. Rejection
// and disk failure are both silent no-ops from the caller's point of view;
// a blob that cannot be written never gains an index entry.
func (c *ResponseCache) Store(text, voice string, speed float64, provider string, audio []byte) {
	key := DeriveKey(text, voice, speed, provider)

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.policy.admit(text, c.seen[text]) {
		log.Debug("Not admitted to cache", "text", makePreview(text), "seen", c.seen[text])
		return
	}

	size := int64(len(audio))
	if c.blobBytes()+size > c.maxSize {
		c.evictOldest()
	}

	path := filepath.Join(c.dir, blobName(key))
	if err := writeFile(path, audio); err != nil {
		log.Error("Failed to write cache blob",
			"key", key, "size", humanize.Bytes(uint64(size)), "error", err)
		return
	}

	now := time.Now()
	c.entries[key] = &Entry{
		Key:         key,
		TextPreview: makePreview(text),
		Voice:       voice,
		Speed:       speed,
		Provider:    provider,
		SizeBytes:   size,
		HitCount:    1,
		CreatedAt:   now,
		LastUsedAt:  now,
		Path:        path,
	}
	c.stats.Generations++
	c.persist()

	log.Debug("Cached audio", "key", key, "text", makePreview(text),
		"size", humanize.Bytes(uint64(size)))
}

// Warm pre-marks each phrase's text as frequent so the next Store admits it
// without waiting for repeat misses. No synthesis or disk I/O happens here;
// blobs still arrive through the normal Store path.
func (c *ResponseCache) Warm(phrases []Phrase) {
	c.mu.Lock()
	defer c.mu.Unlock()

	mark := warmSeenCount
	if c.policy.minMisses > mark {
		mark = c.policy.minMisses
	}
	for _, p := range phrases {
		c.seen[p.Text] = mark
	}

	log.Info("Warming response cache", "phrases", len(phrases))
}

// Clear deletes every cached blob and resets the index, frequency counters,
// and statistics, persisting the empty state.
func (c *ResponseCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, entry := range c.entries {
		if err := os.Remove(entry.Path); err != nil && !os.IsNotExist(err) {
			log.Warn("Failed to delete cached blob", "key", entry.Key, "error", err)
		}
	}
	c.entries = make(map[string]*Entry)
	c.seen = make(map[string]int)
	c.stats = counters{}
	c.persist()

	log.Info("Response cache cleared")
}

// Stats reports the accumulated counters plus figures derived on demand
// from the index, so the reported size cannot drift from the entries
// actually present.
func (c *ResponseCache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	return buildStats(c.stats, c.blobBytes(), len(c.entries))
}

// Close stops the directory watcher when one is running and flushes a final
// snapshot so lookup timestamps from this session survive a restart.
func (c *ResponseCache) Close() error {
	c.stopWatcher()

	c.mu.Lock()
	defer c.mu.Unlock()

	return c.saveSnapshot()
}

// evictOldest removes the least recently used fifth of the index (at least
// one entry), deleting blobs as it goes. A failed delete is logged but the
// entry is dropped regardless, so a permanently broken path cannot wedge
// the cache. Must be called with the lock held.
func (c *ResponseCache) evictOldest() {
	if len(c.entries) == 0 {
		return
	}

	victims := make([]*Entry, 0, len(c.entries))
	for _, entry := range c.entries {
		victims = append(victims, entry)
	}
	sort.Slice(victims, func(i, j int) bool {
		return victims[i].LastUsedAt.Before(victims[j].LastUsedAt)
	})

	count := (len(victims) + 4) / 5
	var freed int64
	for _, entry := range victims[:count] {
		if err := os.Remove(entry.Path); err != nil && !os.IsNotExist(err) {
			log.Warn("Failed to delete evicted blob", "key", entry.Key, "error", err)
		}
		delete(c.entries, entry.Key)
		freed += entry.SizeBytes
		log.Debug("Evicted cache entry", "key", entry.Key, "text", entry.TextPreview)
	}

	log.Info("Evicted oldest cache entries",
		"count", count, "freed", humanize.Bytes(uint64(freed)))
	c.persist()
}

// blobBytes sums the recorded blob sizes. Callers must hold the lock; New
// uses it before the cache is visible to other goroutines.
func (c *ResponseCache) blobBytes() int64 {
	var total int64
	for _, entry := range c.entries {
		total += entry.SizeBytes
	}
	return total
}

// persist writes the snapshot, logging failure instead of propagating it.
// Must be called with the lock held.
func (c *ResponseCache) persist() {
	if err := c.saveSnapshot(); err != nil {
		log.Error("Failed to save cache snapshot", "dir", c.dir, "error", err)
	}
}

// makePreview bounds stored and logged text excerpts.
func makePreview(text string) string {
	return runewidth.Truncate(text, previewWidth, "")
}
