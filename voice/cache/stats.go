package cache

import "math"

// counters are the persisted running totals.
type counters struct {
	Hits        int64 `json:"hits"`
	Misses      int64 `json:"misses"`
	Generations int64 `json:"generations"`
	SavedMs     int64 `json:"total_saved_ms"`
}

// Stats is the read-only performance report returned by ResponseCache.Stats.
type Stats struct {
	Hits              int64   `json:"hits"`
	Misses            int64   `json:"misses"`
	HitRatePercent    float64 `json:"hit_rate_percent"`
	TotalSavedMs      int64   `json:"total_saved_ms"`
	TotalSavedSeconds float64 `json:"total_saved_seconds"`
	CacheSizeMb       float64 `json:"cache_size_mb"`
	CachedItems       int     `json:"cached_items"`
	Generations       int64   `json:"generations"`
}

// buildStats derives the reported figures from the raw counters, the blob
// size sum, and the index length. The hit rate is 0 when no requests have
// been observed.
func buildStats(cnt counters, sizeBytes int64, items int) Stats {
	s := Stats{
		Hits:         cnt.Hits,
		Misses:       cnt.Misses,
		TotalSavedMs: cnt.SavedMs,
		Generations:  cnt.Generations,
		CachedItems:  items,
	}
	if total := cnt.Hits + cnt.Misses; total > 0 {
		s.HitRatePercent = round1(float64(cnt.Hits) / float64(total) * 100)
	}
	s.TotalSavedSeconds = round1(float64(cnt.SavedMs) / 1000)
	s.CacheSizeMb = round2(float64(sizeBytes) / (1024 * 1024))
	return s
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }

func round2(v float64) float64 { return math.Round(v*100) / 100 }
