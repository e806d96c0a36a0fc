package cache

import "testing"

func TestBuildStats_Empty(t *testing.T) {
	stats := buildStats(counters{}, 0, 0)

	if stats.Hits != 0 || stats.Misses != 0 {
		t.Error("Fresh counters should report zero hits and misses")
	}
	if stats.HitRatePercent != 0 {
		t.Errorf("Hit rate with no requests should be 0, got %v", stats.HitRatePercent)
	}
	if stats.TotalSavedMs != 0 || stats.TotalSavedSeconds != 0 {
		t.Error("Fresh counters should report zero savings")
	}
	if stats.CacheSizeMb != 0 || stats.CachedItems != 0 {
		t.Error("Empty cache should report zero size and items")
	}
}

func TestBuildStats_HitRate(t *testing.T) {
	tests := []struct {
		name   string
		hits   int64
		misses int64
		want   float64
	}{
		{"all hits", 4, 0, 100},
		{"all misses", 0, 4, 0},
		{"half", 2, 2, 50},
		{"one third rounds to tenth", 1, 2, 33.3},
		{"two thirds rounds to tenth", 2, 1, 66.7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := buildStats(counters{Hits: tt.hits, Misses: tt.misses}, 0, 0)
			if stats.HitRatePercent != tt.want {
				t.Errorf("Hit rate = %v, want %v", stats.HitRatePercent, tt.want)
			}
		})
	}
}

func TestBuildStats_Savings(t *testing.T) {
	stats := buildStats(counters{Hits: 2, SavedMs: 1900}, 0, 0)

	if stats.TotalSavedMs != 1900 {
		t.Errorf("TotalSavedMs = %d, want 1900", stats.TotalSavedMs)
	}
	if stats.TotalSavedSeconds != 1.9 {
		t.Errorf("TotalSavedSeconds = %v, want 1.9", stats.TotalSavedSeconds)
	}
}

func TestBuildStats_SizeAndItems(t *testing.T) {
	stats := buildStats(counters{Generations: 3}, 512*1024, 3)

	if stats.CacheSizeMb != 0.5 {
		t.Errorf("CacheSizeMb = %v, want 0.5", stats.CacheSizeMb)
	}
	if stats.CachedItems != 3 {
		t.Errorf("CachedItems = %d, want 3", stats.CachedItems)
	}
	if stats.Generations != 3 {
		t.Errorf("Generations = %d, want 3", stats.Generations)
	}
}

func TestRounding(t *testing.T) {
	if got := round1(33.333333); got != 33.3 {
		t.Errorf("round1(33.333333) = %v, want 33.3", got)
	}
	if got := round1(66.666666); got != 66.7 {
		t.Errorf("round1(66.666666) = %v, want 66.7", got)
	}
	if got := round2(1.23456); got != 1.23 {
		t.Errorf("round2(1.23456) = %v, want 1.23", got)
	}
	if got := round2(2.378); got != 2.38 {
		t.Errorf("round2(2.378) = %v, want 2.38", got)
	}
}
