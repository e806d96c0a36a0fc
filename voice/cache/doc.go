// Package cache implements the on-disk response cache for synthesized audio.
// It combines frequency-driven admission, bulk LRU eviction, and a JSON
// snapshot so frequently spoken phrases survive restarts.
package cache
