// Package voice speaks the assistant's responses aloud. A Speaker ties a
// text synthesizer to an on-disk response cache and an optional playback
// sink, so repeated phrases skip the synthesis round-trip and play with
// minimal latency.
package voice
