// Package audio plays raw PCM through the system audio device using oto.
// It keeps playing buffers referenced for the duration of playback, which
// prevents the static caused by the collector reclaiming audio data the
// device is still draining.
package audio
