package voice

import "context"

// Synthesizer converts text into raw PCM audio. Implementations wrap a
// hosted speech API or a local engine.
type Synthesizer interface {
	// Synthesize renders text as audio at the given speed multiplier.
	// The returned bytes use the stream settings the provider was
	// configured with.
	Synthesize(ctx context.Context, text string, speed float64) ([]byte, error)

	// Name identifies the provider. It is part of the cache identity for
	// every stored response, so it must be stable across runs.
	Name() string
}

// AudioSink consumes synthesized audio, usually by playing it.
type AudioSink interface {
	// Play delivers one utterance to the sink. It should return once
	// playback has started rather than once it has finished.
	Play(audio []byte) error

	// Close releases the sink's resources.
	Close() error
}
