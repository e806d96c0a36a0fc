package voice

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// MockSynthesizer implements Synthesizer without contacting any provider.
// It returns a payload derived from the input so callers can tell which
// request produced which audio, and counts the requests that reach it so
// tests can assert on cache behavior.
type MockSynthesizer struct {
	// Delay simulates synthesis latency when non-zero.
	Delay time.Duration
	// Err, when set, is returned by every Synthesize call.
	Err error

	mu    sync.Mutex
	calls int
}

// Synthesize returns deterministic bytes for the given text and speed.
func (m *MockSynthesizer) Synthesize(ctx context.Context, text string, speed float64) ([]byte, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	if m.Delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(m.Delay):
		}
	}

	if m.Err != nil {
		return nil, m.Err
	}

	return []byte(fmt.Sprintf("pcm:%s:%.2f", text, speed)), nil
}

// Name identifies the mock provider.
func (m *MockSynthesizer) Name() string {
	return "mock"
}

// Calls reports how many synthesis requests reached the mock.
func (m *MockSynthesizer) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Ensure MockSynthesizer implements Synthesizer
var _ Synthesizer = (*MockSynthesizer)(nil)
