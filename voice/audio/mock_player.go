package audio

import "sync"

// MockPlayer records played audio instead of producing sound. Tests and
// headless environments use it in place of the device-backed Player.
type MockPlayer struct {
	mu      sync.Mutex
	played  [][]byte
	playErr error
	closed  bool
}

// NewMockPlayer creates a mock player with no recorded audio.
func NewMockPlayer() *MockPlayer {
	return &MockPlayer{}
}

// Play records a copy of audio.
func (m *MockPlayer) Play(audio []byte) error {
	if len(audio) == 0 {
		return ErrNothingToPlay
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrPlayerClosed
	}
	if m.playErr != nil {
		return m.playErr
	}

	buf := make([]byte, len(audio))
	copy(buf, audio)
	m.played = append(m.played, buf)
	return nil
}

// SetPlayError makes subsequent Play calls fail with err.
func (m *MockPlayer) SetPlayError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playErr = err
}

// Played returns the recorded utterances in play order.
func (m *MockPlayer) Played() [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([][]byte, len(m.played))
	copy(out, m.played)
	return out
}

// Reset clears the recorded utterances.
func (m *MockPlayer) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.played = nil
}

// Close marks the player closed; further Play calls fail.
func (m *MockPlayer) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
