package voice

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mitchellh/go-homedir"
)

// TestInitializeLoggingInfo tests non-debug initialization.
func TestInitializeLoggingInfo(t *testing.T) {
	defer log.SetLevel(log.InfoLevel)

	if err := InitializeLogging(false); err != nil {
		t.Errorf("InitializeLogging(false) error = %v", err)
	}

	if log.GetLevel() != log.InfoLevel {
		t.Errorf("log level = %v, want info", log.GetLevel())
	}
}

// TestInitializeLoggingDebug tests that debug mode opens a session log
// file under the home directory.
func TestInitializeLoggingDebug(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	homedir.DisableCache = true
	defer func() {
		homedir.DisableCache = false
		log.SetLevel(log.InfoLevel)
		sessionMu.Lock()
		sessionLog = nil
		sessionMu.Unlock()
	}()

	if err := InitializeLogging(true); err != nil {
		t.Fatalf("InitializeLogging(true) error = %v", err)
	}

	if log.GetLevel() != log.DebugLevel {
		t.Errorf("log level = %v, want debug", log.GetLevel())
	}

	logPath := filepath.Join(home, ".elite-ai", "voice-debug.log")
	if _, err := os.Stat(logPath); err != nil {
		t.Fatalf("debug log file not created: %v", err)
	}

	// Records written through the session logger land in the file.
	logSynthesis("mock", 10, 480, 15*time.Millisecond, false)
	logSynthesis("mock", 10, 480, 0, true)

	info, err := os.Stat(logPath)
	if err != nil {
		t.Fatalf("stat debug log: %v", err)
	}
	if info.Size() == 0 {
		t.Error("debug log file is empty after logging")
	}
}

// TestLogSynthesisWithoutSession tests that logging is a no-op before
// initialization.
func TestLogSynthesisWithoutSession(t *testing.T) {
	sessionMu.Lock()
	sessionLog = nil
	sessionMu.Unlock()

	// Must not panic
	logSynthesis("mock", 5, 240, time.Millisecond, false)
}
