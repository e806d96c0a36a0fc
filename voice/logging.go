package voice

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/mitchellh/go-homedir"
)

var (
	sessionMu  sync.Mutex
	sessionLog *log.Logger
)

// InitializeLogging sets up voice-specific logging. In debug mode a
// session log file is also opened so synthesis timings can be inspected
// after the fact; failure to open it downgrades to console-only logging.
func InitializeLogging(debugMode bool) error {
	if !debugMode {
		log.SetLevel(log.InfoLevel)
		return nil
	}

	log.SetLevel(log.DebugLevel)
	log.Debug("Voice logging initialized", "level", "DEBUG")

	logger, err := newSessionLogger()
	if err != nil {
		log.Warn("Failed to set up debug log file", "error", err)
		return nil
	}

	sessionMu.Lock()
	sessionLog = logger
	sessionMu.Unlock()

	return nil
}

// newSessionLogger opens the append-only debug log under the user's home
// directory and returns a logger writing timestamped entries to it.
func newSessionLogger() (*log.Logger, error) {
	home, err := homedir.Dir()
	if err != nil {
		return nil, err
	}

	logDir := filepath.Join(home, ".elite-ai")
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, err
	}

	logPath := filepath.Join(logDir, "voice-debug.log")
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}

	log.Debug("Voice debug log file created", "path", logPath)

	return log.NewWithOptions(file, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Level:           log.DebugLevel,
	}), nil
}

// logSynthesis writes one response record to the session log when debug
// logging is active. Cache hits report a zero duration because no
// synthesis happened.
func logSynthesis(provider string, textChars, audioBytes int, duration time.Duration, cacheHit bool) {
	sessionMu.Lock()
	logger := sessionLog
	sessionMu.Unlock()
	if logger == nil {
		return
	}

	logger.Debug("Response ready",
		"provider", provider,
		"textChars", textChars,
		"audio", humanize.Bytes(uint64(audioBytes)),
		"duration", duration,
		"cacheHit", cacheHit)
}
