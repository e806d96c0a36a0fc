package voice

import "errors"

// Common errors for the voice subsystem.
var (
	// Speaker errors
	ErrNoSynthesizer = errors.New("no synthesizer configured")
	ErrEmptyText     = errors.New("empty text provided")
	ErrSpeakerClosed = errors.New("speaker has been shut down")

	// Playback errors
	ErrNothingToPlay  = errors.New("no audio to play")
	ErrPlaybackFailed = errors.New("audio playback failed")

	// Configuration errors
	ErrInvalidConfig = errors.New("invalid configuration")
)

// IsRecoverableError checks if an error is recoverable.
func IsRecoverableError(err error) bool {
	if err == nil {
		return true
	}

	// Non-recoverable errors
	switch {
	case errors.Is(err, ErrNoSynthesizer),
		errors.Is(err, ErrSpeakerClosed),
		errors.Is(err, ErrInvalidConfig):
		return false
	}

	// Most errors are recoverable
	return true
}

// ErrorSeverity represents the severity of an error.
type ErrorSeverity int

const (
	// SeverityInfo is for informational messages.
	SeverityInfo ErrorSeverity = iota
	// SeverityWarning is for warnings that don't prevent operation.
	SeverityWarning
	// SeverityError is for errors that prevent normal operation.
	SeverityError
	// SeverityCritical is for errors that require immediate attention.
	SeverityCritical
)

// VoiceError provides detailed error information.
type VoiceError struct {
	Err       error                  // The underlying error
	Component string                 // Component that generated the error
	Action    string                 // Action being performed when error occurred
	Severity  ErrorSeverity          // Severity of the error
	Context   map[string]interface{} // Additional context
}

// Error implements the error interface.
func (e *VoiceError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown voice error"
}

// Unwrap returns the underlying error.
func (e *VoiceError) Unwrap() error {
	return e.Err
}

// IsRecoverable checks if the error is recoverable.
func (e *VoiceError) IsRecoverable() bool {
	return IsRecoverableError(e.Err)
}

// NewVoiceError creates a new voice error with context.
func NewVoiceError(err error, component, action string) *VoiceError {
	return &VoiceError{
		Err:       err,
		Component: component,
		Action:    action,
		Severity:  SeverityError,
		Context:   make(map[string]interface{}),
	}
}

// WithSeverity sets the error severity.
func (e *VoiceError) WithSeverity(severity ErrorSeverity) *VoiceError {
	e.Severity = severity
	return e
}

// WithContext adds context to the error.
func (e *VoiceError) WithContext(key string, value interface{}) *VoiceError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}
