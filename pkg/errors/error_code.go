package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeInvalidContract      ErrorCode = 102
	ErrCodeInvalidVersion       ErrorCode = 103
	ErrCodeInvalidDate          ErrorCode = 104

	// Automation environment errors (200-299)
	ErrCodeWindowNotFound   ErrorCode = 200
	ErrCodeControlNotFound  ErrorCode = 201
	ErrCodeAutomationFailed ErrorCode = 202
	ErrCodeUnknownControl   ErrorCode = 203

	// Filesystem probe errors (300-399)
	ErrCodeArtifactProbeFailed ErrorCode = 300
	ErrCodeWatcherFailed       ErrorCode = 301

	// Session errors (400-499)
	ErrCodeSessionRunning        ErrorCode = 400
	ErrCodeSessionFailed         ErrorCode = 401
	ErrCodeSessionCancelled      ErrorCode = 402
	ErrCodeEngineNotInitialized  ErrorCode = 403
	ErrCodeSchedulerConfigFailed ErrorCode = 404
)
