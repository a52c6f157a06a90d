package handlers

const (
	ErrInvalidJSON         = "Invalid request body"
	ErrUnauthorized        = "No active session"
	ErrInternalServerError = "Internal server error"
	ErrTooManyRequests     = "Too many requests"
	ErrSpeechUnsupported   = "Speech not supported"

	// maxBodyBytes bounds JSON request bodies
	maxBodyBytes = 1 << 20
)
