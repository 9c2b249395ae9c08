package completion

import "errors"

// Sentinel errors for upstream failure modes the API layer maps to distinct
// status codes. Wrapped errors carry detail; match with errors.Is.
var (
	// ErrTimeout means the completion provider did not answer in time.
	ErrTimeout = errors.New("completion provider timed out")

	// ErrRateLimited means the provider rejected the call with HTTP 429.
	ErrRateLimited = errors.New("completion provider rate limited")

	// ErrAuth means the provider rejected our credentials.
	ErrAuth = errors.New("completion provider rejected credentials")
)
