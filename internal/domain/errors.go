package domain

import "errors"

// Intake pipeline error taxonomy. Callers match these with errors.Is and map
// them onto the fixed user-facing message table; the wrapped detail stays in
// logs only.
var (
	// ErrInvalidURL means the submitted URL is malformed, oversized, or uses
	// a disallowed scheme. Not retryable; the caller must fix the input.
	ErrInvalidURL = errors.New("invalid url")

	// ErrContentUnavailable means the page could not be fetched (network
	// failure or timeout). Retryable by re-submitting.
	ErrContentUnavailable = errors.New("content unavailable")

	// ErrRateLimited means the classification service throttled the request.
	ErrRateLimited = errors.New("rate limited")

	// ErrAnalysisFailed means the classification service returned no usable
	// data, or kept rate-limiting after the internal retry.
	ErrAnalysisFailed = errors.New("analysis failed")

	// ErrInvalidClassification means zero suggested categories survived
	// coercion. Internal only: the pipeline converts it to ErrAnalysisFailed
	// before it reaches a caller.
	ErrInvalidClassification = errors.New("invalid classification")
)
