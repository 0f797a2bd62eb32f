package bot

import (
	"errors"

	"vibeshelf/internal/domain"
)

// Fixed user-facing message table. Internal failure detail stays in logs;
// callers only ever see one of these strings.
const (
	msgInvalidURL     = "Please send a valid URL starting with http:// or https://"
	msgNetworkError   = "Could not reach that page. Please try again."
	msgRateLimited    = "Too many requests right now. Please wait a moment and try again."
	msgAnalysisFailed = "Failed to analyze that URL. Please try again."
	msgSaveFailed     = "Failed to save the resource. Please try again."
	msgLoadFailed     = "Failed to load resources. Please try again."
	msgSaved          = "Saved for review!"
	msgUnauthorized   = "That command is for moderators only."
)

// userMessage maps a pipeline or storage error onto the fixed message table.
func userMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidURL):
		return msgInvalidURL
	case errors.Is(err, domain.ErrContentUnavailable):
		return msgNetworkError
	case errors.Is(err, domain.ErrRateLimited):
		return msgRateLimited
	default:
		return msgAnalysisFailed
	}
}
