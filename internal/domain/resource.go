package domain

import "time"

// Status is the lifecycle state of a stored resource.
type Status string

const (
	// StatusPendingReview is assigned to every newly submitted resource.
	StatusPendingReview Status = "pending_review"
	// StatusApproved means a moderator accepted the resource for public listing.
	StatusApproved Status = "approved"
	// StatusArchived is terminal. Approved resources may be retracted into it.
	StatusArchived Status = "archived"
)

// CanTransitionTo reports whether a moderation action may move a resource
// from s to next. pending_review can go either way, approved can only be
// retracted, archived never leaves.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusPendingReview:
		return next == StatusApproved || next == StatusArchived
	case StatusApproved:
		return next == StatusArchived
	default:
		return false
	}
}

// ProposedResource is the intake pipeline's output: a resource record with
// every field validated and sanitized, missing only persistence identity.
type ProposedResource struct {
	URL          string   `json:"url"`
	Title        string   `json:"title"`
	Summary      string   `json:"summary"`
	ThumbnailURL string   `json:"thumbnail_url,omitempty"`
	Categories   []string `json:"categories"`
	ResourceType string   `json:"resource_type"`
	Language     string   `json:"language"`
}

// Resource is a persisted directory entry.
type Resource struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	OwnerID   int64     `json:"owner_id"`
	Status    Status    `json:"status"`

	URL          string   `json:"url"`
	Title        string   `json:"title"`
	Summary      string   `json:"summary"`
	ThumbnailURL string   `json:"thumbnail_url,omitempty"`
	Categories   []string `json:"categories"`
	ResourceType string   `json:"resource_type"`
	Language     string   `json:"language"`
}

// Field length budgets and cardinality bounds. These are contracts with the
// classification service and the record store, not tunables, so they live
// here as constants rather than in config.
const (
	MaxURLLength     = 2048
	MaxTitleLength   = 200
	MaxSummaryLength = 500
	MaxContentLength = 4000

	MinCategories = 1
	MaxCategories = 3
)
