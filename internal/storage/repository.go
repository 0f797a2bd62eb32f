package storage

import (
	"context"
	"errors"

	"vibeshelf/internal/domain"
)

// ErrNotFound is returned when no resource exists under the requested id.
var ErrNotFound = errors.New("resource not found")

// ErrInvalidTransition is returned when a status update violates the
// resource lifecycle (e.g. un-archiving).
var ErrInvalidTransition = errors.New("invalid status transition")

// Filter narrows List results. Zero-value fields match everything.
type Filter struct {
	Status       domain.Status
	Category     string
	ResourceType string
	Language     string
	OwnerID      int64
}

// Repository defines the record store operations the directory needs. The
// interface keeps the storage engine swappable without touching the intake
// or moderation logic that uses it.
type Repository interface {
	// Create persists a proposed resource for ownerID, assigning identity
	// fields and the pending_review status.
	Create(ctx context.Context, proposed domain.ProposedResource, ownerID int64) (domain.Resource, error)

	// Get returns the resource with the given id, or ErrNotFound.
	Get(ctx context.Context, id string) (domain.Resource, error)

	// List returns resources matching the filter, newest first.
	List(ctx context.Context, filter Filter) ([]domain.Resource, error)

	// UpdateStatus moves a resource through its lifecycle, enforcing the
	// allowed transitions.
	UpdateStatus(ctx context.Context, id string, status domain.Status) (domain.Resource, error)

	// Delete removes a resource. Deleting a missing id is not an error.
	Delete(ctx context.Context, id string) error

	// Close gracefully shuts down the repository.
	Close() error
}
