package classifier

import (
	"context"

	"vibeshelf/internal/fetcher"
)

// Result is the structured guess the classification service returns. It is
// untrusted: fields may be missing, contain markup, or hold labels outside
// the directory taxonomy. Nothing downstream may rely on it before coercion.
type Result struct {
	Title               string   `json:"title"`
	Summary             string   `json:"summary"`
	ThumbnailURL        string   `json:"thumbnail_url,omitempty"`
	SuggestedCategories []string `json:"suggested_categories"`
	ResourceType        string   `json:"resource_type"`
	Language            string   `json:"language"`
}

// Classifier derives structured metadata from fetched page content.
// Implementations return a best-effort Result or a typed failure; they do
// not validate field values.
type Classifier interface {
	Classify(ctx context.Context, content *fetcher.Content) (*Result, error)
}
