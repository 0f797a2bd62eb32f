package fetcher

import "context"

// Content is the raw material one pipeline run works with. It is owned by
// that run, discarded after classification, and never persisted.
type Content struct {
	// URL is the normalized URL the content was fetched from.
	URL string

	// Title is the document title, if the page declared one.
	Title string

	// Text is the readable text of the page, markup removed upstream of any
	// sanitization the pipeline applies.
	Text string

	// ThumbnailURL is a preview image the page itself declared (og:image),
	// if any. Untrusted until validated.
	ThumbnailURL string
}

// Fetcher retrieves page content for a URL within a bounded time.
// Implementations surface failures as errors rather than panicking so the
// pipeline can convert them into a typed user-facing failure.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*Content, error)
}
