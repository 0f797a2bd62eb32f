package intake

import (
	"fmt"
	"net/url"

	"vibeshelf/internal/classifier"
	"vibeshelf/internal/domain"
	"vibeshelf/internal/fetcher"
	"vibeshelf/internal/sanitize"
	"vibeshelf/internal/validate"
)

// Coerce reconciles an untrusted classification result against the closed
// taxonomy and produces a ProposedResource. It degrades gracefully rather
// than failing: invalid labels are dropped or substituted, oversized text is
// clamped. The one hard failure is a result with zero valid categories —
// a resource that cannot be categorized cannot be browsed, so the run fails
// with ErrInvalidClassification.
//
// This is the authoritative boundary between untrusted external output and
// values the rest of the system trusts implicitly.
func Coerce(res *classifier.Result, content *fetcher.Content, taxonomy domain.Taxonomy) (domain.ProposedResource, error) {
	proposed := domain.ProposedResource{URL: content.URL}

	title := sanitize.Sanitize(res.Title)
	if title == "" {
		title = fallbackTitle(content)
	}
	proposed.Title = validate.ClampText(title, domain.MaxTitleLength)

	proposed.Summary = validate.ClampText(sanitize.Sanitize(res.Summary), domain.MaxSummaryLength)

	// Keep only canonical categories, preserving the upstream order, capped
	// at the cardinality bound.
	for _, c := range res.SuggestedCategories {
		if !taxonomy.HasCategory(c) {
			continue
		}
		proposed.Categories = append(proposed.Categories, c)
		if len(proposed.Categories) == domain.MaxCategories {
			break
		}
	}
	if len(proposed.Categories) < domain.MinCategories {
		return domain.ProposedResource{}, fmt.Errorf("%w: no suggested category matched the taxonomy", domain.ErrInvalidClassification)
	}

	proposed.ResourceType = res.ResourceType
	if !taxonomy.HasResourceType(proposed.ResourceType) {
		proposed.ResourceType = taxonomy.DefaultResourceType
	}

	proposed.Language = res.Language
	if !taxonomy.HasLanguage(proposed.Language) {
		proposed.Language = taxonomy.DefaultLanguage
	}

	// Thumbnail is optional downstream: an invalid URL is omitted, never
	// substituted. The page's own declared thumbnail is the fallback.
	proposed.ThumbnailURL = coerceThumbnail(res.ThumbnailURL, content.ThumbnailURL)

	return proposed, nil
}

// fallbackTitle derives a title from the page when the classifier offered
// none: the fetched document title, else the URL's host.
func fallbackTitle(content *fetcher.Content) string {
	if t := sanitize.Sanitize(content.Title); t != "" {
		return t
	}
	if u, err := url.Parse(content.URL); err == nil && u.Host != "" {
		return u.Host
	}
	return content.URL
}

func coerceThumbnail(candidates ...string) string {
	for _, c := range candidates {
		if c == "" {
			continue
		}
		if normalized, err := validate.ValidateURL(c); err == nil {
			return normalized
		}
	}
	return ""
}
