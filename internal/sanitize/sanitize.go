// Package sanitize strips executable and markup content from untrusted text
// before it is persisted or rendered. Every text field sourced from a fetched
// page or from classifier output passes through here.
package sanitize

import (
	"regexp"
	"strings"
)

var (
	// Script elements go first, opening tag through matching closing tag,
	// non-greedy and case-insensitive. Stripping generic tags before script
	// blocks could expose payload fragments where the two patterns overlap.
	scriptRe = regexp.MustCompile(`(?is)<script\b.*?</script\s*>`)
	tagRe    = regexp.MustCompile(`<[^>]*>`)
	// Unterminated script openers ("<script src=x" with no closing bracket)
	// match neither pattern above; they are stripped through the end of the
	// fragment so no "<script" marker can survive.
	danglingScriptRe = regexp.MustCompile(`(?i)<script[^>]*`)
)

// Sanitize removes script blocks, then all remaining tag-like markup, then
// any unterminated script fragment, and trims the result. Removal repeats
// until a fixpoint so that stripping one layer cannot uncover another
// (e.g. "<<b>script>...") and the function is idempotent.
func Sanitize(text string) string {
	for {
		out := scriptRe.ReplaceAllString(text, "")
		out = tagRe.ReplaceAllString(out, "")
		out = danglingScriptRe.ReplaceAllString(out, "")
		if out == text {
			break
		}
		text = out
	}
	return strings.TrimSpace(text)
}
