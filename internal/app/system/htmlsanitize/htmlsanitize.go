// Package htmlsanitize strips dangerous markup from user-generated content
// before it is stored. Forum post bodies are the only UGC rich-text surface.
package htmlsanitize

import "github.com/microcosm-cc/bluemonday"

// policy allows basic formatting (p, strong, em, lists, links) and nothing
// executable. Built once; bluemonday policies are safe for concurrent use.
var policy = bluemonday.UGCPolicy()

// Sanitize returns s with scripts, event handlers, and javascript: URLs
// removed. Plain text passes through unchanged.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return policy.Sanitize(s)
}
