// internal/app/system/htmlsanitize/htmlsanitize.go

// Package htmlsanitize strips markup from user-supplied text before it
// is stored. Employee, activity, and option names are plain text; any
// HTML in them is someone being clever.
package htmlsanitize

import "github.com/microcosm-cc/bluemonday"

var strict = bluemonday.StrictPolicy()

// Strip removes all HTML elements and attributes, leaving plain text.
func Strip(s string) string {
	return strict.Sanitize(s)
}
