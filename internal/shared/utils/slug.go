package utils

import (
	"regexp"
	"strings"
)

var (
	slugSeparators = regexp.MustCompile(`[\s_]+`)
	slugInvalid    = regexp.MustCompile(`[^a-z0-9-]+`)
	slugHyphens    = regexp.MustCompile(`-+`)
)

// GenerateSlug derives a URL slug from a post title.
// "Hello World" → "hello-world"
//
// Slugs are not unique within a tenant; posts are resolved by id
// internally and slug lookups return the newest match.
func GenerateSlug(input string) string {
	// Step 1: Lowercase
	lower := strings.ToLower(input)

	// Step 2: Collapse whitespace/underscores to hyphens
	hyphenated := slugSeparators.ReplaceAllString(lower, "-")

	// Step 3: Strip everything but a-z, 0-9 and hyphens
	cleaned := slugInvalid.ReplaceAllString(hyphenated, "")

	// Step 4: Collapse consecutive hyphens and trim
	normalized := slugHyphens.ReplaceAllString(cleaned, "-")

	return strings.Trim(normalized, "-")
}
