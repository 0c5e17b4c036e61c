package composer

import (
	"regexp"
	"strings"
)

var nonWordRun = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify turns a title into its URL-safe form: lowercase, word characters
// only, runs of anything else collapsed into single hyphens. Pure; the same
// title always yields the same slug.
func Slugify(title string) string {
	s := strings.ToLower(title)
	s = nonWordRun.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
