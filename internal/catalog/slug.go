package catalog

import (
	"regexp"
	"strings"
)

var (
	whitespaceRun = regexp.MustCompile(`[\s\p{Z}]+`)
	nonSlugChars  = regexp.MustCompile(`[^a-z0-9-]`)
)

// DeriveSlug lower-cases name, turns each whitespace run into one hyphen and drops every
// character outside [a-z0-9-]. DeriveSlug(DeriveSlug(s)) == DeriveSlug(s).
func DeriveSlug(name string) string {
	s := strings.ToLower(name)
	s = whitespaceRun.ReplaceAllString(s, "-")
	return nonSlugChars.ReplaceAllString(s, "")
}
