package utils

import (
	"regexp"
	"strings"
)

var nonSlugChars = regexp.MustCompile(`[^a-z0-9-]+`)
var multiDash = regexp.MustCompile(`-+`)

var accentReplacer = strings.NewReplacer(
	"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ñ", "n", "ü", "u",
)

// Slugify turns a service name into its catalog id, e.g.
// "Media Cabeza Mechas" -> "media-cabeza-mechas".
func Slugify(input string) string {
	s := strings.ToLower(strings.TrimSpace(input))
	s = accentReplacer.Replace(s)
	s = strings.ReplaceAll(s, "'", "")
	s = strings.ReplaceAll(s, "&", " y ")
	s = strings.ReplaceAll(s, "/", " ")
	s = strings.ReplaceAll(s, " ", "-")
	s = nonSlugChars.ReplaceAllString(s, "-")
	s = multiDash.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
