package utils

import "strings"

// TagKeywords joins tag strings with commas, splits them again and returns the
// trimmed, non-empty keywords in order. Duplicates are kept.
func TagKeywords(tagLists ...string) []string {
	joined := strings.Join(tagLists, ",")

	keywords := []string{}
	for _, tag := range strings.Split(joined, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			keywords = append(keywords, tag)
		}
	}
	return keywords
}
