package services

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// ugcPolicy strips scripts and event handlers from user-supplied HTML while
// keeping basic formatting (ticket descriptions and message bodies may come
// from rich-text editors or inbound email).
var ugcPolicy = bluemonday.UGCPolicy()

// SanitizeUserHTML sanitizes user-supplied HTML content
func SanitizeUserHTML(input string) string {
	return strings.TrimSpace(ugcPolicy.Sanitize(input))
}
