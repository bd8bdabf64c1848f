package services

import "github.com/microcosm-cc/bluemonday"

// Note descriptions arrive as HTML produced by the front-end rich text
// editor. The UGC policy keeps formatting tags and strips scripts.
var descriptionPolicy = bluemonday.UGCPolicy()

// SanitizeDescription cleans rich-text HTML before it is persisted.
func SanitizeDescription(html string) string {
	return descriptionPolicy.Sanitize(html)
}
