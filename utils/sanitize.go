package utils

import "github.com/microcosm-cc/bluemonday"

// Display names and emails are plain text; strip all markup.
var sanitizer = bluemonday.StrictPolicy()

// Sanitize removes any HTML from user-supplied free text to prevent XSS.
func Sanitize(input string) string {
	return sanitizer.Sanitize(input)
}
