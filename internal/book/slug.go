package book

import (
	"regexp"
	"strconv"
	"strings"
)

var slugStrip = regexp.MustCompile(`[^0-9A-Za-z _-]`)

// GenerateSlug derives the URL identifier of a book:
// "Lord of the Rings!", 1954 -> "lord-of-the-rings-1954".
func GenerateSlug(title string, yearOfRelease int) string {
	cleaned := strings.ToLower(slugStrip.ReplaceAllString(title, ""))
	return strings.ReplaceAll(cleaned, " ", "-") + "-" + strconv.Itoa(yearOfRelease)
}
