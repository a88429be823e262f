package utils

import (
	"regexp"
	"strings"

	"github.com/mattn/go-runewidth"
)

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// StringHelper provides string utility functions.
type StringHelper struct{}

// NewStringHelper creates a new string helper.
func NewStringHelper() *StringHelper {
	return &StringHelper{}
}

// NormalizeWhitespace replaces runs of whitespace with a single space.
func (s *StringHelper) NormalizeWhitespace(str string) string {
	return strings.Join(strings.Fields(str), " ")
}

// StripTags removes markup such as the <highlighttext> tags the HeadHunter
// API puts into snippets.
func (s *StringHelper) StripTags(str string) string {
	return tagPattern.ReplaceAllString(str, "")
}

// TruncateString cuts str to maxWidth terminal cells, appending "..." when
// something was cut.
func (s *StringHelper) TruncateString(str string, maxWidth int) string {
	if maxWidth <= 0 || runewidth.StringWidth(str) <= maxWidth {
		return str
	}

	return runewidth.Truncate(str, maxWidth, "...")
}
