// Package textutils provides the text manipulation helpers used when cleaning
// up free-text expense descriptions.
package textutils

import (
	"regexp"
	"strings"
	"unicode"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// CollapseWhitespace replaces every run of whitespace with a single space and
// trims the ends.
func CollapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

// TitleCase upper-cases the first word character of every word, leaving the
// rest of the string untouched.
func TitleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevWord := false
	for _, r := range s {
		isWord := unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
		if isWord && !prevWord {
			b.WriteRune(unicode.ToUpper(r))
		} else {
			b.WriteRune(r)
		}
		prevWord = isWord
	}
	return b.String()
}

// WordPattern compiles a case-insensitive, word-boundary-anchored pattern for
// a literal word or phrase.
func WordPattern(word string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(word) + `\b`)
}

// CompileWordPatterns compiles WordPattern for each entry.
func CompileWordPatterns(words []string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(words))
	for _, w := range words {
		patterns = append(patterns, WordPattern(w))
	}
	return patterns
}

// RemoveWords blanks out every match of the given patterns, leaving a space so
// neighbouring words do not fuse together.
func RemoveWords(s string, patterns []*regexp.Regexp) string {
	for _, re := range patterns {
		s = re.ReplaceAllString(s, " ")
	}
	return s
}
