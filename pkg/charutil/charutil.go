// Package charutil holds code point helpers shared by the dictionary and the context resolver.
package charutil

import "unicode"

// CodePointBeginningOfSentence is a pseudo code point outside the Unicode range.
// Words prefixed with it name their sentence-initial dictionary entry.
const CodePointBeginningOfSentence rune = 0x110000

// AttachBeginningOfSentenceMarker prepends the beginning-of-sentence marker to
// codePoints[:count] in place and returns the new count.
// It returns count unchanged when the marker is already attached, and 0 when
// the result would not fit in maxLen code points.
// codePoints must have room for maxLen code points.
func AttachBeginningOfSentenceMarker(codePoints []rune, count, maxLen int) int {
	if count > 0 && codePoints[0] == CodePointBeginningOfSentence {
		return count
	}
	if count >= maxLen || count >= len(codePoints) {
		return 0
	}
	copy(codePoints[1:count+1], codePoints[:count])
	codePoints[0] = CodePointBeginningOfSentence
	return count + 1
}

// IsBeginningOfSentence reports whether codePoints starts with the marker.
func IsBeginningOfSentence(codePoints []rune) bool {
	return len(codePoints) > 0 && codePoints[0] == CodePointBeginningOfSentence
}

// ToLowerCase lowercases a single code point. The marker and anything outside
// the Unicode range are returned as is.
func ToLowerCase(c rune) rune {
	if c > unicode.MaxRune {
		return c
	}
	if c < 0x80 {
		if 'A' <= c && c <= 'Z' {
			return c + 'a' - 'A'
		}
		return c
	}
	return unicode.ToLower(c)
}
