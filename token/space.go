package token

import "unicode/utf8"

// Insignificant same-line whitespace. Newlines are separators, not
// whitespace: the grammar treats them like commas.
func IsSpaceRune(r rune) bool {
	switch r {
	case ' ', '\t', '\uFEFF', '\u00A0', '\u2007', '\u202F':
		return true
	default:
		return false
	}
}

// Space consumes same-line whitespace starting at i and returns the
// offset of the first non-space byte.
func Space(d []byte, i int) int {
	n := len(d)
	for i < n {
		r, sz := utf8.DecodeRune(d[i:])
		if !IsSpaceRune(r) {
			return i
		}
		i += sz
	}
	return i
}

// CommentStart reports whether a comment starts at i.
func CommentStart(d []byte, i int) bool {
	if i >= len(d) {
		return false
	}
	if d[i] == '#' {
		return true
	}
	return d[i] == '/' && i+1 < len(d) && d[i+1] == '/'
}

// Comment consumes a comment at i up to, but not including, the
// terminating newline. If no comment starts at i it returns i.
func Comment(d []byte, i int) int {
	if !CommentStart(d, i) {
		return i
	}
	n := len(d)
	for i < n && d[i] != '\n' {
		i++
	}
	return i
}
