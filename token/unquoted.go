package token

import "unicode/utf8"

// IsSpecial reports whether r terminates an unquoted string. The set is
// fixed by the grammar; `/` is only special when it starts `//`.
func IsSpecial(r rune) bool {
	switch r {
	case '$', '"', '{', '}', '[', ']', ':', '=', ',', '+', '#',
		'`', '^', '?', '!', '@', '*', '&', '\'', '\\', '\t', '\n':
		return true
	default:
		return false
	}
}

// Unquoted scans the maximal run of non-special characters starting at
// i, stopping before any `//` sequence. It returns the offset past the
// run; a zero-length run yields end == i.
func Unquoted(d []byte, i int) int {
	n := len(d)
	for i < n {
		r, sz := utf8.DecodeRune(d[i:])
		if IsSpecial(r) {
			return i
		}
		if r == '/' && i+1 < n && d[i+1] == '/' {
			return i
		}
		i += sz
	}
	return i
}
