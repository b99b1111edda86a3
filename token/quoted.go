package token

import (
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// Quoted scans a double-quoted string starting at d[i] == '"'. It
// returns the decoded string and the offset past the closing quote.
// Escape validation happens during the scan; decoding happens in
// Unescape.
func Quoted(d []byte, i int) (string, int, error) {
	start := i
	i++ // opening quote
	n := len(d)
	esc := false
	for i < n {
		c := d[i]
		switch {
		case c == '\n':
			return "", 0, ErrUnterminated
		case esc:
			switch c {
			case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
				esc = false
				i++
			case 'u':
				if i+5 > n || !allHex(d[i+1:i+5]) {
					return "", 0, ErrBadUnicode
				}
				esc = false
				i += 5
			default:
				return "", 0, ErrBadEscape
			}
		case c == '\\':
			esc = true
			i++
		case c == '"':
			return Unescape(string(d[start+1 : i])), i + 1, nil
		default:
			_, sz := utf8.DecodeRune(d[i:])
			i += sz
		}
	}
	return "", 0, ErrUnterminated
}

// Unescape decodes JSON backslash escapes, merging UTF-16 surrogate
// pairs written as consecutive \uXXXX escapes into single code points.
// Lone surrogates decode to U+FFFD. The input must already have been
// validated by Quoted.
func Unescape(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	b := &strings.Builder{}
	b.Grow(len(s))
	i := 0
	n := len(s)
	for i < n {
		c := s[i]
		if c != '\\' {
			b.WriteByte(c)
			i++
			continue
		}
		i++
		switch s[i] {
		case '"':
			b.WriteByte('"')
		case '\\':
			b.WriteByte('\\')
		case '/':
			b.WriteByte('/')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case 'u':
			u := hexUnit(s[i+1 : i+5])
			i += 5
			if utf16.IsSurrogate(rune(u)) && i+6 <= n && s[i] == '\\' && s[i+1] == 'u' {
				u2 := hexUnit(s[i+2 : i+6])
				if r := utf16.DecodeRune(rune(u), rune(u2)); r != utf8.RuneError {
					b.WriteRune(r)
					i += 6
					continue
				}
			}
			if utf16.IsSurrogate(rune(u)) {
				b.WriteRune(utf8.RuneError)
			} else {
				b.WriteRune(rune(u))
			}
			continue
		}
		i++
	}
	return b.String()
}

func hexUnit(s string) uint16 {
	var u uint16
	for i := 0; i < len(s); i++ {
		u <<= 4
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			u |= uint16(c - '0')
		case c >= 'a' && c <= 'f':
			u |= uint16(c-'a') + 10
		case c >= 'A' && c <= 'F':
			u |= uint16(c-'A') + 10
		}
	}
	return u
}

func allHex(d []byte) bool {
	for _, c := range d {
		if c >= '0' && c <= '9' {
			continue
		}
		if c >= 'a' && c <= 'f' {
			continue
		}
		if c >= 'A' && c <= 'F' {
			continue
		}
		return false
	}
	return true
}
