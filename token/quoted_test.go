package token

import (
	"errors"
	"testing"
)

func TestQuoted(t *testing.T) {
	type quotedTest struct {
		in  string
		out string
		end int
		e   error
	}
	qts := []quotedTest{
		{in: `"hello"`, out: "hello", end: 7},
		{in: `""`, out: "", end: 2},
		{in: `"a\"b"`, out: `a"b`, end: 6},
		{in: `"a\\b"`, out: `a\b`, end: 6},
		{in: `"tab\there"`, out: "tab\there", end: 11},
		{in: `"\b\f\n\r\t\/"`, out: "\b\f\n\r\t/", end: 14},
		{in: `"\u00e9"`, out: "é", end: 8},
		{in: `"H\u0065y"`, out: "Hey", end: 10},
		{in: `"hello" world`, out: "hello", end: 7},
		{in: `"unterminated`, e: ErrUnterminated},
		{in: "\"line\nbreak\"", e: ErrUnterminated},
		{in: `"\q"`, e: ErrBadEscape},
		{in: `"\u00g0"`, e: ErrBadUnicode},
		{in: `"\u00"`, e: ErrBadUnicode},
	}
	for _, qt := range qts {
		s, end, err := Quoted([]byte(qt.in), 0)
		if qt.e != nil {
			if !errors.Is(err, qt.e) {
				t.Errorf("%q: got err %v, want %v", qt.in, err, qt.e)
			}
			continue
		}
		if err != nil {
			t.Errorf("%q: unexpected error %v", qt.in, err)
			continue
		}
		if s != qt.out || end != qt.end {
			t.Errorf("%q: got (%q, %d), want (%q, %d)", qt.in, s, end, qt.out, qt.end)
		}
	}
}

func TestUnescapeSurrogatePairs(t *testing.T) {
	type surrTest struct {
		in  string
		out string
	}
	sts := []surrTest{
		// U+1F600 GRINNING FACE
		{in: `\ud83d\ude00`, out: "\U0001f600"},
		// pair followed by plain text
		{in: `\ud83d\ude00!`, out: "\U0001f600!"},
		// two pairs back to back
		{in: `\ud83d\ude00\ud83d\ude01`, out: "\U0001f600\U0001f601"},
		// lone high surrogate
		{in: `\ud83d`, out: "\ufffd"},
		// lone low surrogate
		{in: `\ude00`, out: "\ufffd"},
		// high surrogate followed by a non-surrogate escape
		{in: `\ud83dA`, out: "\ufffdA"},
		// non-surrogate BMP escape
		{in: `\u265e`, out: "♞"},
	}
	for _, st := range sts {
		if got := Unescape(st.in); got != st.out {
			t.Errorf("%q: got %q, want %q", st.in, got, st.out)
		}
	}
}
