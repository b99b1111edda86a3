package token

// MString scans a triple-quoted multiline string starting at
// d[i:i+3] == `"""`. No escape processing happens inside a multiline
// string.
//
// The terminator is the longest run of 3 or more consecutive quote
// characters: quotes beyond the first three immediately preceding the
// terminator are literal content. `"""a"b""""` therefore decodes to
// `a"b"` (one literal trailing quote, three consumed as terminator).
func MString(d []byte, i int) (string, int, error) {
	i += 3
	start := i
	n := len(d)
	for i < n {
		if d[i] != '"' {
			i++
			continue
		}
		runStart := i
		for i < n && d[i] == '"' {
			i++
		}
		if i-runStart >= 3 {
			contentEnd := i - 3
			return string(d[start:contentEnd]), i, nil
		}
	}
	return "", 0, ErrMultilineString
}

// MStringStart reports whether a triple-quoted string starts at i.
func MStringStart(d []byte, i int) bool {
	return i+3 <= len(d) && d[i] == '"' && d[i+1] == '"' && d[i+2] == '"'
}
