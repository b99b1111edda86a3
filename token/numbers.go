package token

// Number recognizes `-? digits (. digits)? ([eE] [+-]? digits)?`
// starting at i. It returns the offset past the number and whether a
// fraction or exponent was present. ok is false when no number starts
// at i. Leading zeros are tolerated, matching the notation grammar.
func Number(d []byte, i int) (end int, isFloat bool, ok bool) {
	n := len(d)
	j := i
	if j < n && d[j] == '-' {
		j++
	}
	digits := asciiDigits(d, j)
	if digits == 0 {
		return i, false, false
	}
	j += digits
	f := fract(d, j)
	j += f
	e := exp(d, j)
	j += e
	return j, f+e > 0, true
}

func asciiDigits(d []byte, i int) int {
	j := i
	for j < len(d) && asciiDigit(d[j]) {
		j++
	}
	return j - i
}

func asciiDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func fract(d []byte, i int) int {
	if i >= len(d) || d[i] != '.' {
		return 0
	}
	digits := asciiDigits(d, i+1)
	if digits == 0 {
		return 0
	}
	return 1 + digits
}

func exp(d []byte, i int) int {
	if i >= len(d) {
		return 0
	}
	switch d[i] {
	case 'e', 'E':
	default:
		return 0
	}
	j := i + 1
	if j < len(d) && (d[j] == '+' || d[j] == '-') {
		j++
	}
	digits := asciiDigits(d, j)
	if digits == 0 {
		return 0
	}
	return j + digits - i
}
