package ir

import (
	"strconv"
	"strings"

	"github.com/hocon-format/go-hocon/token"
)

// Comp is one path component: a named object key or an array index.
type Comp struct {
	Key     string
	Index   int
	IsIndex bool
}

func KeyComp(k string) Comp {
	return Comp{Key: k}
}

func IndexComp(i int) Comp {
	return Comp{Index: i, IsIndex: true}
}

func (c Comp) Equal(o Comp) bool {
	if c.IsIndex != o.IsIndex {
		return false
	}
	if c.IsIndex {
		return c.Index == o.Index
	}
	return c.Key == o.Key
}

// Path addresses a location in the tree. Key comparison is
// case-sensitive, index comparison numeric.
type Path []Comp

func (p Path) Equal(q Path) bool {
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if !p[i].Equal(q[i]) {
			return false
		}
	}
	return true
}

// HasPrefix reports whether q is a prefix of p.
func (p Path) HasPrefix(q Path) bool {
	if len(q) > len(p) {
		return false
	}
	return p[:len(q)].Equal(q)
}

// With returns a new path with c appended; p is not modified.
func (p Path) With(c Comp) Path {
	res := make(Path, len(p)+1)
	copy(res, p)
	res[len(p)] = c
	return res
}

// Join returns prefix+p as a new path.
func (p Path) Join(suffix Path) Path {
	res := make(Path, 0, len(p)+len(suffix))
	res = append(res, p...)
	return append(res, suffix...)
}

// String renders the kinded form, e.g. `a.b[0]`.
func (p Path) String() string {
	b := &strings.Builder{}
	for i, c := range p {
		if c.IsIndex {
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(c.Index))
			b.WriteByte(']')
			continue
		}
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(c.Key)
	}
	return b.String()
}

// ParseKeyPath splits a key or substitution path expression on dots
// into key components. A segment quoted with `"` keeps its dots and
// decodes escapes. Whitespace around segments is trimmed.
func ParseKeyPath(s string) (Path, error) {
	d := []byte(s)
	res := Path{}
	i := 0
	n := len(d)
	for i <= n {
		i = token.Space(d, i)
		if i < n && d[i] == '"' {
			seg, end, err := token.Quoted(d, i)
			if err != nil {
				return nil, err
			}
			res = append(res, KeyComp(seg))
			i = token.Space(d, end)
			if i < n && d[i] != '.' {
				return nil, ErrBadPath
			}
			i++
			continue
		}
		j := i
		for j < n && d[j] != '.' {
			j++
		}
		seg := strings.TrimSpace(string(d[i:j]))
		if seg == "" {
			return nil, ErrBadPath
		}
		res = append(res, KeyComp(seg))
		i = j + 1
		if j == n {
			break
		}
	}
	if len(res) == 0 {
		return nil, ErrBadPath
	}
	return res, nil
}
