package ir

import (
	"strconv"
	"strings"

	"github.com/hocon-format/go-hocon/token"
)

// Value is the tagged parse-time variant stored in Doc entries. Only
// Null, Bool, Int, Float and String are final: every other variant must
// be eliminated by resolution, and one surviving to projection becomes
// a Bad leaf.
type Value interface {
	value()
}

type Null struct{}

type Bool bool

type Int int64

type Float float64

// String is resolved text.
type String string

// Unquoted is a raw token pending classification; it may still
// concatenate with siblings.
type Unquoted string

// Concat is a run of adjacent value tokens folded into one value. The
// whitespace separating the tokens is carried as Unquoted parts.
type Concat []Value

// Substitution is a `${path}` or `${?path}` reference. Optional
// substitutions that fail to resolve drop the enclosing member or
// element instead of producing a Bad leaf.
type Substitution struct {
	Expr     Path
	Optional bool
	Original string
}

// SubstInParent resolves to a spliced element sequence, for the
// `${base} [elts...]` array-prefix pattern.
type SubstInParent struct {
	Sub Substitution
}

// Append implements the `+=` operator as tag-and-defer: the tagged
// value is appended to the array at the entry path minus OriginalPath
// during resolution. OpID keeps simultaneous appends at one path
// independent; all entries of one `+=` operation share an id.
type Append struct {
	Value        Value
	OriginalPath Path
	OpID         string
}

// NewObject marks that an object literal exists at the entry path. It
// materializes empty objects and never clears existing members.
type NewObject struct{}

// NewArray marks that an array literal starts at the entry path. A
// later NewArray at the same path replaces the array wholesale.
type NewArray struct{}

func (Null) value()          {}
func (Bool) value()          {}
func (Int) value()           {}
func (Float) value()         {}
func (String) value()        {}
func (Unquoted) value()      {}
func (Concat) value()        {}
func (Substitution) value()  {}
func (SubstInParent) value() {}
func (Append) value()        {}
func (NewObject) value()     {}
func (NewArray) value()      {}

// Final reports whether v needs no resolution.
func Final(v Value) bool {
	switch v.(type) {
	case Null, Bool, Int, Float, String:
		return true
	default:
		return false
	}
}

// Classify types a complete unquoted token: the literal words null,
// true and false, then integer, then float, else string. Surrounding
// whitespace is insignificant.
func Classify(word string) Value {
	w := strings.TrimSpace(word)
	switch w {
	case "null":
		return Null{}
	case "true":
		return Bool(true)
	case "false":
		return Bool(false)
	}
	end, isFloat, ok := token.Number([]byte(w), 0)
	if !ok || end != len(w) {
		return Unquoted(w)
	}
	if !isFloat {
		if i, err := strconv.ParseInt(w, 10, 64); err == nil {
			return Int(i)
		}
		// out of int64 range, fall through to float
	}
	if f, err := strconv.ParseFloat(w, 64); err == nil {
		return Float(f)
	}
	return Unquoted(w)
}
