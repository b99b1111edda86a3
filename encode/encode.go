package encode

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hocon-format/go-hocon/format"
	"github.com/hocon-format/go-hocon/ir"
	"github.com/hocon-format/go-hocon/token"
)

type EncState struct {
	indent int
	wire   bool

	format format.Format

	Color func(ir.Type, ColorAttr, string) string
}

// Encode writes node to w in the configured format. In notation form
// the root object renders as bare members; JSON output is always
// braced. Bad leaves are an encoding error.
func Encode(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{indent: 2}
	for _, opt := range opts {
		opt(es)
	}
	e := &encoder{w: w, es: es}
	var err error
	if !es.format.IsJSON() && !es.wire && node.Type == ir.ObjectType && len(node.Fields) > 0 {
		err = e.bareMembers(node)
	} else {
		err = e.value(node, 0)
	}
	if err != nil {
		return err
	}
	if es.wire {
		return nil
	}
	return e.raw("\n")
}

// String renders node to a string.
func String(node *ir.Node, opts ...EncodeOption) (string, error) {
	b := &strings.Builder{}
	if err := Encode(node, b, opts...); err != nil {
		return "", err
	}
	return b.String(), nil
}

func MustString(node *ir.Node, opts ...EncodeOption) string {
	s, err := String(node, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

type encoder struct {
	w  io.Writer
	es *EncState
}

func (e *encoder) raw(s string) error {
	_, err := io.WriteString(e.w, s)
	return err
}

func (e *encoder) colored(t ir.Type, a ColorAttr, s string) error {
	if e.es.Color != nil {
		s = e.es.Color(t, a, s)
	}
	return e.raw(s)
}

func (e *encoder) newlineIndent(depth int) error {
	if e.es.wire {
		return nil
	}
	return e.raw("\n" + strings.Repeat(" ", e.es.indent*depth))
}

func (e *encoder) value(y *ir.Node, depth int) error {
	switch y.Type {
	case ir.NullType:
		return e.colored(ir.NullType, ValueColor, "null")
	case ir.BoolType:
		return e.colored(ir.BoolType, ValueColor, strconv.FormatBool(y.Bool))
	case ir.NumberType:
		return e.colored(ir.NumberType, ValueColor, numberText(y))
	case ir.StringType:
		return e.colored(ir.StringType, ValueColor, e.stringText(y.String))
	case ir.ObjectType:
		return e.object(y, depth)
	case ir.ArrayType:
		return e.array(y, depth)
	default:
		return fmt.Errorf("%w: unresolved value at %q: %s", ErrEncoding, y.KPath(), y.Bad)
	}
}

func (e *encoder) bareMembers(y *ir.Node) error {
	for i := range y.Fields {
		if i > 0 {
			if err := e.raw("\n"); err != nil {
				return err
			}
		}
		if err := e.member(y.Fields[i].String, y.Values[i], 0); err != nil {
			return err
		}
	}
	return nil
}

func (e *encoder) object(y *ir.Node, depth int) error {
	if len(y.Fields) == 0 {
		return e.raw("{}")
	}
	if err := e.raw("{"); err != nil {
		return err
	}
	for i := range y.Fields {
		if i > 0 {
			if err := e.memberSep(); err != nil {
				return err
			}
		}
		if e.es.wire && i == 0 {
			if err := e.raw(e.padOpen()); err != nil {
				return err
			}
		}
		if err := e.newlineIndent(depth + 1); err != nil {
			return err
		}
		if err := e.member(y.Fields[i].String, y.Values[i], depth+1); err != nil {
			return err
		}
	}
	if e.es.wire {
		return e.raw(e.padOpen() + "}")
	}
	if err := e.newlineIndent(depth); err != nil {
		return err
	}
	return e.raw("}")
}

func (e *encoder) member(key string, v *ir.Node, depth int) error {
	if err := e.colored(ir.ObjectType, FieldColor, e.keyText(key)); err != nil {
		return err
	}
	sep := " = "
	if e.es.format.IsJSON() {
		sep = ": "
	}
	if err := e.colored(ir.ObjectType, SepColor, sep); err != nil {
		return err
	}
	return e.value(v, depth)
}

// memberSep writes what goes between members: JSON needs commas,
// notation output separates by line, wire output by comma always.
func (e *encoder) memberSep() error {
	if e.es.wire {
		return e.raw(", ")
	}
	if e.es.format.IsJSON() {
		return e.raw(",")
	}
	return nil
}

func (e *encoder) padOpen() string {
	if e.es.format.IsJSON() {
		return ""
	}
	return " "
}

func (e *encoder) array(y *ir.Node, depth int) error {
	if len(y.Values) == 0 {
		return e.raw("[]")
	}
	if err := e.raw("["); err != nil {
		return err
	}
	for i, v := range y.Values {
		if i > 0 {
			if err := e.raw(","); err != nil {
				return err
			}
			if e.es.wire {
				if err := e.raw(" "); err != nil {
					return err
				}
			}
		}
		if err := e.newlineIndent(depth + 1); err != nil {
			return err
		}
		if err := e.value(v, depth+1); err != nil {
			return err
		}
	}
	if err := e.newlineIndent(depth); err != nil {
		return err
	}
	return e.raw("]")
}

func numberText(y *ir.Node) string {
	if y.Int64 != nil {
		return strconv.FormatInt(*y.Int64, 10)
	}
	return strconv.FormatFloat(*y.Float64, 'g', -1, 64)
}

// keyText quotes a member name when the notation could not read it
// back as one key.
func (e *encoder) keyText(k string) string {
	if !e.es.format.IsJSON() && plainKey(k) {
		return k
	}
	return jsonQuote(k)
}

// stringText renders string values: unquoted when the text survives a
// round trip, triple-quoted for multi-line text, JSON-quoted
// otherwise.
func (e *encoder) stringText(s string) string {
	if e.es.format.IsJSON() {
		return jsonQuote(s)
	}
	if plainValue(s) {
		return s
	}
	if strings.ContainsRune(s, '\n') &&
		!strings.Contains(s, `"""`) && !strings.HasSuffix(s, `"`) {
		return `"""` + s + `"""`
	}
	return jsonQuote(s)
}

func plainKey(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if token.IsSpecial(r) || token.IsSpaceRune(r) || r == '.' || r == '\n' {
			return false
		}
	}
	return true
}

func plainValue(s string) bool {
	if s == "" || strings.TrimFunc(s, token.IsSpaceRune) != s {
		return false
	}
	for _, r := range s {
		if token.IsSpecial(r) || r == '\n' || r == '.' {
			return false
		}
	}
	// words that would read back typed must quote
	if _, ok := ir.Classify(s).(ir.Unquoted); !ok {
		return false
	}
	return true
}

func jsonQuote(s string) string {
	d, err := json.Marshal(s)
	if err != nil {
		return strconv.Quote(s)
	}
	return string(d)
}
