package hocon

import (
	"github.com/hocon-format/go-hocon/ir"
)

// Kind discriminates resolved values.
type Kind int

const (
	KindBad Kind = iota
	KindNull
	KindBool
	KindNumber
	KindString
	KindObject
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	default:
		return "bad"
	}
}

// Value is one resolved configuration value. Navigation never fails:
// a missing key or index yields a bad value whose accessors all report
// absence, so lookups chain without intermediate checks.
type Value struct {
	y *ir.Node
}

// Project wraps a resolved tree node.
func Project(y *ir.Node) Value {
	return Value{y: y}
}

// Node exposes the underlying tree node; nil for bad values created by
// failed navigation.
func (v Value) Node() *ir.Node {
	return v.y
}

func (v Value) Kind() Kind {
	if v.y == nil {
		return KindBad
	}
	switch v.y.Type {
	case ir.NullType:
		return KindNull
	case ir.BoolType:
		return KindBool
	case ir.NumberType:
		return KindNumber
	case ir.StringType:
		return KindString
	case ir.ObjectType:
		return KindObject
	case ir.ArrayType:
		return KindArray
	default:
		return KindBad
	}
}

// GetKey navigates to an object member.
func (v Value) GetKey(key string) Value {
	if v.y == nil || v.y.Type != ir.ObjectType {
		return Value{}
	}
	return Value{y: ir.Get(v.y, key)}
}

// GetIndex navigates to an array element.
func (v Value) GetIndex(i int) Value {
	if v.y == nil || v.y.Type != ir.ArrayType || i < 0 || i >= len(v.y.Values) {
		return Value{}
	}
	return Value{y: v.y.Values[i]}
}

// Len is the element count of an array, the member count of an object,
// and 0 otherwise.
func (v Value) Len() int {
	if v.y == nil {
		return 0
	}
	switch v.y.Type {
	case ir.ArrayType:
		return len(v.y.Values)
	case ir.ObjectType:
		return len(v.y.Fields)
	default:
		return 0
	}
}

// Keys lists object member names in insertion order.
func (v Value) Keys() []string {
	if v.y == nil || v.y.Type != ir.ObjectType {
		return nil
	}
	keys := make([]string, len(v.y.Fields))
	for i, f := range v.y.Fields {
		keys[i] = f.String
	}
	return keys
}

func (v Value) AsString() (string, bool) {
	if v.y == nil || v.y.Type != ir.StringType {
		return "", false
	}
	return v.y.String, true
}

func (v Value) AsInt() (int64, bool) {
	if v.y == nil || v.y.Type != ir.NumberType || v.y.Int64 == nil {
		return 0, false
	}
	return *v.y.Int64, true
}

// AsFloat accepts integer numbers too.
func (v Value) AsFloat() (float64, bool) {
	if v.y == nil || v.y.Type != ir.NumberType {
		return 0, false
	}
	if v.y.Float64 != nil {
		return *v.y.Float64, true
	}
	return float64(*v.y.Int64), true
}

func (v Value) AsBool() (bool, bool) {
	if v.y == nil || v.y.Type != ir.BoolType {
		return false, false
	}
	return v.y.Bool, true
}

func (v Value) IsNull() bool {
	return v.y != nil && v.y.Type == ir.NullType
}

func (v Value) IsBad() bool {
	return v.Kind() == KindBad
}

// BadDiag is the diagnostic of a bad leaf, or "" when v is not bad.
func (v Value) BadDiag() string {
	if v.y == nil {
		return "no value"
	}
	if v.y.Type != ir.BadType {
		return ""
	}
	return v.y.Bad
}
