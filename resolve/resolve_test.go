package resolve

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/hocon-format/go-hocon/ir"
	"github.com/hocon-format/go-hocon/parse"
)

// goValue reduces a resolved tree to plain Go values for comparison.
// Bad leaves render as "!bad: <diag>" so tests can assert on them.
func goValue(y *ir.Node) any {
	switch y.Type {
	case ir.NullType:
		return nil
	case ir.BoolType:
		return y.Bool
	case ir.StringType:
		return y.String
	case ir.NumberType:
		if y.Int64 != nil {
			return *y.Int64
		}
		return *y.Float64
	case ir.ObjectType:
		m := map[string]any{}
		for i := range y.Fields {
			m[y.Fields[i].String] = goValue(y.Values[i])
		}
		return m
	case ir.ArrayType:
		vs := []any{}
		for _, v := range y.Values {
			vs = append(vs, goValue(v))
		}
		return vs
	default:
		return "!bad: " + y.Bad
	}
}

func resolveString(t *testing.T, in string, options ...Option) *ir.Node {
	t.Helper()
	doc, err := parse.Parse([]byte(in), parse.Strict())
	if err != nil {
		t.Fatalf("parse %q: %s", in, err)
	}
	y, err := Resolve(doc, options...)
	if err != nil {
		t.Fatalf("resolve %q: %s", in, err)
	}
	return y
}

func checkResolved(t *testing.T, in string, want any, options ...Option) {
	t.Helper()
	got := goValue(resolveString(t, in, options...))
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("resolve %q mismatch (-want +got):\n%s", in, diff)
	}
}

func TestResolveMergeRules(t *testing.T) {
	for _, tc := range []struct {
		name string
		in   string
		want any
	}{
		{
			name: "scalar last wins",
			in:   "a = 1\na = 2",
			want: map[string]any{"a": int64(2)},
		},
		{
			name: "objects merge recursively",
			in:   "a = { x = 1, nest { p = 1 } }\na = { y = 2, nest { q = 2 } }",
			want: map[string]any{"a": map[string]any{
				"x": int64(1),
				"y": int64(2),
				"nest": map[string]any{
					"p": int64(1),
					"q": int64(2),
				},
			}},
		},
		{
			name: "arrays replace wholesale",
			in:   "xs = [1, 2, 3]\nxs = [4]",
			want: map[string]any{"xs": []any{int64(4)}},
		},
		{
			name: "scalar replaces object",
			in:   "a = { x = 1 }\na = 5",
			want: map[string]any{"a": int64(5)},
		},
		{
			name: "object replaces scalar",
			in:   "a = 5\na = { x = 1 }",
			want: map[string]any{"a": map[string]any{"x": int64(1)}},
		},
		{
			name: "dotted keys create objects",
			in:   "a.b.c = 1",
			want: map[string]any{"a": map[string]any{"b": map[string]any{"c": int64(1)}}},
		},
		{
			name: "field order is insertion order on merge",
			in:   "a = 1\nb = 2\na = 3",
			want: map[string]any{"a": int64(3), "b": int64(2)},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			checkResolved(t, tc.in, tc.want)
		})
	}
}

func TestResolveFieldOrder(t *testing.T) {
	y := resolveString(t, "b = 1\na = 2\nb = 3")
	var order []string
	for _, f := range y.Fields {
		order = append(order, f.String)
	}
	if diff := cmp.Diff([]string{"b", "a"}, order); diff != "" {
		t.Errorf("field order mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveAppend(t *testing.T) {
	for _, tc := range []struct {
		name string
		in   string
		want any
	}{
		{
			name: "append to missing creates array",
			in:   "xs += 1",
			want: map[string]any{"xs": []any{int64(1)}},
		},
		{
			name: "append to existing",
			in:   "xs = [1]\nxs += 2\nxs += 3",
			want: map[string]any{"xs": []any{int64(1), int64(2), int64(3)}},
		},
		{
			name: "append object",
			in:   "xs += { n = 1 }\nxs += { n = 2 }",
			want: map[string]any{"xs": []any{
				map[string]any{"n": int64(1)},
				map[string]any{"n": int64(2)},
			}},
		},
		{
			name: "append after replace",
			in:   "xs = [1]\nxs = [9]\nxs += 2",
			want: map[string]any{"xs": []any{int64(9), int64(2)}},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			checkResolved(t, tc.in, tc.want)
		})
	}
}

func TestResolveSubstitutions(t *testing.T) {
	for _, tc := range []struct {
		name string
		in   string
		want any
	}{
		{
			name: "backward reference",
			in:   "a = 1\nb = ${a}",
			want: map[string]any{"a": int64(1), "b": int64(1)},
		},
		{
			name: "forward reference",
			in:   "b = ${a}\na = 1",
			want: map[string]any{"b": int64(1), "a": int64(1)},
		},
		{
			name: "substitution sees final merged value",
			in:   "a = 1\nb = ${a}\na = 2",
			want: map[string]any{"a": int64(2), "b": int64(2)},
		},
		{
			name: "dotted target",
			in:   "srv { host = here }\nh = ${srv.host}",
			want: map[string]any{
				"srv": map[string]any{"host": "here"},
				"h":   "here",
			},
		},
		{
			name: "chain",
			in:   "a = ${b}\nb = ${c}\nc = 3",
			want: map[string]any{"a": int64(3), "b": int64(3), "c": int64(3)},
		},
		{
			name: "object copy",
			in:   "a = { x = 1 }\nb = ${a}",
			want: map[string]any{
				"a": map[string]any{"x": int64(1)},
				"b": map[string]any{"x": int64(1)},
			},
		},
		{
			name: "optional missing drops member",
			in:   "a = ${?nope}\nb = 1",
			want: map[string]any{"b": int64(1)},
		},
		{
			name: "optional missing drops array element",
			in:   "xs = [1, ${?nope}, 3]",
			want: map[string]any{"xs": []any{int64(1), int64(3)}},
		},
		{
			name: "optional missing keeps earlier value",
			in:   "a = 1\na = ${?nope}",
			want: map[string]any{"a": int64(1)},
		},
		{
			// the space inside the quotes and the separating space
			// both survive
			name: "concat with substitution",
			in:   `name = world` + "\n" + `greet = "hello " ${name}`,
			want: map[string]any{"name": "world", "greet": "hello  world"},
		},
		{
			name: "adjacent concat adds no whitespace",
			in:   `name = world` + "\n" + `greet = "hello "${name}`,
			want: map[string]any{"name": "world", "greet": "hello world"},
		},
		{
			name: "unquoted concat keeps inner whitespace",
			in:   "a = 1\nb = ${a} and ${a}",
			want: map[string]any{"a": int64(1), "b": "1 and 1"},
		},
		{
			// the dropped value contributes "", its surrounding
			// separators stay
			name: "optional missing in concat contributes nothing",
			in:   `a = "x" ${?nope} "y"`,
			want: map[string]any{"a": "x  y"},
		},
		{
			name: "numeric component indexes arrays",
			in:   "xs = [10, 20]\nfirst = ${xs.0}\nlast = ${xs.1}",
			want: map[string]any{
				"xs":    []any{int64(10), int64(20)},
				"first": int64(10),
				"last":  int64(20),
			},
		},
		{
			name: "reference through substitution",
			in:   "a = ${c}\nb = ${a.x}\nc = { x = 7 }",
			want: map[string]any{
				"a": map[string]any{"x": int64(7)},
				"b": int64(7),
				"c": map[string]any{"x": int64(7)},
			},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			checkResolved(t, tc.in, tc.want)
		})
	}
}

func TestResolveObjectBase(t *testing.T) {
	for _, tc := range []struct {
		name string
		in   string
		want any
	}{
		{
			name: "patch over base",
			in:   "base = { x = 1, y = 1 }\na = ${base} { y = 2 }",
			want: map[string]any{
				"base": map[string]any{"x": int64(1), "y": int64(1)},
				"a":    map[string]any{"x": int64(1), "y": int64(2)},
			},
		},
		{
			name: "nested objects merge",
			in:   "base = { nest { p = 1 } }\na = ${base} { nest { q = 2 } }",
			want: map[string]any{
				"base": map[string]any{"nest": map[string]any{"p": int64(1)}},
				"a":    map[string]any{"nest": map[string]any{"p": int64(1), "q": int64(2)}},
			},
		},
		{
			name: "optional missing base leaves patch",
			in:   "a = ${?base} { y = 2 }",
			want: map[string]any{"a": map[string]any{"y": int64(2)}},
		},
		{
			name: "lookup through base",
			in:   "base = { x = 1 }\na = ${base} { y = 2 }\nv = ${a.x}",
			want: map[string]any{
				"base": map[string]any{"x": int64(1)},
				"a":    map[string]any{"x": int64(1), "y": int64(2)},
				"v":    int64(1),
			},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			checkResolved(t, tc.in, tc.want)
		})
	}
}

func TestResolveArraySplice(t *testing.T) {
	for _, tc := range []struct {
		name string
		in   string
		want any
	}{
		{
			name: "prefix splice",
			in:   "base = [1, 2]\nxs = ${base} [3]",
			want: map[string]any{
				"base": []any{int64(1), int64(2)},
				"xs":   []any{int64(1), int64(2), int64(3)},
			},
		},
		{
			name: "optional missing splices nothing",
			in:   "xs = ${?base} [3]",
			want: map[string]any{"xs": []any{int64(3)}},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			checkResolved(t, tc.in, tc.want)
		})
	}
}

func TestResolveSelfReference(t *testing.T) {
	for _, tc := range []struct {
		name string
		in   string
		want any
	}{
		{
			name: "scalar concat",
			in:   "a = hello\na = ${a} world",
			want: map[string]any{"a": "hello world"},
		},
		{
			name: "array extends itself",
			in:   "xs = [1]\nxs = ${xs} [2]",
			want: map[string]any{"xs": []any{int64(1), int64(2)}},
		},
		{
			name: "object patches itself",
			in:   "a = { x = 1 }\na = ${a} { y = 2 }",
			want: map[string]any{"a": map[string]any{"x": int64(1), "y": int64(2)}},
		},
		{
			name: "reference below own path",
			in:   "a = { b = 1 }\na = ${a.b}",
			want: map[string]any{"a": int64(1)},
		},
		{
			name: "only earlier definitions are seen",
			in:   "a = one\na = ${a} two\na = ${a} three",
			want: map[string]any{"a": "one two three"},
		},
		{
			name: "optional self-reference with no prior value drops",
			in:   "a = ${?a}\nb = 1",
			want: map[string]any{"b": int64(1)},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			checkResolved(t, tc.in, tc.want)
		})
	}
}

func TestResolveEnvFallback(t *testing.T) {
	env := map[string]string{"HOME": "/home/me", "app.port": "8080"}
	checkResolved(t, "home = ${HOME}", map[string]any{"home": "/home/me"}, Env(env))
	checkResolved(t, "port = ${app.port}", map[string]any{"port": "8080"}, Env(env))
	// document values win over the environment
	checkResolved(t, "HOME = override\nhome = ${HOME}",
		map[string]any{"HOME": "override", "home": "override"}, Env(env))
	// no fallback map configured
	y := resolveString(t, "home = ${?HOME}")
	if len(y.Fields) != 0 {
		t.Errorf("got %d fields, want 0", len(y.Fields))
	}
}

func TestResolveBadLeaves(t *testing.T) {
	for _, tc := range []struct {
		name string
		in   string
		path []string
	}{
		{"missing required", "a = ${nope}", []string{"a"}},
		{"cycle", "a = ${b}\nb = ${a}", []string{"a"}},
		{"append to object", "a = { x = 1 }\na += 2", []string{"a"}},
		{"non-array splice", "base = 1\nxs = ${base} [2]", []string{"xs"}},
		{"self-reference with no prior value", "a = ${a}", []string{"a"}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			y := resolveString(t, tc.in)
			cur := y
			for _, k := range tc.path {
				cur = ir.Get(cur, k)
				if cur == nil {
					t.Fatalf("no value at %v", tc.path)
				}
			}
			if cur.Type == ir.ArrayType && len(cur.Values) > 0 {
				cur = cur.Values[0]
			}
			if cur.Type != ir.BadType {
				t.Errorf("value at %v = %v, want a bad leaf", tc.path, cur.Type)
			}
		})
	}
}

func TestResolveStrict(t *testing.T) {
	doc, err := parse.Parse([]byte("a = ${nope}"), parse.Strict())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Resolve(doc, Strict()); !errors.Is(err, ErrUnresolved) {
		t.Errorf("err = %v, want %s", err, ErrUnresolved)
	}
	// without Strict the bad leaf stays in the tree
	y, err := Resolve(doc)
	if err != nil {
		t.Fatal(err)
	}
	if got := ir.Get(y, "a"); got == nil || got.Type != ir.BadType {
		t.Errorf("a = %#v, want a bad leaf", got)
	}
}

func TestResolveEmptyDoc(t *testing.T) {
	y, err := Resolve(ir.NewDoc())
	if err != nil {
		t.Fatal(err)
	}
	if y.Type != ir.ObjectType || len(y.Fields) != 0 {
		t.Errorf("got %v with %d fields, want empty object", y.Type, len(y.Fields))
	}
}

func TestResolveIdempotentTrees(t *testing.T) {
	// a fully-resolved document resolves to the same tree again
	in := "a = { x = 1 }\nxs = [1, two, true]\nn = null"
	first := goValue(resolveString(t, in))
	second := goValue(resolveString(t, in))
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("resolution not stable (-first +second):\n%s", diff)
	}
}
