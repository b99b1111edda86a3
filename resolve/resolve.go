package resolve

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hocon-format/go-hocon/debug"
	"github.com/hocon-format/go-hocon/ir"
)

// maxDepth bounds substitution chains; beyond it resolution yields a
// Bad leaf instead of recursing further.
const maxDepth = 64

type opts struct {
	strict bool
	env    map[string]string
}

type Option func(*opts)

// Strict makes the first Bad leaf a resolution error instead of
// leaving it in the tree.
func Strict() Option {
	return func(o *opts) { o.strict = true }
}

// Env supplies the fallback map consulted when a required or optional
// substitution has no value in the document. Keys are dotted paths.
func Env(env map[string]string) Option {
	return func(o *opts) { o.env = env }
}

// Resolve folds doc and resolves it into a value tree. Without Strict,
// unresolvable values surface as BadType leaves.
func Resolve(doc *ir.Doc, options ...Option) (*ir.Node, error) {
	o := &opts{}
	for _, f := range options {
		f(o)
	}
	f := newFolder()
	for _, e := range doc.Entries {
		f.add(e)
	}
	r := &resolver{root: f.root, env: o.env, visiting: map[*node]bool{}}
	y, keep := r.project(f.root, 0)
	if !keep {
		y = ir.NullNode()
	}
	if debug.Resolve() {
		debug.Logf("resolved %d entries\n", len(doc.Entries))
	}
	if o.strict {
		if bad := firstBad(y); bad != nil {
			return nil, fmt.Errorf("%w: %s at %q", ErrUnresolved, bad.Bad, bad.KPath())
		}
	}
	return y, nil
}

type kind int

const (
	hashKind kind = iota
	leafKind
	arrayKind
	spliceKind
	badKind
)

// node is the mutable fold-time tree. A hash with a non-nil base is a
// `${base} { patch }` chain whose base merge is deferred to
// projection. A splice element stands for `${xs}` in array-prefix
// position: either still unresolved (splice) or already snapshot to a
// prior value of its own array (snapDone).
type node struct {
	kind kind

	leaf ir.Value

	base   *ir.Substitution
	fields map[string]*node
	order  []string

	elems []*node

	splice   *ir.Substitution
	snap     *node
	snapDone bool

	// prev is the value an optional substitution leaf replaced; it
	// remains in effect when the substitution finds nothing.
	prev *node

	bad string
}

func newHash() *node {
	return &node{kind: hashKind, fields: map[string]*node{}}
}

// reset moves n's contents into a fresh detached node and reinitializes
// n in place as k, keeping n linked where it is.
func reset(n *node, k kind) *node {
	old := &node{}
	*old = *n
	*n = node{kind: k}
	if k == hashKind {
		n.fields = map[string]*node{}
	}
	return old
}

func deepCopy(n *node) *node {
	if n == nil {
		return nil
	}
	c := &node{kind: n.kind, leaf: n.leaf, bad: n.bad, snapDone: n.snapDone}
	if n.base != nil {
		b := *n.base
		c.base = &b
	}
	if n.splice != nil {
		s := *n.splice
		c.splice = &s
	}
	c.snap = deepCopy(n.snap)
	c.prev = deepCopy(n.prev)
	if n.fields != nil {
		c.fields = make(map[string]*node, len(n.fields))
		c.order = append([]string(nil), n.order...)
		for k, v := range n.fields {
			c.fields[k] = deepCopy(v)
		}
	}
	for _, e := range n.elems {
		c.elems = append(c.elems, deepCopy(e))
	}
	return c
}

// toHash converts n into a hash in place. A substitution leaf becomes
// the deferred base of the hash; anything else is discarded, matching
// object-over-value replacement.
func (n *node) toHash() {
	if n.kind == hashKind {
		return
	}
	var base *ir.Substitution
	if n.kind == leafKind {
		if sub, ok := n.leaf.(ir.Substitution); ok {
			base = &sub
		}
	}
	reset(n, hashKind)
	n.base = base
}

type folder struct {
	root *node
	// shadows holds, per path, the value an array literal replaced, for
	// substitutions inside that literal referring to their own path.
	shadows map[string]*node
	// appendIdx maps a `+=` operation id to its element index.
	appendIdx map[string]int
}

func newFolder() *folder {
	return &folder{
		root:      newHash(),
		shadows:   map[string]*node{},
		appendIdx: map[string]int{},
	}
}

// selfRef reports whether a substitution at entry path p targeting
// expr refers into its own value.
func selfRef(expr, p ir.Path) bool {
	return p.HasPrefix(expr) || expr.HasPrefix(p)
}

// step descends from cur along c, converting cur to the needed
// container kind and creating the child if absent.
func (f *folder) step(cur *node, c ir.Comp) *node {
	if c.IsIndex {
		if cur.kind != arrayKind {
			reset(cur, arrayKind)
		}
		for len(cur.elems) <= c.Index {
			cur.elems = append(cur.elems, nil)
		}
		if cur.elems[c.Index] == nil {
			cur.elems[c.Index] = newHash()
		}
		return cur.elems[c.Index]
	}
	cur.toHash()
	if child, ok := cur.fields[c.Key]; ok {
		return child
	}
	child := newHash()
	cur.fields[c.Key] = child
	cur.order = append(cur.order, c.Key)
	return child
}

// at navigates to p, creating intermediate containers.
func (f *folder) at(p ir.Path) *node {
	cur := f.root
	for _, c := range p {
		cur = f.step(cur, c)
	}
	return cur
}

// walk navigates to p without creating anything; nil when absent.
func (f *folder) walk(p ir.Path) *node {
	cur := f.root
	for _, c := range p {
		if cur == nil {
			return nil
		}
		switch {
		case c.IsIndex:
			if cur.kind != arrayKind || c.Index >= len(cur.elems) {
				return nil
			}
			cur = cur.elems[c.Index]
		case cur.kind == hashKind:
			cur = cur.fields[c.Key]
		case cur.kind == arrayKind:
			i, err := strconv.Atoi(c.Key)
			if err != nil || i < 0 || i >= len(cur.elems) {
				return nil
			}
			cur = cur.elems[i]
		default:
			return nil
		}
	}
	return cur
}

// snapshot copies the current value at expr for a self-referential
// substitution: the shadow of an array literal in progress if one
// exists, otherwise the live tree. nil when expr has no value yet.
func (f *folder) snapshot(expr ir.Path) *node {
	if sh, ok := f.shadows[expr.String()]; ok {
		return deepCopy(sh)
	}
	return deepCopy(f.walk(expr))
}

func (f *folder) add(e ir.Entry) {
	switch v := e.Value.(type) {
	case ir.NewObject:
		f.at(e.Path).toHash()
	case ir.NewArray:
		n := f.at(e.Path)
		old := reset(n, arrayKind)
		if old.kind != hashKind || len(old.fields) > 0 || old.base != nil {
			f.shadows[e.Path.String()] = old
		}
	case ir.Append:
		f.addAppend(e.Path, v)
	case ir.Substitution:
		f.addSubstitution(e.Path, v)
	case ir.SubstInParent:
		f.addSplice(e.Path, v)
	case ir.Concat:
		f.addConcat(e.Path, v)
	default:
		n := f.at(e.Path)
		reset(n, leafKind)
		n.leaf = e.Value
	}
}

func (f *folder) addSubstitution(p ir.Path, sub ir.Substitution) {
	if !selfRef(sub.Expr, p) {
		existed := f.walk(p) != nil
		n := f.at(p)
		old := reset(n, leafKind)
		n.leaf = sub
		if sub.Optional && existed {
			n.prev = old
		}
		return
	}
	snap := f.snapshot(sub.Expr)
	if snap == nil {
		if sub.Optional {
			return
		}
		n := f.at(p)
		reset(n, badKind)
		n.bad = "could not resolve self-referential " + sub.Original
		return
	}
	n := f.at(p)
	*n = *snap
}

func (f *folder) addSplice(p ir.Path, sp ir.SubstInParent) {
	if !selfRef(sp.Sub.Expr, p) {
		n := f.at(p)
		reset(n, spliceKind)
		sub := sp.Sub
		n.splice = &sub
		return
	}
	snap := f.snapshot(sp.Sub.Expr)
	n := f.at(p)
	reset(n, spliceKind)
	sub := sp.Sub
	n.splice = &sub
	n.snap = snap
	n.snapDone = true
}

func (f *folder) addConcat(p ir.Path, c ir.Concat) {
	parts := make(ir.Concat, 0, len(c))
	for _, part := range c {
		sub, ok := part.(ir.Substitution)
		if !ok || !selfRef(sub.Expr, p) {
			parts = append(parts, part)
			continue
		}
		snap := f.snapshot(sub.Expr)
		if snap == nil {
			if sub.Optional {
				parts = append(parts, ir.String(""))
				continue
			}
			n := f.at(p)
			reset(n, badKind)
			n.bad = "could not resolve self-referential " + sub.Original
			return
		}
		if snap.kind != leafKind {
			n := f.at(p)
			reset(n, badKind)
			n.bad = "cannot concatenate non-scalar " + sub.Original
			return
		}
		parts = append(parts, snap.leaf)
	}
	n := f.at(p)
	reset(n, leafKind)
	n.leaf = parts
}

func (f *folder) addAppend(p ir.Path, app ir.Append) {
	if len(app.OriginalPath) > len(p) {
		return
	}
	arrPath := p[:len(p)-len(app.OriginalPath)]
	idx, seen := f.appendIdx[app.OpID]
	if !seen {
		cur := f.walk(arrPath)
		switch {
		case cur == nil, cur.kind == hashKind && len(cur.fields) == 0 && cur.base == nil:
			n := f.at(arrPath)
			reset(n, arrayKind)
			idx = 0
		case cur.kind == arrayKind:
			idx = len(cur.elems)
		case cur.kind == leafKind:
			if sub, ok := cur.leaf.(ir.Substitution); ok {
				reset(cur, arrayKind)
				cur.elems = []*node{{kind: spliceKind, splice: &sub}}
				idx = 1
				break
			}
			reset(cur, badKind)
			cur.bad = "cannot append to non-array value at " + arrPath.String()
			return
		default:
			n := f.at(arrPath)
			reset(n, badKind)
			n.bad = "cannot append to non-array value at " + arrPath.String()
			return
		}
		f.appendIdx[app.OpID] = idx
	}
	eltPath := arrPath.With(ir.IndexComp(idx)).Join(app.OriginalPath)
	f.add(ir.Entry{Path: eltPath, Value: app.Value})
}

type resolver struct {
	root     *node
	env      map[string]string
	visiting map[*node]bool
}

// project resolves n into an ir.Node. keep is false when n is dropped
// entirely, which happens for optional substitutions without a value.
func (r *resolver) project(n *node, depth int) (y *ir.Node, keep bool) {
	if n == nil {
		return nil, false
	}
	if depth > maxDepth {
		return ir.BadNode("substitution chain too deep"), true
	}
	if r.visiting[n] {
		return ir.BadNode("substitution cycle"), true
	}
	r.visiting[n] = true
	defer delete(r.visiting, n)

	switch n.kind {
	case badKind:
		return ir.BadNode(n.bad), true
	case leafKind:
		y, keep := r.projectLeaf(n.leaf, depth)
		if !keep && n.prev != nil {
			return r.project(n.prev, depth)
		}
		return y, keep
	case hashKind:
		return r.projectHash(n, depth)
	case arrayKind:
		return r.projectArray(n, depth)
	case spliceKind:
		return ir.BadNode("array splice outside an array"), true
	default:
		return ir.BadNode("unresolvable value"), true
	}
}

func (r *resolver) projectLeaf(v ir.Value, depth int) (*ir.Node, bool) {
	switch t := v.(type) {
	case ir.Substitution:
		return r.substitute(t, depth)
	case ir.Concat:
		return r.concat(t, depth)
	case nil:
		return ir.NullNode(), true
	default:
		return leafNode(v), true
	}
}

func (r *resolver) projectHash(n *node, depth int) (*ir.Node, bool) {
	out := ir.NewObjectNode()
	if n.base != nil {
		b, keep := r.substitute(*n.base, depth)
		if keep {
			switch b.Type {
			case ir.ObjectType:
				for i := range b.Fields {
					ir.Set(out, b.Fields[i].String, b.Values[i])
				}
			case ir.BadType:
				return b, true
			default:
				return ir.BadNode("object base " + n.base.Original + " is not an object"), true
			}
		}
	}
	for _, k := range n.order {
		v, keep := r.project(n.fields[k], depth)
		if !keep {
			continue
		}
		ex := ir.Get(out, k)
		if ex != nil && ex.Type == ir.ObjectType && v.Type == ir.ObjectType {
			mergeNodes(ex, v)
		} else {
			ir.Set(out, k, v)
		}
	}
	return out, true
}

func (r *resolver) projectArray(n *node, depth int) (*ir.Node, bool) {
	out := ir.NewArrayNode()
	for _, e := range n.elems {
		if e == nil {
			continue
		}
		if e.kind != spliceKind {
			v, keep := r.project(e, depth)
			if !keep {
				continue
			}
			ir.AppendElt(out, v)
			continue
		}
		var spliced *ir.Node
		if e.snapDone {
			if e.snap == nil {
				if e.splice.Optional {
					continue
				}
				ir.AppendElt(out, ir.BadNode("could not resolve self-referential "+e.splice.Original))
				continue
			}
			v, keep := r.project(e.snap, depth)
			if !keep {
				continue
			}
			spliced = v
		} else {
			v, keep := r.substitute(*e.splice, depth)
			if !keep {
				continue
			}
			spliced = v
		}
		switch spliced.Type {
		case ir.ArrayType:
			for _, v := range spliced.Values {
				ir.AppendElt(out, v)
			}
		case ir.BadType:
			ir.AppendElt(out, spliced)
		default:
			ir.AppendElt(out, ir.BadNode("spliced value "+e.splice.Original+" is not an array"))
		}
	}
	return out, true
}

func (r *resolver) substitute(sub ir.Substitution, depth int) (*ir.Node, bool) {
	if depth > maxDepth {
		return ir.BadNode("substitution chain too deep at " + sub.Original), true
	}
	if n := r.lookup(sub.Expr, depth); n != nil {
		return r.project(n, depth+1)
	}
	if r.env != nil {
		if key, ok := envKey(sub.Expr); ok {
			if val, ok := r.env[key]; ok {
				return ir.FromString(val), true
			}
		}
	}
	if sub.Optional {
		return nil, false
	}
	return ir.BadNode("could not resolve " + sub.Original), true
}

// lookup walks the folded tree along a key path, chasing substitution
// leaves and deferred object bases when a segment is not found
// directly.
func (r *resolver) lookup(p ir.Path, depth int) *node {
	return r.lookupIn(r.root, p, depth)
}

func (r *resolver) lookupIn(n *node, comps ir.Path, depth int) *node {
	if n == nil || depth > maxDepth {
		return nil
	}
	if len(comps) == 0 {
		return n
	}
	c := comps[0]
	if c.IsIndex {
		return nil
	}
	switch n.kind {
	case hashKind:
		if child, ok := n.fields[c.Key]; ok {
			if res := r.lookupIn(child, comps[1:], depth); res != nil {
				return res
			}
		}
		if n.base != nil {
			bn := r.lookup(n.base.Expr, depth+1)
			return r.lookupIn(bn, comps, depth+1)
		}
		return nil
	case leafKind:
		if sub, ok := n.leaf.(ir.Substitution); ok {
			return r.lookup(sub.Expr.Join(comps), depth+1)
		}
		return nil
	case arrayKind:
		// a numeric path component indexes into the array
		i, err := strconv.Atoi(c.Key)
		if err != nil || i < 0 || i >= len(n.elems) {
			return nil
		}
		return r.lookupIn(n.elems[i], comps[1:], depth)
	default:
		return nil
	}
}

func (r *resolver) concat(parts ir.Concat, depth int) (*ir.Node, bool) {
	b := &strings.Builder{}
	for _, part := range parts {
		switch t := part.(type) {
		case ir.String:
			b.WriteString(string(t))
		case ir.Unquoted:
			b.WriteString(string(t))
		case ir.Int:
			b.WriteString(strconv.FormatInt(int64(t), 10))
		case ir.Float:
			b.WriteString(strconv.FormatFloat(float64(t), 'g', -1, 64))
		case ir.Bool:
			b.WriteString(strconv.FormatBool(bool(t)))
		case ir.Null:
			b.WriteString("null")
		case ir.Substitution:
			y, keep := r.substitute(t, depth)
			if !keep {
				continue
			}
			s, ok := scalarText(y)
			if !ok {
				if y.Type == ir.BadType {
					return y, true
				}
				return ir.BadNode("cannot concatenate non-scalar " + t.Original), true
			}
			b.WriteString(s)
		case ir.Concat:
			y, keep := r.concat(t, depth)
			if !keep {
				continue
			}
			if y.Type == ir.BadType {
				return y, true
			}
			b.WriteString(y.String)
		default:
			return ir.BadNode("unresolvable concatenation"), true
		}
	}
	return ir.FromString(b.String()), true
}

func scalarText(y *ir.Node) (string, bool) {
	switch y.Type {
	case ir.StringType:
		return y.String, true
	case ir.NumberType:
		if y.Int64 != nil {
			return strconv.FormatInt(*y.Int64, 10), true
		}
		return strconv.FormatFloat(*y.Float64, 'g', -1, 64), true
	case ir.BoolType:
		return strconv.FormatBool(y.Bool), true
	case ir.NullType:
		return "null", true
	default:
		return "", false
	}
}

func leafNode(v ir.Value) *ir.Node {
	switch t := v.(type) {
	case ir.Null:
		return ir.NullNode()
	case ir.Bool:
		return ir.FromBool(bool(t))
	case ir.Int:
		return ir.FromInt(int64(t))
	case ir.Float:
		return ir.FromFloat(float64(t))
	case ir.String:
		return ir.FromString(string(t))
	case ir.Unquoted:
		return ir.FromString(string(t))
	default:
		return ir.BadNode("unresolvable value")
	}
}

// mergeNodes merges src over dst recursively: object fields merge,
// everything else from src replaces.
func mergeNodes(dst, src *ir.Node) {
	for i := range src.Fields {
		k := src.Fields[i].String
		v := src.Values[i]
		ex := ir.Get(dst, k)
		if ex != nil && ex.Type == ir.ObjectType && v.Type == ir.ObjectType {
			mergeNodes(ex, v)
			continue
		}
		ir.Set(dst, k, v)
	}
}

func envKey(p ir.Path) (string, bool) {
	parts := make([]string, 0, len(p))
	for _, c := range p {
		if c.IsIndex {
			return "", false
		}
		parts = append(parts, c.Key)
	}
	return strings.Join(parts, "."), true
}

func firstBad(y *ir.Node) *ir.Node {
	var bad *ir.Node
	y.Visit(func(n *ir.Node, post bool) (bool, error) {
		if post || bad != nil {
			return false, nil
		}
		if n.Type == ir.BadType {
			bad = n
			return false, nil
		}
		return true, nil
	})
	return bad
}
