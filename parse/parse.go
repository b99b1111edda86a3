package parse

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/hocon-format/go-hocon/debug"
	"github.com/hocon-format/go-hocon/ir"
	"github.com/hocon-format/go-hocon/token"
)

// Parse parses notation text into a flattened Doc. The input must be
// fully consumed modulo trailing whitespace, separators and comments;
// under Strict a non-whitespace remainder is an error, otherwise the
// partial parse is accepted.
func Parse(d []byte, opts ...Option) (*ir.Doc, error) {
	pOpts := &parseOpts{}
	for _, f := range opts {
		f(pOpts)
	}
	d = normalize(d)
	p := &parser{d: d, pd: token.NewPosDoc(d), opts: pOpts}
	doc, err := p.root()
	if err != nil {
		return nil, err
	}
	p.skipAllWS()
	p.trailingSeparators()
	if p.i < len(p.d) && pOpts.strict {
		return nil, fmt.Errorf("%w: %s", ErrIncomplete, p.pd.Pos(p.i))
	}
	if debug.Parse() {
		debug.Logf("parsed %d entries, %d bytes remaining\n", len(doc.Entries), len(p.d)-p.i)
	}
	return doc, nil
}

// normalize rewrites CRLF and lone CR line endings to LF.
func normalize(d []byte) []byte {
	if !bytes.ContainsRune(d, '\r') {
		return d
	}
	d = bytes.ReplaceAll(d, []byte("\r\n"), []byte("\n"))
	return bytes.ReplaceAll(d, []byte("\r"), []byte("\n"))
}

type parser struct {
	d    []byte
	i    int
	pd   *token.PosDoc
	opts *parseOpts
}

// sp consumes same-line whitespace.
func (p *parser) sp() {
	p.i = token.Space(p.d, p.i)
}

// skipAllWS consumes any mix of whitespace, newlines and comments.
func (p *parser) skipAllWS() {
	for {
		p.sp()
		if token.CommentStart(p.d, p.i) {
			p.i = token.Comment(p.d, p.i)
			continue
		}
		if p.i < len(p.d) && p.d[p.i] == '\n' {
			p.i++
			continue
		}
		return
	}
}

// separator consumes an entry separator: at least one newline or
// comment line, or a single comma, plus any surrounding whitespace and
// comments. It reports whether a separator was present.
func (p *parser) separator() bool {
	sawSep := false
	sawComma := false
	for {
		p.sp()
		if token.CommentStart(p.d, p.i) {
			p.i = token.Comment(p.d, p.i)
			sawSep = true
			continue
		}
		if p.i >= len(p.d) {
			return sawSep
		}
		switch p.d[p.i] {
		case '\n':
			p.i++
			sawSep = true
			continue
		case ',':
			if sawComma {
				return sawSep
			}
			p.i++
			sawSep = true
			sawComma = true
			continue
		}
		return sawSep
	}
}

// trailingSeparators consumes trailing separators and comments after
// the root value.
func (p *parser) trailingSeparators() {
	for {
		before := p.i
		p.separator()
		p.skipAllWS()
		if p.i == before {
			return
		}
	}
}

func (p *parser) word(w string) bool {
	if strings.HasPrefix(string(p.d[p.i:]), w) {
		p.i += len(w)
		return true
	}
	return false
}

func (p *parser) atWord(w string) bool {
	return strings.HasPrefix(string(p.d[p.i:]), w)
}

func trimSpace(s string) string {
	return strings.TrimFunc(s, token.IsSpaceRune)
}

// root parses a whole document: a braced object, an array, or a bare
// top-level member list (only when the document does not start with
// `{`).
func (p *parser) root() (*ir.Doc, error) {
	p.skipAllWS()
	if p.i >= len(p.d) {
		return ir.NewDoc(), nil
	}
	switch p.d[p.i] {
	case '{':
		return p.hashes()
	case '[':
		return p.arraysDoc()
	default:
		return p.rootHash()
	}
}

// rootHash parses a brace-less top-level member list.
func (p *parser) rootHash() (*ir.Doc, error) {
	doc := ir.NewDoc()
	count := 0
	for {
		p.skipAllWS()
		if p.i >= len(p.d) {
			return doc, nil
		}
		save := p.i
		kv, err := p.keyValue()
		if err != nil {
			// include failures abort the document; they are not a
			// partial-parse boundary
			if count == 0 || errors.Is(err, ErrInclude) {
				return nil, err
			}
			p.i = save
			return doc, nil
		}
		doc = doc.Concat(kv)
		count++
		save = p.i
		if !p.separator() {
			p.i = save
			return doc, nil
		}
	}
}

// keyValue parses one object member: an include directive, or a key
// followed by `:`/`=` and a value, `+=` and a value, or directly a
// nested object. The returned entries are relative to the enclosing
// object.
func (p *parser) keyValue() (*ir.Doc, error) {
	p.sp()
	if p.atWord("include") {
		save := p.i
		j := p.i + len("include")
		if j < len(p.d) && token.IsSpaceRune(rune(p.d[j])) {
			doc, err := p.includeDirective()
			if err == nil || !errors.Is(err, errExpectedTarget) {
				return doc, err
			}
			p.i = save
		}
	}

	keyPath, err := p.key()
	if err != nil {
		return nil, err
	}
	p.sp()
	if p.i >= len(p.d) {
		return nil, fmt.Errorf("%w: premature end of member %s", ErrParse, p.pd.Pos(p.i))
	}
	switch {
	case p.word("+="):
		val, err := p.wrapper()
		if err != nil {
			return nil, err
		}
		opID := uuid.NewString()
		tagged := val.Transform(func(e ir.Entry) ir.Entry {
			return ir.Entry{
				Path: e.Path,
				Value: ir.Append{
					Value:        e.Value,
					OriginalPath: e.Path,
					OpID:         opID,
				},
			}
		})
		return tagged.AddPrefix(keyPath), nil
	case p.d[p.i] == ':' || p.d[p.i] == '=':
		p.i++
		val, err := p.wrapper()
		if err != nil {
			return nil, err
		}
		return val.AddPrefix(keyPath), nil
	case p.d[p.i] == '{' || p.d[p.i] == '$':
		// nested object without a separator
		hs, err := p.hashes()
		if err != nil {
			return nil, err
		}
		return hs.AddPrefix(keyPath), nil
	default:
		return nil, fmt.Errorf("%w: expected :, =, += or nested object after key %q %s",
			ErrParse, keyPath, p.pd.Pos(p.i))
	}
}

// key parses a quoted or unquoted key. Unquoted keys split on dots
// into nested paths; quoted keys are single components.
func (p *parser) key() (ir.Path, error) {
	if p.i < len(p.d) && p.d[p.i] == '"' {
		s, end, err := token.Quoted(p.d, p.i)
		if err != nil {
			return nil, fmt.Errorf("%w: key: %w %s", ErrParse, err, p.pd.Pos(p.i))
		}
		p.i = end
		return ir.Path{ir.KeyComp(s)}, nil
	}
	end := token.Unquoted(p.d, p.i)
	word := trimSpace(string(p.d[p.i:end]))
	if word == "" {
		return nil, fmt.Errorf("%w: expected key %s", ErrParse, p.pd.Pos(p.i))
	}
	kp, err := ir.ParseKeyPath(word)
	if err != nil {
		return nil, fmt.Errorf("%w: key %q: %w %s", ErrParse, word, err, p.pd.Pos(p.i))
	}
	p.i = end
	return kp, nil
}

// wrapper parses a value position: an object (possibly a substitution
// chain), an array (ditto), or a scalar/concatenation.
func (p *parser) wrapper() (*ir.Doc, error) {
	p.skipAllWS()
	if p.i >= len(p.d) {
		return nil, fmt.Errorf("%w: expected value %s", ErrParse, p.pd.Pos(p.i))
	}
	switch p.d[p.i] {
	case '{':
		return p.hashes()
	case '[':
		return p.arraysDoc()
	case '$':
		// `${base} { patch }` and `${base} [elts]` need lookahead past
		// the substitution to pick the chain form.
		save := p.i
		if _, err := p.substitution(); err == nil {
			p.sp()
			var next byte
			if p.i < len(p.d) {
				next = p.d[p.i]
			}
			p.i = save
			switch next {
			case '{':
				return p.hashes()
			case '[':
				return p.arraysDoc()
			}
		} else {
			p.i = save
		}
		return p.valueDoc()
	default:
		return p.valueDoc()
	}
}

// hashes parses an object position: an optional leading substitution
// followed by one or more literal object layers, each merged over the
// previous.
func (p *parser) hashes() (*ir.Doc, error) {
	doc := ir.NewDoc()
	p.sp()
	if p.atWord("${") {
		sub, err := p.substitution()
		if err != nil {
			return nil, err
		}
		doc.Add(ir.Path{}, sub)
		p.sp()
	}
	first, err := p.hash()
	if err != nil {
		return nil, err
	}
	doc = doc.Concat(first)
	for {
		save := p.i
		p.sp()
		if p.i < len(p.d) && p.d[p.i] == '{' {
			h, err := p.hash()
			if err != nil {
				return nil, err
			}
			doc = doc.Concat(h)
			continue
		}
		p.i = save
		return doc, nil
	}
}

// hash parses one literal `{ members }` layer into entries relative to
// the object, preceded by a NewObject marker.
func (p *parser) hash() (*ir.Doc, error) {
	if p.i >= len(p.d) || p.d[p.i] != '{' {
		return nil, fmt.Errorf("%w: expected { %s", ErrParse, p.pd.Pos(p.i))
	}
	p.i++
	doc := ir.NewDoc()
	doc.Add(ir.Path{}, ir.NewObject{})
	for {
		p.skipAllWS()
		if p.i >= len(p.d) {
			return nil, fmt.Errorf("%w: unbalanced { %s", ErrParse, p.pd.Pos(p.i))
		}
		if p.d[p.i] == '}' {
			p.i++
			return doc, nil
		}
		kv, err := p.keyValue()
		if err != nil {
			return nil, err
		}
		doc = doc.Concat(kv)
		sep := p.separator()
		if p.i < len(p.d) && p.d[p.i] == '}' {
			p.i++
			return doc, nil
		}
		if !sep {
			return nil, fmt.Errorf("%w: expected separator or } %s", ErrParse, p.pd.Pos(p.i))
		}
	}
}

// arraysDoc parses an array position: an optional leading substitution
// (spliced in parent) followed by one or more literal array layers
// whose elements append in order.
func (p *parser) arraysDoc() (*ir.Doc, error) {
	elems := []*ir.Doc{}
	p.sp()
	if p.atWord("${") {
		sub, err := p.substitution()
		if err != nil {
			return nil, err
		}
		elems = append(elems, ir.FromValue(ir.SubstInParent{Sub: sub.(ir.Substitution)}))
		p.sp()
	}
	first, err := p.array()
	if err != nil {
		return nil, err
	}
	elems = append(elems, first...)
	for {
		save := p.i
		p.sp()
		if p.i < len(p.d) && p.d[p.i] == '[' {
			more, err := p.array()
			if err != nil {
				return nil, err
			}
			elems = append(elems, more...)
			continue
		}
		p.i = save
		break
	}
	doc := ir.NewDoc()
	doc.Add(ir.Path{}, ir.NewArray{})
	for i, ed := range elems {
		doc = doc.Concat(ed.AddPrefix(ir.Path{ir.IndexComp(i)}))
	}
	return doc, nil
}

// array parses one literal `[ items ]` layer into per-element docs.
func (p *parser) array() ([]*ir.Doc, error) {
	if p.i >= len(p.d) || p.d[p.i] != '[' {
		return nil, fmt.Errorf("%w: expected [ %s", ErrParse, p.pd.Pos(p.i))
	}
	p.i++
	items := []*ir.Doc{}
	for {
		p.skipAllWS()
		if p.i >= len(p.d) {
			return nil, fmt.Errorf("%w: unbalanced [ %s", ErrParse, p.pd.Pos(p.i))
		}
		if p.d[p.i] == ']' {
			p.i++
			return items, nil
		}
		it, err := p.wrapper()
		if err != nil {
			return nil, err
		}
		items = append(items, it)
		sep := p.separator()
		if p.i < len(p.d) && p.d[p.i] == ']' {
			p.i++
			return items, nil
		}
		if !sep {
			return nil, fmt.Errorf("%w: expected separator or ] %s", ErrParse, p.pd.Pos(p.i))
		}
	}
}

// valueDoc parses a scalar or concatenation into a single-entry doc.
func (p *parser) valueDoc() (*ir.Doc, error) {
	v, err := p.value()
	if err != nil {
		return nil, err
	}
	return ir.FromValue(v), nil
}

// value parses a run of adjacent value tokens and folds them into one
// value. Unquoted runs carry the whitespace separating tokens, so
// concatenation preserves it.
func (p *parser) value() (ir.Value, error) {
	parts := []ir.Value{}
	for {
		v, ok, err := p.singleValue()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		parts = append(parts, v)
	}
	// drop pure-whitespace boundary parts left by trailing unquoted runs
	for len(parts) > 0 {
		uq, isUq := parts[len(parts)-1].(ir.Unquoted)
		if !isUq || trimSpace(string(uq)) != "" {
			break
		}
		parts = parts[:len(parts)-1]
	}
	switch len(parts) {
	case 0:
		return nil, fmt.Errorf("%w: expected value %s", ErrParse, p.pd.Pos(p.i))
	case 1:
		if uq, isUq := parts[0].(ir.Unquoted); isUq {
			return ir.Classify(string(uq)), nil
		}
		return parts[0], nil
	default:
		return ir.Concat(parts), nil
	}
}

// singleValue parses one value token: a quoted or multiline string, a
// substitution, or an unquoted run. ok is false when no value token
// starts at the current position.
func (p *parser) singleValue() (ir.Value, bool, error) {
	if p.i >= len(p.d) {
		return nil, false, nil
	}
	c := p.d[p.i]
	switch {
	case token.MStringStart(p.d, p.i):
		s, end, err := token.MString(p.d, p.i)
		if err != nil {
			return nil, false, fmt.Errorf("%w: %w %s", ErrParse, err, p.pd.Pos(p.i))
		}
		p.i = end
		return ir.String(s), true, nil
	case c == '"':
		s, end, err := token.Quoted(p.d, p.i)
		if err != nil {
			return nil, false, fmt.Errorf("%w: %w %s", ErrParse, err, p.pd.Pos(p.i))
		}
		p.i = end
		return ir.String(s), true, nil
	case c == '$' && p.i+1 < len(p.d) && p.d[p.i+1] == '{':
		sub, err := p.substitution()
		if err != nil {
			return nil, false, err
		}
		return sub, true, nil
	default:
		end := token.Unquoted(p.d, p.i)
		if end == p.i {
			return nil, false, nil
		}
		word := string(p.d[p.i:end])
		p.i = end
		return ir.Unquoted(word), true, nil
	}
}

// substitution parses `${path}` / `${?path}` at the current position.
func (p *parser) substitution() (ir.Value, error) {
	start := p.i
	p.i += 2
	optional := false
	if p.i < len(p.d) && p.d[p.i] == '?' {
		optional = true
		p.i++
	}
	exprStart := p.i
	for {
		if p.i >= len(p.d) || p.d[p.i] == '\n' {
			return nil, fmt.Errorf("%w: %w %s",
				ErrParse, token.ErrUnterminatedSubst, p.pd.Pos(start))
		}
		c := p.d[p.i]
		if c == '}' {
			break
		}
		if c == '"' {
			_, end, err := token.Quoted(p.d, p.i)
			if err != nil {
				return nil, fmt.Errorf("%w: substitution path: %w %s", ErrParse, err, p.pd.Pos(p.i))
			}
			p.i = end
			continue
		}
		p.i++
	}
	expr := string(p.d[exprStart:p.i])
	p.i++ // closing }
	path, err := ir.ParseKeyPath(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: substitution path %q: %w %s",
			ErrParse, expr, err, p.pd.Pos(start))
	}
	return ir.Substitution{
		Expr:     path,
		Optional: optional,
		Original: string(p.d[start : p.i]),
	}, nil
}
