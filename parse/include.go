package parse

import (
	"errors"
	"fmt"

	"github.com/hocon-format/go-hocon/ir"
	"github.com/hocon-format/go-hocon/token"
)

// errExpectedTarget marks `include` followed by no target, so the
// caller can re-read the word as an ordinary key.
var errExpectedTarget = errors.New("expected include target")

type IncludeKind int

const (
	// IncludeAny is a bare or quoted target; the orchestrator decides
	// how to read it.
	IncludeAny IncludeKind = iota
	IncludeFile
	IncludeURL
)

func (k IncludeKind) String() string {
	switch k {
	case IncludeFile:
		return "file"
	case IncludeURL:
		return "url"
	default:
		return "any"
	}
}

// Include is a parsed include directive.
type Include struct {
	Target string
	Kind   IncludeKind
}

// Includer expands an include directive into the included document's
// entries. Implementations carry their own directory context and
// depth budget.
type Includer interface {
	Include(inc Include) (*ir.Doc, error)
}

// includeDirective parses `include target` at the current position and
// expands it through the configured Includer. The caller has verified
// the `include` keyword is present.
func (p *parser) includeDirective() (*ir.Doc, error) {
	p.i += len("include")
	p.skipAllWS()
	inc, err := p.includeTarget()
	if err != nil {
		return nil, err
	}
	if p.opts.includer == nil {
		return nil, fmt.Errorf("%w: include %q not allowed here", ErrInclude, inc.Target)
	}
	doc, err := p.opts.includer.Include(*inc)
	if err != nil {
		return nil, fmt.Errorf("%w: including %q: %w", ErrInclude, inc.Target, err)
	}
	return doc, nil
}

func (p *parser) includeTarget() (*Include, error) {
	if p.word("file(") {
		return p.wrappedTarget(IncludeFile)
	}
	if p.word("url(") {
		return p.wrappedTarget(IncludeURL)
	}
	if p.i < len(p.d) && p.d[p.i] == '"' {
		s, end, err := token.Quoted(p.d, p.i)
		if err != nil {
			return nil, fmt.Errorf("%w: include target: %w", ErrParse, err)
		}
		p.i = end
		return &Include{Target: s, Kind: IncludeAny}, nil
	}
	end := token.Unquoted(p.d, p.i)
	target := trimSpace(string(p.d[p.i:end]))
	if target == "" {
		return nil, fmt.Errorf("%w: %w %s", ErrParse, errExpectedTarget, p.pd.Pos(p.i))
	}
	p.i = end
	return &Include{Target: target, Kind: IncludeAny}, nil
}

func (p *parser) wrappedTarget(kind IncludeKind) (*Include, error) {
	p.sp()
	if p.i >= len(p.d) || p.d[p.i] != '"' {
		return nil, fmt.Errorf("%w: expected quoted %s() include target %s", ErrParse, kind, p.pd.Pos(p.i))
	}
	s, end, err := token.Quoted(p.d, p.i)
	if err != nil {
		return nil, fmt.Errorf("%w: include target: %w", ErrParse, err)
	}
	p.i = end
	p.sp()
	if p.i >= len(p.d) || p.d[p.i] != ')' {
		return nil, fmt.Errorf("%w: expected ) after include target %s", ErrParse, p.pd.Pos(p.i))
	}
	p.i++
	return &Include{Target: s, Kind: kind}, nil
}
