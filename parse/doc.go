// Package parse parses HOCON notation text into a flattened ir.Doc.
//
// # Usage
//
//	// Parse notation text
//	doc, err := parse.Parse([]byte(`a = 1, b = ${a}`))
//	if err != nil {
//	    return err
//	}
//
//	// Parse with options
//	doc, err := parse.Parse(data, parse.Strict(), parse.WithIncluder(inc))
//
// JSON documents parse unchanged: the notation is a superset of JSON.
// Include directives are delegated to the configured Includer; parsing
// a document containing `include` without one is an include error.
//
// # Related Packages
//
//   - github.com/hocon-format/go-hocon/ir - flattened document and value variants
//   - github.com/hocon-format/go-hocon/resolve - merge and substitution resolution
//   - github.com/hocon-format/go-hocon/token - lexical scanning
package parse
