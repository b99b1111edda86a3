// Package encode renders resolved value trees as text.
//
// # Usage
//
//	// Render a resolved tree as JSON
//	err := encode.Encode(node, os.Stdout, encode.EncodeFormat(format.JSONFormat))
//
//	// Render in notation form, compact
//	err := encode.Encode(node, os.Stdout, encode.EncodeWire(true))
//
// Notation output renders the root object as bare members; JSON output
// is always braced. Bad leaves do not encode.
//
// # Related Packages
//
//   - github.com/hocon-format/go-hocon/ir - the value tree
//   - github.com/hocon-format/go-hocon/format - output format names
package encode
