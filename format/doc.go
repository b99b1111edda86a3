// Package format names the text formats resolved configuration can be
// rendered in.
//
// # Related Packages
//
//   - github.com/hocon-format/go-hocon/encode - render IR to text
//   - github.com/hocon-format/go-hocon/parse - parse text to IR
package format
