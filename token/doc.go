// Package token provides the lexical layer of the HOCON notation:
// position tracking, escape decoding, and scanners for quoted strings,
// triple-quoted multiline strings, numbers, unquoted runs, whitespace,
// comments and separators.
//
// Scanners operate on a byte slice and an offset and return the offset
// past the scanned construct, so the parser in
// github.com/hocon-format/go-hocon/parse can drive them directly.
package token
