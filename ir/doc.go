// Package ir holds the intermediate representation of the HOCON
// notation: the parse-time Value variants, Paths addressing tree
// locations, the flattened Doc of (Path, Value) entries produced by
// parsing, and the resolved Node tree produced by resolution.
//
// A Doc is an append-only ordered fact log: entries are created during
// parsing, never mutated in place, and reduced by the resolver into a
// fresh Node tree. Document order across entries is the sole override
// tie-breaker.
package ir
