// Package resolve folds a flattened ir.Doc into a resolved value tree.
//
// Resolution runs in two phases. The fold phase replays the entry log
// in document order, applying the merge rules: scalars and arrays
// replace, objects merge, `+=` appends, and substitutions referring to
// their own path resolve immediately against the state built so far.
// The projection phase then resolves the remaining substitutions
// against the final tree, splices array prefixes, stringifies
// concatenations and drops members and elements whose optional
// substitutions found no value.
//
// Unresolvable required substitutions become BadType leaves carrying a
// diagnostic; under Strict the first one aborts resolution with
// ErrUnresolved.
package resolve
