// Package merge implements the fallthrough-only case collapse: a single
// left-to-right pass over each switch's clause list that folds clauses whose
// body is nothing but `fallthrough` into the following clause's label.
//
// The pass is a pure tree-to-tree function plus a diagnostic event stream.
// It cannot fail: anything it does not understand is left untouched, and a
// failed numeric collapse degrades to a comma-joined label, never to a
// corrupted tree.
package merge
