// Package syntax models source files as a token-level concrete syntax tree
// that is just structured enough for the merge pass: switch statements are
// parsed into clause lists, everything else is kept as raw token runs.
//
// Invariants:
//   - Rendering an unmodified tree reproduces the input bytes exactly.
//   - The parser never fails; unparseable regions degrade to raw runs and a
//     diagnostic, never to data loss.
//   - Nodes are treated as immutable after parsing; transformations build new
//     clauses instead of mutating parsed ones.
package syntax
