// Package diag defines the core diagnostic model shared by all pipeline phases.
//
//   - Provide deterministic, serialisable data structures that capture
//     findings produced by the lexer, the clause parser, and the merge pass.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to concrete storage or formatting layers.
//
// Package diag does not perform any formatting, IO, or CLI integration.
// Rendering lives in internal/diagfmt; orchestration lives in the driver.
package diag
