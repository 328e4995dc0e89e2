// Package token defines lexical token kinds and trivia for casemerge.
// Invariants:
//   - Token.Text is a copy of the original source bytes for the token.
//   - Token.Span matches Text exactly (Start..End).
//   - Comments and whitespace never appear in the main token stream; they are
//     carried as leading Trivia on the following significant token.
//   - The lexer is deliberately tolerant: bytes it does not understand become
//     Unknown tokens so a file can always be re-emitted byte-for-byte.
package token
