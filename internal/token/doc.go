// Package token defines lexical token kinds and trivia for the Rune toolchain.
// Invariants:
//   - Token.Text is a slice of the original source (no copies).
//   - Token.Span matches Text exactly (Start..End).
//   - Comments never appear in the main token stream; they are carried as
//     leading Trivia on the next significant token (or on EOF for a trailing run).
//   - Built-in type names (i32, u64, f64, ...) are identifiers. They are
//     recognized downstream, not by the lexer.
package token
