// Package token defines PHP token kinds and the read-only token stream that
// sniffs inspect.
// Invariants:
//   - Token.Content is the literal source text of the token, quotes included
//     for string literals; concatenating every Content reproduces the file.
//   - Kinds use the names PHP's tokenizer (and PHP_CodeSniffer on top of it)
//     gives them, so dumps produced by `token_get_all` map one to one.
//   - Single-character tokens that PHP reports without an id get their own
//     kinds (T_OPEN_PARENTHESIS, T_SEMICOLON, ...), as PHP_CodeSniffer does.
//   - A Stream is never mutated by sniffs; the fix engine edits copies.
package token
