// Package token defines lexical token kinds for JavaScript/TypeScript sources
// with embedded JSX markup.
// Invariants:
//   - Token.Text is the exact source text under Token.Span.
//   - Keywords are identifiers; the parser only cares about the few that
//     decide whether '<' and '/' start markup or a regular expression.
//   - Markup tokens (JSXText, JSXName, JSXString) are produced only by the
//     lexer's markup entry points, never by Next.
package token
