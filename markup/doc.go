// Package markup parses mini-markup format strings.
//
// A format string mixes literal text with two kinds of placeholders:
//
//	{name}        an expression, resolved against caller values
//	[n: ... ]     a numbered element wrapping nested content
//
// Elements nest arbitrarily. A backslash escapes the character that follows
// it, so "\[" and "\{" produce literal brackets and braces.
//
//	format     = { text | element | expression }
//	element    = "[" digits ":" format "]"
//	expression = "{" text "}"
//	text       = { char | "\" any }
//
// [Parse] returns the tree rooted at a synthetic element with index 0:
//
//	root, err := markup.Parse("Hello, [1:{name}]!")
//	// element 0
//	// ├─ text "Hello, "
//	// ├─ element 1
//	// │  └─ expr name
//	// └─ text "!"
//
// Parsing is tokenization by a single anchored regular expression followed
// by a stack-based tree builder. The first error aborts the parse; errors
// are [*Error] values derived from the package sentinels and carry the
// [Position] of the offending input.
//
// A [Parser] memoizes successful parses in a fixed-capacity LRU cache so
// that a format string rendered repeatedly is tokenized once. Trees are
// immutable and safe to share between renders. Neither [Lexer] nor [Parser]
// is safe for concurrent use.
package markup
