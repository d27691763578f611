// Package render produces text from parsed mini-markup trees.
//
// Each element of a tree is rendered by first rendering its children and
// then passing the result through the [Slot] registered for the element's
// index. Text is unescaped. Expressions are replaced by the caller value of
// the same name, formatted with [fmt.Sprint]:
//
//	root, _ := markup.Parse("Hello, [1:{name}]!")
//	out, _ := render.New().Render(root,
//		render.Slots{1: render.Tag("b")},
//		map[string]any{"name": "World"})
//	// out == "Hello, <b>World</b>!"
//
// With [WithExpr], an expression naming no value is evaluated as an
// expr-lang program against the values, so "{len(items)}" or
// "{price * qty}" work without precomputing them. Compiled programs are
// kept in an LRU cache.
//
// A [Renderer] is not safe for concurrent use.
package render
