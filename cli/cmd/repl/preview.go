package repl

import (
	"errors"
	"strings"

	"github.com/ardnew/mfmt/markup"
)

// preview returns the tree of input, or its parse error with a caret under
// the offending column. indent is the display width of the prompt preceding
// input on screen.
//
// Input is parsed without the cache: every keystroke yields a new prefix of
// the final format string.
func preview(input string, indent int) string {
	root, err := markup.Parse(input)
	if err != nil {
		return errorStyle.Render(caret(input, err, indent))
	}

	return hintStyle.Render(strings.TrimRight(root.Tree(), "\n"))
}

// caret returns a line pointing at the position of err within input,
// followed by the error message. Errors without a position are returned as
// the message alone.
func caret(input string, err error, indent int) string {
	var perr *markup.Error

	if !errors.As(err, &perr) {
		return err.Error()
	}

	pos, ok := perr.Position()
	if !ok || strings.ContainsRune(input, '\n') {
		return err.Error()
	}

	return strings.Repeat(" ", indent+pos.Column-1) + "^ " + err.Error()
}
