package cmd

import (
	"context"
	"fmt"
	"io"
	"iter"
	"log/slog"

	"github.com/ardnew/mfmt/markup"
)

// Parse parses format strings and prints their trees.
type Parse struct {
	Output string   `default:"tree" enum:"tree,json,yaml" help:"Output format (${enum})."                                       short:"o"`
	Indent int      `default:"2"                          help:"Indent width for JSON and YAML; 0 selects compact output."      short:"i"`
	File   []string `                                     help:"Read format strings, one per line, from files or '-' for stdin." short:"f" type:"path"`

	Format []string `arg:"" help:"Format strings to parse. Lines of stdin are read when neither formats nor files are given." optional:""`
}

// Run executes the parse command.
func (p *Parse) Run(ctx context.Context) error {
	stdio := StdioFrom(ctx)
	parser := parserFrom(ctx)

	n := 0

	for format, err := range p.formats(stdio.In) {
		if err != nil {
			return err
		}

		root, err := parser.Parse(ctx, format)
		if err != nil {
			return ErrParse.Wrap(err).With(slog.String("format", format))
		}

		if err := p.write(ctx, stdio.Out, root, n); err != nil {
			return ErrWriteOutput.Wrap(err).With(slog.String("output", p.Output))
		}

		n++
	}

	return nil
}

// formats yields the format arguments, or else the lines of the input
// files, or else the lines of stdin.
func (p *Parse) formats(stdin io.Reader) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		if len(p.Format) > 0 {
			for _, f := range p.Format {
				if !yield(f, nil) {
					return
				}
			}

			return
		}

		files := p.File
		if len(files) == 0 {
			files = []string{stdinSource}
		}

		src, missing := buildSourceFiles(files, stdin)
		if len(missing) > 0 {
			src.Close()
			yield("", ErrReadInput.With(slog.Any("missing", missing)))

			return
		}

		for line, err := range src.Lines() {
			if err != nil {
				yield("", ErrReadInput.Wrap(err))

				return
			}

			if !yield(line, nil) {
				return
			}
		}
	}
}

func (p *Parse) write(
	ctx context.Context,
	w io.Writer,
	root *markup.Element,
	n int,
) error {
	switch p.Output {
	case "json":
		return root.FormatJSON(w, p.Indent)

	case "yaml":
		if n > 0 {
			if _, err := io.WriteString(w, "---\n"); err != nil {
				return err
			}
		}

		return root.FormatYAML(ctx, w, p.Indent)

	default:
		_, err := fmt.Fprint(w, root.Tree())

		return err
	}
}
