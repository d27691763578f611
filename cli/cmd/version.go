package cmd

import (
	"context"
	"fmt"

	"github.com/ardnew/mfmt/pkg"
)

// Version prints the program name and version.
type Version struct {
	Author bool `help:"Also print the authors." short:"A"`
}

// Run executes the version command.
func (v *Version) Run(ctx context.Context) error {
	out := StdioFrom(ctx).Out

	if _, err := fmt.Fprintln(out, pkg.Name, pkg.Version); err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	if v.Author {
		if _, err := fmt.Fprintln(out, pkg.AuthorString()); err != nil {
			return ErrWriteOutput.Wrap(err)
		}
	}

	return nil
}
