// Package pkg holds project metadata and the per-user directories shared by
// the command line and the REPL.
//
//nolint:gochecknoglobals
package pkg

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var version string

// Version is the semantic version of the mfmt module embedded at build time.
// It is printed by the CLI when users invoke the version subcommand.
var Version = strings.TrimSpace(version)

const (
	// Name is the canonical command and module identifier used across the
	// project. For example, it appears in help text and default config paths.
	Name = "mfmt"
	// Description is a short, human-readable summary of the project used in
	// help output and documentation.
	Description = "Mini-markup format string parser and renderer"
)

// AuthorInfo represents an individual author's name and email address.
type AuthorInfo struct {
	// Name is the author's preferred name or handle.
	Name string
	// Email is the author's contact email address.
	Email string
}

// Author lists the primary author(s) of the project for display in metadata.
var Author = []AuthorInfo{
	{"ardnew", "andrew@ardnew.com"},
}

// AuthorString returns the authors formatted as "name <email>", one per
// line.
func AuthorString() string {
	lines := make([]string, len(Author))

	for i, a := range Author {
		switch {
		case a.Email == "":
			lines[i] = a.Name
		case a.Name == "":
			lines[i] = "<" + a.Email + ">"
		default:
			lines[i] = a.Name + " <" + a.Email + ">"
		}
	}

	return strings.Join(lines, "\n")
}
