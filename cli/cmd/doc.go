// Package cmd implements the mfmt subcommands.
//
// Each command is a kong command struct with a Run(context.Context) method.
// Shared state reaches commands through the context: the [kong.Context]
// ([WithContext]), the standard streams ([WithStdio]) and the cached parser
// ([WithParser]).
package cmd
