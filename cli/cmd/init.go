package cmd

import (
	"context"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/mfmt/log"
	"github.com/ardnew/mfmt/profile"
)

// defaultConfigIndent is the number of spaces to use for indentation
// when generating the default configuration file.
const defaultConfigIndent = 2

// Init generates a default configuration file with current flag values.
type Init struct {
	Force bool `help:"Overwrite existing configuration file" short:"f"`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) error {
	ktx := kongContextFrom(ctx)
	if ktx == nil {
		return ErrWriteConfig.Wrap(ErrNoConfigPath)
	}

	confPath, ok := ktx.Model.Vars()[ConfigIdentifier]
	if !ok {
		return ErrWriteConfig.Wrap(ErrNoConfigPath)
	}

	confPath += ".yaml"

	if _, err := os.Stat(confPath); err == nil && !i.Force {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(ErrFileExists)
	}

	data, err := yaml.MarshalWithOptions(
		i.flagValues(ktx),
		yaml.Indent(defaultConfigIndent),
	)
	if err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}

	if err := os.WriteFile(confPath, data, 0o600); err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}

	log.DebugContext(ctx, "initialized configuration file",
		slog.String("path", confPath),
	)

	return nil
}

// flagValues collects the non-empty values of the application's global
// flags, keyed by flag name. Goccy encodes map keys in sorted order.
func (i *Init) flagValues(ktx *kong.Context) map[string]any {
	values := make(map[string]any)

	for _, flag := range ktx.Model.Flags {
		if flag.Hidden || flag.Name == "help" ||
			strings.HasPrefix(flag.Name, profile.Tag) {
			continue
		}

		switch v := ktx.FlagValue(flag).(type) {
		case nil:
		case string:
			if v != "" {
				values[flag.Name] = v
			}
		case []string:
			if len(v) > 0 {
				values[flag.Name] = slices.Clone(v)
			}
		default:
			values[flag.Name] = v
		}
	}

	return values
}
