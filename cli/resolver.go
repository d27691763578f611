package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

// resolveYAML is a [kong.ConfigurationLoader] that reads YAML config files,
// such as the one written by the init command.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolveYAML, "/path/to/config.yaml")
//
// The document is a mapping from flag names to values:
//   - Flag names with hyphens (e.g., "log-level") may also be written with
//     underscores (e.g., "log_level")
//   - Nested mappings name flags of command groups, joined with hyphens:
//     "log: {level: debug}" sets --log-level
//   - Numbers are handed to kong as strings for parsing
//
// Example config file:
//
//	log-level: debug
//	log:
//	  format: text
//	  pretty: false
//	cache-size: 4096
//
// Command-line flags override config file values.
func resolveYAML(r io.Reader) (kong.Resolver, error) {
	var doc map[string]any

	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return config{}, nil
		}

		return nil, err
	}

	cfg := make(config, len(doc))
	cfg.flatten("", doc)

	return cfg, nil
}

// config implements [kong.Resolver] for flattened YAML documents.
type config map[string]any

// flatten stores the leaves of doc keyed by their hyphen-joined path.
func (c config) flatten(prefix string, doc map[string]any) {
	for key, value := range doc {
		name := strings.ReplaceAll(key, "_", "-")
		if prefix != "" {
			name = prefix + "-" + name
		}

		if nested, ok := value.(map[string]any); ok {
			c.flatten(name, nested)

			continue
		}

		c[name] = scalar(value)
	}
}

// scalar converts YAML numbers to strings, which kong parses according to
// the flag type.
func scalar(value any) any {
	switch v := value.(type) {
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []any:
		s := make([]any, len(v))
		for i, e := range v {
			s[i] = fmt.Sprint(scalar(e))
		}

		return s
	}

	return value
}

// Validate implements [kong.Resolver].
func (c config) Validate(*kong.Application) error {
	return nil
}

// Resolve implements [kong.Resolver].
func (c config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	// Not found returns nil to let Kong use defaults.
	return c[flag.Name], nil
}
