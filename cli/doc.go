// Package cli contains the command line interface for mfmt.
//
// # Usage
//
//	mfmt [global flags] <command> [flags] [args]
//
// Commands:
//
//	init      Write the current global flags to config.yaml
//	parse     Parse format strings and print their trees (tree, json, yaml)
//	render    Render a format string with slots and values
//	repl      Write format strings interactively with a live preview
//	serve     Serve the parser and renderer over HTTP
//	version   Print version information
//
// # Configuration
//
// Global flags are also read from config.json and config.yaml (or
// config.yml) in the user configuration directory, for example
// ~/.config/mfmt on Linux. Keys are flag names; YAML keys may use
// underscores and nest by flag prefix:
//
//	log:
//	  level: debug
//	  format: text
//	cache-size: 4096
//
// Command-line flags override config file values.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, Kitchen, none, ...)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize text output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o mfmt .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default:
//     ~/.cache/mfmt/pprof)
//
// The serve command also mounts net/http/pprof under /debug in such builds.
//
// # Examples
//
//	# Print the tree of a format string
//	mfmt parse 'Hello [1:{name}]!'
//
//	# Render with a slot and a value
//	mfmt render --slot '1=<b>,</b>' --value name=Ann 'Hello [1:{name}]!'
//
//	# Debug logging with CPU profiling
//	mfmt --log-level=debug --pprof-mode=cpu parse '[1:x]'
package cli
