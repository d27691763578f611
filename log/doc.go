// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// A [Logger] is configured once at creation with functional options and is
// immutable afterwards; [Logger.Wrap] and [Logger.With] derive new loggers.
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatText))
//	logger.Info("cache ready", slog.Int("capacity", 2048))
//
// Attributes are always [slog.Attr] values, so errors that implement
// [slog.LogValuer] (such as the parse errors of package markup) expand into
// structured groups.
//
// The zero Logger discards everything, which lets library types hold a
// Logger field without requiring callers to configure one.
//
// # Default Logger
//
// Package-level functions ([Info], [DebugContext], ...) write through a
// default logger that [Config] reconfigures. The command line applies its
// --log-* flags this way before any command runs.
//
// # Levels and Formats
//
// Five levels are supported: [LevelTrace], [LevelDebug], [LevelInfo],
// [LevelWarn] and [LevelError]. Output is [FormatJSON] (default) or
// [FormatText]; text output is colorized when pretty printing is enabled.
package log
