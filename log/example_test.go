package log_test

import (
	"log/slog"
	"os"

	"github.com/ardnew/mfmt/log"
)

func Example() {
	logger := log.Make(os.Stdout,
		log.WithLevel(log.LevelDebug),
		log.WithTimeLayout("none"))

	logger.Debug("cache miss", slog.String("format", "[1:{name}]"))
	logger.Trace("not shown")

	// Output:
	// {"level":"DEBUG","msg":"cache miss","format":"[1:{name}]"}
}

func Example_textFormat() {
	logger := log.Make(os.Stdout,
		log.WithFormat(log.FormatText),
		log.WithPretty(false),
		log.WithTimeLayout("none"))

	logger.Info("parsed", slog.Int("elements", 2))

	// Output:
	// level=INFO msg=parsed elements=2
}
