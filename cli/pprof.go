//go:build pprof

package cli

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/mfmt/log"
	"github.com/ardnew/mfmt/pkg"
	"github.com/ardnew/mfmt/profile"
)

type pprofConfig struct {
	Mode string `default:""            enum:",${pprofModeEnum}" help:"Enable profiling"         placeholder:"${enum}" short:"p"`
	Dir  string `default:"${pprofDir}"                          help:"Profile output directory"                                 type:"path"`
}

func (pprofConfig) vars() kong.Vars {
	return kong.Vars{
		"pprofModeEnum": strings.Join(profile.Modes(), ","),
		"pprofDir":      filepath.Join(pkg.CacheDir(), profile.Tag),
	}
}

func (pprofConfig) group() kong.Group {
	return kong.Group{Key: "pprof", Title: "Profiling (pprof)"}
}

// start profiles the selected command when a mode is set. Profiles are
// written beneath Dir in a directory named after the command.
func (f pprofConfig) start(ctx context.Context, ktx *kong.Context) (stop func()) {
	if f.Mode == "" {
		return func() {}
	}

	cfg := profile.Config{Mode: f.Mode, Path: f.Dir, Quiet: true}
	if node := ktx.Selected(); node != nil {
		cfg.Label = node.Name
	}

	attrs := []slog.Attr{
		slog.String("mode", cfg.Mode),
		slog.String("dir", filepath.Join(cfg.Path, cfg.Label)),
	}

	log.DebugContext(ctx, "pprof start", attrs...)

	profiler := cfg.Start()

	return func() {
		profiler.Stop()
		log.DebugContext(ctx, "pprof stop", attrs...)
	}
}
