package cli

import (
	"context"
	"strconv"

	"github.com/alecthomas/kong"

	"github.com/ardnew/mfmt/cli/cmd"
	"github.com/ardnew/mfmt/log"
	"github.com/ardnew/mfmt/lru"
	"github.com/ardnew/mfmt/markup"
	"github.com/ardnew/mfmt/pkg"
)

// CLI is the top-level command-line interface for mfmt.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	CacheSize int `default:"${cacheSize}" help:"Number of parsed format strings to cache." name:"cache-size"`

	Init    cmd.Init    `cmd:"" help:"Initialize configuration file"`
	Parse   cmd.Parse   `cmd:"" help:"Parse format strings and print their trees"`
	Render  cmd.Render  `cmd:"" help:"Render a format string"`
	Repl    cmd.Repl    `cmd:"" help:"Write format strings interactively"`
	Serve   cmd.Serve   `cmd:"" help:"Serve the parser and renderer over HTTP"`
	Version cmd.Version `cmd:"" help:"Print version information"`
}

// Run parses args and runs the selected command. Kong calls exit after
// printing help or a usage error.
func Run(
	ctx context.Context,
	stdio cmd.Stdio,
	exit func(code int),
	args ...string,
) error {
	if err := mkdirAllRequired(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.WithStdio(ctx, stdio))
	defer cancel()

	stdio = cmd.StdioFrom(ctx)

	// The logger must be usable before kong reports a usage error, so the
	// logging flags are applied ahead of parsing wherever they appear.
	var cli CLI

	log.Config(log.WithOutput(stdio.Err))
	cli.Log.scan(args)

	// Commands receive ctx as it stands when they run, after the kong
	// context and parser are attached below.
	parser, err := kong.New(&cli, cli.options(
		func() context.Context { return ctx }, stdio, exit)...)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cli.Log.start(ctx, stdio.Err)

	defer cli.Pprof.start(ctx, ktx)()

	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithParser(ctx, markup.NewParser(
		markup.WithCapacity(cli.CacheSize),
		markup.WithLogger(log.Default()),
	))

	return ktx.Run(ctx, &cli)
}

// options configures the kong parser: interpolated defaults, help layout,
// and the JSON and YAML configuration files in the config directory.
func (c *CLI) options(
	ctx func() context.Context,
	stdio cmd.Stdio,
	exit func(code int),
) []kong.Option {
	config := configPath(baseConfig)

	return []kong.Option{
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.Writers(stdio.Out, stdio.Err),
		kong.Exit(exit),
		kong.UsageOnError(),
		kong.ExplicitGroups([]kong.Group{c.Log.group(), c.Pprof.group()}),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			Summary:             true,
			Tree:                true,
			NoExpandSubcommands: true,
		}),
		kong.BindSingletonProvider(ctx),
		kong.Configuration(kong.JSON, config+".json"),
		kong.Configuration(resolveYAML, config+".yaml", config+".yml"),
		kong.Vars{
			cmd.ConfigIdentifier: config,
			cmd.CacheIdentifier:  pkg.CacheDir(),
			"cacheSize":          strconv.Itoa(lru.DefaultCapacity),
		}.CloneWith(c.Log.vars()).CloneWith(c.Pprof.vars()),
	}
}
