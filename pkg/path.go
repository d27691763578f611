package pkg

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
)

// Environment variables overriding the per-user directories.
var (
	ConfigDirEnv = strings.ToUpper(Name) + "_CONFIG_DIR"
	CacheDirEnv  = strings.ToUpper(Name) + "_CACHE_DIR"
)

// debugBinary matches the executable names produced by dlv.
var debugBinary = regexp.MustCompile(`^__debug_bin\d*$`)

// Prefix returns the base name of the per-user configuration and cache
// directories: the executable's name without extension or leading dots.
// Binaries built by the dlv debugger use [Name].
//
//nolint:gochecknoglobals
var Prefix = sync.OnceValue(func() string {
	exe, err := os.Executable()
	if err != nil {
		exe = os.Args[0]
	}

	return prefix(exe)
})

func prefix(exe string) string {
	base := filepath.Base(exe)
	base = strings.TrimLeft(strings.TrimSuffix(base, filepath.Ext(base)), ".")

	if base == "" || debugBinary.MatchString(base) {
		return Name
	}

	return base
}

// ConfigDir returns the directory holding config.json and config.yaml.
// [ConfigDirEnv] overrides it.
//
//nolint:gochecknoglobals
var ConfigDir = sync.OnceValue(func() string {
	return userDir(ConfigDirEnv, os.UserConfigDir, ".config")
})

// CacheDir returns the directory for transient files such as the REPL
// history and profiles. [CacheDirEnv] overrides it.
//
//nolint:gochecknoglobals
var CacheDir = sync.OnceValue(func() string {
	return userDir(CacheDirEnv, os.UserCacheDir, ".cache")
})

// userDir returns the directory named by the environment variable env, or
// [Prefix] beneath the platform directory returned by base. Without a
// platform directory it falls back to hidden beneath the home directory,
// then to the working directory.
func userDir(env string, base func() (string, error), hidden string) string {
	if dir := os.Getenv(env); dir != "" {
		return dir
	}

	dir, err := base()
	if err != nil {
		if home, herr := os.UserHomeDir(); herr == nil {
			dir = filepath.Join(home, hidden)
		} else if dir, err = os.Getwd(); err != nil {
			dir = "."
		}
	}

	return filepath.Join(dir, Prefix())
}
