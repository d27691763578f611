package cli

import (
	"os"
	"path/filepath"

	"github.com/ardnew/mfmt/pkg"
)

// baseConfig is the base name of the configuration files. Loaders append
// the format extension.
const baseConfig = "config"

// dirMode is the permission mode of created directories.
const dirMode os.FileMode = 0o700

// configPath joins elem onto [pkg.ConfigDir].
func configPath(elem ...string) string {
	return filepath.Join(pkg.ConfigDir(), filepath.Join(elem...))
}

// mkdirAllRequired creates the configuration and cache directories.
func mkdirAllRequired() error {
	for _, dir := range []string{pkg.ConfigDir(), pkg.CacheDir()} {
		if err := os.MkdirAll(dir, dirMode); err != nil {
			return err
		}
	}

	return nil
}
