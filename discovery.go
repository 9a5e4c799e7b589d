// FILE: lixenwraith/treeconfig/discovery.go
package treeconfig

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/afero"
)

// FileDiscoveryOptions configures automatic config file discovery
type FileDiscoveryOptions struct {
	// Base name of config file (without extension)
	Name string

	// Extensions to try (in order)
	Extensions []string

	// Custom search paths (in addition to defaults)
	Paths []string

	// Environment variable to check for explicit path
	EnvVar string

	// CLI flag to check (e.g., "--config" or "-c")
	CLIFlag string

	// Whether to search in XDG config directories
	UseXDG bool

	// Whether to search in current directory
	UseCurrentDir bool

	// Filesystem searched for candidate files (nil = OS filesystem)
	Fs afero.Fs
}

// DefaultDiscoveryOptions returns sensible defaults
func DefaultDiscoveryOptions(appName string) FileDiscoveryOptions {
	return FileDiscoveryOptions{
		Name:          appName,
		Extensions:    []string{".yaml", ".yml", ".toml", ".json", ".hcl"},
		EnvVar:        strings.ToUpper(strings.ReplaceAll(appName, "-", "_")) + "_CONFIG",
		CLIFlag:       "--config",
		UseXDG:        true,
		UseCurrentDir: true,
	}
}

// Discover finds a configuration file. Order: CLI flag in args, environment
// variable, custom paths, current directory, then XDG config directories
// ($XDG_CONFIG_HOME/<name>/ and $XDG_CONFIG_DIRS/<name>/).
// Explicit paths from the flag or variable are returned without a stat.
func Discover(opts FileDiscoveryOptions, args []string) (string, bool) {
	if path, ok := flagValue(args, opts.CLIFlag); ok {
		return path, true
	}

	if opts.EnvVar != "" {
		if path := os.Getenv(opts.EnvVar); path != "" {
			return path, true
		}
	}

	searchPaths := append([]string(nil), opts.Paths...)
	if opts.UseCurrentDir {
		if cwd, err := os.Getwd(); err == nil {
			searchPaths = append(searchPaths, cwd)
		}
	}
	if opts.UseXDG {
		for _, dir := range append([]string{xdg.ConfigHome}, xdg.ConfigDirs...) {
			searchPaths = append(searchPaths, filepath.Join(dir, opts.Name))
		}
	}

	fs := opts.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}

	for _, dir := range searchPaths {
		for _, ext := range opts.Extensions {
			path := filepath.Join(dir, opts.Name+ext)
			if info, err := fs.Stat(path); err == nil && !info.IsDir() {
				return path, true
			}
		}
	}

	// Not finding a file is not an error; the tree keeps defaults
	return "", false
}

// flagValue returns the value of flag in args, as "flag value" or "flag=value".
func flagValue(args []string, flag string) (string, bool) {
	if flag == "" {
		return "", false
	}
	for i, arg := range args {
		if arg == flag && i+1 < len(args) {
			return args[i+1], true
		}
		if value, ok := strings.CutPrefix(arg, flag+"="); ok {
			return value, true
		}
	}
	return "", false
}

// stripFlag returns args without any occurrence of flag and its value.
func stripFlag(args []string, flag string) []string {
	if flag == "" || !slices.ContainsFunc(args, func(arg string) bool {
		return arg == flag || strings.HasPrefix(arg, flag+"=")
	}) {
		return args
	}

	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == flag:
			if i+1 < len(args) {
				i++ // skip the value
			}
		case strings.HasPrefix(arg, flag+"="):
		default:
			out = append(out, arg)
		}
	}
	return out
}
