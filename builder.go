// FILE: lixenwraith/treeconfig/builder.go
package treeconfig

import (
	"fmt"
	"log/slog"

	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"
)

// ValidatorFunc checks a fully built tree and returns an error if it is unusable.
type ValidatorFunc func(n *Node) error

type fileSource struct {
	path     string
	optional bool
}

// Builder provides a fluent interface for building a configuration tree.
// Sources are applied in increasing precedence:
// defaults, files (in the order added), environment, arguments.
type Builder struct {
	node         *Node
	opts         LoadOptions
	defaults     []func(*Node)
	structs      []any
	files        []fileSource
	args         []string
	envPrefix    string
	envTransform EnvTransformFunc
	useEnv       bool
	discovery    *FileDiscoveryOptions
	validators   []ValidatorFunc
}

// NewBuilder creates a builder targeting a fresh root node
func NewBuilder() *Builder {
	return &Builder{
		node: New(),
		opts: DefaultLoadOptions(),
	}
}

// WithName targets the root registered under name in the default registry
func (b *Builder) WithName(name string) *Builder {
	b.node = For(name)
	return b
}

// WithNode targets an existing node
func (b *Builder) WithNode(n *Node) *Builder {
	if n != nil {
		b.node = n
	}
	return b
}

// WithDefaults adds a populate function applied before any file is loaded
func (b *Builder) WithDefaults(populate func(*Node)) *Builder {
	if populate != nil {
		b.defaults = append(b.defaults, populate)
	}
	return b
}

// WithStructDefaults adds a struct whose fields seed the tree (see SetStruct)
func (b *Builder) WithStructDefaults(defaults any) *Builder {
	b.structs = append(b.structs, defaults)
	return b
}

// WithFile adds a configuration file that must exist
func (b *Builder) WithFile(path string) *Builder {
	b.files = append(b.files, fileSource{path: path})
	return b
}

// WithOptionalFile adds a configuration file that is skipped if missing
func (b *Builder) WithOptionalFile(path string) *Builder {
	b.files = append(b.files, fileSource{path: path, optional: true})
	return b
}

// WithFileDiscovery adds the first file found by Discover as an optional file.
// Discovery runs at Build time so it sees the arguments set by WithArgs, and
// searches the builder's filesystem unless opts.Fs is set. The discovery flag
// and its value are not applied as settings.
func (b *Builder) WithFileDiscovery(opts FileDiscoveryOptions) *Builder {
	b.discovery = &opts
	return b
}

// WithFormat forces the format of every file
func (b *Builder) WithFormat(format Format) *Builder {
	b.opts.Format = format
	return b
}

// WithFs sets the filesystem files are read from
func (b *Builder) WithFs(fs afero.Fs) *Builder {
	b.opts.Fs = fs
	return b
}

// WithLogger sets the logger used while loading
func (b *Builder) WithLogger(logger *slog.Logger) *Builder {
	b.opts.Logger = logger
	return b
}

// WithMaxFileSize rejects configuration files larger than size bytes
func (b *Builder) WithMaxFileSize(size int64) *Builder {
	b.opts.MaxFileSize = size
	return b
}

// WithArgs sets the command-line arguments applied last
func (b *Builder) WithArgs(args []string) *Builder {
	b.args = args
	return b
}

// WithEnvPrefix enables environment overrides with the given prefix
func (b *Builder) WithEnvPrefix(prefix string) *Builder {
	b.envPrefix = prefix
	b.useEnv = true
	return b
}

// WithEnvTransform enables environment overrides with a custom name mapping
func (b *Builder) WithEnvTransform(fn EnvTransformFunc) *Builder {
	b.envTransform = fn
	b.useEnv = true
	return b
}

// WithValidator adds a validation function that runs at the end of the build process
// Multiple validators can be added and are executed in the order they are added
func (b *Builder) WithValidator(fn ValidatorFunc) *Builder {
	if fn != nil {
		b.validators = append(b.validators, fn)
	}
	return b
}

// Build applies every source to the target node and runs the validators.
// The first failure stops the build; the node keeps whatever was applied.
func (b *Builder) Build() (*Node, error) {
	logger := b.opts.logger()

	for _, s := range b.structs {
		if err := b.node.SetStruct(s); err != nil {
			return nil, errors.Wrap(err, "failed to set struct defaults")
		}
	}
	for _, populate := range b.defaults {
		b.node.Configure(populate)
	}

	files := b.files
	args := b.args
	if b.discovery != nil {
		discovery := *b.discovery
		if discovery.Fs == nil {
			discovery.Fs = b.opts.fs()
		}
		if path, found := Discover(discovery, args); found {
			logger.Debug("Discovered config file.", "path", path)
			files = append(files, fileSource{path: path, optional: true})
		}
		// The discovery flag names a file, not a setting
		args = stripFlag(args, discovery.CLIFlag)
	}

	for _, f := range files {
		opts := b.opts
		opts.IfExists = f.optional
		if err := b.node.LoadWithOptions(f.path, opts); err != nil {
			return nil, err
		}
	}

	if b.useEnv {
		if err := b.node.ApplyEnv(b.envPrefix, b.envTransform); err != nil {
			return nil, errors.Wrap(err, "failed to apply environment")
		}
	}

	if len(args) > 0 {
		if err := b.node.ApplyArgs(args); err != nil {
			return nil, errors.Wrap(err, "failed to apply arguments")
		}
	}

	for _, validator := range b.validators {
		if err := validator(b.node); err != nil {
			return nil, errors.Wrap(err, "configuration validation failed")
		}
	}

	return b.node, nil
}

// MustBuild is like Build but panics on error
func (b *Builder) MustBuild() *Node {
	n, err := b.Build()
	if err != nil {
		panic(fmt.Sprintf("config build failed: %v", err))
	}
	return n
}

// BuildAndScan builds the tree and decodes it into target.
func (b *Builder) BuildAndScan(target any) error {
	n, err := b.Build()
	if err != nil {
		return err
	}
	if err := n.Scan("", target); err != nil {
		return errors.Wrap(err, "failed to scan final config into target")
	}
	return nil
}
