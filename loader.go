// FILE: lixenwraith/treeconfig/loader.go
package treeconfig

import (
	"io"
	"log/slog"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"
)

// LoadOptions configures how a file is read into a Node
type LoadOptions struct {
	// IfExists turns a missing file into a silent no-op
	IfExists bool

	// Format forces a parser; FormatAuto selects by extension
	Format Format

	// Fs is the filesystem files are read from (nil = OS filesystem)
	Fs afero.Fs

	// MaxFileSize rejects larger files (0 = unlimited)
	MaxFileSize int64

	// Logger receives debug records about loading (nil = discard)
	Logger *slog.Logger
}

// DefaultLoadOptions returns the standard load options
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{
		Format: FormatAuto,
		Fs:     afero.NewOsFs(),
	}
}

func (o LoadOptions) fs() afero.Fs {
	if o.Fs == nil {
		return afero.NewOsFs()
	}
	return o.Fs
}

func (o LoadOptions) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.Logger
}

// Load reads a configuration file into n. The file must exist.
func (n *Node) Load(path string) error {
	return n.LoadWithOptions(path, DefaultLoadOptions())
}

// LoadIfExists reads a configuration file into n if the file exists.
func (n *Node) LoadIfExists(path string) error {
	opts := DefaultLoadOptions()
	opts.IfExists = true
	return n.LoadWithOptions(path, opts)
}

// LoadWithOptions reads a configuration file into n. The format comes from
// opts.Format or the file extension; an unknown extension is an error.
//
// Loading extends the tree: groups present in the file are merged into
// existing groups and settings overwrite existing ones. If parsing fails
// nothing is imported; there is no rollback once importing has started.
func (n *Node) LoadWithOptions(path string, opts LoadOptions) error {
	fs := opts.fs()
	logger := opts.logger().With("path", path)

	info, err := fs.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			if opts.IfExists {
				logger.Debug("Config file absent, skipping.")
				return nil
			}
			return errors.Wrapf(ErrConfigNotFound, "load '%s'", path)
		}
		return errors.Wrapf(err, "failed to stat config file '%s'", path)
	}
	if info.IsDir() {
		return errors.Newf("config path '%s' is a directory", path)
	}

	if opts.MaxFileSize > 0 && info.Size() > opts.MaxFileSize {
		return errors.Wrapf(ErrFileTooLarge, "config file '%s' exceeds maximum size %d bytes", path, opts.MaxFileSize)
	}

	file, err := fs.Open(path)
	if err != nil {
		return errors.Wrapf(err, "failed to open config file '%s'", path)
	}
	defer file.Close()

	var reader io.Reader = file
	if opts.MaxFileSize > 0 {
		reader = io.LimitReader(file, opts.MaxFileSize)
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return errors.Wrapf(err, "failed to read config file '%s'", path)
	}

	format, err := resolveFormat(path, opts.Format, data)
	if err != nil {
		return err
	}
	logger.Debug("Loading config file.", "format", format, "bytes", len(data))

	if err := n.loadBytes(data, format, path); err != nil {
		return err
	}

	logger.Debug("Config file loaded.", "settings", len(n.Paths()))
	return nil
}

// LoadBytes parses data in the given format and imports it into n.
func (n *Node) LoadBytes(data []byte, format Format) error {
	if format == FormatAuto {
		format = detectFormatFromContent(data)
		if format == FormatAuto {
			return errors.Wrap(ErrUnsupportedFormat, "unable to determine format from content")
		}
	}
	return n.loadBytes(data, format, "<bytes>")
}

func (n *Node) loadBytes(data []byte, format Format, source string) error {
	parser, ok := parserFor(format)
	if !ok {
		return errors.Wrapf(ErrUnsupportedFormat, "format %q", format)
	}

	parsed, err := parser.Parse(data)
	if err != nil {
		return errors.Mark(errors.Wrapf(err, "failed to parse %s config '%s'", format, source), ErrParse)
	}

	Import(n, parsed)
	return nil
}
