// FILE: lixenwraith/treeconfig/io.go
package treeconfig

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"
)

// EnvTransformFunc converts a configuration path to an environment variable name
type EnvTransformFunc func(path string) string

// ApplyEnv overrides existing settings from environment variables.
// With the default transform, prefix "MYAPP_" maps "server.port" to
// "MYAPP_SERVER_PORT". Only paths already present in the tree are checked.
func (n *Node) ApplyEnv(prefix string, transform EnvTransformFunc) error {
	if transform == nil {
		transform = defaultEnvTransform(prefix)
	}

	type override struct {
		owner *Node
		key   string
		value string
	}

	var found []override
	err := n.walkSettings("", func(path string, owner *Node, key string) error {
		envVar := transform(path)
		value, exists := os.LookupEnv(envVar)
		if !exists {
			return nil
		}
		if len(value) > MaxValueSize {
			return errors.Wrapf(ErrValueSize, "environment variable %s", envVar)
		}
		found = append(found, override{owner: owner, key: key, value: value})
		return nil
	})
	if err != nil {
		return err
	}

	for _, o := range found {
		o.owner.Set(o.key, parseValue(o.value))
	}
	return nil
}

// ApplyArgs sets values from command-line arguments of the form
// "--key.subkey value", "--key.subkey=value" or "--booleanflag".
// Missing groups are created.
func (n *Node) ApplyArgs(args []string) error {
	overrides, err := parseArgs(args)
	if err != nil {
		return err
	}
	for _, o := range overrides {
		if err := n.SetPath(o.path, o.value); err != nil {
			return err
		}
	}
	return nil
}

// defaultEnvTransform creates the default environment variable transformer
func defaultEnvTransform(prefix string) EnvTransformFunc {
	return func(path string) string {
		env := strings.ReplaceAll(path, ".", "_")
		env = strings.ReplaceAll(env, "-", "_")
		env = strings.ToUpper(env)
		return prefix + env
	}
}

// parseValue recognizes booleans and strips surrounding quotes.
// Everything else stays a string; typed accessors convert on read.
func parseValue(s string) any {
	if s == "true" {
		return true
	}
	if s == "false" {
		return false
	}

	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}

	return s
}

type argOverride struct {
	path  string
	value any
}

// parseArgs processes command-line arguments in order.
func parseArgs(args []string) ([]argOverride, error) {
	var result []argOverride
	i := 0
	for i < len(args) {
		arg := args[i]
		if !strings.HasPrefix(arg, "--") {
			// Skip non-flag arguments
			i++
			continue
		}

		argContent := strings.TrimPrefix(arg, "--")
		if argContent == "" {
			// "--" separator
			i++
			continue
		}

		var keyPath, valueStr string
		if key, val, hasValue := strings.Cut(argContent, "="); hasValue {
			keyPath, valueStr = key, val
			i++
		} else {
			keyPath = argContent
			// Boolean flag if the next arg is another flag or there is none
			if i+1 >= len(args) || strings.HasPrefix(args[i+1], "--") {
				valueStr = "true"
				i++
			} else {
				valueStr = args[i+1]
				i += 2
			}
		}

		if _, err := splitPath(keyPath); err != nil {
			return nil, errors.Wrapf(err, "command-line argument %q", arg)
		}

		result = append(result, argOverride{path: keyPath, value: parseValue(valueStr)})
	}

	return result, nil
}

// Dump writes the tree to w in the given format.
func (n *Node) Dump(w io.Writer, format Format) error {
	data, err := encode(format, n.ToMap())
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Save writes the tree to path atomically. The format comes from the
// extension when format is FormatAuto.
func (n *Node) Save(path string, format Format) error {
	return n.SaveWithOptions(path, LoadOptions{Format: format})
}

// SaveWithOptions is Save using opts.Fs and opts.Format. Other options are ignored.
func (n *Node) SaveWithOptions(path string, opts LoadOptions) error {
	format := opts.Format
	if format == FormatAuto {
		format = FormatFromPath(path)
		if format == FormatAuto {
			return errors.Wrapf(ErrUnsupportedFormat, "unable to determine format for file '%s'", path)
		}
	}

	data, err := encode(format, n.ToMap())
	if err != nil {
		return err
	}
	return atomicWriteFile(opts.fs(), path, data)
}

// atomicWriteFile writes to a temporary file in the target directory and
// renames it into place.
func atomicWriteFile(fs afero.Fs, path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := fs.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, "failed to create directory '%s'", dir)
	}

	tempFile, err := afero.TempFile(fs, dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.Wrap(err, "failed to create temporary file")
	}

	tempPath := tempFile.Name()
	renamed := false
	defer func() {
		if !renamed {
			_ = fs.Remove(tempPath)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		tempFile.Close()
		return errors.Wrapf(err, "failed to write temporary file '%s'", tempPath)
	}

	if err := tempFile.Sync(); err != nil {
		tempFile.Close()
		return errors.Wrapf(err, "failed to sync temporary file '%s'", tempPath)
	}

	if err := tempFile.Close(); err != nil {
		return errors.Wrapf(err, "failed to close temporary file '%s'", tempPath)
	}

	if err := fs.Chmod(tempPath, 0644); err != nil {
		return errors.Wrap(err, "failed to set permissions")
	}

	if err := fs.Rename(tempPath, path); err != nil {
		return errors.Wrapf(err, "failed to rename temporary file to '%s'", path)
	}
	renamed = true

	return nil
}
