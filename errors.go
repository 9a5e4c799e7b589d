// FILE: lixenwraith/treeconfig/errors.go
package treeconfig

import "github.com/cockroachdb/errors"

// Sentinel errors. Callers match them with errors.Is; returned errors carry
// the offending name or path in their message.
var (
	// ErrNameNotFound is returned when a name is neither a group nor a setting of a node.
	ErrNameNotFound = errors.New("name not found")

	// ErrNotGroup is returned when a dotted path tries to descend through a setting.
	ErrNotGroup = errors.New("not a group")

	// ErrNotSetting is returned by typed accessors when a path resolves to a group.
	ErrNotSetting = errors.New("not a setting")

	// ErrConfigNotFound is returned when a configuration file does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")

	// ErrUnsupportedFormat is returned for files whose format cannot be determined or parsed.
	ErrUnsupportedFormat = errors.New("unsupported configuration format")

	// ErrParse marks errors produced by a format parser.
	ErrParse = errors.New("configuration parse error")

	// ErrInvalidPath is returned for empty or malformed dotted paths.
	ErrInvalidPath = errors.New("invalid configuration path")

	// ErrFileTooLarge is returned when a file exceeds LoadOptions.MaxFileSize.
	ErrFileTooLarge = errors.New("configuration file too large")

	// ErrValueSize is returned when an environment value exceeds MaxValueSize.
	ErrValueSize = errors.New("value size exceeds maximum")
)

// MaxValueSize bounds the length of a single value read from the environment.
const MaxValueSize = 1024 * 1024
