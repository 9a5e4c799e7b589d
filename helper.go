// FILE: lixenwraith/treeconfig/helper.go
package treeconfig

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

// splitPath validates a dot-separated path and returns its segments.
func splitPath(path string) ([]string, error) {
	if path == "" {
		return nil, errors.Wrap(ErrInvalidPath, "empty path")
	}

	segments := strings.Split(path, ".")
	for _, segment := range segments {
		if !isValidKeySegment(segment) {
			return nil, errors.Wrapf(ErrInvalidPath, "invalid segment %q in path %q", segment, path)
		}
	}
	return segments, nil
}

func joinPath(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

// isValidKeySegment checks that a segment is a bare key: ASCII letters,
// digits, underscores and dashes.
func isValidKeySegment(s string) bool {
	if len(s) == 0 {
		return false
	}

	for _, r := range s {
		isLetter := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		isDigit := r >= '0' && r <= '9'

		if !(isLetter || isDigit || r == '_' || r == '-') {
			return false
		}
	}
	return true
}

// asMapping reports whether value is a nested mapping and returns it with
// string keys. yaml.v3 yields map[any]any when a mapping has non-string keys.
func asMapping(value any) (map[string]any, bool) {
	switch m := value.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, v := range m {
			out[keyString(k)] = v
		}
		return out, true
	default:
		return nil, false
	}
}

func keyString(k any) string {
	if s, ok := k.(string); ok {
		return s
	}
	return fmt.Sprint(k)
}
