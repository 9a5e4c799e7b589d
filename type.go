// FILE: lixenwraith/treeconfig/type.go
package treeconfig

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cast"
)

// Value returns the setting at a dotted path.
// A path that ends at a group fails with ErrNotSetting.
func (n *Node) Value(path string) (any, error) {
	entry, err := n.Lookup(path)
	if err != nil {
		return nil, err
	}
	if entry.IsGroup() {
		return nil, errors.Wrapf(ErrNotSetting, "path %s", path)
	}
	return entry.Value(), nil
}

// String retrieves a string setting, converting numbers and booleans.
// A nil value reads as the empty string.
func (n *Node) String(path string) (string, error) {
	val, err := n.Value(path)
	if err != nil {
		return "", err
	}
	s, err := cast.ToStringE(val)
	if err != nil {
		return "", errors.Wrapf(err, "path %s", path)
	}
	return s, nil
}

// Int64 retrieves an int64 setting. Parsable strings and json.Number are accepted.
func (n *Node) Int64(path string) (int64, error) {
	val, err := n.Value(path)
	if err != nil {
		return 0, err
	}
	if val == nil {
		return 0, errors.Newf("value for path %s is nil, cannot convert to int64", path)
	}
	i, err := cast.ToInt64E(val)
	if err != nil {
		return 0, errors.Wrapf(err, "path %s", path)
	}
	return i, nil
}

// Int retrieves an int setting.
func (n *Node) Int(path string) (int, error) {
	i, err := n.Int64(path)
	return int(i), err
}

// Bool retrieves a boolean setting. Numbers are true when non-zero.
func (n *Node) Bool(path string) (bool, error) {
	val, err := n.Value(path)
	if err != nil {
		return false, err
	}
	if val == nil {
		return false, errors.Newf("value for path %s is nil, cannot convert to bool", path)
	}
	b, err := cast.ToBoolE(val)
	if err != nil {
		return false, errors.Wrapf(err, "path %s", path)
	}
	return b, nil
}

// Float64 retrieves a float64 setting.
func (n *Node) Float64(path string) (float64, error) {
	val, err := n.Value(path)
	if err != nil {
		return 0, err
	}
	if val == nil {
		return 0, errors.Newf("value for path %s is nil, cannot convert to float64", path)
	}
	f, err := cast.ToFloat64E(val)
	if err != nil {
		return 0, errors.Wrapf(err, "path %s", path)
	}
	return f, nil
}

// Duration retrieves a duration setting from strings like "1m30s" or from
// integers (nanoseconds).
func (n *Node) Duration(path string) (time.Duration, error) {
	val, err := n.Value(path)
	if err != nil {
		return 0, err
	}
	d, err := cast.ToDurationE(val)
	if err != nil {
		return 0, errors.Wrapf(err, "path %s", path)
	}
	return d, nil
}

// StringSlice retrieves a sequence setting as strings. A plain string is
// split on whitespace.
func (n *Node) StringSlice(path string) ([]string, error) {
	val, err := n.Value(path)
	if err != nil {
		return nil, err
	}
	s, err := cast.ToStringSliceE(val)
	if err != nil {
		return nil, errors.Wrapf(err, "path %s", path)
	}
	return s, nil
}
