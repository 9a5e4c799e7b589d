// FILE: lixenwraith/treeconfig/decode.go
package treeconfig

import (
	"net/url"
	"reflect"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-viper/mapstructure/v2"
)

// TagName is the struct tag Scan reads field names from. Untagged fields
// match keys case-insensitively by field name.
const TagName = "config"

// Scan decodes the subtree at path into target, which must be a non-nil
// pointer to a struct or map. An empty path decodes the whole tree.
// Conversion is weakly typed, so "8080" fills an int field. Embedded structs
// are read from the enclosing level, matching SetStruct.
func (n *Node) Scan(path string, target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return errors.Newf("scan target must be non-nil pointer, got %T", target)
	}

	section := n
	if path != "" {
		entry, err := n.Lookup(path)
		if err != nil {
			return err
		}
		g, isGroup := entry.Group()
		if !isGroup {
			return errors.Wrapf(ErrNotGroup, "path %q refers to a setting of type %T", path, entry.Value())
		}
		section = g
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          TagName,
		WeaklyTypedInput: true,
		DecodeHook:       decodeHook(),
		ZeroFields:       true,
		Squash:           true,
	})
	if err != nil {
		return errors.Wrap(err, "decoder creation failed")
	}

	if err := decoder.Decode(section.ToMap()); err != nil {
		return errors.Wrapf(err, "decode failed for path %q", path)
	}
	return nil
}

// decodeHook returns the composite decode hook for all type conversions
func decodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		// Network types
		mapstructure.StringToIPHookFunc(),
		mapstructure.StringToIPNetHookFunc(),
		stringToURLHookFunc(),

		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToTimeHookFunc(time.RFC3339),
		mapstructure.StringToSliceHookFunc(","),
	)
}

// stringToURLHookFunc handles url.URL conversion
func stringToURLHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String {
			return data, nil
		}
		isPtr := t.Kind() == reflect.Ptr
		targetType := t
		if isPtr {
			targetType = t.Elem()
		}
		if targetType != reflect.TypeOf(url.URL{}) {
			return data, nil
		}

		str := data.(string)
		if len(str) > 2048 {
			return nil, errors.Newf("URL too long: %d bytes", len(str))
		}
		u, err := url.Parse(str)
		if err != nil {
			return nil, errors.Wrap(err, "invalid URL")
		}
		if isPtr {
			return u, nil
		}
		return *u, nil
	}
}
