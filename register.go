// FILE: lixenwraith/treeconfig/register.go
package treeconfig

import (
	"reflect"
	"strings"

	"github.com/cockroachdb/errors"
)

// SetStruct stores the exported fields of a struct (or struct pointer) on n.
// Nested structs become groups; other fields become settings. Field names
// come from the `config` tag, or the field name if untagged; "-" skips a field.
// Embedded structs are flattened into the enclosing level.
// It is typically used to seed defaults before files are loaded.
func (n *Node) SetStruct(structWithDefaults any) error {
	v := reflect.ValueOf(structWithDefaults)

	// Handle pointer or direct struct value
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return errors.New("SetStruct requires a non-nil struct pointer or value")
		}
		v = v.Elem()
	}

	if v.Kind() != reflect.Struct {
		return errors.Newf("SetStruct requires a struct or struct pointer, got %T", structWithDefaults)
	}

	n.setFields(v)
	return nil
}

func (n *Node) setFields(v reflect.Value) {
	t := v.Type()

	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		fieldValue := v.Field(i)

		if !field.IsExported() {
			continue
		}

		tag := field.Tag.Get(TagName)
		if tag == "-" {
			continue
		}

		key := field.Name
		if name := tagName(tag); name != "" {
			key = name
		}

		isStruct := fieldValue.Kind() == reflect.Struct && !isLeafStruct(fieldValue.Type())
		isPtrToStruct := fieldValue.Kind() == reflect.Ptr &&
			fieldValue.Type().Elem().Kind() == reflect.Struct &&
			!isLeafStruct(fieldValue.Type().Elem())

		if isPtrToStruct {
			if fieldValue.IsNil() {
				// Nil pointers carry no defaults
				continue
			}
			fieldValue = fieldValue.Elem()
			isStruct = true
		}

		if isStruct {
			// Embedded structs share the parent's level, as Scan squashes them
			if field.Anonymous {
				n.setFields(fieldValue)
				continue
			}
			n.Group(key).setFields(fieldValue)
			continue
		}

		n.Set(key, fieldValue.Interface())
	}
}

// isLeafStruct reports struct types stored as single values, like time.Time
// and url.URL.
func isLeafStruct(t reflect.Type) bool {
	switch t.PkgPath() {
	case "time", "net/url", "net":
		return true
	}
	return false
}

func tagName(tag string) string {
	name, _, _ := strings.Cut(tag, ",")
	return name
}
