// FILE: lixenwraith/treeconfig/entry.go
package treeconfig

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Kind tells which namespace an Entry came from.
type Kind int

const (
	// KindGroup marks an entry that refers to a child Node
	KindGroup Kind = iota + 1
	// KindSetting marks an entry that holds a leaf value
	KindSetting
)

func (k Kind) String() string {
	switch k {
	case KindGroup:
		return "group"
	case KindSetting:
		return "setting"
	default:
		return "invalid"
	}
}

// Entry is the result of resolving a name: either a group or a setting value.
// The zero Entry is invalid; a name that is not found yields an error instead.
type Entry struct {
	kind  Kind
	name  string
	group *Node
	value any
}

// Kind returns the namespace the entry was found in.
func (e Entry) Kind() Kind { return e.kind }

// Name returns the last path segment that produced the entry.
func (e Entry) Name() string { return e.name }

// IsGroup reports whether the entry refers to a group.
func (e Entry) IsGroup() bool { return e.kind == KindGroup }

// Group returns the referenced node if the entry is a group.
func (e Entry) Group() (*Node, bool) {
	if e.kind != KindGroup {
		return nil, false
	}
	return e.group, true
}

// Value returns the setting value. It is nil for groups.
func (e Entry) Value() any {
	if e.kind != KindSetting {
		return nil
	}
	return e.value
}

// Resolve continues resolution from a group entry, allowing chained
// lookups like root.Resolve("a") -> .Resolve("b").
func (e Entry) Resolve(name string) (Entry, error) {
	if e.kind != KindGroup {
		return Entry{}, errors.Wrapf(ErrNotGroup, "cannot resolve %q under setting %q", name, e.name)
	}
	return e.group.Resolve(name)
}

func (e Entry) String() string {
	switch e.kind {
	case KindGroup:
		return fmt.Sprintf("group(%s)", e.name)
	case KindSetting:
		return fmt.Sprintf("%v", e.value)
	default:
		return "<invalid>"
	}
}
