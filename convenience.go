// FILE: lixenwraith/treeconfig/convenience.go
package treeconfig

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

// Quick loads the given files, skipping missing ones, into the root named
// name in the default registry.
func Quick(name string, files ...string) (*Node, error) {
	b := NewBuilder().WithName(name)
	for _, f := range files {
		b.WithOptionalFile(f)
	}
	return b.Build()
}

// MustQuick is like Quick but panics on error
func MustQuick(name string, files ...string) *Node {
	n, err := Quick(name, files...)
	if err != nil {
		panic(fmt.Sprintf("config initialization failed: %v", err))
	}
	return n
}

// Validate checks that every required dotted path resolves to a setting.
func (n *Node) Validate(required ...string) error {
	var missing []string

	for _, path := range required {
		entry, err := n.Lookup(path)
		switch {
		case err != nil:
			missing = append(missing, path)
		case entry.IsGroup():
			missing = append(missing, path+" (group)")
		}
	}

	if len(missing) > 0 {
		return errors.Wrapf(ErrNameNotFound, "missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Debug returns a formatted listing of every setting path with its value and type
func (n *Node) Debug() string {
	var b strings.Builder
	b.WriteString("Configuration Debug Info:\n")

	_ = n.Walk(func(path string, value any) error {
		fmt.Fprintf(&b, "  %s = %v (%T)\n", path, value, value)
		return nil
	})

	return b.String()
}
