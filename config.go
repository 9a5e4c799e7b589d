// FILE: lixenwraith/treeconfig/config.go
package treeconfig

import (
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
)

// Node is one level of a configuration tree. It holds named settings (leaf
// values) and named groups (child nodes). The two namespaces are independent;
// when a name exists in both, lookups prefer the group.
//
// A Node exclusively owns its groups and has no reference to its parent.
// Node does no locking: a tree shared across goroutines must be synchronized
// by the caller, typically by finishing the build phase before readers start.
type Node struct {
	settings map[string]any
	groups   map[string]*Node
}

// New creates an empty Node.
func New() *Node {
	return &Node{
		settings: make(map[string]any),
		groups:   make(map[string]*Node),
	}
}

// Configure runs populate with n as its receiver. It is the programmatic way
// to build a tree without holding handles to intermediate groups.
func (n *Node) Configure(populate func(*Node)) {
	if populate == nil {
		return
	}
	populate(n)
}

// Group returns the child group called name, creating an empty one on first
// use. Each populate function is applied to the group in order, whether the
// group was just created or already existed, so repeated calls extend the
// same group.
func (n *Node) Group(name string, populate ...func(*Node)) *Node {
	g, exists := n.groups[name]
	if !exists {
		g = New()
		n.groups[name] = g
	}
	for _, fn := range populate {
		g.Configure(fn)
	}
	return g
}

// Set stores value under key, replacing any previous value.
func (n *Node) Set(key string, value any) {
	n.settings[key] = value
}

// Get returns the setting stored under key on this node only.
// Groups and other nodes are not searched.
func (n *Node) Get(key string) (any, bool) {
	val, exists := n.settings[key]
	return val, exists
}

// HasGroup reports whether n has a child group called name.
func (n *Node) HasGroup(name string) bool {
	_, exists := n.groups[name]
	return exists
}

// HasSetting reports whether n has a setting called key.
func (n *Node) HasSetting(key string) bool {
	_, exists := n.settings[key]
	return exists
}

// Resolve looks name up in the group namespace, then in the settings.
func (n *Node) Resolve(name string) (Entry, error) {
	if g, exists := n.groups[name]; exists {
		return Entry{kind: KindGroup, name: name, group: g}, nil
	}
	if val, exists := n.settings[name]; exists {
		return Entry{kind: KindSetting, name: name, value: val}, nil
	}
	return Entry{}, errors.Wrapf(ErrNameNotFound, "resolve %q", name)
}

// Lookup resolves a dotted path such as "database.primary.host" by calling
// Resolve once per segment.
func (n *Node) Lookup(path string) (Entry, error) {
	if path == "" {
		return Entry{}, errors.Wrap(ErrInvalidPath, "empty path")
	}

	entry := Entry{kind: KindGroup, group: n}
	for _, segment := range strings.Split(path, ".") {
		next, err := entry.Resolve(segment)
		if err != nil {
			return Entry{}, errors.Wrapf(err, "lookup %q", path)
		}
		entry = next
	}
	return entry, nil
}

// SetPath stores value at a dotted path, creating intermediate groups.
func (n *Node) SetPath(path string, value any) error {
	segments, err := splitPath(path)
	if err != nil {
		return err
	}

	current := n
	for _, segment := range segments[:len(segments)-1] {
		current = current.Group(segment)
	}
	current.Set(segments[len(segments)-1], value)
	return nil
}

// GroupKeys returns the names of the child groups, sorted.
func (n *Node) GroupKeys() []string {
	return sortedKeys(n.groups)
}

// SettingKeys returns the names of the settings, sorted.
func (n *Node) SettingKeys() []string {
	return sortedKeys(n.settings)
}

// Len returns the number of settings and groups held directly by n.
func (n *Node) Len() int {
	return len(n.settings) + len(n.groups)
}

// Walk calls fn for every setting in the tree in sorted path order.
// Settings shadowed by a group of the same name are skipped.
// Walking stops at the first error returned by fn.
func (n *Node) Walk(fn func(path string, value any) error) error {
	return n.walkSettings("", func(path string, owner *Node, key string) error {
		return fn(path, owner.settings[key])
	})
}

// walkSettings visits visible settings together with the node that owns them.
func (n *Node) walkSettings(prefix string, fn func(path string, owner *Node, key string) error) error {
	names := make(map[string]struct{}, n.Len())
	for key := range n.settings {
		names[key] = struct{}{}
	}
	for key := range n.groups {
		names[key] = struct{}{}
	}

	for _, key := range sortedKeys(names) {
		path := joinPath(prefix, key)
		if g, isGroup := n.groups[key]; isGroup {
			if err := g.walkSettings(path, fn); err != nil {
				return err
			}
			continue
		}
		if err := fn(path, n, key); err != nil {
			return err
		}
	}
	return nil
}

// Paths returns the dotted paths of all visible settings, sorted.
func (n *Node) Paths() []string {
	var paths []string
	_ = n.Walk(func(path string, _ any) error {
		paths = append(paths, path)
		return nil
	})
	return paths
}

// ToMap converts the tree to nested maps. Groups become map[string]any
// values and take the place of same-named settings.
func (n *Node) ToMap() map[string]any {
	out := make(map[string]any, n.Len())
	for key, val := range n.settings {
		out[key] = val
	}
	for key, g := range n.groups {
		out[key] = g.ToMap()
	}
	return out
}

// Clone returns a deep copy of the tree. Setting values are copied by
// assignment, so reference-typed leaves (slices, maps) are shared.
func (n *Node) Clone() *Node {
	clone := New()
	for key, val := range n.settings {
		clone.settings[key] = val
	}
	for key, g := range n.groups {
		clone.groups[key] = g.Clone()
	}
	return clone
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
