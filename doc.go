// FILE: lixenwraith/treeconfig/doc.go

// Package treeconfig provides hierarchical configuration trees for Go
// applications: named groups nesting further groups and scalar settings,
// built programmatically or loaded from YAML, TOML, JSON and HCL files.
//
// Features:
//   - Lazily created groups; repeated population extends, never replaces
//   - Uniform name resolution across groups and settings (Resolve, Lookup)
//   - File loading with format selection by extension
//   - Named roots through a Registry, with a process-wide default
//   - Environment and command-line overrides
//   - Typed accessors and struct decoding
//   - Builder pattern for easy initialization
//
// Quick Start:
//
//	root := treeconfig.For("app", func(c *treeconfig.Node) {
//	    c.Set("name", "demo")
//	    c.Group("database", func(db *treeconfig.Node) {
//	        db.Set("host", "localhost")
//	        db.Set("port", 5432)
//	    })
//	})
//
//	if err := root.LoadIfExists("app.yaml"); err != nil {
//	    log.Fatal(err)
//	}
//
//	host, _ := root.String("database.host")
//	entry, _ := root.Resolve("database") // entry.IsGroup() == true
//
// File mapping: a key whose value is a mapping becomes a group, any other
// value (sequences included) is stored verbatim as a setting.
//
// Precedence with Builder (highest to lowest):
//  1. Command-line arguments (--database.port=6543)
//  2. Environment variables (APP_DATABASE_PORT=6543)
//  3. Configuration files, later files overriding earlier ones
//  4. Defaults
//
// Thread Safety:
// Registry is safe for concurrent use. Node is not: build the tree first,
// then share it read-only, or guard it with your own lock.
package treeconfig
