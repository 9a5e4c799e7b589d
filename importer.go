// FILE: lixenwraith/treeconfig/importer.go
package treeconfig

// Import folds a parsed nested mapping into root. A value that is itself a
// mapping becomes a group (created on first use, extended afterwards) and is
// imported recursively; any other value, sequences included, is stored as a
// setting verbatim.
//
// Every key of every nested mapping is visited exactly once. Import does not
// fail; malformed input is rejected earlier by the parser.
func Import(root *Node, data map[string]any) {
	for key, value := range data {
		if nested, isMap := asMapping(value); isMap {
			Import(root.Group(key), nested)
			continue
		}
		root.Set(key, value)
	}
}

// Import folds data into n. See the package-level Import.
func (n *Node) Import(data map[string]any) {
	Import(n, data)
}
