// File: pkg/document/tree.go
package document

import (
	"sort"
	"strings"
)

// EmptyTreeMarker is the single tree line rendered when nothing is selected.
const EmptyTreeMarker = "(nothing selected)"

// treeNode is a directory in the in-memory path tree; files have nil children.
type treeNode struct {
	name     string
	children map[string]*treeNode
}

func (n *treeNode) isDir() bool { return n.children != nil }

// RenderTree renders forward-slash relative paths as an ASCII tree under rootName/.
// Directories are listed before files, each group by case-insensitive name.
func RenderTree(rootName string, paths []string) string {
	var treeBuilder strings.Builder
	treeBuilder.WriteString(rootName + "/\n")

	if len(paths) == 0 {
		treeBuilder.WriteString("└── " + EmptyTreeMarker + "\n")
		return treeBuilder.String()
	}

	root := &treeNode{children: map[string]*treeNode{}}
	for _, p := range paths {
		parts := strings.Split(p, "/")
		node := root
		for _, part := range parts[:len(parts)-1] {
			child, ok := node.children[part]
			if !ok || !child.isDir() {
				child = &treeNode{name: part, children: map[string]*treeNode{}}
				node.children[part] = child
			}
			node = child
		}
		leaf := parts[len(parts)-1]
		if _, exists := node.children[leaf]; !exists {
			node.children[leaf] = &treeNode{name: leaf}
		}
	}

	renderTreeRecursively(&treeBuilder, root, "")
	return treeBuilder.String()
}

// renderTreeRecursively writes node's children with connectors extending prefix.
func renderTreeRecursively(b *strings.Builder, node *treeNode, prefix string) {
	entries := make([]*treeNode, 0, len(node.children))
	for _, child := range node.children {
		entries = append(entries, child)
	}

	// Sort entries: directories first, then files, alphabetically
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].isDir() != entries[j].isDir() {
			return entries[i].isDir()
		}
		li, lj := strings.ToLower(entries[i].name), strings.ToLower(entries[j].name)
		if li != lj {
			return li < lj
		}
		return entries[i].name < entries[j].name
	})

	for i, entry := range entries {
		connector := "├── "
		extension := "│   "
		if i == len(entries)-1 {
			connector = "└── "
			extension = "    "
		}

		b.WriteString(prefix + connector + entry.name)
		if entry.isDir() {
			b.WriteString("/\n")
			renderTreeRecursively(b, entry, prefix+extension)
			continue
		}
		b.WriteString("\n")
	}
}
