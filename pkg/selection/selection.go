// Package selection holds the tri-state checkbox tree built from a scan.
//
// Nodes live in an arena owned by Tree and refer to each other by index.
// After every mutation a directory's state is the aggregate of its direct
// children: Checked when all are checked, Unchecked when all are unchecked,
// Partial otherwise.
package selection

import (
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"

	"repo2md/pkg/scan"

	"github.com/bmatcuk/doublestar/v4"
)

var (
	// ErrPartialToggle is returned when a caller tries to set Partial directly.
	ErrPartialToggle = errors.New("partial state cannot be set directly")
	// ErrUnknownNode is returned for a NodeID that does not belong to the tree.
	ErrUnknownNode = errors.New("unknown node")
)

// NodeID indexes a node in its Tree.
type NodeID int

// NoNode is the parent of the root.
const NoNode NodeID = -1

// State is a checkbox state.
type State int

const (
	Unchecked State = iota
	Checked
	Partial
)

func (s State) String() string {
	switch s {
	case Unchecked:
		return "unchecked"
	case Checked:
		return "checked"
	case Partial:
		return "partial"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Node is a directory or file in the tree.
type Node struct {
	Name     string
	IsDir    bool
	Children []NodeID // Insertion order; see DisplayChildren for presentation order.
	Parent   NodeID
	RelPath  string // Forward-slash path; empty for the root.
	Size     int64  // Files only.
	State    State
}

// Tree is the arena of nodes. Index 0 is the root directory.
// A Tree is not safe for concurrent use.
type Tree struct {
	nodes  []Node
	byPath map[string]NodeID
}

// Build creates a tree with every entry unchecked. Parents are always
// created before their children, so a node's index is larger than its parent's.
func Build(entries map[string]scan.Entry) *Tree {
	t := &Tree{
		nodes:  []Node{{IsDir: true, Parent: NoNode}},
		byPath: make(map[string]NodeID, len(entries)),
	}

	paths := make([]string, 0, len(entries))
	for p := range entries {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, p := range paths {
		parts := strings.Split(p, "/")
		parent := NodeID(0)
		for i, part := range parts[:len(parts)-1] {
			dirPath := strings.Join(parts[:i+1], "/")
			id, ok := t.byPath[dirPath]
			if !ok {
				id = t.add(Node{Name: part, IsDir: true, Parent: parent, RelPath: dirPath})
			}
			parent = id
		}
		t.add(Node{
			Name:    parts[len(parts)-1],
			Parent:  parent,
			RelPath: p,
			Size:    entries[p].Size,
		})
	}
	return t
}

func (t *Tree) add(n Node) NodeID {
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, n)
	t.byPath[n.RelPath] = id
	t.nodes[n.Parent].Children = append(t.nodes[n.Parent].Children, id)
	return id
}

// Root returns the root directory's ID.
func (t *Tree) Root() NodeID { return 0 }

// Len returns the number of nodes including the root.
func (t *Tree) Len() int { return len(t.nodes) }

// Node returns a copy of the node with the given ID.
func (t *Tree) Node(id NodeID) (Node, error) {
	if !t.valid(id) {
		return Node{}, fmt.Errorf("node %d: %w", id, ErrUnknownNode)
	}
	n := t.nodes[id]
	n.Children = append([]NodeID(nil), n.Children...)
	return n, nil
}

// Lookup finds a file or directory by relative path.
func (t *Tree) Lookup(relPath string) (NodeID, bool) {
	id, ok := t.byPath[relPath]
	return id, ok
}

func (t *Tree) valid(id NodeID) bool {
	return id >= 0 && int(id) < len(t.nodes)
}

// Toggle sets id and all of its descendants to state, then re-derives every
// ancestor up to the root.
func (t *Tree) Toggle(id NodeID, state State) error {
	if state == Partial {
		return ErrPartialToggle
	}
	if state != Checked && state != Unchecked {
		return fmt.Errorf("invalid state %v", state)
	}
	if !t.valid(id) {
		return fmt.Errorf("node %d: %w", id, ErrUnknownNode)
	}

	stack := []NodeID{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		t.nodes[cur].State = state
		stack = append(stack, t.nodes[cur].Children...)
	}

	for p := t.nodes[id].Parent; p != NoNode; p = t.nodes[p].Parent {
		t.nodes[p].State = t.aggregate(p)
	}
	return nil
}

// aggregate derives a directory state from its direct children. A directory
// without children keeps its current state.
func (t *Tree) aggregate(id NodeID) State {
	children := t.nodes[id].Children
	if len(children) == 0 {
		return t.nodes[id].State
	}
	var checked, unchecked int
	for _, c := range children {
		switch t.nodes[c].State {
		case Checked:
			checked++
		case Unchecked:
			unchecked++
		}
	}
	switch {
	case checked == len(children):
		return Checked
	case unchecked == len(children):
		return Unchecked
	default:
		return Partial
	}
}

// recomputeDirs re-derives every directory bottom-up after leaf states
// were changed in bulk.
func (t *Tree) recomputeDirs() {
	for i := len(t.nodes) - 1; i >= 0; i-- {
		if t.nodes[i].IsDir {
			t.nodes[i].State = t.aggregate(NodeID(i))
		}
	}
}

// SelectedLeaves returns the total size and lexicographically ordered paths
// of every checked file.
func (t *Tree) SelectedLeaves() (int64, []string) {
	var total int64
	var paths []string
	for _, n := range t.nodes {
		if n.IsDir || n.State != Checked {
			continue
		}
		total += n.Size
		paths = append(paths, n.RelPath)
	}
	sort.Strings(paths)
	return total, paths
}

// DisplayChildren returns id's children with directories first, then by
// case-insensitive name.
func (t *Tree) DisplayChildren(id NodeID) []NodeID {
	if !t.valid(id) {
		return nil
	}
	out := append([]NodeID(nil), t.nodes[id].Children...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := t.nodes[out[i]], t.nodes[out[j]]
		if a.IsDir != b.IsDir {
			return a.IsDir
		}
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	})
	return out
}

// SelectAll checks every node.
func (t *Tree) SelectAll() {
	_ = t.Toggle(t.Root(), Checked)
}

// SelectGlobs checks every file matching at least one doublestar pattern.
func (t *Tree) SelectGlobs(patterns []string) error {
	return t.setGlobs(patterns, Checked)
}

// DeselectGlobs unchecks every file matching at least one doublestar pattern.
func (t *Tree) DeselectGlobs(patterns []string) error {
	return t.setGlobs(patterns, Unchecked)
}

func (t *Tree) setGlobs(patterns []string, state State) error {
	if len(patterns) == 0 {
		return nil
	}
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("invalid glob pattern %q: %w", p, doublestar.ErrBadPattern)
		}
	}
	for i := range t.nodes {
		n := &t.nodes[i]
		if n.IsDir {
			continue
		}
		if matchAny(patterns, n.RelPath) {
			n.State = state
		}
	}
	t.recomputeDirs()
	return nil
}

// matchAny matches relPath against each pattern. A pattern without a slash
// also matches the base name, so "*.go" selects Go files at any depth.
func matchAny(patterns []string, relPath string) bool {
	base := path.Base(relPath)
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, relPath); ok {
			return true
		}
		if !strings.Contains(p, "/") {
			if ok, _ := doublestar.Match(p, base); ok {
				return true
			}
		}
	}
	return false
}
