package selection

import (
	"strings"

	"repo2md/pkg/classify"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Filter narrows which nodes are shown. The zero Filter shows everything.
// Filtering never changes check states.
type Filter struct {
	Extensions map[string]bool // Allowed extension tokens; nil allows all. Directories always pass.
	Query      string          // Case-insensitive match against the display name.
	Fuzzy      bool            // Use fuzzy matching instead of substring.
}

// IsZero reports whether the filter lets everything through.
func (f Filter) IsZero() bool {
	return f.Extensions == nil && f.Query == ""
}

func (f Filter) matchQuery(s string) bool {
	if f.Query == "" {
		return true
	}
	if f.Fuzzy {
		return fuzzy.MatchFold(f.Query, s)
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(f.Query))
}

func (f Filter) matchExtension(n Node) bool {
	if n.IsDir || f.Extensions == nil {
		return true
	}
	return f.Extensions[classify.Extension(n.Name)]
}

// Visible reports whether id matches f or has a descendant that does.
func (t *Tree) Visible(id NodeID, f Filter) bool {
	if !t.valid(id) {
		return false
	}
	if f.IsZero() {
		return true
	}
	n := t.nodes[id]
	if f.matchExtension(n) && f.matchQuery(n.Name) {
		return true
	}
	for _, c := range n.Children {
		if t.Visible(c, f) {
			return true
		}
	}
	return false
}

// Restrict unchecks every file whose extension is not allowed by f or whose
// relative path does not match f's query.
func (t *Tree) Restrict(f Filter) {
	if f.IsZero() {
		return
	}
	for i := range t.nodes {
		n := &t.nodes[i]
		if n.IsDir {
			continue
		}
		if !f.matchExtension(*n) || !f.matchQuery(n.RelPath) {
			n.State = Unchecked
		}
	}
	t.recomputeDirs()
}
