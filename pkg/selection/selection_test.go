package selection

import (
	"testing"

	"repo2md/pkg/scan"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEntries() map[string]scan.Entry {
	sizes := map[string]int64{
		"README.md":          10,
		"src/main.go":        100,
		"src/util/helper.go": 50,
		"src/util/notes.txt": 5,
		"docs/guide.md":      20,
	}
	entries := make(map[string]scan.Entry, len(sizes))
	for p, s := range sizes {
		entries[p] = scan.Entry{RelPath: p, AbsPath: "/abs/" + p, Size: s}
	}
	return entries
}

func mustLookup(t *testing.T, tree *Tree, rel string) NodeID {
	t.Helper()
	id, ok := tree.Lookup(rel)
	require.True(t, ok, "missing node %s", rel)
	return id
}

// assertAggregate verifies every directory's state against its children.
func assertAggregate(t *testing.T, tree *Tree) {
	t.Helper()
	for i := 0; i < tree.Len(); i++ {
		n, err := tree.Node(NodeID(i))
		require.NoError(t, err)
		if !n.IsDir || len(n.Children) == 0 {
			continue
		}
		var checked, unchecked int
		for _, c := range n.Children {
			cn, _ := tree.Node(c)
			switch cn.State {
			case Checked:
				checked++
			case Unchecked:
				unchecked++
			}
		}
		want := Partial
		if checked == len(n.Children) {
			want = Checked
		} else if unchecked == len(n.Children) {
			want = Unchecked
		}
		assert.Equal(t, want, n.State, "directory %q", n.RelPath)
	}
}

func TestBuild(t *testing.T) {
	tree := Build(testEntries())

	// root + src + src/util + docs + 5 files
	assert.Equal(t, 9, tree.Len())

	util := mustLookup(t, tree, "src/util")
	n, err := tree.Node(util)
	require.NoError(t, err)
	assert.True(t, n.IsDir)
	assert.Len(t, n.Children, 2)
	assert.Equal(t, mustLookup(t, tree, "src"), n.Parent)

	size, paths := tree.SelectedLeaves()
	assert.Zero(t, size)
	assert.Empty(t, paths)
}

func TestToggle_Propagation(t *testing.T) {
	tree := Build(testEntries())

	require.NoError(t, tree.Toggle(mustLookup(t, tree, "src/util/helper.go"), Checked))
	assertAggregate(t, tree)

	util, _ := tree.Node(mustLookup(t, tree, "src/util"))
	assert.Equal(t, Partial, util.State)
	src, _ := tree.Node(mustLookup(t, tree, "src"))
	assert.Equal(t, Partial, src.State)
	root, _ := tree.Node(tree.Root())
	assert.Equal(t, Partial, root.State)

	require.NoError(t, tree.Toggle(mustLookup(t, tree, "src"), Checked))
	assertAggregate(t, tree)
	util, _ = tree.Node(mustLookup(t, tree, "src/util"))
	assert.Equal(t, Checked, util.State)

	size, paths := tree.SelectedLeaves()
	assert.Equal(t, int64(155), size)
	assert.Equal(t, []string{"src/main.go", "src/util/helper.go", "src/util/notes.txt"}, paths)
}

func TestToggle_RoundTrip(t *testing.T) {
	tree := Build(testEntries())
	for i := 0; i < tree.Len(); i++ {
		id := NodeID(i)
		require.NoError(t, tree.Toggle(id, Checked))
		assertAggregate(t, tree)
		require.NoError(t, tree.Toggle(id, Unchecked))
		assertAggregate(t, tree)

		n, _ := tree.Node(id)
		assert.Equal(t, Unchecked, n.State)
	}
	_, paths := tree.SelectedLeaves()
	assert.Empty(t, paths)
}

func TestToggle_Errors(t *testing.T) {
	tree := Build(testEntries())
	assert.ErrorIs(t, tree.Toggle(tree.Root(), Partial), ErrPartialToggle)
	assert.ErrorIs(t, tree.Toggle(NodeID(999), Checked), ErrUnknownNode)
	assert.ErrorIs(t, tree.Toggle(NoNode, Checked), ErrUnknownNode)

	_, err := tree.Node(NodeID(999))
	assert.ErrorIs(t, err, ErrUnknownNode)
}

func TestSelectAll_SizeSum(t *testing.T) {
	tree := Build(testEntries())
	tree.SelectAll()
	assertAggregate(t, tree)

	size, paths := tree.SelectedLeaves()
	assert.Equal(t, int64(185), size)
	assert.Equal(t, []string{
		"README.md",
		"docs/guide.md",
		"src/main.go",
		"src/util/helper.go",
		"src/util/notes.txt",
	}, paths)
}

func TestDisplayChildren(t *testing.T) {
	tree := Build(testEntries())

	var names []string
	for _, id := range tree.DisplayChildren(tree.Root()) {
		n, _ := tree.Node(id)
		names = append(names, n.Name)
	}
	assert.Equal(t, []string{"docs", "src", "README.md"}, names)
}

func TestGlobs(t *testing.T) {
	testCases := []struct {
		name    string
		include []string
		exclude []string
		want    []string
	}{
		{
			name:    "base name pattern",
			include: []string{"*.go"},
			want:    []string{"src/main.go", "src/util/helper.go"},
		},
		{
			name:    "double star",
			include: []string{"src/**"},
			exclude: []string{"**/*.txt"},
			want:    []string{"src/main.go", "src/util/helper.go"},
		},
		{
			name:    "anchored",
			include: []string{"*.md"},
			exclude: []string{"docs/*"},
			want:    []string{"README.md"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tree := Build(testEntries())
			require.NoError(t, tree.SelectGlobs(tc.include))
			require.NoError(t, tree.DeselectGlobs(tc.exclude))
			assertAggregate(t, tree)

			_, paths := tree.SelectedLeaves()
			assert.Equal(t, tc.want, paths)
		})
	}
}

func TestGlobs_Invalid(t *testing.T) {
	tree := Build(testEntries())
	assert.Error(t, tree.SelectGlobs([]string{"src/[a"}))
}
