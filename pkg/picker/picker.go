// Package picker is an interactive terminal checkbox tree over a selection.Tree.
package picker

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"repo2md/pkg/scan"
	"repo2md/pkg/selection"
)

// ErrAborted is returned by Run when the user quits without accepting.
var ErrAborted = errors.New("selection aborted")

var (
	titleStyle        = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	cursorStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("75")).Bold(true)
	checkedStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	partialStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	dirStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("111"))
	helpStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	filterPromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
)

type row struct {
	id    selection.NodeID
	depth int
}

// Model is the bubbletea model. The tree is only mutated from Update.
type Model struct {
	tree       *selection.Tree
	rootName   string
	extensions []string
	extIndex   int // -1 shows every extension.
	filter     selection.Filter
	expanded   map[selection.NodeID]bool
	rows       []row
	cursor     int
	offset     int
	height     int
	searching  bool
	accepted   bool
	aborted    bool
}

// New returns a model showing the top level of tree with nothing expanded.
func New(tree *selection.Tree, rootName string, extensions []string) Model {
	m := Model{
		tree:       tree,
		rootName:   rootName,
		extensions: extensions,
		extIndex:   -1,
		expanded:   map[selection.NodeID]bool{tree.Root(): true},
		height:     20,
	}
	m.rebuildRows()
	return m
}

// Run shows the picker and returns the accepted selection in lexicographic order.
func Run(tree *selection.Tree, rootName string, extensions []string) ([]string, error) {
	final, err := tea.NewProgram(New(tree, rootName, extensions), tea.WithAltScreen()).Run()
	if err != nil {
		return nil, fmt.Errorf("picker failed: %w", err)
	}
	m, ok := final.(Model)
	if !ok || !m.accepted {
		return nil, ErrAborted
	}
	_, paths := m.tree.SelectedLeaves()
	return paths, nil
}

// Accepted reports whether the user confirmed the selection.
func (m Model) Accepted() bool { return m.accepted }

// Aborted reports whether the user quit.
func (m Model) Aborted() bool { return m.aborted }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height - 6
		if m.height < 3 {
			m.height = 3
		}
		m.scroll()
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.aborted = true
			return m, tea.Quit
		}
		if m.searching {
			return m.updateSearch(msg), nil
		}

		switch msg.String() {
		case "q", "esc":
			m.aborted = true
			return m, tea.Quit
		case "enter":
			m.accepted = true
			return m, tea.Quit
		case "up", "k":
			m.move(-1)
		case "down", "j":
			m.move(1)
		case " ", "space":
			m.toggleCurrent()
		case "right", "l":
			m.setExpanded(true)
		case "left", "h":
			m.setExpanded(false)
		case "a":
			m.toggleAll()
		case "/":
			m.searching = true
		case "e":
			m.cycleExtension()
		case "f":
			m.filter.Fuzzy = !m.filter.Fuzzy
			m.rebuildRows()
		}
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) Model {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc:
		m.searching = false
	case tea.KeyBackspace:
		if r := []rune(m.filter.Query); len(r) > 0 {
			m.filter.Query = string(r[:len(r)-1])
		}
	case tea.KeyRunes, tea.KeySpace:
		m.filter.Query += string(msg.Runes)
	}
	m.rebuildRows()
	return m
}

func (m *Model) move(delta int) {
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	m.scroll()
}

func (m *Model) scroll() {
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.height {
		m.offset = m.cursor - m.height + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func (m *Model) current() (selection.Node, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return selection.Node{}, false
	}
	n, err := m.tree.Node(m.rows[m.cursor].id)
	return n, err == nil
}

func (m *Model) toggleCurrent() {
	n, ok := m.current()
	if !ok {
		return
	}
	next := selection.Checked
	if n.State == selection.Checked {
		next = selection.Unchecked
	}
	_ = m.tree.Toggle(m.rows[m.cursor].id, next)
}

func (m *Model) toggleAll() {
	root, _ := m.tree.Node(m.tree.Root())
	next := selection.Checked
	if root.State == selection.Checked {
		next = selection.Unchecked
	}
	_ = m.tree.Toggle(m.tree.Root(), next)
}

func (m *Model) setExpanded(open bool) {
	n, ok := m.current()
	if !ok {
		return
	}
	id := m.rows[m.cursor].id
	if n.IsDir && m.expanded[id] != open {
		m.expanded[id] = open
		m.rebuildRows()
		return
	}
	// Collapsing a file or a closed directory jumps to its parent.
	if !open && n.Parent != selection.NoNode && n.Parent != m.tree.Root() {
		for i, r := range m.rows {
			if r.id == n.Parent {
				m.cursor = i
				m.scroll()
				return
			}
		}
	}
}

func (m *Model) cycleExtension() {
	m.extIndex++
	if m.extIndex >= len(m.extensions) {
		m.extIndex = -1
	}
	if m.extIndex < 0 {
		m.filter.Extensions = nil
	} else {
		m.filter.Extensions = map[string]bool{m.extensions[m.extIndex]: true}
	}
	m.rebuildRows()
}

// rebuildRows flattens the visible part of the tree. Any active filter
// expands every matching directory.
func (m *Model) rebuildRows() {
	m.rows = nil
	var walk func(id selection.NodeID, depth int)
	walk = func(id selection.NodeID, depth int) {
		for _, c := range m.tree.DisplayChildren(id) {
			if !m.tree.Visible(c, m.filter) {
				continue
			}
			m.rows = append(m.rows, row{id: c, depth: depth})
			n, _ := m.tree.Node(c)
			if n.IsDir && (m.expanded[c] || !m.filter.IsZero()) {
				walk(c, depth+1)
			}
		}
	}
	walk(m.tree.Root(), 0)

	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.scroll()
}

func checkbox(s selection.State) string {
	switch s {
	case selection.Checked:
		return checkedStyle.Render("[x]")
	case selection.Partial:
		return partialStyle.Render("[-]")
	default:
		return "[ ]"
	}
}

func (m Model) View() string {
	var b strings.Builder

	size, paths := m.tree.SelectedLeaves()
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s/  %d selected, %s", m.rootName, len(paths), scan.FormatBytes(size))))
	b.WriteString("\n\n")

	if len(m.rows) == 0 {
		b.WriteString(helpStyle.Render("  no matching files") + "\n")
	}
	end := m.offset + m.height
	if end > len(m.rows) {
		end = len(m.rows)
	}
	for i := m.offset; i < end; i++ {
		r := m.rows[i]
		n, _ := m.tree.Node(r.id)

		name := n.Name
		marker := "  "
		if n.IsDir {
			marker = "▸ "
			if m.expanded[r.id] || !m.filter.IsZero() {
				marker = "▾ "
			}
			name = dirStyle.Render(name + "/")
		}
		line := fmt.Sprintf("%s%s %s%s", strings.Repeat("  ", r.depth), checkbox(n.State), marker, name)
		if i == m.cursor {
			line = cursorStyle.Render(">") + " " + line
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("space toggle • a all • ←/→ collapse/expand • / search • e extension • f fuzzy • enter accept • q quit"))
	return b.String()
}

func (m Model) statusLine() string {
	var parts []string
	if m.searching || m.filter.Query != "" {
		prompt := "/" + m.filter.Query
		if m.searching {
			prompt += "_"
		}
		parts = append(parts, filterPromptStyle.Render(prompt))
	}
	ext := "all"
	if m.extIndex >= 0 {
		ext = m.extensions[m.extIndex]
	}
	parts = append(parts, "ext: "+ext)
	if m.filter.Fuzzy {
		parts = append(parts, "fuzzy")
	}
	return helpStyle.Render(strings.Join(parts, "  "))
}
