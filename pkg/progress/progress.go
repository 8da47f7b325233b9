// Package progress draws a one-line progress bar for document builds.
package progress

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/term"

	"repo2md/pkg/document"
)

// Bar renders "[████░░░░]  50% (i/n) path" on a single line.
type Bar struct {
	width      int
	writer     io.Writer
	mu         sync.Mutex
	enabled    bool
	lastUpdate time.Time
	last       document.Progress
}

// New returns a bar on stderr, enabled only when stderr is a terminal.
func New() *Bar {
	return NewWriter(os.Stderr, term.IsTerminal(int(os.Stderr.Fd())))
}

// NewWriter returns a bar writing to w.
func NewWriter(w io.Writer, enabled bool) *Bar {
	return &Bar{
		width:   30,
		writer:  w,
		enabled: enabled,
	}
}

// Enabled reports whether the bar draws anything.
func (b *Bar) Enabled() bool { return b.enabled }

// Update records p. It can be passed as document.Options.OnProgress.
func (b *Bar) Update(p document.Progress) {
	if !b.enabled {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.last = p
	// Update at most every 50ms to reduce flickering
	now := time.Now()
	if now.Sub(b.lastUpdate) > 50*time.Millisecond || p.Index == p.Total {
		b.lastUpdate = now
		b.render()
	}
}

// render must be called with mu already locked
func (b *Bar) render() {
	p := b.last
	if p.Total == 0 {
		return
	}

	filledWidth := b.width * p.Index / p.Total
	if filledWidth > b.width {
		filledWidth = b.width
	}
	bar := strings.Repeat("█", filledWidth) + strings.Repeat("░", b.width-filledWidth)
	percent := p.Index * 100 / p.Total

	// Clear the line and write progress
	fmt.Fprintf(b.writer, "\r\033[K[%s] %3d%% %s", bar, percent, p.String())
}

// Finish ends the line.
func (b *Bar) Finish() {
	if !b.enabled {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.last.Total > 0 {
		b.render()
		fmt.Fprint(b.writer, "\n")
	}
}
