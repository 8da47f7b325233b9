package progress

import (
	"bytes"
	"strings"
	"testing"

	"repo2md/pkg/document"

	"github.com/stretchr/testify/assert"
)

func TestBar(t *testing.T) {
	var buf bytes.Buffer
	b := NewWriter(&buf, true)

	b.Update(document.Progress{Index: 1, Total: 2, Path: "a.go"})
	b.Update(document.Progress{Index: 2, Total: 2, Path: "b.go"})
	b.Finish()

	out := buf.String()
	assert.Contains(t, out, "(1/2) a.go")
	assert.Contains(t, out, "100% (2/2) b.go")
	assert.True(t, strings.HasSuffix(out, "\n"))
}

func TestBar_Disabled(t *testing.T) {
	var buf bytes.Buffer
	b := NewWriter(&buf, false)

	b.Update(document.Progress{Index: 1, Total: 1, Path: "a.go"})
	b.Finish()

	assert.False(t, b.Enabled())
	assert.Empty(t, buf.String())
}
