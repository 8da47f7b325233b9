package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderTree(t *testing.T) {
	testCases := []struct {
		name     string
		paths    []string
		expected string
	}{
		{
			name:     "empty",
			paths:    nil,
			expected: "root/\n└── (nothing selected)\n",
		},
		{
			name:  "dirs first then case-insensitive",
			paths: []string{"b.go", "A.md", "src/z.go", "lib/x/y.txt", "src/a.go"},
			expected: "root/\n" +
				"├── lib/\n" +
				"│   └── x/\n" +
				"│       └── y.txt\n" +
				"├── src/\n" +
				"│   ├── a.go\n" +
				"│   └── z.go\n" +
				"├── A.md\n" +
				"└── b.go\n",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, RenderTree("root", tc.paths))
		})
	}
}
