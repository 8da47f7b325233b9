package ignore

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"
	"go.uber.org/zap"
)

// LocalIgnoreFile is the project-level ignore file read next to .gitignore.
const LocalIgnoreFile = ".repo2mdignore"

// Matcher reports whether a forward-slash relative path is ignored.
type Matcher interface {
	MatchesPath(path string) bool
}

// GitIgnore collects ignore pattern lines from files and configuration
// and matches paths against them with gitignore semantics.
type GitIgnore struct {
	lines    []string
	compiled *gitignore.GitIgnore
	logger   *zap.Logger
}

// NewGitIgnore initializes an empty GitIgnore with an optional logger.
func NewGitIgnore(logger *zap.Logger) *GitIgnore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GitIgnore{logger: logger}
}

// LoadIgnoreFiles loads patterns from root's .gitignore (when useGitignore is set)
// and .repo2mdignore, followed by any extra pattern lines.
func LoadIgnoreFiles(root string, useGitignore bool, extra []string, logger *zap.Logger) (*GitIgnore, error) {
	gi := NewGitIgnore(logger)

	if useGitignore {
		if err := gi.CompileIgnoreFile(filepath.Join(root, ".gitignore")); err != nil {
			return nil, err
		}
	}
	if err := gi.CompileIgnoreFile(filepath.Join(root, LocalIgnoreFile)); err != nil {
		return nil, err
	}
	gi.CompileIgnoreLines(extra...)

	return gi, nil
}

// CompileIgnoreLines appends pattern lines. Blank lines and comments are kept;
// the gitignore parser drops them.
func (gi *GitIgnore) CompileIgnoreLines(lines ...string) {
	if len(lines) == 0 {
		return
	}
	gi.lines = append(gi.lines, lines...)
	gi.compiled = gitignore.CompileIgnoreLines(gi.lines...)
	gi.logger.Debug("Compiled ignore patterns", zap.Int("lineCount", len(gi.lines)))
}

// CompileIgnoreFile reads an ignore file and appends its lines. A missing file is not an error.
func (gi *GitIgnore) CompileIgnoreFile(fpath string) error {
	content, err := os.ReadFile(fpath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			gi.logger.Debug("Ignore file does not exist and will be skipped", zap.String("filePath", fpath))
			return nil
		}
		gi.logger.Error("Failed to read ignore file", zap.String("filePath", fpath), zap.Error(err))
		return err
	}

	lines := strings.Split(strings.ReplaceAll(string(content), "\r\n", "\n"), "\n")
	gi.CompileIgnoreLines(lines...)
	gi.logger.Info("Loaded ignore file", zap.String("filePath", fpath), zap.Int("lineCount", len(lines)))
	return nil
}

// MatchesPath checks if a path matches the compiled patterns. Directory paths
// should carry a trailing slash so directory-only patterns apply.
func (gi *GitIgnore) MatchesPath(path string) bool {
	if gi == nil || gi.compiled == nil {
		return false
	}
	return gi.compiled.MatchesPath(filepath.ToSlash(path))
}

// Len returns the number of pattern lines loaded.
func (gi *GitIgnore) Len() int {
	return len(gi.lines)
}
