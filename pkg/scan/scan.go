// File: pkg/scan/scan.go
package scan

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"repo2md/pkg/classify"
	"repo2md/pkg/ignore"
	"repo2md/pkg/task"

	"go.uber.org/zap"
)

// Entry is one scanned file.
type Entry struct {
	RelPath string // Forward-slash path relative to the scan root.
	AbsPath string // Absolute path on disk.
	Size    int64  // Size in bytes.
}

// Result is an immutable snapshot of a scan.
type Result struct {
	Root       string           // Absolute scan root.
	Entries    map[string]Entry // Keyed by RelPath.
	Extensions []string         // Distinct extension tokens, NoExtension first.
	TotalSize  int64            // Sum of all entry sizes.
}

// Options tunes a scan.
type Options struct {
	Ignore      ignore.Matcher // Optional gitignore-style matcher.
	MaxFileSize int64          // Files larger than this are skipped; 0 disables the limit.
	Logger      *zap.Logger
}

// Scan walks root and collects every non-hidden file. Hidden directories are
// not descended into. Unreadable subtrees are logged and skipped.
func Scan(ctx context.Context, root string, opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}
	// WalkDir does not follow a symlinked root.
	walkRoot, err := filepath.EvalSymlinks(absRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve scan root: %w", err)
	}
	info, err := os.Stat(walkRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to stat scan root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scan root %s is not a directory", absRoot)
	}

	result := &Result{
		Root:    absRoot,
		Entries: make(map[string]Entry),
	}
	extensions := make(map[string]bool)

	logger.Debug("Starting scan", zap.String("root", absRoot), zap.String("resolved", walkRoot))
	err = filepath.WalkDir(walkRoot, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if path == walkRoot {
				return err
			}
			logger.Warn("Error accessing path during scan", zap.String("path", path), zap.Error(err))
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if path == walkRoot {
			return nil
		}

		name := d.Name()
		if strings.HasPrefix(name, ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		relPath, err := filepath.Rel(walkRoot, path)
		if err != nil {
			logger.Warn("Unable to determine relative path", zap.String("path", path), zap.Error(err))
			return nil
		}
		relPath = filepath.ToSlash(relPath)

		if d.IsDir() {
			if opts.Ignore != nil && opts.Ignore.MatchesPath(relPath+"/") {
				logger.Debug("Skipping ignored directory", zap.String("directory", relPath))
				return filepath.SkipDir
			}
			return nil
		}
		if opts.Ignore != nil && opts.Ignore.MatchesPath(relPath) {
			logger.Debug("Skipping ignored file", zap.String("file", relPath))
			return nil
		}

		fi, err := d.Info()
		if err != nil {
			logger.Warn("Failed to get file info during scan", zap.String("path", path), zap.Error(err))
			return nil
		}
		if !fi.Mode().IsRegular() {
			return nil
		}
		if opts.MaxFileSize > 0 && fi.Size() > opts.MaxFileSize {
			logger.Debug("Skipping file due to size limit", zap.String("file", relPath), zap.Int64("sizeBytes", fi.Size()))
			return nil
		}

		result.Entries[relPath] = Entry{RelPath: relPath, AbsPath: filepath.Join(absRoot, filepath.FromSlash(relPath)), Size: fi.Size()}
		result.TotalSize += fi.Size()
		extensions[classify.Extension(relPath)] = true
		return nil
	})
	if err != nil {
		logger.Error("Scan failed", zap.String("root", absRoot), zap.Error(err))
		return nil, fmt.Errorf("failed to walk %s: %w", absRoot, err)
	}

	result.Extensions = SortExtensions(extensions)
	logger.Info("Scan completed",
		zap.String("root", absRoot),
		zap.Int("files", len(result.Entries)),
		zap.Int("extensions", len(result.Extensions)))
	return result, nil
}

// Start runs Scan on its own goroutine.
func Start(ctx context.Context, root string, opts Options) *task.Future[*Result] {
	return task.Go(ctx, func(ctx context.Context) (*Result, error) {
		return Scan(ctx, root, opts)
	})
}

// SortExtensions orders extension tokens with NoExtension first, then lexicographically.
func SortExtensions(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for ext := range set {
		out = append(out, ext)
	}
	sort.Slice(out, func(i, j int) bool {
		if (out[i] == classify.NoExtension) != (out[j] == classify.NoExtension) {
			return out[i] == classify.NoExtension
		}
		return out[i] < out[j]
	})
	return out
}

// Paths returns every entry's relative path in lexicographic order.
func (r *Result) Paths() []string {
	paths := make([]string, 0, len(r.Entries))
	for p := range r.Entries {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// RootName is the base name of the scan root.
func (r *Result) RootName() string {
	return filepath.Base(r.Root)
}

// FormatBytes renders a size with binary units, e.g. "1.5 KB".
func FormatBytes(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	value := float64(size)
	units := []string{"KB", "MB", "GB", "TB"}
	i := -1
	for value >= unit && i < len(units)-1 {
		value /= unit
		i++
	}
	return fmt.Sprintf("%.1f %s", value, units[i])
}
