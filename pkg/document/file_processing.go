package document

import (
	"fmt"
	"strings"

	"repo2md/pkg/classify"
	"repo2md/pkg/decode"
	"repo2md/pkg/redact"
	"repo2md/pkg/scan"

	"go.uber.org/zap"
)

// renderFileSection reads and formats a single selected file. A nil redactor
// leaves the text untouched.
func renderFileSection(relPath string, entries map[string]scan.Entry, r *redact.Redactor, logger *zap.Logger) string {
	logger.Debug("Processing file", zap.String("filePath", relPath))

	entry, ok := entries[relPath]
	if !ok {
		logger.Warn("Selected path missing from scan entries", zap.String("filePath", relPath))
		return section(relPath, "", "[read failed: not found in scan results]")
	}

	if isBin, reason := classify.IsBinary(entry.AbsPath); isBin {
		logger.Debug("Skipping binary file", zap.String("filePath", relPath), zap.String("reason", reason))
		return section(relPath, "", fmt.Sprintf("[binary file skipped: %s]", reason))
	}

	content, err := decode.ReadText(entry.AbsPath)
	if err != nil {
		logger.Error("Failed to read file", zap.String("filePath", entry.AbsPath), zap.Error(err))
		return section(relPath, "", fmt.Sprintf("[read failed: %v]", err))
	}
	if r != nil {
		content = r.Redact(content)
	}

	logger.Debug("Successfully read file content",
		zap.String("filePath", relPath),
		zap.Int("contentSizeBytes", len(content)))

	lang := classify.Extension(relPath)
	if lang == classify.NoExtension {
		lang = ""
	}
	return section(relPath, lang, content)
}

// section formats a heading and a fenced block. The fence grows past any
// backtick run inside body so the block cannot be closed early.
func section(relPath, lang, body string) string {
	fence := "```"
	for strings.Contains(body, fence) {
		fence += "`"
	}
	body = strings.TrimSuffix(body, "\n")
	return fmt.Sprintf("### %s\n\n%s%s\n%s\n%s\n", relPath, fence, lang, body, fence)
}
