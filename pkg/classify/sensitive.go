package classify

import "strings"

// SensitiveKeywords are path fragments that suggest a file may hold credentials.
var SensitiveKeywords = []string{
	".env", ".key", ".pem", "id_rsa", "id_dsa", "id_ed25519",
	"password", "secret", "token", "credential", "aws", "private",
	"config.local", ".npmrc", ".gitconfig",
}

// IsSensitivePath reports whether relPath contains any sensitive keyword, case-insensitively.
func IsSensitivePath(relPath string) bool {
	lower := strings.ToLower(relPath)
	for _, kw := range SensitiveKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// SensitivePaths returns the subset of paths that look sensitive, preserving order.
func SensitivePaths(paths []string) []string {
	var out []string
	for _, p := range paths {
		if IsSensitivePath(p) {
			out = append(out, p)
		}
	}
	return out
}
