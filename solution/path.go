package solution

import (
	"path/filepath"
	"strings"
)

// NormalizePath converts Windows-style separators to forward slashes and
// collapses repeated separators, keeping a leading UNC "//".
func NormalizePath(path string) string {
	if path == "" {
		return ""
	}

	unc := strings.HasPrefix(path, `\\`) || strings.HasPrefix(path, "//")
	normalized := strings.ReplaceAll(path, `\`, "/")
	for strings.Contains(normalized, "//") {
		normalized = strings.ReplaceAll(normalized, "//", "/")
	}
	if unc {
		normalized = "/" + normalized
	}
	return normalized
}

// ResolveProjectPath resolves a project path from a solution file against
// the solution directory. Absolute paths are only cleaned.
func ResolveProjectPath(solutionDir, projectPath string) string {
	if projectPath == "" {
		return ""
	}

	normalized := filepath.FromSlash(NormalizePath(projectPath))
	if filepath.IsAbs(normalized) {
		return filepath.Clean(normalized)
	}
	return filepath.Join(solutionDir, normalized)
}
