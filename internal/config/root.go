package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// envRootOverride short-circuits repository root discovery. The setup script
// writes the same value into config/system.env.
const envRootOverride = "ABSOLUTE_DOXCER_PATH"

// hasRepoMarkers reports whether dir looks like a doxcer repository root.
func hasRepoMarkers(dir string) bool {
	if fi, err := os.Stat(filepath.Join(dir, "go.mod")); err != nil || fi.IsDir() {
		return false
	}
	if fi, err := os.Stat(filepath.Join(dir, "config")); err != nil || !fi.IsDir() {
		return false
	}
	if fi, err := os.Stat(filepath.Join(dir, "templates")); err != nil || !fi.IsDir() {
		return false
	}
	return true
}

// parseSystemEnvRoot extracts ABSOLUTE_DOXCER_PATH from a system.env file.
// system.env is deliberately not a dotenv file; it only carries this path
// mapping, so it is parsed by hand.
func parseSystemEnvRoot(path string) (string, bool) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	for _, line := range strings.Split(string(content), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		value, ok := strings.CutPrefix(trimmed, envRootOverride+"=")
		if !ok {
			continue
		}
		value = strings.Trim(strings.TrimSpace(value), `"'`)
		if value == "" {
			continue
		}
		return value, true
	}
	return "", false
}

func findRootInAncestors(start string) (string, bool) {
	for dir := start; ; dir = filepath.Dir(dir) {
		if hasRepoMarkers(dir) {
			return dir, true
		}
		if mapped, ok := parseSystemEnvRoot(filepath.Join(dir, "config", "system.env")); ok {
			if hasRepoMarkers(mapped) {
				return mapped, true
			}
		}
		if dir == filepath.Dir(dir) {
			return "", false
		}
	}
}

// FindRoot locates the repository root: ABSOLUTE_DOXCER_PATH env override
// first, then the working-directory ancestors, then the executable's
// ancestors. Each ancestor may also map to an absolute root through its
// config/system.env.
func FindRoot() (string, error) {
	if value := strings.Trim(strings.TrimSpace(os.Getenv(envRootOverride)), `"'`); value != "" {
		if hasRepoMarkers(value) {
			return value, nil
		}
		fmt.Fprintf(os.Stderr, "%s is set but invalid: %s\n", envRootOverride, value)
	}

	if cwd, err := os.Getwd(); err == nil {
		if root, ok := findRootInAncestors(cwd); ok {
			return root, nil
		}
	}

	if exe, err := os.Executable(); err == nil {
		if root, ok := findRootInAncestors(filepath.Dir(exe)); ok {
			return root, nil
		}
	}

	return "", fmt.Errorf("failed to locate repository root; run the setup script or set %s", envRootOverride)
}
