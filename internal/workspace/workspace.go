// Package workspace resolves the root directory holding the content tree.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// envKeys is the ordered fallback chain for the workspace root override.
var envKeys = []string{"ASCENSION_WORKSPACE", "OPENCLAW_WORKSPACE"}

// Resolve returns the workspace root: the first non-empty env var from the
// fallback chain, otherwise ~/.openclaw/workspace.
func Resolve() (string, error) {
	for _, key := range envKeys {
		if raw := strings.TrimSpace(os.Getenv(key)); raw != "" {
			return normalize(raw)
		}
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("workspace: resolve home: %w", err)
	}
	return filepath.Join(home, ".openclaw", "workspace"), nil
}

// normalize expands a leading ~ and makes the path absolute.
func normalize(raw string) (string, error) {
	if raw == "~" || strings.HasPrefix(raw, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("workspace: resolve home: %w", err)
		}
		raw = filepath.Join(home, strings.TrimPrefix(raw, "~"))
	}
	abs, err := filepath.Abs(raw)
	if err != nil {
		return "", fmt.Errorf("workspace: resolve %s: %w", raw, err)
	}
	return abs, nil
}
