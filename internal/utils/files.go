package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnsureDir ensures the provided directory exists.
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0o755)
}

// SafeWriteFile writes data to a temp file and atomically renames it into place.
func SafeWriteFile(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("atomic rename: %w", err)
	}
	return nil
}

// ArtifactPath joins dir and name after stripping path separators from name,
// so a chart title can never escape the output directory.
func ArtifactPath(dir, name string) string {
	name = strings.NewReplacer("/", "_", "\\", "_").Replace(strings.TrimSpace(name))
	if name == "" {
		name = "unnamed"
	}
	return filepath.Join(dir, name)
}

// WriteArtifact creates dir if absent and atomically writes data to dir/name.
// It returns the written path.
func WriteArtifact(dir, name string, data []byte) (string, error) {
	if err := EnsureDir(dir); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := ArtifactPath(dir, name)
	if err := SafeWriteFile(path, data); err != nil {
		return "", err
	}
	return path, nil
}
