package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// BundleFileName names a full backup taken at now, dated in UTC.
func BundleFileName(now time.Time) string {
	return "studyplanner-backup-" + now.UTC().Format("2006-01-02") + ".json"
}

// CSVFileName names a CSV export of one collection, e.g. "assignments.csv".
func CSVFileName(collection string) string {
	return collection + ".csv"
}

// WriteFile writes content to path, creating parent directories.
func WriteFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write export file: %w", err)
	}
	return nil
}

// ReadFile returns the text of a bundle to import.
func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read import file: %w", err)
	}
	return string(data), nil
}
