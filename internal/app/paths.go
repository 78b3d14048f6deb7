package app

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	appDirName = "fittrack"
	dbFileName = "fittrack.db"
)

// DefaultDBPath is where the local database lives when neither --db nor
// FITTRACK_DB_PATH is set.
func DefaultDBPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(base, appDirName, dbFileName), nil
}

func EnsureDBDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create db directory: %w", err)
	}
	return nil
}
