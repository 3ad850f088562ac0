// ABOUTME: Data migration between swim storage backends.
// ABOUTME: Copies every user profile and their entries from source to destination.

package storage

import (
	"fmt"
	"os"
)

// MigrateSummary holds counts of migrated entities.
type MigrateSummary struct {
	Users   int
	Entries int
}

// MigrateData copies all data from src to dst storage.
// Each user is saved whole, so a user already present in the destination
// is replaced by the source copy.
func MigrateData(src, dst Repository) (*MigrateSummary, error) {
	summary := &MigrateSummary{}

	names, err := src.ListUsers()
	if err != nil {
		return nil, fmt.Errorf("list source users: %w", err)
	}

	for _, name := range names {
		u, err := src.LoadUser(name)
		if err != nil {
			return nil, fmt.Errorf("load user %s: %w", name, err)
		}
		if err := dst.SaveUser(u); err != nil {
			return nil, fmt.Errorf("save user %s: %w", name, err)
		}
		summary.Users++
		summary.Entries += len(u.Times)
	}

	return summary, nil
}

// IsDirNonEmpty checks whether a directory exists and contains any files or subdirectories.
// Returns false if the directory does not exist or is empty.
func IsDirNonEmpty(path string) (bool, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read directory %q: %w", path, err)
	}
	return len(entries) > 0, nil
}
