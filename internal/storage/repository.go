// ABOUTME: Repository interface for swim data storage.
// ABOUTME: Persists whole user profiles; the record store works on them in memory.
package storage

import (
	"errors"
	"strings"

	"github.com/harperreed/swim/internal/models"
)

// ErrUserNotFound is returned by LoadUser when no profile exists for a name.
var ErrUserNotFound = errors.New("user not found")

// Repository defines the storage interface for swim data.
// This interface allows swapping implementations (e.g., for testing).
type Repository interface {
	// User operations
	LoadUser(name string) (*models.User, error)
	SaveUser(u *models.User) error
	ListUsers() ([]string, error)
	DeleteUser(name string) error

	// Export/Import
	GetAllData() (*ExportData, error)
	ImportData(data *ExportData) error

	// Lifecycle
	Close() error
}

// userKey is the case-insensitive lookup key for a user name.
func userKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
