// ABOUTME: BadgerStore keeps user profiles as JSON values in an embedded Badger database.
// ABOUTME: Keys are "user:<lowercased name>"; each profile is read and written whole.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/harperreed/swim/internal/models"
)

// UserKeyPrefix prefixes every profile key in key/value backends.
const UserKeyPrefix = "user:"

// BadgerStore provides embedded key/value storage for swim data.
type BadgerStore struct {
	db  *badger.DB
	dir string
}

// Compile-time check that BadgerStore implements Repository.
var _ Repository = (*BadgerStore)(nil)

// OpenBadger opens or creates a Badger database in dir.
func OpenBadger(dir string) (*BadgerStore, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &BadgerStore{db: db, dir: dir}, nil
}

// Close closes the database.
func (s *BadgerStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func badgerKey(name string) []byte {
	return []byte(UserKeyPrefix + userKey(name))
}

// LoadUser reads one profile.
func (s *BadgerStore) LoadUser(name string) (*models.User, error) {
	var u models.User
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(badgerKey(name))
		if err != nil {
			return err
		}
		val, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		return json.Unmarshal(val, &u)
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrUserNotFound, name)
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	if u.Times == nil {
		u.Times = []*models.TimeEntry{}
	}
	u.EnsureIDs()
	return &u, nil
}

// SaveUser writes the profile in a single transaction.
func (s *BadgerStore) SaveUser(u *models.User) error {
	if userKey(u.Name) == "" {
		return fmt.Errorf("save user: empty name")
	}
	u.EnsureIDs()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	u.UpdatedAt = time.Now()

	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(badgerKey(u.Name), data)
	})
	if err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}

// ListUsers scans the user prefix and returns display names sorted case-insensitively.
func (s *BadgerStore) ListUsers() ([]string, error) {
	var names []string
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(UserKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			val, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}
			var u models.User
			if err := json.Unmarshal(val, &u); err != nil {
				continue // Skip invalid entries
			}
			names = append(names, u.Name)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	sort.Slice(names, func(i, j int) bool {
		return userKey(names[i]) < userKey(names[j])
	})
	return names, nil
}

// DeleteUser removes a profile.
func (s *BadgerStore) DeleteUser(name string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(badgerKey(name)); err != nil {
			return err
		}
		return txn.Delete(badgerKey(name))
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%w: %s", ErrUserNotFound, name)
		}
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

// GetAllData retrieves all data for export.
func (s *BadgerStore) GetAllData() (*ExportData, error) {
	return collectAll(s)
}

// ImportData imports data from an export file.
func (s *BadgerStore) ImportData(data *ExportData) error {
	_, err := importAll(s, data)
	return err
}
