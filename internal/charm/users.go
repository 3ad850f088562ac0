// ABOUTME: User profile operations for Charm KV storage.
// ABOUTME: Implements storage.Repository with one JSON value per user.
package charm

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/harperreed/swim/internal/models"
	"github.com/harperreed/swim/internal/storage"
)

// Compile-time check that Client implements storage.Repository.
var _ storage.Repository = (*Client)(nil)

// LoadUser reads one profile.
func (c *Client) LoadUser(name string) (*models.User, error) {
	data, ok, err := c.get(userKey(name))
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", storage.ErrUserNotFound, name)
	}

	u, err := unmarshalJSON[models.User](data)
	if err != nil {
		return nil, fmt.Errorf("unmarshal user: %w", err)
	}
	if u.Times == nil {
		u.Times = []*models.TimeEntry{}
	}
	u.EnsureIDs()
	return u, nil
}

// SaveUser writes the profile and syncs when auto-sync is on.
func (c *Client) SaveUser(u *models.User) error {
	if strings.TrimSpace(u.Name) == "" {
		return fmt.Errorf("save user: empty name")
	}
	u.EnsureIDs()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	u.UpdatedAt = time.Now()

	data, err := marshalJSON(u)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}
	if err := c.set(userKey(u.Name), data); err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}

// ListUsers returns display names sorted case-insensitively.
func (c *Client) ListUsers() ([]string, error) {
	allData, err := c.listByPrefix(UserPrefix)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	var names []string
	for _, data := range allData {
		u, err := unmarshalJSON[models.User](data)
		if err != nil {
			continue // Skip invalid entries
		}
		names = append(names, u.Name)
	}

	sort.Slice(names, func(i, j int) bool {
		return strings.ToLower(names[i]) < strings.ToLower(names[j])
	})
	return names, nil
}

// DeleteUser removes a profile.
func (c *Client) DeleteUser(name string) error {
	_, ok, err := c.get(userKey(name))
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", storage.ErrUserNotFound, name)
	}
	if err := c.delete(userKey(name)); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

// GetAllData retrieves all data for export.
func (c *Client) GetAllData() (*storage.ExportData, error) {
	names, err := c.ListUsers()
	if err != nil {
		return nil, err
	}

	data := &storage.ExportData{
		Version:    storage.ExportVersion,
		ExportedAt: time.Now(),
		Tool:       "swim",
		Users:      make([]*models.User, 0, len(names)),
	}
	for _, name := range names {
		u, err := c.LoadUser(name)
		if err != nil {
			return nil, err
		}
		data.Users = append(data.Users, u)
	}
	return data, nil
}

// ImportData merges an export, syncing once at the end instead of per user.
func (c *Client) ImportData(data *storage.ExportData) error {
	c.mu.Lock()
	prev := c.autoSync
	c.autoSync = false
	c.mu.Unlock()

	_, err := storage.Import(c, data)

	c.mu.Lock()
	c.autoSync = prev
	if err == nil {
		c.syncIfEnabled()
	}
	c.mu.Unlock()
	return err
}

// Stats summarizes what is stored locally.
type Stats struct {
	Users   int
	Entries int
}

// Stats counts users and entries.
func (c *Client) Stats() (Stats, error) {
	allData, err := c.listByPrefix(UserPrefix)
	if err != nil {
		return Stats{}, fmt.Errorf("list users: %w", err)
	}
	var s Stats
	for _, data := range allData {
		u, err := unmarshalJSON[models.User](data)
		if err != nil {
			continue
		}
		s.Users++
		s.Entries += len(u.Times)
	}
	return s, nil
}
