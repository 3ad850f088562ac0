// ABOUTME: Session helpers shared by swim commands.
// ABOUTME: Resolves the current user and wraps their record store with persistence.
package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/harperreed/swim/internal/models"
	"github.com/harperreed/swim/internal/records"
	"github.com/harperreed/swim/internal/storage"
)

var errNoUser = errors.New("no user logged in: run 'swim login <name>' or pass --user")

// session is one command's view of the current user's times.
type session struct {
	user  *models.User
	store *records.Store
}

// currentUser resolves --user, then SWIM_USER, then the saved login.
func currentUser() (string, error) {
	if u := strings.TrimSpace(flagUser); u != "" {
		return u, nil
	}
	if cfg != nil {
		if u := cfg.GetUser(); u != "" {
			return u, nil
		}
	}
	return "", errNoUser
}

// openSession loads the current user's profile. A user with no saved
// profile starts empty; nothing is written until the store changes.
func openSession() (*session, error) {
	name, err := currentUser()
	if err != nil {
		return nil, err
	}

	u, err := repo.LoadUser(name)
	if errors.Is(err, storage.ErrUserNotFound) {
		u = models.NewUser(name)
	} else if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", name, err)
	}

	store := records.New(records.Session{User: u.Name}, u.Times)
	store.OnDirty(func(s *records.Store) {
		logger.Debug("store dirty", "user", s.Session().User, "entries", s.Len())
	})
	return &session{user: u, store: store}, nil
}

// save persists the store if a mutation marked it dirty.
func (s *session) save() error {
	if !s.store.Dirty() {
		return nil
	}
	s.user.Times = s.store.Entries()
	if err := repo.SaveUser(s.user); err != nil {
		return fmt.Errorf("failed to save %s: %w", s.user.Name, err)
	}
	s.store.MarkClean()
	logger.Debug("saved entries", "user", s.user.Name, "entries", len(s.user.Times))
	return nil
}

// parseCourseFlag accepts "" as "any course".
func parseCourseFlag(s string) (models.Course, error) {
	if strings.TrimSpace(s) == "" {
		return "", nil
	}
	return models.ParseCourse(s)
}
