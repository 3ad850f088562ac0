// ABOUTME: Validation and lookup errors for the record store.
// ABOUTME: ValidationError blocks a mutation; event-key lookups never error.
package records

import (
	"errors"
	"fmt"
	"time"

	"github.com/harperreed/swim/internal/models"
)

var (
	// ErrNotFound is returned by ID-addressed operations when nothing matches.
	ErrNotFound = errors.New("entry not found")
	// ErrAmbiguous is returned when an ID prefix matches more than one entry.
	ErrAmbiguous = errors.New("ambiguous entry prefix")
)

// ValidationError reports a malformed or missing field on a new or edited entry.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// IsValidationError reports whether err wraps a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Validate checks an entry before it is stored.
func Validate(e *models.TimeEntry) error {
	if err := validateTime(e.Time); err != nil {
		return err
	}
	if err := validateDate(e.Date); err != nil {
		return err
	}
	if !e.Course.IsValid() {
		return &ValidationError{Field: "course", Value: string(e.Course), Reason: "use LC or SC"}
	}
	if e.Stroke == "" {
		return &ValidationError{Field: "stroke", Reason: "stroke is required"}
	}
	if e.Distance <= 0 {
		return &ValidationError{Field: "distance", Value: fmt.Sprint(e.Distance), Reason: "must be a positive number of meters"}
	}
	if e.Happiness != nil {
		return validateHappiness(*e.Happiness)
	}
	return nil
}

func validateTime(s string) error {
	if !models.IsValidDurationFormat(s) {
		return &ValidationError{Field: "time", Value: s, Reason: "use formats like 28.32, 1:02.45 or 1.02.45"}
	}
	return nil
}

func validateDate(s string) error {
	if s == "" {
		return &ValidationError{Field: "date", Reason: "date is required"}
	}
	if _, err := time.Parse(models.DateLayout, s); err != nil {
		return &ValidationError{Field: "date", Value: s, Reason: "use YYYY-MM-DD"}
	}
	return nil
}

func validateHappiness(h int) error {
	if h < 1 || h > 10 {
		return &ValidationError{Field: "happiness", Value: fmt.Sprint(h), Reason: "must be between 1 and 10"}
	}
	return nil
}
