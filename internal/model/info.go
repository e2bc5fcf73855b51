package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	MaxNameLen        = 20
	MaxDescriptionLen = 100
)

var (
	ErrNameRequired    = errors.New("model: name is required")
	ErrNameTooLong     = errors.New("model: name too long")
	ErrDescTooLong     = errors.New("model: description too long")
	ErrInvalidPriority = errors.New("model: invalid priority")
)

// DateKey is the canonical layout for calendar-date keys. Daily logs and
// the feedback cache are both keyed by strings in this format.
const DateKey = "2006-01-02"

// DayOf truncates a timestamp to its calendar date key in local time.
func DayOf(t time.Time) string {
	return t.Format(DateKey)
}

// Info is the identity record shared by tasks, events and goals.
// Equality is by ID; the remaining fields are descriptive.
type Info struct {
	ID          string
	Name        string
	Description string
	Category    string
	CreatedAt   time.Time
}

func (i Info) Validate() error {
	if strings.TrimSpace(i.ID) == "" {
		return errors.New("model: id is required")
	}
	if strings.TrimSpace(i.Name) == "" {
		return ErrNameRequired
	}
	if len(i.Name) > MaxNameLen {
		return fmt.Errorf("%w: %d chars (max %d)", ErrNameTooLong, len(i.Name), MaxNameLen)
	}
	if len(i.Description) > MaxDescriptionLen {
		return fmt.Errorf("%w: %d chars (max %d)", ErrDescTooLong, len(i.Description), MaxDescriptionLen)
	}
	if i.CreatedAt.IsZero() {
		return errors.New("model: created_at is required")
	}
	return nil
}

func (i Info) Equal(other Info) bool {
	return i.ID == other.ID
}
