package model

import (
	"errors"
	"strings"
	"time"
)

// Category groups tasks, events and goals under a shared name. Names are
// unique with case-sensitive comparison; deleting a category clears the
// Category field on every entity that references it.
type Category struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

func (c Category) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return errors.New("model: category id is required")
	}
	if strings.TrimSpace(c.Name) == "" {
		return ErrNameRequired
	}
	if len(c.Name) > MaxNameLen {
		return ErrNameTooLong
	}
	return nil
}
