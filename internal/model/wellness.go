package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	MinLevel   = 1
	MaxLevel   = 9
	MaxNoteLen = 200
)

var (
	ErrInvalidLevel    = errors.New("model: wellness level out of range")
	ErrInvalidMoodKind = errors.New("model: invalid mood kind")
)

// Level is an ordinal self-report on a 1..9 scale.
type Level int

func (l Level) IsValid() bool {
	return l >= MinLevel && l <= MaxLevel
}

type MoodKind string

const (
	MoodPositive MoodKind = "Positive"
	MoodNegative MoodKind = "Negative"
)

func (k MoodKind) IsValid() bool {
	switch k {
	case MoodPositive, MoodNegative:
		return true
	default:
		return false
	}
}

// MoodLabel names a mood users can attach to wellness entries. Names are
// unique with case-insensitive comparison.
type MoodLabel struct {
	Name      string
	Kind      MoodKind
	CreatedAt time.Time
}

func (m MoodLabel) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return ErrNameRequired
	}
	if len(m.Name) > MaxNameLen {
		return ErrNameTooLong
	}
	if !m.Kind.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidMoodKind, m.Kind)
	}
	return nil
}

// WellnessEntry is a single mood/wellness self-report. Entries are
// append-only within a day and deletable by id.
type WellnessEntry struct {
	ID      string
	At      time.Time
	Stress  Level
	Energy  Level
	Fatigue Level
	Mood    string
	Note    string
}

func (w WellnessEntry) Validate() error {
	if strings.TrimSpace(w.ID) == "" {
		return errors.New("model: wellness entry id is required")
	}
	if w.At.IsZero() {
		return errors.New("model: wellness entry time is required")
	}
	for _, l := range []Level{w.Stress, w.Energy, w.Fatigue} {
		if !l.IsValid() {
			return fmt.Errorf("%w: %d", ErrInvalidLevel, l)
		}
	}
	if strings.TrimSpace(w.Mood) == "" {
		return errors.New("model: wellness entry mood label is required")
	}
	if len(w.Note) > MaxNoteLen {
		return fmt.Errorf("%w: %d chars (max %d)", ErrDescTooLong, len(w.Note), MaxNoteLen)
	}
	return nil
}
