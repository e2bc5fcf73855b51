package model

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestInfoValidateSuccess(t *testing.T) {
	info := Info{
		ID:          "info-1",
		Name:        "Buy milk",
		Description: "From the corner shop",
		Category:    "errands",
		CreatedAt:   time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC),
	}
	if err := info.Validate(); err != nil {
		t.Fatalf("expected valid info, got error: %v", err)
	}
}

func TestInfoValidateRejectsBadFields(t *testing.T) {
	now := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	cases := []struct {
		name string
		info Info
		want error
	}{
		{
			name: "empty name",
			info: Info{ID: "info-1", Name: "   ", CreatedAt: now},
			want: ErrNameRequired,
		},
		{
			name: "name too long",
			info: Info{ID: "info-1", Name: strings.Repeat("x", MaxNameLen+1), CreatedAt: now},
			want: ErrNameTooLong,
		},
		{
			name: "description too long",
			info: Info{ID: "info-1", Name: "ok", Description: strings.Repeat("d", MaxDescriptionLen+1), CreatedAt: now},
			want: ErrDescTooLong,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.info.Validate()
			if err == nil || !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got: %v", tc.want, err)
			}
		})
	}
}

func TestInfoValidateRequiresID(t *testing.T) {
	info := Info{Name: "ok", CreatedAt: time.Now()}
	if err := info.Validate(); err == nil {
		t.Fatal("expected error for missing id, got nil")
	}
}

func TestInfoEqualByID(t *testing.T) {
	a := Info{ID: "same", Name: "one"}
	b := Info{ID: "same", Name: "two"}
	if !a.Equal(b) {
		t.Fatal("expected infos with same id to be equal")
	}
	b.ID = "other"
	if a.Equal(b) {
		t.Fatal("expected infos with different ids to differ")
	}
}

func TestIdentityFieldsReachableWithoutInfoPrefix(t *testing.T) {
	now := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	task := Task{Info: Info{ID: "t-1", Name: "stretch", Category: "health", CreatedAt: now}}
	goal := Goal{Info: Info{ID: "g-1", Name: "run-week", CreatedAt: now}}
	ev := Event{Info: Info{ID: "e-1", Name: "standup", Category: "work", CreatedAt: now}}

	if task.ID != "t-1" || task.Name != "stretch" || task.Category != "health" {
		t.Fatalf("task identity fields not reachable: %+v", task)
	}
	if goal.Name != "run-week" {
		t.Fatalf("goal identity fields not reachable: %+v", goal)
	}
	if ev.Category != "work" {
		t.Fatalf("event identity fields not reachable: %+v", ev)
	}
}

func TestDayOf(t *testing.T) {
	at := time.Date(2026, 8, 31, 23, 59, 0, 0, time.UTC)
	if got := DayOf(at); got != "2026-08-31" {
		t.Fatalf("unexpected date key: %s", got)
	}
}
