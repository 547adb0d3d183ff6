package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestAvailabilityService_AddRule(t *testing.T) {
	f := newFixture(t)
	svc := NewAvailabilityService(f.availRepo)
	ctx := context.Background()

	id, err := svc.AddRule(ctx, f.proID, 1, "09:00", "18:00")
	if err != nil {
		t.Fatalf("add rule: %v", err)
	}

	rules, err := svc.ListRules(ctx, f.proID)
	if err != nil {
		t.Fatalf("list rules: %v", err)
	}
	if len(rules) != 1 || rules[0].ID != id || rules[0].Weekday != 1 {
		t.Fatalf("unexpected rules %+v", rules)
	}
}

func TestAvailabilityService_AddRule_Invalid(t *testing.T) {
	f := newFixture(t)
	svc := NewAvailabilityService(f.availRepo)
	ctx := context.Background()

	var vErr *ValidationError
	cases := []struct {
		name       string
		weekday    int
		start, end string
	}{
		{"weekday out of range", 7, "09:00", "18:00"},
		{"bad start format", 1, "9am", "18:00"},
		{"bad end format", 1, "09:00", "18h"},
		{"end before start", 1, "18:00", "09:00"},
		{"empty window", 1, "09:00", "09:00"},
	}
	for _, tc := range cases {
		if _, err := svc.AddRule(ctx, f.proID, tc.weekday, tc.start, tc.end); !errors.As(err, &vErr) {
			t.Fatalf("%s: expected ValidationError, got %v", tc.name, err)
		}
	}
}

func TestAvailabilityService_RemoveRule_OwnerOnly(t *testing.T) {
	f := newFixture(t)
	svc := NewAvailabilityService(f.availRepo)
	ctx := context.Background()

	id, err := svc.AddRule(ctx, f.proID, 2, "10:00", "14:00")
	if err != nil {
		t.Fatalf("add rule: %v", err)
	}

	if err := svc.RemoveRule(ctx, uuid.New(), id); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := svc.RemoveRule(ctx, f.proID, id); err != nil {
		t.Fatalf("remove rule: %v", err)
	}
	if err := svc.RemoveRule(ctx, f.proID, id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after removal, got %v", err)
	}
}

func TestAvailabilityService_Exceptions(t *testing.T) {
	f := newFixture(t)
	svc := NewAvailabilityService(f.availRepo)
	ctx := context.Background()

	id, err := svc.AddException(ctx, f.proID, "2026-03-08", false, "holiday")
	if err != nil {
		t.Fatalf("add exception: %v", err)
	}

	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 14)
	excs, err := svc.ListExceptions(ctx, f.proID, from, to)
	if err != nil {
		t.Fatalf("list exceptions: %v", err)
	}
	if len(excs) != 1 || excs[0].ID != id || excs[0].IsAvailable {
		t.Fatalf("unexpected exceptions %+v", excs)
	}

	var vErr *ValidationError
	if _, err := svc.AddException(ctx, f.proID, "03/08/2026", false, ""); !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError for bad date, got %v", err)
	}

	if err := svc.RemoveException(ctx, uuid.New(), id); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := svc.RemoveException(ctx, f.proID, id); err != nil {
		t.Fatalf("remove exception: %v", err)
	}
}
