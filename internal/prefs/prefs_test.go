package prefs

import (
	"context"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("opening prefs store: %v", err)
	}

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing prefs store: %v", err)
		}
	})

	return s
}

func TestThemeRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	theme, err := s.Theme(ctx)
	if err != nil {
		t.Fatalf("Theme: %v", err)
	}
	if theme != "" {
		t.Fatalf("fresh store theme = %q, want empty", theme)
	}

	if err := s.SetTheme(ctx, "midnight"); err != nil {
		t.Fatalf("SetTheme: %v", err)
	}

	theme, err = s.Theme(ctx)
	if err != nil {
		t.Fatalf("Theme: %v", err)
	}
	if theme != "midnight" {
		t.Fatalf("theme = %q, want midnight", theme)
	}
}

func TestSetOverwrites(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Set(ctx, "theme", "one"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Set(ctx, "theme", "two"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, err := s.Get(ctx, "theme")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != "two" {
		t.Fatalf("value = %q, want two", got)
	}
}
