package board

import (
	"strings"
	"testing"
	"time"
)

func TestFuelNoDeadline(t *testing.T) {
	g := Fuel(nil, time.Now())
	if g.Level != 100 || g.ColorClass != FuelNeutral || g.Label != "No deadline" {
		t.Fatalf("Fuel(nil) = %+v", g)
	}
}

func TestFuelBoundaries(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		due       time.Duration
		wantLevel int
		wantClass string
		wantLabel string
	}{
		{"one minute overdue", -time.Minute, 0, FuelOverdue, "Overdue!"},
		{"thirty minutes left", 30 * time.Minute, 15, FuelCritical, "1 hour remaining"},
		{"five hours left", 5 * time.Hour, 15, FuelCritical, "5 hours remaining"},
		{"thirty hours left", 30 * time.Hour, 30, FuelHigh, "1 day remaining"},
		{"sixty hours left", 60 * time.Hour, 50, FuelMedium, "2 days remaining"},
		{"five days left", 5 * 24 * time.Hour, 70, FuelLow, "5 days remaining"},
		{"ten days left", 10 * 24 * time.Hour, 100, FuelNeutral, "10 days remaining"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			due := now.Add(tt.due)
			g := Fuel(&due, now)
			if g.Level != tt.wantLevel {
				t.Errorf("level = %d, want %d", g.Level, tt.wantLevel)
			}
			if g.ColorClass != tt.wantClass {
				t.Errorf("class = %q, want %q", g.ColorClass, tt.wantClass)
			}
			if g.Label != tt.wantLabel {
				t.Errorf("label = %q, want %q", g.Label, tt.wantLabel)
			}
		})
	}
}

func TestFuelSubDayLabelUsesHours(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	due := now.Add(30 * time.Minute)

	g := Fuel(&due, now)
	if !strings.Contains(g.Label, "hour") {
		t.Fatalf("sub-day label should be hour-based, got %q", g.Label)
	}
}

func TestFuelIsPure(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	due := now.Add(3 * 24 * time.Hour)

	first := Fuel(&due, now)
	second := Fuel(&due, now)
	if first != second {
		t.Fatalf("Fuel not deterministic: %+v vs %+v", first, second)
	}
}
