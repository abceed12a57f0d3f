package board

import (
	"fmt"
	"time"
)

// Fuel color classes, mapped to styles by the theme package.
const (
	FuelNeutral  = "neutral"
	FuelOverdue  = "overdue"
	FuelCritical = "critical"
	FuelHigh     = "high"
	FuelMedium   = "medium"
	FuelLow      = "low"
)

// Gauge is the visual urgency indicator derived from a due date:
// a 0-100 level, a color class, and a countdown label.
type Gauge struct {
	Level      int
	ColorClass string
	Label      string
}

// Fuel maps a due date to its urgency gauge. It is deterministic and
// side-effect free; the caller passes now so a periodic tick can keep
// displayed countdowns current without reloading the board.
func Fuel(due *time.Time, now time.Time) Gauge {
	if due == nil {
		return Gauge{Level: 100, ColorClass: FuelNeutral, Label: "No deadline"}
	}

	remaining := due.Sub(now)
	days := remaining.Hours() / 24

	switch {
	case days < 0:
		return Gauge{Level: 0, ColorClass: FuelOverdue, Label: "Overdue!"}
	case days < 1:
		return Gauge{
			Level:      15,
			ColorClass: FuelCritical,
			Label:      hoursLabel(remaining),
		}
	case days < 2:
		return Gauge{Level: 30, ColorClass: FuelHigh, Label: "1 day remaining"}
	case days < 3:
		return Gauge{Level: 50, ColorClass: FuelMedium, Label: daysLabel(days)}
	case days < 7:
		return Gauge{Level: 70, ColorClass: FuelLow, Label: daysLabel(days)}
	default:
		return Gauge{Level: 100, ColorClass: FuelNeutral, Label: daysLabel(days)}
	}
}

// hoursLabel renders a sub-day countdown in whole hours.
func hoursLabel(remaining time.Duration) string {
	hours := int(remaining.Hours())
	if hours <= 1 {
		return "1 hour remaining"
	}
	return fmt.Sprintf("%d hours remaining", hours)
}

// daysLabel renders a countdown in whole days.
func daysLabel(days float64) string {
	whole := int(days)
	if whole == 1 {
		return "1 day remaining"
	}
	return fmt.Sprintf("%d days remaining", whole)
}
