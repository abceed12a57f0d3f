package board

import (
	"testing"

	"opsboard/internal/model"
)

func TestCatalogResolutionOrder(t *testing.T) {
	c := NewCatalog()

	plain := model.Label{Color: model.ColorGreen}
	if got := c.DisplayName(plain); got != "Green" {
		t.Fatalf("palette default = %q, want Green", got)
	}

	named := model.Label{Color: model.ColorGreen, Name: "Ready"}
	if got := c.DisplayName(named); got != "Ready" {
		t.Fatalf("stored name = %q, want Ready", got)
	}

	c.SetName(model.ColorGreen, "Shippable")
	if got := c.DisplayName(named); got != "Shippable" {
		t.Fatalf("override should win, got %q", got)
	}
	if got := c.DisplayName(plain); got != "Shippable" {
		t.Fatalf("override applies to unnamed labels too, got %q", got)
	}
}

func TestCatalogNamePersistsAcrossCards(t *testing.T) {
	// A red label named "Urgent" on card A; after removing it from A,
	// re-adding red on card B without a name still displays "Urgent".
	c := NewCatalog()

	cardA := []model.Label{{Color: model.ColorRed, Name: "Urgent"}}
	c.Observe(cardA)

	// Card A loses the label; the override survives.
	cardB := []model.Label{{Color: model.ColorRed}}
	c.Observe(cardB)

	if got := c.DisplayName(cardB[0]); got != "Urgent" {
		t.Fatalf("re-added label displays %q, want Urgent", got)
	}
	if got := c.NameFor(model.ColorRed); got != "Urgent" {
		t.Fatalf("picker name = %q, want Urgent", got)
	}
}

func TestCatalogObserveIgnoresEmptyNames(t *testing.T) {
	c := NewCatalog()
	c.SetName(model.ColorBlue, "Backend")

	// An unnamed blue label on some card must not erase the override.
	c.Observe([]model.Label{{Color: model.ColorBlue}})

	if got := c.NameFor(model.ColorBlue); got != "Backend" {
		t.Fatalf("override lost on observe: %q", got)
	}
}

func TestCatalogClearOverride(t *testing.T) {
	c := NewCatalog()
	c.SetName(model.ColorSky, "Design")
	c.SetName(model.ColorSky, "")

	if c.HasOverride(model.ColorSky) {
		t.Fatal("empty name should clear the override")
	}
	if got := c.NameFor(model.ColorSky); got != "Sky" {
		t.Fatalf("cleared override should fall back to palette default, got %q", got)
	}
}

func TestPaletteHasTwentyDistinctColors(t *testing.T) {
	seen := make(map[model.LabelColor]bool)
	for _, color := range model.LabelColors {
		if !color.Valid() {
			t.Fatalf("color %q missing default name", color)
		}
		if seen[color] {
			t.Fatalf("duplicate color %q", color)
		}
		seen[color] = true
	}
	if len(seen) != 20 {
		t.Fatalf("palette has %d colors, want 20", len(seen))
	}
}
