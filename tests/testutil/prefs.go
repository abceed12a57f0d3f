package testutil

import (
	"testing"

	"opsboard/internal/prefs"
)

// NewTestPrefs creates an in-memory prefs store with all migrations
// applied. It closes the store when the test completes.
func NewTestPrefs(t *testing.T) *prefs.Store {
	t.Helper()

	s, err := prefs.Open(":memory:")
	if err != nil {
		t.Fatalf("creating test prefs store: %v", err)
	}

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing test prefs store: %v", err)
		}
	})

	return s
}
