package core

import "testing"

func TestRectIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Rect
		expected bool
	}{
		{"overlapping", NewRect(0, 0, 10, 10), NewRect(5, 5, 10, 10), true},
		{"apart horizontally", NewRect(0, 0, 10, 10), NewRect(15, 0, 10, 10), false},
		{"adjacent edges", NewRect(0, 0, 10, 10), NewRect(10, 0, 10, 10), false},
		{"contained", NewRect(0, 0, 20, 20), NewRect(5, 5, 5, 5), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Intersects(tc.b); got != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.Intersects(tc.a); got != tc.expected {
				t.Errorf("Intersects() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(-3, 0, 10); got != 0 {
		t.Errorf("Clamp(-3) = %d, expected 0", got)
	}
	if got := Clamp(42, 0, 10); got != 10 {
		t.Errorf("Clamp(42) = %d, expected 10", got)
	}
	if got := ClampF(0.5, 0, 1); got != 0.5 {
		t.Errorf("ClampF(0.5) = %f, expected 0.5", got)
	}
}

func TestActionSet(t *testing.T) {
	var s ActionSet
	if !s.Empty() {
		t.Fatal("zero ActionSet should be empty")
	}

	s.Set(ActionPause)
	s.Set(ActionStep)
	if !s.Has(ActionPause) || !s.Has(ActionStep) {
		t.Error("Has() should report actions that were set")
	}
	if s.Has(ActionMenu) {
		t.Error("Has(ActionMenu) should be false")
	}

	s.Unset(ActionPause)
	if s.Has(ActionPause) {
		t.Error("Unset() should remove the action")
	}

	// ActionNone is never stored
	s.Set(ActionNone)
	if s.Has(ActionNone) {
		t.Error("ActionNone must not be stored")
	}

	s.Clear()
	if !s.Empty() {
		t.Error("Clear() should empty the set")
	}
}

func TestActionsExcludesNone(t *testing.T) {
	for _, a := range Actions() {
		if a == ActionNone {
			t.Fatal("Actions() must not include ActionNone")
		}
		if a.String() == "Unknown" {
			t.Errorf("action %d has no name", a)
		}
	}
}

func TestActionByName(t *testing.T) {
	if a, ok := ActionByName("menu_up"); !ok || a != ActionMenuUp {
		t.Errorf("ActionByName(menu_up) = %v, %v", a, ok)
	}
	if _, ok := ActionByName("fire"); ok {
		t.Error("ActionByName(fire) should not resolve")
	}
	for _, a := range Actions() {
		found := false
		for _, b := range actionNames {
			if a == b {
				found = true
			}
		}
		if !found {
			t.Errorf("action %s has no configuration name", a)
		}
	}
}
