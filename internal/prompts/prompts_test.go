package prompts

import "testing"

func TestForDate_Deterministic(t *testing.T) {
	for _, date := range []string{"2025-03-10", "2024-02-29", "2025-12-31"} {
		first := ForDate(date)
		if first == "" {
			t.Fatalf("expected a prompt for %s", date)
		}
		if again := ForDate(date); again != first {
			t.Errorf("prompt for %s changed: %q vs %q", date, first, again)
		}
	}
}

func TestCompassionForDate(t *testing.T) {
	if CompassionForDate("2025-03-10") == CompassionForDate("2025-03-11") {
		t.Error("consecutive days should get different prompts")
	}
	if got := CompassionForDate("2025-03-10"); got != CompassionForDate("2025-03-10") {
		t.Errorf("expected a stable prompt, got %q", got)
	}
	if got := CompassionForDate("not a date"); got != Compassion[0] {
		t.Errorf("expected fallback prompt, got %q", got)
	}
}

func TestShuffle_ExcludesCurrent(t *testing.T) {
	current := Journal[0]
	for i := 0; i < 100; i++ {
		if got := Shuffle(current); got == current {
			t.Fatalf("Shuffle returned the excluded prompt")
		}
	}
}
