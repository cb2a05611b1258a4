package onboarding

import (
	"testing"
	"time"
)

func TestStartOfWeek(t *testing.T) {
	cases := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			name: "wednesday resolves to monday",
			in:   time.Date(2024, time.January, 17, 15, 30, 0, 0, time.UTC),
			want: time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "monday is its own week start",
			in:   time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
			want: time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "sunday belongs to the preceding monday",
			in:   time.Date(2024, time.January, 21, 23, 59, 0, 0, time.UTC),
			want: time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := StartOfWeek(tc.in); !got.Equal(tc.want) {
				t.Fatalf("StartOfWeek(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestArrivesThisWeek(t *testing.T) {
	// Wednesday 2024-01-17.
	now := time.Date(2024, time.January, 17, 10, 0, 0, 0, time.UTC)

	cases := []struct {
		name    string
		arrival time.Time
		want    bool
	}{
		{"monday of the same week", time.Date(2024, time.January, 15, 8, 0, 0, 0, time.UTC), true},
		{"saturday of the same week", time.Date(2024, time.January, 20, 8, 0, 0, 0, time.UTC), true},
		{"sunday of the same week", time.Date(2024, time.January, 21, 20, 0, 0, 0, time.UTC), true},
		{"next monday is excluded", time.Date(2024, time.January, 22, 0, 0, 0, 0, time.UTC), false},
		{"previous sunday is excluded", time.Date(2024, time.January, 14, 12, 0, 0, 0, time.UTC), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ArrivesThisWeek(tc.arrival, now); got != tc.want {
				t.Fatalf("ArrivesThisWeek(%v, %v) = %v, want %v", tc.arrival, now, got, tc.want)
			}
		})
	}
}

func TestArrivesTomorrow(t *testing.T) {
	now := time.Date(2024, time.January, 17, 10, 0, 0, 0, time.UTC)

	cases := []struct {
		name    string
		arrival time.Time
		want    bool
	}{
		{"early tomorrow", time.Date(2024, time.January, 18, 1, 0, 0, 0, time.UTC), true},
		{"late tomorrow", time.Date(2024, time.January, 18, 23, 0, 0, 0, time.UTC), true},
		{"today", time.Date(2024, time.January, 17, 23, 59, 0, 0, time.UTC), false},
		{"day after tomorrow", time.Date(2024, time.January, 19, 0, 0, 0, 0, time.UTC), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ArrivesTomorrow(tc.arrival, now); got != tc.want {
				t.Fatalf("ArrivesTomorrow(%v, %v) = %v, want %v", tc.arrival, now, got, tc.want)
			}
		})
	}
}

func TestParseWeek(t *testing.T) {
	t.Run("resolves the monday of the requested week", func(t *testing.T) {
		got, err := ParseWeek("2024-W03", time.UTC)
		if err != nil {
			t.Fatalf("ParseWeek failed: %v", err)
		}
		want := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
		if !got.Equal(want) {
			t.Fatalf("ParseWeek = %v, want %v", got, want)
		}
	})

	t.Run("round-trips with FormatWeek", func(t *testing.T) {
		reference := time.Date(2024, time.January, 17, 9, 0, 0, 0, time.UTC)
		week := FormatWeek(reference)
		if week != "2024-W03" {
			t.Fatalf("FormatWeek = %q, want 2024-W03", week)
		}
		monday, err := ParseWeek(week, time.UTC)
		if err != nil {
			t.Fatalf("ParseWeek failed: %v", err)
		}
		if !monday.Equal(StartOfWeek(reference)) {
			t.Fatalf("round-trip mismatch: %v vs %v", monday, StartOfWeek(reference))
		}
	})

	t.Run("rejects malformed references", func(t *testing.T) {
		for _, value := range []string{"", "W03", "2024-W00", "2024-W54"} {
			if _, err := ParseWeek(value, time.UTC); err == nil {
				t.Fatalf("expected error for %q", value)
			}
		}
	})
}
