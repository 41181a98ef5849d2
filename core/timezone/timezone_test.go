package timezone

import (
	"errors"
	"testing"
	"time"
)

func TestToAbsolute(t *testing.T) {
	t.Run("interprets naive datetime in zone", func(t *testing.T) {
		got, err := ToAbsolute("2025-06-15T10:00:00", "Asia/Kolkata")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		// 10:00 IST is 04:30 UTC
		want := time.Date(2025, 6, 15, 4, 30, 0, 0, time.UTC)
		if !got.Equal(want) {
			t.Fatalf("expected %v, got %v", want, got)
		}
	})

	t.Run("honors explicit offset", func(t *testing.T) {
		got, err := ToAbsolute("2025-06-15T10:00:00+05:30", "America/New_York")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		want := time.Date(2025, 6, 15, 4, 30, 0, 0, time.UTC)
		if !got.Equal(want) {
			t.Fatalf("expected %v, got %v", want, got)
		}
	})

	t.Run("rejects unknown zone", func(t *testing.T) {
		_, err := ToAbsolute("2025-06-15T10:00:00", "Mars/Olympus")
		if !errors.Is(err, ErrUnknownTimezone) {
			t.Fatalf("expected ErrUnknownTimezone, got %v", err)
		}
	})

	t.Run("accepts abbreviation alias", func(t *testing.T) {
		got, err := ToAbsolute("2025-06-15T10:00:00", "IST")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		want := time.Date(2025, 6, 15, 4, 30, 0, 0, time.UTC)
		if !got.Equal(want) {
			t.Fatalf("expected %v, got %v", want, got)
		}
	})
}

func TestRoundTrip(t *testing.T) {
	zones := []string{"Asia/Kolkata", "America/New_York", "UTC", "Australia/Sydney"}
	local := "2025-11-02T09:30:00"

	for _, zone := range zones {
		t.Run(zone, func(t *testing.T) {
			instant, err := ToAbsolute(local, zone)
			if err != nil {
				t.Fatalf("ToAbsolute: %v", err)
			}
			back, err := ToLocal(instant, zone)
			if err != nil {
				t.Fatalf("ToLocal: %v", err)
			}
			if got := back.Format(LocalLayout); got != local {
				t.Fatalf("round trip mismatch: expected %s, got %s", local, got)
			}
		})
	}
}

func TestDescribe(t *testing.T) {
	t.Run("kolkata to new york under DST", func(t *testing.T) {
		instant, err := ToAbsolute("2025-06-15T10:00:00", "Asia/Kolkata")
		if err != nil {
			t.Fatalf("ToAbsolute: %v", err)
		}

		d, err := Describe(instant, "America/New_York")
		if err != nil {
			t.Fatalf("Describe: %v", err)
		}
		// June: EDT, UTC-4
		if d.DateTime != "2025-06-15T00:30:00" {
			t.Fatalf("expected 2025-06-15T00:30:00, got %s", d.DateTime)
		}
		if d.UTCOffset != "-0400" {
			t.Fatalf("expected offset -0400, got %s", d.UTCOffset)
		}
		if d.Timezone != "America/New_York" {
			t.Fatalf("expected America/New_York, got %s", d.Timezone)
		}
		if d.Timestamp != instant.Unix() {
			t.Fatalf("expected timestamp %d, got %d", instant.Unix(), d.Timestamp)
		}
	})

	t.Run("offset tracks the instant not the season", func(t *testing.T) {
		winter, err := ToAbsolute("2025-01-15T10:00:00", "UTC")
		if err != nil {
			t.Fatalf("ToAbsolute: %v", err)
		}
		d, err := Describe(winter, "America/New_York")
		if err != nil {
			t.Fatalf("Describe: %v", err)
		}
		// January: EST, UTC-5
		if d.UTCOffset != "-0500" {
			t.Fatalf("expected offset -0500, got %s", d.UTCOffset)
		}
	})
}
