package tz

import (
	"errors"
	"testing"
	"time"

	"shikkha/internal/domain"
)

func TestParseDateTime(t *testing.T) {
	t.Parallel()

	got, err := ParseDateTime("  21/02/2026   09:30 ")
	if err != nil {
		t.Fatalf("ParseDateTime() error = %v", err)
	}
	want := time.Date(2026, 2, 21, 3, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("ParseDateTime() = %v, want %v", got.UTC(), want)
	}

	if zero, err := ParseDateTime(""); err != nil || !zero.IsZero() {
		t.Fatalf("ParseDateTime(\"\") = %v, %v", zero, err)
	}
	for _, bad := range []string{"2026-02-21 09:30", "31/02/2026 10:00", "21/02/2026"} {
		if _, err := ParseDateTime(bad); !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("ParseDateTime(%q) error = %v", bad, err)
		}
	}
}

func TestFormatDateTime(t *testing.T) {
	t.Parallel()

	ts := time.Date(2026, 2, 21, 3, 30, 0, 0, time.UTC)
	if got := FormatDateTime(ts); got != "21 Feb 2026, 09:30" {
		t.Fatalf("FormatDateTime() = %q", got)
	}
	if got := FormatInput(ts); got != "21/02/2026 09:30" {
		t.Fatalf("FormatInput() = %q", got)
	}
	if FormatDateTime(time.Time{}) != "" || FormatInput(time.Time{}) != "" {
		t.Fatalf("zero time should format as empty")
	}
	back, err := ParseDateTime(FormatInput(ts))
	if err != nil || !back.Equal(ts) {
		t.Fatalf("round trip = %v, %v", back, err)
	}
}
