package tz

import (
	"fmt"
	"strings"
	"time"

	"shikkha/internal/domain"
)

const (
	dateTimeLayout = "02/01/2006 15:04"
	displayLayout  = "02 Jan 2006, 15:04"
)

// ParseDateTime parses "DD/MM/YYYY HH:MM" in Dhaka time. Blank input yields
// the zero time.
func ParseDateTime(s string) (time.Time, error) {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation(dateTimeLayout, s, Dhaka)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must look like 21/02/2026 09:30", domain.ErrInvalidInput)
	}
	return t, nil
}

// FormatDateTime renders t in Dhaka time, or "" for the zero time.
func FormatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(Dhaka).Format(displayLayout)
}

// FormatInput renders t in the layout ParseDateTime accepts.
func FormatInput(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(Dhaka).Format(dateTimeLayout)
}
