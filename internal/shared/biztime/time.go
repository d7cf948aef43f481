// Package biztime provides utilities for business timezone calculations.
// All storage and transport use UTC. The business timezone is only used for
// calculating day and week boundaries, which are then converted back to UTC
// for queries.
package biztime

import (
	"fmt"
	"sync"
	"time"
)

// DefaultTimezone is used when no timezone is configured.
const DefaultTimezone = "UTC"

var (
	mu          sync.RWMutex
	bizLocation *time.Location
)

// Init sets the business timezone from an IANA name. Empty means UTC.
func Init(tz string) error {
	if tz == "" {
		tz = DefaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return fmt.Errorf("invalid business timezone %q: %w", tz, err)
	}
	SetLocation(loc)
	return nil
}

// MustInit initializes the business timezone and panics on error.
func MustInit(tz string) {
	if err := Init(tz); err != nil {
		panic(err)
	}
}

// SetLocation replaces the business timezone.
func SetLocation(loc *time.Location) {
	mu.Lock()
	bizLocation = loc
	mu.Unlock()
}

// Location returns the business timezone, UTC when never initialized.
func Location() *time.Location {
	mu.RLock()
	defer mu.RUnlock()
	if bizLocation == nil {
		return time.UTC
	}
	return bizLocation
}

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// StartOfDayUTC returns business-day midnight for t, converted to UTC.
func StartOfDayUTC(t time.Time) time.Time {
	loc := Location()
	b := t.In(loc)
	return time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, loc).UTC()
}

// StartOfWeekUTC returns Monday midnight of t's business week, in UTC.
func StartOfWeekUTC(t time.Time) time.Time {
	loc := Location()
	b := t.In(loc)
	offset := (int(b.Weekday()) + 6) % 7
	return time.Date(b.Year(), b.Month(), b.Day()-offset, 0, 0, 0, 0, loc).UTC()
}

// AddDaysUTC moves a UTC midnight by n business days. Working in the
// business timezone keeps the result on a midnight across DST changes.
func AddDaysUTC(midnight time.Time, n int) time.Time {
	loc := Location()
	b := midnight.In(loc)
	return time.Date(b.Year(), b.Month(), b.Day()+n, 0, 0, 0, 0, loc).UTC()
}

// FormatInBizTimezone formats a UTC time in the business timezone.
func FormatInBizTimezone(t time.Time, layout string) string {
	return t.In(Location()).Format(layout)
}
