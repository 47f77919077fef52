// Package bucket maps wall-clock time onto the daily publication period of
// the reference rates, so a period can be used as a cache key.
package bucket

import (
	"fmt"
	"time"
)

// DefaultCutoff the ECB publishes around 16:00 CET. One hour of zone offset plus a
// sixteen hour buffer keeps every instant before the next publication in the
// previous day's bucket.
const DefaultCutoff = 17 * time.Hour

// Schedule defines publication buckets: a bucket starts every day at Cutoff past
// midnight, wall-clock time in Zone.
type Schedule struct {
	// Zone whose wall-clock fields are bucketed
	Zone *time.Location

	// Cutoff offset from midnight at which a new bucket starts
	Cutoff time.Duration
}

// Default the schedule used unless configured otherwise: UTC wall clock, 17h cutoff.
var Default = Schedule{Zone: time.UTC, Cutoff: DefaultCutoff}

// New constructs a Schedule, falling back to UTC when zone is nil.
func New(zone *time.Location, cutoff time.Duration) Schedule {
	if zone == nil {
		zone = time.UTC
	}
	return Schedule{Zone: zone, Cutoff: cutoff}
}

// Key returns the bucket now belongs to, formatted day-month-year with a zero based
// month and no padding, e.g. "2-0-2024" for any instant between 2 Jan 2024 17:00
// and 3 Jan 2024 16:59:59.999 under the default schedule.
func (s Schedule) Key(now time.Time) string {
	zone := s.Zone
	if zone == nil {
		zone = time.UTC
	}
	local := now.In(zone)

	// wall-clock fields are taken verbatim so the cutoff stays fixed across DST changes
	wall := time.Date(local.Year(), local.Month(), local.Day(),
		local.Hour(), local.Minute(), local.Second(), local.Nanosecond(), time.UTC)
	shifted := wall.Add(-s.Cutoff)

	return fmt.Sprintf("%d-%d-%d", shifted.Day(), int(shifted.Month())-1, shifted.Year())
}

// Key returns the bucket of now under the Default schedule.
func Key(now time.Time) string {
	return Default.Key(now)
}
