package models

import (
	"time"
)

// Interval is a half-open [Start, End) time range in UTC.
type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Overlaps reports whether two half-open intervals intersect. Touching
// boundaries do not overlap, so back-to-back bookings are allowed.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}

// Contains reports whether other lies fully inside i.
func (i Interval) Contains(other Interval) bool {
	return !other.Start.Before(i.Start) && !other.End.After(i.End)
}

// DayBlocks aggregates every blocking interval source for one staff member
// over one day, fetched in a single pass per source.
type DayBlocks struct {
	Appointments []Appointment
	TimeOff      []TimeOff
	Locks        []SlotLock
}

// Intervals flattens all three sources into plain intervals. Blocking
// intervals stay unexpanded; buffers are applied to the candidate window
// instead, the same rule the commit-time conflict check uses.
func (b DayBlocks) Intervals() []Interval {
	intervals := make([]Interval, 0, len(b.Appointments)+len(b.TimeOff)+len(b.Locks))
	for _, appointment := range b.Appointments {
		intervals = append(intervals, Interval{Start: appointment.StartTime, End: appointment.EndTime})
	}
	for _, timeOff := range b.TimeOff {
		intervals = append(intervals, Interval{Start: timeOff.StartTime, End: timeOff.EndTime})
	}
	for _, lock := range b.Locks {
		intervals = append(intervals, Interval{Start: lock.StartTime, End: lock.EndTime})
	}
	return intervals
}
