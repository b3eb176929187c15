package booking

import "time"

// Window is the effective interval of a booking: a day range and, for
// single-day bookings, a closed time-of-day range.
type Window struct {
	Date    time.Time
	EndDate *time.Time
	Start   Clock
	End     Clock
}

// IsRange reports whether the window spans whole days.
func (w Window) IsRange() bool {
	return w.EndDate != nil
}

// FirstDay is the first day covered.
func (w Window) FirstDay() time.Time {
	return day(w.Date)
}

// LastDay is EndDate if set, otherwise Date.
func (w Window) LastDay() time.Time {
	if w.EndDate != nil {
		return day(*w.EndDate)
	}
	return day(w.Date)
}

// Covers reports whether d falls within the window's day range.
func (w Window) Covers(d time.Time) bool {
	d = day(d)
	return !d.Before(w.FirstDay()) && !d.After(w.LastDay())
}

// Overlaps reports whether two windows conflict.
// Disjoint day ranges never conflict. Intersecting day ranges conflict when
// either side is a range booking. Two single-day bookings conflict when their
// closed time ranges touch or intersect.
func (w Window) Overlaps(o Window) bool {
	if w.FirstDay().After(o.LastDay()) || w.LastDay().Before(o.FirstDay()) {
		return false
	}
	if w.IsRange() || o.IsRange() {
		return true
	}
	return o.Start <= w.End && o.End >= w.Start
}

func day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
