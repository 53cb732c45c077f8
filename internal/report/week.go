package report

import "time"

// WeekEnding maps a date to its week-ending-Sunday bucket: the Sunday
// on or after the date, at midnight UTC. A Sunday is its own bucket.
// The Sunday anchor is the reporting-calendar convention the report
// consumers resample on; it is a fixed contractual choice.
func WeekEnding(t time.Time) time.Time {
	d := dayUTC(t)
	if wd := int(d.Weekday()); wd != 0 {
		d = d.AddDate(0, 0, 7-wd)
	}
	return d
}

// WeekRange returns every week bucket from the one containing from to
// the one containing to, inclusive, in ascending order. Weeks with no
// records still appear so the output matrix stays dense.
func WeekRange(from, to time.Time) []time.Time {
	first, last := WeekEnding(from), WeekEnding(to)
	if last.Before(first) {
		first, last = last, first
	}
	var weeks []time.Time
	for w := first; !w.After(last); w = w.AddDate(0, 0, 7) {
		weeks = append(weeks, w)
	}
	return weeks
}
