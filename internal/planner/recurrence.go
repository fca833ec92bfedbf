package planner

import (
	"time"

	"github.com/teambition/rrule-go"
)

// Frequency is the cadence of a recurrence rule.
type Frequency string

const (
	FreqNone    Frequency = "none"
	FreqDaily   Frequency = "daily"
	FreqWeekly  Frequency = "weekly"
	FreqMonthly Frequency = "monthly"
)

func ParseFrequency(s string) Frequency {
	switch Frequency(s) {
	case FreqDaily, FreqWeekly, FreqMonthly:
		return Frequency(s)
	default:
		return FreqNone
	}
}

// Rule describes how an entry repeats. A nil Rule, or one with FreqNone,
// means the entry occurs exactly once.
type Rule struct {
	Freq     Frequency
	Interval int // every N days/weeks/months; values < 1 are read as 1

	// Weekdays restricts weekly rules to the given days. An empty set
	// means "the anchor date's own weekday". Ignored for other cadences.
	Weekdays []time.Weekday

	// Until, when set, is the last date on which an occurrence may fall.
	Until *time.Time
}

func (r *Rule) interval() int {
	if r.Interval < 1 {
		return 1
	}
	return r.Interval
}

var rruleWeekdays = map[time.Weekday]rrule.Weekday{
	time.Monday:    rrule.MO,
	time.Tuesday:   rrule.TU,
	time.Wednesday: rrule.WE,
	time.Thursday:  rrule.TH,
	time.Friday:    rrule.FR,
	time.Saturday:  rrule.SA,
	time.Sunday:    rrule.SU,
}

// Occurrences expands the rule anchored at start into the concrete
// occurrence times inside [windowStart, windowEnd], truncated at Until.
// The result is finite, sorted, and depends only on the arguments; the
// rule itself is never mutated and individual occurrences are never
// persisted.
func (r *Rule) Occurrences(start, windowStart, windowEnd time.Time) []time.Time {
	if windowEnd.Before(windowStart) {
		return nil
	}
	if r == nil || r.Freq == FreqNone {
		if start.Before(windowStart) || start.After(windowEnd) {
			return nil
		}
		return []time.Time{start}
	}

	until := windowEnd
	if r.Until != nil && r.Until.Before(until) {
		until = *r.Until
	}

	if r.Freq == FreqMonthly {
		return r.monthly(start, windowStart, until)
	}

	opt := rrule.ROption{
		Interval: r.interval(),
		Dtstart:  start,
		Until:    until,
	}
	switch r.Freq {
	case FreqDaily:
		opt.Freq = rrule.DAILY
	case FreqWeekly:
		opt.Freq = rrule.WEEKLY
		for _, wd := range r.Weekdays {
			opt.Byweekday = append(opt.Byweekday, rruleWeekdays[wd])
		}
	}

	rule, err := rrule.NewRRule(opt)
	if err != nil {
		return nil
	}
	return rule.Between(windowStart, windowEnd, true)
}

// monthly advances the anchor by whole calendar months, clamping the
// day-of-month to the last day of shorter target months. RFC 5545 rules
// skip such months instead, which would silently drop entries anchored on
// the 29th-31st.
func (r *Rule) monthly(start, windowStart, until time.Time) []time.Time {
	var out []time.Time
	step := r.interval()
	for k := 0; ; k += step {
		occ := addMonthsClamped(start, k)
		if occ.After(until) {
			return out
		}
		if !occ.Before(windowStart) {
			out = append(out, occ)
		}
	}
}

func addMonthsClamped(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
	target := first.AddDate(0, months, 0)
	last := daysInMonth(target.Year(), target.Month())
	if d > last {
		d = last
	}
	h, min, sec := t.Clock()
	return time.Date(target.Year(), target.Month(), d, h, min, sec, t.Nanosecond(), t.Location())
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
