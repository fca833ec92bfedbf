package export

import (
	"fmt"
	"os"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"dayplan/internal/planner"
)

var icsWeekdays = map[time.Weekday]string{
	time.Sunday:    "SU",
	time.Monday:    "MO",
	time.Tuesday:   "TU",
	time.Wednesday: "WE",
	time.Thursday:  "TH",
	time.Friday:    "FR",
	time.Saturday:  "SA",
}

// ToICS writes the entries as an iCalendar file. Tasks export as all-day
// events; recurrence rules carry over as RRULE lines.
func ToICS(entries []planner.Entry, path string) error {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//dayplan//EN")

	now := time.Now().UTC()
	for _, e := range entries {
		ev := cal.AddEvent(e.ID)
		ev.SetDtStampTime(now)
		ev.SetSummary(e.Title)
		if e.Notes != "" {
			ev.SetDescription(e.Notes)
		}
		if e.IsTask() {
			ev.SetAllDayStartAt(e.Start)
			ev.SetAllDayEndAt(e.Start.AddDate(0, 0, 1))
		} else {
			ev.SetStartAt(e.Start)
			ev.SetEndAt(e.End)
		}
		if e.Recurring() {
			ev.AddRrule(rruleString(e.Recurrence))
		}
	}

	if err := os.WriteFile(path, []byte(cal.Serialize()), 0o644); err != nil {
		return fmt.Errorf("write ics file: %w", err)
	}
	return nil
}

// rruleString renders a recurrence rule in RFC 5545 RRULE syntax.
func rruleString(r *planner.Rule) string {
	parts := []string{"FREQ=" + strings.ToUpper(string(r.Freq))}
	if r.Interval > 1 {
		parts = append(parts, fmt.Sprintf("INTERVAL=%d", r.Interval))
	}
	if r.Freq == planner.FreqWeekly && len(r.Weekdays) > 0 {
		days := make([]string, 0, len(r.Weekdays))
		for _, wd := range r.Weekdays {
			days = append(days, icsWeekdays[wd])
		}
		parts = append(parts, "BYDAY="+strings.Join(days, ","))
	}
	if r.Until != nil {
		parts = append(parts, "UNTIL="+r.Until.UTC().Format("20060102T150405Z"))
	}
	return strings.Join(parts, ";")
}
