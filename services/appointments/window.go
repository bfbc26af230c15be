package appointments

import "time"

// DateLayout is the ISO calendar date format used for appointment dates.
const DateLayout = "2006-01-02"

// DefaultWindowDays is how far past today the grouped view reaches.
const DefaultWindowDays = 90

// DisplayWindow returns days+1 consecutive dates starting at today's calendar
// date in today's location. A negative days yields nil (unbounded view).
func DisplayWindow(today time.Time, days int) []string {
	if days < 0 {
		return nil
	}
	y, m, d := today.Date()
	loc := today.Location()
	dates := make([]string, 0, days+1)
	for i := 0; i <= days; i++ {
		// Noon keeps DST transitions from shifting the calendar day.
		dates = append(dates, time.Date(y, m, d+i, 12, 0, 0, 0, loc).Format(DateLayout))
	}
	return dates
}
