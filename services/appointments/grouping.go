package appointments

import (
	"sort"

	"nataliestudio/models"
)

// GroupByDay buckets appointments by date and sorts each bucket by time.
//
// With a window, the result has exactly one group per window date, in window
// order, including empty days; appointments dated outside the window are
// dropped. With a nil window, groups are the distinct dates present, ascending.
func GroupByDay(appts []models.Appointment, window []string) []models.DayGroup {
	if window == nil {
		window = distinctDates(appts)
	}

	groups := make([]models.DayGroup, len(window))
	index := make(map[string]int, len(window))
	for i, date := range window {
		groups[i] = models.DayGroup{Date: date, Label: DayLabel(date), Appointments: []models.Appointment{}}
		index[date] = i
	}

	for _, a := range appts {
		if i, ok := index[a.Date]; ok {
			groups[i].Appointments = append(groups[i].Appointments, a)
		}
	}

	// "HH:MM" is zero-padded, so string order is chronological.
	for i := range groups {
		day := groups[i].Appointments
		sort.SliceStable(day, func(a, b int) bool { return day[a].Time < day[b].Time })
	}
	return groups
}

// FilterDay keeps only the group for date. An empty date keeps everything.
func FilterDay(groups []models.DayGroup, date string) []models.DayGroup {
	if date == "" {
		return groups
	}
	for _, g := range groups {
		if g.Date == date {
			return []models.DayGroup{g}
		}
	}
	return []models.DayGroup{}
}

func distinctDates(appts []models.Appointment) []string {
	seen := make(map[string]struct{}, len(appts))
	dates := []string{}
	for _, a := range appts {
		if _, ok := seen[a.Date]; ok {
			continue
		}
		seen[a.Date] = struct{}{}
		dates = append(dates, a.Date)
	}
	sort.Strings(dates)
	return dates
}
