package appointments

import (
	"strings"
	"time"

	"github.com/goodsign/monday"
)

const dayLabelLayout = "Monday, 2 January 2006"

// DayLabel renders an ISO date as a long Romanian date, e.g.
// "luni, 3 iunie 2024". Unparseable input is returned as is.
func DayLabel(date string) string {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return date
	}
	return strings.ToLower(monday.Format(t, dayLabelLayout, monday.LocaleRoRO))
}
