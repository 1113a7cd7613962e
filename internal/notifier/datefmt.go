package notifier

import (
	"fmt"
	"time"

	"github.com/nechmerust/sanctuary-api/internal/model"
)

var czechWeekdays = [...]string{
	"neděle", "pondělí", "úterý", "středa", "čtvrtek", "pátek", "sobota",
}

// Czech month names in the genitive case, as used in dates ("14. června").
var czechMonths = [...]string{
	"ledna", "února", "března", "dubna", "května", "června",
	"července", "srpna", "září", "října", "listopadu", "prosince",
}

// pragueTZ is where the sanctuary lives; event times render in local time.
var pragueTZ = loadPrague()

func loadPrague() *time.Location {
	loc, err := time.LoadLocation("Europe/Prague")
	if err != nil {
		return time.UTC
	}
	return loc
}

// FormatEventDate renders a timestamp the way the site shows event dates:
// long weekday, day, month, year and time, in the requested language.
func FormatEventDate(t time.Time, lang string) string {
	t = t.In(pragueTZ)
	if model.NormalizeLanguage(lang) == model.LangEN {
		return t.Format("Monday, January 2, 2006, 3:04 PM")
	}
	return fmt.Sprintf("%s %d. %s %d %s",
		czechWeekdays[t.Weekday()], t.Day(), czechMonths[t.Month()-1],
		t.Year(), t.Format("15:04"),
	)
}

// formatSubmittedAt stamps notification bodies with local wall-clock time.
func formatSubmittedAt(t time.Time) string {
	return t.In(pragueTZ).Format("2.1.2006 15:04:05")
}
