package googleads

import (
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// DateRange is a resolved reporting window. Presets are expanded to explicit
// dates at parse time so the preceding window of equal length can always be
// derived for period comparison.
type DateRange struct {
	From   time.Time
	To     time.Time
	Preset string
}

var presets = map[string]struct{}{
	"TODAY":        {},
	"YESTERDAY":    {},
	"LAST_7_DAYS":  {},
	"LAST_14_DAYS": {},
	"LAST_30_DAYS": {},
	"THIS_MONTH":   {},
	"LAST_MONTH":   {},
}

// ParseDateRange resolves a preset name or custom from/to pair into a
// DateRange. When all inputs are empty it defaults to LAST_30_DAYS.
func ParseDateRange(preset, from, to string, now time.Time) (DateRange, error) {
	preset = strings.ToUpper(strings.TrimSpace(preset))

	if from != "" || to != "" {
		if preset != "" {
			return DateRange{}, fmt.Errorf("range preset and from/to dates are mutually exclusive")
		}
		fromDate, err := time.Parse(dateLayout, from)
		if err != nil {
			return DateRange{}, fmt.Errorf("invalid from date %q", from)
		}
		toDate, err := time.Parse(dateLayout, to)
		if err != nil {
			return DateRange{}, fmt.Errorf("invalid to date %q", to)
		}
		if fromDate.After(toDate) {
			return DateRange{}, fmt.Errorf("from date %s is after to date %s", from, to)
		}
		return DateRange{From: fromDate, To: toDate, Preset: "CUSTOM"}, nil
	}

	if preset == "" {
		preset = "LAST_30_DAYS"
	}
	if _, ok := presets[preset]; !ok {
		return DateRange{}, fmt.Errorf("unknown date range preset %q", preset)
	}

	today := now.UTC().Truncate(24 * time.Hour)
	yesterday := today.AddDate(0, 0, -1)

	var r DateRange
	switch preset {
	case "TODAY":
		r = DateRange{From: today, To: today}
	case "YESTERDAY":
		r = DateRange{From: yesterday, To: yesterday}
	case "LAST_7_DAYS":
		r = DateRange{From: yesterday.AddDate(0, 0, -6), To: yesterday}
	case "LAST_14_DAYS":
		r = DateRange{From: yesterday.AddDate(0, 0, -13), To: yesterday}
	case "LAST_30_DAYS":
		r = DateRange{From: yesterday.AddDate(0, 0, -29), To: yesterday}
	case "THIS_MONTH":
		r = DateRange{From: time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC), To: today}
	case "LAST_MONTH":
		firstOfThis := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
		r = DateRange{From: firstOfThis.AddDate(0, -1, 0), To: firstOfThis.AddDate(0, 0, -1)}
	}
	r.Preset = preset
	return r, nil
}

// Days returns the window length in days, inclusive of both endpoints.
func (r DateRange) Days() int {
	return int(r.To.Sub(r.From).Hours()/24) + 1
}

// Previous returns the window of equal length immediately before this one.
func (r DateRange) Previous() DateRange {
	days := r.Days()
	to := r.From.AddDate(0, 0, -1)
	return DateRange{From: to.AddDate(0, 0, -(days - 1)), To: to, Preset: "PREVIOUS"}
}

// Condition renders the window as a GAQL segments.date predicate.
func (r DateRange) Condition() string {
	return fmt.Sprintf("segments.date BETWEEN '%s' AND '%s'", r.From.Format(dateLayout), r.To.Format(dateLayout))
}

// Label renders the window for response metadata.
func (r DateRange) Label() string {
	return fmt.Sprintf("%s..%s", r.From.Format(dateLayout), r.To.Format(dateLayout))
}
