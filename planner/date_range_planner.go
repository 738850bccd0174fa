package planner

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

const (
	// DaysPerWeek is the number of daily targets synthesized for a week.
	DaysPerWeek = 7

	allDaysSegment = "all-days"
	hourSuffix     = "00"
	isoDateLayout  = "2006-01-02"
	pathDateLayout = "20060102"
)

// InvalidDateError is returned when a window does not form a real calendar date.
type InvalidDateError struct {
	Year, Month, Day int
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date: year=%d month=%d day=%d", e.Year, e.Month, e.Day)
}

// DateWindow is a month, or a week when WeekStartDay is set.
type DateWindow struct {
	Year         int
	Month        int
	WeekStartDay *int
}

// NewDateWindow validates and builds a DateWindow. A nil weekStartDay selects
// the whole month.
func NewDateWindow(year, month int, weekStartDay *int) (DateWindow, error) {
	w := DateWindow{Year: year, Month: month, WeekStartDay: weekStartDay}
	if _, err := w.StartDate(); err != nil {
		return DateWindow{}, err
	}
	return w, nil
}

// IsWeek reports whether the window is a 7-day week.
func (w DateWindow) IsWeek() bool {
	return w.WeekStartDay != nil
}

// StartDate returns the first calendar day covered by the window.
func (w DateWindow) StartDate() (time.Time, error) {
	day := 1
	if w.WeekStartDay != nil {
		day = *w.WeekStartDay
	}
	if w.Year < 1 || w.Month < 1 || w.Month > 12 || day < 1 {
		return time.Time{}, &InvalidDateError{Year: w.Year, Month: w.Month, Day: day}
	}
	// time.Date normalizes out-of-range days, so a round trip detects them.
	d := time.Date(w.Year, time.Month(w.Month), day, 0, 0, 0, 0, time.UTC)
	if d.Year() != w.Year || int(d.Month()) != w.Month || d.Day() != day {
		return time.Time{}, &InvalidDateError{Year: w.Year, Month: w.Month, Day: day}
	}
	return d, nil
}

// ArticleWindow is the [Start, End] pair sent to the per-article endpoint.
type ArticleWindow struct {
	Start time.Time
	End   time.Time
}

// DateRange renders the window as "YYYY-MM-DD to YYYY-MM-DD".
func (a ArticleWindow) DateRange() string {
	return a.Start.Format(isoDateLayout) + " to " + a.End.Format(isoDateLayout)
}

// PlanTopArticlesTargets returns the top-articles URLs covering the window:
// one all-days URL for a month, or one URL per day for a week.
func PlanTopArticlesTargets(baseURL string, w DateWindow) ([]string, error) {
	start, err := w.StartDate()
	if err != nil {
		return nil, err
	}
	base := strings.TrimSuffix(baseURL, "/")

	if !w.IsWeek() {
		return []string{fmt.Sprintf("%s/%s/%s", base, start.Format("2006/01"), allDaysSegment)}, nil
	}

	targets := make([]string, 0, DaysPerWeek)
	for i := 0; i < DaysPerWeek; i++ {
		day := start.AddDate(0, 0, i)
		targets = append(targets, fmt.Sprintf("%s/%s", base, day.Format("2006/01/02")))
	}
	return targets, nil
}

// PlanArticleWindow returns the start and end dates for an article query.
// A week ends 7 days after its start; a month ends on the first day of the
// following month.
func PlanArticleWindow(w DateWindow) (ArticleWindow, error) {
	start, err := w.StartDate()
	if err != nil {
		return ArticleWindow{}, err
	}
	if w.IsWeek() {
		return ArticleWindow{Start: start, End: start.AddDate(0, 0, DaysPerWeek)}, nil
	}
	return ArticleWindow{Start: start, End: start.AddDate(0, 1, 0)}, nil
}

// ArticleViewsURL builds the daily per-article URL for the given window.
func ArticleViewsURL(baseURL, article string, aw ArticleWindow) string {
	return fmt.Sprintf("%s/%s/daily/%s%s/%s%s",
		strings.TrimSuffix(baseURL, "/"),
		url.PathEscape(article),
		aw.Start.Format(pathDateLayout), hourSuffix,
		aw.End.Format(pathDateLayout), hourSuffix,
	)
}
