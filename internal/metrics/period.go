package metrics

import (
	"errors"
	"fmt"
	"time"

	"github.com/AngelCh415/socialreport/internal/ingest"
	"github.com/AngelCh415/socialreport/internal/models"
)

var (
	ErrNoDateRange   = errors.New("dataset has no dated records")
	ErrNoPostData    = errors.New("dataset has no post records")
	ErrInvalidWindow = errors.New("window must be 3, 6 or 12 months")
)

// WindowMonths are the supported rolling window sizes.
var WindowMonths = []int{3, 6, 12}

func ValidWindow(months int) bool {
	for _, m := range WindowMonths {
		if m == months {
			return true
		}
	}
	return false
}

// DetectRange returns the earliest and latest day across account metrics and
// the regular post arrays. Top-post exports are not consulted.
func DetectRange(ds models.Dataset) (models.DateRange, bool) {
	var (
		r     models.DateRange
		found bool
	)
	see := func(t time.Time) {
		if t.IsZero() {
			return
		}
		if !found || t.Before(r.StartDate) {
			r.StartDate = t
		}
		if !found || t.After(r.EndDate) {
			r.EndDate = t
		}
		found = true
	}
	for _, d := range ds.AccountMetrics {
		see(d.Date)
	}
	for _, p := range ds.TwitterPosts {
		see(p.Date)
	}
	for _, p := range ds.InstagramPosts {
		see(p.Date)
	}
	for _, p := range ds.FacebookPosts {
		see(p.Date)
	}
	return r, found
}

// ResolveWindow computes the rolling window ending on endDate: the start is
// endDate moved back the given number of calendar months, plus one day. A day
// past the end of the target month clamps to its last day, and an end date on
// the last day of its month maps to the last day of the target month, so
// windows ending on a month end cover whole months.
func ResolveWindow(endDate time.Time, months int) models.PeriodWindow {
	end := ingest.DayUTC(endDate)
	return models.PeriodWindow{
		PeriodStart: addMonths(end, -months).AddDate(0, 0, 1),
		PeriodEnd:   end,
	}
}

func addMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	last := daysIn(first)
	if d > last || d == daysIn(t) {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, time.UTC)
}

func daysIn(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// CheckCoverage reconciles a window with the data actually present. When data
// starts after the window does, ActualStart is clamped to the first data day.
func CheckCoverage(dr models.DateRange, w models.PeriodWindow) models.Coverage {
	if !dr.StartDate.After(w.PeriodStart) {
		return models.Coverage{
			FullCoverage: true,
			ActualStart:  w.PeriodStart,
			ActualEnd:    w.PeriodEnd,
		}
	}
	return models.Coverage{
		ActualStart: dr.StartDate,
		ActualEnd:   w.PeriodEnd,
		Note:        fmt.Sprintf("Note: Data only available from %s", dr.StartDate.Format("Jan 2, 2006")),
	}
}

// Period bundles everything resolved for one window selection.
type Period struct {
	Months   int                 `json:"months"`
	Range    models.DateRange    `json:"data_range"`
	Window   models.PeriodWindow `json:"window"`
	Coverage models.Coverage     `json:"coverage"`
}

func Resolve(ds models.Dataset, months int) (Period, error) {
	if !ValidWindow(months) {
		return Period{}, ErrInvalidWindow
	}
	dr, ok := DetectRange(ds)
	if !ok {
		return Period{}, ErrNoDateRange
	}
	w := ResolveWindow(dr.EndDate, months)
	return Period{
		Months:   months,
		Range:    dr,
		Window:   w,
		Coverage: CheckCoverage(dr, w),
	}, nil
}
